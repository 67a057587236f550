package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/adsight/adsight-api/infrastructure/database/postgres"
	"github.com/adsight/adsight-api/internal/domain"
	"github.com/lib/pq"
)

const credentialsTable = "credentials c"

type CredentialRepository interface {
	GetActive(ctx context.Context, scope domain.Scope, platform domain.Platform) (*domain.Credential, error)
	SaveOrUpdate(ctx context.Context, scope domain.Scope, credential *domain.Credential) error
	Deactivate(ctx context.Context, scope domain.Scope, platform domain.Platform) error
	TouchLastSynced(ctx context.Context, scope domain.Scope, platform domain.Platform, syncedAt time.Time) error
}

type credentialRepository struct {
	conn *postgres.Connection
}

func NewCredentialRepository(conn *postgres.Connection) CredentialRepository {
	return &credentialRepository{conn: conn}
}

func (r *credentialRepository) GetActive(ctx context.Context, scope domain.Scope, platform domain.Platform) (*domain.Credential, error) {
	builder := squirrel.
		Select("c.id, c.organization_id, c.platform, c.payload, c.active, c.last_synced_at, c.created_at").
		From(credentialsTable).
		Where(squirrel.Eq{"c.platform": platform, "c.active": true}).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := scoped(builder, scope, "c.organization_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	credential, err := r.scanCredential(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear credencial: %w", err)
	}

	return credential, nil
}

// SaveOrUpdate grava a credencial mantendo o invariante de exatamente uma
// linha ativa por (organização, plataforma): o conflito na constraint única
// sobrescreve o payload e reativa a credencial.
func (r *credentialRepository) SaveOrUpdate(ctx context.Context, scope domain.Scope, credential *domain.Credential) error {
	payloadJSON, err := json.Marshal(credential.Payload)
	if err != nil {
		return fmt.Errorf("erro ao serializar payload da credencial: %w", err)
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("credentials").
		Columns("id", "organization_id", "platform", "payload", "active").
		Values(credential.ID, scope.OrganizationID, credential.Platform, payloadJSON, true).
		Suffix(`
			ON CONFLICT (organization_id, platform) DO UPDATE SET
				payload = EXCLUDED.payload,
				active = TRUE,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *credentialRepository) Deactivate(ctx context.Context, scope domain.Scope, platform domain.Platform) error {
	builder := squirrel.StatementBuilder.
		Update("credentials").
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"platform": platform}).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := scopedUpdate(builder, scope, "organization_id").ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao desativar credencial: %w", err)
	}

	return nil
}

func (r *credentialRepository) TouchLastSynced(ctx context.Context, scope domain.Scope, platform domain.Platform, syncedAt time.Time) error {
	builder := squirrel.StatementBuilder.
		Update("credentials").
		Set("last_synced_at", syncedAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"platform": platform, "active": true}).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := scopedUpdate(builder, scope, "organization_id").ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao atualizar last_synced_at: %w", err)
	}

	return nil
}

func (r *credentialRepository) scanCredential(row *sql.Row) (*domain.Credential, error) {
	credential := &domain.Credential{}
	var payloadJSON []byte

	err := row.Scan(
		&credential.ID,
		&credential.OrganizationID,
		&credential.Platform,
		&payloadJSON,
		&credential.Active,
		&credential.LastSyncedAt,
		&credential.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if payloadJSON != nil {
		if err := json.Unmarshal(payloadJSON, &credential.Payload); err != nil {
			return nil, fmt.Errorf("erro ao deserializar payload da credencial: %w", err)
		}
	}

	return credential, nil
}
