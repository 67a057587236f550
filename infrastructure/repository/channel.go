package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/adsight/adsight-api/infrastructure/database/postgres"
	"github.com/adsight/adsight-api/internal/domain"
	"github.com/adsight/adsight-api/pkg/utils"
)

const channelsTable = "channels ch"

type ChannelRepository interface {
	GetByID(ctx context.Context, scope domain.Scope, id string) (*domain.Channel, error)
	GetOrCreate(ctx context.Context, scope domain.Scope, platform domain.Platform, externalAccountID string) (*domain.Channel, error)
	List(ctx context.Context, scope domain.Scope) ([]*domain.Channel, error)
	DeactivateByPlatform(ctx context.Context, scope domain.Scope, platform domain.Platform) error
}

type channelRepository struct {
	conn *postgres.Connection
}

func NewChannelRepository(conn *postgres.Connection) ChannelRepository {
	return &channelRepository{conn: conn}
}

func (r *channelRepository) GetByID(ctx context.Context, scope domain.Scope, id string) (*domain.Channel, error) {
	builder := squirrel.
		Select("ch.id, ch.organization_id, ch.platform, ch.external_account_id, ch.active, ch.created_at, ch.updated_at").
		From(channelsTable).
		Where(squirrel.Eq{"ch.id": id}).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := scoped(builder, scope, "ch.organization_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	channel, err := r.scanChannel(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear canal: %w", err)
	}

	return channel, nil
}

// GetOrCreate resolve o canal da tupla (organização, plataforma, conta
// externa) com um único INSERT conflict-safe. Invocações concorrentes para a
// mesma tupla convergem para a mesma linha; nunca há check-then-insert.
func (r *channelRepository) GetOrCreate(ctx context.Context, scope domain.Scope, platform domain.Platform, externalAccountID string) (*domain.Channel, error) {
	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id de canal: %w", err)
	}

	// O DO UPDATE vazio (reescreve o próprio external_account_id) força o
	// RETURNING a devolver a linha existente em caso de conflito.
	query, args, err := squirrel.StatementBuilder.
		Insert("channels").
		Columns("id", "organization_id", "platform", "external_account_id", "active").
		Values(id, scope.OrganizationID, platform, externalAccountID, true).
		Suffix(`
			ON CONFLICT (organization_id, platform, external_account_id) DO UPDATE SET
				external_account_id = EXCLUDED.external_account_id
			RETURNING id, organization_id, platform, external_account_id, active, created_at, updated_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	channel, err := r.scanChannel(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("erro ao resolver canal: %w", err)
	}

	return channel, nil
}

func (r *channelRepository) List(ctx context.Context, scope domain.Scope) ([]*domain.Channel, error) {
	builder := squirrel.
		Select("ch.id, ch.organization_id, ch.platform, ch.external_account_id, ch.active, ch.created_at, ch.updated_at").
		From(channelsTable).
		OrderBy("ch.platform ASC, ch.external_account_id ASC").
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := scoped(builder, scope, "ch.organization_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	channels := make([]*domain.Channel, 0)
	for rows.Next() {
		channel := &domain.Channel{}
		err := rows.Scan(
			&channel.ID,
			&channel.OrganizationID,
			&channel.Platform,
			&channel.ExternalAccountID,
			&channel.Active,
			&channel.CreatedAt,
			&channel.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear canal: %w", err)
		}
		channels = append(channels, channel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return channels, nil
}

// DeactivateByPlatform desativa os canais da plataforma ao desconectar a
// credencial. Canais nunca são removidos fisicamente.
func (r *channelRepository) DeactivateByPlatform(ctx context.Context, scope domain.Scope, platform domain.Platform) error {
	builder := squirrel.StatementBuilder.
		Update("channels").
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"platform": platform}).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := scopedUpdate(builder, scope, "organization_id").ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao desativar canais: %w", err)
	}

	return nil
}

func (r *channelRepository) scanChannel(row *sql.Row) (*domain.Channel, error) {
	channel := &domain.Channel{}

	err := row.Scan(
		&channel.ID,
		&channel.OrganizationID,
		&channel.Platform,
		&channel.ExternalAccountID,
		&channel.Active,
		&channel.CreatedAt,
		&channel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return channel, nil
}
