package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/adsight/adsight-api/infrastructure/database/postgres"
	"github.com/adsight/adsight-api/internal/domain"
)

const quotasTable = "quotas q"

type QuotaRepository interface {
	GetByOrganization(ctx context.Context, scope domain.Scope, organizationID string) (*domain.Quota, error)
	SaveOrUpdate(ctx context.Context, quota *domain.Quota) error
}

type quotaRepository struct {
	conn *postgres.Connection
}

func NewQuotaRepository(conn *postgres.Connection) QuotaRepository {
	return &quotaRepository{conn: conn}
}

func (r *quotaRepository) GetByOrganization(ctx context.Context, scope domain.Scope, organizationID string) (*domain.Quota, error) {
	builder := squirrel.
		Select("q.organization_id, q.plan_tier, q.limits, q.features, q.updated_at").
		From(quotasTable).
		Where(squirrel.Eq{"q.organization_id": organizationID}).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := scoped(builder, scope, "q.organization_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	quota := &domain.Quota{}
	var limitsJSON, featuresJSON []byte

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&quota.OrganizationID,
		&quota.PlanTier,
		&limitsJSON,
		&featuresJSON,
		&quota.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear quota: %w", err)
	}

	if limitsJSON != nil {
		if err := json.Unmarshal(limitsJSON, &quota.Limits); err != nil {
			return nil, fmt.Errorf("erro ao deserializar limites da quota: %w", err)
		}
	}
	if featuresJSON != nil {
		if err := json.Unmarshal(featuresJSON, &quota.Features); err != nil {
			return nil, fmt.Errorf("erro ao deserializar features da quota: %w", err)
		}
	}

	return quota, nil
}

func (r *quotaRepository) SaveOrUpdate(ctx context.Context, quota *domain.Quota) error {
	limitsJSON, err := json.Marshal(quota.Limits)
	if err != nil {
		return fmt.Errorf("erro ao serializar limites da quota: %w", err)
	}

	featuresJSON, err := json.Marshal(quota.Features)
	if err != nil {
		return fmt.Errorf("erro ao serializar features da quota: %w", err)
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("quotas").
		Columns("organization_id", "plan_tier", "limits", "features").
		Values(quota.OrganizationID, quota.PlanTier, limitsJSON, featuresJSON).
		Suffix(`
			ON CONFLICT (organization_id) DO UPDATE SET
				plan_tier = EXCLUDED.plan_tier,
				limits = EXCLUDED.limits,
				features = EXCLUDED.features,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao salvar quota: %w", err)
	}

	return nil
}
