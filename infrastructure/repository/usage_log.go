package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/adsight/adsight-api/infrastructure/database/postgres"
	"github.com/adsight/adsight-api/internal/domain"
)

const usageLogsTable = "usage_logs ul"

type UsageLogRepository interface {
	Append(ctx context.Context, entry *domain.UsageLog) error
	CurrentDailyUsage(ctx context.Context, scope domain.Scope, resource domain.ResourceType, date time.Time) (int64, error)
	DailyBreakdown(ctx context.Context, scope domain.Scope, date time.Time) (map[domain.ResourceType]int64, error)
}

type usageLogRepository struct {
	conn *postgres.Connection
}

func NewUsageLogRepository(conn *postgres.Connection) UsageLogRepository {
	return &usageLogRepository{conn: conn}
}

// Append registra uma unidade de consumo. Linhas de uso nunca são mutadas;
// a agregação acontece na leitura.
func (r *usageLogRepository) Append(ctx context.Context, entry *domain.UsageLog) error {
	var metadataJSON []byte
	var err error

	if entry.Metadata != nil {
		metadataJSON, err = json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("erro ao serializar metadata de uso: %w", err)
		}
	}

	query, args, err := squirrel.StatementBuilder.
		Insert("usage_logs").
		Columns("id", "organization_id", "resource_type", "count", "date", "metadata").
		Values(
			entry.ID,
			entry.OrganizationID,
			entry.Resource,
			entry.Count,
			entry.Date.Format(time.DateOnly),
			metadataJSON,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao inserir usage log: %w", err)
	}

	return nil
}

func (r *usageLogRepository) CurrentDailyUsage(ctx context.Context, scope domain.Scope, resource domain.ResourceType, date time.Time) (int64, error) {
	builder := squirrel.
		Select("COALESCE(SUM(ul.count), 0)").
		From(usageLogsTable).
		Where(squirrel.Eq{
			"ul.resource_type": resource,
			"ul.date":          date.Format(time.DateOnly),
		}).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := scoped(builder, scope, "ul.organization_id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total int64
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao agregar uso diário: %w", err)
	}

	return total, nil
}

func (r *usageLogRepository) DailyBreakdown(ctx context.Context, scope domain.Scope, date time.Time) (map[domain.ResourceType]int64, error) {
	builder := squirrel.
		Select("ul.resource_type, COALESCE(SUM(ul.count), 0)").
		From(usageLogsTable).
		Where(squirrel.Eq{"ul.date": date.Format(time.DateOnly)}).
		GroupBy("ul.resource_type").
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := scoped(builder, scope, "ul.organization_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	breakdown := make(map[domain.ResourceType]int64)
	for rows.Next() {
		var resource domain.ResourceType
		var total int64
		if err := rows.Scan(&resource, &total); err != nil {
			return nil, fmt.Errorf("erro ao escanear agregado de uso: %w", err)
		}
		breakdown[resource] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return breakdown, nil
}
