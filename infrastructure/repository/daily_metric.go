package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/adsight/adsight-api/infrastructure/database/postgres"
	"github.com/adsight/adsight-api/internal/domain"
	"github.com/lib/pq"
)

const dailyMetricsTable = "daily_metrics dm"

type DailyMetricRepository interface {
	Upsert(ctx context.Context, metric *domain.DailyMetric) error
	GetByChannelAndRange(ctx context.Context, scope domain.Scope, channelID string, filters domain.MetricFilters) ([]*domain.DailyMetric, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type dailyMetricRepository struct {
	conn *postgres.Connection
}

func NewDailyMetricRepository(conn *postgres.Connection) DailyMetricRepository {
	return &dailyMetricRepository{conn: conn}
}

// Upsert grava a métrica canônica com sobrescrita no conflito da chave
// (channel_id, date): re-ingestões substituem a linha, nunca duplicam.
func (r *dailyMetricRepository) Upsert(ctx context.Context, metric *domain.DailyMetric) error {
	query, args, err := upsertMetricQuery(metric)
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

func upsertMetricQuery(metric *domain.DailyMetric) (string, []any, error) {
	return squirrel.StatementBuilder.
		Insert("daily_metrics").
		Columns(
			"channel_id", "date", "spend", "revenue", "impressions",
			"clicks", "conversions", "roas", "cpa", "ctr", "cvr",
		).
		Values(
			metric.ChannelID,
			metric.Date.Format(time.DateOnly),
			metric.Spend,
			metric.Revenue,
			metric.Impressions,
			metric.Clicks,
			metric.Conversions,
			metric.ROAS,
			metric.CPA,
			metric.CTR,
			metric.CVR,
		).
		Suffix(`
			ON CONFLICT (channel_id, date) DO UPDATE SET
				spend = EXCLUDED.spend,
				revenue = EXCLUDED.revenue,
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				conversions = EXCLUDED.conversions,
				roas = EXCLUDED.roas,
				cpa = EXCLUDED.cpa,
				ctr = EXCLUDED.ctr,
				cvr = EXCLUDED.cvr,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// GetByChannelAndRange lê a série temporal de um canal. O join com channels
// garante o isolamento por organização também neste caminho de leitura.
func (r *dailyMetricRepository) GetByChannelAndRange(ctx context.Context, scope domain.Scope, channelID string, filters domain.MetricFilters) ([]*domain.DailyMetric, error) {
	builder := squirrel.
		Select(
			"dm.id, dm.channel_id, dm.date, dm.spend, dm.revenue, dm.impressions, " +
				"dm.clicks, dm.conversions, dm.roas, dm.cpa, dm.ctr, dm.cvr, dm.created_at, dm.updated_at",
		).
		From(dailyMetricsTable).
		Join("channels ch ON dm.channel_id = ch.id").
		Where(squirrel.Eq{"dm.channel_id": channelID}).
		OrderBy("dm.date ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filters.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"dm.date": filters.StartDate.Format(time.DateOnly)})
	}
	if filters.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"dm.date": filters.EndDate.Format(time.DateOnly)})
	}

	query, args, err := scoped(builder, scope, "ch.organization_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	metrics := make([]*domain.DailyMetric, 0)
	for rows.Next() {
		metric := &domain.DailyMetric{}
		err := rows.Scan(
			&metric.ID,
			&metric.ChannelID,
			&metric.Date,
			&metric.Spend,
			&metric.Revenue,
			&metric.Impressions,
			&metric.Clicks,
			&metric.Conversions,
			&metric.ROAS,
			&metric.CPA,
			&metric.CTR,
			&metric.CVR,
			&metric.CreatedAt,
			&metric.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear métrica diária: %w", err)
		}
		metrics = append(metrics, metric)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return metrics, nil
}

func (r *dailyMetricRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format(time.DateOnly)

	query, args, err := squirrel.
		Delete("daily_metrics").
		Where(squirrel.Lt{"date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}
