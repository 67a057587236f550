package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/adsight/adsight-api/infrastructure/database/postgres"
	"github.com/adsight/adsight-api/internal/domain"
)

const syncJobsTable = "sync_jobs sj"

// ErrJobNotTransitionable indica uma tentativa de transição a partir de um
// estado terminal ou inexistente.
var ErrJobNotTransitionable = errors.New("sync job não está em estado transicionável")

type SyncJobRepository interface {
	Create(ctx context.Context, job *domain.SyncJob) error
	MarkRunning(ctx context.Context, jobID string) error
	MarkCompleted(ctx context.Context, jobID string, recordsSynced int) error
	MarkFailed(ctx context.Context, jobID string, errorMessage string) error
	HasActiveJob(ctx context.Context, scope domain.Scope, platform domain.Platform) (bool, error)
	GetByID(ctx context.Context, scope domain.Scope, jobID string) (*domain.SyncJob, error)
	List(ctx context.Context, scope domain.Scope, limit uint64) ([]*domain.SyncJob, error)
}

type syncJobRepository struct {
	conn *postgres.Connection
}

func NewSyncJobRepository(conn *postgres.Connection) SyncJobRepository {
	return &syncJobRepository{conn: conn}
}

func (r *syncJobRepository) Create(ctx context.Context, job *domain.SyncJob) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("sync_jobs").
		Columns("id", "organization_id", "platform", "status", "started_at").
		Values(job.ID, job.OrganizationID, job.Platform, domain.SyncJobPending, job.StartedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao inserir sync job: %w", err)
	}

	job.Status = domain.SyncJobPending
	return nil
}

// MarkRunning efetua a transição pending -> running. A cláusula de status no
// WHERE garante que estados terminais nunca são reabertos.
func (r *syncJobRepository) MarkRunning(ctx context.Context, jobID string) error {
	return r.transition(ctx, jobID, domain.SyncJobPending, func(b squirrel.UpdateBuilder) squirrel.UpdateBuilder {
		return b.Set("status", domain.SyncJobRunning)
	})
}

func (r *syncJobRepository) MarkCompleted(ctx context.Context, jobID string, recordsSynced int) error {
	return r.transition(ctx, jobID, domain.SyncJobRunning, func(b squirrel.UpdateBuilder) squirrel.UpdateBuilder {
		return b.
			Set("status", domain.SyncJobCompleted).
			Set("records_synced", recordsSynced).
			Set("completed_at", time.Now())
	})
}

func (r *syncJobRepository) MarkFailed(ctx context.Context, jobID string, errorMessage string) error {
	query, args, err := squirrel.StatementBuilder.
		Update("sync_jobs").
		Set("status", domain.SyncJobFailed).
		Set("error_message", errorMessage).
		Set("completed_at", time.Now()).
		Where(squirrel.Eq{"id": jobID}).
		Where(squirrel.Eq{"status": []domain.SyncJobStatus{domain.SyncJobPending, domain.SyncJobRunning}}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.execTransition(ctx, query, args)
}

func (r *syncJobRepository) transition(ctx context.Context, jobID string, from domain.SyncJobStatus, apply func(squirrel.UpdateBuilder) squirrel.UpdateBuilder) error {
	builder := squirrel.StatementBuilder.
		Update("sync_jobs").
		Where(squirrel.Eq{"id": jobID, "status": from}).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := apply(builder).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.execTransition(ctx, query, args)
}

func (r *syncJobRepository) execTransition(ctx context.Context, query string, args []interface{}) error {
	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar transição de sync job: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}
	if affected == 0 {
		return ErrJobNotTransitionable
	}

	return nil
}

// HasActiveJob verifica se já existe um job pending/running para o par
// (organização, plataforma), usado para serializar sincronizações.
func (r *syncJobRepository) HasActiveJob(ctx context.Context, scope domain.Scope, platform domain.Platform) (bool, error) {
	builder := squirrel.
		Select("COUNT(1)").
		From(syncJobsTable).
		Where(squirrel.Eq{
			"sj.platform": platform,
			"sj.status":   []domain.SyncJobStatus{domain.SyncJobPending, domain.SyncJobRunning},
		}).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := scoped(builder, scope, "sj.organization_id").ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("erro ao consultar jobs ativos: %w", err)
	}

	return count > 0, nil
}

func (r *syncJobRepository) GetByID(ctx context.Context, scope domain.Scope, jobID string) (*domain.SyncJob, error) {
	builder := squirrel.
		Select("sj.id, sj.organization_id, sj.platform, sj.status, sj.started_at, sj.completed_at, sj.records_synced, sj.error_message").
		From(syncJobsTable).
		Where(squirrel.Eq{"sj.id": jobID}).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := scoped(builder, scope, "sj.organization_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	job := &domain.SyncJob{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&job.ID,
		&job.OrganizationID,
		&job.Platform,
		&job.Status,
		&job.StartedAt,
		&job.CompletedAt,
		&job.RecordsSynced,
		&job.ErrorMessage,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear sync job: %w", err)
	}

	return job, nil
}

func (r *syncJobRepository) List(ctx context.Context, scope domain.Scope, limit uint64) ([]*domain.SyncJob, error) {
	builder := squirrel.
		Select("sj.id, sj.organization_id, sj.platform, sj.status, sj.started_at, sj.completed_at, sj.records_synced, sj.error_message").
		From(syncJobsTable).
		OrderBy("sj.started_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := scoped(builder, scope, "sj.organization_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	jobs := make([]*domain.SyncJob, 0)
	for rows.Next() {
		job := &domain.SyncJob{}
		err := rows.Scan(
			&job.ID,
			&job.OrganizationID,
			&job.Platform,
			&job.Status,
			&job.StartedAt,
			&job.CompletedAt,
			&job.RecordsSynced,
			&job.ErrorMessage,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear sync job: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return jobs, nil
}
