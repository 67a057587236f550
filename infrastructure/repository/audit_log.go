package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/adsight/adsight-api/infrastructure/database/postgres"
	"github.com/adsight/adsight-api/internal/domain"
)

const auditLogsTable = "audit_logs al"

type AuditLogRepository interface {
	Append(ctx context.Context, entry *domain.AuditEntry) error
	ListRecent(ctx context.Context, limit uint64) ([]*domain.AuditEntry, error)
}

type auditLogRepository struct {
	conn *postgres.Connection
}

func NewAuditLogRepository(conn *postgres.Connection) AuditLogRepository {
	return &auditLogRepository{conn: conn}
}

// Append grava uma entrada de auditoria. A tabela é apenas-anexar: não há
// caminho de update ou delete neste repositório.
func (r *auditLogRepository) Append(ctx context.Context, entry *domain.AuditEntry) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("audit_logs").
		Columns("id", "actor", "action", "target").
		Values(entry.ID, entry.Actor, entry.Action, entry.Target).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao inserir entrada de auditoria: %w", err)
	}

	return nil
}

func (r *auditLogRepository) ListRecent(ctx context.Context, limit uint64) ([]*domain.AuditEntry, error) {
	query, args, err := squirrel.
		Select("al.id, al.actor, al.action, al.target, al.created_at").
		From(auditLogsTable).
		OrderBy("al.created_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	entries := make([]*domain.AuditEntry, 0)
	for rows.Next() {
		entry := &domain.AuditEntry{}
		if err := rows.Scan(&entry.ID, &entry.Actor, &entry.Action, &entry.Target, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear entrada de auditoria: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return entries, nil
}
