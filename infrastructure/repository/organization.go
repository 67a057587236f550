package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/adsight/adsight-api/infrastructure/database/postgres"
	"github.com/adsight/adsight-api/internal/domain"
)

const organizationsTable = "organizations o"

type OrganizationRepository interface {
	GetByID(ctx context.Context, scope domain.Scope, id string) (*domain.Organization, error)
	Create(ctx context.Context, org *domain.Organization) error
	List(ctx context.Context, scope domain.Scope) ([]*domain.Organization, error)
}

type organizationRepository struct {
	conn *postgres.Connection
}

func NewOrganizationRepository(conn *postgres.Connection) OrganizationRepository {
	return &organizationRepository{conn: conn}
}

func (r *organizationRepository) GetByID(ctx context.Context, scope domain.Scope, id string) (*domain.Organization, error) {
	builder := squirrel.
		Select("o.id, o.name, o.onboarded, o.created_at, o.updated_at").
		From(organizationsTable).
		Where(squirrel.Eq{"o.id": id}).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := scoped(builder, scope, "o.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	org := &domain.Organization{}
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(
		&org.ID,
		&org.Name,
		&org.Onboarded,
		&org.CreatedAt,
		&org.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear organização: %w", err)
	}

	return org, nil
}

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	query, args, err := squirrel.StatementBuilder.
		Insert("organizations").
		Columns("id", "name", "onboarded").
		Values(org.ID, org.Name, org.Onboarded).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao inserir organização: %w", err)
	}

	return nil
}

func (r *organizationRepository) List(ctx context.Context, scope domain.Scope) ([]*domain.Organization, error) {
	builder := squirrel.
		Select("o.id, o.name, o.onboarded, o.created_at, o.updated_at").
		From(organizationsTable).
		OrderBy("o.created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := scoped(builder, scope, "o.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	orgs := make([]*domain.Organization, 0)
	for rows.Next() {
		org := &domain.Organization{}
		if err := rows.Scan(&org.ID, &org.Name, &org.Onboarded, &org.CreatedAt, &org.UpdatedAt); err != nil {
			return nil, fmt.Errorf("erro ao escanear organização: %w", err)
		}
		orgs = append(orgs, org)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return orgs, nil
}
