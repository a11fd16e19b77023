package pgstore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parish-reserve/internal/domain/resource"
	"parish-reserve/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ResourceStore struct {
	pool    *pgxpool.Pool
	slogger *slog.Logger
}

func NewResourceStore(pool *pgxpool.Pool, slogger *slog.Logger) *ResourceStore {
	return &ResourceStore{pool: pool, slogger: slogger}
}

const resourceColumns = `id, name, category, status, condition, capacity, quantity, value_cents, created_at, updated_at`

func (s *ResourceStore) Create(ctx context.Context, r *resource.Resource) error {
	query := `
		INSERT INTO resources (` + resourceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.pool.Exec(ctx, query,
		r.ID(), r.Name(), r.Category().String(), r.Status().String(),
		r.Condition(), r.Capacity(), r.Quantity(), r.ValueCents(),
		r.CreatedAt(), r.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to insert resource", err)
	}
	return nil
}

func (s *ResourceStore) Update(ctx context.Context, r *resource.Resource) error {
	query := `
		UPDATE resources
		SET name = $2, category = $3, status = $4, condition = $5,
		    capacity = $6, quantity = $7, value_cents = $8, updated_at = $9
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, query,
		r.ID(), r.Name(), r.Category().String(), r.Status().String(),
		r.Condition(), r.Capacity(), r.Quantity(), r.ValueCents(), r.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to update resource", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapStoreErr(nil, infra.KindNotFound, "resource not found", nil)
	}
	return nil
}

func (s *ResourceStore) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources WHERE id = $1`
	r, err := scanResource(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapStoreErr(nil, infra.KindNotFound, "resource not found", nil)
		}
		return nil, infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to query resource", err)
	}
	return r, nil
}

func (s *ResourceStore) List(ctx context.Context, category *resource.Category, status *resource.Status) ([]*resource.Resource, error) {
	query := `
		SELECT ` + resourceColumns + `
		FROM resources
		WHERE ($1::text IS NULL OR category = $1)
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY name, id
	`
	var categoryArg, statusArg *string
	if category != nil {
		v := category.String()
		categoryArg = &v
	}
	if status != nil {
		v := status.String()
		statusArg = &v
	}

	rows, err := s.pool.Query(ctx, query, categoryArg, statusArg)
	if err != nil {
		return nil, infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to list resources", err)
	}
	defer rows.Close()

	var out []*resource.Resource
	for rows.Next() {
		r, scanErr := scanResource(rows)
		if scanErr != nil {
			return nil, infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to scan resource", scanErr)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to iterate resources", err)
	}
	return out, nil
}

func (s *ResourceStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to delete resource", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapStoreErr(nil, infra.KindNotFound, "resource not found", nil)
	}
	return nil
}

func scanResource(row pgx.Row) (*resource.Resource, error) {
	var (
		id                   uuid.UUID
		name                 string
		category, status     string
		condition            int
		capacity, quantity   *int
		valueCents           *int64
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &name, &category, &status, &condition, &capacity, &quantity, &valueCents, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	return resource.ReconstructResource(
		id, name, resource.Category(category), resource.Status(status),
		condition, capacity, quantity, valueCents, createdAt, updatedAt,
	), nil
}
