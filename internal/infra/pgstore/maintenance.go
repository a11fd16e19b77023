package pgstore

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"parish-reserve/internal/domain/maintenance"
	"parish-reserve/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MaintenanceStore struct {
	pool    *pgxpool.Pool
	slogger *slog.Logger
}

func NewMaintenanceStore(pool *pgxpool.Pool, slogger *slog.Logger) *MaintenanceStore {
	return &MaintenanceStore{pool: pool, slogger: slogger}
}

const scheduleColumns = `id, resource_id, task_type, frequency, next_due, priority, est_cost_cents, last_completed, created_at, updated_at`

func (s *MaintenanceStore) Create(ctx context.Context, sched *maintenance.Schedule) error {
	query := `
		INSERT INTO maintenance_schedules (` + scheduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.pool.Exec(ctx, query,
		sched.ID(), sched.ResourceID(), sched.TaskType(),
		sched.Frequency().String(), sched.NextDue(), sched.Priority().String(),
		sched.EstCostCents(), sched.LastCompleted(), sched.CreatedAt(), sched.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to insert schedule", err)
	}
	return nil
}

func (s *MaintenanceStore) Update(ctx context.Context, sched *maintenance.Schedule) error {
	query := `
		UPDATE maintenance_schedules
		SET task_type = $2, frequency = $3, next_due = $4, priority = $5,
		    est_cost_cents = $6, last_completed = $7, updated_at = $8
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, query,
		sched.ID(), sched.TaskType(), sched.Frequency().String(),
		sched.NextDue(), sched.Priority().String(), sched.EstCostCents(),
		sched.LastCompleted(), sched.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to update schedule", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapStoreErr(nil, infra.KindNotFound, "schedule not found", nil)
	}
	return nil
}

func (s *MaintenanceStore) FindByID(ctx context.Context, id uuid.UUID) (*maintenance.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM maintenance_schedules WHERE id = $1`
	sched, err := scanSchedule(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapStoreErr(nil, infra.KindNotFound, "schedule not found", nil)
		}
		return nil, infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to query schedule", err)
	}
	return sched, nil
}

func (s *MaintenanceStore) List(ctx context.Context, resourceID *uuid.UUID) ([]*maintenance.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM maintenance_schedules
		WHERE ($1::uuid IS NULL OR resource_id = $1)
		ORDER BY next_due, id
	`
	rows, err := s.pool.Query(ctx, query, resourceID)
	if err != nil {
		return nil, infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to list schedules", err)
	}
	defer rows.Close()

	var out []*maintenance.Schedule
	for rows.Next() {
		sched, scanErr := scanSchedule(rows)
		if scanErr != nil {
			return nil, infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to scan schedule", scanErr)
		}
		out = append(out, sched)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to iterate schedules", err)
	}
	return out, nil
}

func (s *MaintenanceStore) DeleteByResource(ctx context.Context, resourceID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM maintenance_schedules WHERE resource_id = $1`, resourceID)
	if err != nil {
		return infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to delete schedules", err)
	}
	return nil
}

func scanSchedule(row pgx.Row) (*maintenance.Schedule, error) {
	var (
		id, resourceID       uuid.UUID
		taskType             string
		frequency, priority  string
		nextDue              time.Time
		estCostCents         *int64
		lastCompleted        *time.Time
		createdAt, updatedAt time.Time
	)
	err := row.Scan(
		&id, &resourceID, &taskType, &frequency, &nextDue, &priority,
		&estCostCents, &lastCompleted, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	return maintenance.ReconstructSchedule(
		id, resourceID, taskType,
		maintenance.Frequency(frequency), nextDue, maintenance.Priority(priority),
		estCostCents, lastCompleted, createdAt, updatedAt,
	), nil
}
