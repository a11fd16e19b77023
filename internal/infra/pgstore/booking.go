package pgstore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"parish-reserve/internal/domain/booking"
	"parish-reserve/internal/infra"
	"parish-reserve/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingStore struct {
	pool    *pgxpool.Pool
	slogger *slog.Logger
}

func NewBookingStore(pool *pgxpool.Pool, slogger *slog.Logger) *BookingStore {
	return &BookingStore{pool: pool, slogger: slogger}
}

const bookingColumns = `id, resource_id, series_id, start_time, end_time, status, title, attendees, cost_cents, recurrence, conflicts, created_at, updated_at`

// WithResourceLock serializes booking mutations per resource with a session
// advisory lock held on a dedicated connection for the duration of fn.
func (s *BookingStore) WithResourceLock(ctx context.Context, resourceID uuid.UUID, fn func(ctx context.Context) error) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to acquire connection", err)
	}
	defer conn.Release()

	key := advisoryKey(resourceID)
	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, key); err != nil {
		return infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to take advisory lock", err)
	}
	defer func() {
		_, _ = conn.Exec(context.WithoutCancel(ctx), `SELECT pg_advisory_unlock($1)`, key)
	}()

	return fn(ctx)
}

func advisoryKey(id uuid.UUID) int64 {
	return int64(binary.BigEndian.Uint64(id[:8]))
}

func (s *BookingStore) Create(ctx context.Context, b *booking.Booking) error {
	recurrence, err := marshalRule(b.Rule())
	if err != nil {
		return infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to encode recurrence", err)
	}
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = s.pool.Exec(ctx, query,
		b.ID(), b.ResourceID(), b.SeriesID(),
		b.Interval().Start(), b.Interval().End(),
		b.Status().String(), b.Title(), b.Attendees(), b.CostCents(),
		recurrence, b.Conflicts(), b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to insert booking", err)
	}
	return nil
}

func (s *BookingStore) Update(ctx context.Context, b *booking.Booking) error {
	recurrence, err := marshalRule(b.Rule())
	if err != nil {
		return infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to encode recurrence", err)
	}
	query := `
		UPDATE bookings
		SET start_time = $2, end_time = $3, status = $4, title = $5,
		    attendees = $6, cost_cents = $7, recurrence = $8, conflicts = $9,
		    updated_at = $10
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, query,
		b.ID(), b.Interval().Start(), b.Interval().End(),
		b.Status().String(), b.Title(), b.Attendees(), b.CostCents(),
		recurrence, b.Conflicts(), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapStoreErr(nil, infra.KindNotFound, "booking not found", nil)
	}
	return nil
}

func (s *BookingStore) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapStoreErr(nil, infra.KindNotFound, "booking not found", nil)
		}
		return nil, infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to query booking", err)
	}
	return b, nil
}

// ListByResource returns the resource's bookings ordered by start time then
// id, optionally restricted to those intersecting [from, to). Zero bounds
// disable the restriction. Cancelled bookings are included.
func (s *BookingStore) ListByResource(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]*booking.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE resource_id = $1
		  AND ($2::timestamptz IS NULL OR end_time > $2)
		  AND ($3::timestamptz IS NULL OR start_time < $3)
		ORDER BY start_time, id
	`
	rows, err := s.pool.Query(ctx, query, resourceID, nullableTime(from), nullableTime(to))
	if err != nil {
		return nil, infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to list bookings", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (s *BookingStore) ListAll(ctx context.Context) ([]*booking.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY start_time, id`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to list bookings", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

// DeleteByResource removes the resource's bookings and strips the removed ids
// from other bookings' conflict sets. Part of the resource-deletion cascade.
func (s *BookingStore) DeleteByResource(ctx context.Context, resourceID uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `DELETE FROM bookings WHERE resource_id = $1 RETURNING id`, resourceID)
	if err != nil {
		return infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to delete bookings", err)
	}
	removed, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to collect deleted ids", err)
	}
	if len(removed) > 0 {
		cleanup := `
			UPDATE bookings
			SET conflicts = (
				SELECT coalesce(array_agg(c), '{}'::uuid[])
				FROM unnest(conflicts) AS c
				WHERE NOT (c = ANY ($1::uuid[]))
			)
			WHERE conflicts && $1::uuid[]
		`
		if _, err := tx.Exec(ctx, cleanup, removed); err != nil {
			return infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to strip conflict refs", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return infra.WrapStoreErr(s.slogger, infra.KindDBFailure, "failed to commit transaction", err)
	}
	return nil
}

func collectBookings(rows pgx.Rows) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapStoreErr(nil, infra.KindDBFailure, "failed to scan booking", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapStoreErr(nil, infra.KindDBFailure, "failed to iterate bookings", err)
	}
	return out, nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, resourceID       uuid.UUID
		seriesID             *uuid.UUID
		startTime, endTime   time.Time
		status, title        string
		attendees            int
		costCents            *int64
		recurrence           []byte
		conflicts            []uuid.UUID
		createdAt, updatedAt time.Time
	)
	err := row.Scan(
		&id, &resourceID, &seriesID, &startTime, &endTime,
		&status, &title, &attendees, &costCents,
		&recurrence, &conflicts, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	interval, err := booking.NewInterval(startTime, endTime)
	if err != nil {
		return nil, errs.Wrap(err, "stored interval is invalid")
	}
	rule, err := unmarshalRule(recurrence)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		id, resourceID, seriesID, interval,
		booking.Status(status), title, attendees, costCents,
		rule, conflicts, createdAt, updatedAt,
	), nil
}

func marshalRule(r *booking.Rule) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

func unmarshalRule(raw []byte) (*booking.Rule, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var r booking.Rule
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, errs.Wrap(err, "stored recurrence is invalid")
	}
	return &r, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
