package readstore

import (
	"context"

	"resource-booking/internal/infra"
	"resource-booking/internal/infra/db"
	"resource-booking/internal/pkg/pgconv"
	"resource-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	bookingViewSelect = `
SELECT b.id, b.resource_id, r.name, b.start_time, b.end_time, b.booked_by, b.purpose, b.created_at
FROM bookings b
JOIN resources r ON r.id = b.resource_id`

	getBookingViewSQL = bookingViewSelect + `
WHERE b.id = $1`

	// NULL bounds are open; the comparisons follow the half-open overlap rule
	listBookingViewsSQL = bookingViewSelect + `
WHERE b.resource_id = $1
  AND ($2::timestamptz IS NULL OR b.end_time > $2)
  AND ($3::timestamptz IS NULL OR b.start_time < $3)
ORDER BY b.start_time, b.id`

	resourceExistsSQL = `SELECT EXISTS (SELECT 1 FROM resources WHERE id = $1)`
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, err := scanBookingView(r.db.QueryRow(ctx, getBookingViewSQL, pgconv.UUIDToPgtype(id)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

func (r *BookingReadStore) FindByResource(ctx context.Context, filter queries.BookingFilter) ([]*queries.BookingView, error) {
	rows, err := r.db.Query(ctx, listBookingViewsSQL,
		pgconv.UUIDToPgtype(filter.ResourceID),
		pgconv.TimePtrToPgtype(filter.From),
		pgconv.TimePtrToPgtype(filter.To),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by resource", err)
	}
	defer rows.Close()

	result := []*queries.BookingView{}
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return result, nil
}

func (r *BookingReadStore) ResourceExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, resourceExistsSQL, pgconv.UUIDToPgtype(id)).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check resource existence", err)
	}
	return exists, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		id, resourceID        pgtype.UUID
		start, end, createdAt pgtype.Timestamptz
		view                  queries.BookingView
	)
	err := row.Scan(
		&id,
		&resourceID,
		&view.ResourceName,
		&start,
		&end,
		&view.BookedBy,
		&view.Purpose,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	view.ID = pgconv.UUIDFromPgtype(id)
	view.ResourceID = pgconv.UUIDFromPgtype(resourceID)
	view.StartTime = pgconv.TimeFromPgtype(start)
	view.EndTime = pgconv.TimeFromPgtype(end)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &view, nil
}
