package repository

import (
	"context"

	"resource-booking/internal/domain/booking"
	"resource-booking/internal/infra"
	"resource-booking/internal/infra/db"
	"resource-booking/internal/pkg/errs"
	"resource-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `id, resource_id, start_time, end_time, booked_by, purpose, created_at`

const (
	getBookingByIDSQL = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	listBookingsByResourceSQL = `SELECT ` + bookingColumns + `
FROM bookings
WHERE resource_id = $1
ORDER BY start_time, id`

	insertBookingSQL = `
INSERT INTO bookings (id, resource_id, start_time, end_time, booked_by, purpose, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	updateBookingSlotSQL = `UPDATE bookings SET start_time = $2, end_time = $3 WHERE id = $1`

	deleteBookingSQL = `DELETE FROM bookings WHERE id = $1`
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, getBookingByIDSQL, pgconv.UUIDToPgtype(id)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load booking", err)
	}
	return b, nil
}

func (r *BookingRepository) FindByResource(ctx context.Context, resourceID uuid.UUID) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx, listBookingsByResourceSQL, pgconv.UUIDToPgtype(resourceID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var result []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return result, nil
}

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	_, err := r.db.Exec(ctx, insertBookingSQL,
		pgconv.UUIDToPgtype(b.ID()),
		pgconv.UUIDToPgtype(b.ResourceID()),
		pgconv.TimeToPgtype(b.TimeSlot().Start()),
		pgconv.TimeToPgtype(b.TimeSlot().End()),
		b.BookedBy().String(),
		b.Purpose().String(),
		pgconv.TimeToPgtype(b.CreatedAt()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert booking", err)
	}
	return nil
}

func (r *BookingRepository) UpdateSlot(ctx context.Context, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx, updateBookingSlotSQL,
		pgconv.UUIDToPgtype(b.ID()),
		pgconv.TimeToPgtype(b.TimeSlot().Start()),
		pgconv.TimeToPgtype(b.TimeSlot().End()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, deleteBookingSQL, pgconv.UUIDToPgtype(id))
	if err != nil {
		return false, infra.WrapRepoErr("failed to delete booking", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, resourceID             pgtype.UUID
		start, end, createdAt      pgtype.Timestamptz
		bookedByValue, purposeText string
	)
	if err := row.Scan(&id, &resourceID, &start, &end, &bookedByValue, &purposeText, &createdAt); err != nil {
		return nil, err
	}

	slot, err := booking.NewTimeSlot(pgconv.TimeFromPgtype(start), pgconv.TimeFromPgtype(end))
	if err != nil {
		return nil, errs.Wrap(err, "stored booking has an invalid slot")
	}
	bookedBy, err := booking.NewBookedBy(bookedByValue)
	if err != nil {
		return nil, errs.Wrap(err, "stored booking has an invalid booked_by")
	}
	purpose, err := booking.NewPurpose(purposeText)
	if err != nil {
		return nil, errs.Wrap(err, "stored booking has an invalid purpose")
	}

	return booking.ReconstructBooking(
		pgconv.UUIDFromPgtype(id),
		pgconv.UUIDFromPgtype(resourceID),
		slot,
		bookedBy,
		purpose,
		pgconv.TimeFromPgtype(createdAt),
	), nil
}
