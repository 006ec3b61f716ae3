package memstore

import (
	"context"

	"resource-booking/internal/domain/booking"
	"resource-booking/internal/domain/resource"
	"resource-booking/internal/infra"

	"github.com/google/uuid"
)

type resourceRepository struct {
	state *state
}

func (r *resourceRepository) FindByID(_ context.Context, id uuid.UUID) (*resource.Resource, error) {
	row, ok := r.state.resources[id]
	if !ok {
		return nil, infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return row.toEntity(), nil
}

// The unit of work already holds the store lock.
func (r *resourceRepository) LockByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return r.FindByID(ctx, id)
}

func (r *resourceRepository) Create(_ context.Context, res *resource.Resource) error {
	if _, ok := r.state.resources[res.ID()]; ok {
		return infra.WrapRepoErr("resource already exists", nil, infra.KindDuplicateKey)
	}
	r.state.resources[res.ID()] = toResourceRow(res)
	return nil
}

func (r *resourceRepository) UpdateAvailability(_ context.Context, res *resource.Resource) error {
	row, ok := r.state.resources[res.ID()]
	if !ok {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	row.available = res.IsAvailable()
	row.updatedAt = res.UpdatedAt()
	r.state.resources[res.ID()] = row
	return nil
}

func (r *resourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.state.resources[id]; !ok {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	has, err := r.HasBookings(ctx, id)
	if err != nil {
		return err
	}
	if has {
		return infra.WrapRepoErr("resource is referenced by bookings", nil, infra.KindForeignKeyViolated)
	}
	delete(r.state.resources, id)
	return nil
}

func (r *resourceRepository) HasBookings(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	for _, b := range r.state.bookings {
		if b.resourceID == id {
			return true, nil
		}
	}
	return false, nil
}

type bookingRepository struct {
	state *state
}

func (r *bookingRepository) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, ok := r.state.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return row.toEntity(), nil
}

func (r *bookingRepository) FindByResource(_ context.Context, resourceID uuid.UUID) ([]*booking.Booking, error) {
	var result []*booking.Booking
	for _, row := range r.state.bookings {
		if row.resourceID == resourceID {
			result = append(result, row.toEntity())
		}
	}
	booking.SortByStart(result)
	return result, nil
}

// Insert enforces the same rules as the PostgreSQL schema: the resource must
// exist and no booking of that resource may overlap the new slot.
func (r *bookingRepository) Insert(_ context.Context, b *booking.Booking) error {
	if _, ok := r.state.resources[b.ResourceID()]; !ok {
		return infra.WrapRepoErr("resource does not exist", nil, infra.KindForeignKeyViolated)
	}
	if _, ok := r.state.bookings[b.ID()]; ok {
		return infra.WrapRepoErr("booking already exists", nil, infra.KindDuplicateKey)
	}
	if r.overlaps(b, uuid.Nil) {
		return infra.WrapRepoErr("booking overlaps an existing booking", nil, infra.KindConflict)
	}
	r.state.bookings[b.ID()] = toBookingRow(b)
	return nil
}

func (r *bookingRepository) UpdateSlot(_ context.Context, b *booking.Booking) error {
	row, ok := r.state.bookings[b.ID()]
	if !ok {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	if r.overlaps(b, b.ID()) {
		return infra.WrapRepoErr("booking overlaps an existing booking", nil, infra.KindConflict)
	}
	row.slot = b.TimeSlot()
	r.state.bookings[b.ID()] = row
	return nil
}

func (r *bookingRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.state.bookings[id]; !ok {
		return false, nil
	}
	delete(r.state.bookings, id)
	return true, nil
}

func (r *bookingRepository) overlaps(b *booking.Booking, exclude uuid.UUID) bool {
	for _, row := range r.state.bookings {
		if row.resourceID != b.ResourceID() || row.id == exclude {
			continue
		}
		if row.slot.Overlaps(b.TimeSlot()) {
			return true
		}
	}
	return false
}
