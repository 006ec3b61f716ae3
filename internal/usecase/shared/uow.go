package shared

//go:generate mockgen -source=uow.go -destination=../../../tests/mock/shared/uow.go -package=sharedmock

import (
	"context"

	"resource-booking/internal/domain/booking"
	"resource-booking/internal/domain/resource"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within runs fn in one write transaction; retryable failures re-run fn.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Resources() ResourceRepository
	Bookings() BookingRepository
}

type ResourceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	// LockByID loads the resource and holds it exclusively until the unit of work ends.
	// Every booking write for a resource goes through it first.
	LockByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	Create(ctx context.Context, res *resource.Resource) error
	UpdateAvailability(ctx context.Context, res *resource.Resource) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasBookings(ctx context.Context, id uuid.UUID) (bool, error)
}

type BookingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindByResource(ctx context.Context, resourceID uuid.UUID) ([]*booking.Booking, error)
	Insert(ctx context.Context, b *booking.Booking) error
	UpdateSlot(ctx context.Context, b *booking.Booking) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
