package queries

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/queries/booking.go -package=queriesmock

import (
	"context"
	"time"

	"resource-booking/internal/domain/booking"
	"resource-booking/internal/infra"
	"resource-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// FindByResource returns the bookings intersecting the filter window, ordered by start time, then id.
	FindByResource(ctx context.Context, filter BookingFilter) ([]*BookingView, error)
	ResourceExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByResource(ctx context.Context, resourceID uuid.UUID, from, to *time.Time) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookingNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByResource(ctx context.Context, resourceID uuid.UUID, from, to *time.Time) ([]*BookingView, error) {
	window, err := booking.NewWindow(from, to)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidInterval)
	}

	exists, err := q.store.ResourceExists(ctx, resourceID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !exists {
		return nil, errs.ErrResourceNotFound
	}

	views, err := q.store.FindByResource(ctx, BookingFilter{
		ResourceID: resourceID,
		From:       window.From(),
		To:         window.To(),
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if views == nil {
		views = []*BookingView{}
	}
	return views, nil
}
