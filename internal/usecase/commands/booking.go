package commands

//go:generate mockgen -source=booking.go -destination=../../../tests/mock/commands/booking.go -package=commandsmock

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"resource-booking/internal/domain/booking"
	"resource-booking/internal/infra"
	"resource-booking/internal/pkg/clock"
	"resource-booking/internal/pkg/errs"
	"resource-booking/internal/usecase/queries"
	"resource-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingCommands interface {
	Create(ctx context.Context, req CreateBookingRequest) (*queries.BookingView, error)
	Reschedule(ctx context.Context, id uuid.UUID, req RescheduleBookingRequest) (*queries.BookingView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow       shared.UnitOfWork
	queries   queries.BookingQueries
	publisher shared.EventPublisher
	clock     clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	publisher shared.EventPublisher,
	clk clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:       uow,
		queries:   bookingQueries,
		publisher: publisher,
		clock:     clk,
	}
}

// Create checks, in order: booked_by, resource existence, interval, availability, overlap.
// The first failing check wins and nothing is written.
func (uc *bookingCommandsImpl) Create(ctx context.Context, req CreateBookingRequest) (*queries.BookingView, error) {
	bookedBy, err := booking.NewBookedBy(req.BookedBy)
	if err != nil {
		if errors.Is(err, booking.ErrBookedByRequired) {
			return nil, errs.Mark(err, errs.ErrBookedByRequired)
		}
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	purpose, err := booking.NewPurpose(req.Purpose)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var created *booking.Booking
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, derr := tx.Resources().LockByID(ctx, req.ResourceID)
		if derr != nil {
			return mapResourceErr(derr)
		}

		slot, derr := booking.NewTimeSlot(req.StartTime, req.EndTime)
		if derr != nil {
			return errs.Mark(derr, errs.ErrInvalidInterval)
		}

		if !res.IsAvailable() {
			return errs.ErrResourceUnavailable
		}

		if derr = checkConflicts(ctx, tx, res.ID(), slot, uuid.Nil); derr != nil {
			return derr
		}

		b := booking.NewBooking(res.ID(), slot, bookedBy, purpose, uc.clock.Now())
		if derr = tx.Bookings().Insert(ctx, b); derr != nil {
			return derr
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, uc.translateWriteErr(ctx, err, req.ResourceID, req.StartTime, req.EndTime, uuid.Nil)
	}

	slog.Info("booking created",
		"booking_id", created.ID(),
		"resource_id", created.ResourceID(),
		"slot", created.TimeSlot().String(),
		"booked_by", created.BookedBy().String())
	uc.publish(ctx, shared.BookingCreated, created)

	return uc.readBack(ctx, created.ID())
}

// Reschedule moves a booking to a new slot on the same resource. The booking's
// own current slot never counts as a conflict.
func (uc *bookingCommandsImpl) Reschedule(ctx context.Context, id uuid.UUID, req RescheduleBookingRequest) (*queries.BookingView, error) {
	var moved *booking.Booking
	var resourceID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, derr := tx.Bookings().FindByID(ctx, id)
		if derr != nil {
			return mapBookingErr(derr)
		}
		resourceID = current.ResourceID()

		slot, derr := booking.NewTimeSlot(req.StartTime, req.EndTime)
		if derr != nil {
			return errs.Mark(derr, errs.ErrInvalidInterval)
		}

		res, derr := tx.Resources().LockByID(ctx, current.ResourceID())
		if derr != nil {
			return mapResourceErr(derr)
		}
		if !res.IsAvailable() {
			return errs.ErrResourceUnavailable
		}

		if derr = checkConflicts(ctx, tx, res.ID(), slot, current.ID()); derr != nil {
			return derr
		}

		next := current.Reschedule(slot)
		if derr = tx.Bookings().UpdateSlot(ctx, next); derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.ErrBookingNotFound
			}
			return derr
		}
		moved = next
		return nil
	})
	if err != nil {
		return nil, uc.translateWriteErr(ctx, err, resourceID, req.StartTime, req.EndTime, id)
	}

	slog.Info("booking rescheduled",
		"booking_id", moved.ID(),
		"resource_id", moved.ResourceID(),
		"slot", moved.TimeSlot().String())
	uc.publish(ctx, shared.BookingRescheduled, moved)

	return uc.readBack(ctx, moved.ID())
}

func (uc *bookingCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	var removed *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, derr := tx.Bookings().FindByID(ctx, id)
		if derr != nil {
			return mapBookingErr(derr)
		}

		deleted, derr := tx.Bookings().Delete(ctx, id)
		if derr != nil {
			return derr
		}
		if !deleted {
			return errs.ErrBookingNotFound
		}
		removed = current
		return nil
	})
	if err != nil {
		if errs.Is(err, errs.ErrBookingNotFound) {
			return err
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.Info("booking deleted", "booking_id", removed.ID(), "resource_id", removed.ResourceID())
	uc.publish(ctx, shared.BookingDeleted, removed)
	return nil
}

func checkConflicts(ctx context.Context, tx shared.Tx, resourceID uuid.UUID, slot booking.TimeSlot, exclude uuid.UUID) error {
	existing, err := tx.Bookings().FindByResource(ctx, resourceID)
	if err != nil {
		return err
	}
	if conflicts := booking.FindConflicts(existing, slot, exclude); len(conflicts) > 0 {
		return newConflictError(resourceID, conflicts)
	}
	return nil
}

// translateWriteErr keeps domain errors as they are. An exclusion violation
// raised by the database means a concurrent writer won the slot; the winners
// are re-read in a fresh transaction since the failed one is aborted.
func (uc *bookingCommandsImpl) translateWriteErr(
	ctx context.Context,
	err error,
	resourceID uuid.UUID,
	start, end time.Time,
	exclude uuid.UUID,
) error {
	switch {
	case isDomainErr(err):
		return err
	case infra.IsKind(err, infra.KindConflict):
		return uc.reloadConflicts(ctx, resourceID, start, end, exclude)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.ErrResourceNotFound
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}

// reloadConflicts falls back to a reason-only error when the re-read fails
// or the winning booking is already gone.
func (uc *bookingCommandsImpl) reloadConflicts(ctx context.Context, resourceID uuid.UUID, start, end time.Time, exclude uuid.UUID) error {
	slot, err := booking.NewTimeSlot(start, end)
	if err != nil {
		return errs.Mark(err, errs.ErrInvalidInterval)
	}

	conflictErr := &ConflictError{ResourceID: resourceID}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		existing, derr := tx.Bookings().FindByResource(ctx, resourceID)
		if derr != nil {
			return derr
		}
		conflictErr = newConflictError(resourceID, booking.FindConflicts(existing, slot, exclude))
		return nil
	})
	if err != nil {
		slog.Warn("failed to reload conflicting bookings", "resource_id", resourceID, "error", err.Error())
	}
	if len(conflictErr.Conflicts) == 0 {
		slog.Warn("exclusion violation without a visible conflicting booking",
			"resource_id", resourceID,
			"start_time", slot.Start(),
			"end_time", slot.End())
		conflictErr.Reason = ReasonOverlap
	}
	return conflictErr
}

func (uc *bookingCommandsImpl) readBack(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, err := uc.queries.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

// Publishing happens after commit; a failure is logged and the booking stands.
func (uc *bookingCommandsImpl) publish(ctx context.Context, eventType shared.BookingEventType, b *booking.Booking) {
	start, end := b.TimeSlot().Start(), b.TimeSlot().End()
	event := shared.BookingEvent{
		Type:       eventType,
		BookingID:  b.ID(),
		ResourceID: b.ResourceID(),
		StartTime:  &start,
		EndTime:    &end,
		BookedBy:   b.BookedBy().String(),
		OccurredAt: uc.clock.Now(),
	}
	if err := uc.publisher.PublishBookingEvent(ctx, event); err != nil {
		slog.Warn("failed to publish booking event",
			"type", string(eventType),
			"booking_id", b.ID(),
			"error", err.Error())
	}
}

func mapResourceErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.ErrResourceNotFound
	}
	return err
}

func mapBookingErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.ErrBookingNotFound
	}
	return err
}

func isDomainErr(err error) bool {
	for _, target := range []error{
		errs.ErrResourceNotFound,
		errs.ErrResourceUnavailable,
		errs.ErrResourceHasBookings,
		errs.ErrBookingNotFound,
		errs.ErrBookingConflict,
		errs.ErrInvalidInterval,
		errs.ErrBookedByRequired,
		errs.ErrDomainValidation,
	} {
		if errs.Is(err, target) {
			return true
		}
	}
	return false
}
