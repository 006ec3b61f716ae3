package commands

//go:generate mockgen -source=resource.go -destination=../../../tests/mock/commands/resource.go -package=commandsmock

import (
	"context"
	"log/slog"

	"resource-booking/internal/domain/resource"
	"resource-booking/internal/infra"
	"resource-booking/internal/pkg/clock"
	"resource-booking/internal/pkg/errs"
	"resource-booking/internal/usecase/queries"
	"resource-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ResourceCommands interface {
	Create(ctx context.Context, req CreateResourceRequest) (*queries.ResourceView, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*queries.ResourceView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type resourceCommandsImpl struct {
	uow     shared.UnitOfWork
	queries queries.ResourceQueries
	cache   shared.ResourceCacheInvalidator
	clock   clock.Clock
}

func NewResourceCommands(
	uow shared.UnitOfWork,
	resourceQueries queries.ResourceQueries,
	cache shared.ResourceCacheInvalidator,
	clk clock.Clock,
) ResourceCommands {
	return &resourceCommandsImpl{
		uow:     uow,
		queries: resourceQueries,
		cache:   cache,
		clock:   clk,
	}
}

func (uc *resourceCommandsImpl) Create(ctx context.Context, req CreateResourceRequest) (*queries.ResourceView, error) {
	res, err := resource.NewResource(req.Name, req.Description, req.Location, req.Capacity, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Resources().Create(ctx, res)
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.Info("resource created", "resource_id", res.ID(), "name", res.Name())
	uc.invalidate(ctx)

	return uc.readBack(ctx, res.ID())
}

func (uc *resourceCommandsImpl) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*queries.ResourceView, error) {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, derr := tx.Resources().LockByID(ctx, id)
		if derr != nil {
			return mapResourceErr(derr)
		}
		res.SetAvailability(available, uc.clock.Now())
		return tx.Resources().UpdateAvailability(ctx, res)
	})
	if err != nil {
		if errs.Is(err, errs.ErrResourceNotFound) {
			return nil, err
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.Info("resource availability changed", "resource_id", id, "available", available)
	uc.invalidate(ctx)

	return uc.readBack(ctx, id)
}

// Delete refuses while the resource still has bookings.
func (uc *resourceCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := tx.Resources().LockByID(ctx, id); derr != nil {
			return mapResourceErr(derr)
		}

		hasBookings, derr := tx.Resources().HasBookings(ctx, id)
		if derr != nil {
			return derr
		}
		if hasBookings {
			return errs.ErrResourceHasBookings
		}

		if derr = tx.Resources().Delete(ctx, id); derr != nil {
			if infra.IsKind(derr, infra.KindForeignKeyViolated) {
				return errs.ErrResourceHasBookings
			}
			return mapResourceErr(derr)
		}
		return nil
	})
	if err != nil {
		if errs.Is(err, errs.ErrResourceNotFound) || errs.Is(err, errs.ErrResourceHasBookings) {
			return err
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	slog.Info("resource deleted", "resource_id", id)
	uc.invalidate(ctx)
	return nil
}

func (uc *resourceCommandsImpl) readBack(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	view, err := uc.queries.GetByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (uc *resourceCommandsImpl) invalidate(ctx context.Context) {
	if err := uc.cache.InvalidateResourceList(ctx); err != nil {
		slog.Warn("failed to invalidate resource list cache", "error", err.Error())
	}
}
