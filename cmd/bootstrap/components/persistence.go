package components

import (
	"context"
	"log/slog"

	"resource-booking/internal/infra/db"
	"resource-booking/internal/infra/memstore"
	"resource-booking/internal/infra/readstore"
	"resource-booking/internal/infra/uow"
	"resource-booking/internal/pkg/config"
	"resource-booking/internal/usecase/queries"
	"resource-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(NewPersistence),
)

type Persistence struct {
	fx.Out

	UnitOfWork shared.UnitOfWork
	Resources  queries.ResourceReadStore
	Bookings   queries.BookingReadStore
}

// NewPersistence wires the write and read sides onto the configured store driver.
func NewPersistence(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (Persistence, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		logger.Warn("using in-memory store; data is lost on restart")
		store := memstore.New()
		return Persistence{
			UnitOfWork: store,
			Resources:  memstore.NewResourceReadStore(store),
			Bookings:   memstore.NewBookingReadStore(store),
		}, nil
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return Persistence{}, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return Persistence{
		UnitOfWork: uow.NewPostgresUoW(pool),
		Resources:  readstore.NewResourceReadStore(pool),
		Bookings:   readstore.NewBookingReadStore(pool),
	}, nil
}
