package bootstrap

import (
	"resource-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	components.PersistenceModule,
	CacheModule,
	EventsModule,
	components.UseCaseModule,
	components.HandlerModule,
)
