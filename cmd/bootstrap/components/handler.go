package components

import (
	"resource-booking/internal/handler"
	"resource-booking/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewResourceHandler,
	),
	fx.Invoke(handler.NewRouter),
)
