package components

import (
	"parish-reserve/internal/handler"
	"parish-reserve/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewResourceHandler,
		api.NewBookingHandler,
		api.NewAvailabilityHandler,
		api.NewMaintenanceHandler,
		api.NewSummaryHandler,
	),
	fx.Invoke(handler.NewRouter),
)
