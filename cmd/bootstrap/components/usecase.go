package components

import (
	"parish-reserve/internal/pkg/clock"
	"parish-reserve/internal/usecase/commands"
	"parish-reserve/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewResourceCommands,
		commands.NewBookingCommands,
		commands.NewMaintenanceCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewResourceQueries,
		queries.NewBookingQueries,
		queries.NewAvailabilityQueries,
		queries.NewMaintenanceQueries,
		queries.NewAlertQueries,
		queries.NewStatsQueries,
	),
)
