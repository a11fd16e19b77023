package components

import (
	"context"

	"parish-reserve/internal/jobs"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(
		jobs.NewAlertSweeper,
	),
	fx.Invoke(runAlertSweeper),
)

func runAlertSweeper(lc fx.Lifecycle, sweeper *jobs.AlertSweeper) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return sweeper.Start()
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}
