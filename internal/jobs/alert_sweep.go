// Package jobs holds the background tasks that run beside the HTTP server.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"parish-reserve/internal/pkg/config"
	"parish-reserve/internal/usecase/queries"

	"github.com/robfig/cron/v3"
)

// AlertSweeper periodically evaluates maintenance schedules and logs the
// alerts it finds. Staff read these from the log stream; the HTTP alerts
// endpoint serves the same data on demand.
type AlertSweeper struct {
	cron    *cron.Cron
	alerts  queries.AlertQueries
	slogger *slog.Logger
	cfg     config.AlertConfig
}

func NewAlertSweeper(alerts queries.AlertQueries, slogger *slog.Logger, cfg config.AlertConfig) *AlertSweeper {
	return &AlertSweeper{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		alerts:  alerts,
		slogger: slogger,
		cfg:     cfg,
	}
}

// Start registers the sweep and begins the scheduler. A bad cron spec is a
// configuration error and is returned rather than logged away.
func (s *AlertSweeper) Start() error {
	if !s.cfg.SweepEnabled {
		s.slogger.Info("alert sweep disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(s.cfg.SweepSpec, s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.slogger.Info("alert sweep scheduled", slog.String("spec", s.cfg.SweepSpec))
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *AlertSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep runs one evaluation pass. Exported so operators can trigger it
// outside the schedule.
func (s *AlertSweeper) Sweep() {
	defer func() {
		if r := recover(); r != nil {
			s.slogger.Error("alert sweep panicked", slog.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	alerts, err := s.alerts.List(ctx)
	if err != nil {
		s.slogger.Error("alert sweep failed", slog.String("error", err.Error()))
		return
	}

	overdue, dueSoon := 0, 0
	for _, a := range alerts {
		switch a.Kind {
		case "overdue":
			overdue++
		default:
			dueSoon++
		}
		s.slogger.Warn("maintenance alert",
			slog.String("kind", a.Kind),
			slog.String("schedule_id", a.ScheduleID.String()),
			slog.String("resource_id", a.ResourceID.String()),
			slog.String("task_type", a.TaskType),
			slog.String("priority", a.Priority),
			slog.Time("due_date", a.DueDate),
		)
	}
	s.slogger.Info("alert sweep finished",
		slog.Int("overdue", overdue),
		slog.Int("due_soon", dueSoon),
	)
}
