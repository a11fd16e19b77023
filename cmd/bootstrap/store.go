package bootstrap

import (
	"context"
	"log/slog"

	"parish-reserve/internal/infra/memstore"
	"parish-reserve/internal/infra/pgstore"
	"parish-reserve/internal/pkg/config"
	"parish-reserve/internal/pkg/errs"
	"parish-reserve/internal/usecase/commands"
	"parish-reserve/internal/usecase/queries"

	"go.uber.org/fx"
)

// One backend object serves both the command and query side of each
// aggregate, so the union interfaces below are what the container carries.

type ResourceStore interface {
	commands.ResourceRepository
	queries.ResourceReadStore
}

type BookingStore interface {
	commands.BookingRepository
	queries.BookingReadStore
}

type MaintenanceStore interface {
	commands.MaintenanceRepository
	queries.MaintenanceReadStore
}

var StoreModule = fx.Module("store",
	fx.Provide(
		NewStores,
		func(s ResourceStore) commands.ResourceRepository { return s },
		func(s ResourceStore) queries.ResourceReadStore { return s },
		func(s BookingStore) commands.BookingRepository { return s },
		func(s BookingStore) queries.BookingReadStore { return s },
		func(s MaintenanceStore) commands.MaintenanceRepository { return s },
		func(s MaintenanceStore) queries.MaintenanceReadStore { return s },
	),
)

// NewStores picks the repository backend from STORE_DRIVER. The memory
// driver serves development and tests; postgres runs the embedded
// migrations on startup and closes the pool on shutdown.
func NewStores(lc fx.Lifecycle, cfg config.Config, slogger *slog.Logger) (ResourceStore, BookingStore, MaintenanceStore, error) {
	switch cfg.Store.Driver {
	case "memory":
		return memstore.NewResourceStore(), memstore.NewBookingStore(), memstore.NewMaintenanceStore(), nil

	case "postgres":
		pool, err := pgstore.NewPool(context.Background(), cfg.Store)
		if err != nil {
			return nil, nil, nil, err
		}

		migrator, err := pgstore.NewMigrator(pool)
		if err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		if err := migrator.Up(context.Background()); err != nil {
			_ = migrator.Close()
			pool.Close()
			return nil, nil, nil, err
		}

		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				err := migrator.Close()
				pool.Close()
				return err
			},
		})

		return pgstore.NewResourceStore(pool, slogger),
			pgstore.NewBookingStore(pool, slogger),
			pgstore.NewMaintenanceStore(pool, slogger),
			nil

	default:
		return nil, nil, nil, errs.Newf("unknown store driver %q", cfg.Store.Driver)
	}
}
