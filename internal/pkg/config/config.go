package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.)
// - default: Values common across all environments (operating window, policies)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	CORS    CORSConfig
	Log     LogConfig
	Booking BookingConfig
	Alerts  AlertConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

// StoreConfig selects the repository backend. The memory driver needs no
// further settings; postgres requires the DB_* variables.
type StoreConfig struct {
	Driver   string `envconfig:"STORE_DRIVER" default:"memory"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"parish"`
	Password string `envconfig:"DB_PASSWORD" default:""`
	DBName   string `envconfig:"DB_NAME" default:"parish_reserve"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// BookingConfig carries the reservation engine knobs.
//
// ConflictPolicy decides what happens when a new booking overlaps existing
// ones on the same resource: "flag" records the conflicts on both sides and
// persists the booking anyway, "reject" refuses the creation.
type BookingConfig struct {
	ConflictPolicy     string `envconfig:"BOOKING_CONFLICT_POLICY" default:"flag"`
	MaxOccurrences     int    `envconfig:"BOOKING_MAX_OCCURRENCES" default:"52"`
	HorizonDays        int    `envconfig:"BOOKING_HORIZON_DAYS" default:"365"`
	OperatingDayStart  int    `envconfig:"BOOKING_DAY_START_HOUR" default:"6"`
	OperatingDayEnd    int    `envconfig:"BOOKING_DAY_END_HOUR" default:"22"`
	UtilizationWindowD int    `envconfig:"BOOKING_UTILIZATION_WINDOW_DAYS" default:"30"`
}

type AlertConfig struct {
	DueSoonWindow time.Duration `envconfig:"ALERT_DUE_SOON_WINDOW" default:"168h"`
	SweepSpec     string        `envconfig:"ALERT_SWEEP_SPEC" default:"0 7 * * *"`
	SweepEnabled  bool          `envconfig:"ALERT_SWEEP_ENABLED" default:"true"`
}

func (c *StoreConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		Store: StoreConfig{
			Driver: "memory",
		},
		Log: LogConfig{
			Level:      "error",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Booking: BookingConfig{
			ConflictPolicy:     "flag",
			MaxOccurrences:     52,
			HorizonDays:        365,
			OperatingDayStart:  6,
			OperatingDayEnd:    22,
			UtilizationWindowD: 30,
		},
		Alerts: AlertConfig{
			DueSoonWindow: 168 * time.Hour,
			SweepEnabled:  false,
		},
	}
}
