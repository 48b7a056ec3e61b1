package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

const envPrefix = "CHESSBOARD_"

type Config struct {
	Addr          string
	AllowOrigins  string
	SessionTTL    time.Duration
	SweepInterval time.Duration
	LogLevel      string
	LogFormat     string
}

func Default() Config {
	return Config{
		Addr:          ":3000",
		AllowOrigins:  "*",
		SessionTTL:    2 * time.Hour,
		SweepInterval: time.Minute,
		LogLevel:      "info",
		LogFormat:     "console",
	}
}

// Load reads flags from args. A flag left unset on the command line falls
// back to its CHESSBOARD_* environment variable, then to the default.
func Load(args []string, getenv func(string) string) (Config, error) {
	cfg := Default()
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.AllowOrigins, "allow-origins", cfg.AllowOrigins, "comma separated CORS origins")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "drop boards idle for longer than this")
	fs.DurationVar(&cfg.SweepInterval, "sweep-interval", cfg.SweepInterval, "how often idle boards are dropped")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "trace, debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "console or json")

	set := map[string]bool{}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	var errs []error
	fs.VisitAll(func(f *flag.Flag) {
		if set[f.Name] {
			return
		}
		key := envPrefix + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		if v := getenv(key); v != "" {
			if err := f.Value.Set(v); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
			}
		}
	})
	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, cfg.Validate()
}

// FromEnvironment loads the config for the running process.
func FromEnvironment() (Config, error) {
	return Load(os.Args[1:], os.Getenv)
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session-ttl must be positive, got %s", c.SessionTTL)
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep-interval must be positive, got %s", c.SweepInterval)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log-format must be console or json, got %q", c.LogFormat)
	}
	return nil
}
