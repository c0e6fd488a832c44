// Package config loads session settings from .env files and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/grez-lucas/pagefactory/internal/browser"
	"github.com/grez-lucas/pagefactory/internal/logging"
	"github.com/joho/godotenv"
)

const (
	DriverRod        = "rod"
	DriverPlaywright = "playwright"
	DriverStatic     = "static"
)

// Environment variables read by Load.
const (
	EnvDriver    = "PAGEFACTORY_DRIVER"
	EnvHeadless  = "PAGEFACTORY_HEADLESS"
	EnvChromeBin = "PAGEFACTORY_CHROME_BIN"
	EnvTimeout   = "PAGEFACTORY_TIMEOUT"
	EnvTyping    = "PAGEFACTORY_TYPING"
	EnvLang      = "PAGEFACTORY_LANG"
	EnvLogLevel  = "PAGEFACTORY_LOG_LEVEL"
	EnvLogFormat = "PAGEFACTORY_LOG_FORMAT"
	EnvFixture   = "PAGEFACTORY_FIXTURE"
)

// Raw holds unvalidated settings as read from the environment.
type Raw struct {
	Driver    string
	Headless  string
	ChromeBin string
	Timeout   string
	Typing    string
	Lang      string
	LogLevel  string
	LogFormat string
	Fixture   string
}

type Config struct {
	Driver    string
	Headless  bool
	ChromeBin string
	// Timeout bounds every wait performed by a step.
	Timeout   time.Duration
	Typing    browser.TypingMode
	Lang      string
	LogLevel  string
	LogFormat string
	// Fixture is the HTML file the static driver serves.
	Fixture string
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Driver:    DriverRod,
		Headless:  true,
		Timeout:   10 * time.Second,
		Typing:    browser.TypingFast,
		Lang:      "en",
		LogLevel:  "info",
		LogFormat: logging.FormatConsole,
	}
}

// Load reads the given .env files (".env" when none are named; missing
// files are skipped) and then the PAGEFACTORY_* variables. Variables
// already set in the environment win over file values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	return NewConfig(Raw{
		Driver:    os.Getenv(EnvDriver),
		Headless:  os.Getenv(EnvHeadless),
		ChromeBin: os.Getenv(EnvChromeBin),
		Timeout:   os.Getenv(EnvTimeout),
		Typing:    os.Getenv(EnvTyping),
		Lang:      os.Getenv(EnvLang),
		LogLevel:  os.Getenv(EnvLogLevel),
		LogFormat: os.Getenv(EnvLogFormat),
		Fixture:   os.Getenv(EnvFixture),
	})
}

// NewConfig validates raw on top of Default. Empty fields keep defaults.
func NewConfig(raw Raw) (*Config, error) {
	cfg := Default()
	var errs []error

	switch raw.Driver {
	case "":
	case DriverRod, DriverPlaywright, DriverStatic:
		cfg.Driver = raw.Driver
	default:
		errs = append(errs, fmt.Errorf("%s: unknown driver %q", EnvDriver, raw.Driver))
	}

	if raw.Headless != "" {
		headless, err := strconv.ParseBool(raw.Headless)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvHeadless, err))
		} else {
			cfg.Headless = headless
		}
	}

	cfg.ChromeBin = raw.ChromeBin
	cfg.Fixture = raw.Fixture

	if raw.Timeout != "" {
		timeout, err := time.ParseDuration(raw.Timeout)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", EnvTimeout, err))
		case timeout <= 0:
			errs = append(errs, fmt.Errorf("%s: must be positive, got %s", EnvTimeout, timeout))
		default:
			cfg.Timeout = timeout
		}
	}

	typing, err := browser.ParseTypingMode(raw.Typing)
	if err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", EnvTyping, err))
	} else {
		cfg.Typing = typing
	}

	if raw.Lang != "" {
		cfg.Lang = raw.Lang
	}

	if raw.LogLevel != "" {
		if _, err := logging.ParseLevel(raw.LogLevel); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvLogLevel, err))
		} else {
			cfg.LogLevel = raw.LogLevel
		}
	}

	switch raw.LogFormat {
	case "":
	case logging.FormatConsole, logging.FormatJSON:
		cfg.LogFormat = raw.LogFormat
	default:
		errs = append(errs, fmt.Errorf("%s: unknown format %q", EnvLogFormat, raw.LogFormat))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}
