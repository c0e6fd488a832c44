package steps

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/grez-lucas/pagefactory/internal/browser"
	"github.com/grez-lucas/pagefactory/internal/config"
	"github.com/grez-lucas/pagefactory/internal/i18n"
	"github.com/grez-lucas/pagefactory/internal/pagefactory"
	"github.com/grez-lucas/pagefactory/internal/report"
)

var ErrNoFixture = errors.New("static driver needs a fixture")

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Start opens the driver named by cfg and returns a session over its
// document. Built-in titles are translated to cfg.Lang and waits are
// bounded by cfg.Timeout. Reported values go to logger unless opts
// install another recorder; opts are applied last. Closing the returned
// io.Closer releases the browser.
func Start(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Session, io.Closer, error) {
	tr, err := i18n.New(cfg.Lang)
	if err != nil {
		return nil, nil, err
	}

	doc, closer, err := openDocument(cfg)
	if err != nil {
		return nil, nil, err
	}

	engine := pagefactory.New(
		pagefactory.WithTranslator(tr.Translate),
		pagefactory.WithLogger(logger),
	)

	base := []Option{
		WithEngine(engine),
		WithLogger(logger),
		WithRecorder(report.NewLogRecorder(logger)),
		WithTimeout(cfg.Timeout),
	}
	s := NewSession(doc, append(base, opts...)...)

	s.logger.Info("session started", "driver", cfg.Driver, "lang", tr.Language().String(), "timeout", cfg.Timeout)
	return s, closer, nil
}

func openDocument(cfg *config.Config) (browser.Document, io.Closer, error) {
	switch cfg.Driver {
	case config.DriverRod:
		session, err := browser.Launch(browser.LaunchOptions{
			Bin:      cfg.ChromeBin,
			Headless: cfg.Headless,
			Stealth:  true,
		})
		if err != nil {
			return nil, nil, err
		}
		return browser.NewRodDocument(session.Page, cfg.Typing), closerFunc(session.Close), nil

	case config.DriverPlaywright:
		session, err := browser.LaunchPlaywright(cfg.Headless)
		if err != nil {
			return nil, nil, err
		}
		return browser.NewPlaywrightDocument(session.Page, cfg.Typing), closerFunc(session.Close), nil

	case config.DriverStatic:
		if cfg.Fixture == "" {
			return nil, nil, fmt.Errorf("%w: set %s", ErrNoFixture, config.EnvFixture)
		}
		html, err := os.ReadFile(cfg.Fixture)
		if err != nil {
			return nil, nil, fmt.Errorf("read fixture: %w", err)
		}
		doc, err := browser.NewStaticDocument(string(html))
		if err != nil {
			return nil, nil, err
		}
		return doc, closerFunc(func() error { return nil }), nil

	default:
		return nil, nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
}
