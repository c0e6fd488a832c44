// Package steps is the surface step definitions call: it keeps the current
// page of a scenario, dispatches actions by title (page actions first, then
// the localized built-ins) and follows redirects declared by page models.
package steps

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/grez-lucas/pagefactory/internal/browser"
	"github.com/grez-lucas/pagefactory/internal/pagefactory"
	"github.com/grez-lucas/pagefactory/internal/report"
)

var ErrNoFactory = errors.New("no factory provided for page")

// Factory builds a page model bound to doc.
type Factory func(doc browser.Document) any

// Session is the state of one scenario. It is not safe for concurrent use;
// every scenario owns its own Session.
type Session struct {
	ID uuid.UUID

	engine    *pagefactory.Engine
	doc       browser.Document
	current   any
	factories map[reflect.Type]Factory
	recorder  report.Recorder
	logger    *slog.Logger
	timeout   time.Duration
}

// Option configures a Session.
type Option func(*Session)

// WithEngine resolves pages through e instead of an engine over the default
// registry. Built-in actions answer only if e's catalog carries them, see
// RegisterBuiltins; without them Action reports unknown titles as missing
// from the current page.
func WithEngine(e *pagefactory.Engine) Option {
	return func(s *Session) {
		s.engine = e
	}
}

func WithRecorder(r report.Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithTimeout bounds the waits of built-in actions.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.timeout = d
	}
}

func NewSession(doc browser.Document, opts ...Option) *Session {
	s := &Session{
		ID:        uuid.New(),
		doc:       doc,
		factories: make(map[reflect.Type]Factory),
		logger:    slog.Default(),
		timeout:   10 * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.engine == nil {
		s.engine = pagefactory.New(pagefactory.WithLogger(s.logger))
	}
	s.logger = s.logger.With("session", s.ID.String())

	return s
}

func (s *Session) Engine() *pagefactory.Engine { return s.engine }

func (s *Session) Document() browser.Document { return s.doc }

// Provide registers how to build page *P when a scenario opens it or is
// redirected to it.
func Provide[P any](s *Session, factory func(doc browser.Document) *P) {
	s.factories[reflect.TypeFor[*P]()] = func(doc browser.Document) any {
		return factory(doc)
	}
}

// Open builds page *P with its factory and makes it the current page.
func Open[P any](s *Session) (*P, error) {
	if err := s.switchTo(reflect.TypeFor[*P]()); err != nil {
		return nil, err
	}
	return s.current.(*P), nil
}

// SetPage makes page the current page.
func (s *Session) SetPage(page any) {
	s.current = page
	s.logger.Info("switched page", "page", s.engine.DisplayTitle(page))
}

// Current returns the current page, or a PreconditionError naming op when
// no page has been opened.
func (s *Session) Current(op string) (any, error) {
	if s.current == nil {
		return nil, &pagefactory.PreconditionError{Operation: op}
	}
	return s.current, nil
}

// CurrentPage returns the current page as *P.
func CurrentPage[P any](s *Session) (*P, error) {
	page, err := s.Current("current page")
	if err != nil {
		return nil, err
	}
	p, ok := page.(*P)
	if !ok {
		return nil, fmt.Errorf("current page is '%s', not %s", s.engine.DisplayTitle(page), reflect.TypeFor[*P]())
	}
	return p, nil
}

func (s *Session) switchTo(t reflect.Type) error {
	factory, ok := s.factories[t]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoFactory, t)
	}
	s.SetPage(factory(s.doc))
	return nil
}

func (s *Session) record(label string, value any) {
	report.Record(s.recorder, s.logger, label, value)
}

// withContext prepends ctx to args: operations dispatched through a
// Session receive the step context as their first argument.
func withContext(ctx context.Context, args []any) []any {
	return append([]any{ctx}, args...)
}
