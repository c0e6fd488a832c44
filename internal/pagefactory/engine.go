// Package pagefactory resolves human-readable titles against declared page
// models: element handles, nested blocks, element lists, actions, validation
// rules and redirects.
package pagefactory

import (
	"fmt"
	"log/slog"
	"reflect"
)

// Engine resolves titles against the models of a Catalog. It holds no
// per-call state and is safe for concurrent use.
type Engine struct {
	catalog   Catalog
	translate func(string) string
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCatalog replaces the process-wide Default registry.
func WithCatalog(c Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// WithTranslator resolves declared titles (for example message keys) into
// the labels callers use. Matching happens on the translated label.
func WithTranslator(fn func(string) string) Option {
	return func(e *Engine) {
		e.translate = fn
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{
		catalog:   Default(),
		translate: func(s string) string { return s },
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Label returns the translated primary title of b.
func (e *Engine) Label(b *Binding) string {
	return e.translate(b.Title())
}

// matches is the title matcher: exact equality between title and any
// translated title of b.
func (e *Engine) matches(b *Binding, title string) bool {
	if title == "" {
		return false
	}
	for _, t := range b.Titles {
		if t != "" && e.translate(t) == title {
			return true
		}
	}
	return false
}

// Definition returns the flattened model of container c.
func (e *Engine) Definition(c any) (*Definition, error) {
	if c == nil {
		return nil, &InternalError{Operation: "lookup", Container: "<nil>", Cause: fmt.Errorf("nil container")}
	}

	def, err := e.catalog.Lookup(reflect.TypeOf(c))
	if err != nil {
		return nil, &InternalError{Operation: "lookup", Container: reflect.TypeOf(c).String(), Cause: err}
	}

	return def, nil
}

// DisplayTitle returns the display title of container c, or its type name
// if c is not a registered container.
func (e *Engine) DisplayTitle(c any) string {
	def, err := e.Definition(c)
	if err != nil {
		return fmt.Sprintf("%T", c)
	}
	return def.Title
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
