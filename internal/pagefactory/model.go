package pagefactory

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeFor[error]()

// Model collects the declared structure of container type *T. It is filled
// by the declaration function passed to Register and flattened by the
// Registry on first use.
type Model[T any] struct {
	title    string
	bindings []Binding
	parents  []parent
	errs     []error
}

type parent struct {
	typ reflect.Type
	up  func(c any) any
}

// Title sets the display title used in diagnostics. Defaults to the type name.
func (m *Model[T]) Title(title string) {
	m.title = title
}

// ElementOption configures an element binding.
type ElementOption func(*elementOptions)

type elementOptions struct {
	target reflect.Type
}

// RedirectsTo records that interacting with the element navigates to page *P.
func RedirectsTo[P any]() ElementOption {
	return func(o *elementOptions) {
		o.target = reflect.TypeFor[*P]()
	}
}

// Element declares a single element handle of type E titled title.
func Element[T, E any](m *Model[T], title string, get func(*T) E, opts ...ElementOption) {
	var o elementOptions
	for _, opt := range opts {
		opt(&o)
	}

	access := func(c any) any { return get(c.(*T)) }
	m.bindings = append(m.bindings, Binding{
		Kind:   KindElement,
		Titles: []string{title},
		Type:   reflect.TypeFor[E](),
		get:    access,
	})

	if o.target != nil {
		m.bindings = append(m.bindings, Binding{
			Kind:   KindRedirect,
			Titles: []string{title},
			Type:   reflect.TypeFor[E](),
			Target: o.target,
			get:    access,
		})
	}
}

// Block declares a nested container *B titled title. B must be registered
// as well for its own members to be searchable.
func Block[T, B any](m *Model[T], title string, get func(*T) *B) {
	m.bindings = append(m.bindings, Binding{
		Kind:   KindBlock,
		Titles: []string{title},
		Type:   reflect.TypeFor[*B](),
		get:    func(c any) any { return get(c.(*T)) },
	})
}

// List declares an ordered collection of element handles titled title.
func List[T, E any](m *Model[T], title string, get func(*T) []E) {
	m.bindings = append(m.bindings, Binding{
		Kind:   KindList,
		Titles: []string{title},
		Type:   reflect.TypeFor[[]E](),
		get:    func(c any) any { return get(c.(*T)) },
	})
}

// Action declares an operation reachable by any of titles. fn must be a
// function whose first parameter is *T, typically a method expression such
// as (*LoginPage).Submit, returning nothing or a single error.
func Action[T any](m *Model[T], fn any, titles ...string) {
	m.operation(KindAction, fn, titles)
}

// ValidationRule declares a named assertion routine. fn follows the same
// shape as for Action.
func ValidationRule[T any](m *Model[T], title string, fn any) {
	m.operation(KindValidationRule, fn, []string{title})
}

// Inherit makes every binding of *P reachable from *T through up. Inherited
// bindings are placed after T's own bindings.
func Inherit[T, P any](m *Model[T], up func(*T) *P) {
	m.parents = append(m.parents, parent{
		typ: reflect.TypeFor[*P](),
		up:  func(c any) any { return up(c.(*T)) },
	})
}

func (m *Model[T]) operation(kind Kind, fn any, titles []string) {
	if len(titles) == 0 {
		m.errs = append(m.errs, fmt.Errorf("%s declared without a title", kind))
		return
	}

	v := reflect.ValueOf(fn)
	if err := checkOperation(fn, reflect.TypeFor[*T]()); err != nil {
		m.errs = append(m.errs, fmt.Errorf("%s '%s': %w", kind, titles[0], err))
		return
	}

	m.bindings = append(m.bindings, Binding{
		Kind:     kind,
		Titles:   append([]string(nil), titles...),
		Type:     v.Type(),
		receiver: func(c any) any { return c },
		fn:       v,
	})
}

func checkOperation(fn any, recv reflect.Type) error {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return fmt.Errorf("expected a function, got %T", fn)
	}

	t := v.Type()
	if t.NumIn() == 0 || t.In(0) != recv {
		return fmt.Errorf("first parameter of %s must be %s", t, recv)
	}

	switch t.NumOut() {
	case 0:
	case 1:
		if t.Out(0) != errorType {
			return fmt.Errorf("%s must return nothing or error", t)
		}
	default:
		return fmt.Errorf("%s must return nothing or error", t)
	}

	return nil
}
