package pagefactory

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	ErrNotRegistered    = errors.New("container type is not registered")
	ErrInheritanceCycle = errors.New("inheritance cycle")
)

// Catalog supplies the flattened bindings of container types.
type Catalog interface {
	Lookup(t reflect.Type) (*Definition, error)
}

// Definition is the flattened, ordered binding list of one container type.
type Definition struct {
	Title    string
	Type     reflect.Type
	Bindings []Binding
}

// Registry is the page-type binding cache. Declarations are recorded by
// Register; each type is flattened on first Lookup and never evicted.
type Registry struct {
	mu    sync.Mutex
	decls map[reflect.Type]func() declaration
	defs  sync.Map // reflect.Type -> *Definition
}

type declaration struct {
	title    string
	bindings []Binding
	parents  []parent
	errs     []error
}

func NewRegistry() *Registry {
	return &Registry{decls: make(map[reflect.Type]func() declaration)}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register records the declaration of container type *T in r. Registering
// the same type twice panics.
func Register[T any](r *Registry, declare func(m *Model[T])) {
	t := reflect.TypeFor[*T]()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.decls[t]; dup {
		panic(fmt.Sprintf("pagefactory: %s registered twice", t))
	}

	r.decls[t] = func() declaration {
		var m Model[T]
		declare(&m)
		return declaration{
			title:    m.title,
			bindings: m.bindings,
			parents:  m.parents,
			errs:     m.errs,
		}
	}
}

// Lookup returns the flattened definition of t, building it on first use.
func (r *Registry) Lookup(t reflect.Type) (*Definition, error) {
	if def, ok := r.defs.Load(t); ok {
		return def.(*Definition), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.build(t, map[reflect.Type]bool{})
}

// Registered reports whether t has a declaration.
func (r *Registry) Registered(t reflect.Type) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.decls[t]
	return ok
}

// build must be called with r.mu held.
func (r *Registry) build(t reflect.Type, visiting map[reflect.Type]bool) (*Definition, error) {
	if def, ok := r.defs.Load(t); ok {
		return def.(*Definition), nil
	}

	if visiting[t] {
		return nil, fmt.Errorf("%w: %s", ErrInheritanceCycle, t)
	}
	visiting[t] = true
	defer delete(visiting, t)

	declare, ok := r.decls[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotRegistered, t)
	}

	decl := declare()
	if len(decl.errs) > 0 {
		return nil, fmt.Errorf("invalid declaration of %s: %w", t, errors.Join(decl.errs...))
	}

	def := &Definition{
		Title:    decl.title,
		Type:     t,
		Bindings: append([]Binding(nil), decl.bindings...),
	}
	if def.Title == "" {
		def.Title = t.Elem().Name()
	}

	for _, p := range decl.parents {
		base, err := r.build(p.typ, visiting)
		if err != nil {
			return nil, fmt.Errorf("inherit %s into %s: %w", p.typ, t, err)
		}
		for _, b := range base.Bindings {
			def.Bindings = append(def.Bindings, b.inherited(p.up))
		}
	}

	actual, _ := r.defs.LoadOrStore(t, def)
	return actual.(*Definition), nil
}
