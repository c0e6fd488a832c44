package pagefactory

import (
	"fmt"
	"reflect"
)

var anyType = reflect.TypeFor[any]()

// ResolveElement returns the element titled title declared on container c,
// viewed as E. The first binding matching by title decides the outcome: if
// its declared type cannot be viewed as E the result is a WrongTypeError,
// and later bindings with the same title are not consulted.
func ResolveElement[E any](e *Engine, c any, title string) (E, error) {
	var zero E

	v, err := e.resolveElement(c, title, reflect.TypeFor[E]())
	if err != nil {
		return zero, err
	}

	return as[E](v), nil
}

// ResolveElementInBlock resolves title inside the blocks addressed by path.
// Blocks are tried in resolution order; the first one declaring the title
// wins.
func ResolveElementInBlock[E any](e *Engine, root any, path, title string) (E, error) {
	var zero E

	v, err := e.resolveElementInBlock(root, path, title, reflect.TypeFor[E]())
	if err != nil {
		return zero, err
	}

	return as[E](v), nil
}

// FindElement looks for title on root first and then inside every block
// below it, depth-first in declaration order. The first hit wins.
func FindElement[E any](e *Engine, root any, title string) (E, error) {
	var zero E

	v, err := e.findElement(root, title, reflect.TypeFor[E]())
	if err != nil {
		return zero, err
	}

	return as[E](v), nil
}

// Element resolves title on c without a type requirement.
func (e *Engine) Element(c any, title string) (any, error) {
	return e.resolveElement(c, title, anyType)
}

// ElementInBlock resolves title inside path without a type requirement.
func (e *Engine) ElementInBlock(root any, path, title string) (any, error) {
	return e.resolveElementInBlock(root, path, title, anyType)
}

// ElementInBlockOf resolves title inside path and checks it against a type
// chosen at run time, such as one picked from a step's element-type word.
func (e *Engine) ElementInBlockOf(root any, path, title string, want reflect.Type) (any, error) {
	return e.resolveElementInBlock(root, path, title, want)
}

// ElementTitle returns the label of the element binding on c holding handle,
// or a printable form of handle when no binding holds it.
func (e *Engine) ElementTitle(c any, handle any) string {
	def, err := e.Definition(c)
	if err == nil {
		for i := range def.Bindings {
			b := &def.Bindings[i]
			if b.Kind != KindElement {
				continue
			}
			v, err := b.value(c, def.Title)
			if err != nil {
				e.logger.Debug("failed to read element while looking up its title", "element", e.Label(b), "error", err)
				continue
			}
			if sameHandle(v, handle) {
				return e.Label(b)
			}
		}
	}

	if s, ok := handle.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", handle)
}

func (e *Engine) resolveElement(c any, title string, want reflect.Type) (any, error) {
	def, err := e.Definition(c)
	if err != nil {
		return nil, err
	}

	for i := range def.Bindings {
		b := &def.Bindings[i]
		if b.Kind != KindElement || !e.matches(b, title) {
			continue
		}
		return e.view(c, def, b, title, want)
	}

	return nil, &NotFoundError{Kind: KindElement, Title: title, Container: def.Title}
}

func (e *Engine) findElement(c any, title string, want reflect.Type) (any, error) {
	v, err := e.resolveElement(c, title, want)
	if !IsNotFound(err) {
		return v, err
	}

	def, err := e.Definition(c)
	if err != nil {
		return nil, err
	}

	for i := range def.Bindings {
		b := &def.Bindings[i]
		if b.Kind != KindBlock {
			continue
		}

		block, err := b.value(c, def.Title)
		if err != nil {
			return nil, err
		}
		if isNil(block) {
			continue
		}

		v, err := e.findElement(block, title, want)
		if !IsNotFound(err) {
			return v, err
		}
	}

	return nil, &NotFoundError{Kind: KindElement, Title: title, Container: def.Title}
}

func (e *Engine) resolveElementInBlock(root any, path, title string, want reflect.Type) (any, error) {
	blocks, err := e.ResolveBlocks(root, path, false)
	if err != nil {
		return nil, err
	}

	if len(blocks) == 0 {
		return nil, &NotFoundError{Kind: KindBlock, Title: path, Container: e.DisplayTitle(root)}
	}

	for _, block := range blocks {
		v, err := e.resolveElement(block.Value, title, want)
		if IsNotFound(err) {
			continue
		}
		return v, err
	}

	return nil, &NotFoundError{Kind: KindElement, Title: title, Path: path, Container: e.DisplayTitle(root)}
}

// view reads b from c and checks it against want.
func (e *Engine) view(c any, def *Definition, b *Binding, title string, want reflect.Type) (any, error) {
	v, err := b.value(c, def.Title)
	if err != nil {
		return nil, err
	}

	if b.Type.AssignableTo(want) {
		return v, nil
	}
	if !isNil(v) && reflect.TypeOf(v).AssignableTo(want) {
		return v, nil
	}

	return nil, &WrongTypeError{
		Title:     title,
		Container: def.Title,
		Requested: want,
		Declared:  b.Type,
	}
}

// as converts a value already checked against E. A nil interface becomes
// the zero E.
func as[E any](v any) E {
	if v == nil {
		var zero E
		return zero
	}
	return v.(E)
}

func sameHandle(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
