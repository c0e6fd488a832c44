package pagefactory

import "reflect"

// ResolveList returns the elements of every list titled title on c whose
// element type can be viewed as E, concatenated in declaration order.
// Bindings of another shape are treated as absent, so a plain element with
// the same title yields a NotFoundError rather than a WrongTypeError.
func ResolveList[E any](e *Engine, c any, title string) ([]E, error) {
	items, err := e.resolveList(c, title, reflect.TypeFor[E]())
	if err != nil {
		return nil, err
	}

	out := make([]E, 0, len(items))
	for _, item := range items {
		out = append(out, as[E](item))
	}

	return out, nil
}

// ResolveListInBlock resolves a list inside the first block addressed by path.
func ResolveListInBlock[E any](e *Engine, root any, path, title string) ([]E, error) {
	block, err := e.FindBlock(root, path)
	if err != nil {
		return nil, err
	}

	return ResolveList[E](e, block.Value, title)
}

// List resolves title on c without an element type requirement.
func (e *Engine) List(c any, title string) ([]any, error) {
	return e.resolveList(c, title, anyType)
}

func (e *Engine) resolveList(c any, title string, want reflect.Type) ([]any, error) {
	def, err := e.Definition(c)
	if err != nil {
		return nil, err
	}

	var (
		items   []any
		matched bool
	)
	for i := range def.Bindings {
		b := &def.Bindings[i]
		if b.Kind != KindList || !e.matches(b, title) {
			continue
		}
		if b.Type.Kind() != reflect.Slice || !b.Type.Elem().AssignableTo(want) {
			continue
		}

		v, err := b.value(c, def.Title)
		if err != nil {
			return nil, err
		}
		matched = true

		rv := reflect.ValueOf(v)
		for j := 0; j < rv.Len(); j++ {
			items = append(items, rv.Index(j).Interface())
		}
	}

	if !matched {
		return nil, &NotFoundError{Kind: KindList, Title: title, Container: def.Title}
	}

	if items == nil {
		items = []any{}
	}
	return items, nil
}
