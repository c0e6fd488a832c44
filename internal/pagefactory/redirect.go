package pagefactory

import "reflect"

// FindRedirect returns the page type handle navigates to, as declared with
// RedirectsTo on the current page. It returns nil when handle declares no
// destination and a PreconditionError when there is no current page.
func (e *Engine) FindRedirect(current any, handle any) (reflect.Type, error) {
	if isNil(current) {
		return nil, &PreconditionError{Operation: "find redirect"}
	}

	def, err := e.Definition(current)
	if err != nil {
		return nil, err
	}

	for i := range def.Bindings {
		b := &def.Bindings[i]
		if b.Kind != KindRedirect {
			continue
		}

		v, err := b.value(current, def.Title)
		if err != nil {
			return nil, err
		}
		if sameHandle(v, handle) {
			return b.Target, nil
		}
	}

	return nil, nil
}
