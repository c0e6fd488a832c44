package steps

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/grez-lucas/pagefactory/internal/browser"
	"github.com/grez-lucas/pagefactory/internal/pagefactory"
)

// Action runs the action titled title with args. Actions declared on the
// current page take precedence over the built-ins of the same title.
func (s *Session) Action(ctx context.Context, title string, args ...any) error {
	page, err := s.Current("action")
	if err != nil {
		return err
	}

	callArgs := withContext(ctx, args)

	err = s.engine.Dispatch(page, title, callArgs...)
	if !actionMissing(err) {
		return err
	}

	err = s.engine.Dispatch(s, title, callArgs...)
	if actionMissing(err) || errors.Is(err, pagefactory.ErrNotRegistered) {
		return &pagefactory.NotFoundError{
			Kind:      pagefactory.KindAction,
			Title:     title,
			Container: s.engine.DisplayTitle(page),
		}
	}
	return err
}

// ActionInBlock runs the action titled title on the first block of the
// current page addressed by path.
func (s *Session) ActionInBlock(ctx context.Context, path, title string, args ...any) error {
	page, err := s.Current("action in block")
	if err != nil {
		return err
	}
	return s.engine.DispatchInBlock(page, path, title, withContext(ctx, args)...)
}

// Validate fires the validation rule titled rule on the current page.
func (s *Session) Validate(ctx context.Context, rule string, args ...any) error {
	page, err := s.Current("validation")
	if err != nil {
		return err
	}
	return s.engine.FireValidationRule(page, rule, withContext(ctx, args)...)
}

// actionMissing reports whether err is Dispatch's own verdict that no
// action answers to the title. A NotFoundError raised inside a running
// action arrives wrapped and does not count.
func actionMissing(err error) bool {
	nf, ok := err.(*pagefactory.NotFoundError)
	return ok && nf.Kind == pagefactory.KindAction
}

var elementType = reflect.TypeFor[browser.Element]()

// elementKinds maps the element-type words used in steps, in every
// supported language, to the handle type they ask for.
var elementKinds = map[string]reflect.Type{
	"element":        elementType,
	"элемент":        elementType,
	"textinput":      reflect.TypeFor[browser.TextInput](),
	"текстовое поле": reflect.TypeFor[browser.TextInput](),
	"checkbox":       reflect.TypeFor[browser.CheckBox](),
	"чекбокс":        reflect.TypeFor[browser.CheckBox](),
	"radiobutton":    reflect.TypeFor[browser.Radio](),
	"радиобатон":     reflect.TypeFor[browser.Radio](),
	"table":          reflect.TypeFor[browser.Table](),
	"таблицу":        reflect.TypeFor[browser.Table](),
	"header":         reflect.TypeFor[browser.TextBlock](),
	"заголовок":      reflect.TypeFor[browser.TextBlock](),
	"button":         reflect.TypeFor[browser.Button](),
	"кнопку":         reflect.TypeFor[browser.Button](),
	"link":           reflect.TypeFor[browser.Link](),
	"ссылку":         reflect.TypeFor[browser.Link](),
	"image":          reflect.TypeFor[browser.Image](),
	"изображение":    reflect.TypeFor[browser.Image](),
}

// ElementKind returns the handle type named by word. Unknown words ask for
// a plain element.
func ElementKind(word string) reflect.Type {
	if t, ok := elementKinds[strings.ToLower(strings.TrimSpace(word))]; ok {
		return t
	}
	return elementType
}

// FindElementInBlock resolves the element titled title inside the blocks
// of the current page addressed by path, as the handle type named by kind.
func (s *Session) FindElementInBlock(path, kind, title string) (any, error) {
	page, err := s.Current("find element in block")
	if err != nil {
		return nil, err
	}
	return s.engine.ElementInBlockOf(page, path, title, ElementKind(kind))
}

// FindElementInList returns the first element of the list titled list on
// the current page whose text, trimmed, equals text.
func (s *Session) FindElementInList(ctx context.Context, list, text string) (browser.Element, error) {
	page, err := s.Current("find element in list")
	if err != nil {
		return nil, err
	}

	items, err := pagefactory.ResolveList[browser.Element](s.engine, page, list)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		got, err := item.Text(ctx)
		if err != nil {
			return nil, fmt.Errorf("read item of '%s': %w", list, err)
		}
		if strings.TrimSpace(got) == text {
			return item, nil
		}
	}

	return nil, &AssertionError{Message: fmt.Sprintf("no element with text '%s' in list '%s'", text, list)}
}
