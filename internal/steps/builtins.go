package steps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/grez-lucas/pagefactory/internal/browser"
	"github.com/grez-lucas/pagefactory/internal/i18n"
	"github.com/grez-lucas/pagefactory/internal/pagefactory"
)

func init() {
	RegisterBuiltins(pagefactory.Default())
}

// RegisterBuiltins declares the built-in actions on r. Their titles are
// i18n keys, so they resolve under whatever language the engine translates
// to.
func RegisterBuiltins(r *pagefactory.Registry) {
	pagefactory.Register(r, func(m *pagefactory.Model[Session]) {
		m.Title("built-in actions")

		pagefactory.Action(m, (*Session).FillField, i18n.FillField)
		pagefactory.Action(m, (*Session).ClickElement, i18n.ClickLink, i18n.ClickButton)
		pagefactory.Action(m, (*Session).SelectCheckBox, i18n.SelectCheckBox)
		pagefactory.Action(m, (*Session).CheckValue, i18n.CheckValue)
		pagefactory.Action(m, (*Session).CheckFieldNotEmpty, i18n.CheckFieldNotEmpty)
		pagefactory.Action(m, (*Session).CheckValuesNotEqual, i18n.CheckValuesNotEqual)
		pagefactory.Action(m, (*Session).CheckElementWithText, i18n.CheckElementWithText, i18n.CheckTextVisible)
		pagefactory.Action(m, (*Session).TextAppears, i18n.TextAppearsOnPage)
		pagefactory.Action(m, (*Session).TextAbsent, i18n.TextAbsentOnPage)
	})
}

// FillField clicks the element titled title on the current page, clears it
// and types text into it.
func (s *Session) FillField(ctx context.Context, title, text string) error {
	el, err := s.element("fill field", title)
	if err != nil {
		return err
	}

	if err := el.Click(ctx); err != nil {
		return fmt.Errorf("focus '%s': %w", title, err)
	}
	if err := (browser.TextInput{Element: el}).Fill(ctx, text); err != nil {
		return fmt.Errorf("fill '%s': %w", title, err)
	}

	s.record(title, text)
	return nil
}

// ClickElement clicks the element titled title on the current page. When
// no element answers to title, or it never becomes clickable, the first
// interactable element whose text contains title is clicked instead. A
// click on a titled element follows its declared redirect.
func (s *Session) ClickElement(ctx context.Context, title string) error {
	page, err := s.Current("click")
	if err != nil {
		return err
	}

	el, err := pagefactory.ResolveElement[browser.Element](s.engine, page, title)
	if err == nil {
		err = browser.WaitEnabled(ctx, el, s.timeout)
		if err != nil && !missing(err) {
			return err
		}
	} else if !pagefactory.IsNotFound(err) {
		return err
	}

	byTitle := err == nil
	if !byTitle {
		s.logger.Warn("element not usable by title, searching by text", "title", title, "error", err)

		var ferr error
		el, ferr = s.doc.FindByText(ctx, title)
		if ferr != nil {
			return fmt.Errorf("%w (text search: %v)", err, ferr)
		}
	}

	if err := el.Click(ctx); err != nil {
		return fmt.Errorf("click '%s': %w", title, err)
	}
	s.record(s.engine.ElementTitle(page, el), "is clicked")

	if !byTitle {
		return nil
	}
	return s.followRedirect(page, el)
}

// SelectCheckBox ticks the check box titled title.
func (s *Session) SelectCheckBox(ctx context.Context, title string) error {
	el, err := s.element("select check box", title)
	if err != nil {
		return err
	}

	if err := (browser.CheckBox{Element: el}).Set(ctx, true); err != nil {
		return fmt.Errorf("select '%s': %w", title, err)
	}

	s.record(title, "is selected")
	return nil
}

// CheckValue asserts that the value of the element titled title equals
// expected, ignoring whitespace.
func (s *Session) CheckValue(ctx context.Context, title, expected string) error {
	el, err := s.element("check value", title)
	if err != nil {
		return err
	}

	actual, err := valueOf(ctx, el, expected)
	if err != nil {
		return err
	}

	if stripSpaces(actual) != stripSpaces(expected) {
		return &AssertionError{Message: fmt.Sprintf("value of '%s' is '%s', expected '%s'", title, actual, expected)}
	}

	s.record(title, actual)
	return nil
}

// CheckFieldNotEmpty asserts that the element titled title shows some text
// or holds some value.
func (s *Session) CheckFieldNotEmpty(ctx context.Context, title string) error {
	el, err := s.element("check field", title)
	if err != nil {
		return err
	}

	value, err := el.Text(ctx)
	if err != nil {
		return err
	}
	if strings.TrimSpace(value) == "" {
		if value, err = el.Attribute(ctx, "value"); err != nil {
			return err
		}
	}

	if strings.TrimSpace(value) == "" {
		return &AssertionError{Message: fmt.Sprintf("field '%s' is empty", title)}
	}

	s.record(title, value)
	return nil
}

// CheckValuesNotEqual asserts that the value of the element titled title
// differs from unexpected, ignoring whitespace.
func (s *Session) CheckValuesNotEqual(ctx context.Context, title, unexpected string) error {
	el, err := s.element("check value", title)
	if err != nil {
		return err
	}

	actual, err := valueOf(ctx, el, unexpected)
	if err != nil {
		return err
	}

	if stripSpaces(actual) == stripSpaces(unexpected) {
		return &AssertionError{Message: fmt.Sprintf("value of '%s' is '%s', expected a different one", title, actual)}
	}

	s.record(title, actual)
	return nil
}

// CheckElementWithText asserts that text shows up on the page within the
// session timeout.
func (s *Session) CheckElementWithText(ctx context.Context, text string) error {
	if err := s.waitText(ctx, text, true); err != nil {
		return err
	}

	s.record("text is present", text)
	return nil
}

// TextAppears waits for text to show up on the page.
func (s *Session) TextAppears(ctx context.Context, text string) error {
	return s.waitText(ctx, text, true)
}

// TextAbsent waits for text to disappear from the page.
func (s *Session) TextAbsent(ctx context.Context, text string) error {
	return s.waitText(ctx, text, false)
}

func (s *Session) waitText(ctx context.Context, text string, present bool) error {
	err := browser.WaitText(ctx, s.doc, text, present, s.timeout)
	if !errors.Is(err, browser.ErrWaitTimeout) {
		return err
	}

	if present {
		return &AssertionError{Message: fmt.Sprintf("text '%s' did not appear on the page", text)}
	}
	return &AssertionError{Message: fmt.Sprintf("text '%s' is still on the page", text)}
}

// element resolves title on the current page as a plain element.
func (s *Session) element(op, title string) (browser.Element, error) {
	page, err := s.Current(op)
	if err != nil {
		return nil, err
	}
	return pagefactory.ResolveElement[browser.Element](s.engine, page, title)
}

func (s *Session) followRedirect(page, el any) error {
	target, err := s.engine.FindRedirect(page, el)
	if err != nil || target == nil {
		return err
	}
	return s.switchTo(target)
}

// missing reports whether err means the element is absent or never became
// usable, as opposed to a failure that a text search must not hide.
func missing(err error) bool {
	return errors.Is(err, browser.ErrWaitTimeout) || errors.Is(err, browser.ErrNoElement)
}

// valueOf reads what an element displays as its value: the value attribute
// of inputs, the title of selects (or their text when the title does not
// match expected) and the text of everything else.
func valueOf(ctx context.Context, el browser.Element, expected string) (string, error) {
	tag, err := el.TagName(ctx)
	if err != nil {
		return "", err
	}

	switch tag {
	case "input":
		return el.Attribute(ctx, "value")
	case "select":
		title, err := el.Attribute(ctx, "title")
		if err != nil {
			return "", err
		}
		if title != "" && stripSpaces(title) == stripSpaces(expected) {
			return title, nil
		}
		return el.Text(ctx)
	default:
		return el.Text(ctx)
	}
}

func stripSpaces(s string) string {
	return strings.Join(strings.Fields(s), "")
}
