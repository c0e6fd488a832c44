package browser

import (
	"context"
	"fmt"
)

// Locator is a lazy Element: the selector is looked up in the document on
// every call, so a page model can hold it before the element is rendered.
type Locator struct {
	doc      Document
	selector string
}

// Locate returns a lazy handle for selector in doc.
func Locate(doc Document, selector string) *Locator {
	return &Locator{doc: doc, selector: selector}
}

func (l *Locator) Selector() string { return l.selector }

func (l *Locator) String() string { return fmt.Sprintf("element(%s)", l.selector) }

func (l *Locator) resolve(ctx context.Context) (Element, error) {
	el, err := l.doc.Find(ctx, l.selector)
	if err != nil {
		return nil, fmt.Errorf("locate %q: %w", l.selector, err)
	}
	return el, nil
}

func (l *Locator) Click(ctx context.Context) error {
	el, err := l.resolve(ctx)
	if err != nil {
		return err
	}
	return el.Click(ctx)
}

func (l *Locator) Type(ctx context.Context, text string) error {
	el, err := l.resolve(ctx)
	if err != nil {
		return err
	}
	return el.Type(ctx, text)
}

func (l *Locator) Clear(ctx context.Context) error {
	el, err := l.resolve(ctx)
	if err != nil {
		return err
	}
	return el.Clear(ctx)
}

func (l *Locator) Text(ctx context.Context) (string, error) {
	el, err := l.resolve(ctx)
	if err != nil {
		return "", err
	}
	return el.Text(ctx)
}

func (l *Locator) Attribute(ctx context.Context, name string) (string, error) {
	el, err := l.resolve(ctx)
	if err != nil {
		return "", err
	}
	return el.Attribute(ctx, name)
}

func (l *Locator) Selected(ctx context.Context) (bool, error) {
	el, err := l.resolve(ctx)
	if err != nil {
		return false, err
	}
	return el.Selected(ctx)
}

func (l *Locator) Enabled(ctx context.Context) (bool, error) {
	el, err := l.resolve(ctx)
	if err != nil {
		return false, err
	}
	return el.Enabled(ctx)
}

func (l *Locator) Visible(ctx context.Context) (bool, error) {
	el, err := l.resolve(ctx)
	if err != nil {
		return false, err
	}
	return el.Visible(ctx)
}

func (l *Locator) Rect(ctx context.Context) (Rect, error) {
	el, err := l.resolve(ctx)
	if err != nil {
		return Rect{}, err
	}
	return el.Rect(ctx)
}

func (l *Locator) TagName(ctx context.Context) (string, error) {
	el, err := l.resolve(ctx)
	if err != nil {
		return "", err
	}
	return el.TagName(ctx)
}

func (l *Locator) FindAll(ctx context.Context, selector string) ([]Element, error) {
	el, err := l.resolve(ctx)
	if err != nil {
		return nil, err
	}
	return el.FindAll(ctx, selector)
}
