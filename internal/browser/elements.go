package browser

import (
	"context"
	"fmt"
)

// Typified elements wrap a handle with the operations its role supports.
// A page model declares the most specific type, and step code asks for the
// type it needs; a mismatch is reported by the resolver.

type TextInput struct{ Element }

// Fill replaces the input's value with text.
func (t TextInput) Fill(ctx context.Context, text string) error {
	if err := t.Clear(ctx); err != nil {
		return fmt.Errorf("clear input: %w", err)
	}
	return t.Type(ctx, text)
}

// Value returns the current value attribute.
func (t TextInput) Value(ctx context.Context) (string, error) {
	return t.Attribute(ctx, "value")
}

type Button struct{ Element }

type Link struct{ Element }

func (l Link) Href(ctx context.Context) (string, error) {
	return l.Attribute(ctx, "href")
}

type CheckBox struct{ Element }

// Set clicks the checkbox when its state differs from checked.
func (c CheckBox) Set(ctx context.Context, checked bool) error {
	selected, err := c.Selected(ctx)
	if err != nil {
		return err
	}
	if selected == checked {
		return nil
	}
	return c.Click(ctx)
}

type Radio struct{ Element }

// Choose selects the radio button if it is not selected yet.
func (r Radio) Choose(ctx context.Context) error {
	selected, err := r.Selected(ctx)
	if err != nil || selected {
		return err
	}
	return r.Click(ctx)
}

type TextBlock struct{ Element }

type Image struct{ Element }

func (i Image) Src(ctx context.Context) (string, error) {
	return i.Attribute(ctx, "src")
}

type Table struct{ Element }

// Rows returns the text of every body cell, one slice per row.
func (t Table) Rows(ctx context.Context) ([][]string, error) {
	rows, err := t.FindAll(ctx, "tbody tr")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		if rows, err = t.FindAll(ctx, "tr"); err != nil {
			return nil, err
		}
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells, err := row.FindAll(ctx, "td")
		if err != nil {
			return nil, err
		}
		if len(cells) == 0 {
			continue
		}

		texts := make([]string, 0, len(cells))
		for _, cell := range cells {
			text, err := cell.Text(ctx)
			if err != nil {
				return nil, err
			}
			texts = append(texts, text)
		}
		out = append(out, texts)
	}
	return out, nil
}
