// Package browser is the driver layer behind page models: element handles
// and documents backed by go-rod, playwright-go or static HTML fixtures.
package browser

import (
	"context"
	"errors"
)

var (
	ErrNoElement   = errors.New("no element matches")
	ErrWaitTimeout = errors.New("condition not met before timeout")
	ErrDisabled    = errors.New("element is disabled")
)

// Rect is an element's bounding box in CSS pixels.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Element is a handle to one rendered element.
type Element interface {
	Click(ctx context.Context) error
	Type(ctx context.Context, text string) error
	Clear(ctx context.Context) error
	Text(ctx context.Context) (string, error)
	// Attribute returns "" when the attribute is absent.
	Attribute(ctx context.Context, name string) (string, error)
	Selected(ctx context.Context) (bool, error)
	Enabled(ctx context.Context) (bool, error)
	Visible(ctx context.Context) (bool, error)
	Rect(ctx context.Context) (Rect, error)
	TagName(ctx context.Context) (string, error)
	FindAll(ctx context.Context, selector string) ([]Element, error)
}

// Document is a rendered page (or frame) elements are looked up in.
type Document interface {
	Find(ctx context.Context, selector string) (Element, error)
	FindAll(ctx context.Context, selector string) ([]Element, error)
	// FindByText returns the first interactable element (link, button or
	// submit input) whose visible text contains text.
	FindByText(ctx context.Context, text string) (Element, error)
	HasText(ctx context.Context, text string) (bool, error)
}

// interactable is the selector FindByText scans.
const interactable = `a, button, input[type="submit"], input[type="button"], [role="button"]`
