package browser

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// StaticDocument is a Document over a parsed HTML snapshot, such as a
// fixture saved by capture-fixtures. Interactions mutate the parsed tree:
// typing edits the value attribute, clicking a checkbox or radio toggles
// checked. Clicks are recorded in order for inspection.
type StaticDocument struct {
	doc *goquery.Document

	mu     sync.Mutex
	clicks []string
}

// NewStaticDocument parses html.
func NewStaticDocument(html string) (*StaticDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &StaticDocument{doc: doc}, nil
}

// Clicks returns the describe() strings of clicked elements, oldest first.
func (d *StaticDocument) Clicks() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.clicks...)
}

// HTML renders the current state of the tree.
func (d *StaticDocument) HTML() (string, error) {
	return d.doc.Html()
}

func (d *StaticDocument) Find(ctx context.Context, selector string) (Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoElement, selector)
	}
	return &StaticElement{doc: d, sel: sel}, nil
}

func (d *StaticDocument) FindAll(ctx context.Context, selector string) ([]Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.wrap(d.doc.Find(selector)), nil
}

func (d *StaticDocument) FindByText(ctx context.Context, text string) (Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sel := d.doc.Find(interactable).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(visibleText(s), text)
	}).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: text %q", ErrNoElement, text)
	}
	return &StaticElement{doc: d, sel: sel}, nil
}

func (d *StaticDocument) HasText(ctx context.Context, text string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return strings.Contains(d.doc.Find("body").Text(), text), nil
}

func (d *StaticDocument) wrap(sel *goquery.Selection) []Element {
	out := make([]Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &StaticElement{doc: d, sel: s})
	})
	return out
}

func (d *StaticDocument) recordClick(what string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clicks = append(d.clicks, what)
}

// StaticElement is one node of a StaticDocument.
type StaticElement struct {
	doc *StaticDocument
	sel *goquery.Selection
}

func (e *StaticElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, disabled := e.sel.Attr("disabled"); disabled {
		return fmt.Errorf("click %s: %w", e.describe(), ErrDisabled)
	}

	if goquery.NodeName(e.sel) == "input" {
		switch e.sel.AttrOr("type", "") {
		case "checkbox":
			e.toggle()
		case "radio":
			if name, ok := e.sel.Attr("name"); ok {
				e.doc.doc.Find(fmt.Sprintf(`input[type="radio"][name=%q]`, name)).RemoveAttr("checked")
			}
			e.sel.SetAttr("checked", "checked")
		}
	}

	e.doc.recordClick(e.describe())
	return nil
}

func (e *StaticElement) toggle() {
	if _, checked := e.sel.Attr("checked"); checked {
		e.sel.RemoveAttr("checked")
		return
	}
	e.sel.SetAttr("checked", "checked")
}

func (e *StaticElement) Type(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if goquery.NodeName(e.sel) == "textarea" {
		e.sel.SetText(e.sel.Text() + text)
		return nil
	}
	e.sel.SetAttr("value", e.sel.AttrOr("value", "")+text)
	return nil
}

func (e *StaticElement) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if goquery.NodeName(e.sel) == "textarea" {
		e.sel.SetText("")
		return nil
	}
	e.sel.SetAttr("value", "")
	return nil
}

func (e *StaticElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return strings.TrimSpace(e.sel.Text()), nil
}

func (e *StaticElement) Attribute(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return e.sel.AttrOr(name, ""), nil
}

func (e *StaticElement) Selected(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if goquery.NodeName(e.sel) == "option" {
		_, ok := e.sel.Attr("selected")
		return ok, nil
	}
	_, ok := e.sel.Attr("checked")
	return ok, nil
}

func (e *StaticElement) Enabled(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, disabled := e.sel.Attr("disabled")
	return !disabled, nil
}

// Visible treats the hidden attribute and an inline display:none on the
// element or any ancestor as invisible. Stylesheets are not evaluated.
func (e *StaticElement) Visible(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	for s := e.sel; s.Length() > 0; s = s.Parent() {
		if _, hidden := s.Attr("hidden"); hidden {
			return false, nil
		}
		style := strings.ReplaceAll(s.AttrOr("style", ""), " ", "")
		if strings.Contains(style, "display:none") {
			return false, nil
		}
	}
	return true, nil
}

// Rect is always empty: a static document has no layout.
func (e *StaticElement) Rect(ctx context.Context) (Rect, error) {
	return Rect{}, ctx.Err()
}

func (e *StaticElement) TagName(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return goquery.NodeName(e.sel), nil
}

func (e *StaticElement) FindAll(ctx context.Context, selector string) ([]Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return e.doc.wrap(e.sel.Find(selector)), nil
}

func (e *StaticElement) String() string {
	return e.describe()
}

func (e *StaticElement) describe() string {
	name := goquery.NodeName(e.sel)
	if id, ok := e.sel.Attr("id"); ok {
		return name + "#" + id
	}
	if text := visibleText(e.sel); text != "" {
		return fmt.Sprintf("%s(%s)", name, text)
	}
	return name
}

// visibleText is the label a user sees: the text content, or the value of
// a button-like input.
func visibleText(s *goquery.Selection) string {
	if goquery.NodeName(s) == "input" {
		return s.AttrOr("value", "")
	}
	return strings.TrimSpace(s.Text())
}
