package browser

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// LaunchOptions configures a local Chrome started for rod.
type LaunchOptions struct {
	// Bin is the browser binary. Empty lets the launcher find or download one.
	Bin      string
	Headless bool
	Stealth  bool
	// Hijack, when set, handles every request the page makes.
	Hijack func(*rod.Hijack)
}

// RodSession owns a launched browser and its first page.
type RodSession struct {
	Browser *rod.Browser
	Page    *rod.Page
	router  *rod.HijackRouter
}

// Launch starts Chrome and opens a page.
func Launch(opts LaunchOptions) (*RodSession, error) {
	l := launcher.New().
		Headless(opts.Headless).
		Set("disable-blink-features", "AutomationControlled").
		Set("no-first-run").
		Set("no-default-browser-check").
		Set("window-size", "1920,1080")
	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	s := &RodSession{Browser: browser}

	if opts.Hijack != nil {
		s.router = browser.HijackRequests()
		s.router.MustAdd("*", opts.Hijack)
		go s.router.Run()
	}

	if opts.Stealth {
		s.Page, err = stealth.Page(browser)
	} else {
		s.Page, err = browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("open page: %w", err)
	}

	return s, nil
}

func (s *RodSession) Close() error {
	if s.router != nil {
		_ = s.router.Stop()
	}
	return s.Browser.Close()
}

// RodDocument is a Document over a rod page or frame.
type RodDocument struct {
	page   *rod.Page
	typing TypingMode
}

func NewRodDocument(page *rod.Page, typing TypingMode) *RodDocument {
	return &RodDocument{page: page, typing: typing}
}

func (d *RodDocument) Page() *rod.Page { return d.page }

func (d *RodDocument) Find(ctx context.Context, selector string) (Element, error) {
	has, el, err := d.page.Context(ctx).Has(selector)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, fmt.Errorf("%w: %s", ErrNoElement, selector)
	}
	return &RodElement{el: el, typing: d.typing}, nil
}

func (d *RodDocument) FindAll(ctx context.Context, selector string) ([]Element, error) {
	els, err := d.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, err
	}
	return wrapRod(els, d.typing), nil
}

func (d *RodDocument) FindByText(ctx context.Context, text string) (Element, error) {
	has, el, err := d.page.Context(ctx).HasR(interactable, regexp.QuoteMeta(text))
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, fmt.Errorf("%w: text %q", ErrNoElement, text)
	}
	return &RodElement{el: el, typing: d.typing}, nil
}

func (d *RodDocument) HasText(ctx context.Context, text string) (bool, error) {
	has, _, err := d.page.Context(ctx).HasR("body", regexp.QuoteMeta(text))
	return has, err
}

// Frame returns a document for the iframe matched by selector.
func (d *RodDocument) Frame(selector string) (*RodDocument, error) {
	frame, err := GetIFrameBySelector(d.page, selector)
	if err != nil {
		return nil, err
	}
	return &RodDocument{page: frame, typing: d.typing}, nil
}

// RodElement is an Element over a rod element.
type RodElement struct {
	el     *rod.Element
	typing TypingMode
}

func wrapRod(els rod.Elements, typing TypingMode) []Element {
	out := make([]Element, 0, len(els))
	for _, el := range els {
		out = append(out, &RodElement{el: el, typing: typing})
	}
	return out
}

func (e *RodElement) Click(ctx context.Context) error {
	return e.el.Context(ctx).Click(proto.InputMouseButtonLeft, 1)
}

func (e *RodElement) Type(ctx context.Context, text string) error {
	return typeRod(e.el.Context(ctx), text, e.typing)
}

func (e *RodElement) Clear(ctx context.Context) error {
	el := e.el.Context(ctx)
	if err := el.SelectAllText(); err != nil {
		return err
	}
	return el.Input("")
}

func (e *RodElement) Text(ctx context.Context) (string, error) {
	return e.el.Context(ctx).Text()
}

func (e *RodElement) Attribute(ctx context.Context, name string) (string, error) {
	v, err := e.el.Context(ctx).Attribute(name)
	if err != nil || v == nil {
		return "", err
	}
	return *v, nil
}

func (e *RodElement) Selected(ctx context.Context) (bool, error) {
	v, err := e.el.Context(ctx).Property("checked")
	if err != nil {
		return false, err
	}
	return v.Bool(), nil
}

func (e *RodElement) Enabled(ctx context.Context) (bool, error) {
	v, err := e.el.Context(ctx).Property("disabled")
	if err != nil {
		return false, err
	}
	return !v.Bool(), nil
}

func (e *RodElement) Visible(ctx context.Context) (bool, error) {
	return e.el.Context(ctx).Visible()
}

func (e *RodElement) Rect(ctx context.Context) (Rect, error) {
	shape, err := e.el.Context(ctx).Shape()
	if err != nil {
		return Rect{}, err
	}
	box := shape.Box()
	if box == nil {
		return Rect{}, nil
	}
	return Rect{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}, nil
}

func (e *RodElement) TagName(ctx context.Context) (string, error) {
	v, err := e.el.Context(ctx).Property("tagName")
	if err != nil {
		return "", err
	}
	return strings.ToLower(v.Str()), nil
}

func (e *RodElement) FindAll(ctx context.Context, selector string) ([]Element, error) {
	els, err := e.el.Context(ctx).Elements(selector)
	if err != nil {
		return nil, err
	}
	return wrapRod(els, e.typing), nil
}

func (e *RodElement) String() string {
	return e.el.String()
}
