package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightSession owns a playwright driver, browser and page.
type PlaywrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	Page    playwright.Page
}

// LaunchPlaywright starts Chromium through playwright.
func LaunchPlaywright(headless bool) (*PlaywrightSession, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1920,
			Height: 1080,
		},
		IgnoreHttpsErrors: playwright.Bool(true),
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("could not create context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	return &PlaywrightSession{pw: pw, browser: browser, Page: page}, nil
}

func (s *PlaywrightSession) Close() error {
	if err := s.browser.Close(); err != nil {
		return err
	}
	return s.pw.Stop()
}

// PlaywrightDocument is a Document over a playwright page.
type PlaywrightDocument struct {
	page   playwright.Page
	typing TypingMode
}

func NewPlaywrightDocument(page playwright.Page, typing TypingMode) *PlaywrightDocument {
	return &PlaywrightDocument{page: page, typing: typing}
}

func (d *PlaywrightDocument) Find(ctx context.Context, selector string) (Element, error) {
	return firstLocator(ctx, d.page.Locator(selector), selector, d.typing)
}

func (d *PlaywrightDocument) FindAll(ctx context.Context, selector string) ([]Element, error) {
	return allLocators(ctx, d.page.Locator(selector), d.typing)
}

func (d *PlaywrightDocument) FindByText(ctx context.Context, text string) (Element, error) {
	loc := d.page.Locator(interactable, playwright.PageLocatorOptions{HasText: text})
	return firstLocator(ctx, loc, "text "+text, d.typing)
}

func (d *PlaywrightDocument) HasText(ctx context.Context, text string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	body, err := d.page.Locator("body").TextContent()
	if err != nil {
		return false, err
	}
	return strings.Contains(body, text), nil
}

func firstLocator(ctx context.Context, loc playwright.Locator, what string, typing TypingMode) (Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n, err := loc.Count()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoElement, what)
	}
	return &PlaywrightElement{loc: loc.First(), typing: typing}, nil
}

func allLocators(ctx context.Context, loc playwright.Locator, typing TypingMode) ([]Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	locs, err := loc.All()
	if err != nil {
		return nil, err
	}
	out := make([]Element, 0, len(locs))
	for _, l := range locs {
		out = append(out, &PlaywrightElement{loc: l, typing: typing})
	}
	return out, nil
}

// PlaywrightElement is an Element over a playwright locator.
type PlaywrightElement struct {
	loc    playwright.Locator
	typing TypingMode
}

func (e *PlaywrightElement) Click(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.loc.Click()
}

func (e *PlaywrightElement) Type(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.typing == TypingHuman {
		return e.loc.PressSequentially(text, playwright.LocatorPressSequentiallyOptions{
			Delay: playwright.Float(float64(humanDelay().Milliseconds())),
		})
	}
	return e.loc.PressSequentially(text)
}

func (e *PlaywrightElement) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return e.loc.Clear()
}

func (e *PlaywrightElement) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return e.loc.TextContent()
}

func (e *PlaywrightElement) Attribute(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return e.loc.GetAttribute(name)
}

func (e *PlaywrightElement) Selected(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return e.loc.IsChecked()
}

func (e *PlaywrightElement) Enabled(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return e.loc.IsEnabled()
}

func (e *PlaywrightElement) Visible(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return e.loc.IsVisible()
}

func (e *PlaywrightElement) Rect(ctx context.Context) (Rect, error) {
	if err := ctx.Err(); err != nil {
		return Rect{}, err
	}
	box, err := e.loc.BoundingBox()
	if err != nil || box == nil {
		return Rect{}, err
	}
	return Rect{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}, nil
}

func (e *PlaywrightElement) TagName(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	v, err := e.loc.Evaluate("el => el.tagName.toLowerCase()", nil)
	if err != nil {
		return "", err
	}
	name, _ := v.(string)
	return name, nil
}

func (e *PlaywrightElement) FindAll(ctx context.Context, selector string) ([]Element, error) {
	return allLocators(ctx, e.loc.Locator(selector), e.typing)
}
