package steps

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/grez-lucas/pagefactory/internal/browser"
	"github.com/grez-lucas/pagefactory/internal/i18n"
	"github.com/grez-lucas/pagefactory/internal/logging"
	"github.com/grez-lucas/pagefactory/internal/pagefactory"
	"github.com/grez-lucas/pagefactory/internal/report"
	"github.com/grez-lucas/pagefactory/internal/testutil"
	"github.com/stretchr/testify/require"
)

type loginPage struct {
	Header    *pageHeader
	Notice    browser.TextBlock
	Login     browser.TextInput
	Password  browser.TextInput
	Remember  browser.CheckBox
	Branch    browser.Element
	Submit    browser.Button
	Register  browser.Button
	MenuLinks []browser.Element

	loggedIn []string
}

func newLoginPage(doc browser.Document) *loginPage {
	return &loginPage{
		Header: &pageHeader{
			Logo: browser.Image{Element: browser.Locate(doc, "#logo")},
			Menu: &pageMenu{
				Help: browser.Link{Element: browser.Locate(doc, "#help")},
			},
		},
		Notice:   browser.TextBlock{Element: browser.Locate(doc, "#notice")},
		Login:    browser.TextInput{Element: browser.Locate(doc, "#login")},
		Password: browser.TextInput{Element: browser.Locate(doc, "#password")},
		Remember: browser.CheckBox{Element: browser.Locate(doc, "#remember")},
		Branch:   browser.Locate(doc, "#branch"),
		Submit:   browser.Button{Element: browser.Locate(doc, "#submit")},
		Register: browser.Button{Element: browser.Locate(doc, "#register")},
		MenuLinks: []browser.Element{
			browser.Locate(doc, "#menu .menu-link:nth-of-type(1)"),
			browser.Locate(doc, "#menu .menu-link:nth-of-type(2)"),
			browser.Locate(doc, "#menu .menu-link:nth-of-type(3)"),
		},
	}
}

func (p *loginPage) LogIn(ctx context.Context, user, password string) error {
	if err := p.Login.Fill(ctx, user); err != nil {
		return err
	}
	if err := p.Password.Fill(ctx, password); err != nil {
		return err
	}
	p.loggedIn = append(p.loggedIn, user)
	return p.Submit.Click(ctx)
}

type pageHeader struct {
	Logo browser.Image
	Menu *pageMenu
}

type pageMenu struct {
	Help browser.Link
}

func (m *pageMenu) OpenHelp(ctx context.Context) error {
	return m.Help.Click(ctx)
}

type homePage struct {
	Greeting browser.TextBlock
	Accounts browser.Table
	Logout   browser.Link
}

func newHomePage(doc browser.Document) *homePage {
	return &homePage{
		Greeting: browser.TextBlock{Element: browser.Locate(doc, "#greeting")},
		Accounts: browser.Table{Element: browser.Locate(doc, "#accounts")},
		Logout:   browser.Link{Element: browser.Locate(doc, "#logout")},
	}
}

func (p *homePage) CheckGreeting(ctx context.Context, name string) error {
	text, err := p.Greeting.Text(ctx)
	if err != nil {
		return err
	}
	if !strings.Contains(text, name) {
		return fmt.Errorf("greeting %q does not mention %s", text, name)
	}
	return nil
}

// kioskPage answers to a built-in title with its own action.
type kioskPage struct {
	picked []string
}

func (p *kioskPage) Pick(ctx context.Context, title string) error {
	p.picked = append(p.picked, title)
	return nil
}

func newTestRegistry() *pagefactory.Registry {
	r := pagefactory.NewRegistry()
	RegisterBuiltins(r)
	registerTestPages(r)
	return r
}

func registerTestPages(r *pagefactory.Registry) {
	pagefactory.Register(r, func(m *pagefactory.Model[loginPage]) {
		m.Title("Login")
		pagefactory.Block(m, "Header", func(p *loginPage) *pageHeader { return p.Header })
		pagefactory.Element(m, "Notice", func(p *loginPage) browser.TextBlock { return p.Notice })
		pagefactory.Element(m, "Login", func(p *loginPage) browser.TextInput { return p.Login })
		pagefactory.Element(m, "Password", func(p *loginPage) browser.TextInput { return p.Password })
		pagefactory.Element(m, "Remember me", func(p *loginPage) browser.CheckBox { return p.Remember })
		pagefactory.Element(m, "Branch", func(p *loginPage) browser.Element { return p.Branch })
		pagefactory.Element(m, "Sign in", func(p *loginPage) browser.Button { return p.Submit },
			pagefactory.RedirectsTo[homePage]())
		pagefactory.Element(m, "Register", func(p *loginPage) browser.Button { return p.Register })
		pagefactory.Element(m, "Version", func(*loginPage) string { return "1.0" })
		pagefactory.List(m, "Menu", func(p *loginPage) []browser.Element { return p.MenuLinks })
		pagefactory.Action(m, (*loginPage).LogIn, "Log in")
	})

	pagefactory.Register(r, func(m *pagefactory.Model[pageHeader]) {
		m.Title("Header")
		pagefactory.Element(m, "Logo", func(h *pageHeader) browser.Image { return h.Logo })
		pagefactory.Block(m, "Menu", func(h *pageHeader) *pageMenu { return h.Menu })
	})

	pagefactory.Register(r, func(m *pagefactory.Model[pageMenu]) {
		m.Title("Menu")
		pagefactory.Element(m, "Help", func(mn *pageMenu) browser.Link { return mn.Help })
		pagefactory.Action(m, (*pageMenu).OpenHelp, "Open help")
	})

	pagefactory.Register(r, func(m *pagefactory.Model[homePage]) {
		m.Title("Accounts")
		pagefactory.Element(m, "Greeting", func(p *homePage) browser.TextBlock { return p.Greeting })
		pagefactory.Element(m, "Accounts", func(p *homePage) browser.Table { return p.Accounts })
		pagefactory.Element(m, "Log out", func(p *homePage) browser.Link { return p.Logout })
		pagefactory.ValidationRule(m, "greeting is shown", (*homePage).CheckGreeting)
	})

	pagefactory.Register(r, func(m *pagefactory.Model[kioskPage]) {
		m.Title("Kiosk")
		pagefactory.Action(m, (*kioskPage).Pick, i18n.SelectCheckBox)
	})
}

type testSession struct {
	*Session
	doc      *browser.StaticDocument
	recorder *report.Memory
}

// newTestSession opens the login fixture in a static document with the
// login page current and built-in titles in lang.
func newTestSession(t *testing.T, lang string) *testSession {
	t.Helper()

	saved := browser.PollInterval
	browser.PollInterval = 5 * time.Millisecond
	t.Cleanup(func() { browser.PollInterval = saved })

	doc, err := browser.NewStaticDocument(testutil.LoadFixture(t, "login"))
	require.NoError(t, err)

	tr, err := i18n.New(lang)
	require.NoError(t, err)

	engine := pagefactory.New(
		pagefactory.WithCatalog(newTestRegistry()),
		pagefactory.WithTranslator(tr.Translate),
		pagefactory.WithLogger(logging.Discard()),
	)

	rec := &report.Memory{}
	s := NewSession(doc,
		WithEngine(engine),
		WithRecorder(rec),
		WithLogger(logging.Discard()),
		WithTimeout(30*time.Millisecond),
	)
	Provide(s, newLoginPage)
	Provide(s, newHomePage)

	_, err = Open[loginPage](s)
	require.NoError(t, err)

	return &testSession{Session: s, doc: doc, recorder: rec}
}

func (ts *testSession) value(t *testing.T, selector string) string {
	t.Helper()

	el, err := ts.doc.Find(context.Background(), selector)
	require.NoError(t, err)
	v, err := el.Attribute(context.Background(), "value")
	require.NoError(t, err)
	return v
}
