package pagefactory

import (
	"errors"
	"testing"
)

// handle stands in for a driver element.
type handle struct {
	id string
}

func (h *handle) String() string { return "handle(" + h.id + ")" }

type menu struct {
	Home *handle

	visited []string
	// forward runs when the menu hands an action on to another container.
	forward func() error
}

type header struct {
	Logo *handle
	Menu *menu
}

type footer struct {
	Logo  *handle
	Links []*handle
	More  []*handle
}

type basePage struct {
	Help   *handle
	helped int
}

func (p *basePage) OpenHelp() error {
	p.helped++
	return nil
}

type homePage struct {
	basePage

	Header *header
	Footer *footer
	Search *handle
	Next   *handle
	Rows   []*handle

	submitted int
	typed     []string
	checked   []string
}

func (p *homePage) Submit() {
	p.submitted++
}

func (p *homePage) TypeInto(field, text string) error {
	p.typed = append(p.typed, field+"="+text)
	return nil
}

func (p *homePage) Fail() error {
	return errors.New("button is disabled")
}

func (p *homePage) Explode() {
	panic("boom")
}

func (p *homePage) Tags(tags ...string) {
	p.typed = append(p.typed, tags...)
}

func (p *homePage) CheckSearchVisible(expected string) error {
	p.checked = append(p.checked, expected)
	if expected != "yes" {
		return errors.New("search is not visible")
	}
	return nil
}

type resultsPage struct {
	Title *handle
}

func (m *menu) Open() error { return nil }

func (m *menu) Pin() error {
	return errors.New("menu is locked")
}

func (m *menu) Collapse() {
	panic("menu collapsed")
}

func (m *menu) GoTo(item string) {
	m.visited = append(m.visited, item)
}

func (m *menu) Forward() error {
	return m.forward()
}

// newTestEngine registers the test models in an isolated registry.
func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()

	r := NewRegistry()

	Register(r, func(m *Model[menu]) {
		Element(m, "Home", func(p *menu) *handle { return p.Home })
		Action(m, (*menu).Open, "Open")
		Action(m, (*menu).Pin, "Pin")
		Action(m, (*menu).Collapse, "Collapse")
		Action(m, (*menu).GoTo, "Go to")
		Action(m, (*menu).Forward, "Forward")
	})
	Register(r, func(m *Model[header]) {
		Element(m, "Logo", func(p *header) *handle { return p.Logo })
		Block(m, "Menu", func(p *header) *menu { return p.Menu })
	})
	Register(r, func(m *Model[footer]) {
		Element(m, "Logo", func(p *footer) *handle { return p.Logo })
		List(m, "Links", func(p *footer) []*handle { return p.Links })
		List(m, "Links", func(p *footer) []*handle { return p.More })
	})
	Register(r, func(m *Model[basePage]) {
		Element(m, "Help", func(p *basePage) *handle { return p.Help })
		Element(m, "Search", func(p *basePage) *handle { return p.Help })
		Action(m, (*basePage).OpenHelp, "Help me", "Помощь")
	})
	Register(r, func(m *Model[homePage]) {
		m.Title("Home")
		Block(m, "Header", func(p *homePage) *header { return p.Header })
		Block(m, "Footer", func(p *homePage) *footer { return p.Footer })
		Element(m, "Search", func(p *homePage) *handle { return p.Search })
		Element(m, "Next", func(p *homePage) *handle { return p.Next }, RedirectsTo[resultsPage]())
		List(m, "Rows", func(p *homePage) []*handle { return p.Rows })
		Action(m, (*homePage).Submit, "Submit")
		Action(m, (*homePage).TypeInto, "Type into")
		Action(m, (*homePage).Fail, "Fail")
		Action(m, (*homePage).Explode, "Explode")
		Action(m, (*homePage).Tags, "Tags")
		ValidationRule(m, "search is visible", (*homePage).CheckSearchVisible)
		Inherit(m, func(p *homePage) *basePage { return &p.basePage })
	})
	Register(r, func(m *Model[resultsPage]) {
		m.Title("Results")
		Element(m, "Title", func(p *resultsPage) *handle { return p.Title })
	})

	return New(append([]Option{WithCatalog(r)}, opts...)...)
}

func newHomePage() *homePage {
	return &homePage{
		basePage: basePage{Help: &handle{id: "help"}},
		Header: &header{
			Logo: &handle{id: "header-logo"},
			Menu: &menu{Home: &handle{id: "home"}},
		},
		Footer: &footer{
			Logo:  &handle{id: "footer-logo"},
			Links: []*handle{{id: "about"}, {id: "contacts"}},
			More:  []*handle{{id: "jobs"}},
		},
		Search: &handle{id: "search"},
		Next:   &handle{id: "next"},
		Rows:   []*handle{{id: "row-1"}, {id: "row-2"}},
	}
}
