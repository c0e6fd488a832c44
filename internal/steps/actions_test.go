package steps

import (
	"context"
	"reflect"
	"testing"

	"github.com/grez-lucas/pagefactory/internal/browser"
	"github.com/grez-lucas/pagefactory/internal/logging"
	"github.com/grez-lucas/pagefactory/internal/pagefactory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageType[P any]() reflect.Type {
	return reflect.TypeFor[*P]()
}

func TestAction_PageAction(t *testing.T) {
	ts := newTestSession(t, "en")

	err := ts.Action(context.Background(), "Log in", "alice", "secret")

	require.NoError(t, err)
	login, err := CurrentPage[loginPage](ts.Session)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, login.loggedIn)
	assert.Equal(t, "alice", ts.value(t, "#login"))
	assert.Equal(t, "secret", ts.value(t, "#password"))
	assert.Equal(t, []string{"button#submit"}, ts.doc.Clicks())
}

func TestAction_PageShadowsBuiltin(t *testing.T) {
	ts := newTestSession(t, "en")
	kiosk := &kioskPage{}
	ts.SetPage(kiosk)

	err := ts.Action(context.Background(), "select the checkbox", "Remember me")

	require.NoError(t, err)
	assert.Equal(t, []string{"Remember me"}, kiosk.picked)
	assert.Empty(t, ts.doc.Clicks())
}

func TestAction_Errors(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		args    []any
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown action names the page",
			title:   "Dance",
			wantErr: pagefactory.ErrNotFound,
			wantMsg: "action 'Dance' is not present on 'Login'",
		},
		{
			name:    "missing page argument",
			title:   "Log in",
			args:    []any{"alice"},
			wantErr: pagefactory.ErrArguments,
		},
		{
			name:    "missing built-in argument",
			title:   "fill the field",
			args:    []any{"Login"},
			wantErr: pagefactory.ErrArguments,
		},
		{
			name:    "built-in key is not a title",
			title:   "pagefactory.fill.field",
			args:    []any{"Login", "alice"},
			wantErr: pagefactory.ErrNotFound,
		},
		{
			name:    "element missing inside built-in",
			title:   "fill the field",
			args:    []any{"Surname", "Smith"},
			wantErr: pagefactory.ErrNotFound,
			wantMsg: "element 'Surname' is not present on 'Login'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestSession(t, "en")

			err := ts.Action(context.Background(), tt.title, tt.args...)

			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.ErrorContains(t, err, tt.wantMsg)
			}
		})
	}
}

func TestAction_CatalogWithoutBuiltins(t *testing.T) {
	r := pagefactory.NewRegistry()
	registerTestPages(r)
	ts := newTestSession(t, "en")
	ts.engine = pagefactory.New(pagefactory.WithCatalog(r), pagefactory.WithLogger(logging.Discard()))
	ctx := context.Background()

	require.NoError(t, ts.Action(ctx, "Log in", "alice", "secret"))

	err := ts.Action(ctx, "fill the field", "Login", "bob")

	var nf *pagefactory.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.NotErrorIs(t, err, pagefactory.ErrInternal)
	assert.EqualError(t, err, "action 'fill the field' is not present on 'Login'")
	assert.Equal(t, "alice", ts.value(t, "#login"))
}

func TestActionInBlock(t *testing.T) {
	ts := newTestSession(t, "en")
	ctx := context.Background()

	require.NoError(t, ts.ActionInBlock(ctx, "Header->Menu", "Open help"))
	assert.Equal(t, []string{"a#help"}, ts.doc.Clicks())

	err := ts.ActionInBlock(ctx, "Header->Menu", "Close")
	assert.ErrorIs(t, err, pagefactory.ErrNotFound)
	assert.EqualError(t, err, "action 'Close' is not present in block 'Header->Menu' on 'Login'")

	err = ts.ActionInBlock(ctx, "Footer", "Open help")
	assert.ErrorIs(t, err, pagefactory.ErrNotFound)
}

func TestValidate(t *testing.T) {
	ts := newTestSession(t, "en")
	ctx := context.Background()

	require.NoError(t, ts.Action(ctx, "click the button", "Sign in"))

	assert.NoError(t, ts.Validate(ctx, "greeting is shown", "Alice"))
	assert.ErrorIs(t, ts.Validate(ctx, "greeting is shown", "Bob"), pagefactory.ErrInvocation)
	assert.ErrorIs(t, ts.Validate(ctx, "accounts are sorted"), pagefactory.ErrNotFound)
}

func TestFindElementInBlock(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		kind     string
		title    string
		wantType reflect.Type
		wantErr  error
	}{
		{"image", "Header", "image", "Logo", reflect.TypeFor[browser.Image](), nil},
		{"localized kind", "Header", "изображение", "Logo", reflect.TypeFor[browser.Image](), nil},
		{"kind ignores case", "Header", " Element ", "Logo", reflect.TypeFor[browser.Image](), nil},
		{"unknown kind asks for an element", "Header", "widget", "Logo", reflect.TypeFor[browser.Image](), nil},
		{"nested path", "Header->Menu", "link", "Help", reflect.TypeFor[browser.Link](), nil},
		{"wrong kind", "Header", "button", "Logo", nil, pagefactory.ErrWrongType},
		{"element of a deeper block", "Header", "link", "Help", nil, pagefactory.ErrNotFound},
		{"missing block", "Footer", "link", "Terms", nil, pagefactory.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestSession(t, "en")

			got, err := ts.FindElementInBlock(tt.path, tt.kind, tt.title)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, reflect.TypeOf(got))
		})
	}
}

func TestFindElementInBlock_UsableHandle(t *testing.T) {
	ts := newTestSession(t, "en")
	ctx := context.Background()

	got, err := ts.FindElementInBlock("Header", "image", "Logo")
	require.NoError(t, err)

	src, err := got.(browser.Image).Src(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/static/logo.png", src)
}

func TestFindElementInList(t *testing.T) {
	ts := newTestSession(t, "en")
	ctx := context.Background()

	el, err := ts.FindElementInList(ctx, "Menu", "Rates")
	require.NoError(t, err)
	require.NoError(t, el.Click(ctx))
	assert.Equal(t, []string{"a(Rates)"}, ts.doc.Clicks())

	_, err = ts.FindElementInList(ctx, "Menu", "Loans")
	assert.ErrorIs(t, err, ErrAssertion)
	assert.EqualError(t, err, "no element with text 'Loans' in list 'Menu'")

	_, err = ts.FindElementInList(ctx, "Links", "Rates")
	assert.ErrorIs(t, err, pagefactory.ErrNotFound)
}

func TestElementKind(t *testing.T) {
	tests := []struct {
		word string
		want reflect.Type
	}{
		{"textinput", reflect.TypeFor[browser.TextInput]()},
		{"текстовое поле", reflect.TypeFor[browser.TextInput]()},
		{"CheckBox", reflect.TypeFor[browser.CheckBox]()},
		{"радиобатон", reflect.TypeFor[browser.Radio]()},
		{"таблицу", reflect.TypeFor[browser.Table]()},
		{"header", reflect.TypeFor[browser.TextBlock]()},
		{"кнопку", reflect.TypeFor[browser.Button]()},
		{"ссылку", reflect.TypeFor[browser.Link]()},
		{"", reflect.TypeFor[browser.Element]()},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, ElementKind(tt.word))
		})
	}
}
