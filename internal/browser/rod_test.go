package browser

import (
	"context"
	"testing"

	"github.com/go-rod/rod"
	"github.com/grez-lucas/pagefactory/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupPage launches a headless browser serving loginHTML for every request.
func setupPage(t *testing.T) *rod.Page {
	t.Helper()
	testutil.SkipUnlessMode(t, testutil.ModeLive)

	server := testutil.NewFixtureServer(map[string]string{
		"/login": loginHTML,
	})

	session, err := Launch(LaunchOptions{Headless: true, Hijack: server.Middleware()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	require.NoError(t, session.Page.Navigate(testutil.FixtureOrigin+"/login"))
	require.NoError(t, session.Page.WaitLoad())

	return session.Page
}

func TestRodDocument_Live(t *testing.T) {
	page := setupPage(t)
	ctx := context.Background()
	doc := NewRodDocument(page, TypingFast)

	user, err := doc.Find(ctx, "#user")
	require.NoError(t, err)
	require.NoError(t, TextInput{user}.Fill(ctx, "alice"))

	// Attribute reflects markup; the typed value lives in the property.
	v, err := page.MustElement("#user").Property("value")
	require.NoError(t, err)
	assert.Equal(t, "alice", v.Str())

	remember := CheckBox{Locate(doc, "#remember")}
	require.NoError(t, remember.Set(ctx, true))
	selected, err := remember.Selected(ctx)
	require.NoError(t, err)
	assert.True(t, selected)

	link, err := doc.FindByText(ctx, "Forgot")
	require.NoError(t, err)
	tag, err := link.TagName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", tag)

	reset, err := doc.Find(ctx, "#reset")
	require.NoError(t, err)
	enabled, err := reset.Enabled(ctx)
	require.NoError(t, err)
	assert.False(t, enabled)

	_, err = doc.Find(ctx, "#missing")
	assert.ErrorIs(t, err, ErrNoElement)
}

func TestFlattenShadowDOM_Live(t *testing.T) {
	page := setupPage(t)
	page.MustEval(`() => {
		document.body.innerHTML = '<outer-host><inner-host>Light text</inner-host></outer-host>';
		const outer = document.querySelector('outer-host');
		outer.attachShadow({mode: 'open'}).innerHTML = '<div class="outer-layout"><slot></slot></div>';
		const inner = document.querySelector('inner-host');
		inner.attachShadow({mode: 'open'}).innerHTML = '<table id="data-table"><tr><td>secret-data</td></tr></table>';
	}`)

	snap, err := FlattenShadowDOM(page)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, snap.ShadowCount, 2, "both shadow roots should be counted")
	assert.Contains(t, snap.HTML, `data-shadow-host="inner-host"`)
	assert.Contains(t, snap.HTML, "secret-data")

	doc, err := NewStaticDocument(snap.HTML)
	require.NoError(t, err)
	has, err := doc.HasText(context.Background(), "secret-data")
	require.NoError(t, err)
	assert.True(t, has, "flattened snapshots are searchable by the static driver")
}

func TestRodDocument_Frames_Live(t *testing.T) {
	page := setupPage(t)
	ctx := context.Background()
	page.MustEval(`() => {
		document.body.innerHTML = '<iframe id="outer" srcdoc="<iframe id=&quot;inner&quot; srcdoc=&quot;<button id=b>Deep</button>&quot;></iframe>"></iframe>';
	}`)
	require.NoError(t, WaitForIFrames(page))

	doc := NewRodDocument(page, TypingFast)

	outer, err := doc.Frame("#outer")
	require.NoError(t, err)
	inner, err := outer.Frame("#inner")
	require.NoError(t, err)
	button, err := inner.Find(ctx, "#b")
	require.NoError(t, err)
	text, err := button.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Deep", text)

	deepest, err := doc.DeepestFrame()
	require.NoError(t, err)
	has, err := deepest.HasText(ctx, "Deep")
	require.NoError(t, err)
	assert.True(t, has)
}
