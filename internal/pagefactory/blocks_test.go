package pagefactory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panel struct {
	Close *handle
	Inner *panel
}

type dashboard struct {
	Left  *panel
	Right *panel
	Extra *panel
}

func newDashboardEngine(t *testing.T) *Engine {
	t.Helper()

	r := NewRegistry()
	Register(r, func(m *Model[panel]) {
		Element(m, "Close", func(p *panel) *handle { return p.Close })
		Block(m, "Panel", func(p *panel) *panel { return p.Inner })
	})
	Register(r, func(m *Model[dashboard]) {
		m.Title("Dashboard")
		Block(m, "Panel", func(d *dashboard) *panel { return d.Left })
		Block(m, "Panel", func(d *dashboard) *panel { return d.Right })
		Block(m, "Extra", func(d *dashboard) *panel { return d.Extra })
	})

	return New(WithCatalog(r))
}

func newDashboard() *dashboard {
	return &dashboard{
		Left:  &panel{Close: &handle{id: "left"}},
		Right: &panel{Close: &handle{id: "right"}},
		Extra: &panel{
			Close: &handle{id: "extra"},
			Inner: &panel{Close: &handle{id: "extra-inner"}},
		},
	}
}

func TestResolveBlocks_SingleSegmentSearchesWholeTree(t *testing.T) {
	eng := newDashboardEngine(t)
	d := newDashboard()

	found, err := eng.ResolveBlocks(d, "Panel", false)

	require.NoError(t, err)
	require.Len(t, found, 3)
	assert.Same(t, d.Left, found[0].Value)
	assert.Same(t, d.Right, found[1].Value)
	assert.Same(t, d.Extra.Inner, found[2].Value)
	assert.Equal(t, "Extra->Panel", found[2].Path)
}

func TestResolveBlocks_FirstOnly(t *testing.T) {
	eng := newDashboardEngine(t)
	d := newDashboard()

	found, err := eng.ResolveBlocks(d, "Panel", true)

	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Same(t, d.Left, found[0].Value)
}

func TestResolveBlocks_SiblingsOfSameTypeAreDistinct(t *testing.T) {
	eng := newDashboardEngine(t)
	d := newDashboard()

	found, err := eng.ResolveBlocks(d, "Panel", false)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(found), 2)

	assert.NotSame(t, found[0].Value, found[1].Value)
}

func TestResolveBlocks_ExplicitPath(t *testing.T) {
	eng := newDashboardEngine(t)
	d := newDashboard()

	found, err := eng.ResolveBlocks(d, "Extra->Panel", false)

	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Same(t, d.Extra.Inner, found[0].Value)
}

func TestResolveBlocks_ExplicitPathDoesNotFallBack(t *testing.T) {
	eng := newDashboardEngine(t)
	d := newDashboard()

	tests := []struct {
		name string
		path string
	}{
		{"typo in first hop", "Extar->Panel"},
		{"typo in last hop", "Extra->Panell"},
		{"skipped hop", "Panel->Close"},
		{"target is not a direct child", "Extra->Extra"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			found, err := eng.ResolveBlocks(d, tc.path, false)

			require.NoError(t, err)
			assert.Empty(t, found)
		})
	}
}

func TestResolveBlocks_NilSlotsAreSkipped(t *testing.T) {
	eng := newDashboardEngine(t)
	d := newDashboard()
	d.Left = nil

	found, err := eng.ResolveBlocks(d, "Panel", false)

	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Same(t, d.Right, found[0].Value)
}

func TestFindBlock_NotFound(t *testing.T) {
	eng := newDashboardEngine(t)

	_, err := eng.FindBlock(newDashboard(), "Sidebar")

	require.ErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "block 'Sidebar' is not present on 'Dashboard'")
}

func TestResolveBlocks_HeaderFooter(t *testing.T) {
	eng := newTestEngine(t)
	page := newHomePage()

	found, err := eng.ResolveBlocks(page, "Header->Menu", true)

	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Same(t, page.Header.Menu, found[0].Value)
	assert.Equal(t, "Menu", found[0].Title)
	assert.Equal(t, "Header->Menu", found[0].Path)
}

func TestResolveBlocks_AccessorPanicIsInternal(t *testing.T) {
	r := NewRegistry()
	Register(r, func(m *Model[dashboard]) {
		Block(m, "Panel", func(d *dashboard) *panel { return d.Extra.Inner })
	})
	Register(r, func(m *Model[panel]) {})
	eng := New(WithCatalog(r))

	_, err := eng.ResolveBlocks(&dashboard{}, "Panel", false)

	require.ErrorIs(t, err, ErrInternal)
	assert.ErrorContains(t, err, "accessor panicked")
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"A"}, SplitPath("A"))
	assert.Equal(t, []string{"A", "B", "C"}, SplitPath("A->B->C"))
	assert.Equal(t, "A->B", JoinPath("A", "B"))
}
