package outline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handbookOutline() []Node {
	return []Node{
		Leaf("Introduction", "intro.md"),
		Section("Guides",
			Leaf("Rendering", "render.md"),
			Section("Advanced Topics",
				Leaf("Creating a Router", "router.md"),
				Leaf("Introduction", "advanced-intro.md"),
			),
			Leaf("Server Rendering", "server.md"),
		),
		Section("Reference",
			Leaf("API", "api.md"),
		),
	}
}

func identity(ref ContentRef) string { return string(ref) }

// ---------------------------------------------------------------------------
// TestSlug - Title slugification
// ---------------------------------------------------------------------------

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{"Creating a Router", "creating-a-router"},
		{"HTML", "html"},
		{"Introduction", "introduction"},
		{"Two  Spaces", "two--spaces"},
		{"What's New?", "what's-new?"},
		{"", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Slug(tt.title))
			assert.Equal(t, Slug(tt.title), Slug(tt.title))
		})
	}
}

func TestHref(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{"/", "/"},
		{"/guides/creating-a-router", "/guides/creating-a-router"},
		{"/what's-new?", "/what%27s-new%3F"},
		{"/faq/c#-and-go", "/faq/c%23-and-go"},
		{"/100%-done", "/100%25-done"},
		{"#guides", "#guides"},
		{"#q&a?", "#q&a%3F"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Href(tt.path))
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildRoutes - Route tree construction
// ---------------------------------------------------------------------------

func TestBuildRoutes_Scenario(t *testing.T) {
	t.Parallel()

	site := []Node{
		Leaf("Introduction", "intro.md"),
		Section("Guides", Leaf("Rendering", "render.md")),
	}

	routes, err := BuildRoutes(site, identity)
	require.NoError(t, err)
	require.Len(t, routes, 2)

	assert.Equal(t, "/", routes[0].Path)
	assert.True(t, routes[0].IsLeaf())
	assert.Equal(t, "intro.md", routes[0].View)

	assert.Equal(t, "#guides", routes[1].Path)
	assert.False(t, routes[1].IsLeaf())
	require.Len(t, routes[1].Children, 1)
	assert.Equal(t, "/guides/rendering", routes[1].Children[0].Path)
	assert.Equal(t, "render.md", routes[1].Children[0].View)
}

func TestBuildRoutes_NestedPaths(t *testing.T) {
	t.Parallel()

	routes, err := BuildRoutes(handbookOutline(), identity)
	require.NoError(t, err)

	guides := routes[1]
	assert.Equal(t, "#guides", guides.Path)

	advanced := guides.Children[1]
	assert.Equal(t, "/guides/advanced-topics", advanced.Path, "nested sections use slash paths")
	assert.Equal(t, "/guides/advanced-topics/creating-a-router", advanced.Children[0].Path)
	assert.Equal(t, "/guides/advanced-topics/introduction", advanced.Children[1].Path,
		"nested introduction keeps its path")
}

func TestBuildRoutes_Isomorphic(t *testing.T) {
	t.Parallel()

	site := handbookOutline()
	routes, err := BuildRoutes(site, identity)
	require.NoError(t, err)

	var check func(nodes []Node, routes []Route[string])
	check = func(nodes []Node, routes []Route[string]) {
		require.Len(t, routes, len(nodes))
		for i, n := range nodes {
			assert.Equal(t, n.Title(), routes[i].Title)
			assert.Equal(t, n.IsLeaf(), routes[i].IsLeaf())
			if n.IsSection() {
				check(n.Children(), routes[i].Children)
			}
		}
	}
	check(site, routes)
}

func TestBuildRoutes_ViewCalledPerLeaf(t *testing.T) {
	t.Parallel()

	var calls []ContentRef
	_, err := BuildRoutes(handbookOutline(), func(ref ContentRef) int {
		calls = append(calls, ref)
		return len(calls)
	})
	require.NoError(t, err)
	assert.Equal(t, []ContentRef{"intro.md", "render.md", "router.md", "advanced-intro.md", "server.md", "api.md"}, calls)
}

func TestBuildRoutes_MalformedNode(t *testing.T) {
	t.Parallel()

	_, err := BuildRoutes([]Node{Section("Guides", Node{})}, identity)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedNode))
}

// ---------------------------------------------------------------------------
// TestBuildNav - Navigation listing
// ---------------------------------------------------------------------------

func TestBuildNav_Scenario(t *testing.T) {
	t.Parallel()

	site := []Node{
		Leaf("Introduction", "intro.md"),
		Section("Guides", Leaf("Rendering", "render.md")),
	}

	nav, err := BuildNav(site)
	require.NoError(t, err)

	assert.Equal(t, []NavEntry{
		{Kind: NavLink, Title: "Introduction", Index: 1, URL: "/", Depth: 0},
		{Kind: NavHeader, Title: "Guides", Depth: 0},
		{Kind: NavLink, Title: "Rendering", Index: 2, URL: "/guides/rendering", Depth: 1},
	}, nav)
}

func TestBuildNav_IndicesIncreaseByOne(t *testing.T) {
	t.Parallel()

	nav, err := BuildNav(handbookOutline())
	require.NoError(t, err)

	want := 1
	for _, e := range nav {
		if e.Kind == NavHeader {
			assert.Zero(t, e.Index)
			assert.Empty(t, e.URL)
			continue
		}
		assert.Equal(t, want, e.Index, "entry %q", e.Title)
		want++
	}
	assert.Equal(t, 7, want)
}

func TestBuildNav_CounterScopedPerCall(t *testing.T) {
	t.Parallel()

	first, err := BuildNav(handbookOutline())
	require.NoError(t, err)
	second, err := BuildNav(handbookOutline())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, second[0].Index)
}

func TestBuildNav_AgreesWithBuildRoutes(t *testing.T) {
	t.Parallel()

	outlines := map[string][]Node{
		"handbook": handbookOutline(),
		"flat":     {Leaf("Introduction", "a.md"), Leaf("Usage", "b.md")},
		"deep": {Section("A", Section("B", Section("C", Leaf("Deep Leaf", "d.md")))),
			Leaf("Top", "t.md")},
	}

	for name, site := range outlines {
		site := site
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			routes, err := BuildRoutes(site, identity)
			require.NoError(t, err)
			nav, err := BuildNav(site)
			require.NoError(t, err)

			var routePaths, navPaths []string
			for _, r := range Leaves(routes) {
				routePaths = append(routePaths, r.Path)
			}
			for _, e := range nav {
				if e.Kind == NavLink {
					navPaths = append(navPaths, e.URL)
				}
			}
			assert.Equal(t, routePaths, navPaths)
		})
	}
}

func TestBuildNav_MalformedNode(t *testing.T) {
	t.Parallel()

	_, err := BuildNav([]Node{Leaf("Intro", "a.md"), {}})
	assert.ErrorIs(t, err, ErrMalformedNode)
}

// ---------------------------------------------------------------------------
// TestRootOverride - Introduction maps to the root path
// ---------------------------------------------------------------------------

func TestRootOverride(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		site  []Node
		paths []string
	}{
		{
			name:  "top-level introduction is root",
			site:  []Node{Leaf("Introduction", "intro.md")},
			paths: []string{"/"},
		},
		{
			name:  "case-insensitive through slug",
			site:  []Node{Leaf("INTRODUCTION", "intro.md")},
			paths: []string{"/"},
		},
		{
			name:  "nested introduction is not root",
			site:  []Node{Section("Guides", Leaf("Introduction", "g.md"))},
			paths: []string{"/guides/introduction"},
		},
		{
			name:  "similar title is not root",
			site:  []Node{Leaf("Introduction Two", "i2.md")},
			paths: []string{"/introduction-two"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			routes, err := BuildRoutes(tt.site, identity)
			require.NoError(t, err)

			var got []string
			for _, r := range Leaves(routes) {
				got = append(got, r.Path)
			}
			assert.Equal(t, tt.paths, got)
		})
	}
}

// ---------------------------------------------------------------------------
// TestWalk - Shared traversal
// ---------------------------------------------------------------------------

func TestWalk_PreOrder(t *testing.T) {
	t.Parallel()

	var visited []string
	err := Walk(handbookOutline(), func(s Step) error {
		visited = append(visited, s.Path)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/",
		"#guides",
		"/guides/rendering",
		"/guides/advanced-topics",
		"/guides/advanced-topics/creating-a-router",
		"/guides/advanced-topics/introduction",
		"/guides/server-rendering",
		"#reference",
		"/reference/api",
	}, visited)
}

func TestWalk_StopsOnError(t *testing.T) {
	t.Parallel()

	stop := errors.New("stop")
	count := 0
	err := Walk(handbookOutline(), func(Step) error {
		count++
		if count == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, count)
}

// ---------------------------------------------------------------------------
// TestValidate - Outline checks
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		site    []Node
		wantErr error
	}{
		{"valid", handbookOutline(), nil},
		{"empty outline", nil, ErrMalformedNode},
		{"zero node", []Node{{}}, ErrMalformedNode},
		{"empty title", []Node{Leaf("", "a.md")}, ErrMalformedNode},
		{"empty section", []Node{Section("Guides")}, ErrMalformedNode},
		{"leaf without content", []Node{Leaf("Usage", "")}, ErrMalformedNode},
		{
			"duplicate leaf path",
			[]Node{Leaf("Usage", "a.md"), Leaf("usage", "b.md")},
			ErrDuplicatePath,
		},
		{
			"same title in different sections",
			[]Node{Section("A", Leaf("Usage", "a.md")), Section("B", Leaf("Usage", "b.md"))},
			nil,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Validate(tt.site)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNodeKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "section", Section("A", Leaf("B", "b.md")).Kind().String())
	assert.Equal(t, "leaf", Leaf("B", "b.md").Kind().String())
	assert.Equal(t, "invalid", Node{}.Kind().String())
}
