package yamlutil_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-handbook/internal/yamlutil"
)

type entry struct {
	Title    string  `yaml:"title"`
	Content  string  `yaml:"content,omitempty"`
	Children []entry `yaml:"children,omitempty"`
}

type document struct {
	Name    string  `yaml:"name"`
	Outline []entry `yaml:"outline"`
}

const sample = `name: handbook
outline:
  - title: Introduction
    content: intro.md
  - title: Guides
    children:
      - title: Rendering
        content: render.md
`

// ---------------------------------------------------------------------------
// TestUnmarshal
// ---------------------------------------------------------------------------

func TestUnmarshal_NestedEntries(t *testing.T) {
	t.Parallel()

	var doc document
	require.NoError(t, yamlutil.Unmarshal([]byte(sample), &doc))

	assert.Equal(t, "handbook", doc.Name)
	require.Len(t, doc.Outline, 2)
	assert.Equal(t, "intro.md", doc.Outline[0].Content)
	require.Len(t, doc.Outline[1].Children, 1)
	assert.Equal(t, "Rendering", doc.Outline[1].Children[0].Title)
}

func TestUnmarshal_InputErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
	}{
		{"nil data", nil, &document{}, yamlutil.ErrNilData},
		{"empty data", []byte{}, &document{}, yamlutil.ErrNilData},
		{"nil destination", []byte("name: x"), nil, yamlutil.ErrNilDestination},
		{"too large", []byte("name: " + strings.Repeat("x", yamlutil.MaxInputSize)), &document{}, yamlutil.ErrInputTooLarge},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, yamlutil.Unmarshal(tt.data, tt.dest), tt.wantErr)
		})
	}
}

func TestUnmarshal_SyntaxErrorIsPrefixed(t *testing.T) {
	t.Parallel()

	var doc document
	err := yamlutil.Unmarshal([]byte("name: [unclosed"), &doc)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "yamlutil: "))
}

func TestUnmarshal_IgnoresUnknownFields(t *testing.T) {
	t.Parallel()

	var doc document
	require.NoError(t, yamlutil.Unmarshal([]byte("name: a\nextra: b"), &doc))
	assert.Equal(t, "a", doc.Name)
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	var doc document
	require.NoError(t, yamlutil.UnmarshalStrict([]byte(sample), &doc))

	err := yamlutil.UnmarshalStrict([]byte("name: a\nextra: b"), &document{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extra")

	err = yamlutil.UnmarshalStrict([]byte("outline:\n  - title: A\n    contnet: a.md\n"), &document{})
	assert.Error(t, err, "nested unknown fields are rejected too")
}

func TestReadStrict(t *testing.T) {
	t.Parallel()

	var doc document
	require.NoError(t, yamlutil.ReadStrict(strings.NewReader(sample), &doc))
	assert.Len(t, doc.Outline, 2)

	big := strings.NewReader("name: " + strings.Repeat("x", yamlutil.MaxInputSize+10))
	assert.ErrorIs(t, yamlutil.ReadStrict(big, &document{}), yamlutil.ErrInputTooLarge)
}

// ---------------------------------------------------------------------------
// TestMarshal
// ---------------------------------------------------------------------------

func TestMarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	var in document
	require.NoError(t, yamlutil.UnmarshalStrict([]byte(sample), &in))

	data, err := yamlutil.Marshal(in)
	require.NoError(t, err)

	var out document
	require.NoError(t, yamlutil.UnmarshalStrict(data, &out))
	assert.Equal(t, in, out)
}

func TestMarshal_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := yamlutil.Marshal(map[string]any{"f": func() {}})
	assert.Error(t, err)
}
