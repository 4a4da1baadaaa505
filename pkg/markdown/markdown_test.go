package markdown_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ssrkit/pkg/markdown"
)

func TestRender(t *testing.T) {
	t.Parallel()

	r := markdown.New()

	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "heading and emphasis",
			input:    "# Title\n\nSome *emphasis* and **strong**.",
			contains: []string{"<h1>Title</h1>", "<em>emphasis</em>", "<strong>strong</strong>"},
		},
		{
			name:     "links get nofollow",
			input:    "[docs](https://example.com)",
			contains: []string{`href="https://example.com"`, `rel="nofollow"`},
		},
		{
			name:     "gfm table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "strips raw script",
			input:    "hello\n\n<script>alert('xss')</script>",
			contains: []string{"<p>hello</p>"},
			excludes: []string{"<script", "alert"},
		},
		{
			name:     "strips javascript urls",
			input:    "[click](javascript:alert(1))",
			excludes: []string{"javascript:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := r.Render([]byte(tt.input))
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestCustomPolicy(t *testing.T) {
	t.Parallel()

	r := markdown.New(markdown.WithPolicy(bluemonday.StrictPolicy()))
	out, err := r.Render([]byte("# Title\n\n**bold**"))
	require.NoError(t, err)
	assert.NotContains(t, out, "<")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "bold")
}

func TestComponent(t *testing.T) {
	t.Parallel()

	c, err := markdown.New().Component([]byte("hello *world*"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	assert.Equal(t, "<p>hello <em>world</em></p>", strings.TrimSpace(buf.String()))
}
