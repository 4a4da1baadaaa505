package assets_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ssrkit/pkg/assets"
)

func TestManifest(t *testing.T) {
	t.Parallel()

	m := assets.NewManifest()
	m.Set("client.js", "client.abc123.js")
	m.Set("app.css", "app.def456.css")

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"found entry", "client.js", "client.abc123.js"},
		{"found css entry", "app.css", "app.def456.css"},
		{"missing entry returns original", "other.js", "other.js"},
		{"empty string", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, m.Resolve(tt.source))
		})
	}

	assert.True(t, m.Has("client.js"))
	assert.False(t, m.Has("other.js"))
	assert.Equal(t, 2, m.Len())

	all := m.All()
	all["x.js"] = "x.1.js"
	assert.False(t, m.Has("x.js"), "All must return a copy")
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "manifest.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"client.js":"client.1.js"}`), 0o644))

		m, err := assets.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "client.1.js", m.Resolve("client.js"))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := assets.Load(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "manifest.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

		_, err := assets.Load(path)
		require.Error(t, err)
	})
}

func TestLoadFS(t *testing.T) {
	t.Parallel()

	t.Run("missing manifest yields empty manifest", func(t *testing.T) {
		t.Parallel()

		m, err := assets.LoadFS(fstest.MapFS{}, "static/manifest.json")
		require.NoError(t, err)
		assert.Equal(t, 0, m.Len())
		assert.Equal(t, "client.js", m.Resolve("client.js"))
	})

	t.Run("reads manifest", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"static/manifest.json": {Data: []byte(`{"client.js":"client.9.js"}`)},
		}
		m, err := assets.LoadFS(fsys, "static/manifest.json")
		require.NoError(t, err)
		assert.Equal(t, "client.9.js", m.Resolve("client.js"))
	})

	t.Run("null manifest", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{"manifest.json": {Data: []byte(`null`)}}
		m, err := assets.LoadFS(fsys, "manifest.json")
		require.NoError(t, err)
		m.Set("a", "b")
		assert.Equal(t, "b", m.Resolve("a"))
	})
}

func TestResolvers(t *testing.T) {
	t.Parallel()

	m := assets.NewManifest()
	m.Set("client.js", "client.abc.js")

	assert.Equal(t, "/static/client.abc.js", assets.NewResolver(m, "/static/").Asset("client.js"))
	assert.Equal(t, "/static/other.js", assets.NewResolver(m, "/static/").Asset("other.js"))
	assert.Equal(t, "/static/client.js", assets.NewResolver(nil, "/static/").Asset("client.js"))
	assert.Equal(t, "/src/client.js", assets.NewPassthroughResolver("/src/").Asset("client.js"))
}
