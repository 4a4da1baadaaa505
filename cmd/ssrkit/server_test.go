package main

import (
	"bytes"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ssrkit/pkg/config"
	"github.com/dmitrymomot/ssrkit/pkg/logger"
	"github.com/dmitrymomot/ssrkit/web"
)

func testConfig(env, sourceDir string) config.Config {
	return config.Config{
		Env:         env,
		Address:     ":0",
		Stylesheet:  "/static/app.css",
		SourceDir:   sourceDir,
		MetricsPath: "/metrics",
		LogLevel:    "info",
	}
}

func request(h http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

// clientFS is the embedded static directory plus stand-ins for the client
// build outputs, leaving out any name in skip.
func clientFS(t *testing.T, skip ...string) fstest.MapFS {
	t.Helper()

	entry, err := fs.ReadFile(web.Static, web.ClientBundle)
	require.NoError(t, err)

	fsys := fstest.MapFS{
		web.ClientBundle:      {Data: entry},
		"static/wasm_exec.js": {Data: []byte("// go runtime")},
		"static/client.wasm":  {Data: []byte("\x00asm")},
	}
	for _, name := range skip {
		delete(fsys, name)
	}
	return fsys
}

func TestServerProduction(t *testing.T) {
	t.Parallel()

	srv, err := newServer(testConfig(config.EnvProduction, ""), logger.NewNope(), prometheus.NewRegistry(), clientFS(t))
	require.NoError(t, err)
	require.Nil(t, srv.reload)

	page := request(srv.app, "/")
	require.Equal(t, http.StatusOK, page.Code)
	assert.Equal(t, "text/html", page.Header().Get("Content-Type"))
	assert.NotEmpty(t, page.Header().Get("X-Request-ID"))
	body := page.Body.String()
	assert.True(t, strings.HasPrefix(body, "<html>"))
	assert.Contains(t, body, `<link rel="stylesheet" href="/static/app.css">`)
	assert.Contains(t, body, `<script type="module" src="/static/client.js"></script>`)

	static := request(srv.app, "/static/client.js")
	assert.Equal(t, http.StatusOK, static.Code)
	assert.Contains(t, static.Body.String(), "client.wasm")

	assert.Equal(t, http.StatusOK, request(srv.app, "/health/live").Code)
	assert.Equal(t, http.StatusOK, request(srv.app, "/health/ready").Code)

	metrics := request(srv.app, "/metrics").Body.String()
	assert.Contains(t, metrics, `ssrkit_http_requests_total{method="GET",route="/*",status="200"}`)
	assert.Contains(t, metrics, "ssrkit_render_duration_seconds")

	devScript := request(srv.app, "/_dev/client.js")
	assert.Equal(t, "text/html", devScript.Header().Get("Content-Type"),
		"outside development the catch-all page answers instead of the reload script")
}

func TestServerReadinessRequiresClientBuild(t *testing.T) {
	t.Parallel()

	for _, missing := range []string{"static/client.wasm", "static/wasm_exec.js"} {
		t.Run(missing, func(t *testing.T) {
			t.Parallel()

			srv, err := newServer(testConfig(config.EnvProduction, ""), logger.NewNope(), prometheus.NewRegistry(), clientFS(t, missing))
			require.NoError(t, err)

			ready := request(srv.app, "/health/ready")
			assert.Equal(t, http.StatusServiceUnavailable, ready.Code)
			assert.Equal(t, http.StatusOK, request(srv.app, "/health/live").Code)
		})
	}
}

func TestServerDevelopment(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "client.js"), []byte("// dev entry"), 0o644))

	srv, err := newServer(testConfig(config.EnvDevelopment, dir), logger.NewNope(), prometheus.NewRegistry(), clientFS(t))
	require.NoError(t, err)
	require.NotNil(t, srv.reload)
	t.Cleanup(srv.reload.Close)

	body := request(srv.app, "/").Body.String()
	assert.Contains(t, body, `<script type="module" src="/_dev/client.js"></script>`)
	assert.Contains(t, body, `<script type="module" src="/src/client.js"></script>`)

	src := request(srv.app, "/src/client.js")
	assert.Equal(t, http.StatusOK, src.Code)
	assert.Equal(t, "// dev entry", src.Body.String())
	assert.Equal(t, "no-store", src.Header().Get("Cache-Control"))

	script := request(srv.app, "/_dev/client.js")
	assert.Equal(t, http.StatusOK, script.Code)
	assert.Contains(t, script.Header().Get("Content-Type"), "javascript")
}

func TestLoadConfigFlags(t *testing.T) {
	t.Setenv("APP_ENV", config.EnvProduction)
	t.Setenv("HTTP_ADDR", ":9000")

	cfg, err := loadConfig(serveFlags{})
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Address)
	assert.False(t, cfg.Dev())

	cfg, err = loadConfig(serveFlags{addr: ":3000", dev: true})
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Address)
	assert.True(t, cfg.Dev())
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cmd := versionCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--short"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, version+"\n", out.String())
}
