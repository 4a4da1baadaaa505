package internal_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ssrkit/internal"
	"github.com/dmitrymomot/ssrkit/pkg/render"
)

type testHandler struct{}

func (h *testHandler) Routes(r internal.Router) {
	r.GET("/", h.index)
	r.GET("/json", h.json)
	r.GET("/user/{id}", h.user)
	r.GET("/fail", h.fail)
	r.GET("/forbidden", h.forbidden)
	r.GET("/page", h.page)
	r.GET("/broken-page", h.brokenPage)
	r.Route("/api", func(r internal.Router) {
		r.GET("/ping", func(c internal.Context) error { return c.String(http.StatusOK, "pong") })
	})
}

func (h *testHandler) index(c internal.Context) error {
	return c.String(http.StatusOK, "hello")
}

func (h *testHandler) json(c internal.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *testHandler) user(c internal.Context) error {
	return c.String(http.StatusOK, "user "+c.Param("id"))
}

func (h *testHandler) fail(c internal.Context) error {
	return errors.New("database on fire")
}

func (h *testHandler) forbidden(c internal.Context) error {
	return c.Error(http.StatusForbidden, "nope")
}

func (h *testHandler) page(c internal.Context) error {
	return c.Stream(http.StatusOK, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<html><body>streamed</body></html>")
		return err
	}))
}

func (h *testHandler) brokenPage(c internal.Context) error {
	return c.Stream(http.StatusOK, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, _ = io.WriteString(w, "<html><body>half")
		return errors.New("component failed")
	}))
}

func headerMiddleware(name, value string) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.SetHeader(name, value)
			return next(c)
		}
	}
}

func do(app http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestAppRouting(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithMiddleware(headerMiddleware("X-Test", "yes")),
		internal.WithHandlers(&testHandler{}),
	)

	tests := []struct {
		target string
		code   int
		body   string
	}{
		{"/", http.StatusOK, "hello"},
		{"/user/42", http.StatusOK, "user 42"},
		{"/api/ping", http.StatusOK, "pong"},
		{"/missing", http.StatusNotFound, "404 page not found\n"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			t.Parallel()

			w := do(app, http.MethodGet, tt.target)
			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
			assert.Equal(t, "yes", w.Header().Get("X-Test"))
		})
	}

	w := do(app, http.MethodGet, "/json")
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestDefaultErrorHandler(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(&testHandler{}))

	w := do(app, http.MethodGet, "/fail")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error\n", w.Body.String())
	assert.NotContains(t, w.Body.String(), "database")

	w = do(app, http.MethodGet, "/forbidden")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCustomErrorHandler(t *testing.T) {
	t.Parallel()

	var got error
	app := internal.New(
		internal.WithHandlers(&testHandler{}),
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			got = err
			return c.String(http.StatusTeapot, "custom")
		}),
	)

	w := do(app, http.MethodGet, "/fail")
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "custom", w.Body.String())
	assert.EqualError(t, got, "database on fire")
}

func TestNotFoundHandler(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithNotFoundHandler(func(c internal.Context) error {
		return c.String(http.StatusNotFound, "gone")
	}))

	w := do(app, http.MethodGet, "/anything")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "gone", w.Body.String())
}

func TestContextStream(t *testing.T) {
	t.Parallel()

	var renderErr error
	app := internal.New(
		internal.WithHandlers(&testHandler{}),
		internal.WithRenderOptions(render.WithOnError(func(err error) { renderErr = err })),
	)

	w := do(app, http.MethodGet, "/page")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html", w.Header().Get("Content-Type"))
	assert.Equal(t, "<html><body>streamed</body></html>", w.Body.String())

	w = do(app, http.MethodGet, "/broken-page")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "half", "nothing of a failed render may reach the client")
	assert.EqualError(t, renderErr, "component failed")
}

func TestStaticFilesAndMounts(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"public/client.js": {Data: []byte("console.log('hi')")},
	}

	app := internal.New(
		internal.WithStaticFiles("/static/", fsys, "public"),
		internal.WithMetricsHandler("/metrics", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, "metrics")
		})),
		internal.WithHandlers(&catchAll{}),
	)

	w := do(app, http.MethodGet, "/static/client.js")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log('hi')", w.Body.String())
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))

	w = do(app, http.MethodGet, "/static/")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(app, http.MethodGet, "/metrics")
	assert.Equal(t, "metrics", w.Body.String())

	w = do(app, http.MethodGet, "/some/page")
	assert.Equal(t, "catch-all /some/page", w.Body.String())
}

type catchAll struct{}

func (catchAll) Routes(r internal.Router) {
	r.GET("/*", func(c internal.Context) error {
		return c.String(http.StatusOK, "catch-all "+c.Request().URL.Path)
	})
}

func TestHealthChecks(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithHealthChecks(
			internal.WithReadinessCheck("renderer", func(context.Context) error { return errors.New("cold") }),
		),
		internal.WithHandlers(&catchAll{}),
	)

	assert.Equal(t, http.StatusOK, do(app, http.MethodGet, "/health/live").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(app, http.MethodGet, "/health/ready").Code)
}

func TestRun(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	app := internal.New(internal.WithHandlers(&testHandler{}))

	ctx, cancel := context.WithCancel(context.Background())
	var started, stopped bool
	done := make(chan error, 1)
	go func() {
		done <- app.Run("", internal.Listener(ln), internal.WithContext(ctx),
			internal.StartupHook(func(context.Context) error { started = true; return nil }),
			internal.ShutdownHook(func(context.Context) error { stopped = true; return nil }),
			internal.ShutdownTimeout(time.Second),
		)
	}()

	url := "http://" + ln.Addr().String() + "/"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return strings.TrimSpace(string(body)) == "hello"
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.True(t, started)
	assert.True(t, stopped)
}

func TestRunStartupHookError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	err := internal.New().Run("127.0.0.1:0", internal.StartupHook(func(context.Context) error { return boom }))
	require.ErrorIs(t, err, boom)
}
