package devreload_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ssrkit/pkg/devreload"
)

func newTestServer(t *testing.T) (*devreload.Server, *httptest.Server) {
	t.Helper()

	srv := devreload.NewServer()
	r := chi.NewRouter()
	r.Mount(devreload.MountPath, srv.Routes())
	ts := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + devreload.DefaultSocketPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) devreload.Message {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg devreload.Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestServerBroadcast(t *testing.T) {
	t.Parallel()

	srv, ts := newTestServer(t)
	conn := dial(t, ts)

	require.Eventually(t, func() bool { return srv.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	srv.NotifyReload()
	assert.Equal(t, devreload.Message{Type: devreload.MessageReload}, readMessage(t, conn))

	srv.NotifyCSS("app.css")
	assert.Equal(t, devreload.Message{Type: devreload.MessageCSS, File: "app.css"}, readMessage(t, conn))
}

func TestServerDropsClosedClients(t *testing.T) {
	t.Parallel()

	srv, ts := newTestServer(t)
	conn := dial(t, ts)
	require.Eventually(t, func() bool { return srv.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return srv.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestServeClient(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + devreload.DefaultClientPath)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/javascript; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
}

func TestWatcher(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules"), 0o755))

	w := devreload.NewWatcher(devreload.WatcherConfig{Paths: []string{dir}, Debounce: 20 * time.Millisecond})

	var (
		mu      sync.Mutex
		changes []devreload.Change
	)
	w.OnChange(func(c devreload.Change) {
		mu.Lock()
		defer mu.Unlock()
		changes = append(changes, c)
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	snapshot := func() []devreload.Change {
		mu.Lock()
		defer mu.Unlock()
		return append([]devreload.Change(nil), changes...)
	}

	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	require.Eventually(t, func() bool {
		write("app.css", "body{}")
		return len(snapshot()) > 0
	}, 3*time.Second, 50*time.Millisecond)
	assert.True(t, snapshot()[0].CSSOnly)

	// Let trailing stylesheet writes flush before the next batch.
	time.Sleep(100 * time.Millisecond)

	before := len(snapshot())
	write(filepath.Join("node_modules", "x.js"), "x")
	write("client.js", "console.log(1)")
	require.Eventually(t, func() bool { return len(snapshot()) > before }, 3*time.Second, 20*time.Millisecond)

	last := snapshot()[len(snapshot())-1]
	assert.False(t, last.CSSOnly)
	for _, p := range last.Paths {
		assert.NotContains(t, p, "node_modules")
	}
}

func TestWatcherMissingPath(t *testing.T) {
	t.Parallel()

	w := devreload.NewWatcher(devreload.WatcherConfig{Paths: []string{filepath.Join(t.TempDir(), "missing")}})
	require.Error(t, w.Run(context.Background()))
}
