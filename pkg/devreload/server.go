package devreload

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// MessageType tells the browser what to do.
type MessageType string

const (
	MessageReload MessageType = "reload"
	MessageCSS    MessageType = "css"
)

// Message is sent to every connected browser.
type Message struct {
	Type MessageType `json:"type"`
	File string      `json:"file,omitempty"`
}

// Routes are mounted at MountPath.
const (
	MountPath         = "/_dev"
	DefaultSocketPath = MountPath + "/reload"
	DefaultClientPath = MountPath + "/client.js"
)

// Server keeps the open live-reload websockets and broadcasts to them.
type Server struct {
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
	logger   *slog.Logger
	mu       sync.RWMutex
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for connection events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer returns a Server accepting connections from any origin.
// It is meant for local development only.
func NewServer(opts ...Option) *Server {
	s := &Server{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns a handler to mount at MountPath. It serves the websocket
// at /reload and the browser script at /client.js.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/reload", s.ServeHTTP)
	r.Get("/client.js", ServeClient)
	return r
}

// ServeHTTP upgrades the request and holds the connection until the browser
// goes away.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("devreload: upgrade failed", slog.String("error", err.Error()))
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	_ = conn.Close()
}

// NotifyReload asks every browser to reload the page.
func (s *Server) NotifyReload() {
	s.broadcast(Message{Type: MessageReload})
}

// NotifyCSS asks every browser to refetch its stylesheets.
func (s *Server) NotifyCSS(file string) {
	s.broadcast(Message{Type: MessageCSS, File: file})
}

func (s *Server) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	s.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.RUnlock()

	for _, c := range clients {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			s.mu.Lock()
			delete(s.clients, c)
			s.mu.Unlock()
			_ = c.Close()
		}
	}
}

// ClientCount returns the number of connected browsers.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Close drops every connection.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for c := range s.clients {
		_ = c.Close()
		delete(s.clients, c)
	}
}
