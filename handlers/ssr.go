package handlers

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/ssrkit"
	"github.com/dmitrymomot/ssrkit/pkg/shell"
)

// DefaultCacheControl is sent with every rendered page. Pages carry
// per-render data, so caches must revalidate.
const DefaultCacheControl = "no-cache"

// SSR serves the page tree for every GET path.
type SSR struct {
	cfg          shell.Config
	root         func() templ.Component
	cacheControl string
}

// SSROption configures SSR.
type SSROption func(*SSR)

// WithCacheControl overrides the Cache-Control header of rendered pages.
// An empty value sends none.
func WithCacheControl(v string) SSROption {
	return func(h *SSR) {
		h.cacheControl = v
	}
}

// NewSSR returns a handler rendering root() inside the document shell
// described by cfg. root is called once per request.
func NewSSR(cfg shell.Config, root func() templ.Component, opts ...SSROption) *SSR {
	h := &SSR{
		cfg:          cfg,
		root:         root,
		cacheControl: DefaultCacheControl,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes registers the catch-all GET route, which also matches "/".
func (h *SSR) Routes(r ssrkit.Router) {
	r.GET("/*", h.page)
}

// page streams the document. A render failure is returned before anything is
// written, so the error handler still controls the response.
func (h *SSR) page(c ssrkit.Context) error {
	if h.cacheControl != "" {
		c.SetHeader("Cache-Control", h.cacheControl)
	}
	return c.Stream(http.StatusOK, shell.Document(h.cfg, h.root()))
}
