// Package markdown converts trusted or user-supplied markdown into sanitised
// HTML ready to embed in a component tree.
package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ErrConvert is returned when goldmark fails to convert the source.
var ErrConvert = errors.New("markdown: convert")

// Renderer converts markdown to HTML and sanitises the result.
// A Renderer is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithPolicy replaces the sanitising policy. A nil policy disables
// sanitising and should only be used for trusted sources.
func WithPolicy(p *bluemonday.Policy) Option {
	return func(r *Renderer) {
		r.policy = p
	}
}

// WithExtensions adds goldmark extensions on top of GFM.
func WithExtensions(exts ...goldmark.Extender) Option {
	return func(r *Renderer) {
		r.md = goldmark.New(goldmark.WithExtensions(append([]goldmark.Extender{extension.GFM}, exts...)...))
	}
}

// New returns a Renderer with GitHub flavoured markdown and the default policy.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultPolicy allows the formatting markdown produces plus headings,
// tables and images. Scripts, event handlers and javascript: URLs are removed.
func DefaultPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements(
		"p", "br", "hr",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"strong", "b", "em", "i", "del",
		"ul", "ol", "li",
		"code", "pre", "blockquote",
		"table", "thead", "tbody", "tr", "th", "td",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "alt", "title").OnElements("img")
	p.AllowAttrs("align").OnElements("th", "td")
	p.RequireNoFollowOnLinks(true)
	return p
}

// Render converts src to sanitised HTML.
func (r *Renderer) Render(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrConvert, err)
	}
	if r.policy == nil {
		return buf.String(), nil
	}
	return r.policy.SanitizeReader(&buf).String(), nil
}

// Component converts src once and returns a component writing the result.
func (r *Renderer) Component(src []byte) (templ.Component, error) {
	out, err := r.Render(src)
	if err != nil {
		return nil, err
	}
	return HTML(out), nil
}

// HTML returns a component that writes s verbatim. s must already be safe.
func HTML(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}
