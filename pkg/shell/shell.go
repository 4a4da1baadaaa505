package shell

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/ssrkit/pkg/assets"
)

// RootID is the id of the element the page is rendered into and hydrated from.
const RootID = "root"

// Default asset locations.
const (
	DefaultStylesheet    = "https://cdn.simplecss.org/simple.min.css"
	DefaultClientEntry   = "/src/client.js"
	DefaultClientBundle  = "client.js"
	DefaultStaticPrefix  = "/static/"
	DefaultReloadPath    = "/_dev/reload"
	DefaultDevClientPath = "/_dev/client.js"
)

// Config controls which head tags the document shell emits.
type Config struct {
	// Dev switches to the raw client entry and adds live-reload scripts.
	Dev bool

	Title      string
	Stylesheet string

	// ClientEntry is the unbuilt client script path used in development.
	ClientEntry string

	// ClientBundle is the manifest key of the built client script, resolved
	// through Assets in production.
	ClientBundle string
	Assets       assets.Resolver

	ReloadPath    string
	DevClientPath string
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig(dev bool) Config {
	return Config{
		Dev:           dev,
		Stylesheet:    DefaultStylesheet,
		ClientEntry:   DefaultClientEntry,
		ClientBundle:  DefaultClientBundle,
		Assets:        assets.NewPassthroughResolver(DefaultStaticPrefix),
		ReloadPath:    DefaultReloadPath,
		DevClientPath: DefaultDevClientPath,
	}
}

// ClientScript returns the src of the client script for the current mode.
func (c Config) ClientScript() string {
	if c.Dev {
		return c.ClientEntry
	}
	if c.Assets == nil {
		return DefaultStaticPrefix + strings.TrimPrefix(c.ClientBundle, "/")
	}
	return c.Assets.Asset(c.ClientBundle)
}

// Document wraps body in the html shell. The output always starts with
// <html> and carries exactly one element with id RootID.
func Document(cfg Config, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, head(cfg)); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div></body></html>`)
		return err
	})
}

func head(cfg Config) string {
	var b strings.Builder
	b.WriteString(`<html><head>`)
	b.WriteString(`<meta charset="utf-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	if cfg.Title != "" {
		b.WriteString(`<title>` + templ.EscapeString(cfg.Title) + `</title>`)
	}
	if cfg.Dev {
		b.WriteString(`<script type="module">` + reloadPreamble(cfg.ReloadPath) + `</script>`)
		b.WriteString(`<script type="module" src="` + templ.EscapeString(cfg.DevClientPath) + `"></script>`)
	}
	if cfg.Stylesheet != "" {
		b.WriteString(`<link rel="stylesheet" href="` + templ.EscapeString(cfg.Stylesheet) + `">`)
	}
	b.WriteString(`<script type="module" src="` + templ.EscapeString(cfg.ClientScript()) + `"></script>`)
	b.WriteString(`</head><body><div id="` + RootID + `">`)
	return b.String()
}

// reloadPreamble marks the page as live-reload enabled before the dev client
// script connects.
func reloadPreamble(path string) string {
	// json.Marshal escapes <, so the value cannot end the script element.
	data, _ := json.Marshal(path)
	return `window.__ssrkit_reload__ = ` + string(data) + `;`
}
