package views

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/ssrkit/pkg/markdown"
	"github.com/dmitrymomot/ssrkit/pkg/ssrdata"
)

// RenderedAtKey is the data key holding the server render time.
const RenderedAtKey = "renderedAt"

//go:embed content.md
var content []byte

var intro = sync.OnceValues(func() (templ.Component, error) {
	return markdown.New().Component(content)
})

// App is the root component shared by the server and the client.
func App() templ.Component {
	return ssrdata.Provider(Page())
}

// Page renders the heading, the intro text, the server render time and the
// counter button.
func Page() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body, err := intro()
		if err != nil {
			return err
		}

		renderedAt, err := ssrdata.Use(ctx, RenderedAtKey, func(context.Context) (string, error) {
			return time.Now().UTC().Format(time.RFC3339), nil
		})
		if err != nil {
			return err
		}

		if _, err := io.WriteString(w, "<main><h1>Hello from ssrkit</h1><section>"); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}

		stamp := templ.EscapeString(renderedAt)
		_, err = fmt.Fprintf(w,
			`</section><p>Rendered at <time datetime="%s">%s</time></p>`+
				`<button type="button" data-hid="%s" data-on="click:%s">0</button></main>`,
			stamp, stamp, CounterHID, ActionIncrement)
		return err
	})
}
