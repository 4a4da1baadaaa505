// Package ssrdata carries data resolved during server rendering over to the
// client, so hydration renders from the same values instead of fetching again.
//
// Wrap the page in a Provider and resolve values with Use:
//
//	func Page() templ.Component {
//	    return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
//	        stamp, err := ssrdata.Use(ctx, "renderedAt", func(context.Context) (string, error) {
//	            return time.Now().UTC().Format(time.RFC3339), nil
//	        })
//	        ...
//	    })
//	}
//
//	app := ssrdata.Provider(Page())
//
// After its children the Provider writes every resolved value into
// <script type="application/json" id="__ssr_data__">. On the client, decode
// that element with Decode and render with WithSnapshot:
//
//	snap, err := ssrdata.Decode(scriptText)
//	ctx := ssrdata.WithSnapshot(ctx, snap)
//	app.Render(ctx, w) // Use returns seeded values, fetch is never called
package ssrdata
