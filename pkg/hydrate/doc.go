// Package hydrate attaches client behaviour to markup that was rendered on
// the server, without re-creating that markup.
//
// Hydrate renders the same component tree the server rendered, compares the
// result with the root element's existing markup and fails with a
// *MismatchError at the first structural difference. Elements that declare
// behaviour carry two attributes:
//
//	<button data-hid="counter" data-on="click:increment">0</button>
//
// data-hid names the element, data-on lists space-separated event:action
// pairs. Each action is looked up in the Actions passed with WithActions.
//
// The package works against the small Document/Element/Target interfaces.
// HTMLDocument implements them over golang.org/x/net/html and is used in
// tests; the WebAssembly client implements them over the browser DOM.
//
// A page that cannot be hydrated is a startup fault:
//
//	snap, err := hydrate.ReadSnapshot(doc)
//	...
//	hydrate.MustHydrate(ctx, doc, "root", views.App(),
//	    hydrate.WithSnapshot(snap),
//	    hydrate.WithActions(views.Actions()),
//	)
package hydrate
