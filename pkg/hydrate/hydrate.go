package hydrate

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/net/html"

	"github.com/dmitrymomot/ssrkit/pkg/ssrdata"
)

// Attributes that declare client behaviour on server-rendered markup.
const (
	AttrHID = "data-hid"
	AttrOn  = "data-on"
)

// Document is the part of a DOM hydration needs.
type Document interface {
	ElementByID(id string) (Element, bool)
}

// Element is a mounted root element.
type Element interface {
	InnerHTML() string
	// Listen attaches fn to event on the descendant whose data-hid is hid.
	Listen(hid, event string, fn func(Target)) error
}

// Target is the element an event fired on.
type Target interface {
	Text() string
	SetText(string)
}

// Action is a client behaviour referenced by name from a data-on attribute.
type Action func(Target)

// Actions maps action names to behaviours.
type Actions map[string]Action

// Binding is one listener attached during hydration.
type Binding struct {
	HID    string
	Event  string
	Action string
}

// Root is a hydrated root element.
type Root struct {
	el       Element
	bindings []Binding
}

// Element returns the element the tree was hydrated into.
func (r *Root) Element() Element { return r.el }

// Bindings returns the listeners attached, in document order.
func (r *Root) Bindings() []Binding { return r.bindings }

// Hydrate renders tree, checks it against the markup already inside root and
// attaches the listeners declared by data-on attributes. Existing markup is
// never replaced.
func Hydrate(ctx context.Context, root Element, tree templ.Component, opts ...Option) (*Root, error) {
	if tree == nil {
		return nil, ErrNilTree
	}

	cfg := newConfig(opts...)
	if cfg.snapshot != nil {
		ctx = ssrdata.WithSnapshot(ctx, cfg.snapshot)
	}

	var buf bytes.Buffer
	if err := tree.Render(ctx, &buf); err != nil {
		return nil, fmt.Errorf("hydrate: render tree: %w", err)
	}

	want, err := parseFragment(buf.String())
	if err != nil {
		return nil, err
	}
	got, err := parseFragment(root.InnerHTML())
	if err != nil {
		return nil, err
	}
	if err := compare("#root", want, got); err != nil {
		return nil, err
	}

	var bindings []Binding
	for _, n := range want {
		b, err := collectBindings(n, nil)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b...)
	}

	for _, b := range bindings {
		action, ok := cfg.actions[b.Action]
		if !ok {
			return nil, fmt.Errorf("%w: %q on %s", ErrUnknownAction, b.Action, b.HID)
		}
		if err := root.Listen(b.HID, b.Event, action); err != nil {
			return nil, fmt.Errorf("hydrate: listen %s:%s on %s: %w", b.Event, b.Action, b.HID, err)
		}
	}

	return &Root{el: root, bindings: bindings}, nil
}

// Mount looks up the element with id in doc and hydrates tree into it.
func Mount(ctx context.Context, doc Document, id string, tree templ.Component, opts ...Option) (*Root, error) {
	el, ok := doc.ElementByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: #%s", ErrRootNotFound, id)
	}
	return Hydrate(ctx, el, tree, opts...)
}

// MustHydrate is like Mount but panics on failure. A page without its root
// element, or with markup the client cannot reproduce, cannot start.
func MustHydrate(ctx context.Context, doc Document, id string, tree templ.Component, opts ...Option) *Root {
	r, err := Mount(ctx, doc, id, tree, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// ReadSnapshot decodes the server data snapshot embedded in doc. A document
// without one yields an empty snapshot.
func ReadSnapshot(doc Document) (ssrdata.Snapshot, error) {
	el, ok := doc.ElementByID(ssrdata.ScriptID)
	if !ok {
		return ssrdata.Snapshot{}, nil
	}
	return ssrdata.Decode([]byte(el.InnerHTML()))
}

func collectBindings(n *html.Node, out []Binding) ([]Binding, error) {
	if n.Type == html.ElementNode {
		if on, ok := attr(n, AttrOn); ok {
			hid, _ := attr(n, AttrHID)
			if hid == "" {
				return nil, fmt.Errorf("%w: <%s %s=%q> has no %s", ErrBadBinding, n.Data, AttrOn, on, AttrHID)
			}
			for _, binding := range strings.Fields(on) {
				event, action, found := strings.Cut(binding, ":")
				if !found || event == "" || action == "" {
					return nil, fmt.Errorf("%w: %q on %s", ErrBadBinding, binding, hid)
				}
				out = append(out, Binding{HID: hid, Event: event, Action: action})
			}
		}
	}

	var err error
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if out, err = collectBindings(c, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
