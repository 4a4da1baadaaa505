package hydrate

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// ErrTargetNotFound is returned by Listen when no descendant has the hid.
var ErrTargetNotFound = errors.New("hydrate: listen target not found")

// HTMLDocument is a Document backed by a parsed html tree. It stands in for a
// browser DOM outside the browser.
type HTMLDocument struct {
	root *html.Node

	mu        sync.Mutex
	listeners map[string][]func(Target)
}

// ParseDocument parses a complete html document.
func ParseDocument(r io.Reader) (*HTMLDocument, error) {
	n, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("hydrate: parse document: %w", err)
	}
	return &HTMLDocument{root: n, listeners: make(map[string][]func(Target))}, nil
}

// ElementByID returns the first element whose id attribute equals id.
func (d *HTMLDocument) ElementByID(id string) (Element, bool) {
	n := find(d.root, func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return ok && v == id
	})
	if n == nil {
		return nil, false
	}
	return &htmlElement{doc: d, node: n}, true
}

// Dispatch fires the listeners registered for event on the element with the
// given hid and reports how many ran.
func (d *HTMLDocument) Dispatch(hid, event string) int {
	n := find(d.root, func(n *html.Node) bool {
		v, ok := attr(n, AttrHID)
		return ok && v == hid
	})
	if n == nil {
		return 0
	}

	d.mu.Lock()
	fns := slices.Clone(d.listeners[listenerKey(hid, event)])
	d.mu.Unlock()

	for _, fn := range fns {
		fn(&nodeTarget{node: n})
	}
	return len(fns)
}

// Render writes the current document as html.
func (d *HTMLDocument) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

type htmlElement struct {
	doc  *HTMLDocument
	node *html.Node
}

func (e *htmlElement) InnerHTML() string {
	var b strings.Builder
	raw := e.node.Data == "script" || e.node.Data == "style"
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if raw && c.Type == html.TextNode {
			b.WriteString(c.Data)
			continue
		}
		_ = html.Render(&b, c)
	}
	return b.String()
}

func (e *htmlElement) Listen(hid, event string, fn func(Target)) error {
	n := find(e.node, func(n *html.Node) bool {
		v, ok := attr(n, AttrHID)
		return ok && v == hid
	})
	if n == nil {
		return fmt.Errorf("%w: %s", ErrTargetNotFound, hid)
	}

	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	key := listenerKey(hid, event)
	e.doc.listeners[key] = append(e.doc.listeners[key], fn)
	return nil
}

type nodeTarget struct {
	node *html.Node
}

func (t *nodeTarget) Text() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(t.node)
	return b.String()
}

func (t *nodeTarget) SetText(s string) {
	for c := t.node.FirstChild; c != nil; {
		next := c.NextSibling
		t.node.RemoveChild(c)
		c = next
	}
	t.node.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

func listenerKey(hid, event string) string { return hid + "\x00" + event }

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}
