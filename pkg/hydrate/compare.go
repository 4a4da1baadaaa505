package hydrate

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// parseFragment parses markup as the children of a <div>, which is what the
// root element is.
func parseFragment(markup string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, fmt.Errorf("hydrate: parse markup: %w", err)
	}
	return nodes, nil
}

// compare walks want (client render) and got (server markup) in lockstep.
// Comments and whitespace-only text nodes are ignored.
func compare(path string, want, got []*html.Node) error {
	want, got = significant(want), significant(got)

	for i := 0; i < max(len(want), len(got)); i++ {
		var w, g *html.Node
		if i < len(want) {
			w = want[i]
		}
		if i < len(got) {
			g = got[i]
		}
		p := fmt.Sprintf("%s/%s[%d]", path, label(w, g), i)

		if w == nil || g == nil {
			return &MismatchError{Path: p, Want: describe(w), Got: describe(g)}
		}
		if err := compareNode(p, w, g); err != nil {
			return err
		}
	}
	return nil
}

func compareNode(path string, w, g *html.Node) error {
	if w.Type != g.Type || (w.Type != html.TextNode && w.Data != g.Data) {
		return &MismatchError{Path: path, Want: describe(w), Got: describe(g)}
	}

	switch w.Type {
	case html.TextNode:
		if strings.TrimSpace(w.Data) != strings.TrimSpace(g.Data) {
			return &MismatchError{Path: path, Want: describe(w), Got: describe(g)}
		}
		return nil
	case html.ElementNode:
		wa, ga := attrString(w.Attr), attrString(g.Attr)
		if wa != ga {
			return &MismatchError{Path: path + "@attrs", Want: wa, Got: ga}
		}
	}

	return compare(path, children(w), children(g))
}

func significant(nodes []*html.Node) []*html.Node {
	out := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		switch {
		case n.Type == html.CommentNode:
		case n.Type == html.TextNode && strings.TrimSpace(n.Data) == "":
		default:
			out = append(out, n)
		}
	}
	return out
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// attrString renders attributes in a canonical, order-independent form.
func attrString(attrs []html.Attribute) string {
	parts := make([]string, 0, len(attrs))
	for _, a := range attrs {
		key := a.Key
		if a.Namespace != "" {
			key = a.Namespace + ":" + key
		}
		parts = append(parts, fmt.Sprintf("%s=%q", key, a.Val))
	}
	slices.Sort(parts)
	return "[" + strings.Join(parts, " ") + "]"
}

func label(w, g *html.Node) string {
	n := w
	if n == nil {
		n = g
	}
	switch {
	case n == nil:
		return "?"
	case n.Type == html.TextNode:
		return "#text"
	case n.Type == html.ElementNode:
		return n.Data
	default:
		return "#node"
	}
}

func describe(n *html.Node) string {
	if n == nil {
		return "nothing"
	}
	switch n.Type {
	case html.TextNode:
		return fmt.Sprintf("text %q", n.Data)
	case html.ElementNode:
		return "<" + n.Data + ">"
	default:
		return fmt.Sprintf("node %q", n.Data)
	}
}
