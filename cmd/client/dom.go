//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/dmitrymomot/ssrkit/pkg/hydrate"
)

type document struct {
	v js.Value
}

func newDocument() *document {
	return &document{v: js.Global().Get("document")}
}

func (d *document) ElementByID(id string) (hydrate.Element, bool) {
	el := d.v.Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return nil, false
	}
	return &element{v: el}, true
}

type element struct {
	v js.Value
	// funcs keeps listener callbacks reachable for the lifetime of the page.
	funcs []js.Func
}

func (e *element) InnerHTML() string {
	return e.v.Get("innerHTML").String()
}

func (e *element) Listen(hid, event string, fn func(hydrate.Target)) error {
	node := e.v.Call("querySelector", fmt.Sprintf(`[%s=%q]`, hydrate.AttrHID, hid))
	if node.IsNull() {
		return fmt.Errorf("%w: %s", hydrate.ErrTargetNotFound, hid)
	}

	cb := js.FuncOf(func(js.Value, []js.Value) any {
		fn(target{v: node})
		return nil
	})
	e.funcs = append(e.funcs, cb)
	node.Call("addEventListener", event, cb)
	return nil
}

type target struct {
	v js.Value
}

func (t target) Text() string     { return t.v.Get("textContent").String() }
func (t target) SetText(s string) { t.v.Set("textContent", s) }
