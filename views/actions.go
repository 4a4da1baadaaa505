package views

import (
	"strconv"
	"strings"

	"github.com/dmitrymomot/ssrkit/pkg/hydrate"
)

const (
	// CounterHID identifies the counter button.
	CounterHID = "counter"

	ActionIncrement = "increment"
)

// Actions returns the client behaviours referenced by data-on attributes in Page.
func Actions() hydrate.Actions {
	return hydrate.Actions{
		ActionIncrement: increment,
	}
}

func increment(t hydrate.Target) {
	n, err := strconv.Atoi(strings.TrimSpace(t.Text()))
	if err != nil {
		n = 0
	}
	t.SetText(strconv.Itoa(n + 1))
}
