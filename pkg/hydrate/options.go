package hydrate

import "github.com/dmitrymomot/ssrkit/pkg/ssrdata"

type config struct {
	actions  Actions
	snapshot ssrdata.Snapshot
}

// Option configures Hydrate.
type Option func(*config)

// WithActions registers the behaviours data-on attributes may refer to.
// Later calls add to, and override, earlier ones.
func WithActions(actions Actions) Option {
	return func(c *config) {
		for name, fn := range actions {
			c.actions[name] = fn
		}
	}
}

// WithSnapshot seeds data providers in the tree with values resolved on the
// server, so the client render matches without fetching.
func WithSnapshot(snap ssrdata.Snapshot) Option {
	return func(c *config) {
		c.snapshot = snap
	}
}

func newConfig(opts ...Option) *config {
	c := &config{actions: make(Actions)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
