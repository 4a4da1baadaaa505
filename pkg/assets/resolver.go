package assets

// Resolver turns a logical asset name into a URL path.
type Resolver interface {
	Asset(source string) string
}

type manifestResolver struct {
	manifest *Manifest
	prefix   string
}

// NewResolver creates a Resolver backed by m. The prefix is prepended to
// every resolved name, e.g. "/static/".
func NewResolver(m *Manifest, prefix string) Resolver {
	if m == nil {
		m = NewManifest()
	}
	return &manifestResolver{
		manifest: m,
		prefix:   prefix,
	}
}

func (r *manifestResolver) Asset(source string) string {
	return r.prefix + r.manifest.Resolve(source)
}

type passthrough struct {
	prefix string
}

// NewPassthroughResolver creates a resolver that only applies prefix.
// Use it in development mode where assets are served unbuilt.
func NewPassthroughResolver(prefix string) Resolver {
	return &passthrough{prefix: prefix}
}

func (p *passthrough) Asset(source string) string {
	return p.prefix + source
}
