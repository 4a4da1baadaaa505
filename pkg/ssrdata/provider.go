package ssrdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/a-h/templ"
)

// ScriptID is the id of the script element carrying the snapshot.
const ScriptID = "__ssr_data__"

// Snapshot holds the values resolved during one render, keyed by Use key.
type Snapshot map[string]json.RawMessage

// Store collects values resolved during a single render.
type Store struct {
	values map[string]json.RawMessage
	seeded Snapshot
	mu     sync.Mutex
}

func newStore(seed Snapshot) *Store {
	return &Store{
		values: make(map[string]json.RawMessage),
		seeded: seed,
	}
}

// Snapshot returns a copy of every value recorded so far.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(Snapshot, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

type storeKey struct{}
type snapshotKey struct{}

// WithSnapshot seeds every Provider rendered with ctx from snap.
// Use calls then return the seeded values without fetching.
func WithSnapshot(ctx context.Context, snap Snapshot) context.Context {
	return context.WithValue(ctx, snapshotKey{}, snap)
}

// Decode parses the JSON content of the snapshot script element.
func Decode(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if snap == nil {
		snap = Snapshot{}
	}
	return snap, nil
}

// FromContext returns the Store installed by the nearest Provider.
func FromContext(ctx context.Context) (*Store, bool) {
	s, ok := ctx.Value(storeKey{}).(*Store)
	return s, ok
}

// Provider renders children with a fresh Store in context, then writes the
// recorded values as a JSON script element so the client can render the
// same tree without fetching again.
func Provider(children templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		seed, _ := ctx.Value(snapshotKey{}).(Snapshot)
		store := newStore(seed)

		if children != nil {
			if err := children.Render(context.WithValue(ctx, storeKey{}, store), w); err != nil {
				return err
			}
		}

		// encoding/json sorts map keys and escapes <, > and &, so the output is
		// deterministic and cannot close the script element early.
		data, err := json.Marshal(store.Snapshot())
		if err != nil {
			return fmt.Errorf("ssrdata: encode snapshot: %w", err)
		}

		if _, err := io.WriteString(w, `<script type="application/json" id="`+ScriptID+`">`); err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		_, err = io.WriteString(w, `</script>`)
		return err
	})
}

// Use returns the value for key, calling fetch at most once per render.
// When the Provider was seeded with a snapshot containing key, the seeded
// value is decoded and fetch is not called.
func Use[T any](ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	store, ok := FromContext(ctx)
	if !ok {
		return zero, ErrNoProvider
	}

	store.mu.Lock()
	raw, ok := store.values[key]
	if !ok {
		raw, ok = store.seeded[key]
	}
	store.mu.Unlock()

	if !ok {
		v, err := fetch(ctx)
		if err != nil {
			return zero, fmt.Errorf("ssrdata: fetch %q: %w", key, err)
		}
		if raw, err = json.Marshal(v); err != nil {
			return zero, fmt.Errorf("ssrdata: encode %q: %w", key, err)
		}
	}

	// The server hands out the JSON round-tripped value too, so both sides
	// render from identical data.
	v, err := decodeValue[T](key, raw)
	if err != nil {
		return zero, err
	}

	store.mu.Lock()
	if _, exists := store.values[key]; !exists {
		store.values[key] = raw
	}
	store.mu.Unlock()

	return v, nil
}

func decodeValue[T any](key string, raw json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("%w: key %q: %w", ErrDecode, key, err)
	}
	return v, nil
}
