package styles

import (
	"hash/fnv"
	"strconv"
	"strings"
	"sync"
)

// DefaultBudget is the byte limit AMP places on the single amp-custom style
// block. Registries account against it unless configured otherwise.
const DefaultBudget = 75000

// Fragment is one registered piece of CSS.
type Fragment struct {
	ID  string
	CSS string
}

// Registry is a transient, request-scoped mapping from a style id to its CSS
// text. Inserts are first-write-wins, reads concatenate in insertion order.
// A Registry is safe for concurrent use, but must never be shared across
// requests.
type Registry struct {
	mu        sync.Mutex
	fragments []Fragment
	index     map[string]int
	hydrated  map[string]struct{}
	bytes     int
	budget    int
}

// Option configures a Registry.
type Option func(*Registry)

// WithBudget overrides the byte budget enforced when serializing for the AMP
// target. Zero disables accounting.
func WithBudget(n int) Option {
	return func(r *Registry) {
		r.budget = n
	}
}

// NewRegistry creates an empty registry with the default AMP byte budget.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		index:    make(map[string]int),
		hydrated: make(map[string]struct{}),
		budget:   DefaultBudget,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add registers a CSS fragment under its content hash and reports whether it
// was newly inserted. Adding identical CSS twice returns the same id with
// added false, no matter which component asked first.
func (r *Registry) Add(css string) (string, bool) {
	id := HashID(css)
	return id, r.insert(id, css)
}

// AddNamed registers a fragment under a caller-supplied id. The first write
// for an id wins; later writes are ignored even when their CSS differs.
func (r *Registry) AddNamed(id, css string) bool {
	return r.insert(id, css)
}

func (r *Registry) insert(id, css string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.hydrated[id]; ok {
		return false
	}
	if _, ok := r.index[id]; ok {
		return false
	}
	r.index[id] = len(r.fragments)
	r.fragments = append(r.fragments, Fragment{ID: id, CSS: css})
	r.bytes += len(css)
	return true
}

// Hydrate seeds the registry with ids whose CSS is already present in the
// target document. Hydrated ids contribute no CSS on read but suppress
// re-insertion of their fragments.
func (r *Registry) Hydrate(ids ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := r.index[id]; ok {
			continue
		}
		r.hydrated[id] = struct{}{}
	}
}

// Has reports whether an id is known, either inserted or hydrated.
func (r *Registry) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[id]; ok {
		return true
	}
	_, ok := r.hydrated[id]
	return ok
}

// IDs returns the inserted fragment ids in insertion order. Hydrated ids are
// not included; they own no CSS in this registry.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, len(r.fragments))
	for i, f := range r.fragments {
		ids[i] = f.ID
	}
	return ids
}

// Fragments returns a copy of the inserted fragments in insertion order.
func (r *Registry) Fragments() []Fragment {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Fragment, len(r.fragments))
	copy(out, r.fragments)
	return out
}

// Len returns the number of inserted fragments.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fragments)
}

// Size returns the byte length of the aggregate CSS, separators included.
func (r *Registry) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size()
}

func (r *Registry) size() int {
	if len(r.fragments) == 0 {
		return 0
	}
	return r.bytes + len(r.fragments) - 1
}

// CSS concatenates the inserted fragments in insertion order.
func (r *Registry) CSS() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.css()
}

func (r *Registry) css() string {
	parts := make([]string, len(r.fragments))
	for i, f := range r.fragments {
		parts[i] = f.CSS
	}
	return strings.Join(parts, "\n")
}

// Budget returns the configured byte budget. Zero means accounting is off.
func (r *Registry) Budget() int {
	return r.budget
}

// HashID returns the stable id for a piece of CSS: FNV-64a of the text,
// base-36 encoded. Identical CSS hashes to the same id in every process.
func HashID(css string) string {
	h := fnv.New64a()
	h.Write([]byte(css))
	return strconv.FormatUint(h.Sum64(), 36)
}
