package extension

// Registry is an explicit, ordered list of adapters. Order fixes the
// relative output order of extension diffs before the summarizer sorts;
// there is no process-wide registry.
type Registry struct {
	adapters []Adapter
	byKey    map[string]Adapter
}

// NewRegistry builds a registry from adapters in the given order.
// Later adapters with a duplicate key are ignored.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{byKey: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		if _, dup := r.byKey[a.Key()]; dup {
			continue
		}
		r.adapters = append(r.adapters, a)
		r.byKey[a.Key()] = a
	}
	return r
}

// Adapters returns the adapters in registration order.
func (r *Registry) Adapters() []Adapter {
	if r == nil {
		return nil
	}
	return r.adapters
}

// Lookup returns the adapter for a state key.
func (r *Registry) Lookup(key string) (Adapter, bool) {
	if r == nil {
		return nil, false
	}
	a, ok := r.byKey[key]
	return a, ok
}

// wellKnownAttributes are the attribute stores the default registry
// understands, in report order.
var wellKnownAttributes = []string{
	"protected", "noncomputable", "instance", "simp", "deprecated",
	"reducibility", "classOutParams",
}

// DefaultRegistry returns the built-in adapter set: documentation plus the
// well-known attribute stores. Keys can be filtered down via enabled; an
// empty list keeps everything.
func DefaultRegistry(enabled []string) *Registry {
	keep := func(string) bool { return true }
	if len(enabled) > 0 {
		set := make(map[string]struct{}, len(enabled))
		for _, k := range enabled {
			set[k] = struct{}{}
		}
		keep = func(k string) bool {
			_, ok := set[k]
			return ok
		}
	}

	var adapters []Adapter
	if keep("doc") {
		adapters = append(adapters, DocAdapter{})
	}
	for _, attr := range wellKnownAttributes {
		if keep(attr) {
			adapters = append(adapters, AttributeAdapter{StateKey: attr, Attr: attr})
		}
	}
	return NewRegistry(adapters...)
}
