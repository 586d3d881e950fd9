package transition

import (
	"sort"

	"segue/internal/services"
)

// Registry catalogs transitions by name. It is populated once at startup via
// explicit Register calls and read-only thereafter; concurrent lookups after
// that point need no synchronization.
type Registry struct {
	entries map[string]entry
}

type entry struct {
	category string
	ctor     Constructor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a transition constructor under the given name and category.
// Registering an existing name is a programming error and fails with the
// duplicate-effect sentinel.
func (r *Registry) Register(name, category string, ctor Constructor) error {
	if _, exists := r.entries[name]; exists {
		return services.Wrap(services.ErrDuplicateEffect, "registry", "register", name, nil)
	}
	r.entries[name] = entry{category: category, ctor: ctor}
	return nil
}

// Lookup returns the constructor registered under name.
func (r *Registry) Lookup(name string) (Constructor, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, services.Wrap(services.ErrUnknownEffect, "registry", "lookup", name, nil)
	}
	return e.ctor, nil
}

// Category returns the category the named transition was registered under.
func (r *Registry) Category(name string) (string, error) {
	e, ok := r.entries[name]
	if !ok {
		return "", services.Wrap(services.ErrUnknownEffect, "registry", "category", name, nil)
	}
	return e.category, nil
}

// Names lists every registered transition in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Categories lists the distinct categories in sorted order.
func (r *Registry) Categories() []string {
	seen := make(map[string]struct{})
	for _, e := range r.entries {
		seen[e.category] = struct{}{}
	}
	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// NamesByCategory lists the transitions registered under category, sorted.
func (r *Registry) NamesByCategory(category string) []string {
	names := make([]string, 0)
	for name, e := range r.entries {
		if e.category == category {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
