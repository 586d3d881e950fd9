package transition

// Descriptor bundles everything a presentation layer needs to show one
// effect: its registry name, category, and parameter schema.
type Descriptor struct {
	Name     string
	Category string
	Schema   Schema
}

// Factory creates transition instances and exposes schema introspection on
// top of a registry.
type Factory struct {
	registry *Registry
}

// NewFactory wraps the provided registry.
func NewFactory(registry *Registry) *Factory {
	return &Factory{registry: registry}
}

// Create instantiates a fresh transition for the named effect.
func (f *Factory) Create(name string) (Transition, error) {
	ctor, err := f.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	return ctor(), nil
}

// Schema instantiates the named effect and returns its parameter schema.
func (f *Factory) Schema(name string) (Schema, error) {
	t, err := f.Create(name)
	if err != nil {
		return nil, err
	}
	return t.Params(), nil
}

// Describe returns the full descriptor for one effect.
func (f *Factory) Describe(name string) (Descriptor, error) {
	schema, err := f.Schema(name)
	if err != nil {
		return Descriptor{}, err
	}
	category, err := f.registry.Category(name)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{Name: name, Category: category, Schema: schema}, nil
}

// DescribeAll returns descriptors for every registered effect in name order.
func (f *Factory) DescribeAll() []Descriptor {
	names := f.registry.Names()
	out := make([]Descriptor, 0, len(names))
	for _, name := range names {
		desc, err := f.Describe(name)
		if err != nil {
			continue
		}
		out = append(out, desc)
	}
	return out
}

// List returns every registered effect name in sorted order.
func (f *Factory) List() []string {
	return f.registry.Names()
}

// ListByCategory returns the effect names in the given category.
func (f *Factory) ListByCategory(category string) []string {
	return f.registry.NamesByCategory(category)
}

// Categories returns the distinct registered categories.
func (f *Factory) Categories() []string {
	return f.registry.Categories()
}
