// Package transition defines the contract every transition effect
// implements, the registry that catalogs effects by name and category, and
// the factory used to instantiate them and introspect their parameter
// schemas.
//
// A transition is a pure per-frame function: given the two source frames for
// a progress position it produces one output frame and holds no state across
// invocations. That purity is what lets the processor fan frame computation
// out across goroutines. The registry is populated once at startup through
// explicit registration (effects.RegisterAll) and is read-only afterwards, so
// concurrent lookups need no locking.
package transition
