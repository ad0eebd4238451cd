// Package component holds the universe of buildable units and named groups
// and resolves requested names into concrete build targets.
package component

// Component is a single buildable and pushable image unit. Components are
// constructed once from configuration and never mutated afterwards.
type Component struct {
	Name          string
	ImageName     string
	Dockerfile    string
	ContextFolder string
	Type          string
	Aliases       []string
	DependsOn     []string

	// Supported marks whether the component can currently be built.
	// Unsupported components survive resolution; the pipeline skips them
	// with a warning instead of spawning anything.
	Supported bool
}

// Group is a named, ordered collection of components and/or other groups,
// referenced by name. Membership is resolved lazily so that groups can be
// declared in any order.
type Group struct {
	Name     string
	Aliases  []string
	Includes []string

	// synthetic marks groups pequod derives itself (the "all" group and
	// the per-type groups) as opposed to user-declared ones.
	synthetic bool
}

// Synthetic reports whether the group was derived rather than declared.
func (g *Group) Synthetic() bool { return g.synthetic }
