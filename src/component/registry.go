package component

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownName is returned when a requested name matches no
	// component, group or alias.
	ErrUnknownName = errors.New("unknown component or group")

	// ErrDuplicateName is returned when two components or groups claim
	// the same name or alias.
	ErrDuplicateName = errors.New("duplicate component or group name")

	// ErrGroupCycle is returned when group includes form a cycle.
	ErrGroupCycle = errors.New("component group cycle")
)

// Registry maps every component name, group name and alias to its item and
// resolves requested names into a deduplicated list of components.
type Registry struct {
	components []*Component
	groups     []*Group

	componentByName map[string]*Component
	groupByName     map[string]*Group
}

// NewRegistry builds a registry from the declared components and groups.
//
// Beyond the declared groups, two kinds of synthetic groups are added: an
// "all" group containing every component in declaration order, and one
// group per distinct component type. A synthetic group is only created
// when its name is not already taken.
//
// Name collisions are rejected: every name and alias must map to exactly
// one item.
func NewRegistry(components []*Component, groups []*Group) (*Registry, error) {
	r := &Registry{
		componentByName: make(map[string]*Component),
		groupByName:     make(map[string]*Group),
	}

	for _, c := range components {
		if err := r.addComponent(c); err != nil {
			return nil, err
		}
	}
	for _, g := range groups {
		if err := r.addGroup(g); err != nil {
			return nil, err
		}
	}

	r.addSyntheticGroups()

	// Includes are only names at this point; make sure they all refer to
	// something before any resolve is attempted.
	for _, g := range r.groups {
		for _, inc := range g.Includes {
			if !r.known(inc) {
				return nil, fmt.Errorf("%w: %q (included by group %q)", ErrUnknownName, inc, g.Name)
			}
		}
	}

	return r, nil
}

func (r *Registry) addComponent(c *Component) error {
	for _, name := range append([]string{c.Name}, c.Aliases...) {
		if r.known(name) {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		r.componentByName[name] = c
	}
	r.components = append(r.components, c)
	return nil
}

func (r *Registry) addGroup(g *Group) error {
	for _, name := range append([]string{g.Name}, g.Aliases...) {
		if r.known(name) {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		r.groupByName[name] = g
	}
	r.groups = append(r.groups, g)
	return nil
}

func (r *Registry) addSyntheticGroups() {
	if !r.known("all") {
		all := &Group{Name: "all", synthetic: true}
		for _, c := range r.components {
			all.Includes = append(all.Includes, c.Name)
		}
		_ = r.addGroup(all)
	}

	var types []string
	byType := make(map[string][]string)
	for _, c := range r.components {
		if c.Type == "" {
			continue
		}
		if _, ok := byType[c.Type]; !ok {
			types = append(types, c.Type)
		}
		byType[c.Type] = append(byType[c.Type], c.Name)
	}
	for _, t := range types {
		if r.known(t) {
			continue
		}
		_ = r.addGroup(&Group{Name: t, Includes: byType[t], synthetic: true})
	}
}

func (r *Registry) known(name string) bool {
	_, isComp := r.componentByName[name]
	_, isGroup := r.groupByName[name]
	return isComp || isGroup
}

// Resolve expands the requested names into concrete components. Groups are
// flattened depth-first in include order. Each component appears exactly
// once, at the position of its first occurrence, regardless of how many
// names expand to it. Unsupported components are retained; skipping them
// is the pipeline's job.
func (r *Registry) Resolve(names []string) ([]*Component, error) {
	var out []*Component
	seen := make(map[*Component]bool)
	for _, name := range names {
		comps, err := r.expand(name, nil)
		if err != nil {
			return nil, err
		}
		for _, c := range comps {
			if seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	return out, nil
}

// expand resolves one name to its components. trail carries the chain of
// group names already being expanded so include cycles fail instead of
// recursing forever.
func (r *Registry) expand(name string, trail []string) ([]*Component, error) {
	if c, ok := r.componentByName[name]; ok {
		return []*Component{c}, nil
	}
	g, ok := r.groupByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}

	for _, seen := range trail {
		if seen == g.Name {
			chain := strings.Join(append(trail, g.Name), " -> ")
			return nil, fmt.Errorf("%w: %s", ErrGroupCycle, chain)
		}
	}
	trail = append(trail, g.Name)

	var out []*Component
	for _, inc := range g.Includes {
		comps, err := r.expand(inc, trail)
		if err != nil {
			return nil, err
		}
		out = append(out, comps...)
	}
	return out, nil
}

// Components returns every declared component sorted by name.
func (r *Registry) Components() []*Component {
	out := make([]*Component, len(r.components))
	copy(out, r.components)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Groups returns every group, synthetic ones included, sorted by name.
func (r *Registry) Groups() []*Group {
	out := make([]*Group, len(r.groups))
	copy(out, r.groups)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
