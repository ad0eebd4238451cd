package component

import (
	"errors"
	"reflect"
	"testing"
)

func testComponents() []*Component {
	return []*Component{
		{Name: "example1", ImageName: "example1", Aliases: []string{"e1"}, Type: "service", Supported: true},
		{Name: "example2", ImageName: "example2", Type: "service", Supported: true},
		{Name: "tooling", ImageName: "tooling-img", Type: "job", Supported: false},
	}
}

func newTestRegistry(t *testing.T, groups ...*Group) *Registry {
	t.Helper()

	r, err := NewRegistry(testComponents(), groups)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}

func resolveNames(t *testing.T, r *Registry, names ...string) []string {
	t.Helper()

	comps, err := r.Resolve(names)
	if err != nil {
		t.Fatalf("Resolve(%v): %v", names, err)
	}
	out := make([]string, len(comps))
	for i, c := range comps {
		out[i] = c.Name
	}
	return out
}

func TestResolveByNameAndAlias(t *testing.T) {
	r := newTestRegistry(t)

	if got := resolveNames(t, r, "example1"); !reflect.DeepEqual(got, []string{"example1"}) {
		t.Errorf("by name: got %v", got)
	}
	if got := resolveNames(t, r, "e1"); !reflect.DeepEqual(got, []string{"example1"}) {
		t.Errorf("by alias: got %v", got)
	}
}

func TestResolveGroupOrderPreserved(t *testing.T) {
	r := newTestRegistry(t, &Group{Name: "reversed", Includes: []string{"example2", "example1"}})

	got := resolveNames(t, r, "reversed")
	if want := []string{"example2", "example1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestResolveDedupByIdentityFirstOccurrence(t *testing.T) {
	r := newTestRegistry(t)

	// "all" already contains example1; requesting it again (via alias,
	// even) must not duplicate it, and it stays at its first position.
	got := resolveNames(t, r, "all", "e1")
	if want := []string{"example1", "example2", "tooling"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	got = resolveNames(t, r, "e1", "all", "example1")
	if want := []string{"example1", "example2", "tooling"}; !reflect.DeepEqual(got, want) {
		t.Errorf("alias first: got %v, want %v", got, want)
	}
}

func TestResolveUnknownName(t *testing.T) {
	r := newTestRegistry(t)

	_, err := r.Resolve([]string{"example1", "nope"})
	if !errors.Is(err, ErrUnknownName) {
		t.Fatalf("got %v, want ErrUnknownName", err)
	}
}

func TestResolveKeepsUnsupported(t *testing.T) {
	r := newTestRegistry(t)

	comps, err := r.Resolve([]string{"all"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	var found bool
	for _, c := range comps {
		if c.Name == "tooling" {
			found = true
			if c.Supported {
				t.Errorf("tooling should be unsupported")
			}
		}
	}
	if !found {
		t.Errorf("unsupported component filtered out of resolution: %v", comps)
	}
}

func TestNestedGroups(t *testing.T) {
	r := newTestRegistry(t,
		&Group{Name: "inner", Includes: []string{"example2"}},
		&Group{Name: "outer", Includes: []string{"inner", "example1"}, Aliases: []string{"o"}},
	)

	got := resolveNames(t, r, "o")
	if want := []string{"example2", "example1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGroupCycleDetected(t *testing.T) {
	r := newTestRegistry(t,
		&Group{Name: "a", Includes: []string{"b"}},
		&Group{Name: "b", Includes: []string{"a", "example1"}},
	)

	_, err := r.Resolve([]string{"a"})
	if !errors.Is(err, ErrGroupCycle) {
		t.Fatalf("got %v, want ErrGroupCycle", err)
	}
}

func TestDuplicateNamesRejected(t *testing.T) {
	cases := []struct {
		name       string
		components []*Component
		groups     []*Group
	}{
		{
			name: "component name twice",
			components: []*Component{
				{Name: "x", ImageName: "x"},
				{Name: "x", ImageName: "y"},
			},
		},
		{
			name: "alias collides with name",
			components: []*Component{
				{Name: "x", ImageName: "x"},
				{Name: "y", ImageName: "y", Aliases: []string{"x"}},
			},
		},
		{
			name: "group collides with component",
			components: []*Component{
				{Name: "x", ImageName: "x"},
			},
			groups: []*Group{{Name: "x", Includes: []string{"x"}}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRegistry(tc.components, tc.groups)
			if !errors.Is(err, ErrDuplicateName) {
				t.Fatalf("got %v, want ErrDuplicateName", err)
			}
		})
	}
}

func TestUnknownIncludeRejectedAtLoad(t *testing.T) {
	_, err := NewRegistry(testComponents(), []*Group{
		{Name: "broken", Includes: []string{"ghost"}},
	})
	if !errors.Is(err, ErrUnknownName) {
		t.Fatalf("got %v, want ErrUnknownName", err)
	}
}

func TestSyntheticAllGroup(t *testing.T) {
	r := newTestRegistry(t)

	// Declaration order, not sorted.
	got := resolveNames(t, r, "all")
	if want := []string{"example1", "example2", "tooling"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestUserDefinedAllGroupWins(t *testing.T) {
	r := newTestRegistry(t, &Group{Name: "all", Includes: []string{"example2"}})

	got := resolveNames(t, r, "all")
	if want := []string{"example2"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSyntheticTypeGroups(t *testing.T) {
	r := newTestRegistry(t)

	if got := resolveNames(t, r, "service"); !reflect.DeepEqual(got, []string{"example1", "example2"}) {
		t.Errorf("service group: got %v", got)
	}
	if got := resolveNames(t, r, "job"); !reflect.DeepEqual(got, []string{"tooling"}) {
		t.Errorf("job group: got %v", got)
	}
}

func TestTypeGroupDoesNotOverrideUserGroup(t *testing.T) {
	r := newTestRegistry(t, &Group{Name: "service", Includes: []string{"tooling"}})

	got := resolveNames(t, r, "service")
	if want := []string{"tooling"}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGroupsIncludeSynthetic(t *testing.T) {
	r := newTestRegistry(t)

	var names []string
	for _, g := range r.Groups() {
		names = append(names, g.Name)
		if !g.Synthetic() {
			t.Errorf("group %s should be synthetic", g.Name)
		}
	}
	if want := []string{"all", "job", "service"}; !reflect.DeepEqual(names, want) {
		t.Errorf("got %v, want %v", names, want)
	}
}
