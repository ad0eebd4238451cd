package cmd

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gitlab.prplanit.com/precisionplanit/pequod-oci/src/component"
	"gitlab.prplanit.com/precisionplanit/pequod-oci/src/execstream"
	"gitlab.prplanit.com/precisionplanit/pequod-oci/src/pipeline"
)

// recordingRunner stands in for the process runner and records every argv
// it would have spawned.
type recordingRunner struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recordingRunner) Run(_ context.Context, argv []string, _, _ execstream.Sink) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, argv)
	return 0, nil
}

func (r *recordingRunner) spawned() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func swapRunner(t *testing.T, fake pipeline.CommandRunner) {
	t.Helper()

	prev := commandRunner
	commandRunner = fake
	t.Cleanup(func() { commandRunner = prev })
}

func setupRegistry(t *testing.T) {
	t.Helper()

	prev := registry
	reg, err := component.NewRegistry([]*component.Component{
		{Name: "example1", ImageName: "example1-img", Dockerfile: "Dockerfile", ContextFolder: ".", Supported: true},
		{Name: "example2", ImageName: "example2-img", Dockerfile: "Dockerfile", ContextFolder: ".", Supported: true},
	}, nil)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	registry = reg
	t.Cleanup(func() { registry = prev })
}

func TestRunOperationsUnknownNameSpawnsNothing(t *testing.T) {
	spy := &recordingRunner{}
	swapRunner(t, spy)
	setupRegistry(t)

	err := runOperations(context.Background(), []string{"no-such-component"},
		pipeline.Build, pipeline.Params{ImageTag: "abc"})
	if !errors.Is(err, component.ErrUnknownName) {
		t.Fatalf("got %v, want ErrUnknownName", err)
	}
	if got := spy.spawned(); got != 0 {
		t.Errorf("unknown name spawned %d processes", got)
	}
}

func TestRunOperationsRunsEveryResolvedComponent(t *testing.T) {
	spy := &recordingRunner{}
	swapRunner(t, spy)
	setupRegistry(t)

	// No names means the synthetic "all" group; a build is one docker
	// invocation per component.
	if err := runOperations(context.Background(), nil,
		pipeline.Build, pipeline.Params{ImageTag: "abc"}); err != nil {
		t.Fatalf("runOperations: %v", err)
	}
	if got := spy.spawned(); got != 2 {
		t.Errorf("invocations: got %d, want 2", got)
	}
}
