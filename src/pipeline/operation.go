// Package pipeline composes docker invocations per component and runs
// independent component operations concurrently.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gitlab.prplanit.com/precisionplanit/pequod-oci/src/component"
	"gitlab.prplanit.com/precisionplanit/pequod-oci/src/execstream"
)

// Kind selects which steps an operation performs.
type Kind int

const (
	Build Kind = iota
	Push
	BuildAndPush
)

func (k Kind) String() string {
	switch k {
	case Build:
		return "build"
	case Push:
		return "push"
	case BuildAndPush:
		return "build and push"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Params are the push-side parameters resolved by the CLI layer.
type Params struct {
	RegistryURL string
	ProjectName string
	ImageTag    string
}

// CommandRunner is the slice of execstream.Runner the pipeline needs.
// Tests substitute a recording spy.
type CommandRunner interface {
	Run(ctx context.Context, argv []string, stdout, stderr execstream.Sink) (int, error)
}

// Operation is one unit of concurrent work: a component, a kind, and the
// resolved parameters, bound to a labeled sink pair.
type Operation struct {
	Component *component.Component
	Kind      Kind
	Params    Params

	Stdout execstream.Sink
	Stderr execstream.Sink
}

// NewOperation builds an operation whose output is labeled with the
// component's image name on the process's stdout and stderr.
func NewOperation(c *component.Component, kind Kind, params Params) *Operation {
	return &Operation{
		Component: c,
		Kind:      kind,
		Params:    params,
		Stdout:    execstream.NewLabelWriter(os.Stdout, c.ImageName),
		Stderr:    execstream.NewLabelWriter(os.Stderr, c.ImageName),
	}
}

// remoteRef is the fully qualified reference the image is pushed under.
func (op *Operation) remoteRef() string {
	return fmt.Sprintf("%s/%s/%s:%s",
		op.Params.RegistryURL, op.Params.ProjectName,
		op.Component.ImageName, op.Params.ImageTag)
}

// Commands returns the ordered argv sequences for the operation. The
// docker argument conventions here are a fixed external contract.
func (op *Operation) Commands() [][]string {
	c := op.Component
	var cmds [][]string
	if op.Kind == Build || op.Kind == BuildAndPush {
		cmds = append(cmds, []string{
			"docker", "build", "-t", c.ImageName, "-f", c.Dockerfile, c.ContextFolder,
		})
	}
	if op.Kind == Push || op.Kind == BuildAndPush {
		ref := op.remoteRef()
		cmds = append(cmds,
			[]string{"docker", "tag", c.ImageName, ref},
			[]string{"docker", "push", ref},
		)
	}
	return cmds
}

// Run executes the operation's commands strictly in order, waiting for
// each step to finish (streams fully drained) before starting the next.
// A spawn failure or non-zero exit aborts the component's remaining
// steps; other components are unaffected.
//
// Unsupported components are skipped with a single warning and spawn
// nothing.
func (op *Operation) Run(ctx context.Context, runner CommandRunner) Outcome {
	out := Outcome{Component: op.Component, Kind: op.Kind}

	if !op.Component.Supported {
		log.Warn().Str("component", op.Component.Name).Msg("component is not currently supported, skipping")
		out.Skipped = true
		return out
	}

	for _, argv := range op.Commands() {
		code, err := runner.Run(ctx, argv, op.Stdout, op.Stderr)
		if err != nil {
			out.Err = err
			out.FailedCommand = argv
			return out
		}
		if code != 0 {
			out.ExitCode = code
			out.FailedCommand = argv
			return out
		}
	}
	return out
}

// Outcome is the terminal state of one operation.
type Outcome struct {
	Component *component.Component
	Kind      Kind

	// Skipped is set for unsupported components; nothing was spawned.
	Skipped bool

	// ExitCode is the non-zero exit of the failed step, or 0.
	ExitCode int

	// FailedCommand is the argv of the step that failed, if any.
	FailedCommand []string

	// Err is set when a step could not be spawned or waited on.
	Err error
}

// Failed reports whether the operation ran and did not succeed.
func (o Outcome) Failed() bool {
	return o.Err != nil || o.ExitCode != 0
}

// Summary describes the outcome in one line.
func (o Outcome) Summary() string {
	switch {
	case o.Skipped:
		return fmt.Sprintf("%s: skipped (not supported)", o.Component.Name)
	case o.Err != nil:
		return fmt.Sprintf("%s: %s failed: %v", o.Component.Name, o.Kind, o.Err)
	case o.ExitCode != 0:
		return fmt.Sprintf("%s: %s failed (exit %d)", o.Component.Name, o.Kind, o.ExitCode)
	default:
		return fmt.Sprintf("%s: %s complete", o.Component.Name, o.Kind)
	}
}
