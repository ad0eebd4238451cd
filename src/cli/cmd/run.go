package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gitlab.prplanit.com/precisionplanit/pequod-oci/src/execstream"
	"gitlab.prplanit.com/precisionplanit/pequod-oci/src/gitver"
	"gitlab.prplanit.com/precisionplanit/pequod-oci/src/pipeline"
)

// commandRunner spawns every external process the commands need. Tests
// swap it for a recording fake.
var commandRunner pipeline.CommandRunner = execstream.Runner{}

var (
	tagOnce   sync.Once
	tagCached string
	tagErr    error
)

// defaultImageTag derives the git-based tag once per invocation.
func defaultImageTag() (string, error) {
	tagOnce.Do(func() {
		tagCached, tagErr = gitver.ImageTag(".", time.Now)
	})
	return tagCached, tagErr
}

// resolveImageTag prefers an explicit --image-tag over the git default.
func resolveImageTag(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	tag, err := defaultImageTag()
	if err != nil {
		return "", fmt.Errorf("deriving image tag: %w", err)
	}
	return tag, nil
}

// runOperations resolves the requested names and runs one operation per
// component concurrently. An empty name list means the "all" group.
//
// Name resolution happens before anything is spawned, so a bad name
// aborts the whole invocation up front. With --best-effort, individual
// operation failures are reported but do not fail the invocation.
func runOperations(ctx context.Context, names []string, kind pipeline.Kind, params pipeline.Params) error {
	if len(names) == 0 {
		names = []string{"all"}
	}
	comps, err := registry.Resolve(names)
	if err != nil {
		return err
	}

	ops := make([]*pipeline.Operation, 0, len(comps))
	for _, c := range comps {
		ops = append(ops, pipeline.NewOperation(c, kind, params))
	}

	batch := &pipeline.Executor{Runner: commandRunner}
	outcomes, runErr := batch.RunAll(ctx, ops)

	var failed int
	for _, o := range outcomes {
		if o.Failed() {
			failed++
			log.Error().Msg(o.Summary())
		} else if !o.Skipped {
			log.Debug().Msg(o.Summary())
		}
	}

	if runErr != nil && !bestEffort {
		return fmt.Errorf("%d of %d operations failed", failed, len(outcomes))
	}
	return nil
}

// runPostHook runs PEQUOD_POST_COMMAND with the completion message
// appended, when configured. Hook failures are reported but never fail
// the invocation.
func runPostHook(ctx context.Context, message string) {
	if settings.PostCommand == "" {
		return
	}
	argv := append(strings.Fields(settings.PostCommand), strings.Fields(message)...)

	stdout := execstream.NewLabelWriter(os.Stdout, "post")
	stderr := execstream.NewLabelWriter(os.Stderr, "post")
	code, err := commandRunner.Run(ctx, argv, stdout, stderr)
	if err != nil {
		log.Warn().Err(err).Msg("post command failed")
	} else if code != 0 {
		log.Warn().Int("exit", code).Msg("post command exited non-zero")
	}
}

// runPassthrough invokes one external tool with labeled output, used by
// the lint and test commands. A non-zero exit fails the invocation.
func runPassthrough(ctx context.Context, label string, argv []string) error {
	stdout := execstream.NewLabelWriter(os.Stdout, label)
	stderr := execstream.NewLabelWriter(os.Stderr, label)

	code, err := commandRunner.Run(ctx, argv, stdout, stderr)
	if err != nil {
		return err
	}
	if code != 0 {
		return fmt.Errorf("%s exited with code %d", argv[0], code)
	}
	return nil
}
