package cmd

import (
	"github.com/spf13/cobra"
	"gitlab.prplanit.com/precisionplanit/pequod-oci/src/pipeline"
)

var bpCmd = &cobra.Command{
	Use:   "bp [components...]",
	Short: "Build and push selected component images",
	Long: `Build, re-tag and push the named components in one go. Per
component the order is strictly build, tag, push; a failed build aborts
that component's tag and push while other components continue.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := pushParams()
		if err != nil {
			return err
		}
		if err := runOperations(cmd.Context(), args, pipeline.BuildAndPush, params); err != nil {
			return err
		}
		runPostHook(cmd.Context(), "build and push complete")
		return nil
	},
}

func init() {
	addPushFlags(bpCmd)
	rootCmd.AddCommand(bpCmd)
}
