package cmd

import (
	"github.com/spf13/cobra"
	"gitlab.prplanit.com/precisionplanit/pequod-oci/src/pipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build [components...]",
	Short: "Build one or more component images",
	Long: `Build the images of the named components or groups.

With no arguments, every configured component is built. Output from
concurrently running builds is interleaved line by line, each line
prefixed with the owning component's image name.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runOperations(cmd.Context(), args, pipeline.Build, pipeline.Params{}); err != nil {
			return err
		}
		runPostHook(cmd.Context(), "build complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
