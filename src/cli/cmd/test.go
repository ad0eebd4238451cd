package cmd

import (
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test [args...]",
	Short: "Run the unit tests",
	Long: `Invoke the external test command configured under test.command
(default: go test ./...). Extra arguments are passed through.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		argv := append(cfg.TestCommand(), args...)
		if err := runPassthrough(cmd.Context(), "test", argv); err != nil {
			return err
		}
		runPostHook(cmd.Context(), "unit tests complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(testCmd)
}
