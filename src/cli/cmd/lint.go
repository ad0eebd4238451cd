package cmd

import (
	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:     "lint [paths...]",
	Aliases: []string{"flake"},
	Short:   "Run the configured linter on the source files",
	Long: `Invoke the external linter configured under lint.command
(default: golangci-lint run). Extra arguments are passed through.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		argv := append(cfg.LintCommand(), args...)
		if err := runPassthrough(cmd.Context(), "lint", argv); err != nil {
			return err
		}
		runPostHook(cmd.Context(), "lint complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
