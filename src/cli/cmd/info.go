package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display info about the configured components",
	RunE: func(cmd *cobra.Command, args []string) error {
		comps := registry.Components()
		if len(comps) == 0 {
			fmt.Println("No configured components")
		} else {
			fmt.Println("Components:")
			for _, c := range comps {
				fmt.Printf("  %s\n", c.Name)
				fmt.Printf("    image:      %s\n", c.ImageName)
				fmt.Printf("    dockerfile: %s (context %s)\n", c.Dockerfile, c.ContextFolder)
				if c.Type != "" {
					fmt.Printf("    type:       %s\n", c.Type)
				}
				if len(c.Aliases) > 0 {
					fmt.Printf("    aliases:    %s\n", strings.Join(c.Aliases, ", "))
				}
				if len(c.DependsOn) > 0 {
					fmt.Printf("    depends on: %s\n", strings.Join(c.DependsOn, ", "))
				}
				if !c.Supported {
					fmt.Printf("    supported:  no\n")
				}
			}
		}

		fmt.Println()
		groups := registry.Groups()
		if len(groups) == 0 {
			fmt.Println("No groups")
			return nil
		}
		fmt.Println("Groups:")
		for _, g := range groups {
			marker := ""
			if g.Synthetic() {
				marker = " (auto)"
			}
			fmt.Printf("  %s%s\n", g.Name, marker)
			fmt.Printf("    includes: %s\n", strings.Join(g.Includes, ", "))
			if len(g.Aliases) > 0 {
				fmt.Printf("    aliases:  %s\n", strings.Join(g.Aliases, ", "))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
