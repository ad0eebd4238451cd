package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.prplanit.com/precisionplanit/pequod-oci/src/pipeline"
)

var (
	pushRegistryURL string
	pushProjectName string
	pushImageTag    string
)

var pushCmd = &cobra.Command{
	Use:   "push [components...]",
	Short: "Push one or more component images to the registry",
	Long: `Re-tag the named components' local images with the full registry
reference and push them. Each component is tagged before it is pushed;
a failed re-tag skips that component's push.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := pushParams()
		if err != nil {
			return err
		}
		if err := runOperations(cmd.Context(), args, pipeline.Push, params); err != nil {
			return err
		}
		runPostHook(cmd.Context(), "push complete")
		return nil
	},
}

func init() {
	addPushFlags(pushCmd)
	rootCmd.AddCommand(pushCmd)
}

// addPushFlags registers the registry/project/tag flags shared by push
// and bp.
func addPushFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&pushRegistryURL, "registry-url", "",
		"base URL of the registry to push to (default: PEQUOD_REGISTRY_URL)")
	cmd.Flags().StringVar(&pushProjectName, "project-name", "",
		"project/namespace to push under (default: PEQUOD_PROJECT_NAME, else \"localhost\")")
	cmd.Flags().StringVar(&pushImageTag, "image-tag", "",
		"image tag, e.g. \"1.0\" or \"stable\" (default: derived from git state)")
}

// pushParams resolves flag values against environment defaults. The
// registry URL is required before anything is spawned.
func pushParams() (pipeline.Params, error) {
	registryURL := pushRegistryURL
	if registryURL == "" {
		registryURL = settings.RegistryURL
	}
	if registryURL == "" {
		return pipeline.Params{}, fmt.Errorf("registry URL required (set PEQUOD_REGISTRY_URL or pass --registry-url)")
	}

	projectName := pushProjectName
	if projectName == "" {
		projectName = settings.ProjectName
	}

	tag, err := resolveImageTag(pushImageTag)
	if err != nil {
		return pipeline.Params{}, err
	}

	return pipeline.Params{
		RegistryURL: registryURL,
		ProjectName: projectName,
		ImageTag:    tag,
	}, nil
}
