package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.prplanit.com/precisionplanit/pequod-oci/src/execstream"
)

var (
	loginOpenshiftURL  string
	loginRegistryURL   string
	loginUsername      string
	loginPassword      string
	loginPasswordStdin bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log into the cluster and its registry",
	Long: `Log into the OpenShift instance that operates the registry, capture
the session token and use it to log the container tool into the registry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		openshiftURL := firstNonEmpty(loginOpenshiftURL, settings.OpenshiftURL)
		if openshiftURL == "" {
			return fmt.Errorf("cluster URL required (set PEQUOD_OPENSHIFT_URL or pass --openshift-url)")
		}
		registryURL := firstNonEmpty(loginRegistryURL, settings.RegistryURL)
		if registryURL == "" {
			return fmt.Errorf("registry URL required (set PEQUOD_REGISTRY_URL or pass --registry-url)")
		}
		username := firstNonEmpty(loginUsername, settings.LoginUsername)
		password := firstNonEmpty(loginPassword, settings.LoginPassword)
		if password == "" && loginPasswordStdin {
			sc := bufio.NewScanner(os.Stdin)
			if sc.Scan() {
				password = sc.Text()
			}
		}

		ocOut := execstream.NewLabelWriter(os.Stdout, "oc login")
		ocErr := execstream.NewLabelWriter(os.Stderr, "oc login")
		code, err := commandRunner.Run(ctx, []string{
			"oc", "login", openshiftURL,
			"--username=" + username,
			"--password=" + password,
		}, ocOut, ocErr)
		if err != nil {
			return err
		}
		if code != 0 {
			return fmt.Errorf("oc login exited with code %d", code)
		}

		// The registry accepts the session token as password.
		capture := &execstream.CaptureSink{}
		code, err = commandRunner.Run(ctx, []string{"oc", "whoami", "-t"}, capture, nil)
		if err != nil {
			return err
		}
		token := strings.TrimSpace(capture.First())
		if code != 0 || token == "" {
			return fmt.Errorf("could not capture session token (oc whoami exited %d)", code)
		}

		dockerOut := execstream.NewLabelWriter(os.Stdout, "docker login")
		dockerErr := execstream.NewLabelWriter(os.Stderr, "docker login")
		code, err = commandRunner.Run(ctx, []string{
			"docker", "login", "-p", token, "-u", "unused", registryURL,
		}, dockerOut, dockerErr)
		if err != nil {
			return err
		}
		if code != 0 {
			return fmt.Errorf("docker login exited with code %d", code)
		}

		runPostHook(ctx, "login complete")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginOpenshiftURL, "openshift-url", "",
		"base URL of the OpenShift instance operating the registry (default: PEQUOD_OPENSHIFT_URL)")
	loginCmd.Flags().StringVar(&loginRegistryURL, "registry-url", "",
		"base URL of the registry to log into (default: PEQUOD_REGISTRY_URL)")
	loginCmd.Flags().StringVar(&loginUsername, "username", "",
		"login username (default: PEQUOD_LOGIN_USERNAME)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "",
		"login password (default: PEQUOD_LOGIN_PASSWORD)")
	loginCmd.Flags().BoolVar(&loginPasswordStdin, "password-stdin", false,
		"read the login password from stdin")

	rootCmd.AddCommand(loginCmd)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
