package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Settings holds environment-derived defaults. Every variable carries the
// PEQUOD prefix, e.g. PEQUOD_REGISTRY_URL.
type Settings struct {
	RegistryURL   string `envconfig:"REGISTRY_URL" desc:"Base URL of the registry images are pushed to"`
	ProjectName   string `envconfig:"PROJECT_NAME" default:"localhost" desc:"Project/namespace under the registry"`
	OpenshiftURL  string `envconfig:"OPENSHIFT_URL" desc:"Base URL of the OpenShift instance operating the registry"`
	LoginUsername string `envconfig:"LOGIN_USERNAME" desc:"Username for cluster login"`
	LoginPassword string `envconfig:"LOGIN_PASSWORD" desc:"Password for cluster login"`
	PostCommand   string `envconfig:"POST_COMMAND" desc:"Hook run after every successful subcommand"`
}

// ParseSettings reads Settings from the environment.
func ParseSettings() (Settings, error) {
	var s Settings
	if err := envconfig.Process("pequod", &s); err != nil {
		return Settings{}, fmt.Errorf("reading environment: %w", err)
	}
	return s, nil
}
