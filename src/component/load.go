package component

import (
	"fmt"

	"gitlab.prplanit.com/precisionplanit/pequod-oci/src/config"
)

// Load turns the parsed configuration into a registry, applying defaults
// and validating the declarations.
func Load(cfg *config.File) (*Registry, error) {
	components := make([]*Component, 0, len(cfg.Components))
	for _, def := range cfg.Components {
		c, err := fromDef(def)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}

	groups := make([]*Group, 0, len(cfg.Groups))
	for _, def := range cfg.Groups {
		if def.Name == "" {
			return nil, fmt.Errorf("group without a name")
		}
		groups = append(groups, &Group{
			Name:     def.Name,
			Aliases:  def.Aliases,
			Includes: def.Includes,
		})
	}

	return NewRegistry(components, groups)
}

func fromDef(def config.ComponentDef) (*Component, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("component without a name")
	}
	if def.ImageName == "" {
		return nil, fmt.Errorf("component %q: image_name is required", def.Name)
	}

	c := &Component{
		Name:          def.Name,
		ImageName:     def.ImageName,
		Dockerfile:    def.Dockerfile,
		ContextFolder: def.ContextFolder,
		Type:          def.Type,
		Aliases:       def.Aliases,
		DependsOn:     def.DependsOn,
		Supported:     true,
	}
	if c.Dockerfile == "" {
		c.Dockerfile = "Dockerfile"
	}
	if c.ContextFolder == "" {
		c.ContextFolder = "."
	}
	if def.Supported != nil {
		c.Supported = *def.Supported
	}
	return c, nil
}
