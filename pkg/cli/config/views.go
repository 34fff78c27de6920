package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kevtrend/pkg/domain/model"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Views holds the preset views configuration
type Views struct {
	Path string
}

// Flags returns CLI flags for Views configuration
func (v *Views) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "views-config",
			Usage:       "Preset views YAML file (optional)",
			Category:    "Catalog",
			Sources:     cli.EnvVars("KEVTREND_VIEWS_CONFIG"),
			Destination: &v.Path,
		},
	}
}

// Configure loads the views config; no path yields an empty config
func (v *Views) Configure() (*model.ViewsConfig, error) {
	if v.Path == "" {
		return &model.ViewsConfig{}, nil
	}
	return LoadViewsFromFile(v.Path)
}

// LoadViewsFromFile loads preset views from a YAML file
func LoadViewsFromFile(path string) (*model.ViewsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "views configuration file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read views configuration",
			goerr.V("path", path))
	}

	var config model.ViewsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse views configuration",
			goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid views configuration",
			goerr.V("path", path))
	}

	return &config, nil
}
