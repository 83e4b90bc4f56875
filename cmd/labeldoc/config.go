package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/labeldoc"
	"github.com/fwojciec/labeldoc/fs"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is read when neither --config nor LABELDOC_CONFIG is set.
const DefaultConfigPath = "labeldoc.yaml"

// DefaultOutput is the artifact path used when none is configured.
const DefaultOutput = "DeveloperDocumentationOutput.json"

// Config is the on-disk configuration of a labeldoc run.
type Config struct {
	Roots      []labeldoc.SourceRoot  `yaml:"roots"`
	Catalogs   labeldoc.CatalogRoutes `yaml:"catalogs"`
	Output     string                 `yaml:"output"`
	OutputMode string                 `yaml:"output_mode"`
	Match      string                 `yaml:"match"`
	Database   string                 `yaml:"database"`
	Extension  string                 `yaml:"extension"`
}

// LoadConfig reads the YAML configuration at path. A missing file yields an
// empty configuration so that every value can come from flags.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, labeldoc.Errorf(labeldoc.EINVALID, "invalid config %q: %v", path, err)
	}

	// A root without a name is named after its path, as on the command line.
	for i := range cfg.Roots {
		if cfg.Roots[i].Name == "" {
			cfg.Roots[i].Name = cfg.Roots[i].Path
		}
	}
	return cfg, nil
}

// Validate checks the values needed to run the pipeline.
func (c *Config) Validate() error {
	if len(c.Roots) == 0 {
		return labeldoc.Errorf(labeldoc.EINVALID, "no source roots configured")
	}
	for _, root := range c.Roots {
		if root.Path == "" {
			return labeldoc.Errorf(labeldoc.EINVALID, "source root %q has no path", root.Name)
		}
	}
	if _, err := labeldoc.ParseMatchMode(c.Match); err != nil {
		return err
	}
	if _, err := fs.ParseOutputMode(c.OutputMode); err != nil {
		return err
	}
	return c.Catalogs.Validate()
}

// OutputPath returns the configured artifact path or DefaultOutput.
func (c *Config) OutputPath() string {
	if c.Output == "" {
		return DefaultOutput
	}
	return c.Output
}

// parseRoot parses a --root value of the form name=path. A bare path is
// named after itself.
func parseRoot(s string) (labeldoc.SourceRoot, error) {
	name, path, ok := strings.Cut(s, "=")
	if !ok {
		return labeldoc.SourceRoot{Name: s, Path: s}, nil
	}
	if path == "" {
		return labeldoc.SourceRoot{}, labeldoc.Errorf(labeldoc.EINVALID, "root %q has no path", s)
	}
	if name == "" {
		name = path
	}
	return labeldoc.SourceRoot{Name: name, Path: path}, nil
}

// parseCatalogs parses --catalog values of the form NS=path.
func parseCatalogs(values []string) (labeldoc.CatalogRoutes, error) {
	routes := make(labeldoc.CatalogRoutes, len(values))
	for _, v := range values {
		ns, path, ok := strings.Cut(v, "=")
		if !ok || ns == "" || path == "" {
			return nil, labeldoc.Errorf(labeldoc.EINVALID, "catalog %q must be NS=path", v)
		}
		routes[ns] = path
	}
	return routes, nil
}
