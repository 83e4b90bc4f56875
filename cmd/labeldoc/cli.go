package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/labeldoc"
	"github.com/fwojciec/labeldoc/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    *Config
	Pipeline  *pipeline.Pipeline
	Extractor labeldoc.Extractor
	Resolver  labeldoc.Resolver
	Writer    labeldoc.ReportWriter
	Runs      labeldoc.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string   `short:"c" env:"LABELDOC_CONFIG" default:"${config_path}" help:"Configuration file"`
	Catalogs []string `name:"catalog" sep:"none" help:"Catalog file for a namespace as NS=path (repeatable)"`
	Match    string   `help:"Catalog matching: legacy (substring) or strict (exact key)"`
	DB       string   `name:"db" env:"LABELDOC_DB" help:"SQLite database recording run history"`
	Verbose  bool     `short:"v" help:"Log every document and label"`

	Run     RunCmd     `cmd:"" default:"withargs" help:"Resolve developer documentation for all source roots (default)"`
	Resolve ResolveCmd `cmd:"" help:"Resolve a single label"`
	Extract ExtractCmd `cmd:"" help:"Print the documentation label of a document"`
	History HistoryCmd `cmd:"" help:"List recorded runs"`
	Show    ShowCmd    `cmd:"" help:"Show the documentation recorded by a run"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a recorded run"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Roots      []string `name:"root" short:"r" sep:"none" help:"Source root as name=path (repeatable)"`
	Output     string   `short:"o" help:"Output file"`
	OutputMode string   `name:"output-mode" help:"Output format: document (one JSON value) or append (one JSON value per root)"`
}

// ResolveCmd is the "resolve" subcommand.
type ResolveCmd struct {
	Label string `arg:"" help:"Label such as @GCX0010"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Path string `arg:"" type:"path" help:"Structured document"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit int `short:"n" default:"20" help:"Maximum number of runs to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID       string `arg:"" help:"Run ID"`
	Root     string `help:"Only show entries of this root"`
	Failures bool   `help:"Also list the failures of the run"`
	Changed  bool   `help:"Only show entries that are new or whose text changed since the previous run"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Run ID"`
	Force bool   `help:"Confirm deletion"`
}

// apply overrides cfg with the values given on the command line.
func (c *CLI) apply(cfg *Config) error {
	if len(c.Catalogs) > 0 {
		routes, err := parseCatalogs(c.Catalogs)
		if err != nil {
			return err
		}
		if cfg.Catalogs == nil {
			cfg.Catalogs = make(labeldoc.CatalogRoutes, len(routes))
		}
		for ns, path := range routes {
			cfg.Catalogs[ns] = path
		}
	}
	if c.Match != "" {
		cfg.Match = c.Match
	}
	if c.DB != "" {
		cfg.Database = c.DB
	}
	return nil
}

// apply overrides cfg with the run flags. Roots given on the command line
// replace the configured roots.
func (c *RunCmd) apply(cfg *Config) error {
	if len(c.Roots) > 0 {
		roots := make([]labeldoc.SourceRoot, 0, len(c.Roots))
		for _, v := range c.Roots {
			root, err := parseRoot(v)
			if err != nil {
				return err
			}
			roots = append(roots, root)
		}
		cfg.Roots = roots
	}
	if c.Output != "" {
		cfg.Output = c.Output
	}
	if c.OutputMode != "" {
		cfg.OutputMode = c.OutputMode
	}
	return nil
}
