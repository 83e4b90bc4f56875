package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/labeldoc"
	"github.com/fwojciec/labeldoc/etree"
	"github.com/fwojciec/labeldoc/fs"
	"github.com/fwojciec/labeldoc/pipeline"
	labelslog "github.com/fwojciec/labeldoc/slog"
	"github.com/fwojciec/labeldoc/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing. When set, no database is opened.
	RunService labeldoc.RunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("labeldoc"),
		kong.Description("Resolve the developer documentation labels of XML source documents."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"config_path": DefaultConfigPath},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Without a command, "run" resolves every configured root.
	if len(args) > 0 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg, err := LoadConfig(cli.Config)
	if err != nil {
		return err
	}
	if err := cli.apply(cfg); err != nil {
		return err
	}
	if cmd == "run" {
		if err := cli.Run.apply(cfg); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(stderr, "Hint: Configure roots and catalogs in %s or pass --root and --catalog\n", cli.Config)
			return err
		}
	}
	deps.Config = cfg
	deps.Logger = newLogger(stderr, cli.Verbose)

	switch cmd {
	case "run", "resolve", "extract":
		if err := wireResolution(deps); err != nil {
			return err
		}
	}

	switch cmd {
	case "run", "history", "show", "delete":
		if err := m.openRuns(deps, cmd != "run"); err != nil {
			return err
		}
		defer m.Close()
	}

	return kongCtx.Run(deps)
}

// openRuns wires the run history service. History is optional for "run"
// and required by the commands that manage recorded runs.
func (m *Main) openRuns(deps *Dependencies, required bool) error {
	if m.RunService != nil {
		deps.Runs = m.RunService
		return nil
	}

	path := deps.Config.Database
	if path == "" {
		if required {
			fmt.Fprintln(deps.Stderr, "Hint: Set database in the config file, pass --db or set LABELDOC_DB")
			return fmt.Errorf("no run history database configured")
		}
		return nil
	}

	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	m.RunService = sqlite.NewRunService(m.DB)
	deps.Runs = m.RunService
	return nil
}

// wireResolution builds the document and catalog services from the
// configuration, each wrapped with logging.
func wireResolution(deps *Dependencies) error {
	cfg := deps.Config

	match, err := labeldoc.ParseMatchMode(cfg.Match)
	if err != nil {
		return err
	}
	if err := cfg.Catalogs.Validate(); err != nil {
		return err
	}
	mode, err := fs.ParseOutputMode(cfg.OutputMode)
	if err != nil {
		return err
	}

	var scanOpts []fs.ScannerOption
	if cfg.Extension != "" {
		scanOpts = append(scanOpts, fs.WithExtension(cfg.Extension))
	}

	logger := deps.Logger
	deps.Extractor = labelslog.NewLoggingExtractor(etree.NewExtractor(), logger)
	deps.Resolver = labelslog.NewLoggingResolver(fs.NewCatalogService(cfg.Catalogs, fs.WithMatchMode(match)), logger)
	deps.Pipeline = &pipeline.Pipeline{
		Scanner:   labelslog.NewLoggingScanner(fs.NewScanner(scanOpts...), logger),
		Extractor: deps.Extractor,
		Resolver:  deps.Resolver,
	}

	output := cfg.OutputPath()
	deps.Writer = labelslog.NewLoggingReportWriter(fs.NewReportWriter(output, mode), output, logger)
	return nil
}

// newLogger returns a text logger on w. Per-item failures are already
// printed by the commands, so service logs are shown only when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
