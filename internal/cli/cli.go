package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/vk/nodeprovider/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// fileConfig is the shape of the optional -config file. Every attribute is
// optional; flags given on the command line win over the file.
type fileConfig struct {
	Manifests        string   `hcl:"manifests,optional"`
	Sources          string   `hcl:"sources,optional"`
	SourceExtensions []string `hcl:"source_extensions,optional"`
	Addr             string   `hcl:"addr,optional"`
	LogFormat        string   `hcl:"log_format,optional"`
	LogLevel         string   `hcl:"log_level,optional"`
	NoColor          bool     `hcl:"no_color,optional"`
}

func loadConfigFile(path string) (app.Config, error) {
	var fc fileConfig
	if err := hclsimple.DecodeFile(path, nil, &fc); err != nil {
		return app.Config{}, fmt.Errorf("failed to load config file: %w", err)
	}
	return app.Config{
		ManifestsPath:    fc.Manifests,
		SourcesPath:      fc.Sources,
		SourceExtensions: fc.SourceExtensions,
		Addr:             fc.Addr,
		LogFormat:        fc.LogFormat,
		LogLevel:         fc.LogLevel,
		NoColor:          fc.NoColor,
	}, nil
}

// splitExtensions turns ".go, .hcl" into [".go" ".hcl"].
func splitExtensions(s string) []string {
	var out []string
	for _, ext := range strings.Split(s, ",") {
		if ext = strings.TrimSpace(ext); ext != "" {
			out = append(out, ext)
		}
	}
	return out
}

// Parse processes command-line arguments. It returns a validated config,
// the command to run, a boolean indicating if the program should exit
// cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, app.Command, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("nodeprovider", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
nodeprovider - Discovers node kinds, their views and palette entries.

Usage:
  nodeprovider [options] COMMAND [ARG]

Commands:
  nodes          List concrete node kinds with their menu entries.
  views          List concrete views and the node kinds they target.
  menu           List the menu palette, sorted by path.
  slots          List the declared types of every slot field, in scan order.
  view NODE      Show the view responsible for NODE.
  source NAME    Show the source artifact of a node or view.
  check          Report conflicting or dangling declarations.
  serve          Serve the same queries over HTTP.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an HCL config file. Flags override its values.")
	manifestsFlag := flagSet.String("manifests", "", "Path to a directory or .hcl file with node manifests.")
	sourcesFlag := flagSet.String("sources", "", "Root of the source tree searched for artifacts.")
	sourceExtFlag := flagSet.String("source-ext", strings.Join(app.DefaultSourceExtensions, ","), "Comma separated extensions of indexed source files.")
	addrFlag := flagSet.String("addr", ":8080", "Listen address for the serve command.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	noColorFlag := flagSet.Bool("no-color", false, "Disable colored output.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, app.Command{}, true, nil
		}
		return nil, app.Command{}, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, app.Command{}, true, nil
	}

	cmd := app.Command{Name: flagSet.Arg(0)}
	if !slices.Contains(app.Commands(), cmd.Name) {
		return nil, app.Command{}, false, &ExitError{
			Code:    2,
			Message: fmt.Sprintf("unknown command %q: must be one of %s", cmd.Name, strings.Join(app.Commands(), ", ")),
		}
	}
	switch {
	case cmd.NeedsArg() && flagSet.NArg() != 2:
		return nil, app.Command{}, false, &ExitError{Code: 2, Message: fmt.Sprintf("%s requires exactly one name argument", cmd.Name)}
	case !cmd.NeedsArg() && flagSet.NArg() != 1:
		return nil, app.Command{}, false, &ExitError{Code: 2, Message: fmt.Sprintf("%s takes no arguments", cmd.Name)}
	}
	cmd.Arg = flagSet.Arg(1)

	var cfg app.Config
	if *configFlag != "" {
		fileCfg, err := loadConfigFile(*configFlag)
		if err != nil {
			return nil, app.Command{}, false, &ExitError{Code: 2, Message: err.Error()}
		}
		cfg = fileCfg
		slog.Debug("Config file loaded.", "path", *configFlag)
	}

	// Defaults apply only where the file is silent; explicit flags always win.
	explicit := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	pick := func(name, fromFile, fromFlag string) string {
		if explicit[name] || fromFile == "" {
			return fromFlag
		}
		return fromFile
	}

	cfg.ManifestsPath = pick("manifests", cfg.ManifestsPath, *manifestsFlag)
	cfg.SourcesPath = pick("sources", cfg.SourcesPath, *sourcesFlag)
	if explicit["source-ext"] || len(cfg.SourceExtensions) == 0 {
		cfg.SourceExtensions = splitExtensions(*sourceExtFlag)
	}
	cfg.Addr = pick("addr", cfg.Addr, *addrFlag)
	cfg.LogFormat = strings.ToLower(pick("log-format", cfg.LogFormat, *logFormatFlag))
	cfg.LogLevel = strings.ToLower(pick("log-level", cfg.LogLevel, *logLevelFlag))
	if explicit["no-color"] {
		cfg.NoColor = *noColorFlag
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, app.Command{}, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config, "command", cmd.Name)
	return config, cmd, false, nil
}
