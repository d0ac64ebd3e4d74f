package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	tgskema "github.com/reoring/tgskema"
	"github.com/reoring/tgskema/i18n"
	"github.com/reoring/tgskema/internal/config"
	"github.com/reoring/tgskema/schemafile"
	"github.com/reoring/tgskema/telegram"
)

// app carries the state shared by subcommands once flags are parsed.
type app struct {
	cfgFile    string
	schemaFile string
	verbose    bool

	cfg     *config.Config
	catalog *schemafile.Catalog
	logger  *log.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "tgskema",
		Short: "Validate, build and hydrate Telegram Bot API models",
		Long: `tgskema works with the Telegram Bot API models of the tgskema library.

  tgskema hydrate Update update.json      Hydrate a payload and print the model
  tgskema build editMessageText req.yaml  Build and validate a request wire map
  tgskema schema EditMessageText          Print the JSON Schema of a type
  tgskema types                           List known types
  tgskema serve --addr :8080              Receive webhook deliveries`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default ./tgskema.yaml)")
	root.PersistentFlags().StringVar(&a.schemaFile, "schema-file", "", "YAML schema file with additional types")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(a.hydrateCmd(), a.buildCmd(), a.schemaCmd(), a.typesCmd(), a.serveCmd())
	return root
}

func (a *app) init(stderr io.Writer) error {
	a.logger = log.NewWithOptions(stderr, log.Options{Prefix: "tgskema"})
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	if a.verbose || cfg.Verbose {
		a.logger.SetLevel(log.DebugLevel)
	}
	i18n.SetLanguage(cfg.Language)

	path := a.schemaFile
	if path == "" {
		path = cfg.SchemaFile
	}
	if path != "" {
		cat, err := schemafile.LoadFile(path, schemafile.WithResolver(telegram.Lookup))
		if err != nil {
			return err
		}
		a.catalog = cat
		a.logger.Debug("loaded schema file", "path", path, "types", len(cat.Names()))
	}
	return nil
}

// lookup resolves a type or method name against the built-in registry, then
// the loaded schema file.
func (a *app) lookup(name string) (tgskema.Factory, error) {
	if f, ok := telegram.Lookup(name); ok {
		return f, nil
	}
	if a.catalog != nil {
		if f, ok := a.catalog.Factory(name); ok {
			return f, nil
		}
	}
	return nil, fmt.Errorf("unknown type %q (see 'tgskema types')", name)
}

func (a *app) typeNames() []string {
	names := telegram.Names()
	if a.catalog != nil {
		names = append(names, a.catalog.Names()...)
	}
	sort.Strings(names)
	return names
}

// reportIssues logs each issue of err; other errors are returned unchanged.
func (a *app) reportIssues(err error) error {
	iss, ok := tgskema.AsIssues(err)
	if !ok {
		return err
	}
	for _, it := range iss {
		kv := []any{"path", it.Path, "code", it.Code}
		if it.Hint != "" {
			kv = append(kv, "hint", it.Hint)
		}
		a.logger.Error(it.Message, kv...)
	}
	return fmt.Errorf("%d issue(s)", len(iss))
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
