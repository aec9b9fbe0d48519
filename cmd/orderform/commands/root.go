package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/goliatone/go-orderform/internal/config"
	"github.com/goliatone/go-orderform/internal/logging"
	"github.com/goliatone/go-orderform/pkg/renderers/tui"
)

// app carries state shared by the subcommands once the root pre-run has
// loaded configuration.
type app struct {
	configFile string
	verbose    bool

	v      *viper.Viper
	cfg    config.Config
	logger *zap.Logger

	// driver replaces the survey prompts of the order command.
	driver tui.PromptDriver
}

// flagKeys binds subcommand flags to configuration keys so that an explicit
// flag wins over file and environment values.
var flagKeys = map[string]string{
	"addr":     "server.addr",
	"endpoint": "order.endpoint",
	"timeout":  "order.timeout",
	"theme":    "theme.name",
	"variant":  "theme.variant",
	"catalog":  "catalog.file",
	"schema":   "schema.source",
}

// Execute runs the CLI with os.Args.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

func NewRootCommand() *cobra.Command {
	return newRootCommand(&app{})
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "orderform",
		Short:         "Pizza order form: web server, terminal client and draft validator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (YAML)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().String("schema", "", "OpenAPI order contract (file or URL) replacing the built-in one")

	root.AddCommand(serveCmd(a), orderCmd(a), validateCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	v, err := config.New(a.configFile)
	if err != nil {
		return err
	}
	for name, key := range flagKeys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}
	cfg, err := config.Decode(v)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if a.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.Log.Development)
	if err != nil {
		return err
	}

	a.v = v
	a.cfg = cfg
	a.logger = logger.With(zap.String("cmd", cmd.Name()))
	return nil
}

func (a *app) log() *zap.Logger {
	if a.logger == nil {
		return zap.NewNop()
	}
	return a.logger
}
