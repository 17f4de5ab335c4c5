package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"pixiu/internal/api"
	"pixiu/internal/config"
	"pixiu/internal/logger"
	"pixiu/internal/transport"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

// env carries what PersistentPreRunE builds for the subcommands.
type env struct {
	baseURL  string
	timeout  time.Duration
	output   string
	logLevel string

	log    *zap.Logger
	client *api.Client
}

// Execute runs the pixiu CLI with os.Args.
func Execute() error {
	return NewRoot().Execute()
}

// NewRoot builds the command tree. Defaults come from the environment.
func NewRoot() *cobra.Command {
	cfg := config.Load()
	e := &env{}

	root := &cobra.Command{
		Use:          "pixiu",
		Short:        "Command line client for the pixiu ledger",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if e.output != outputJSON && e.output != outputYAML {
				return fmt.Errorf("unsupported output %q (want json or yaml)", e.output)
			}
			// console encoder on stderr keeps stdout machine-readable
			e.log = logger.New(e.logLevel, "console")
			e.client = api.New(transport.New(e.baseURL,
				transport.WithTimeout(e.timeout),
				transport.WithLogger(e.log),
			))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.log != nil {
				_ = e.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&e.baseURL, "base-url", cfg.Client.BaseURL, "pixiu API base URL")
	root.PersistentFlags().DurationVar(&e.timeout, "timeout", cfg.Client.Timeout, "per-request timeout")
	root.PersistentFlags().StringVarP(&e.output, "output", "o", outputJSON, "output format: json or yaml")
	root.PersistentFlags().StringVar(&e.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(fundsCmd(e), debtsCmd(e), propertiesCmd(e), gradeCmd(e))
	return root
}

// render writes v to w in the selected format.
func (e *env) render(w io.Writer, v any) error {
	if e.output == outputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
