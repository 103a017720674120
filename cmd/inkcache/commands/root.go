// Package commands implements the CLI commands for inkcache.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/inkcache/internal/app"
	"go.trai.ch/inkcache/internal/build"
	"go.trai.ch/inkcache/internal/core/domain"
	"go.trai.ch/inkcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// ErrInvalidLogFormat is returned when --log-format is neither text nor json.
var ErrInvalidLogFormat = zerr.New("log format must be text or json")

// CLI represents the command line interface for inkcache.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Export(ctx context.Context, documentPath string, opts app.ExportOptions) (domain.Summary, error)
	Status(ctx context.Context, documentPath string, opts app.SettingsOptions) (app.StatusReport, error)
	Watch(ctx context.Context, documentPath string, opts app.ExportOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// New creates a new CLI instance with the given app. The logger is
// configured from the global flags when it supports it.
func New(a Application, logger ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "inkcache",
		Short:         "Incremental raster export of SVG drawings",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the project file (default ./"+domain.ConfigFileName+")")
	rootCmd.PersistentFlags().String("log-format", "text", "Log output format: text or json")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	c := &CLI{
		app:     a,
		logger:  logger,
		rootCmd: rootCmd,
	}
	rootCmd.PersistentPreRunE = c.configureLogger

	rootCmd.AddCommand(c.newExportCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) configureLogger(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("log-format")
	verbose, _ := cmd.Flags().GetBool("verbose")

	var json bool
	switch format {
	case "text":
	case "json":
		json = true
	default:
		return zerr.With(zerr.Wrap(ErrInvalidLogFormat, "invalid --log-format"), "log_format", format)
	}

	if l, ok := c.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(json)
	}
	if l, ok := c.logger.(interface{ SetVerbose(bool) }); ok {
		l.SetVerbose(verbose)
	}
	return nil
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
