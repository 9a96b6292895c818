// Package cli implements the qrapi command-line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const appName = "qrapi"

// CLI holds state shared by all commands.
type CLI struct {
	Logger *logrus.Logger

	configPath string
	logLevel   string
}

// New creates a CLI logging to w.
func New(w io.Writer) *CLI {
	return &CLI{Logger: newLogger(w)}
}

// RootCommand creates the root cobra command with every subcommand registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "qrapi renders QR codes over HTTP",
		Long:         `qrapi serves PNG, SVG, JPEG and GIF QR codes from a single HTTP endpoint, and can render the same images offline.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.logLevel == "" {
				return nil
			}
			return setLevel(c.Logger, c.logLevel)
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a config file (yaml, json or toml)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides the config file")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.renderCommand())

	return root
}

// Execute runs the CLI until the command finishes or SIGINT/SIGTERM arrives.
func Execute(ctx context.Context) error {
	return New(os.Stderr).RootCommand().ExecuteContext(ctx)
}

func newLogger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}

func setLevel(logger *logrus.Logger, name string) error {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	return nil
}
