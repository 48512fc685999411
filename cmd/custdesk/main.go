// Custdesk manages customer records held by a remote customer service.
//
// It provides an interactive screen for adding, editing, deleting and
// looking up customers, one-shot commands for scripting, a development
// service that implements the same HTTP collection, and mDNS discovery of
// advertised services.
//
// Usage:
//
//	custdesk [command] [flags]
//
// Running without arguments launches the interactive screen.
// See 'custdesk --help' for available commands.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/custdesk/internal/config"
	"github.com/muurk/custdesk/internal/logging"
	"github.com/muurk/custdesk/internal/version"
)

// errReported marks a failure that has already been shown to the user.
var errReported = errors.New("failure already reported")

// Global flags
var (
	apiURL      string
	profileName string
	timeoutSec  int
	logLevel    string
)

func main() {
	defer logging.Sync()

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "custdesk",
	Short: "Customer record manager",
	Long: `A terminal client for a remote customer service.

Add, edit, delete, list and look up customer records against a collection
served at <base>/all, <base>/get/{id}, <base>/add, <base>/update and
<base>/delete/{id}.

If no command is specified, the interactive screen will launch automatically.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Customer collection URL (overrides "+config.BaseURLEnvVar+" and profiles)")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "Profile from config.yaml to use")
	rootCmd.PersistentFlags().IntVar(&timeoutSec, "timeout", 0, "HTTP timeout in seconds (0 = no timeout)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("custdesk %s\n", version.Full())
	},
}

// loadSettings resolves the effective configuration and starts logging.
// The interactive screen logs to a file so the terminal stays clean.
func loadSettings(interactive bool) (*config.Settings, error) {
	registry, err := config.LoadRegistry()
	if err != nil {
		return nil, err
	}

	settings, err := config.Resolve(registry, config.Overrides{
		BaseURL: apiURL,
		Profile: profileName,
		Timeout: time.Duration(timeoutSec) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	level := logLevel
	if level == "" && os.Getenv(logging.LogLevelEnvVar) == "" {
		level = settings.LogLevel
	}
	if err := initLogging(level, interactive); err != nil {
		return nil, err
	}

	return settings, nil
}

func initLogging(level string, interactive bool) error {
	output, err := logOutput(interactive)
	if err != nil {
		return err
	}
	return logging.InitializeWithOutput(level, output)
}

// logOutput returns the zap output path. One-shot commands log to stderr so
// stdout carries only their output; the interactive screen logs to a file.
func logOutput(interactive bool) (string, error) {
	if !interactive {
		return "stderr", nil
	}
	return config.GetLogPath()
}
