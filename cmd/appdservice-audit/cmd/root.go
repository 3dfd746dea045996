// Package cmd implements the appdservice-audit CLI commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/appdynamics/appdservice/internal/dispatch"
	"github.com/appdynamics/appdservice/internal/packaging"
)

var logLevel string

// Build info set from main.
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

// Process collaborators; tests substitute them.
var (
	prober        dispatch.Prober         = dispatch.DirProber{}
	rootChecker   packaging.RootChecker   = packaging.NewRootChecker()
	groupResolver packaging.GroupResolver = packaging.NewGroupResolver()
)

// SetVersionInfo sets the version info from build-time ldflags.
func SetVersionInfo(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	rootCmd.Version = buildVersion
	rootCmd.SetVersionTemplate(versionTemplate())
}

func versionTemplate() string {
	return fmt.Sprintf("appdservice-audit version {{.Version}}\ncommit: %s\nbuilt: %s\n", buildCommit, buildDate)
}

var rootCmd = &cobra.Command{
	Use:   "appdservice-audit",
	Short: "appdservice-audit inspects and installs the appdservice trampoline",
	Long: "appdservice-audit prints the services, actions and handler programs compiled\n" +
		"into appdservice, shows which handler a request would run on this host,\n" +
		"and installs or verifies the setuid-root trampoline binary.",
	SilenceUsage: true,
	// No Run function; prints help by default.
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.Version = buildVersion
	rootCmd.SetVersionTemplate(versionTemplate())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setupLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
