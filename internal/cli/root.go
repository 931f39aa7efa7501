// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/fade/internal/config"
	"github.com/aidanlsb/fade/internal/ui"
)

var (
	// Global flags
	configPath  string
	logFileFlag string
	verbose     bool

	// Resolved values
	resolvedConfigPath string
	cfg                *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "fade [file]",
	Short: "fade - annotate dataset records one at a time",
	Long: `fade walks a JSON (or YAML) mapping of records one entry at a time, shows
each record's definition and explanation, and asks whether the item should be
able to fade. Answers are written to the record's can_fade field and the
annotated dataset is saved next to the source as *_modified.json.

Running 'fade <file>' is shorthand for 'fade review <file>'.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Config commands load (or create) the file themselves.
		switch cmd.Name() {
		case "completion", "help", "version", "config":
			return nil
		}
		if p := cmd.Parent(); p != nil && (p.Name() == "completion" || p.Name() == "config") {
			return nil
		}

		loaded, path, err := loadGlobalConfigWithPath()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Fix the config file or pass --config")
		}
		cfg = loaded
		resolvedConfigPath = path
		ui.ConfigureTheme(cfg.UI.Accent)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runReview(cmd, args)
	},
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Append structured logs to this file (overrides log.file)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log at debug level")

	registerReviewFlags(rootCmd)
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

// loadGlobalConfigWithPath loads the config. An explicit --config path must
// exist; the default location may be missing.
func loadGlobalConfigWithPath() (*config.Config, string, error) {
	resolvedPath := config.ResolvePath(configPath)

	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}

	return loadedCfg, resolvedPath, nil
}

// loadGlobalConfigAllowMissing loads the config, returning defaults when the
// file does not exist.
func loadGlobalConfigAllowMissing() (*config.Config, string, bool, error) {
	resolvedPath := config.ResolvePath(configPath)
	if _, err := os.Stat(resolvedPath); err != nil {
		if os.IsNotExist(err) {
			return &config.Config{}, resolvedPath, false, nil
		}
		return nil, resolvedPath, false, err
	}

	loadedCfg, err := config.LoadFrom(resolvedPath)
	if err != nil {
		return nil, resolvedPath, true, err
	}
	return loadedCfg, resolvedPath, true, nil
}
