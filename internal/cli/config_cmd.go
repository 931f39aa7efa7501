package cli

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/fade/internal/config"
	"github.com/aidanlsb/fade/internal/logging"
	"github.com/aidanlsb/fade/internal/ui"
)

type globalConfigContext struct {
	cfg          *config.Config
	configPath   string
	configExists bool
}

var (
	configShowTOML bool

	configSetUIAccent    string
	configSetClearScreen bool
	configSetMode        string
	configSetPrompt      string
	configSetMarkdown    bool
	configSetLogFile     string
	configSetLogLevel    string

	configUnsetUIAccent    bool
	configUnsetClearScreen bool
	configUnsetMode        bool
	configUnsetPrompt      bool
	configUnsetMarkdown    bool
	configUnsetLogFile     bool
	configUnsetLogLevel    bool
)

func loadGlobalConfigContextAllowMissing() (*globalConfigContext, error) {
	loadedCfg, path, exists, err := loadGlobalConfigAllowMissing()
	if err != nil {
		return nil, err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}

	return &globalConfigContext{
		cfg:          loadedCfg,
		configPath:   path,
		configExists: exists,
	}, nil
}

func configData(ctx *globalConfigContext) map[string]interface{} {
	return map[string]interface{}{
		"config_path": ctx.configPath,
		"exists":      ctx.configExists,
		"ui": map[string]interface{}{
			"accent":       strings.TrimSpace(ctx.cfg.UI.Accent),
			"clear_screen": ctx.cfg.ShouldClearScreen(),
		},
		"review": map[string]interface{}{
			"mode":     ctx.cfg.ReviewMode(),
			"prompt":   ctx.cfg.Review.Prompt,
			"markdown": ctx.cfg.Review.Markdown,
		},
		"log": map[string]interface{}{
			"file":  strings.TrimSpace(ctx.cfg.Log.File),
			"level": strings.TrimSpace(ctx.cfg.Log.Level),
		},
	}
}

func normalizeMode(raw string) (string, bool) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	switch mode {
	case config.ModeLine, config.ModeTUI:
		return mode, true
	default:
		return "", false
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	ctx, err := loadGlobalConfigContextAllowMissing()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	if isJSONOutput() {
		outputSuccess(configData(ctx))
		return nil
	}

	out := cmd.OutOrStdout()
	if configShowTOML {
		var buf bytes.Buffer
		if err := config.Encode(&buf, ctx.cfg); err != nil {
			return handleError(ErrInternal, err, "")
		}
		fmt.Fprint(out, buf.String())
		return nil
	}

	if !ctx.configExists {
		fmt.Fprintf(out, "Config file does not exist: %s\n", ctx.configPath)
		fmt.Fprintln(out, ui.Hint("Run 'fade config init' to create it."))
		return nil
	}

	fmt.Fprintf(out, "%s %s\n", ui.Header("config:"), ui.FilePath(ctx.configPath))

	tbl := ui.NewTable(2)
	if v := strings.TrimSpace(ctx.cfg.UI.Accent); v != "" {
		tbl.AddRow("ui.accent", v)
	}
	tbl.AddRow("ui.clear_screen", strconv.FormatBool(ctx.cfg.ShouldClearScreen()))
	tbl.AddRow("review.mode", ctx.cfg.ReviewMode())
	if ctx.cfg.Review.Prompt != "" {
		tbl.AddRow("review.prompt", strconv.Quote(ctx.cfg.Review.Prompt))
	}
	tbl.AddRow("review.markdown", strconv.FormatBool(ctx.cfg.Review.Markdown))
	if v := strings.TrimSpace(ctx.cfg.Log.File); v != "" {
		tbl.AddRow("log.file", v)
	}
	if v := strings.TrimSpace(ctx.cfg.Log.Level); v != "" {
		tbl.AddRow("log.level", v)
	}
	fmt.Fprint(out, tbl.String())

	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global fade config.toml settings",
	Long: `Manage global fade config.toml settings.

Use this to initialize, inspect, and edit review preferences.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadGlobalConfigContextAllowMissing()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_path": ctx.configPath,
				"exists":      ctx.configExists,
			})
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), ctx.configPath)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default global config.toml if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		targetPath := config.ResolvePath(configPath)

		created, err := config.CreateDefault(targetPath)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_path": targetPath,
				"created":     created,
			})
			return nil
		}

		out := cmd.OutOrStdout()
		if created {
			fmt.Fprintln(out, ui.Successf("Created config: %s", ui.FilePath(targetPath)))
		} else {
			fmt.Fprintf(out, "Config already exists: %s\n", ui.FilePath(targetPath))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set one or more global config.toml fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadGlobalConfigContextAllowMissing()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		changed := make([]string, 0, 7)
		flags := cmd.Flags()

		if flags.Changed("ui-accent") {
			value := strings.TrimSpace(configSetUIAccent)
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, "ui-accent cannot be empty; use 'fade config unset --ui-accent' to clear it", "")
			}
			if !ui.ValidAccent(value) {
				return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("ui-accent %q is not a color", value), "Use an ANSI code (0-255), #RGB or #RRGGBB, or none")
			}
			ctx.cfg.UI.Accent = value
			changed = append(changed, "ui.accent")
		}

		if flags.Changed("clear-screen") {
			value := configSetClearScreen
			ctx.cfg.UI.ClearScreen = &value
			changed = append(changed, "ui.clear_screen")
		}

		if flags.Changed("mode") {
			value, ok := normalizeMode(configSetMode)
			if !ok {
				return handleErrorMsg(ErrInvalidInput, "mode must be one of: line, tui", "")
			}
			ctx.cfg.Review.Mode = value
			changed = append(changed, "review.mode")
		}

		if flags.Changed("prompt") {
			if strings.TrimSpace(configSetPrompt) == "" {
				return handleErrorMsg(ErrInvalidInput, "prompt cannot be empty; use 'fade config unset --prompt' to restore the default", "")
			}
			ctx.cfg.Review.Prompt = configSetPrompt
			changed = append(changed, "review.prompt")
		}

		if flags.Changed("markdown") {
			ctx.cfg.Review.Markdown = configSetMarkdown
			changed = append(changed, "review.markdown")
		}

		if flags.Changed("log-file") {
			value := strings.TrimSpace(configSetLogFile)
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, "log-file cannot be empty; use 'fade config unset --log-file' to disable logging", "")
			}
			ctx.cfg.Log.File = value
			changed = append(changed, "log.file")
		}

		if flags.Changed("log-level") {
			if _, err := logging.ParseLevel(configSetLogLevel); err != nil || strings.TrimSpace(configSetLogLevel) == "" {
				return handleErrorMsg(ErrInvalidInput, "log-level must be one of: debug, info, warn, error", "")
			}
			ctx.cfg.Log.Level = strings.ToLower(strings.TrimSpace(configSetLogLevel))
			changed = append(changed, "log.level")
		}

		if len(changed) == 0 {
			return handleErrorMsg(ErrMissingArgument, "no fields provided; set at least one --ui-accent/--clear-screen/--mode/--prompt/--markdown/--log-file/--log-level", "")
		}

		if err := config.SaveTo(ctx.configPath, ctx.cfg); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		ctx.configExists = true
		if isJSONOutput() {
			data := configData(ctx)
			data["changed"] = changed
			outputSuccess(data)
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Successf("Updated config: %s", ui.FilePath(ctx.configPath)))
		fmt.Fprintf(out, "changed: %s\n", strings.Join(changed, ", "))
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset",
	Short: "Clear one or more global config.toml fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadGlobalConfigContextAllowMissing()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if !ctx.configExists {
			return handleErrorMsg(ErrFileNotFound, fmt.Sprintf("config file not found: %s", ctx.configPath), "Run 'fade config init' first")
		}

		changed := make([]string, 0, 7)
		if configUnsetUIAccent {
			ctx.cfg.UI.Accent = ""
			changed = append(changed, "ui.accent")
		}
		if configUnsetClearScreen {
			ctx.cfg.UI.ClearScreen = nil
			changed = append(changed, "ui.clear_screen")
		}
		if configUnsetMode {
			ctx.cfg.Review.Mode = ""
			changed = append(changed, "review.mode")
		}
		if configUnsetPrompt {
			ctx.cfg.Review.Prompt = ""
			changed = append(changed, "review.prompt")
		}
		if configUnsetMarkdown {
			ctx.cfg.Review.Markdown = false
			changed = append(changed, "review.markdown")
		}
		if configUnsetLogFile {
			ctx.cfg.Log.File = ""
			changed = append(changed, "log.file")
		}
		if configUnsetLogLevel {
			ctx.cfg.Log.Level = ""
			changed = append(changed, "log.level")
		}

		if len(changed) == 0 {
			return handleErrorMsg(ErrMissingArgument, "no fields selected; pass one or more unset flags", "")
		}

		if err := config.SaveTo(ctx.configPath, ctx.cfg); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			data := configData(ctx)
			data["changed"] = changed
			outputSuccess(data)
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Successf("Updated config: %s", ui.FilePath(ctx.configPath)))
		fmt.Fprintf(out, "cleared: %s\n", strings.Join(changed, ", "))
		return nil
	},
}

func init() {
	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current global config.toml values",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
	configShowCmd.Flags().BoolVar(&configShowTOML, "toml", false, "Print the effective settings as TOML")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)

	configSetCmd.Flags().StringVar(&configSetUIAccent, "ui-accent", "", "Set UI accent color (ANSI 0-255 or #RRGGBB)")
	configSetCmd.Flags().BoolVar(&configSetClearScreen, "clear-screen", true, "Clear the terminal before each record")
	configSetCmd.Flags().StringVar(&configSetMode, "mode", "", "Set review mode (line|tui)")
	configSetCmd.Flags().StringVar(&configSetPrompt, "prompt", "", "Set the can_fade prompt text")
	configSetCmd.Flags().BoolVar(&configSetMarkdown, "markdown", false, "Render explanations as markdown")
	configSetCmd.Flags().StringVar(&configSetLogFile, "log-file", "", "Set the structured log file path")
	configSetCmd.Flags().StringVar(&configSetLogLevel, "log-level", "", "Set log level (debug|info|warn|error)")

	configUnsetCmd.Flags().BoolVar(&configUnsetUIAccent, "ui-accent", false, "Clear ui.accent")
	configUnsetCmd.Flags().BoolVar(&configUnsetClearScreen, "clear-screen", false, "Clear ui.clear_screen")
	configUnsetCmd.Flags().BoolVar(&configUnsetMode, "mode", false, "Clear review.mode")
	configUnsetCmd.Flags().BoolVar(&configUnsetPrompt, "prompt", false, "Clear review.prompt")
	configUnsetCmd.Flags().BoolVar(&configUnsetMarkdown, "markdown", false, "Clear review.markdown")
	configUnsetCmd.Flags().BoolVar(&configUnsetLogFile, "log-file", false, "Clear log.file")
	configUnsetCmd.Flags().BoolVar(&configUnsetLogLevel, "log-level", false, "Clear log.level")

	rootCmd.AddCommand(configCmd)
}
