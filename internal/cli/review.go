package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/fade/internal/config"
	"github.com/aidanlsb/fade/internal/dataset"
	"github.com/aidanlsb/fade/internal/logging"
	"github.com/aidanlsb/fade/internal/review"
	"github.com/aidanlsb/fade/internal/tui"
	"github.com/aidanlsb/fade/internal/ui"
)

var (
	reviewTUI      bool
	reviewNoClear  bool
	reviewMarkdown bool
)

var reviewCmd = &cobra.Command{
	Use:   "review <file>",
	Short: "Annotate each record of a dataset with can_fade",
	Long: `Walk the records of a dataset one at a time and record a can_fade answer
for each.

At the prompt:
  n        can_fade = false
  b        go back to the previous record (stays on the first record)
  e        stop and save what has been answered so far
  anything else, including an empty line, means can_fade = true

The annotated dataset is written next to the source: the first ".json" in the
path becomes "_modified.json" (other files get "_modified" before their
extension). The source file is never modified.

Examples:
  fade review GDTFSpecAttributes.json
  fade review attrs.yaml --markdown
  fade review attrs.json --tui`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

// reviewResult is the JSON payload for a completed review.
type reviewResult struct {
	Input   string         `json:"input"`
	Output  string         `json:"output"`
	Status  string         `json:"status"`
	Summary review.Summary `json:"summary"`
}

func runReview(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	conf := getConfig()

	collection, err := dataset.Load(inputPath)
	if err != nil {
		return handleError(loadErrorCode(err), err, "")
	}

	logger, err := logging.New(logging.Options{
		File:    firstNonEmpty(logFileFlag, conf.Log.File),
		Level:   conf.Log.Level,
		Verbose: verbose,
	})
	if err != nil {
		return handleError(ErrConfigInvalid, err, "Check log.file and log.level")
	}
	defer func() { _ = logger.Sync() }()

	logger = logger.With(zap.String("run", uuid.NewString()), zap.String("input", inputPath))
	logger.Debug("config loaded", zap.String("config", resolvedConfigPath))

	session := review.NewSession(collection)
	state, err := runSession(cmd, conf, session, logger)
	if err != nil {
		logger.Error("review aborted", zap.Error(err))
		return handleError(ErrInternal, err, "")
	}

	outputPath := dataset.OutputPath(inputPath)
	if err := dataset.Save(outputPath, collection); err != nil {
		logger.Error("save failed", zap.String("output", outputPath), zap.Error(err))
		return handleError(ErrFileWriteError, err, "")
	}
	logger.Info("saved", zap.String("output", outputPath), zap.Stringer("status", state.Status))

	summary := review.Summarize(collection)
	if isJSONOutput() {
		outputSuccess(reviewResult{
			Input:   inputPath,
			Output:  outputPath,
			Status:  state.Status.String(),
			Summary: summary,
		})
		return nil
	}

	printReviewSummary(cmd.OutOrStdout(), outputPath, state, summary)
	return nil
}

// runSession picks the presenter for the configured mode and drives the
// session to a terminal state.
func runSession(cmd *cobra.Command, conf *config.Config, s *review.Session, logger *zap.Logger) (review.State, error) {
	if s.State().Status.Terminal() {
		return s.State(), nil
	}

	// Keep stdout clean for the JSON envelope.
	frames := cmd.OutOrStdout()
	if isJSONOutput() {
		frames = cmd.ErrOrStderr()
	}
	in := cmd.InOrStdin()

	presenter := ui.NewPresenter(frames, ui.PresenterOptions{
		ClearScreen: conf.ShouldClearScreen() && !reviewNoClear,
		Markdown:    conf.Review.Markdown || reviewMarkdown,
	})

	mode := conf.ReviewMode()
	if reviewTUI {
		mode = config.ModeTUI
	}
	if mode == config.ModeTUI {
		if ui.IsTerminal(in) && ui.IsTerminal(frames) {
			return tui.Run(s, tui.Options{
				Prompt:   conf.Review.Prompt,
				Markdown: conf.Review.Markdown || reviewMarkdown,
				Styles:   presenter.Styles(),
				Logger:   logger,
				Input:    in,
				Output:   frames,
			})
		}
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Warning("full-screen mode needs a terminal; using line prompts"))
	}

	runner := &review.Runner{
		Presenter: presenter,
		Input:     ui.NewLineReader(in, frames, presenter.Styles()),
		Prompt:    conf.Review.Prompt,
		Logger:    logger,
	}
	return runner.Run(s)
}

func printReviewSummary(w io.Writer, outputPath string, state review.State, sum review.Summary) {
	format := strings.ToUpper(string(dataset.FormatForPath(outputPath)))
	fmt.Fprintln(w, ui.Successf("Modified %s saved as %s", format, ui.FilePath(outputPath)))

	if state.Status == review.StatusExited && sum.Unannotated > 0 {
		fmt.Fprintln(w, ui.Hint(fmt.Sprintf("Stopped early: %s left unannotated", ui.Count(sum.Unannotated, "record", "records"))))
	}

	tbl := ui.NewTable(2)
	tbl.AddRow("records", strconv.Itoa(sum.Records))
	tbl.AddRow("can_fade", strconv.Itoa(sum.CanFade))
	tbl.AddRow("cannot_fade", strconv.Itoa(sum.CannotFade))
	tbl.AddRow("unannotated", strconv.Itoa(sum.Unannotated))
	fmt.Fprint(w, tbl.String())
}

func loadErrorCode(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrFileNotFound
		}
		return ErrFileReadError
	}
	return ErrInvalidInput
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func registerReviewFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&reviewTUI, "tui", false, "Use the full-screen view")
	cmd.Flags().BoolVar(&reviewNoClear, "no-clear", false, "Do not clear the screen between records")
	cmd.Flags().BoolVar(&reviewMarkdown, "markdown", false, "Render explanations as markdown")
}

func init() {
	registerReviewFlags(reviewCmd)
	rootCmd.AddCommand(reviewCmd)
}
