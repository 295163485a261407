package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/raphaelgruber/formghost/internal/batch"
	"github.com/raphaelgruber/formghost/internal/forms"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	fillRequired    bool
	fillCount       int
	fillProfile     string
	fillProfileFile string
	fillNoUI        bool
)

var fillCmd = &cobra.Command{
	Use:   "fill <form-url>",
	Short: "Answer and submit a form as synthetic personas",
	Long: `Fill answers every question of the form through the configured LLM,
impersonating one freshly synthesized persona per submission, then posts
the completed payload to the form's response endpoint.

A fixed pause (FORMGHOST_SUBMISSION_DELAY, default 10s) separates
repeated submissions to avoid upstream rate limiting.

Examples:
  formghost fill https://docs.google.com/forms/d/e/XXXX/viewform
  formghost fill https://docs.google.com/forms/d/e/XXXX/viewform -n 20
  formghost fill https://docs.google.com/forms/d/e/XXXX/viewform -r --profile full`,
	Args: cobra.ExactArgs(1),
	RunE: runFill,
}

func init() {
	fillCmd.Flags().BoolVarP(&fillRequired, "required", "r", false, "only answer required questions")
	fillCmd.Flags().IntVarP(&fillCount, "count", "n", 1, "number of submissions to perform")
	fillCmd.Flags().StringVar(&fillProfile, "profile", "", "answering profile: concise or full")
	fillCmd.Flags().StringVar(&fillProfileFile, "profile-file", "", "load answering profile from a YAML file")
	fillCmd.Flags().BoolVar(&fillNoUI, "no-ui", false, "disable the progress UI even on a terminal")
}

type runResult struct {
	report *batch.Report
	err    error
}

func runFill(cmd *cobra.Command, args []string) error {
	formURL := args[0]
	if fillCount < 1 {
		return fmt.Errorf("count must be at least 1")
	}

	profile, err := resolveProfile(fillProfile, fillProfileFile)
	if err != nil {
		return err
	}

	session, err := newSession(profile)
	if err != nil {
		return err
	}

	runner := batch.NewRunner(
		forms.NewClient(cfg.SubmitTimeout),
		session,
		cfg.SubmissionDelay,
	)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	useUI := !fillNoUI && term.IsTerminal(int(os.Stdout.Fd()))
	if !useUI {
		report, err := runner.Run(ctx, formURL, fillCount, fillRequired)
		printReport(report)
		return err
	}

	results := make(chan runResult, 1)
	go func() {
		report, err := runner.Run(ctx, formURL, fillCount, fillRequired)
		results <- runResult{report: report, err: err}
	}()

	if err := RunBatchProgress(runner, cancel); err != nil {
		return err
	}

	res := <-results
	printReport(res.report)
	if errors.Is(res.err, context.Canceled) {
		return nil
	}
	return res.err
}

func printReport(report *batch.Report) {
	if report == nil {
		return
	}

	fmt.Printf("\n%s — %d questions\n", report.FormTitle, report.Questions)
	fmt.Printf("Submitted %d/%d\n", report.Submitted(), len(report.Records))
	for i, rec := range report.Records {
		switch rec.Status {
		case batch.StatusSubmitted:
			fmt.Printf("  %2d. %-24s %s (%.1fs)\n", i+1, rec.PersonaName, rec.Status, rec.Duration.Seconds())
		default:
			fmt.Printf("  %2d. %-24s %s: %s\n", i+1, rec.PersonaName, rec.Status, rec.Error)
		}
	}
}
