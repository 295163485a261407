package cli

import (
	"fmt"
	"strings"

	"github.com/raphaelgruber/formghost/internal/forms"
	"github.com/spf13/cobra"
)

var inspectRequired bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <form-url>",
	Short: "Fetch a form and print its parsed questions",
	Long: `Inspect downloads the form page, extracts the embedded schema and prints
every question the engine would answer, with type, required flag and
choice options. Nothing is submitted.

Examples:
  formghost inspect https://docs.google.com/forms/d/e/XXXX/viewform
  formghost inspect https://docs.google.com/forms/d/e/XXXX/viewform -r`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVarP(&inspectRequired, "required", "r", false, "only show required questions")
}

func runInspect(cmd *cobra.Command, args []string) error {
	client := forms.NewClient(cfg.SubmitTimeout)

	form, err := client.FetchForm(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	questions := form.Questions
	if inspectRequired {
		questions = form.RequiredOnly()
	}

	fmt.Printf("%s\n", form.Title)
	if form.Description != "" {
		fmt.Printf("%s\n", form.Description)
	}
	fmt.Printf("%d questions\n\n", len(questions))

	for i, q := range questions {
		required := ""
		if q.Required {
			required = " (required)"
		}
		fmt.Printf("%2d. [%s]%s %s\n", i+1, q.Type, required, q.Label)
		if len(q.Options) > 0 {
			fmt.Printf("      choices: %s\n", strings.Join(q.Options, " | "))
		}
	}

	return nil
}
