package cli

import (
	"fmt"

	"github.com/raphaelgruber/formghost/internal/agent"
	"github.com/raphaelgruber/formghost/internal/llm"
	"github.com/spf13/cobra"
)

var personaCmd = &cobra.Command{
	Use:   "persona",
	Short: "Synthesize one persona and print it",
	Long: `Persona runs a single persona synthesis against the configured persona
model and prints the result. Useful for checking model configuration and
for eyeballing what kind of respondents a batch would produce.`,
	Args: cobra.NoArgs,
	RunE: runPersona,
}

func runPersona(cmd *cobra.Command, args []string) error {
	model, err := llm.NewModel(cfg, cfg.PersonaModel, cfg.PersonaTemperature)
	if err != nil {
		return fmt.Errorf("init persona model: %w", err)
	}

	persona, err := agent.NewPersonaSynthesizer(model).Synthesize(cmd.Context(), nil)
	if err != nil {
		return err
	}

	fmt.Printf("Name:  %s\nEmail: %s\n\n%s\n", persona.Name, persona.Email, persona.Personality)
	return nil
}
