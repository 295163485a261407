package agent

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrPersonaGeneration means no valid persona was obtained within the
// retry budget. The submission it was meant for is abandoned.
var ErrPersonaGeneration = errors.New("persona generation failed")

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Persona is the synthetic respondent identity conditioning all answers
// within one submission. Immutable once created.
type Persona struct {
	Name        string `json:"name"`
	Email       string `json:"email_address"`
	Personality string `json:"personality"`
}

// FirstName returns the first token of the persona's name.
func (p Persona) FirstName() string {
	if fields := strings.Fields(p.Name); len(fields) > 0 {
		return fields[0]
	}
	return p.Name
}

const personaPrompt = `Craft a unique personality about a person in college. Give them preferences about religion, following their parents' advice, their behaviour, and their characteristics, and give them some insecurities. Also give some viewpoints they might have on certain worldwide topics, like taste in music and geopolitics, and give them academic interests (if they exist) and creative characteristics (if they exist). Give me a detailed response of their personality, and only their personality.

It is not necessary that this person be a good person, they can be a rebellious person as well.

Return your response as a JSON object:
{
    "name": "Name of the person",
    "email_address": "Email address of the person, with a gmail account",
    "personality": "A full detailing of the person's personality, as a string"
}`

// PersonaSynthesizer produces validated personas through the persona model.
type PersonaSynthesizer struct {
	model Generator
}

// NewPersonaSynthesizer creates a synthesizer backed by the given model.
func NewPersonaSynthesizer(model Generator) *PersonaSynthesizer {
	return &PersonaSynthesizer{model: model}
}

// Synthesize requests a fresh persona, retrying on unparsable or invalid
// replies up to the attempt budget. Names on the exclude list (matched
// case-insensitively) are rejected so a batch does not repeat respondents.
func (s *PersonaSynthesizer) Synthesize(ctx context.Context, exclude []string) (Persona, error) {
	return withRetries(ctx, ErrPersonaGeneration, func() (Persona, error) {
		raw, err := s.model.CompleteJSON(ctx, "", personaPrompt)
		if err != nil {
			return Persona{}, err
		}

		var p Persona
		if err := decodeJSON(raw, &p); err != nil {
			return Persona{}, fmt.Errorf("parse persona: %w", err)
		}
		if err := validatePersona(p, exclude); err != nil {
			return Persona{}, err
		}
		return p, nil
	})
}

func validatePersona(p Persona, exclude []string) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("persona has empty name")
	}
	if !emailRe.MatchString(p.Email) {
		return fmt.Errorf("persona email %q is not an email address", p.Email)
	}
	if strings.TrimSpace(p.Personality) == "" {
		return fmt.Errorf("persona has empty personality")
	}
	for _, name := range exclude {
		if strings.EqualFold(name, p.Name) {
			return fmt.Errorf("persona name %q already used", p.Name)
		}
	}
	return nil
}
