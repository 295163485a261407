package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/raphaelgruber/formghost/internal/forms"
)

// ErrAnswerGeneration means no valid answer passed validation within the
// retry budget. An out-of-option reply is never accepted in its place.
var ErrAnswerGeneration = errors.New("answer generation failed")

// Answerer resolves questions through the answer model, role-playing the
// persona and keeping answers consistent with the conversation so far.
type Answerer struct {
	model Generator
}

// NewAnswerer creates an answerer backed by the given model.
func NewAnswerer(model Generator) *Answerer {
	return &Answerer{model: model}
}

type answerReply struct {
	Response string `json:"response"`
}

// Ask builds the prompt for one question, queries the model, validates
// the reply against options (exact, case-sensitive membership) and
// records the validated exchange into memory. Retries up to the attempt
// budget; exhaustion is terminal for the whole submission.
func (a *Answerer) Ask(ctx context.Context, q forms.Question, persona Persona, mem *Memory, options []string, required bool) (string, error) {
	systemPrompt := buildSystemPrompt(persona, mem)
	userPrompt := buildUserPrompt(q.Label, options, required)

	answer, err := withRetries(ctx, ErrAnswerGeneration, func() (string, error) {
		raw, err := a.model.CompleteJSON(ctx, systemPrompt, userPrompt)
		if err != nil {
			return "", err
		}

		var reply answerReply
		if err := decodeJSON(raw, &reply); err != nil {
			return "", fmt.Errorf("parse answer: %w", err)
		}
		if len(options) > 0 && !contains(options, reply.Response) {
			return "", fmt.Errorf("answer %q is not one of the choices", reply.Response)
		}
		return reply.Response, nil
	})
	if err != nil {
		return "", err
	}

	mem.Append(userPrompt, answer)
	slog.Debug("question answered", "question", q.Label, "answer", answer, "memory_len", mem.Len())
	return answer, nil
}

func buildSystemPrompt(persona Persona, mem *Memory) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are acting on behalf of a person as an intelligent agent filling out a web form. Your name is %s with the email address %s. Your personality is this:
%s

Act as this person and answer the questions posed to you.

If you have been given choices in a question, make sure that your response is exactly one of the listed choices.

Answer the way real form respondents do: most open answers are a single word, a short phrase, "NA", "-", or "No" for yes/no questions. Do not use obscure or complex language, act the age of the person you are representing.

You have to return a JSON object with a single "response" key.`,
		persona.Name, persona.Email, persona.Personality)

	if transcript := mem.Transcript(); transcript != "" {
		b.WriteString("\n\nYour answers so far in this form:\n\n")
		b.WriteString(transcript)
		b.WriteString("\n\nStay consistent with what you already said.")
	}
	return b.String()
}

func buildUserPrompt(label string, options []string, required bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\n", label)

	if len(options) > 0 {
		fmt.Fprintf(&b, "Choices available to answer this question: %s\nYour response must be exactly one of these choices.", strings.Join(options, ", "))
	} else {
		b.WriteString("This is an open-ended question, so answer it freely in your own words.")
	}

	if required {
		b.WriteString("\n\nThis is a required question, so you must answer it. There's no option for you not to answer this question.")
	}
	return b.String()
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
