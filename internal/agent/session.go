package agent

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/raphaelgruber/formghost/internal/forms"
)

// Result is one completed submission: every entry id mapped to the value
// that will go into the payload.
type Result struct {
	ID      string
	Persona Persona
	Answers map[string]string
}

// Session orchestrates one full submission: synthesize a persona, start a
// fresh memory, resolve every question in form order, aggregate answers.
// A session holds no per-submission state between Run calls, so one
// instance serves a whole batch.
type Session struct {
	personas *PersonaSynthesizer
	answerer *Answerer
	profile  Profile
	rng      *rand.Rand
	now      func() time.Time
}

// NewSession creates a session. rng and now may be nil (see NewPolicy).
func NewSession(personas *PersonaSynthesizer, answerer *Answerer, profile Profile, rng *rand.Rand, now func() time.Time) *Session {
	return &Session{
		personas: personas,
		answerer: answerer,
		profile:  profile,
		rng:      rng,
		now:      now,
	}
}

// Run answers every question for a freshly synthesized persona. Question
// order is preserved; it determines conversational continuity. Any
// terminal persona or answer error aborts this submission only.
func (s *Session) Run(ctx context.Context, questions []forms.Question, excludeNames []string) (*Result, error) {
	persona, err := s.personas.Synthesize(ctx, excludeNames)
	if err != nil {
		return nil, err
	}
	slog.Info("persona synthesized", "name", persona.Name, "email", persona.Email)

	mem := NewMemory()
	policy := NewPolicy(s.profile, persona, s.rng, s.now)
	answers := make(map[string]string, len(questions))

	for _, q := range questions {
		strategy := policy.Decide(q)

		switch strategy.Kind {
		case StrategyDeterministic:
			answers[q.EntryID] = strategy.Value

		case StrategyAskModel:
			value, err := s.answerer.Ask(ctx, q, persona, mem, strategy.Options, q.Required)
			if err != nil {
				return nil, fmt.Errorf("question %q: %w", q.Label, err)
			}
			if strategy.Suppress {
				// Generated for continuity, submitted empty.
				value = ""
			}
			answers[q.EntryID] = value
		}
	}

	return &Result{
		ID:      uuid.NewString(),
		Persona: persona,
		Answers: answers,
	}, nil
}
