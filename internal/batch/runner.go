// Package batch drives repeated submissions of one form.
package batch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/raphaelgruber/formghost/internal/agent"
	"github.com/raphaelgruber/formghost/internal/forms"
	"github.com/raphaelgruber/formghost/internal/llm"
)

// SubmissionStatus represents the outcome of one submission.
type SubmissionStatus string

const (
	StatusSubmitted SubmissionStatus = "submitted"
	StatusRejected  SubmissionStatus = "rejected" // answered but the endpoint said no
	StatusFailed    SubmissionStatus = "failed"   // persona or answer generation gave up
)

// Record summarizes one submission attempt.
type Record struct {
	ID          string
	PersonaName string
	Status      SubmissionStatus
	Error       string
	Duration    time.Duration

	// fatal carries errors that would fail every remaining submission.
	fatal error
}

// Report summarizes a whole batch run.
type Report struct {
	FormTitle string
	Questions int
	Records   []Record
}

// Submitted counts successful submissions.
func (r *Report) Submitted() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Status == StatusSubmitted {
			n++
		}
	}
	return n
}

// Snapshot is a point-in-time progress view for the CLI.
type Snapshot struct {
	Total     int
	Completed int
	Failed    int
	Current   string // persona name or phase description
	Done      bool
}

// Runner performs count submissions sequentially with a fixed pause
// between them. It owns the persona-name exclusion list; the engine
// itself keeps no cross-submission state.
type Runner struct {
	forms   *forms.Client
	session *agent.Session
	delay   time.Duration

	mu   sync.Mutex
	snap Snapshot
}

// NewRunner creates a batch runner. delay is the pause between
// submissions, a courtesy to the upstream endpoints.
func NewRunner(formsClient *forms.Client, session *agent.Session, delay time.Duration) *Runner {
	return &Runner{
		forms:   formsClient,
		session: session,
		delay:   delay,
	}
}

// Snapshot returns the current progress view.
func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

func (r *Runner) update(fn func(*Snapshot)) {
	r.mu.Lock()
	fn(&r.snap)
	r.mu.Unlock()
}

// Run fetches the form once and performs count submissions. Failed
// submissions are recorded and skipped, never fatal to the batch; the
// two exceptions are context cancellation and fatal provider errors,
// which would fail every remaining submission the same way.
func (r *Runner) Run(ctx context.Context, formURL string, count int, requiredOnly bool) (*Report, error) {
	form, err := r.forms.FetchForm(ctx, formURL)
	if err != nil {
		return nil, err
	}

	questions := form.Questions
	if requiredOnly {
		questions = form.RequiredOnly()
	}

	report := &Report{FormTitle: form.Title, Questions: len(questions)}
	var usedNames []string

	r.update(func(s *Snapshot) {
		s.Total = count
		s.Current = "starting"
	})
	defer r.update(func(s *Snapshot) { s.Done = true })

	for i := 0; i < count; i++ {
		r.update(func(s *Snapshot) { s.Current = "synthesizing persona" })

		start := time.Now()
		rec := r.submitOnce(ctx, formURL, questions, usedNames)
		rec.Duration = time.Since(start)
		report.Records = append(report.Records, rec)

		if rec.Status == StatusSubmitted {
			usedNames = append(usedNames, rec.PersonaName)
		}
		r.update(func(s *Snapshot) {
			s.Completed = i + 1
			if rec.Status != StatusSubmitted {
				s.Failed++
			}
			s.Current = rec.PersonaName
		})

		slog.Info("submission finished",
			"n", i+1, "of", count,
			"status", rec.Status, "persona", rec.PersonaName,
			"duration_ms", rec.Duration.Milliseconds())

		if rec.fatal != nil {
			return report, rec.fatal
		}

		if i < count-1 && r.delay > 0 {
			select {
			case <-time.After(r.delay):
			case <-ctx.Done():
				return report, ctx.Err()
			}
		}
	}

	return report, nil
}

// submitOnce runs one session and submits its answers.
func (r *Runner) submitOnce(ctx context.Context, formURL string, questions []forms.Question, usedNames []string) Record {
	result, err := r.session.Run(ctx, questions, usedNames)
	if err != nil {
		rec := Record{Status: StatusFailed, Error: err.Error()}
		if errors.Is(err, llm.ErrFatalAPI) || ctx.Err() != nil {
			rec.fatal = err
		}
		return rec
	}

	rec := Record{ID: result.ID, PersonaName: result.Persona.Name}

	if err := r.forms.Submit(ctx, formURL, result.Answers); err != nil {
		var te *forms.TransportError
		if errors.As(err, &te) {
			// Reported, not retried.
			rec.Status = StatusRejected
			rec.Error = te.Error()
			slog.Warn("submission rejected", "persona", result.Persona.Name, "status", te.StatusCode)
			return rec
		}
		rec.Status = StatusRejected
		rec.Error = err.Error()
		slog.Warn("submission failed", "persona", result.Persona.Name, "error", err)
		return rec
	}

	rec.Status = StatusSubmitted
	return rec
}
