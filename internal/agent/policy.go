package agent

import (
	"fmt"
	"math/rand"
	"os"
	"regexp"
	"time"

	"github.com/raphaelgruber/formghost/internal/forms"
	"gopkg.in/yaml.v3"
)

// StrategyKind classifies how a question will be resolved.
type StrategyKind int

const (
	// StrategyDeterministic resolves to a fixed value without a model call.
	StrategyDeterministic StrategyKind = iota
	// StrategyAskModel resolves through the answer model.
	StrategyAskModel
)

// Strategy is the policy decision for one question. For AskModel, Options
// carries the closed choice set (nil means open-ended) and Suppress marks
// answers that are generated for continuity but submitted empty.
type Strategy struct {
	Kind     StrategyKind
	Value    string
	Options  []string
	Suppress bool
}

// Profile selects which observed answering variant is in force. Two
// behaviors exist in the wild: one suppresses free-text answers and
// shortcuts name/email questions, the other answers everything supported.
// Neither is canonical, so both ship as named profiles.
type Profile struct {
	Name              string `yaml:"name"`
	DetectNameLabels  bool   `yaml:"detect_name_labels"`
	DetectEmailLabels bool   `yaml:"detect_email_labels"`
	SuppressFreeText  bool   `yaml:"suppress_free_text"`
}

// ConciseProfile suppresses free-text answers and fills name/email
// questions from the persona directly. The default.
func ConciseProfile() Profile {
	return Profile{
		Name:              "concise",
		DetectNameLabels:  true,
		DetectEmailLabels: true,
		SuppressFreeText:  true,
	}
}

// FullProfile answers every supported question with model output and only
// shortcuts the form's own email-collection field.
func FullProfile() Profile {
	return Profile{Name: "full"}
}

// ProfileByName resolves a built-in profile.
func ProfileByName(name string) (Profile, error) {
	switch name {
	case "concise", "":
		return ConciseProfile(), nil
	case "full":
		return FullProfile(), nil
	default:
		return Profile{}, fmt.Errorf("unknown profile %q", name)
	}
}

// LoadProfile reads a profile from a YAML file.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	if p.Name == "" {
		return Profile{}, fmt.Errorf("profile %s has no name", path)
	}
	return p, nil
}

var (
	nameLabelRe  = regexp.MustCompile(`(?i)\bname\b`)
	emailLabelRe = regexp.MustCompile(`(?i)\be-?mail\b`)
)

// Policy maps questions to strategies for one submission. The strategy
// kind for a given question is stable across calls; randomness only
// affects the value chosen on deterministic branches.
type Policy struct {
	profile Profile
	persona Persona
	rng     *rand.Rand
	now     func() time.Time
}

// NewPolicy creates a policy for one persona. rng and now may be nil,
// defaulting to a time-seeded source and the wall clock; tests inject
// fixed ones.
func NewPolicy(profile Profile, persona Persona, rng *rand.Rand, now func() time.Time) *Policy {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Policy{profile: profile, persona: persona, rng: rng, now: now}
}

// Decide applies the answering rules in order, first match wins.
func (p *Policy) Decide(q forms.Question) Strategy {
	// Name questions: full name or just the first name, a per-question draw.
	if q.Type == forms.TypeNameField || (p.profile.DetectNameLabels && nameLabelRe.MatchString(q.Label)) {
		name := p.persona.Name
		if p.rng.Intn(2) == 0 {
			name = p.persona.FirstName()
		}
		return Strategy{Kind: StrategyDeterministic, Value: name}
	}

	// Email questions: always filled when required (the form's own
	// email-collection field is), otherwise answered half the time.
	if q.Type == forms.TypeEmailField || (p.profile.DetectEmailLabels && emailLabelRe.MatchString(q.Label)) {
		if q.Required || p.rng.Intn(2) == 0 {
			return Strategy{Kind: StrategyDeterministic, Value: p.persona.Email}
		}
		return Strategy{Kind: StrategyDeterministic}
	}

	switch q.Type {
	case forms.TypeDate:
		return Strategy{Kind: StrategyDeterministic, Value: p.now().Format("2006-01-02")}
	case forms.TypeTime:
		return Strategy{Kind: StrategyDeterministic, Value: p.now().Format("15:04")}
	case forms.TypeMultipleChoice, forms.TypeLinearScale:
		return Strategy{Kind: StrategyAskModel, Options: q.Options}
	case forms.TypeShortAnswer, forms.TypeParagraph:
		return Strategy{Kind: StrategyAskModel, Suppress: p.profile.SuppressFreeText}
	default:
		// Unsupported kinds fail closed.
		return Strategy{Kind: StrategyDeterministic}
	}
}
