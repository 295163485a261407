package agent_test

import (
	"context"
	"testing"

	"github.com/raphaelgruber/formghost/internal/agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPersonaJSON = `{"name": "Asha Verma", "email_address": "asha.verma@gmail.com", "personality": "Restless third-year engineering student, loves indie rock, argues about geopolitics."}`

func TestSynthesizeValidOnThirdAttempt(t *testing.T) {
	model := &fakeModel{replies: []string{"not json", "{broken", validPersonaJSON}}
	s := agent.NewPersonaSynthesizer(model)

	p, err := s.Synthesize(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, model.calls)
	assert.Equal(t, "Asha Verma", p.Name)
	assert.Equal(t, "asha.verma@gmail.com", p.Email)
	assert.NotEmpty(t, p.Personality)
}

func TestSynthesizeExhaustsRetries(t *testing.T) {
	model := &fakeModel{replies: []string{"nope", "nope", "nope"}}
	s := agent.NewPersonaSynthesizer(model)

	_, err := s.Synthesize(context.Background(), nil)
	require.ErrorIs(t, err, agent.ErrPersonaGeneration)
	assert.Equal(t, 3, model.calls, "retry budget is 3 model calls")
}

func TestSynthesizeRejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"empty name", `{"name": " ", "email_address": "a@b.com", "personality": "x"}`},
		{"bad email", `{"name": "A", "email_address": "not-an-email", "personality": "x"}`},
		{"empty personality", `{"name": "A", "email_address": "a@b.com", "personality": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &fakeModel{replies: []string{tt.reply, validPersonaJSON}}
			p, err := agent.NewPersonaSynthesizer(model).Synthesize(context.Background(), nil)
			require.NoError(t, err)
			assert.Equal(t, 2, model.calls, "invalid persona should cost one retry")
			assert.Equal(t, "Asha Verma", p.Name)
		})
	}
}

func TestSynthesizeRejectsExcludedNames(t *testing.T) {
	model := &fakeModel{replies: []string{
		`{"name": "ASHA VERMA", "email_address": "a@gmail.com", "personality": "x"}`,
		`{"name": "Rohan Iyer", "email_address": "rohan@gmail.com", "personality": "y"}`,
	}}
	s := agent.NewPersonaSynthesizer(model)

	p, err := s.Synthesize(context.Background(), []string{"asha verma"})
	require.NoError(t, err)
	assert.Equal(t, 2, model.calls, "case-insensitive name match should retry")
	assert.Equal(t, "Rohan Iyer", p.Name)
}

func TestSynthesizeToleratesCodeFences(t *testing.T) {
	model := &fakeModel{replies: []string{"```json\n" + validPersonaJSON + "\n```"}}
	p, err := agent.NewPersonaSynthesizer(model).Synthesize(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", p.Name)
}

func TestFirstName(t *testing.T) {
	p := agent.Persona{Name: "Asha Verma"}
	assert.Equal(t, "Asha", p.FirstName())

	single := agent.Persona{Name: "Asha"}
	assert.Equal(t, "Asha", single.FirstName())
}
