package agent

import "strings"

// Exchange is one question/answer pair from the current submission.
type Exchange struct {
	Prompt string
	Answer string
}

// Memory is the append-only conversation log for one submission. It is
// owned by exactly one session, reset by creating a fresh instance, and
// mutated only by the answerer after a validated answer.
type Memory struct {
	exchanges []Exchange
}

// NewMemory creates an empty conversation log.
func NewMemory() *Memory {
	return &Memory{}
}

// Append records a validated question/answer exchange.
func (m *Memory) Append(prompt, answer string) {
	m.exchanges = append(m.exchanges, Exchange{Prompt: prompt, Answer: answer})
}

// Len returns the number of recorded exchanges.
func (m *Memory) Len() int {
	return len(m.exchanges)
}

// Exchanges returns a copy of the recorded exchanges in order.
func (m *Memory) Exchanges() []Exchange {
	out := make([]Exchange, len(m.exchanges))
	copy(out, m.exchanges)
	return out
}

// Transcript renders the log as plain text for inclusion in prompts,
// keeping later answers consistent with earlier ones.
func (m *Memory) Transcript() string {
	if len(m.exchanges) == 0 {
		return ""
	}
	var b strings.Builder
	for i, e := range m.exchanges {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(e.Prompt)
		b.WriteString("\nYour answer: ")
		b.WriteString(e.Answer)
	}
	return b.String()
}
