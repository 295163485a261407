package agent_test

import (
	"testing"

	"github.com/raphaelgruber/formghost/internal/agent"
	"github.com/stretchr/testify/assert"
)

func TestMemoryAppendOnly(t *testing.T) {
	mem := agent.NewMemory()
	assert.Equal(t, 0, mem.Len())
	assert.Empty(t, mem.Transcript())

	mem.Append("Question: Pick one", "Yes")
	mem.Append("Question: Rate it", "3")
	assert.Equal(t, 2, mem.Len())

	exchanges := mem.Exchanges()
	assert.Equal(t, "Yes", exchanges[0].Answer)
	assert.Equal(t, "3", exchanges[1].Answer)

	// Mutating the returned slice must not affect the log.
	exchanges[0].Answer = "tampered"
	assert.Equal(t, "Yes", mem.Exchanges()[0].Answer)
}

func TestMemoryTranscript(t *testing.T) {
	mem := agent.NewMemory()
	mem.Append("Question: Pick one", "Yes")
	mem.Append("Question: Rate it", "3")

	transcript := mem.Transcript()
	assert.Contains(t, transcript, "Question: Pick one")
	assert.Contains(t, transcript, "Your answer: Yes")
	assert.Contains(t, transcript, "Your answer: 3")
}
