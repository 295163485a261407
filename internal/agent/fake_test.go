package agent_test

import (
	"context"
	"errors"
)

// fakeModel replays scripted replies in order. A reply of "ERR" produces
// a generic call failure instead of content.
type fakeModel struct {
	replies []string
	calls   int
	systems []string
	users   []string
	err     error // returned on every call when set
}

func (f *fakeModel) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.systems = append(f.systems, systemPrompt)
	f.users = append(f.users, userPrompt)

	if f.err != nil {
		return "", f.err
	}
	if f.calls > len(f.replies) {
		return "", errors.New("fake model: no scripted reply left")
	}
	reply := f.replies[f.calls-1]
	if reply == "ERR" {
		return "", errors.New("fake model: scripted failure")
	}
	return reply, nil
}
