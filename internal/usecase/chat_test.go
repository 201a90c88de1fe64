package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvimehta17/pay-parity/internal/domain"
)

type fakeCompleter struct {
	reply string
	err   error
	last  []domain.ChatMessage
}

func (f *fakeCompleter) Complete(_ context.Context, messages []domain.ChatMessage) (string, error) {
	f.last = messages
	return f.reply, f.err
}

func TestChatReply(t *testing.T) {
	t.Parallel()
	fc := &fakeCompleter{reply: "ask for 15% more"}
	svc := NewChatService(fc)

	reply, err := svc.Reply(context.Background(), ChatInput{
		Messages: []domain.ChatMessage{{Role: "user", Content: "how do I negotiate?"}},
		Mode:     ModeCoach,
		Profile:  map[string]any{"Job_Title": "Software Engineer"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ask for 15% more", reply)

	require.NotEmpty(t, fc.last)
	assert.Equal(t, "system", fc.last[0].Role)
	assert.Contains(t, fc.last[0].Content, "negotiation coach")
	assert.Contains(t, fc.last[0].Content, "Software Engineer")
	assert.Equal(t, "user", fc.last[len(fc.last)-1].Role)
}

func TestChatReplyModePrompts(t *testing.T) {
	t.Parallel()
	turn := []domain.ChatMessage{{Role: "user", Content: "hello"}}

	cases := []struct {
		mode string
		want string
	}{
		{mode: ModeCoach, want: "negotiation coach"},
		{mode: ModeMockInterviewer, want: "hiring manager"},
		{mode: ModeAdaptive, want: "adaptive"},
		{mode: "", want: "adaptive"},
	}
	for _, tc := range cases {
		fc := &fakeCompleter{reply: "ok"}
		svc := NewChatService(fc)
		_, err := svc.Reply(context.Background(), ChatInput{Messages: turn, Mode: tc.mode})
		require.NoError(t, err)
		assert.Contains(t, strings.ToLower(fc.last[0].Content), tc.want, "mode=%q", tc.mode)
	}
}

func TestChatReplyCapsHistory(t *testing.T) {
	t.Parallel()
	fc := &fakeCompleter{reply: "ok"}
	svc := NewChatService(fc)

	var msgs []domain.ChatMessage
	for i := 0; i < 20; i++ {
		role := "assistant"
		if i%2 == 0 {
			role = "user"
		}
		msgs = append(msgs, domain.ChatMessage{Role: role, Content: fmt.Sprintf("turn %d", i)})
	}
	// Last message must be from the user.
	msgs = append(msgs, domain.ChatMessage{Role: "user", Content: "final"})

	_, err := svc.Reply(context.Background(), ChatInput{Messages: msgs})
	require.NoError(t, err)
	// System prompt plus the capped tail.
	assert.Len(t, fc.last, 13)
	assert.Equal(t, "final", fc.last[len(fc.last)-1].Content)
}

func TestChatReplyRejectsNonUserTail(t *testing.T) {
	t.Parallel()
	svc := NewChatService(&fakeCompleter{})

	_, err := svc.Reply(context.Background(), ChatInput{
		Messages: []domain.ChatMessage{{Role: "assistant", Content: "hi"}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = svc.Reply(context.Background(), ChatInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestChatReplyPropagatesCompleterError(t *testing.T) {
	t.Parallel()
	svc := NewChatService(&fakeCompleter{err: fmt.Errorf("%w: model busy", domain.ErrUpstreamTimeout)})
	_, err := svc.Reply(context.Background(), ChatInput{
		Messages: []domain.ChatMessage{{Role: "user", Content: "hi"}},
	})
	assert.ErrorIs(t, err, domain.ErrUpstreamTimeout)
}
