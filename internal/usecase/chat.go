package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dhruvimehta17/pay-parity/internal/domain"
)

const (
	// maxHistory caps the message history forwarded to the model; older
	// turns are dropped for prompt budget.
	maxHistory = 12

	ModeCoach           = "coach"
	ModeMockInterviewer = "mock_interviewer"
	ModeAdaptive        = "adaptive"
)

// ChatInput is one turn of the negotiation-coach conversation.
type ChatInput struct {
	Messages []domain.ChatMessage
	Mode     string
	Profile  map[string]any
}

// ChatService proxies negotiation-coach conversations to the chat model,
// injecting a mode-specific system prompt and the caller's profile context.
type ChatService struct {
	Completer domain.ChatCompleter
}

// NewChatService wires the chat proxy.
func NewChatService(completer domain.ChatCompleter) *ChatService {
	return &ChatService{Completer: completer}
}

// Reply validates the turn, assembles the prompt and returns the model's
// response.
func (s *ChatService) Reply(ctx context.Context, in ChatInput) (string, error) {
	history := in.Messages
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}
	if len(history) == 0 || history[len(history)-1].Role != "user" {
		return "", fmt.Errorf("%w: last message must be from user", domain.ErrInvalidArgument)
	}

	messages := make([]domain.ChatMessage, 0, len(history)+1)
	messages = append(messages, domain.ChatMessage{
		Role:    "system",
		Content: systemPrompt(in.Mode, in.Profile),
	})
	messages = append(messages, history...)

	return s.Completer.Complete(ctx, messages)
}

func systemPrompt(mode string, profile map[string]any) string {
	var base string
	switch mode {
	case ModeCoach:
		base = coachPrompt
	case ModeMockInterviewer:
		base = mockInterviewerPrompt
	default:
		base = adaptivePrompt
	}
	if profile == nil {
		profile = map[string]any{}
	}
	blob, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		blob = []byte("{}")
	}
	return fmt.Sprintf("%s\n\nUser profile/context (may be partial):\n%s\n\n"+
		"General safety: Avoid legal, medical, or financial advice beyond common professional norms.",
		base, blob)
}
