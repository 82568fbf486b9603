package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/nexus/workspace/internal/client"
	"github.com/nexus/workspace/internal/logging"
	"github.com/nexus/workspace/internal/models"
)

const (
	ReplyNotConfigured = "AI Configuration Missing."
	ReplyUnavailable   = "Sorry, I'm having trouble connecting to the server right now."
	ReplyEmpty         = "I'm thinking..."
)

// AssistantService shields the workspace from the generative text service.
// Every call degrades to a fixed fallback instead of failing.
type AssistantService struct {
	assistant client.Assistant
	breaker   *gobreaker.CircuitBreaker
}

func NewAssistantBreaker(name string, openFor time.Duration) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, client.ErrNotConfigured)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Component("assistant").Infof("circuit breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
}

func NewAssistantService(assistant client.Assistant, breaker *gobreaker.CircuitBreaker) *AssistantService {
	return &AssistantService{
		assistant: assistant,
		breaker:   breaker,
	}
}

// SuggestTasks returns task ideas for description, or an empty list when the
// assistant is unavailable. Suggestions without a title are dropped and an
// unknown priority becomes Medium.
func (s *AssistantService) SuggestTasks(ctx context.Context, description string) []client.Suggestion {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.assistant.SuggestTasks(ctx, description)
	})
	if err != nil {
		if !errors.Is(err, client.ErrNotConfigured) {
			logging.Component("assistant").WithError(err).Warn("task suggestions failed")
		}
		return []client.Suggestion{}
	}

	suggestions := make([]client.Suggestion, 0)
	for _, sg := range result.([]client.Suggestion) {
		sg.Title = strings.TrimSpace(sg.Title)
		if sg.Title == "" {
			continue
		}
		if !sg.Priority.Valid() {
			sg.Priority = models.PriorityMedium
		}
		suggestions = append(suggestions, sg)
	}
	return suggestions
}

// Reply answers prompt in the context of history. It always returns text to
// post in the channel.
func (s *AssistantService) Reply(ctx context.Context, history []client.Turn, prompt string) string {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.assistant.Chat(ctx, history, prompt)
	})
	switch {
	case errors.Is(err, client.ErrNotConfigured):
		return ReplyNotConfigured
	case err != nil:
		logging.Component("assistant").WithError(err).Warn("chat reply failed")
		return ReplyUnavailable
	}

	if text := strings.TrimSpace(result.(string)); text != "" {
		return text
	}
	return ReplyEmpty
}
