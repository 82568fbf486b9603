package client

import (
	"context"
	"errors"

	"github.com/nexus/workspace/internal/models"
)

// ErrNotConfigured is returned by assistants that have no credentials.
var ErrNotConfigured = errors.New("assistant not configured")

// Suggestion is a task proposed by the assistant for a project description.
type Suggestion struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Priority    models.Priority `json:"priority"`
}

// Turn is one prior chat message given to the assistant as context.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser  = "user"
	RoleModel = "model"
)

type TaskSuggester interface {
	SuggestTasks(ctx context.Context, description string) ([]Suggestion, error)
}

type ChatResponder interface {
	Chat(ctx context.Context, history []Turn, prompt string) (string, error)
}

type Assistant interface {
	TaskSuggester
	ChatResponder
}
