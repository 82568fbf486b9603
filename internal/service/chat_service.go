package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/nexus/workspace/internal/board"
	"github.com/nexus/workspace/internal/client"
	"github.com/nexus/workspace/internal/models"
)

const historySize = 5

type Channel struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	IsArchived bool   `json:"isArchived"`
}

func channelOf(p models.Project) Channel {
	return Channel{ID: p.ID, Name: p.Name, Slug: p.Slug(), IsArchived: p.IsArchived}
}

// Channels lists the company-wide channel followed by one channel per
// workspace the actor belongs to.
func (s *WorkspaceService) Channels(actorID string) ([]Channel, error) {
	visible, err := s.VisibleProjects(actorID)
	if err != nil {
		return nil, err
	}
	channels := []Channel{channelOf(models.GlobalProject())}
	for _, p := range visible {
		channels = append(channels, channelOf(p))
	}
	return channels, nil
}

func channelProject(st board.State, actor models.User, channelID string) (models.Project, error) {
	if channelID == models.GlobalProjectID {
		return models.GlobalProject(), nil
	}
	return visibleProject(st, actor, channelID)
}

func (s *WorkspaceService) Messages(actorID, channelID string) ([]models.ChatMessage, error) {
	st := s.snapshot()
	actor, err := findActor(st, actorID)
	if err != nil {
		return nil, err
	}
	if _, err := channelProject(st, actor, channelID); err != nil {
		return nil, err
	}
	return board.ChannelMessages(st.Messages, channelID), nil
}

// WantsAssistant reports whether a chat message is addressed to the assistant.
func WantsAssistant(text string) bool {
	lower := strings.ToLower(text)
	return strings.HasPrefix(lower, "@ai") || strings.Contains(lower, "nexus")
}

// chatHistory turns the latest channel messages into assistant turns from
// the actor's point of view.
func chatHistory(messages []models.ChatMessage, actorID string) []client.Turn {
	if len(messages) > historySize {
		messages = messages[len(messages)-historySize:]
	}
	turns := make([]client.Turn, 0, len(messages))
	for _, m := range messages {
		role := client.RoleModel
		if m.SenderID == actorID {
			role = client.RoleUser
		}
		turns = append(turns, client.Turn{Role: role, Content: m.Text})
	}
	return turns
}

func contextPrompt(p models.Project, text string) string {
	return fmt.Sprintf("Context: We are discussing the project %q. Description: %s. User asks: %s", p.Name, p.Description, text)
}

// SendMessage posts text to a channel. A message addressed to the assistant
// gets a reply posted right after it; both are returned in order.
func (s *WorkspaceService) SendMessage(ctx context.Context, actorID, channelID, text string, attachments []models.Attachment) ([]models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" && len(attachments) == 0 {
		return nil, fmt.Errorf("message is empty: %w", ErrInvalid)
	}

	var (
		project models.Project
		history []client.Turn
		posted  models.ChatMessage
	)
	err := s.update(func(st board.State) (board.State, error) {
		actor, err := findActor(st, actorID)
		if err != nil {
			return st, err
		}
		if project, err = channelProject(st, actor, channelID); err != nil {
			return st, err
		}
		history = chatHistory(board.ChannelMessages(st.Messages, channelID), actor.ID)
		posted = models.ChatMessage{
			ID:          models.NewID(),
			ProjectID:   channelID,
			SenderID:    actor.ID,
			Text:        text,
			Timestamp:   s.now(),
			Attachments: append([]models.Attachment(nil), attachments...),
		}
		return board.AppendMessage(st, posted), nil
	})
	if err != nil {
		return nil, err
	}

	if !WantsAssistant(text) {
		return []models.ChatMessage{posted}, nil
	}

	reply := models.ChatMessage{
		ID:        models.NewID(),
		ProjectID: channelID,
		SenderID:  models.SenderAI,
		Text:      s.assistant.Reply(ctx, history, contextPrompt(project, text)),
		IsAI:      true,
	}
	err = s.update(func(st board.State) (board.State, error) {
		reply.Timestamp = s.now()
		return board.AppendMessage(st, reply), nil
	})
	if err != nil {
		return nil, err
	}
	return []models.ChatMessage{posted, reply}, nil
}
