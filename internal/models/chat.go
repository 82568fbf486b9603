package models

import "time"

const (
	SenderAI     = "ai"
	SenderSystem = "system"
)

type ChatMessage struct {
	ID          string       `json:"id"`
	ProjectID   string       `json:"projectId"`
	SenderID    string       `json:"senderId"`
	Text        string       `json:"text"`
	Timestamp   time.Time    `json:"timestamp"`
	IsAI        bool         `json:"isAi,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}
