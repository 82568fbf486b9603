package models

import (
	"cloud.google.com/go/civil"
	"github.com/dustin/go-humanize"
)

type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size string `json:"size"`
	URL  string `json:"url"`
}

// NewAttachment builds attachment metadata for an uploaded file of sizeBytes.
func NewAttachment(name, contentType string, sizeBytes uint64, url string) Attachment {
	return Attachment{
		ID:   NewID(),
		Name: name,
		Type: contentType,
		Size: humanize.Bytes(sizeBytes),
		URL:  url,
	}
}

type Comment struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Avatar     string `json:"avatar"`
	Text       string `json:"text"`
	Timestamp  string `json:"timestamp"`
}

type ChecklistItem struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	IsCompleted bool         `json:"isCompleted"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

type Task struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"projectId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      TaskStatus      `json:"status"`
	Priority    Priority        `json:"priority"`
	Category    TaskCategory    `json:"category"`
	DueDate     civil.Date      `json:"dueDate"`
	Assignees   []User          `json:"assignees"`
	Attachments []Attachment    `json:"attachments"`
	Checklist   []ChecklistItem `json:"checklist"`
	Comments    []Comment       `json:"comments"`
}

// IsAssigned reports whether userID is among the task's assignees.
func (t Task) IsAssigned(userID string) bool {
	return ContainsUser(t.Assignees, userID)
}

// ChecklistProgress returns the number of completed items and the total.
func (t Task) ChecklistProgress() (completed, total int) {
	for _, item := range t.Checklist {
		if item.IsCompleted {
			completed++
		}
	}
	return completed, len(t.Checklist)
}

// Clone returns a copy of t whose slices do not alias t's.
func (t Task) Clone() Task {
	c := t
	c.Assignees = append([]User(nil), t.Assignees...)
	c.Attachments = append([]Attachment(nil), t.Attachments...)
	c.Comments = append([]Comment(nil), t.Comments...)
	if t.Checklist != nil {
		c.Checklist = make([]ChecklistItem, len(t.Checklist))
		for i, item := range t.Checklist {
			item.Attachments = append([]Attachment(nil), item.Attachments...)
			c.Checklist[i] = item
		}
	}
	return c
}
