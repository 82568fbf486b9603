package models

import (
	"time"

	"github.com/gosimple/slug"
)

// GlobalProjectID is the synthetic project behind the "All Tasks" board and
// the company-wide chat channel.
const GlobalProjectID = "all-tasks"

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Members     []User    `json:"members"`
	CreatedAt   time.Time `json:"createdAt"`
	Color       string    `json:"color,omitempty"`
	IsArchived  bool      `json:"isArchived"`
}

func (p Project) HasMember(userID string) bool {
	return ContainsUser(p.Members, userID)
}

// Slug is the channel handle shown next to the project's chat.
func (p Project) Slug() string {
	return slug.Make(p.Name)
}

// GlobalProject returns the synthetic project that spans every workspace.
func GlobalProject() Project {
	return Project{
		ID:          GlobalProjectID,
		Name:        "All Tasks",
		Description: "Overview of all tasks across all workspaces.",
		Color:       "bg-slate-500",
	}
}

type Team struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Members     []User `json:"members"`
	Color       string `json:"color"`
}

func (t Team) HasMember(userID string) bool {
	return ContainsUser(t.Members, userID)
}
