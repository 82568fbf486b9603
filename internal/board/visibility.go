package board

import "github.com/nexus/workspace/internal/models"

// VisibleProjects returns the projects that list user as a member.
func VisibleProjects(user models.User, projects []models.Project) []models.Project {
	visible := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if p.HasMember(user.ID) {
			visible = append(visible, p)
		}
	}
	return visible
}

// VisibleTasks keeps the tasks that belong to one of the visible projects.
func VisibleTasks(tasks []models.Task, visible []models.Project) []models.Task {
	ids := make(map[string]struct{}, len(visible))
	for _, p := range visible {
		ids[p.ID] = struct{}{}
	}
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if _, ok := ids[t.ProjectID]; ok {
			out = append(out, t)
		}
	}
	return out
}

func ProjectTasks(tasks []models.Task, projectID string) []models.Task {
	out := make([]models.Task, 0)
	for _, t := range tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

// ChannelMessages returns the messages posted to one project channel.
func ChannelMessages(messages []models.ChatMessage, channelID string) []models.ChatMessage {
	out := make([]models.ChatMessage, 0)
	for _, m := range messages {
		if m.ProjectID == channelID {
			out = append(out, m)
		}
	}
	return out
}

// DefaultProject picks the project to fall back to when the current one is
// no longer accessible: the first active project, else the first one.
func DefaultProject(visible []models.Project) (models.Project, bool) {
	for _, p := range visible {
		if !p.IsArchived {
			return p, true
		}
	}
	if len(visible) > 0 {
		return visible[0], true
	}
	return models.Project{}, false
}
