package board

import "github.com/nexus/workspace/internal/models"

type State struct {
	Users    []models.User
	Projects []models.Project
	Tasks    []models.Task
	Teams    []models.Team
	Messages []models.ChatMessage
}

func FindTask(s State, id string) (models.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func FindProject(s State, id string) (models.Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

func FindUser(s State, id string) (models.User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func FindTeam(s State, id string) (models.Team, bool) {
	for _, t := range s.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return models.Team{}, false
}
