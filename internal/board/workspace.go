package board

import "github.com/nexus/workspace/internal/models"

// AddProject stores p with creator guaranteed to be among its members.
func AddProject(s State, p models.Project, creator models.User) State {
	members := append([]models.User(nil), p.Members...)
	if !models.ContainsUser(members, creator.ID) {
		members = append(members, creator)
	}
	p.Members = members

	projects := make([]models.Project, 0, len(s.Projects)+1)
	projects = append(projects, s.Projects...)
	s.Projects = append(projects, p)
	return s
}

// ToggleArchive flips the archived flag of the project with id.
func ToggleArchive(s State, id string) State {
	projects := make([]models.Project, len(s.Projects))
	for i, p := range s.Projects {
		if p.ID == id {
			p.IsArchived = !p.IsArchived
		}
		projects[i] = p
	}
	s.Projects = projects
	return s
}

func AddTeam(s State, t models.Team) State {
	teams := make([]models.Team, 0, len(s.Teams)+1)
	teams = append(teams, s.Teams...)
	s.Teams = append(teams, t)
	return s
}

func DeleteTeam(s State, id string) State {
	teams := make([]models.Team, 0, len(s.Teams))
	for _, t := range s.Teams {
		if t.ID != id {
			teams = append(teams, t)
		}
	}
	s.Teams = teams
	return s
}

// AddTeamMember adds the known user userID to the team. Unknown users and
// existing members leave the state unchanged.
func AddTeamMember(s State, teamID, userID string) State {
	user, ok := FindUser(s, userID)
	if !ok {
		return s
	}
	teams := make([]models.Team, len(s.Teams))
	for i, t := range s.Teams {
		if t.ID == teamID && !t.HasMember(userID) {
			t.Members = append(append([]models.User(nil), t.Members...), user)
		}
		teams[i] = t
	}
	s.Teams = teams
	return s
}

// UpsertUser replaces the user with the same id or appends a new one.
// An unknown role is stored as a plain user.
func UpsertUser(s State, u models.User) State {
	if !u.Role.Valid() {
		u.Role = models.RoleUser
	}
	users := make([]models.User, 0, len(s.Users)+1)
	replaced := false
	for _, existing := range s.Users {
		if existing.ID == u.ID {
			users = append(users, u)
			replaced = true
			continue
		}
		users = append(users, existing)
	}
	if !replaced {
		users = append(users, u)
	}
	s.Users = users
	return s
}

// AppendMessage adds m to the end of the chat log. Messages are never edited.
func AppendMessage(s State, m models.ChatMessage) State {
	msgs := make([]models.ChatMessage, 0, len(s.Messages)+1)
	msgs = append(msgs, s.Messages...)
	s.Messages = append(msgs, m)
	return s
}
