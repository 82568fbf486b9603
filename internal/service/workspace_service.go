package service

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/civil"

	"github.com/nexus/workspace/internal/access"
	"github.com/nexus/workspace/internal/board"
	"github.com/nexus/workspace/internal/logging"
	"github.com/nexus/workspace/internal/models"
	"github.com/nexus/workspace/internal/notify"
	"github.com/nexus/workspace/internal/repository"
	"github.com/nexus/workspace/internal/seed"
)

// WorkspaceService owns the in-memory board. Each operation derives the next
// state from the current one under a single lock, so concurrent requests see
// the same sequence of states a single client would.
type WorkspaceService struct {
	mu       sync.Mutex
	state    board.State
	sessions map[string]struct{}

	notifier      notify.Notifier
	deadlines     *notify.DeadlineChecker
	notifications *repository.NotificationRepository
	assistant     *AssistantService
	now           func() time.Time
}

func NewWorkspaceService(
	initial board.State,
	notifier notify.Notifier,
	deadlines *notify.DeadlineChecker,
	notifications *repository.NotificationRepository,
	assistant *AssistantService,
) *WorkspaceService {
	return &WorkspaceService{
		state:         initial,
		sessions:      make(map[string]struct{}),
		notifier:      notifier,
		deadlines:     deadlines,
		notifications: notifications,
		assistant:     assistant,
		now:           time.Now,
	}
}

func (s *WorkspaceService) today() civil.Date {
	return civil.DateOf(s.now())
}

func (s *WorkspaceService) snapshot() board.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// update replaces the state with fn's result unless fn fails.
func (s *WorkspaceService) update(fn func(board.State) (board.State, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.state)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

func findActor(st board.State, actorID string) (models.User, error) {
	actor, ok := board.FindUser(st, actorID)
	if !ok {
		return models.User{}, fmt.Errorf("user %s: %w", actorID, ErrNotFound)
	}
	return actor, nil
}

// visibleProject returns the project when actor is one of its members.
func visibleProject(st board.State, actor models.User, projectID string) (models.Project, error) {
	project, ok := board.FindProject(st, projectID)
	if !ok {
		return models.Project{}, fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	if !project.HasMember(actor.ID) {
		return models.Project{}, fmt.Errorf("project %s: %w", projectID, ErrForbidden)
	}
	return project, nil
}

func requireCapability(user models.User, c access.Capability) error {
	if !access.Can(user, c) {
		return fmt.Errorf("%s cannot %s: %w", user.Role, c, ErrForbidden)
	}
	return nil
}

func resolveUsers(st board.State, ids []string) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		u, ok := board.FindUser(st, id)
		if !ok {
			return nil, fmt.Errorf("user %s: %w", id, ErrInvalid)
		}
		users = append(users, u)
	}
	return models.UniqueUsers(users), nil
}

// Login starts a session. The seeded admin address signs in as the super
// admin, a supplied name registers a new member, and anything else signs in
// as the demo user.
func (s *WorkspaceService) Login(ctx context.Context, email, name string) (models.User, error) {
	var user models.User
	err := s.update(func(st board.State) (board.State, error) {
		switch name = strings.TrimSpace(name); {
		case strings.EqualFold(strings.TrimSpace(email), seed.AdminEmail):
			user, _ = board.FindUser(st, seed.DianaID)
		case name != "":
			user = models.User{
				ID:          models.NewID(),
				Name:        name,
				Email:       strings.TrimSpace(email),
				Role:        models.RoleUser,
				Avatar:      "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random",
				Preferences: &models.NotificationPreferences{Email: true, Desktop: true},
			}
			st = board.UpsertUser(st, user)
		default:
			user, _ = board.FindUser(st, seed.PeterID)
		}
		if user.ID == "" {
			return st, fmt.Errorf("login: %w", ErrNotFound)
		}
		s.sessions[user.ID] = struct{}{}
		return st, nil
	})
	if err != nil {
		return models.User{}, err
	}

	logging.Component("session").WithField("user_id", user.ID).Info("user logged in")
	s.checkDeadlines(ctx, user)
	return user, nil
}

func (s *WorkspaceService) Logout(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Users lists everyone, most privileged roles first.
func (s *WorkspaceService) Users() []models.User {
	users := append([]models.User(nil), s.snapshot().Users...)
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Role.Rank() < users[j].Role.Rank()
	})
	return users
}

func (s *WorkspaceService) User(id string) (models.User, error) {
	return findActor(s.snapshot(), id)
}

type ProfileUpdate struct {
	Name        string
	Email       string
	Avatar      string
	Preferences *models.NotificationPreferences
}

// UpdateProfile changes the acting user's own settings. Empty fields keep
// their current value; roles are never changed here.
func (s *WorkspaceService) UpdateProfile(actorID string, in ProfileUpdate) (models.User, error) {
	var user models.User
	err := s.update(func(st board.State) (board.State, error) {
		actor, err := findActor(st, actorID)
		if err != nil {
			return st, err
		}
		if name := strings.TrimSpace(in.Name); name != "" {
			actor.Name = name
		}
		if in.Email != "" {
			actor.Email = strings.TrimSpace(in.Email)
		}
		if in.Avatar != "" {
			actor.Avatar = in.Avatar
		}
		if in.Preferences != nil {
			prefs := *in.Preferences
			actor.Preferences = &prefs
		}
		user = actor
		return board.UpsertUser(st, actor), nil
	})
	return user, err
}

func (s *WorkspaceService) VisibleProjects(actorID string) ([]models.Project, error) {
	st := s.snapshot()
	actor, err := findActor(st, actorID)
	if err != nil {
		return nil, err
	}
	return board.VisibleProjects(actor, st.Projects), nil
}

// DefaultProject picks the workspace to open for the user.
func (s *WorkspaceService) DefaultProject(actorID string) (models.Project, error) {
	visible, err := s.VisibleProjects(actorID)
	if err != nil {
		return models.Project{}, err
	}
	p, ok := board.DefaultProject(visible)
	if !ok {
		return models.Project{}, fmt.Errorf("default project: %w", ErrNotFound)
	}
	return p, nil
}

type ProjectInput struct {
	Name        string
	Description string
	Color       string
	MemberIDs   []string
}

func (s *WorkspaceService) AddProject(actorID string, in ProjectInput) (models.Project, error) {
	var project models.Project
	err := s.update(func(st board.State) (board.State, error) {
		actor, err := findActor(st, actorID)
		if err != nil {
			return st, err
		}
		if err := requireCapability(actor, access.CreateWorkspace); err != nil {
			return st, err
		}
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return st, fmt.Errorf("project name is required: %w", ErrInvalid)
		}
		members, err := resolveUsers(st, in.MemberIDs)
		if err != nil {
			return st, err
		}

		project = models.Project{
			ID:          models.NewID(),
			Name:        name,
			Description: strings.TrimSpace(in.Description),
			Members:     members,
			CreatedAt:   s.now(),
			Color:       in.Color,
		}
		st = board.AddProject(st, project, actor)
		project, _ = board.FindProject(st, project.ID)
		return st, nil
	})
	return project, err
}

func (s *WorkspaceService) ToggleArchive(actorID, projectID string) (models.Project, error) {
	var project models.Project
	err := s.update(func(st board.State) (board.State, error) {
		actor, err := findActor(st, actorID)
		if err != nil {
			return st, err
		}
		if err := requireCapability(actor, access.ArchiveWorkspace); err != nil {
			return st, err
		}
		if _, err := visibleProject(st, actor, projectID); err != nil {
			return st, err
		}
		st = board.ToggleArchive(st, projectID)
		project, _ = board.FindProject(st, projectID)
		return st, nil
	})
	return project, err
}

func (s *WorkspaceService) Teams() []models.Team {
	return append([]models.Team(nil), s.snapshot().Teams...)
}

type TeamInput struct {
	Name        string
	Description string
	Color       string
	MemberIDs   []string
}

func (s *WorkspaceService) AddTeam(actorID string, in TeamInput) (models.Team, error) {
	var team models.Team
	err := s.update(func(st board.State) (board.State, error) {
		actor, err := findActor(st, actorID)
		if err != nil {
			return st, err
		}
		if err := requireCapability(actor, access.ManageTeam); err != nil {
			return st, err
		}
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return st, fmt.Errorf("team name is required: %w", ErrInvalid)
		}
		members, err := resolveUsers(st, in.MemberIDs)
		if err != nil {
			return st, err
		}
		team = models.Team{
			ID:          models.NewID(),
			Name:        name,
			Description: strings.TrimSpace(in.Description),
			Members:     members,
			Color:       in.Color,
		}
		return board.AddTeam(st, team), nil
	})
	return team, err
}

func (s *WorkspaceService) DeleteTeam(actorID, teamID string) error {
	return s.update(func(st board.State) (board.State, error) {
		actor, err := findActor(st, actorID)
		if err != nil {
			return st, err
		}
		if err := requireCapability(actor, access.DeleteTeam); err != nil {
			return st, err
		}
		if _, ok := board.FindTeam(st, teamID); !ok {
			return st, fmt.Errorf("team %s: %w", teamID, ErrNotFound)
		}
		return board.DeleteTeam(st, teamID), nil
	})
}

func (s *WorkspaceService) AddTeamMember(actorID, teamID, userID string) (models.Team, error) {
	var team models.Team
	err := s.update(func(st board.State) (board.State, error) {
		actor, err := findActor(st, actorID)
		if err != nil {
			return st, err
		}
		if err := requireCapability(actor, access.ManageTeam); err != nil {
			return st, err
		}
		if _, ok := board.FindTeam(st, teamID); !ok {
			return st, fmt.Errorf("team %s: %w", teamID, ErrNotFound)
		}
		if _, ok := board.FindUser(st, userID); !ok {
			return st, fmt.Errorf("user %s: %w", userID, ErrNotFound)
		}
		st = board.AddTeamMember(st, teamID, userID)
		team, _ = board.FindTeam(st, teamID)
		return st, nil
	})
	return team, err
}
