package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nexus/workspace/internal/board"
	"github.com/nexus/workspace/internal/logging"
	"github.com/nexus/workspace/internal/models"
	"github.com/nexus/workspace/internal/repository"
	"github.com/nexus/workspace/internal/stats"
)

const recentCompletions = 5

type Dashboard struct {
	Overview    stats.Overview      `json:"overview"`
	Me          stats.Performance   `json:"me"`
	Recent      []models.Task       `json:"recent"`
	Leaderboard []stats.Performance `json:"leaderboard"`
}

// Dashboard summarises the tasks of every workspace the actor can see.
func (s *WorkspaceService) Dashboard(actorID string) (*Dashboard, error) {
	st := s.snapshot()
	actor, err := findActor(st, actorID)
	if err != nil {
		return nil, err
	}
	tasks := board.VisibleTasks(st.Tasks, board.VisibleProjects(actor, st.Projects))
	return &Dashboard{
		Overview:    stats.Summarize(tasks, s.today()),
		Me:          stats.UserPerformance(actor, tasks),
		Recent:      stats.RecentCompletions(tasks, recentCompletions),
		Leaderboard: stats.Leaderboard(tasks, st.Users),
	}, nil
}

// Leaderboard ranks every user over every task.
func (s *WorkspaceService) Leaderboard() []stats.Performance {
	st := s.snapshot()
	return stats.Leaderboard(st.Tasks, st.Users)
}

func (s *WorkspaceService) TeamSummary(actorID, teamID string) (*stats.TeamSummary, error) {
	st := s.snapshot()
	if _, err := findActor(st, actorID); err != nil {
		return nil, err
	}
	team, ok := board.FindTeam(st, teamID)
	if !ok {
		return nil, fmt.Errorf("team %s: %w", teamID, ErrNotFound)
	}
	summary := stats.SummarizeTeam(team, st.Tasks)
	return &summary, nil
}

func (s *WorkspaceService) Notifications(actorID string) ([]repository.Notification, error) {
	if _, err := s.User(actorID); err != nil {
		return nil, err
	}
	notifications, err := s.notifications.ListByUser(actorID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

func (s *WorkspaceService) MarkNotificationRead(actorID, id string) error {
	ok, err := s.notifications.MarkRead(actorID, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if !ok {
		return fmt.Errorf("notification %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *WorkspaceService) DismissNotification(actorID, id string) error {
	if err := s.notifications.Delete(actorID, id); err != nil {
		return fmt.Errorf("dismiss notification: %w", err)
	}
	return nil
}

func (s *WorkspaceService) checkDeadlines(ctx context.Context, user models.User) int {
	if s.deadlines == nil {
		return 0
	}
	return s.deadlines.Check(ctx, s.snapshot().Tasks, user, s.today())
}

// CheckDeadlines sends pending deadline reminders to every signed-in user.
func (s *WorkspaceService) CheckDeadlines(ctx context.Context) int {
	s.mu.Lock()
	users := make([]models.User, 0, len(s.sessions))
	for id := range s.sessions {
		if u, ok := board.FindUser(s.state, id); ok {
			users = append(users, u)
		}
	}
	s.mu.Unlock()

	sent := 0
	for _, u := range users {
		sent += s.checkDeadlines(ctx, u)
	}
	return sent
}

// RunReminders checks deadlines every interval until ctx is done.
func (s *WorkspaceService) RunReminders(ctx context.Context, interval time.Duration) {
	log := logging.Component("reminders")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Infof("deadline reminders every %s", interval)
	for {
		select {
		case <-ctx.Done():
			log.Info("deadline reminders stopped")
			return
		case <-ticker.C:
			if n := s.CheckDeadlines(ctx); n > 0 {
				log.WithField("sent", n).Info("deadline reminders sent")
			}
		}
	}
}
