// Package stats derives dashboard and leaderboard figures from a task list.
// Nothing here is stored; every figure is recomputed from its inputs.
package stats

import (
	"math"
	"sort"

	"cloud.google.com/go/civil"

	"github.com/nexus/workspace/internal/models"
)

const (
	BadgeSpeedster = "Speedster"
	BadgeAchiever  = "Achiever"
	BadgeBusyBee   = "Busy Bee"
	BadgeMember    = "Member"
)

type Performance struct {
	User      models.User `json:"user"`
	Total     int         `json:"total"`
	Completed int         `json:"completed"`
	Rate      int         `json:"rate"`
	Score     float64     `json:"score"`
	Badge     string      `json:"badge"`
}

// percent returns part/whole as a whole percentage, 0 when whole is 0.
func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

// Badge applies the badge rule table. Users without tasks are always members.
func Badge(total, rate int) string {
	if total == 0 {
		return BadgeMember
	}
	switch {
	case rate >= 80 && total > 2:
		return BadgeSpeedster
	case rate >= 50:
		return BadgeAchiever
	case total > 5:
		return BadgeBusyBee
	}
	return BadgeMember
}

func UserPerformance(user models.User, tasks []models.Task) Performance {
	p := Performance{User: user}
	for _, t := range tasks {
		if !t.IsAssigned(user.ID) {
			continue
		}
		p.Total++
		if t.Status == models.StatusDone {
			p.Completed++
		}
	}
	p.Rate = percent(p.Completed, p.Total)
	p.Score = float64(p.Completed)*10 + float64(p.Rate)/10
	p.Badge = Badge(p.Total, p.Rate)
	return p
}

// Leaderboard ranks the users that have at least one task by score, highest
// first. Equal scores keep the order of users.
func Leaderboard(tasks []models.Task, users []models.User) []Performance {
	board := make([]Performance, 0, len(users))
	for _, u := range users {
		p := UserPerformance(u, tasks)
		if p.Total > 0 {
			board = append(board, p)
		}
	}
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Score > board[j].Score
	})
	return board
}

type Overview struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
	Progress  int `json:"progress"`
}

// Summarize counts tasks, completions and tasks still open past their due date.
func Summarize(tasks []models.Task, today civil.Date) Overview {
	o := Overview{Total: len(tasks)}
	for _, t := range tasks {
		if t.Status == models.StatusDone {
			o.Completed++
			continue
		}
		if !t.DueDate.IsZero() && t.DueDate.Before(today) {
			o.Overdue++
		}
	}
	o.Progress = percent(o.Completed, o.Total)
	return o
}

// RecentCompletions returns up to n done tasks, newest id first.
func RecentCompletions(tasks []models.Task, n int) []models.Task {
	done := make([]models.Task, 0)
	for _, t := range tasks {
		if t.Status == models.StatusDone {
			done = append(done, t)
		}
	}
	sort.SliceStable(done, func(i, j int) bool {
		return done[i].ID > done[j].ID
	})
	if len(done) > n {
		done = done[:n]
	}
	return done
}

type TeamSummary struct {
	Team      models.Team               `json:"team"`
	Total     int                       `json:"total"`
	Completed int                       `json:"completed"`
	Progress  int                       `json:"progress"`
	ByStatus  map[models.TaskStatus]int `json:"byStatus"`
	Members   []Performance             `json:"members"`
	Tasks     []models.Task             `json:"tasks"`
}

// SummarizeTeam rolls up the tasks assigned to any member of team.
func SummarizeTeam(team models.Team, tasks []models.Task) TeamSummary {
	s := TeamSummary{
		Team:     team,
		ByStatus: make(map[models.TaskStatus]int, len(models.Statuses)),
		Tasks:    make([]models.Task, 0),
	}
	for _, st := range models.Statuses {
		s.ByStatus[st] = 0
	}
	for _, t := range tasks {
		if !assignedToAny(t, team.Members) {
			continue
		}
		s.Tasks = append(s.Tasks, t)
		s.ByStatus[t.Status]++
		if t.Status == models.StatusDone {
			s.Completed++
		}
	}
	s.Total = len(s.Tasks)
	s.Progress = percent(s.Completed, s.Total)
	s.Members = make([]Performance, 0, len(team.Members))
	for _, m := range team.Members {
		s.Members = append(s.Members, UserPerformance(m, tasks))
	}
	return s
}

func assignedToAny(t models.Task, users []models.User) bool {
	for _, u := range users {
		if t.IsAssigned(u.ID) {
			return true
		}
	}
	return false
}
