package notify

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/nexus/workspace/internal/logging"
	"github.com/nexus/workspace/internal/models"
)

const (
	ReminderDueToday = "due_today"
	ReminderDueSoon  = "due_soon"
	ReminderOverdue  = "overdue"
)

// ReminderLog remembers which reminders were already delivered.
type ReminderLog interface {
	MarkSent(userID, taskID, kind string) (bool, error)
}

type DeadlineChecker struct {
	notifier Notifier
	sent     ReminderLog
}

func NewDeadlineChecker(notifier Notifier, sent ReminderLog) *DeadlineChecker {
	return &DeadlineChecker{notifier: notifier, sent: sent}
}

// Reminder returns the reminder due for a task on today, if any.
func Reminder(task models.Task, today civil.Date) (kind, title, body string, ok bool) {
	if task.Status == models.StatusDone || task.DueDate.IsZero() {
		return "", "", "", false
	}
	switch days := task.DueDate.DaysSince(today); {
	case days == 0:
		return ReminderDueToday, "Task Due Today!",
			fmt.Sprintf("Task %q is due today. Please complete it.", task.Title), true
	case days == 1:
		return ReminderDueSoon, "Task Due Tomorrow",
			fmt.Sprintf("Task %q is due tomorrow.", task.Title), true
	case days < 0:
		return ReminderOverdue, "Task Overdue",
			fmt.Sprintf("Task %q was due on %s.", task.Title, task.DueDate), true
	}
	return "", "", "", false
}

// Check sends the user each pending deadline reminder for the tasks assigned
// to them, at most once per task and kind. It returns how many were sent.
func (c *DeadlineChecker) Check(ctx context.Context, tasks []models.Task, user models.User, today civil.Date) int {
	sent := 0
	for _, task := range tasks {
		if !task.IsAssigned(user.ID) {
			continue
		}
		kind, title, body, ok := Reminder(task, today)
		if !ok {
			continue
		}
		fresh, err := c.sent.MarkSent(user.ID, task.ID, kind)
		if err != nil {
			logging.Component("reminders").WithError(err).WithField("task_id", task.ID).Warn("record reminder failed")
			continue
		}
		if !fresh {
			continue
		}
		c.notifier.Notify(ctx, user, title, body)
		sent++
	}
	return sent
}
