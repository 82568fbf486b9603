// Package notify delivers user notifications over the desktop inbox and
// email, honouring each user's preferences. Delivery is fire-and-forget:
// failures are logged and never reach the caller.
package notify

import (
	"context"
	"fmt"

	"github.com/nexus/workspace/internal/logging"
	"github.com/nexus/workspace/internal/models"
	"github.com/nexus/workspace/internal/repository"
)

// Notifier is what the workspace service needs from this package.
type Notifier interface {
	Notify(ctx context.Context, user models.User, title, body string)
	NotifyAssignment(ctx context.Context, task models.Task, assignee, actor models.User)
}

// Inbox stores desktop notifications for later retrieval by the client.
type Inbox interface {
	Create(n *repository.Notification) error
}

type Mailer interface {
	Send(ctx context.Context, to models.User, subject, body string) error
}

type Dispatcher struct {
	inbox  Inbox
	mailer Mailer
}

func NewDispatcher(inbox Inbox, mailer Mailer) *Dispatcher {
	return &Dispatcher{inbox: inbox, mailer: mailer}
}

func (d *Dispatcher) Notify(ctx context.Context, user models.User, title, body string) {
	prefs := user.NotificationPrefs()
	log := logging.Component("notify").WithField("user_id", user.ID)

	if prefs.Desktop && d.inbox != nil {
		err := d.inbox.Create(&repository.Notification{UserID: user.ID, Title: title, Body: body})
		if err != nil {
			log.WithError(err).Warn("desktop notification failed")
		}
	}

	if prefs.Email && d.mailer != nil {
		if err := d.mailer.Send(ctx, user, title, body); err != nil {
			log.WithError(err).Warn("email notification failed")
		}
	}
}

func (d *Dispatcher) NotifyAssignment(ctx context.Context, task models.Task, assignee, actor models.User) {
	title, body := AssignmentMessage(task, actor)
	d.Notify(ctx, assignee, title, body)
}

// AssignmentMessage renders the notification sent to a new assignee.
func AssignmentMessage(task models.Task, actor models.User) (title, body string) {
	title = fmt.Sprintf("New Task Assigned: %s", task.Title)
	body = fmt.Sprintf("%s assigned you to a task in workspace. Due: %s", actor.Name, task.DueDate)
	return title, body
}
