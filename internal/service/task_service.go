package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/nexus/workspace/internal/access"
	"github.com/nexus/workspace/internal/board"
	"github.com/nexus/workspace/internal/models"
)

type TaskInput struct {
	ProjectID   string
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.Priority
	Category    models.TaskCategory
	DueDate     civil.Date
	AssigneeIDs []string
	Checklist   []models.ChecklistItem
	Attachments []models.Attachment
}

type assignment struct {
	task     models.Task
	assignee models.User
}

func (s *WorkspaceService) notifyAssignments(ctx context.Context, actor models.User, pending []assignment) {
	if s.notifier == nil {
		return
	}
	for _, a := range pending {
		s.notifier.NotifyAssignment(ctx, a.task, a.assignee, actor)
	}
}

// ProjectTasks lists the tasks of one workspace. The global project id lists
// every task the actor can see.
func (s *WorkspaceService) ProjectTasks(actorID, projectID string) ([]models.Task, error) {
	st := s.snapshot()
	actor, err := findActor(st, actorID)
	if err != nil {
		return nil, err
	}
	if projectID == models.GlobalProjectID {
		return board.VisibleTasks(st.Tasks, board.VisibleProjects(actor, st.Projects)), nil
	}
	if _, err := visibleProject(st, actor, projectID); err != nil {
		return nil, err
	}
	return board.ProjectTasks(st.Tasks, projectID), nil
}

func (s *WorkspaceService) VisibleTasks(actorID string) ([]models.Task, error) {
	return s.ProjectTasks(actorID, models.GlobalProjectID)
}

func (s *WorkspaceService) Task(actorID, taskID string) (models.Task, error) {
	st := s.snapshot()
	actor, err := findActor(st, actorID)
	if err != nil {
		return models.Task{}, err
	}
	task, ok := board.FindTask(st, taskID)
	if !ok {
		return models.Task{}, fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}
	if _, err := visibleProject(st, actor, task.ProjectID); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// writableProject returns the project when actor may add or change tasks in it.
func writableProject(st board.State, actor models.User, projectID string) (models.Project, error) {
	project, err := visibleProject(st, actor, projectID)
	if err != nil {
		return models.Project{}, err
	}
	if project.IsArchived {
		return models.Project{}, fmt.Errorf("project %s is archived: %w", projectID, ErrForbidden)
	}
	return project, nil
}

// editableTask returns the task and its project when actor may change it.
func editableTask(st board.State, actor models.User, taskID string) (models.Task, models.Project, error) {
	task, ok := board.FindTask(st, taskID)
	if !ok {
		return models.Task{}, models.Project{}, fmt.Errorf("task %s: %w", taskID, ErrNotFound)
	}
	project, err := visibleProject(st, actor, task.ProjectID)
	if err != nil {
		return models.Task{}, models.Project{}, err
	}
	if !access.CanEditTask(actor, task, project) {
		return models.Task{}, models.Project{}, fmt.Errorf("edit task %s: %w", taskID, ErrForbidden)
	}
	return task, project, nil
}

// projectAssignees resolves ids to members of project. Users without the
// assign capability may only add themselves.
func projectAssignees(actor models.User, project models.Project, ids []string, existing []models.User) ([]models.User, error) {
	assignees := make([]models.User, 0, len(ids))
	for _, id := range ids {
		var found bool
		for _, m := range project.Members {
			if m.ID == id {
				assignees = append(assignees, m)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("user %s is not a member of %s: %w", id, project.Name, ErrInvalid)
		}
	}
	assignees = models.UniqueUsers(assignees)

	if !access.Can(actor, access.AssignOthers) {
		for _, u := range board.AddedAssignees(existing, assignees) {
			if u.ID != actor.ID {
				return nil, fmt.Errorf("assign %s: %w", u.Name, ErrForbidden)
			}
		}
	}
	return assignees, nil
}

func normalizeChecklist(items []models.ChecklistItem) ([]models.ChecklistItem, error) {
	out := make([]models.ChecklistItem, 0, len(items))
	for _, item := range items {
		item.Text = strings.TrimSpace(item.Text)
		if item.Text == "" {
			return nil, fmt.Errorf("checklist item text is required: %w", ErrInvalid)
		}
		if item.ID == "" {
			item.ID = models.NewID()
		}
		item.Attachments = append([]models.Attachment(nil), item.Attachments...)
		out = append(out, item)
	}
	return out, nil
}

func checkEnums(status models.TaskStatus, priority models.Priority, category models.TaskCategory) error {
	if !status.Valid() {
		return fmt.Errorf("status %q: %w", status, ErrInvalid)
	}
	if !priority.Valid() {
		return fmt.Errorf("priority %q: %w", priority, ErrInvalid)
	}
	if !category.Valid() {
		return fmt.Errorf("category %q: %w", category, ErrInvalid)
	}
	return nil
}

// applyTaskInput returns prev changed by in, moved to project. Every edit
// path goes through here so stored tasks always satisfy the same rules.
func applyTaskInput(actor models.User, project models.Project, prev models.Task, in TaskInput) (models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Task{}, fmt.Errorf("task title is required: %w", ErrInvalid)
	}

	task := prev.Clone()
	task.ProjectID = project.ID
	task.Title = title
	task.Description = strings.TrimSpace(in.Description)
	if in.Status != "" {
		task.Status = in.Status
	}
	if in.Priority != "" {
		task.Priority = in.Priority
	}
	if in.Category != "" {
		task.Category = in.Category
	}
	if !in.DueDate.IsZero() {
		task.DueDate = in.DueDate
	}
	if err := checkEnums(task.Status, task.Priority, task.Category); err != nil {
		return models.Task{}, err
	}

	var err error
	if task.Assignees, err = projectAssignees(actor, project, in.AssigneeIDs, prev.Assignees); err != nil {
		return models.Task{}, err
	}
	if task.Checklist, err = normalizeChecklist(in.Checklist); err != nil {
		return models.Task{}, err
	}
	task.Attachments = append([]models.Attachment{}, in.Attachments...)
	return task, nil
}

// inputOf turns a whole task record into the fields an edit may change.
func inputOf(t models.Task) TaskInput {
	ids := make([]string, 0, len(t.Assignees))
	for _, u := range t.Assignees {
		ids = append(ids, u.ID)
	}
	return TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		Category:    t.Category,
		DueDate:     t.DueDate,
		AssigneeIDs: ids,
		Checklist:   t.Checklist,
		Attachments: t.Attachments,
	}
}

// CreateTask adds a task to a workspace and notifies each assignee.
func (s *WorkspaceService) CreateTask(ctx context.Context, actorID string, in TaskInput) (models.Task, error) {
	var (
		actor   models.User
		created models.Task
	)
	err := s.update(func(st board.State) (board.State, error) {
		var err error
		if actor, err = findActor(st, actorID); err != nil {
			return st, err
		}
		title := strings.TrimSpace(in.Title)
		if title == "" {
			return st, fmt.Errorf("task title is required: %w", ErrInvalid)
		}
		project, err := writableProject(st, actor, in.ProjectID)
		if err != nil {
			return st, err
		}

		task := models.Task{
			ID:          models.NewID(),
			ProjectID:   project.ID,
			Title:       title,
			Description: strings.TrimSpace(in.Description),
			Status:      in.Status,
			Priority:    in.Priority,
			Category:    in.Category,
			DueDate:     in.DueDate,
			Attachments: append([]models.Attachment{}, in.Attachments...),
			Comments:    []models.Comment{},
		}
		if task.Status == "" {
			task.Status = models.StatusTodo
		}
		if task.Priority == "" {
			task.Priority = models.PriorityMedium
		}
		if task.Category == "" {
			task.Category = models.CategoryOther
		}
		if task.DueDate.IsZero() {
			task.DueDate = s.today()
		}
		if err := checkEnums(task.Status, task.Priority, task.Category); err != nil {
			return st, err
		}
		if task.Assignees, err = projectAssignees(actor, project, in.AssigneeIDs, nil); err != nil {
			return st, err
		}
		if task.Checklist, err = normalizeChecklist(in.Checklist); err != nil {
			return st, err
		}

		created = task
		return board.CreateTask(st, task), nil
	})
	if err != nil {
		return models.Task{}, err
	}

	pending := make([]assignment, 0, len(created.Assignees))
	for _, a := range created.Assignees {
		pending = append(pending, assignment{task: created, assignee: a})
	}
	s.notifyAssignments(ctx, actor, pending)
	return created, nil
}

// UpdateTask replaces a task with in, keeping its id and comments. Only
// assignees that were not on the task before are notified.
func (s *WorkspaceService) UpdateTask(ctx context.Context, actorID, taskID string, in TaskInput) (models.Task, error) {
	var (
		actor   models.User
		updated models.Task
		added   []models.User
	)
	err := s.update(func(st board.State) (board.State, error) {
		var err error
		if actor, err = findActor(st, actorID); err != nil {
			return st, err
		}
		prev, project, err := editableTask(st, actor, taskID)
		if err != nil {
			return st, err
		}
		if in.ProjectID != "" && in.ProjectID != prev.ProjectID {
			if project, err = writableProject(st, actor, in.ProjectID); err != nil {
				return st, err
			}
		}
		task, err := applyTaskInput(actor, project, prev, in)
		if err != nil {
			return st, err
		}

		updated = task
		added = board.AddedAssignees(prev.Assignees, task.Assignees)
		return board.UpdateTask(st, task), nil
	})
	if err != nil {
		return models.Task{}, err
	}

	pending := make([]assignment, 0, len(added))
	for _, a := range added {
		pending = append(pending, assignment{task: updated, assignee: a})
	}
	s.notifyAssignments(ctx, actor, pending)
	return updated, nil
}

// DeleteTask removes a task. Deleting a task that no longer exists succeeds.
func (s *WorkspaceService) DeleteTask(actorID, taskID string) error {
	return s.update(func(st board.State) (board.State, error) {
		actor, err := findActor(st, actorID)
		if err != nil {
			return st, err
		}
		if err := requireCapability(actor, access.DeleteTask); err != nil {
			return st, err
		}
		task, ok := board.FindTask(st, taskID)
		if !ok {
			return st, nil
		}
		if _, err := writableProject(st, actor, task.ProjectID); err != nil {
			return st, err
		}
		return board.DeleteTask(st, taskID), nil
	})
}

// BulkDelete removes the listed tasks the actor can reach and returns how
// many were removed. Unknown ids and tasks of archived or foreign projects
// are skipped.
func (s *WorkspaceService) BulkDelete(actorID string, ids []string) (int, error) {
	var removed int
	err := s.update(func(st board.State) (board.State, error) {
		actor, err := findActor(st, actorID)
		if err != nil {
			return st, err
		}
		if err := requireCapability(actor, access.BulkDelete); err != nil {
			return st, err
		}
		drop := make([]string, 0, len(ids))
		for _, id := range ids {
			task, ok := board.FindTask(st, id)
			if !ok {
				continue
			}
			if _, err := writableProject(st, actor, task.ProjectID); err != nil {
				continue
			}
			drop = append(drop, id)
		}
		next := board.BulkDelete(st, drop)
		removed = len(st.Tasks) - len(next.Tasks)
		return next, nil
	})
	return removed, err
}

// BulkUpdate stores each given task over the record with the same id, under
// the same rules as UpdateTask. Records that break them, tasks the actor may
// not edit and unknown ids are skipped; nobody is notified.
func (s *WorkspaceService) BulkUpdate(actorID string, tasks []models.Task) (int, error) {
	latest := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		latest[t.ID] = t
	}
	return s.bulkApply(actorID, taskIDs(tasks), func(st board.State, actor models.User, prev models.Task) (models.Task, bool) {
		project, _ := board.FindProject(st, prev.ProjectID)
		task, err := applyTaskInput(actor, project, prev, inputOf(latest[prev.ID]))
		if err != nil {
			return prev, false
		}
		return task, true
	})
}

func (s *WorkspaceService) BulkUpdateStatus(actorID string, ids []string, status models.TaskStatus) (int, error) {
	if !status.Valid() {
		return 0, fmt.Errorf("status %q: %w", status, ErrInvalid)
	}
	return s.bulkApply(actorID, ids, func(_ board.State, _ models.User, prev models.Task) (models.Task, bool) {
		task := prev.Clone()
		task.Status = status
		return task, true
	})
}

// BulkAssign adds userID to every listed task whose project the user belongs
// to. Tasks that already have the user are left alone.
func (s *WorkspaceService) BulkAssign(actorID string, ids []string, userID string) (int, error) {
	return s.bulkApply(actorID, ids, func(st board.State, actor models.User, prev models.Task) (models.Task, bool) {
		if prev.IsAssigned(userID) {
			return prev, false
		}
		if userID != actor.ID && !access.Can(actor, access.AssignOthers) {
			return prev, false
		}
		project, _ := board.FindProject(st, prev.ProjectID)
		for _, m := range project.Members {
			if m.ID == userID {
				task := prev.Clone()
				task.Assignees = append(task.Assignees, m)
				return task, true
			}
		}
		return prev, false
	})
}

type bulkFunc func(st board.State, actor models.User, prev models.Task) (models.Task, bool)

func (s *WorkspaceService) bulkApply(actorID string, ids []string, fn bulkFunc) (int, error) {
	var changed int
	err := s.update(func(st board.State) (board.State, error) {
		actor, err := findActor(st, actorID)
		if err != nil {
			return st, err
		}
		updates := make([]models.Task, 0, len(ids))
		seen := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			prev, _, err := editableTask(st, actor, id)
			if err != nil {
				continue
			}
			if next, ok := fn(st, actor, prev); ok {
				updates = append(updates, next)
			}
		}
		changed = len(updates)
		return board.BulkUpdate(st, updates), nil
	})
	return changed, err
}

func taskIDs(tasks []models.Task) []string {
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

// MoveTask sets a task's status, as when a card is dropped on another column.
func (s *WorkspaceService) MoveTask(actorID, taskID string, status models.TaskStatus) (models.Task, error) {
	if !status.Valid() {
		return models.Task{}, fmt.Errorf("status %q: %w", status, ErrInvalid)
	}
	var moved models.Task
	err := s.update(func(st board.State) (board.State, error) {
		actor, err := findActor(st, actorID)
		if err != nil {
			return st, err
		}
		prev, _, err := editableTask(st, actor, taskID)
		if err != nil {
			return st, err
		}
		moved = prev.Clone()
		moved.Status = status
		return board.UpdateTask(st, moved), nil
	})
	return moved, err
}

// AddComment appends a comment by the actor. Any member of an active
// workspace may comment.
func (s *WorkspaceService) AddComment(actorID, taskID, text string) (models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, fmt.Errorf("comment text is required: %w", ErrInvalid)
	}
	var comment models.Comment
	err := s.update(func(st board.State) (board.State, error) {
		actor, err := findActor(st, actorID)
		if err != nil {
			return st, err
		}
		prev, ok := board.FindTask(st, taskID)
		if !ok {
			return st, fmt.Errorf("task %s: %w", taskID, ErrNotFound)
		}
		if _, err := writableProject(st, actor, prev.ProjectID); err != nil {
			return st, err
		}
		comment = models.Comment{
			ID:         models.NewID(),
			SenderID:   actor.ID,
			SenderName: actor.Name,
			Avatar:     actor.Avatar,
			Text:       text,
			Timestamp:  s.now().Format(time.RFC3339),
		}
		task := prev.Clone()
		task.Comments = append(task.Comments, comment)
		return board.UpdateTask(st, task), nil
	})
	return comment, err
}

func (s *WorkspaceService) ToggleChecklistItem(actorID, taskID, itemID string) (models.Task, error) {
	var toggled models.Task
	err := s.update(func(st board.State) (board.State, error) {
		actor, err := findActor(st, actorID)
		if err != nil {
			return st, err
		}
		prev, _, err := editableTask(st, actor, taskID)
		if err != nil {
			return st, err
		}
		task := prev.Clone()
		found := false
		for i := range task.Checklist {
			if task.Checklist[i].ID == itemID {
				task.Checklist[i].IsCompleted = !task.Checklist[i].IsCompleted
				found = true
			}
		}
		if !found {
			return st, fmt.Errorf("checklist item %s: %w", itemID, ErrNotFound)
		}
		toggled = task
		return board.UpdateTask(st, task), nil
	})
	return toggled, err
}

// GenerateTasks asks the assistant for a plan and files each suggestion as an
// unassigned To Do task due today.
func (s *WorkspaceService) GenerateTasks(ctx context.Context, actorID, projectID, description string) ([]models.Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("description is required: %w", ErrInvalid)
	}
	st := s.snapshot()
	actor, err := findActor(st, actorID)
	if err != nil {
		return nil, err
	}
	if _, err := writableProject(st, actor, projectID); err != nil {
		return nil, err
	}

	suggestions := s.assistant.SuggestTasks(ctx, description)

	created := make([]models.Task, 0, len(suggestions))
	err = s.update(func(st board.State) (board.State, error) {
		// the workspace may have been archived while the assistant was working
		if _, err := writableProject(st, actor, projectID); err != nil {
			return st, err
		}
		today := s.today()
		for _, sg := range suggestions {
			task := models.Task{
				ID:          models.NewID(),
				ProjectID:   projectID,
				Title:       sg.Title,
				Description: sg.Description,
				Status:      models.StatusTodo,
				Priority:    sg.Priority,
				Category:    models.CategoryDevelopment,
				DueDate:     today,
				Assignees:   []models.User{},
				Attachments: []models.Attachment{},
				Checklist:   []models.ChecklistItem{},
				Comments:    []models.Comment{},
			}
			st = board.CreateTask(st, task)
			created = append(created, task)
		}
		return st, nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
