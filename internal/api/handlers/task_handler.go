package handlers

import (
	"net/http"

	"cloud.google.com/go/civil"

	"github.com/nexus/workspace/internal/models"
	"github.com/nexus/workspace/internal/service"
)

type ChecklistItemBody struct {
	ID          string           `json:"id"`
	Text        string           `json:"text" validate:"required,max=500"`
	IsCompleted bool             `json:"isCompleted"`
	Attachments []AttachmentBody `json:"attachments" validate:"dive"`
}

type TaskRequestBody struct {
	ProjectID   string              `json:"projectId"`
	Title       string              `json:"title" validate:"required,max=200"`
	Description string              `json:"description" validate:"max=5000"`
	Status      models.TaskStatus   `json:"status" validate:"omitempty,oneof='To Do' 'In Progress' Review Done"`
	Priority    models.Priority     `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	Category    models.TaskCategory `json:"category" validate:"omitempty,oneof=Development Design Marketing Content Finance Admin HR Other"`
	DueDate     civil.Date          `json:"dueDate"`
	AssigneeIDs []string            `json:"assigneeIds" validate:"dive,required"`
	Checklist   []ChecklistItemBody `json:"checklist" validate:"dive"`
	Attachments []AttachmentBody    `json:"attachments" validate:"dive"`
}

func (b TaskRequestBody) input() service.TaskInput {
	checklist := make([]models.ChecklistItem, 0, len(b.Checklist))
	for _, item := range b.Checklist {
		checklist = append(checklist, models.ChecklistItem{
			ID:          item.ID,
			Text:        item.Text,
			IsCompleted: item.IsCompleted,
			Attachments: attachments(item.Attachments),
		})
	}
	return service.TaskInput{
		ProjectID:   b.ProjectID,
		Title:       b.Title,
		Description: b.Description,
		Status:      b.Status,
		Priority:    b.Priority,
		Category:    b.Category,
		DueDate:     b.DueDate,
		AssigneeIDs: b.AssigneeIDs,
		Checklist:   checklist,
		Attachments: attachments(b.Attachments),
	}
}

type MoveTaskRequestBody struct {
	Status models.TaskStatus `json:"status" validate:"required,oneof='To Do' 'In Progress' Review Done"`
}

type CommentRequestBody struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type BulkDeleteRequestBody struct {
	TaskIDs []string `json:"taskIds" validate:"required,min=1,dive,required"`
}

type BulkStatusRequestBody struct {
	TaskIDs []string          `json:"taskIds" validate:"required,min=1,dive,required"`
	Status  models.TaskStatus `json:"status" validate:"required,oneof='To Do' 'In Progress' Review Done"`
}

type BulkAssignRequestBody struct {
	TaskIDs []string `json:"taskIds" validate:"required,min=1,dive,required"`
	UserID  string   `json:"userId" validate:"required"`
}

type BulkTaskBody struct {
	ID string `json:"id" validate:"required"`
	TaskRequestBody
}

// task rebuilds the whole record; assignees carry only their ids.
func (b BulkTaskBody) task() models.Task {
	in := b.input()
	assignees := make([]models.User, 0, len(in.AssigneeIDs))
	for _, id := range in.AssigneeIDs {
		assignees = append(assignees, models.User{ID: id})
	}
	return models.Task{
		ID:          b.ID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		Category:    in.Category,
		DueDate:     in.DueDate,
		Assignees:   assignees,
		Checklist:   in.Checklist,
		Attachments: in.Attachments,
	}
}

// An empty list is accepted and changes nothing.
type BulkUpdateRequestBody struct {
	Tasks []BulkTaskBody `json:"tasks" validate:"dive"`
}

type TaskHandler struct {
	workspaceService *service.WorkspaceService
}

func NewTaskHandler(workspaceService *service.WorkspaceService) *TaskHandler {
	return &TaskHandler{
		workspaceService: workspaceService,
	}
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	tasks, err := h.workspaceService.VisibleTasks(id)
	if err != nil {
		writeServiceError(w, "get tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tasks": tasks,
	})
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	task, err := h.workspaceService.Task(id, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "get task", err)
		return
	}
	completed, total := task.ChecklistProgress()
	progress := map[string]int{"completed": completed, "total": total}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"task":               task,
		"checklist_progress": progress,
	})
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	var reqBody TaskRequestBody
	if !decodeBody(w, r, &reqBody) {
		return
	}
	if reqBody.ProjectID == "" {
		writeError(w, http.StatusBadRequest, "projectId is required")
		return
	}

	task, err := h.workspaceService.CreateTask(r.Context(), id, reqBody.input())
	if err != nil {
		writeServiceError(w, "create task", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"task": task,
	})
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	var reqBody TaskRequestBody
	if !decodeBody(w, r, &reqBody) {
		return
	}

	task, err := h.workspaceService.UpdateTask(r.Context(), id, r.PathValue("id"), reqBody.input())
	if err != nil {
		writeServiceError(w, "update task", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"task": task,
	})
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	if err := h.workspaceService.DeleteTask(id, r.PathValue("id")); err != nil {
		writeServiceError(w, "delete task", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) MoveTask(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	var reqBody MoveTaskRequestBody
	if !decodeBody(w, r, &reqBody) {
		return
	}

	task, err := h.workspaceService.MoveTask(id, r.PathValue("id"), reqBody.Status)
	if err != nil {
		writeServiceError(w, "move task", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"task": task,
	})
}

func (h *TaskHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	var reqBody CommentRequestBody
	if !decodeBody(w, r, &reqBody) {
		return
	}

	comment, err := h.workspaceService.AddComment(id, r.PathValue("id"), reqBody.Text)
	if err != nil {
		writeServiceError(w, "add comment", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"comment": comment,
	})
}

func (h *TaskHandler) ToggleChecklistItem(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	task, err := h.workspaceService.ToggleChecklistItem(id, r.PathValue("id"), r.PathValue("itemId"))
	if err != nil {
		writeServiceError(w, "toggle checklist item", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"task": task,
	})
}

func (h *TaskHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	var reqBody BulkDeleteRequestBody
	if !decodeBody(w, r, &reqBody) {
		return
	}

	removed, err := h.workspaceService.BulkDelete(id, reqBody.TaskIDs)
	if err != nil {
		writeServiceError(w, "delete tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": removed,
	})
}

func (h *TaskHandler) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	var reqBody BulkStatusRequestBody
	if !decodeBody(w, r, &reqBody) {
		return
	}

	updated, err := h.workspaceService.BulkUpdateStatus(id, reqBody.TaskIDs, reqBody.Status)
	if err != nil {
		writeServiceError(w, "update tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"updated": updated,
	})
}

func (h *TaskHandler) BulkAssign(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	var reqBody BulkAssignRequestBody
	if !decodeBody(w, r, &reqBody) {
		return
	}

	updated, err := h.workspaceService.BulkAssign(id, reqBody.TaskIDs, reqBody.UserID)
	if err != nil {
		writeServiceError(w, "assign tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"updated": updated,
	})
}

// BulkUpdate stores whole task records as sent, last write wins.
func (h *TaskHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	var reqBody BulkUpdateRequestBody
	if !decodeBody(w, r, &reqBody) {
		return
	}

	tasks := make([]models.Task, 0, len(reqBody.Tasks))
	for _, t := range reqBody.Tasks {
		tasks = append(tasks, t.task())
	}

	updated, err := h.workspaceService.BulkUpdate(id, tasks)
	if err != nil {
		writeServiceError(w, "update tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"updated": updated,
	})
}
