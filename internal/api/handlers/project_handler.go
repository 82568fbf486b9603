package handlers

import (
	"net/http"

	"github.com/nexus/workspace/internal/service"
)

type ProjectRequestBody struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Description string   `json:"description" validate:"max=2000"`
	Color       string   `json:"color"`
	MemberIDs   []string `json:"memberIds" validate:"dive,required"`
}

type SuggestionsRequestBody struct {
	Description string `json:"description" validate:"required,max=2000"`
}

type ProjectHandler struct {
	workspaceService *service.WorkspaceService
}

func NewProjectHandler(workspaceService *service.WorkspaceService) *ProjectHandler {
	return &ProjectHandler{
		workspaceService: workspaceService,
	}
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	projects, err := h.workspaceService.VisibleProjects(id)
	if err != nil {
		writeServiceError(w, "get projects", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"projects": projects,
	})
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	var reqBody ProjectRequestBody
	if !decodeBody(w, r, &reqBody) {
		return
	}

	project, err := h.workspaceService.AddProject(id, service.ProjectInput{
		Name:        reqBody.Name,
		Description: reqBody.Description,
		Color:       reqBody.Color,
		MemberIDs:   reqBody.MemberIDs,
	})
	if err != nil {
		writeServiceError(w, "create project", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"project": project,
	})
}

func (h *ProjectHandler) ToggleArchive(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	project, err := h.workspaceService.ToggleArchive(id, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "archive project", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"project": project,
	})
}

func (h *ProjectHandler) ListProjectTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	tasks, err := h.workspaceService.ProjectTasks(id, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "get project tasks", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tasks": tasks,
	})
}

// GenerateTasks files the assistant's plan for a description as new tasks.
func (h *ProjectHandler) GenerateTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	var reqBody SuggestionsRequestBody
	if !decodeBody(w, r, &reqBody) {
		return
	}

	tasks, err := h.workspaceService.GenerateTasks(r.Context(), id, r.PathValue("id"), reqBody.Description)
	if err != nil {
		writeServiceError(w, "generate tasks", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"tasks": tasks,
		"count": len(tasks),
	})
}
