package handlers

import (
	"net/http"

	"github.com/nexus/workspace/internal/models"
	"github.com/nexus/workspace/internal/service"
)

type LoginRequestBody struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password"`
	Name     string `json:"name" validate:"max=80"`
}

type ProfileRequestBody struct {
	Name        string                          `json:"name" validate:"max=80"`
	Email       string                          `json:"email" validate:"omitempty,email"`
	Avatar      string                          `json:"avatar" validate:"omitempty,url"`
	Preferences *models.NotificationPreferences `json:"preferences"`
}

type SessionHandler struct {
	workspaceService *service.WorkspaceService
}

func NewSessionHandler(workspaceService *service.WorkspaceService) *SessionHandler {
	return &SessionHandler{
		workspaceService: workspaceService,
	}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var reqBody LoginRequestBody
	if !decodeBody(w, r, &reqBody) {
		return
	}

	user, err := h.workspaceService.Login(r.Context(), reqBody.Email, reqBody.Name)
	if err != nil {
		writeServiceError(w, "log in", err)
		return
	}

	project, err := h.workspaceService.DefaultProject(user.ID)
	response := map[string]interface{}{
		"user": user,
	}
	if err == nil {
		response["project"] = project
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}
	h.workspaceService.Logout(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	if _, ok := actorID(w, r, h.workspaceService); !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"users": h.workspaceService.Users(),
	})
}

func (h *SessionHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	var reqBody ProfileRequestBody
	if !decodeBody(w, r, &reqBody) {
		return
	}

	user, err := h.workspaceService.UpdateProfile(id, service.ProfileUpdate{
		Name:        reqBody.Name,
		Email:       reqBody.Email,
		Avatar:      reqBody.Avatar,
		Preferences: reqBody.Preferences,
	})
	if err != nil {
		writeServiceError(w, "update profile", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": user,
	})
}
