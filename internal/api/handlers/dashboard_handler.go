package handlers

import (
	"net/http"

	"github.com/nexus/workspace/internal/service"
)

type DashboardHandler struct {
	workspaceService *service.WorkspaceService
}

func NewDashboardHandler(workspaceService *service.WorkspaceService) *DashboardHandler {
	return &DashboardHandler{
		workspaceService: workspaceService,
	}
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	dashboard, err := h.workspaceService.Dashboard(id)
	if err != nil {
		writeServiceError(w, "get dashboard", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dashboard": dashboard,
	})
}

func (h *DashboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := actorID(w, r, h.workspaceService); !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"leaderboard": h.workspaceService.Leaderboard(),
	})
}

func (h *DashboardHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	notifications, err := h.workspaceService.Notifications(id)
	if err != nil {
		writeServiceError(w, "get notifications", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
	})
}

func (h *DashboardHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	if err := h.workspaceService.MarkNotificationRead(id, r.PathValue("id")); err != nil {
		writeServiceError(w, "mark notification read", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DashboardHandler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	if err := h.workspaceService.DismissNotification(id, r.PathValue("id")); err != nil {
		writeServiceError(w, "dismiss notification", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
