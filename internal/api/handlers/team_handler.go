package handlers

import (
	"net/http"

	"github.com/nexus/workspace/internal/service"
)

type TeamRequestBody struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Description string   `json:"description" validate:"max=2000"`
	Color       string   `json:"color"`
	MemberIDs   []string `json:"memberIds" validate:"dive,required"`
}

type TeamMemberRequestBody struct {
	UserID string `json:"userId" validate:"required"`
}

type TeamHandler struct {
	workspaceService *service.WorkspaceService
}

func NewTeamHandler(workspaceService *service.WorkspaceService) *TeamHandler {
	return &TeamHandler{
		workspaceService: workspaceService,
	}
}

func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	if _, ok := actorID(w, r, h.workspaceService); !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"teams": h.workspaceService.Teams(),
	})
}

func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	var reqBody TeamRequestBody
	if !decodeBody(w, r, &reqBody) {
		return
	}

	team, err := h.workspaceService.AddTeam(id, service.TeamInput{
		Name:        reqBody.Name,
		Description: reqBody.Description,
		Color:       reqBody.Color,
		MemberIDs:   reqBody.MemberIDs,
	})
	if err != nil {
		writeServiceError(w, "create team", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"team": team,
	})
}

func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	if err := h.workspaceService.DeleteTeam(id, r.PathValue("id")); err != nil {
		writeServiceError(w, "delete team", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	var reqBody TeamMemberRequestBody
	if !decodeBody(w, r, &reqBody) {
		return
	}

	team, err := h.workspaceService.AddTeamMember(id, r.PathValue("id"), reqBody.UserID)
	if err != nil {
		writeServiceError(w, "add team member", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"team": team,
	})
}

func (h *TeamHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	summary, err := h.workspaceService.TeamSummary(id, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "get team summary", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"summary": summary,
	})
}
