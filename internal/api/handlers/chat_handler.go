package handlers

import (
	"net/http"

	"github.com/nexus/workspace/internal/service"
)

type MessageRequestBody struct {
	Text        string           `json:"text" validate:"max=4000"`
	Attachments []AttachmentBody `json:"attachments" validate:"dive"`
}

type ChatHandler struct {
	workspaceService *service.WorkspaceService
}

func NewChatHandler(workspaceService *service.WorkspaceService) *ChatHandler {
	return &ChatHandler{
		workspaceService: workspaceService,
	}
}

func (h *ChatHandler) ListChannels(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	channels, err := h.workspaceService.Channels(id)
	if err != nil {
		writeServiceError(w, "get channels", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"channels": channels,
	})
}

func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	messages, err := h.workspaceService.Messages(id, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "get messages", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messages,
	})
}

// SendMessage posts to a channel; the assistant's reply, if any, is
// returned alongside the posted message.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := actorID(w, r, h.workspaceService)
	if !ok {
		return
	}

	var reqBody MessageRequestBody
	if !decodeBody(w, r, &reqBody) {
		return
	}

	messages, err := h.workspaceService.SendMessage(r.Context(), id, r.PathValue("id"), reqBody.Text, attachments(reqBody.Attachments))
	if err != nil {
		writeServiceError(w, "send message", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"messages": messages,
	})
}
