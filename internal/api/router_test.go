package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus/workspace/internal/config"
	"github.com/nexus/workspace/internal/repository"
	"github.com/nexus/workspace/internal/seed"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := repository.InitDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		Port: 8080,
		AI:   config.AI{Timeout: time.Second},
	}
	srv := httptest.NewServer(SetupRouter(NewWorkspaceService(db, cfg)))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, userID string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/session", "", map[string]string{"email": seed.AdminEmail})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "Diana Prince", user["name"])
	assert.Equal(t, "p1", body["project"].(map[string]interface{})["id"])

	resp, body = do(t, srv, http.MethodPost, "/session", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["fields"], "email")
}

func TestMissingUserHeader(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := do(t, srv, http.MethodGet, "/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/tasks", "nobody", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTaskLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/tasks", seed.BruceID, map[string]interface{}{
		"projectId":   "p1",
		"title":       "Write release notes",
		"priority":    "High",
		"dueDate":     "2030-01-15",
		"assigneeIds": []string{seed.PeterID},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	task := body["task"].(map[string]interface{})
	id := task["id"].(string)
	assert.Equal(t, "To Do", task["status"])
	assert.Equal(t, "2030-01-15", task["dueDate"])

	resp, body = do(t, srv, http.MethodPost, "/tasks/"+id+"/move", seed.PeterID, map[string]string{"status": "In Progress"})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, "In Progress", body["task"].(map[string]interface{})["status"])

	resp, _ = do(t, srv, http.MethodPost, "/tasks/"+id+"/move", seed.PeterID, map[string]string{"status": "Blocked"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodPost, "/tasks/"+id+"/comments", seed.PeterID, map[string]string{"text": "on it"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodDelete, "/tasks/"+id, seed.PeterID, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodDelete, "/tasks/"+id, seed.BruceID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodDelete, "/tasks/"+id, seed.BruceID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodGet, "/tasks/"+id, seed.BruceID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAssignmentNotification(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := do(t, srv, http.MethodPost, "/tasks", seed.ClarkID, map[string]interface{}{
		"projectId":   "p1",
		"title":       "Pair on widgets",
		"assigneeIds": []string{seed.BruceID},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := do(t, srv, http.MethodGet, "/notifications", seed.BruceID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	inbox := body["notifications"].([]interface{})
	require.Len(t, inbox, 1)
	n := inbox[0].(map[string]interface{})
	assert.Equal(t, "New Task Assigned: Pair on widgets", n["title"])

	resp, _ = do(t, srv, http.MethodPost, "/notifications/"+n["id"].(string)+"/read", seed.BruceID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestVisibilityAndPermissions(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodGet, "/projects", seed.PeterID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["projects"], 2)

	resp, _ = do(t, srv, http.MethodGet, "/projects/p3/tasks", seed.PeterID, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodPost, "/projects", seed.BruceID, map[string]string{"name": "Skunkworks"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodPost, "/projects/p1/archive", seed.PeterID, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodPost, "/tasks/bulk/delete", seed.PeterID, map[string]interface{}{"taskIds": []string{"t4"}})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = do(t, srv, http.MethodDelete, "/teams/team1", seed.BruceID, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestBulkStatus(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/tasks/bulk/status", seed.DianaID, map[string]interface{}{
		"taskIds": []string{"t2", "t3", "missing"},
		"status":  "Done",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, body["updated"])

	resp, body = do(t, srv, http.MethodGet, "/dashboard", seed.DianaID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	overview := body["dashboard"].(map[string]interface{})["overview"].(map[string]interface{})
	assert.EqualValues(t, 6, overview["total"])
	assert.EqualValues(t, 4, overview["completed"])
}

func TestChatWithoutAssistantKey(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/channels/all-tasks/messages", seed.PeterID, map[string]string{"text": "@ai hello"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	msgs := body["messages"].([]interface{})
	require.Len(t, msgs, 2)
	assert.Equal(t, "AI Configuration Missing.", msgs[1].(map[string]interface{})["text"])

	resp, body = do(t, srv, http.MethodGet, "/channels", seed.PeterID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	channels := body["channels"].([]interface{})
	require.Len(t, channels, 3)
	assert.Equal(t, "all-tasks", channels[0].(map[string]interface{})["id"])
	assert.Equal(t, "nexus-dashboard-redesign", channels[1].(map[string]interface{})["slug"])
}

func TestTaskAttachmentsAndProgress(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/tasks", seed.BruceID, map[string]interface{}{
		"projectId": "p1",
		"title":     "Ship brand kit",
		"attachments": []map[string]interface{}{
			{"name": "logo.png", "type": "image/png", "sizeBytes": 1200000, "url": "https://files.nexus.co/logo.png"},
		},
		"checklist": []map[string]interface{}{
			{"text": "Export SVG", "isCompleted": true},
			{"text": "Print proofs"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	task := body["task"].(map[string]interface{})
	attachments := task["attachments"].([]interface{})
	require.Len(t, attachments, 1)
	a := attachments[0].(map[string]interface{})
	assert.Equal(t, "1.2 MB", a["size"])
	assert.NotEmpty(t, a["id"])

	resp, body = do(t, srv, http.MethodGet, "/tasks/"+task["id"].(string), seed.BruceID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	progress := body["checklist_progress"].(map[string]interface{})
	assert.EqualValues(t, 1, progress["completed"])
	assert.EqualValues(t, 2, progress["total"])

	resp, _ = do(t, srv, http.MethodPost, "/tasks", seed.BruceID, map[string]interface{}{
		"projectId":   "p1",
		"title":       "Nameless upload",
		"attachments": []map[string]interface{}{{"url": "https://files.nexus.co/x"}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBulkUpdateEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, srv, http.MethodPost, "/tasks/bulk/update", seed.BruceID, map[string]interface{}{"tasks": []interface{}{}})
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.EqualValues(t, 0, body["updated"])

	resp, body = do(t, srv, http.MethodPost, "/tasks", seed.BruceID, map[string]interface{}{
		"projectId":   "p1",
		"title":       "Draft roadmap",
		"assigneeIds": []string{seed.PeterID},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := body["task"].(map[string]interface{})["id"].(string)

	resp, _ = do(t, srv, http.MethodPost, "/tasks/bulk/update", seed.PeterID, map[string]interface{}{
		"tasks": []map[string]interface{}{{"id": id, "title": "", "status": "Blocked"}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = do(t, srv, http.MethodPost, "/tasks/bulk/update", seed.PeterID, map[string]interface{}{
		"tasks": []map[string]interface{}{{"id": id, "title": "Draft roadmap", "assigneeIds": []string{seed.PeterID, seed.BruceID}}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["updated"])

	resp, body = do(t, srv, http.MethodPost, "/tasks/bulk/update", seed.BruceID, map[string]interface{}{
		"tasks": []map[string]interface{}{{"id": id, "title": "Final roadmap", "status": "Review", "assigneeIds": []string{seed.PeterID}}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["updated"])

	resp, body = do(t, srv, http.MethodGet, "/tasks/"+id, seed.PeterID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	task := body["task"].(map[string]interface{})
	assert.Equal(t, "Final roadmap", task["title"])
	assert.Equal(t, "Review", task["status"])
}
