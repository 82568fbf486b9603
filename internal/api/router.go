package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/nexus/workspace/internal/api/handlers"
	"github.com/nexus/workspace/internal/client/gemini"
	"github.com/nexus/workspace/internal/config"
	"github.com/nexus/workspace/internal/notify"
	"github.com/nexus/workspace/internal/repository"
	"github.com/nexus/workspace/internal/seed"
	"github.com/nexus/workspace/internal/service"
)

// NewWorkspaceService wires the seeded workspace to its collaborators.
func NewWorkspaceService(db *sql.DB, cfg *config.Config) *service.WorkspaceService {
	notificationRepo := repository.NewNotificationRepository(db)
	reminderRepo := repository.NewReminderRepository(db)

	var mailer notify.Mailer = notify.LogMailer{}
	if cfg.Mail.SendGridKey != "" {
		mailer = notify.NewSendGridMailer(cfg.Mail.SendGridKey, cfg.Mail.From)
	}
	dispatcher := notify.NewDispatcher(notificationRepo, mailer)

	geminiClient := gemini.NewGeminiClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL, cfg.AI.Timeout)
	assistantService := service.NewAssistantService(
		geminiClient,
		service.NewAssistantBreaker("gemini-cb", 30*time.Second),
	)

	return service.NewWorkspaceService(
		seed.State(time.Now()),
		dispatcher,
		notify.NewDeadlineChecker(dispatcher, reminderRepo),
		notificationRepo,
		assistantService,
	)
}

func SetupRouter(workspaceService *service.WorkspaceService) *http.ServeMux {
	mux := http.NewServeMux()

	sessionHandler := handlers.NewSessionHandler(workspaceService)
	projectHandler := handlers.NewProjectHandler(workspaceService)
	taskHandler := handlers.NewTaskHandler(workspaceService)
	teamHandler := handlers.NewTeamHandler(workspaceService)
	chatHandler := handlers.NewChatHandler(workspaceService)
	dashboardHandler := handlers.NewDashboardHandler(workspaceService)

	mux.HandleFunc("POST /session", sessionHandler.Login)
	mux.HandleFunc("DELETE /session", sessionHandler.Logout)
	mux.HandleFunc("GET /users", sessionHandler.ListUsers)
	mux.HandleFunc("PUT /users/me", sessionHandler.UpdateProfile)

	mux.HandleFunc("GET /projects", projectHandler.ListProjects)
	mux.HandleFunc("POST /projects", projectHandler.CreateProject)
	mux.HandleFunc("POST /projects/{id}/archive", projectHandler.ToggleArchive)
	mux.HandleFunc("GET /projects/{id}/tasks", projectHandler.ListProjectTasks)
	mux.HandleFunc("POST /projects/{id}/suggestions", projectHandler.GenerateTasks)

	mux.HandleFunc("GET /tasks", taskHandler.ListTasks)
	mux.HandleFunc("POST /tasks", taskHandler.CreateTask)
	mux.HandleFunc("GET /tasks/{id}", taskHandler.GetTask)
	mux.HandleFunc("PUT /tasks/{id}", taskHandler.UpdateTask)
	mux.HandleFunc("DELETE /tasks/{id}", taskHandler.DeleteTask)
	mux.HandleFunc("POST /tasks/{id}/move", taskHandler.MoveTask)
	mux.HandleFunc("POST /tasks/{id}/comments", taskHandler.AddComment)
	mux.HandleFunc("POST /tasks/{id}/checklist/{itemId}/toggle", taskHandler.ToggleChecklistItem)
	mux.HandleFunc("POST /tasks/bulk/delete", taskHandler.BulkDelete)
	mux.HandleFunc("POST /tasks/bulk/status", taskHandler.BulkUpdateStatus)
	mux.HandleFunc("POST /tasks/bulk/assign", taskHandler.BulkAssign)
	mux.HandleFunc("POST /tasks/bulk/update", taskHandler.BulkUpdate)

	mux.HandleFunc("GET /teams", teamHandler.ListTeams)
	mux.HandleFunc("POST /teams", teamHandler.CreateTeam)
	mux.HandleFunc("DELETE /teams/{id}", teamHandler.DeleteTeam)
	mux.HandleFunc("POST /teams/{id}/members", teamHandler.AddMember)
	mux.HandleFunc("GET /teams/{id}/summary", teamHandler.Summary)

	mux.HandleFunc("GET /channels", chatHandler.ListChannels)
	mux.HandleFunc("GET /channels/{id}/messages", chatHandler.ListMessages)
	mux.HandleFunc("POST /channels/{id}/messages", chatHandler.SendMessage)

	mux.HandleFunc("GET /dashboard", dashboardHandler.GetDashboard)
	mux.HandleFunc("GET /leaderboard", dashboardHandler.GetLeaderboard)
	mux.HandleFunc("GET /notifications", dashboardHandler.ListNotifications)
	mux.HandleFunc("POST /notifications/{id}/read", dashboardHandler.MarkNotificationRead)
	mux.HandleFunc("DELETE /notifications/{id}", dashboardHandler.DismissNotification)

	return mux
}
