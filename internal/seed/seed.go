// Package seed holds the demo workspace every server starts with.
package seed

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/nexus/workspace/internal/board"
	"github.com/nexus/workspace/internal/models"
)

// AdminEmail logs in as the seeded super admin.
const AdminEmail = "admin@nexus.co"

const (
	DianaID = "1"
	ClarkID = "2"
	BruceID = "3"
	PeterID = "4"
)

func prefs(email, desktop bool) *models.NotificationPreferences {
	return &models.NotificationPreferences{Email: email, Desktop: desktop}
}

func Users() []models.User {
	return []models.User{
		{
			ID: DianaID, Name: "Diana Prince", Email: "diana@nexus.co", Role: models.RoleSuperAdmin,
			Avatar:      "https://images.unsplash.com/photo-1573496359142-b8d87734a5a2?auto=format&fit=crop&q=80&w=100&h=100",
			Preferences: prefs(true, true),
		},
		{
			ID: ClarkID, Name: "Clark Kent", Email: "clark@nexus.co", Role: models.RoleAdmin,
			Avatar:      "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?auto=format&fit=crop&q=80&w=100&h=100",
			Preferences: prefs(true, true),
		},
		{
			ID: BruceID, Name: "Bruce Wayne", Email: "bruce@nexus.co", Role: models.RoleManager,
			Avatar:      "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?auto=format&fit=crop&q=80&w=100&h=100",
			Preferences: prefs(false, true),
		},
		{
			ID: PeterID, Name: "Peter Parker", Email: "peter@nexus.co", Role: models.RoleUser,
			Avatar:      "https://images.unsplash.com/photo-1599566150163-29194dcaad36?auto=format&fit=crop&q=80&w=100&h=100",
			Preferences: prefs(true, false),
		},
	}
}

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

// State builds the demo workspace with timestamps relative to now.
func State(now time.Time) board.State {
	users := Users()
	diana, clark, bruce, peter := users[0], users[1], users[2], users[3]

	teams := []models.Team{
		{
			ID: "team1", Name: "Frontend Force",
			Description: "Responsible for all client-side development and UI/UX implementation.",
			Members:     []models.User{diana, peter},
			Color:       "from-blue-500 to-cyan-500",
		},
		{
			ID: "team2", Name: "Backend Ops",
			Description: "Server management, API development, and database optimizations.",
			Members:     []models.User{clark, bruce},
			Color:       "from-emerald-500 to-teal-500",
		},
		{
			ID: "team3", Name: "Product Design",
			Description: "Designing user journeys, wireframes, and high-fidelity prototypes.",
			Members:     []models.User{diana, bruce},
			Color:       "from-purple-500 to-pink-500",
		},
	}

	projects := []models.Project{
		{
			ID: "p1", Name: "Nexus Dashboard Redesign",
			Description: "Revamping the core analytics dashboard for better user experience and performance.",
			Members:     []models.User{diana, clark, bruce, peter},
			CreatedAt:   now, Color: "bg-emerald-500",
		},
		{
			ID: "p2", Name: "Mobile App Launch",
			Description: "Preparing for the Q4 launch of the new mobile application on iOS and Android.",
			Members:     []models.User{diana, clark, peter},
			CreatedAt:   now, Color: "bg-blue-500",
		},
		{
			ID: "p3", Name: "Marketing Campaign",
			Description: "Q3 social media and content marketing strategy execution.",
			Members:     []models.User{diana, bruce},
			CreatedAt:   now, Color: "bg-purple-500",
		},
	}

	messages := []models.ChatMessage{
		{ID: "m1", ProjectID: models.GlobalProjectID, SenderID: models.SenderSystem,
			Text: "Welcome to the company-wide general channel.", Timestamp: now.Add(-48 * time.Hour)},
		{ID: "m2", ProjectID: "p1", SenderID: DianaID,
			Text: "The dashboard wireframes are looking solid. Good job team.", Timestamp: now.Add(-24 * time.Hour)},
		{ID: "m3", ProjectID: "p1", SenderID: ClarkID,
			Text: "I will start the API integration for the new widgets tomorrow.", Timestamp: now.Add(-82000 * time.Second)},
		{ID: "m4", ProjectID: "p2", SenderID: BruceID,
			Text: "TestFlight build is delayed by 2 hours. Heads up.", Timestamp: now.Add(-time.Hour)},
		{ID: "m5", ProjectID: "p2", SenderID: PeterID,
			Text: "No worries, I am still polishing the icons.", Timestamp: now.Add(-50 * time.Minute)},
	}

	tasks := []models.Task{
		{
			ID: "t1", ProjectID: "p1", Title: "Research Competitor UX",
			Description: "Analyze top 3 competitors and document their dashboard flows.",
			Status:      models.StatusDone, Priority: models.PriorityHigh, Category: models.CategoryMarketing,
			Assignees: []models.User{clark},
			Checklist: []models.ChecklistItem{
				{ID: "cl1", Text: "Analyze Competitor A", IsCompleted: true, Attachments: []models.Attachment{
					{ID: "a1", Name: "competitor_a_screenshot.png", Type: "image/png", Size: "1.2 MB", URL: "#"},
				}},
				{ID: "cl2", Text: "Analyze Competitor B", IsCompleted: true},
				{ID: "cl3", Text: "Create comparison matrix", IsCompleted: true},
			},
			Comments: []models.Comment{{
				ID: "c1", SenderID: ClarkID, SenderName: clark.Name, Avatar: clark.Avatar,
				Text:      "Great work on this! The report is very thorough.",
				Timestamp: now.Add(-24 * time.Hour).Format(time.RFC3339),
			}},
			DueDate: date(2023, time.October, 15),
		},
		{
			ID: "t2", ProjectID: "p1", Title: "Design System Update",
			Description: "Update the Figma library with new color palette and typography.",
			Status:      models.StatusInProgress, Priority: models.PriorityMedium, Category: models.CategoryDesign,
			Assignees: []models.User{peter, diana},
			Checklist: []models.ChecklistItem{
				{ID: "cl4", Text: "Update primary colors", IsCompleted: true},
				{ID: "cl5", Text: "Update typography scales"},
				{ID: "cl6", Text: "Update component buttons"},
			},
			DueDate: date(2023, time.October, 20),
		},
		{
			ID: "t3", ProjectID: "p1", Title: "API Integration",
			Description: "Connect the frontend widgets to the real-time data stream.",
			Status:      models.StatusTodo, Priority: models.PriorityHigh, Category: models.CategoryDevelopment,
			Assignees: []models.User{bruce},
			DueDate:   date(2023, time.October, 25),
		},
		{
			ID: "t4", ProjectID: "p2", Title: "iOS Beta Build",
			Description: "Prepare the first beta build for internal testing via TestFlight.",
			Status:      models.StatusReview, Priority: models.PriorityHigh, Category: models.CategoryDevelopment,
			Assignees: []models.User{peter},
			DueDate:   date(2023, time.November, 1),
		},
		{
			ID: "t5", ProjectID: "p2", Title: "App Icon Design",
			Description: "Create scalable vector assets for the new application icon.",
			Status:      models.StatusDone, Priority: models.PriorityMedium, Category: models.CategoryDesign,
			Assignees: []models.User{diana},
			DueDate:   date(2023, time.October, 10),
		},
		{
			ID: "t6", ProjectID: "p3", Title: "Draft Blog Posts",
			Description: "Write 3 blog posts covering the new features of the platform.",
			Status:      models.StatusInProgress, Priority: models.PriorityMedium, Category: models.CategoryMarketing,
			Assignees: []models.User{diana, bruce},
			DueDate:   date(2023, time.October, 30),
		},
	}

	return board.State{
		Users:    users,
		Projects: projects,
		Tasks:    tasks,
		Teams:    teams,
		Messages: messages,
	}
}
