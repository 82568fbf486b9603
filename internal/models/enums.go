package models

type TaskStatus string

const (
	StatusTodo       TaskStatus = "To Do"
	StatusInProgress TaskStatus = "In Progress"
	StatusReview     TaskStatus = "Review"
	StatusDone       TaskStatus = "Done"
)

// Statuses lists the board columns in display order.
var Statuses = []TaskStatus{StatusTodo, StatusInProgress, StatusReview, StatusDone}

func (s TaskStatus) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type TaskCategory string

const (
	CategoryDevelopment TaskCategory = "Development"
	CategoryDesign      TaskCategory = "Design"
	CategoryMarketing   TaskCategory = "Marketing"
	CategoryContent     TaskCategory = "Content"
	CategoryFinance     TaskCategory = "Finance"
	CategoryAdmin       TaskCategory = "Admin"
	CategoryHR          TaskCategory = "HR"
	CategoryOther       TaskCategory = "Other"
)

var Categories = []TaskCategory{
	CategoryDevelopment,
	CategoryDesign,
	CategoryMarketing,
	CategoryContent,
	CategoryFinance,
	CategoryAdmin,
	CategoryHR,
	CategoryOther,
}

func (c TaskCategory) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// UserRole is ordered from most to least privileged.
type UserRole string

const (
	RoleSuperAdmin UserRole = "Super Admin"
	RoleAdmin      UserRole = "Administrator"
	RoleManager    UserRole = "Manager"
	RoleUser       UserRole = "User"
)

// Rank returns 0 for the most privileged role and grows downwards.
// Unknown roles rank below RoleUser.
func (r UserRole) Rank() int {
	switch r {
	case RoleSuperAdmin:
		return 0
	case RoleAdmin:
		return 1
	case RoleManager:
		return 2
	case RoleUser:
		return 3
	}
	return 4
}

func (r UserRole) Valid() bool {
	return r.Rank() < 4
}
