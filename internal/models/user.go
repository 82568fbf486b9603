package models

type NotificationPreferences struct {
	Email   bool `json:"email"`
	Desktop bool `json:"desktop"`
}

type User struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Email       string                   `json:"email,omitempty"`
	Avatar      string                   `json:"avatar"`
	Role        UserRole                 `json:"role"`
	Preferences *NotificationPreferences `json:"preferences,omitempty"`
}

// NotificationPrefs returns the user's preferences, defaulting every
// channel to on when none were saved.
func (u User) NotificationPrefs() NotificationPreferences {
	if u.Preferences == nil {
		return NotificationPreferences{Email: true, Desktop: true}
	}
	return *u.Preferences
}

// ContainsUser reports whether users holds a user with the given id.
func ContainsUser(users []User, id string) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}

// UniqueUsers drops repeated ids, keeping the first occurrence.
func UniqueUsers(users []User) []User {
	if users == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(users))
	out := make([]User, 0, len(users))
	for _, u := range users {
		if _, ok := seen[u.ID]; ok {
			continue
		}
		seen[u.ID] = struct{}{}
		out = append(out, u)
	}
	return out
}
