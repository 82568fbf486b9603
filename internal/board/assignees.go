package board

import "github.com/nexus/workspace/internal/models"

// AddedAssignees returns the users in next that were not in prev, by id,
// in next's order. Users dropped from the task are not reported.
func AddedAssignees(prev, next []models.User) []models.User {
	added := make([]models.User, 0)
	for _, u := range next {
		if !models.ContainsUser(prev, u.ID) && !models.ContainsUser(added, u.ID) {
			added = append(added, u)
		}
	}
	return added
}
