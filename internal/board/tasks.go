package board

import "github.com/nexus/workspace/internal/models"

// CreateTask appends t. Callers are expected to have checked the title.
func CreateTask(s State, t models.Task) State {
	tasks := make([]models.Task, 0, len(s.Tasks)+1)
	tasks = append(tasks, s.Tasks...)
	s.Tasks = append(tasks, t)
	return s
}

// UpdateTask replaces the record whose id matches t.ID.
func UpdateTask(s State, t models.Task) State {
	return BulkUpdate(s, []models.Task{t})
}

func DeleteTask(s State, id string) State {
	return BulkDelete(s, []string{id})
}

// BulkDelete removes every task whose id is in ids, keeping the order of the rest.
func BulkDelete(s State, ids []string) State {
	if len(ids) == 0 {
		return s
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	tasks := make([]models.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if _, ok := drop[t.ID]; !ok {
			tasks = append(tasks, t)
		}
	}
	s.Tasks = tasks
	return s
}

// BulkUpdate replaces each stored task that has a counterpart in updated.
// Unknown ids are ignored and positions never change.
func BulkUpdate(s State, updated []models.Task) State {
	if len(updated) == 0 {
		return s
	}
	byID := make(map[string]models.Task, len(updated))
	for _, t := range updated {
		byID[t.ID] = t
	}
	tasks := make([]models.Task, len(s.Tasks))
	for i, t := range s.Tasks {
		if u, ok := byID[t.ID]; ok {
			tasks[i] = u
			continue
		}
		tasks[i] = t
	}
	s.Tasks = tasks
	return s
}
