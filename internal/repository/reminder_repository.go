package repository

import (
	"database/sql"
	"fmt"
)

type ReminderRepository struct {
	db *sql.DB
}

func NewReminderRepository(db *sql.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// MarkSent records that the reminder of kind for the user's task went out.
// It returns false when the same reminder had already been recorded.
func (r *ReminderRepository) MarkSent(userID, taskID, kind string) (bool, error) {
	result, err := r.db.Exec(`
		INSERT OR IGNORE INTO reminders (user_id, task_id, kind)
		VALUES (?, ?, ?)
	`, userID, taskID, kind)
	if err != nil {
		return false, fmt.Errorf("mark reminder sent: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark reminder rows affected: %w", err)
	}
	return rows > 0, nil
}
