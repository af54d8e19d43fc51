package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/storage"
)

func (s *Store) CreateCompletion(c models.Completion) error {
	_, err := s.q.Exec(`
		INSERT INTO completions (id, habit_id, completed_at, period_key)
		VALUES (?, ?, ?, ?)`,
		c.ID, c.HabitID, c.CompletedAt.Format(time.RFC3339), c.PeriodKey)
	return wrapWriteErr(err)
}

func (s *Store) GetCompletionForPeriod(habitID, periodKey string) (models.Completion, error) {
	row := s.q.QueryRow(`
		SELECT id, habit_id, completed_at, period_key
		FROM completions WHERE habit_id = ? AND period_key = ?`,
		habitID, periodKey)

	var c models.Completion
	var completedAt string

	err := row.Scan(&c.ID, &c.HabitID, &completedAt, &c.PeriodKey)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Completion{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Completion{}, err
	}

	c.CompletedAt, err = time.Parse(time.RFC3339, completedAt)
	if err != nil {
		return models.Completion{}, fmt.Errorf("failed to parse completed_at: %w", err)
	}
	return c, nil
}

func (s *Store) ListCompletions(profileID string, habitIDs []string) ([]models.Completion, error) {
	query := `
		SELECT c.id, c.habit_id, c.completed_at, c.period_key
		FROM completions c
		JOIN habits h ON h.id = c.habit_id
		WHERE h.profile_id = ?`
	args := []any{profileID}

	if len(habitIDs) > 0 {
		query += " AND c.habit_id IN (?" + strings.Repeat(", ?", len(habitIDs)-1) + ")"
		for _, id := range habitIDs {
			args = append(args, id)
		}
	}
	query += " ORDER BY c.completed_at, c.id"

	rows, err := s.q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []models.Completion
	for rows.Next() {
		var c models.Completion
		var completedAt string

		if err := rows.Scan(&c.ID, &c.HabitID, &completedAt, &c.PeriodKey); err != nil {
			return nil, err
		}
		c.CompletedAt, err = time.Parse(time.RFC3339, completedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse completed_at for completion %s: %w", c.ID, err)
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}
