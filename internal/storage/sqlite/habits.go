package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/storage"
)

func (s *Store) CreateHabit(h models.Habit) error {
	_, err := s.q.Exec(`
		INSERT INTO habits (id, profile_id, name, cadence, created_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?)`,
		h.ID, h.ProfileID, h.Name, string(h.Cadence), h.CreatedAt.Format(time.RFC3339), boolToInt(h.IsActive))
	return wrapWriteErr(err)
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.q.QueryRow(`
		SELECT id, profile_id, name, cadence, created_at, is_active
		FROM habits WHERE id = ?`, id)
	return scanHabit(row)
}

func (s *Store) GetActiveHabitByName(profileID, name string) (models.Habit, error) {
	row := s.q.QueryRow(`
		SELECT id, profile_id, name, cadence, created_at, is_active
		FROM habits WHERE profile_id = ? AND name = ? AND is_active = 1`,
		profileID, name)
	return scanHabit(row)
}

func scanHabit(row *sql.Row) (models.Habit, error) {
	var h models.Habit
	var cadence, createdAt string
	var isActive int

	err := row.Scan(&h.ID, &h.ProfileID, &h.Name, &cadence, &createdAt, &isActive)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Habit{}, err
	}

	h.Cadence = models.Cadence(cadence)
	h.IsActive = isActive != 0
	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return h, nil
}

func (s *Store) ListHabits(profileID string, activeOnly bool, cadence models.Cadence) ([]models.Habit, error) {
	query := `
		SELECT id, profile_id, name, cadence, created_at, is_active
		FROM habits WHERE profile_id = ?`
	args := []any{profileID}

	if activeOnly {
		query += " AND is_active = 1"
	}
	if cadence != "" {
		query += " AND cadence = ?"
		args = append(args, string(cadence))
	}
	query += " ORDER BY created_at, id"

	rows, err := s.q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		var h models.Habit
		var cadence, createdAt string
		var isActive int

		if err := rows.Scan(&h.ID, &h.ProfileID, &h.Name, &cadence, &createdAt, &isActive); err != nil {
			return nil, err
		}
		h.Cadence = models.Cadence(cadence)
		h.IsActive = isActive != 0
		h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// ArchiveHabit marks the habit inactive. Archival is terminal; archiving
// an already-archived habit matches zero rows and is a no-op.
func (s *Store) ArchiveHabit(id string) error {
	_, err := s.q.Exec(`UPDATE habits SET is_active = 0 WHERE id = ? AND is_active = 1`, id)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
