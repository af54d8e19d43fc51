package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/storage"
)

func (s *Store) CreateXPEvent(e models.XPEvent) error {
	_, err := s.q.Exec(`
		INSERT INTO xp_events (id, profile_id, amount, reason, habit_id, completion_id, awarded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ProfileID, e.Amount, e.Reason,
		nullIfEmpty(e.HabitID), nullIfEmpty(e.CompletionID),
		e.AwardedAt.Format(time.RFC3339))
	return wrapWriteErr(err)
}

func (s *Store) GetXPEventByCompletion(completionID string) (models.XPEvent, error) {
	row := s.q.QueryRow(`
		SELECT id, profile_id, amount, reason, habit_id, completion_id, awarded_at
		FROM xp_events WHERE completion_id = ?`, completionID)
	return scanXPEvent(row.Scan)
}

func scanXPEvent(scan func(dest ...any) error) (models.XPEvent, error) {
	var e models.XPEvent
	var habitID, completionID sql.NullString
	var awardedAt string

	err := scan(&e.ID, &e.ProfileID, &e.Amount, &e.Reason, &habitID, &completionID, &awardedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.XPEvent{}, storage.ErrNotFound
	}
	if err != nil {
		return models.XPEvent{}, err
	}

	e.HabitID = habitID.String
	e.CompletionID = completionID.String
	e.AwardedAt, err = time.Parse(time.RFC3339, awardedAt)
	if err != nil {
		return models.XPEvent{}, fmt.Errorf("failed to parse awarded_at: %w", err)
	}
	return e, nil
}

func (s *Store) TotalXP(profileID string) (int, error) {
	var total sql.NullInt64
	err := s.q.QueryRow(`
		SELECT SUM(amount) FROM xp_events WHERE profile_id = ?`, profileID).Scan(&total)
	if err != nil {
		return 0, err
	}
	if !total.Valid {
		return 0, nil
	}
	return int(total.Int64), nil
}

func (s *Store) ListXPEvents(profileID string, limit int) ([]models.XPEvent, error) {
	query := `
		SELECT id, profile_id, amount, reason, habit_id, completion_id, awarded_at
		FROM xp_events WHERE profile_id = ?
		ORDER BY awarded_at DESC, id DESC`
	args := []any{profileID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.XPEvent
	for rows.Next() {
		e, err := scanXPEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
