package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/storage"
)

func (s *Store) CreateProfile(p models.Profile) error {
	_, err := s.q.Exec(`
		INSERT INTO profiles (id, username, created_at)
		VALUES (?, ?, ?)`,
		p.ID, p.Username, p.CreatedAt.Format(time.RFC3339))
	return wrapWriteErr(err)
}

func (s *Store) GetProfile(id string) (models.Profile, error) {
	row := s.q.QueryRow(`
		SELECT id, username, created_at FROM profiles WHERE id = ?`, id)
	return scanProfile(row)
}

func (s *Store) GetProfileByUsername(username string) (models.Profile, error) {
	row := s.q.QueryRow(`
		SELECT id, username, created_at FROM profiles WHERE username = ?`, username)
	return scanProfile(row)
}

func scanProfile(row *sql.Row) (models.Profile, error) {
	var p models.Profile
	var createdAt string

	err := row.Scan(&p.ID, &p.Username, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Profile{}, err
	}

	p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Profile{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return p, nil
}

func (s *Store) ListProfiles() ([]models.Profile, error) {
	rows, err := s.q.Query(`
		SELECT id, username, created_at FROM profiles ORDER BY created_at, username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Username, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for profile %s: %w", p.ID, err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (s *Store) DeleteProfile(id string) error {
	result, err := s.q.Exec(`DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) ActiveProfileID() (string, error) {
	var id sql.NullString
	err := s.q.QueryRow(`SELECT active_profile_id FROM app_state WHERE id = 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if !id.Valid {
		return "", nil
	}
	return id.String, nil
}

func (s *Store) SetActiveProfileID(id string) error {
	_, err := s.q.Exec(`
		INSERT INTO app_state (id, active_profile_id) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET active_profile_id = excluded.active_profile_id`, id)
	return err
}

func (s *Store) ClearActiveProfile() error {
	_, err := s.q.Exec(`UPDATE app_state SET active_profile_id = NULL WHERE id = 1`)
	return err
}
