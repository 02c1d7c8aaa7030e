package store

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Recording represents a raw captured gesture path stored for a spell.
// Path holds the serialized tracking point sequence.
type Recording struct {
	ID             int64           `json:"id"`
	SpellID        string          `json:"spell_id"`
	RecordingIndex int             `json:"recording_index"`
	Path           json.RawMessage `json:"path"`
	CreatedAt      time.Time       `json:"created_at"`
}

// RecordingRepository provides CRUD operations for gesture recordings.
type RecordingRepository struct {
	db *sql.DB
}

// Recordings returns the recording repository for this store.
func (s *Store) Recordings() *RecordingRepository {
	return &RecordingRepository{db: s.db}
}

// Create inserts multiple recordings for a spell in a single transaction.
func (r *RecordingRepository) Create(spellID string, paths []json.RawMessage) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO recordings (spell_id, recording_index, path) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, path := range paths {
		if _, err := stmt.Exec(spellID, i, string(path)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetBySpellID retrieves all recordings for a given spell.
func (r *RecordingRepository) GetBySpellID(spellID string) ([]Recording, error) {
	rows, err := r.db.Query(
		`SELECT id, spell_id, recording_index, path, created_at
		 FROM recordings
		 WHERE spell_id = ?
		 ORDER BY recording_index`,
		spellID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recordings []Recording
	for rows.Next() {
		var rec Recording
		var path string
		if err := rows.Scan(&rec.ID, &rec.SpellID, &rec.RecordingIndex, &path, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Path = json.RawMessage(path)
		recordings = append(recordings, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recordings, nil
}

// DeleteBySpellID removes all recordings for a given spell.
func (r *RecordingRepository) DeleteBySpellID(spellID string) error {
	_, err := r.db.Exec(`DELETE FROM recordings WHERE spell_id = ?`, spellID)
	return err
}
