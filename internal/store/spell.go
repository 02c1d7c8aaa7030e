package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Spell represents a custom spell definition stored in the database.
type Spell struct {
	ID          string
	Key         string
	Name        string
	Incantation string
	Description string
	Color       string
	Template    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SpellRepository provides CRUD operations for spells.
type SpellRepository struct {
	db *sql.DB
}

// Spells returns the spell repository for this store.
func (s *Store) Spells() *SpellRepository {
	return &SpellRepository{db: s.db}
}

// Create inserts a new spell into the database.
func (r *SpellRepository) Create(sp *Spell) error {
	now := time.Now()
	sp.CreatedAt = now
	sp.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO spells (id, key, name, incantation, description, color, template, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sp.ID, sp.Key, sp.Name, sp.Incantation, sp.Description, sp.Color, sp.Template, sp.CreatedAt, sp.UpdatedAt,
	)
	return err
}

// GetByKey retrieves a spell by its label key.
func (r *SpellRepository) GetByKey(key string) (*Spell, error) {
	sp := &Spell{}
	err := r.db.QueryRow(
		`SELECT id, key, name, incantation, description, color, template, created_at, updated_at
		 FROM spells WHERE key = ?`,
		key,
	).Scan(&sp.ID, &sp.Key, &sp.Name, &sp.Incantation, &sp.Description, &sp.Color, &sp.Template, &sp.CreatedAt, &sp.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sp, nil
}

// GetByID retrieves a spell by its ID.
func (r *SpellRepository) GetByID(id string) (*Spell, error) {
	sp := &Spell{}
	err := r.db.QueryRow(
		`SELECT id, key, name, incantation, description, color, template, created_at, updated_at
		 FROM spells WHERE id = ?`,
		id,
	).Scan(&sp.ID, &sp.Key, &sp.Name, &sp.Incantation, &sp.Description, &sp.Color, &sp.Template, &sp.CreatedAt, &sp.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sp, nil
}

// List retrieves all custom spells ordered by key.
func (r *SpellRepository) List() ([]*Spell, error) {
	rows, err := r.db.Query(
		`SELECT id, key, name, incantation, description, color, template, created_at, updated_at
		 FROM spells ORDER BY key`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spells []*Spell
	for rows.Next() {
		sp := &Spell{}
		err := rows.Scan(&sp.ID, &sp.Key, &sp.Name, &sp.Incantation, &sp.Description, &sp.Color, &sp.Template, &sp.CreatedAt, &sp.UpdatedAt)
		if err != nil {
			return nil, err
		}
		spells = append(spells, sp)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return spells, nil
}

// Update updates an existing spell in the database.
func (r *SpellRepository) Update(sp *Spell) error {
	sp.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE spells SET name = ?, incantation = ?, description = ?, color = ?, template = ?, updated_at = ?
		 WHERE id = ?`,
		sp.Name, sp.Incantation, sp.Description, sp.Color, sp.Template, sp.UpdatedAt, sp.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a spell from the database by its ID.
func (r *SpellRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM spells WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
