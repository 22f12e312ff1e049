package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/marcus/shelf/internal/models"
)

const boardgameColumns = `id, name, min_players, max_players, play_time_minutes, description, created_at, updated_at`

// timeLayouts are tried in order when reading stored timestamps
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBoardgame(row rowScanner) (*models.Boardgame, error) {
	var b models.Boardgame
	var createdAt, updatedAt string
	if err := row.Scan(&b.ID, &b.Name, &b.MinPlayers, &b.MaxPlayers, &b.PlayTimeMinutes, &b.Description, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	b.CreatedAt = parseTime(createdAt)
	b.UpdatedAt = parseTime(updatedAt)
	return &b, nil
}

// CreateBoardgame inserts a record and returns its new id. The id and
// timestamps are also set on b.
func (db *DB) CreateBoardgame(b *models.Boardgame) (int64, error) {
	now := time.Now()
	res, err := db.conn.Exec(`
		INSERT INTO boardgames (name, min_players, max_players, play_time_minutes, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.Name, b.MinPlayers, b.MaxPlayers, b.PlayTimeMinutes, b.Description, formatTime(now), formatTime(now))
	if err != nil {
		return 0, fmt.Errorf("insert boardgame: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read insert id: %w", err)
	}

	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now
	return id, nil
}

// ListBoardgames returns every record ordered by name
func (db *DB) ListBoardgames() ([]models.Boardgame, error) {
	rows, err := db.conn.Query(`SELECT ` + boardgameColumns + ` FROM boardgames ORDER BY name COLLATE NOCASE, id`)
	if err != nil {
		return nil, fmt.Errorf("list boardgames: %w", err)
	}
	defer rows.Close()

	var games []models.Boardgame
	for rows.Next() {
		b, err := scanBoardgame(rows)
		if err != nil {
			return nil, fmt.Errorf("scan boardgame: %w", err)
		}
		games = append(games, *b)
	}
	return games, rows.Err()
}

// GetBoardgame returns the record with the given id, or ErrNotFound
func (db *DB) GetBoardgame(id int64) (*models.Boardgame, error) {
	row := db.conn.QueryRow(`SELECT `+boardgameColumns+` FROM boardgames WHERE id = ?`, id)
	b, err := scanBoardgame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("boardgame %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get boardgame %d: %w", id, err)
	}
	return b, nil
}

// UpdateBoardgame overwrites the stored fields of b. b must have an id.
func (db *DB) UpdateBoardgame(b *models.Boardgame) error {
	if !b.HasID() {
		return errors.New("boardgame must have an id to update")
	}

	now := time.Now()
	res, err := db.conn.Exec(`
		UPDATE boardgames
		SET name = ?, min_players = ?, max_players = ?, play_time_minutes = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		b.Name, b.MinPlayers, b.MaxPlayers, b.PlayTimeMinutes, b.Description, formatTime(now), b.ID)
	if err != nil {
		return fmt.Errorf("update boardgame %d: %w", b.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update boardgame %d: %w", b.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("boardgame %d: %w", b.ID, ErrNotFound)
	}

	b.UpdatedAt = now
	return nil
}

// DeleteBoardgame removes the record with the given id
func (db *DB) DeleteBoardgame(id int64) error {
	res, err := db.conn.Exec(`DELETE FROM boardgames WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete boardgame %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete boardgame %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("boardgame %d: %w", id, ErrNotFound)
	}
	return nil
}

// SearchBoardgames returns records whose names fuzzy-match query, best first
func (db *DB) SearchBoardgames(query string) ([]models.Boardgame, error) {
	games, err := db.ListBoardgames()
	if err != nil {
		return nil, err
	}
	return models.FuzzyFilter(games, query), nil
}

// CreateBoardgames inserts records in a single transaction. Either all are
// stored (ids set on each element) or none are.
func (db *DB) CreateBoardgames(games []models.Boardgame) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	committed := false
	defer func() {
		if !committed {
			for i := range games {
				games[i].ID = 0
			}
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO boardgames (name, min_players, max_players, play_time_minutes, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for i := range games {
		b := &games[i]
		res, err := stmt.Exec(b.Name, b.MinPlayers, b.MaxPlayers, b.PlayTimeMinutes, b.Description, formatTime(now), formatTime(now))
		if err != nil {
			return fmt.Errorf("insert %q: %w", b.Name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("read insert id: %w", err)
		}
		b.ID = id
		b.CreatedAt = now
		b.UpdatedAt = now
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	committed = true
	return nil
}
