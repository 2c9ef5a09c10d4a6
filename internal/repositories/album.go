package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/desertthunder/spins/internal/models"
	"github.com/desertthunder/spins/internal/shared"
	"github.com/mattn/go-sqlite3"
)

// AlbumRepository implements [models.Catalog] on SQLite.
//
// Titles are unique at the schema level and rows are ordered by their sequence number.
type AlbumRepository struct {
	db *sql.DB
}

// NewAlbumRepository creates a new AlbumRepository with the given database connection
func NewAlbumRepository(db *sql.DB) *AlbumRepository {
	return &AlbumRepository{db: db}
}

// OpenMemoryCatalog opens a private in-memory database, migrates it, and wraps it in an AlbumRepository.
//
// Callers own the returned repository and must Close it.
func OpenMemoryCatalog() (*AlbumRepository, error) {
	db, err := shared.NewDatabase(shared.MemoryDSN)
	if err != nil {
		return nil, err
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return NewAlbumRepository(db), nil
}

// Close releases the underlying database.
func (r *AlbumRepository) Close() error {
	return r.db.Close()
}

// Add inserts an unplayed album with a generated ID and the next sequence number
func (r *AlbumRepository) Add(title, artist string) error {
	if _, err := r.Get(title); err == nil {
		return fmt.Errorf("%w: %q", shared.ErrAlbumExists, title)
	} else if !errors.Is(err, shared.ErrAlbumNotFound) {
		return err
	}

	sequence, err := NextSequence(r.db, "albums")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	album := models.NewAlbum(shared.GenerateID(), title, artist)

	query := `
		INSERT INTO albums (id, sequence, title, artist, played, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, album.ID, sequence, album.Title, album.Artist, album.Played, album.AddedAt, album.AddedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("%w: %q", shared.ErrAlbumExists, title)
		}
		return fmt.Errorf("failed to insert album: %w", err)
	}

	return nil
}

// Get retrieves an album by exact title
func (r *AlbumRepository) Get(title string) (models.Album, error) {
	query := `
		SELECT id, title, artist, played, created_at
		FROM albums
		WHERE title = ?
	`

	album, err := scanAlbum(r.db.QueryRow(query, title))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Album{}, fmt.Errorf("%w: %q", shared.ErrAlbumNotFound, title)
	}
	return album, err
}

// MarkPlayed sets the played flag; matching an already played row still counts as success.
func (r *AlbumRepository) MarkPlayed(title string) error {
	result, err := r.db.Exec(`UPDATE albums SET played = 1, updated_at = ? WHERE title = ?`, time.Now(), title)
	if err != nil {
		return fmt.Errorf("failed to update album: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %q", shared.ErrAlbumNotFound, title)
	}

	return nil
}

// Query returns matching albums ordered by sequence.
//
// Rows are drained before returning: the in-memory pool has a single connection, and a handler
// that writes while iterating would otherwise block on it.
func (r *AlbumRepository) Query(filter models.Filter) (iter.Seq[models.Album], error) {
	query := `
		SELECT id, title, artist, played, created_at
		FROM albums
		WHERE 1 = 1
	`

	args := []any{}

	if filter.Artist != nil {
		query += " AND artist = ?"
		args = append(args, *filter.Artist)
	}

	if filter.Played != nil {
		query += " AND played = ?"
		args = append(args, *filter.Played)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query albums: %w", err)
	}
	defer rows.Close()

	var albums []models.Album
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, err
		}
		albums = append(albums, album)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return slices.Values(albums), nil
}

// Count returns the number of albums
func (r *AlbumRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM albums").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count albums: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanAlbum scans a [sql.Row] or the current row of [sql.Rows] into a [models.Album]
func scanAlbum(s scanner) (models.Album, error) {
	var album models.Album
	err := s.Scan(&album.ID, &album.Title, &album.Artist, &album.Played, &album.AddedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Album{}, err
	}
	if err != nil {
		return models.Album{}, fmt.Errorf("failed to scan album: %w", err)
	}
	return album, nil
}
