// Package mariadb provides a MariaDB/MySQL backed face store for
// deployments without PostgreSQL.
package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kozaktomas/face-index/internal/face"
	_ "github.com/go-sql-driver/mysql"
)

// Store is a MariaDB-backed face store.
type Store struct {
	db *sql.DB
}

// NewStore creates a MariaDB connection pool and ensures the schema
// exists.
func NewStore(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("MariaDB DSN is required")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MariaDB: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping MariaDB: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("closing database connection: %w", err)
		}
	}
	return nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS faces (
			id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			race       SMALLINT NOT NULL,
			emotion    SMALLINT NOT NULL,
			oldness    SMALLINT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create faces table: %w", err)
	}
	return nil
}

// Insert stores a face and returns its assigned id.
func (s *Store) Insert(ctx context.Context, f face.Face) (int64, error) {
	result, err := s.db.ExecContext(
		ctx,
		"INSERT INTO faces (race, emotion, oldness) VALUES (?, ?, ?)",
		f.Race, f.Emotion, f.Oldness,
	)
	if err != nil {
		return 0, fmt.Errorf("insert face: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted face id: %w", err)
	}
	return id, nil
}

// LoadRecent returns up to limit faces ordered newest id first.
func (s *Store) LoadRecent(ctx context.Context, limit int) ([]face.Face, error) {
	rows, err := s.db.QueryContext(
		ctx,
		"SELECT id, race, emotion, oldness FROM faces ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent faces: %w", err)
	}
	defer rows.Close()

	var faces []face.Face
	for rows.Next() {
		var (
			id                     int64
			race, emotion, oldness int
		)
		if err := rows.Scan(&id, &race, &emotion, &oldness); err != nil {
			return nil, fmt.Errorf("scan face row: %w", err)
		}
		f, err := face.NewWithID(id, race, emotion, oldness)
		if err != nil {
			return nil, fmt.Errorf("face %d fails validation: %w", id, err)
		}
		faces = append(faces, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate face rows: %w", err)
	}
	return faces, nil
}

// Truncate deletes all stored faces. DELETE rather than TRUNCATE so the
// AUTO_INCREMENT counter keeps running and ids stay unique across a
// flush.
func (s *Store) Truncate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM faces"); err != nil {
		return fmt.Errorf("delete faces: %w", err)
	}
	return nil
}

// Count returns the total number of faces stored.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM faces").Scan(&count); err != nil {
		return 0, fmt.Errorf("count faces: %w", err)
	}
	return count, nil
}
