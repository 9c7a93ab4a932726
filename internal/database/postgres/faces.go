package postgres

import (
	"context"
	"fmt"

	"github.com/kozaktomas/face-index/internal/face"
)

// FaceRepository provides PostgreSQL-backed face storage.
type FaceRepository struct {
	pool *Pool
}

// NewFaceRepository creates a new PostgreSQL face repository.
func NewFaceRepository(pool *Pool) *FaceRepository {
	return &FaceRepository{pool: pool}
}

// Insert stores a face and returns its assigned id.
func (r *FaceRepository) Insert(ctx context.Context, f face.Face) (int64, error) {
	var id int64
	err := r.pool.QueryRow(
		ctx,
		"INSERT INTO faces (race, emotion, oldness) VALUES ($1, $2, $3) RETURNING id",
		f.Race, f.Emotion, f.Oldness,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert face: %w", err)
	}
	return id, nil
}

// LoadRecent returns up to limit faces ordered newest id first.
func (r *FaceRepository) LoadRecent(ctx context.Context, limit int) ([]face.Face, error) {
	rows, err := r.pool.Query(
		ctx,
		"SELECT id, race, emotion, oldness FROM faces ORDER BY id DESC LIMIT $1",
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

// Truncate deletes all stored faces.
func (r *FaceRepository) Truncate(ctx context.Context) error {
	// CONTINUE IDENTITY (the default) keeps the sequence running so ids
	// are never reused across a flush.
	if _, err := r.pool.Exec(ctx, "TRUNCATE TABLE faces"); err != nil {
		return fmt.Errorf("truncate faces: %w", err)
	}
	return nil
}

// Count returns the total number of faces stored.
func (r *FaceRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM faces").Scan(&count); err != nil {
		return 0, fmt.Errorf("count faces: %w", err)
	}
	return count, nil
}
