// Package database defines the persistence boundary of the face index.
// The core only ever talks to a FaceStore; concrete backends live in
// the postgres, mariadb and mock subpackages.
package database

import (
	"context"

	"github.com/kozaktomas/face-index/internal/face"
)

// FaceStore is the persistence collaborator the resolver consumes.
type FaceStore interface {
	// Insert stores a face and returns its freshly assigned id,
	// strictly positive and previously unused.
	Insert(ctx context.Context, f face.Face) (int64, error)

	// LoadRecent returns up to limit faces ordered newest id first.
	LoadRecent(ctx context.Context, limit int) ([]face.Face, error)

	// Truncate deletes all stored faces.
	Truncate(ctx context.Context) error

	// Count returns the number of stored faces.
	Count(ctx context.Context) (int, error)
}
