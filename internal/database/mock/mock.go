// Package mock provides an in-memory FaceStore for testing.
package mock

import (
	"context"
	"sync"

	"github.com/kozaktomas/face-index/internal/face"
)

// FaceStore is an in-memory implementation of database.FaceStore.
type FaceStore struct {
	mu     sync.RWMutex
	faces  []face.Face
	nextID int64

	// Error injection
	InsertError     error
	LoadRecentError error
	TruncateError   error
	CountError      error
}

// NewFaceStore creates an empty mock store. Assigned ids start at 1.
func NewFaceStore() *FaceStore {
	return &FaceStore{nextID: 1}
}

// Seed inserts a face with a preset id, bumping the id sequence past it.
func (m *FaceStore) Seed(f face.Face) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faces = append(m.faces, f)
	if f.ID >= m.nextID {
		m.nextID = f.ID + 1
	}
}

// Insert stores a face and returns a fresh id.
func (m *FaceStore) Insert(ctx context.Context, f face.Face) (int64, error) {
	if m.InsertError != nil {
		return 0, m.InsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.faces = append(m.faces, f.WithID(id))
	return id, nil
}

// LoadRecent returns up to limit faces, newest id first.
func (m *FaceStore) LoadRecent(ctx context.Context, limit int) ([]face.Face, error) {
	if m.LoadRecentError != nil {
		return nil, m.LoadRecentError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []face.Face
	for i := len(m.faces) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.faces[i])
	}
	return out, nil
}

// Truncate removes all faces. The id sequence keeps running.
func (m *FaceStore) Truncate(ctx context.Context) error {
	if m.TruncateError != nil {
		return m.TruncateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faces = nil
	return nil
}

// Count returns the number of stored faces.
func (m *FaceStore) Count(ctx context.Context) (int, error) {
	if m.CountError != nil {
		return 0, m.CountError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.faces), nil
}
