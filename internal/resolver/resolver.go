// Package resolver orchestrates a resolve request: register the query
// face, rebuild the partition tree over the cached dataset and search
// it for the closest matches.
package resolver

import (
	"context"
	"fmt"
	"sync"

	"github.com/kozaktomas/face-index/internal/database"
	"github.com/kozaktomas/face-index/internal/face"
	"github.com/kozaktomas/face-index/internal/index"
)

// Resolver owns the dataset and the tree as one unit of shared mutable
// state. A single mutex serializes resolves, flushes and rebuilds;
// nothing ever mutates a tree in place.
type Resolver struct {
	mu      sync.Mutex
	store   database.FaceStore
	dataset *index.Dataset
	tree    *index.Node
}

// New creates a resolver over the given store with a dataset of the
// given capacity.
func New(store database.FaceStore, datasetLimit int) *Resolver {
	return &Resolver{
		store:   store,
		dataset: index.NewDataset(datasetLimit),
	}
}

// Warm loads the most recent faces from the store and builds the
// initial tree. Called once at startup.
func (r *Resolver) Warm(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.dataset.Load(ctx, r.store); err != nil {
		return fmt.Errorf("warming dataset: %w", err)
	}
	r.tree = index.Build(r.dataset.Faces())
	return nil
}

// Resolve registers the query when it has no id yet, rebuilds the tree
// over the current dataset and returns the closest matches, the query
// itself first.
func (r *Resolver) Resolve(ctx context.Context, query face.Face) ([]index.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if query.ID == 0 {
		id, err := r.store.Insert(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("registering query face: %w", err)
		}
		query = query.WithID(id)
		r.dataset.Push(query)
	}

	// The old tree is discarded wholesale; there is no incremental
	// update.
	r.tree = index.Build(r.dataset.Faces())

	matches, err := index.Search(query, r.tree, r.dataset.Faces())
	if err != nil {
		return nil, fmt.Errorf("searching for %s: %w", query, err)
	}
	return matches, nil
}

// Flush deletes all stored faces, clears the dataset and drops the
// tree. Safe to call repeatedly.
func (r *Resolver) Flush(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Truncate(ctx); err != nil {
		return fmt.Errorf("truncating face store: %w", err)
	}
	r.dataset.Clear()
	r.tree = nil
	return nil
}

// Rebuild reloads the dataset from the store and rebuilds the tree.
// Returns the number of faces indexed.
func (r *Resolver) Rebuild(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.dataset.Load(ctx, r.store); err != nil {
		return 0, fmt.Errorf("reloading dataset: %w", err)
	}
	r.tree = index.Build(r.dataset.Faces())
	return r.dataset.Len(), nil
}

// CachedCount returns the number of faces in the in-memory dataset.
func (r *Resolver) CachedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dataset.Len()
}

// HasTree reports whether a tree is currently built. Small datasets
// stay flat and are searched linearly.
func (r *Resolver) HasTree() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tree != nil
}

// StoredCount returns the number of faces in the persistence layer.
func (r *Resolver) StoredCount(ctx context.Context) (int, error) {
	count, err := r.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting stored faces: %w", err)
	}
	return count, nil
}
