package index

import (
	"context"
	"fmt"
	"sort"

	"github.com/kozaktomas/face-index/internal/face"
)

// DefaultDatasetLimit caps how many faces the in-memory working set
// holds when no override is configured.
const DefaultDatasetLimit = 10000

// RecentLoader is the slice of the persistence layer the dataset needs:
// the most recently assigned faces, newest ids first.
type RecentLoader interface {
	LoadRecent(ctx context.Context, limit int) ([]face.Face, error)
}

// Dataset is the bounded in-memory working set of faces the tree is
// rebuilt from. It is not safe for concurrent use; the resolver guards
// it together with the tree.
type Dataset struct {
	limit int
	faces []face.Face
}

// NewDataset creates an empty dataset with the given capacity. A
// non-positive limit falls back to DefaultDatasetLimit.
func NewDataset(limit int) *Dataset {
	if limit <= 0 {
		limit = DefaultDatasetLimit
	}
	return &Dataset{limit: limit}
}

// Push adds a face, evicting the entry with the lowest id once the
// dataset is full. Lowest id stands in for oldest; the policy is an
// approximate FIFO, not a strict one.
func (d *Dataset) Push(f face.Face) {
	if len(d.faces) < d.limit {
		d.faces = append(d.faces, f)
		return
	}
	sort.Slice(d.faces, func(i, j int) bool { return d.faces[i].ID < d.faces[j].ID })
	d.faces[0] = f
}

// Clear empties the dataset.
func (d *Dataset) Clear() {
	d.faces = d.faces[:0]
}

// Load replaces the dataset contents with up to limit faces from the
// store, newest first.
func (d *Dataset) Load(ctx context.Context, src RecentLoader) error {
	faces, err := src.LoadRecent(ctx, d.limit)
	if err != nil {
		return fmt.Errorf("loading recent faces: %w", err)
	}
	if len(faces) > d.limit {
		faces = faces[:d.limit]
	}
	d.faces = append(d.faces[:0], faces...)
	return nil
}

// Faces returns the backing slice. Callers must not mutate it; Build
// copies before partitioning.
func (d *Dataset) Faces() []face.Face {
	return d.faces
}

// Len returns the number of faces currently held.
func (d *Dataset) Len() int {
	return len(d.faces)
}

// Limit returns the dataset capacity.
func (d *Dataset) Limit() int {
	return d.limit
}
