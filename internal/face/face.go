// Package face defines the attribute vector the index operates on.
package face

import (
	"errors"
	"fmt"
)

// Dims is the number of indexed attributes.
const Dims = 3

// Attribute bounds. Race is expressed on a 0-100 scale, emotion and
// oldness on a 0-1000 scale.
const (
	MaxRace    = 100
	MaxEmotion = 1000
	MaxOldness = 1000
)

// ErrOutOfRange is returned when a face attribute lies outside its
// documented bound.
var ErrOutOfRange = errors.New("face attribute out of range")

// Face is a three-dimensional integer feature vector plus a database
// identity. ID 0 means the face has not been persisted yet. A Face is
// treated as immutable once it carries a non-zero ID.
type Face struct {
	ID      int64 `json:"id"`
	Race    int   `json:"race"`
	Emotion int   `json:"emotion"`
	Oldness int   `json:"oldness"`
}

// New validates the attribute triple and returns an unpersisted Face.
func New(race, emotion, oldness int) (Face, error) {
	return NewWithID(0, race, emotion, oldness)
}

// NewWithID validates all fields and returns a Face carrying the given
// database id. Used when hydrating rows from a store.
func NewWithID(id int64, race, emotion, oldness int) (Face, error) {
	if id < 0 {
		return Face{}, fmt.Errorf("id %d must not be negative: %w", id, ErrOutOfRange)
	}
	if race < 0 || race > MaxRace {
		return Face{}, fmt.Errorf("race %d outside [0,%d]: %w", race, MaxRace, ErrOutOfRange)
	}
	if emotion < 0 || emotion > MaxEmotion {
		return Face{}, fmt.Errorf("emotion %d outside [0,%d]: %w", emotion, MaxEmotion, ErrOutOfRange)
	}
	if oldness < 0 || oldness > MaxOldness {
		return Face{}, fmt.Errorf("oldness %d outside [0,%d]: %w", oldness, MaxOldness, ErrOutOfRange)
	}
	return Face{ID: id, Race: race, Emotion: emotion, Oldness: oldness}, nil
}

// Axis returns the attribute on the given axis (0 race, 1 emotion,
// 2 oldness). Panics on any other index - axis values always come from
// the tree's fixed rotation.
func (f Face) Axis(i int) int {
	switch i {
	case 0:
		return f.Race
	case 1:
		return f.Emotion
	case 2:
		return f.Oldness
	}
	panic(fmt.Sprintf("face: axis index %d out of range", i))
}

// WithID returns a copy of the face stamped with a persisted id.
func (f Face) WithID(id int64) Face {
	f.ID = id
	return f
}

// DistanceSquared computes the squared Euclidean distance between two
// faces. No square root is taken - ranking only needs a monotonic
// ordering.
func DistanceSquared(a, b Face) int64 {
	var sum int64
	for i := 0; i < Dims; i++ {
		d := int64(a.Axis(i) - b.Axis(i))
		sum += d * d
	}
	return sum
}

func (f Face) String() string {
	return fmt.Sprintf("face(id=%d race=%d emotion=%d oldness=%d)", f.ID, f.Race, f.Emotion, f.Oldness)
}
