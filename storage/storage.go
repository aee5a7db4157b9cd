// Package storage defines the roll history persistence contract
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrAlreadyExists is returned when a roll id is recorded twice
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInvalidRoll is returned for records missing required fields
	ErrInvalidRoll = errors.New("invalid roll record")
)

// Roll is one completed roll
type Roll struct {
	ID         string
	Session    uint64
	Die        string // table name, e.g. d20 or a calibration file base name
	Faces      int
	Face       int
	Source     string
	Reason     string
	Distance   float64
	StartedAt  time.Time
	ResolvedAt time.Time
}

// Validate checks the fields every store requires
func (r Roll) Validate() error {
	switch {
	case r.ID == "":
		return errors.Join(ErrInvalidRoll, errors.New("id is required"))
	case r.Die == "":
		return errors.Join(ErrInvalidRoll, errors.New("die is required"))
	case r.Faces <= 0 || r.Face < 1 || r.Face > r.Faces:
		return errors.Join(ErrInvalidRoll, errors.New("face outside 1..faces"))
	}
	return nil
}

// FaceCount is one row of a face distribution
type FaceCount struct {
	Face  int
	Count int
}

// RollStore persists roll history
type RollStore interface {
	RecordRoll(ctx context.Context, roll Roll) error
	ListRecentRolls(ctx context.Context, limit int) ([]Roll, error)
	FaceCounts(ctx context.Context, die string) ([]FaceCount, error)
	Close() error
}
