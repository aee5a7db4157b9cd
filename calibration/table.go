// Package calibration maps continuous body attitudes to discrete face numbers
package calibration

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/dice-tray/vmath"
)

var (
	// ErrEmptyTable is returned for a table with no entries
	ErrEmptyTable = errors.New("calibration table is empty")
	// ErrInvalidFace is returned for face numbers outside 1..N or duplicated faces
	ErrInvalidFace = errors.New("calibration face numbering invalid")
	// ErrInvalidAngle is returned for NaN or infinite reference angles
	ErrInvalidAngle = errors.New("calibration angle invalid")
	// ErrFacesTooClose is returned by the separation health check
	ErrFacesTooClose = errors.New("calibration faces too close")
)

// Entry pairs a face number with its face-up reference orientation
type Entry struct {
	Face      int
	Reference vmath.Orientation
}

// Table is an immutable ordered face table, one entry per face 1..N
type Table struct {
	entries []Entry
}

// New validates and copies entries into a table
// Entries may arrive in any order; the table is stored ordered by face number
func New(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyTable
	}

	ordered := make([]Entry, len(entries))
	seen := make([]bool, len(entries)+1)
	for _, e := range entries {
		if e.Face < 1 || e.Face > len(entries) {
			return nil, fmt.Errorf("%w: face %d outside 1..%d", ErrInvalidFace, e.Face, len(entries))
		}
		if seen[e.Face] {
			return nil, fmt.Errorf("%w: face %d listed twice", ErrInvalidFace, e.Face)
		}
		ref := e.Reference
		for _, a := range [3]float64{ref.X, ref.Y, ref.Z} {
			if math.IsNaN(a) || math.IsInf(a, 0) {
				return nil, fmt.Errorf("%w: face %d", ErrInvalidAngle, e.Face)
			}
		}
		seen[e.Face] = true
		ordered[e.Face-1] = e
	}

	return &Table{entries: ordered}, nil
}

// MustNew is New for built-in tables; panics on error
func MustNew(entries []Entry) *Table {
	t, err := New(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Faces returns the face count
func (t *Table) Faces() int {
	return len(t.entries)
}

// Entries returns a copy of the ordered entries
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Reference returns the reference orientation of face
func (t *Table) Reference(face int) (vmath.Orientation, bool) {
	if face < 1 || face > len(t.entries) {
		return vmath.Orientation{}, false
	}
	return t.entries[face-1].Reference, true
}

// MinSeparation returns the closest pair of faces and their distance
// A single-face table reports +Inf
func (t *Table) MinSeparation() (faceA, faceB int, distance float64) {
	distance = math.Inf(1)
	for i := 0; i < len(t.entries); i++ {
		for j := i + 1; j < len(t.entries); j++ {
			d := t.entries[i].Reference.Distance(t.entries[j].Reference)
			if d < distance {
				distance = d
				faceA, faceB = t.entries[i].Face, t.entries[j].Face
			}
		}
	}
	return faceA, faceB, distance
}

// CheckSeparation fails when any two references are within tolerance
func (t *Table) CheckSeparation(tolerance float64) error {
	a, b, d := t.MinSeparation()
	if d <= tolerance {
		return fmt.Errorf("%w: faces %d and %d are %.4f apart, need > %.4f", ErrFacesTooClose, a, b, d, tolerance)
	}
	return nil
}
