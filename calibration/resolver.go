package calibration

import (
	"math"

	"github.com/lixenwraith/dice-tray/vmath"
)

// Resolver finds the calibrated face nearest a live orientation
// Linear scan: tables are small and every comparison stays auditable
type Resolver struct {
	table *Table
}

// NewResolver binds a resolver to a table
func NewResolver(table *Table) (*Resolver, error) {
	if table == nil || table.Faces() == 0 {
		return nil, ErrEmptyTable
	}
	return &Resolver{table: table}, nil
}

// Table returns the bound table
func (r *Resolver) Table() *Table {
	return r.table
}

// Resolve returns the nearest face and its distance
// Ties go to the lowest face number
//
// Distance is per-axis over Euler angles, and each face has a single reference, so spin about
// the vertical axis counts against a match. A body yawed far from its face's reference can
// resolve to a neighbouring face that is not the one pointing up. The result is a best-effort
// estimate; the die presents the resolved face afterwards, so the displayed pose always agrees
// with the returned number
func (r *Resolver) Resolve(o vmath.Orientation) (face int, distance float64) {
	distance = math.Inf(1)
	for _, e := range r.table.entries {
		d := o.Distance(e.Reference)
		// Strict comparison keeps the first (lowest) face on ties
		if d < distance {
			distance = d
			face = e.Face
		}
	}
	return face, distance
}

// Nearest returns the nearest face together with its reference
func (r *Resolver) Nearest(o vmath.Orientation) (Entry, float64) {
	face, d := r.Resolve(o)
	return r.table.entries[face-1], d
}
