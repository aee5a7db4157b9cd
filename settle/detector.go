// Package settle decides when a thrown body has stopped moving
package settle

import (
	"errors"
	"time"

	"github.com/lixenwraith/dice-tray/parameter"
)

// ErrInvalidParams is returned when thresholds or windows are not positive
var ErrInvalidParams = errors.New("invalid settle parameters")

// Reason explains a settle verdict
type Reason uint8

const (
	ReasonNone Reason = iota
	// ReasonQuiet means readings stayed under threshold for the confirmation window
	ReasonQuiet
	// ReasonCeiling means the roll hit the hard time limit
	ReasonCeiling
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonQuiet:
		return "quiet"
	case ReasonCeiling:
		return "ceiling"
	default:
		return "unknown"
	}
}

// Reading is one observation of body motion
type Reading struct {
	LinearSpeed  float64
	AngularSpeed float64
	Height       float64 // body center Y
}

// Params tunes settle detection
type Params struct {
	LinearThreshold  float64
	AngularThreshold float64
	RestPlane        float64 // body center must be below this height
	Confirm          time.Duration
	Ceiling          time.Duration
}

// DefaultParams returns tuned values for a body of the given radius
func DefaultParams(radius float64) Params {
	return Params{
		LinearThreshold:  parameter.SettleLinearThreshold,
		AngularThreshold: parameter.SettleAngularThreshold,
		RestPlane:        radius + parameter.RestPlaneMargin,
		Confirm:          parameter.SettleConfirm,
		Ceiling:          parameter.SettleCeiling,
	}
}

// Validate checks ranges
func (p Params) Validate() error {
	if p.LinearThreshold <= 0 || p.AngularThreshold <= 0 || p.RestPlane <= 0 {
		return ErrInvalidParams
	}
	if p.Confirm <= 0 || p.Ceiling <= 0 {
		return ErrInvalidParams
	}
	return nil
}

// Detector accumulates quiet time and total time for one throw
// Pure time and threshold logic, driven by the caller's step size
type Detector struct {
	params  Params
	quiet   time.Duration
	elapsed time.Duration
}

// NewDetector creates a detector
func NewDetector(params Params) (*Detector, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Detector{params: params}, nil
}

// Reset starts a new throw
func (d *Detector) Reset() {
	d.quiet = 0
	d.elapsed = 0
}

// Params returns the active parameters
func (d *Detector) Params() Params {
	return d.params
}

// Elapsed returns time observed since Reset
func (d *Detector) Elapsed() time.Duration {
	return d.elapsed
}

// Quiet returns the current uninterrupted quiet time
func (d *Detector) Quiet() time.Duration {
	return d.quiet
}

// IsQuiet reports whether a single reading is under all thresholds
func (d *Detector) IsQuiet(r Reading) bool {
	return r.LinearSpeed < d.params.LinearThreshold &&
		r.AngularSpeed < d.params.AngularThreshold &&
		r.Height < d.params.RestPlane
}

// Check feeds one reading taken dt after the previous one
// Any non-quiet reading restarts the confirmation window
func (d *Detector) Check(r Reading, dt time.Duration) Reason {
	if dt < 0 {
		dt = 0
	}
	d.elapsed += dt

	if d.IsQuiet(r) {
		d.quiet += dt
	} else {
		d.quiet = 0
	}

	if d.quiet >= d.params.Confirm {
		return ReasonQuiet
	}
	if d.elapsed >= d.params.Ceiling {
		return ReasonCeiling
	}
	return ReasonNone
}

// IsSettled is Check reduced to a boolean
func (d *Detector) IsSettled(r Reading, dt time.Duration) bool {
	return d.Check(r, dt) != ReasonNone
}
