package parameter

import "time"

// Throw controller
const (
	// ThrowScale converts device units/ms into tray units/s on the horizontal plane
	ThrowScale = 4.0

	// ThrowMinLift is the upward speed every release gets, units/s
	ThrowMinLift = 4.0

	// ThrowMaxSpeed is the linear speed ceiling, units/s
	ThrowMaxSpeed = 25.0

	// ThrowSpinScale converts sample norm into angular speed, rad/s per device unit/ms
	ThrowSpinScale = 6.0

	// ThrowMinSpin and ThrowMaxSpin bound angular speed, rad/s
	ThrowMinSpin = 4.0
	ThrowMaxSpin = 24.0

	// RandomThrowMin and RandomThrowMax bound explicit-roll sample speed, device units/ms
	RandomThrowMin = 0.8
	RandomThrowMax = 3.0
)

// Drag handling
const (
	// DragHeight is the hold height of a dragged body above the floor
	DragHeight = 3.0

	// DropHeight is the spawn height of an explicit roll
	DropHeight = 6.0

	// DropSpread is the fraction of the tray interior used for random drop points
	DropSpread = 0.5

	// HitSlop scales the body radius for pointer hit-testing
	HitSlop = 1.5

	// SampleWindow is the time constant of the rolling pointer velocity sample
	SampleWindow = 50 * time.Millisecond

	// SampleStale discards the sample when the pointer rested this long before release
	SampleStale = 120 * time.Millisecond
)

// Settle detection
const (
	// SettleLinearThreshold and SettleAngularThreshold are the "stopped" speeds
	SettleLinearThreshold  = 0.1
	SettleAngularThreshold = 0.1

	// RestPlaneMargin is added to the radius to form the resting plane height
	RestPlaneMargin = 0.1

	// SettleConfirm is how long readings must stay quiet
	SettleConfirm = 500 * time.Millisecond

	// SettleCeiling forces a stop measured from throw start
	SettleCeiling = 3000 * time.Millisecond
)

// Snap & presentation
const (
	// SnapBlend is the fraction of the distance to the nearest face applied on settle
	SnapBlend = 0.5

	// CalibrationSeparationMin is the smallest distance allowed between two face references, radians
	CalibrationSeparationMin = 0.2

	// PresentDuration is the full presentation transition, split into two equal halves
	PresentDuration = 1500 * time.Millisecond

	// PresentLift is the apex height of the presentation transition
	PresentLift = 4.0
)
