package parameter

// Tray geometry, Y up, floor at Y = 0, centered on the origin
const (
	TrayHalfWidth = 10.0
	TrayHalfDepth = 7.0

	// DieRadius is the sphere approximation of the die
	DieRadius = 1.0
)

// Integrator constants
const (
	// Gravity acceleration magnitude along -Y, units/s²
	Gravity = 29.46

	// FloorRestitution is the vertical energy kept on a floor bounce
	FloorRestitution = 0.3

	// WallRestitution is the horizontal energy kept on a wall bounce
	WallRestitution = 0.5

	// BounceStopSpeed zeroes vertical rebounds slower than this, units/s
	BounceStopSpeed = 1.0

	// ContactFriction is the horizontal speed removed per unit of floor normal impulse
	// A body resting on the floor slides to a stop at ContactFriction*Gravity units/s²
	ContactFriction = 0.5
	// ContactSpinFriction is the angular speed removed per unit of normal impulse, scaled by 1/radius
	ContactSpinFriction = 1.0
	// FloorFriction is the fraction of horizontal velocity removed per second while in floor contact
	FloorFriction = 2.2

	// FloorSpinFriction is the fraction of angular velocity removed per second while in floor contact
	FloorSpinFriction = 2.6

	// AirDamping applies to both linear and angular velocity while airborne
	AirDamping = 0.05

	// RollCoupling blends contact spin toward rolling-without-slipping per second
	RollCoupling = 1.5

	// ContactEpsilon is the gap under which the body counts as touching the floor
	ContactEpsilon = 0.02

	// ImpactReportSpeed is the minimum normal speed reported as an impact
	ImpactReportSpeed = 2.0
)
