package parameter

import "time"

// Playback Timing
const (
	// UpdateRateMs is the target time slice for one micro-step in milliseconds
	// Hosts replay the compensation table at this rate
	UpdateRateMs = 16

	// UpdateRate is UpdateRateMs as a duration
	UpdateRate = UpdateRateMs * time.Millisecond
)

// Angle Conversion
// Raw angle is divided by AngleScale * sensitivity * AngleGain * (fov / FOVDivisor)
// The negative scale flips raw upward recoil into compensating pointer movement
const (
	// AngleScale is the empirical per-sensitivity scale factor
	AngleScale = -0.03

	// AngleGain is the fixed gain folded into the conversion divisor
	AngleGain = 3.0

	// FOVDivisor normalizes field of view to a fraction
	FOVDivisor = 100.0

	// FastFireDamping scales both axes for the fast-fire weapon set
	FastFireDamping = 0.847
)

// User Settings
const (
	// DefaultSensitivity is the in-game sensitivity assumed at startup
	DefaultSensitivity = 5.0

	// DefaultFieldOfView is the in-game field of view assumed at startup
	DefaultFieldOfView = 90.0

	// MinFieldOfView is the lowest accepted field of view (inclusive)
	MinFieldOfView = 75.0

	// MaxFieldOfView is the highest accepted field of view (inclusive)
	MaxFieldOfView = 120.0

	// SensitivityPrecision is the number of fractional digits kept when formatting sensitivity
	SensitivityPrecision = 5
)

// Neutral Values
const (
	// NeutralMultiplier is the attachment multiplier that leaves recoil unchanged
	NeutralMultiplier = 1.0

	// SentinelName is the display name of every "nothing selected" profile
	SentinelName = "none"
)
