package game

import "time"

const (
	// Gravity is the downward acceleration applied to the player, in units/s².
	Gravity = float32(980)
	// HorizontalDamping is the exponential horizontal velocity decay rate, per second.
	HorizontalDamping = float32(10)
	// GroundEpsilon is the slack added to the player height when probing for ground contact.
	GroundEpsilon = float32(0.01)
	// WallMargin keeps the player this far away from the scene bounds.
	WallMargin = float32(2)
	// WallThickness is the thickness of the four walls bounding the scene.
	WallThickness = float32(10)
	// TargetCeilingMultiplier bounds target altitude to this multiple of the player height.
	TargetCeilingMultiplier = float32(5)
	// SpawnFloorClearance lifts targets spawned below the floor to this multiple of their radius.
	SpawnFloorClearance = float32(1.1)
)

const (
	// RenderIntervalSlack is the fraction of the target frame interval after which a timer-paced tick renders.
	RenderIntervalSlack = 0.95
	// ParticleStep is the fixed cadence particle effects are simulated at.
	ParticleStep = time.Second / 60
	// PollInterval is the minimal rescheduling delay of the timer-paced scheduler.
	PollInterval = time.Millisecond
	// FrameTimeHistory is the number of tick intervals kept for frame-time statistics.
	FrameTimeHistory = 100
)

const (
	ParticleGravity       = float32(0.03)
	ParticleBounce        = float32(0.5)
	ParticleGroundedRatio = float32(0.7)
	// DestroyParticleDuration is how long destruction particles live, in seconds.
	DestroyParticleDuration = 0.3
)

const (
	DefaultNearPlane = float32(0.1)
	DefaultFarPlane  = float32(10000)
	// MaxRayDistance bounds shot and collision raycasts.
	MaxRayDistance = float32(10000)
)
