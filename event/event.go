package event

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	EventIDFire byte = iota
	EventIDFireEnd
	EventIDJump
	EventIDToggleScope
	EventIDDesiredVelocity
	EventIDDesiredCameraRotation
)

// InputEvent is a discrete input action sampled from the platform. Events are immutable once created.
type InputEvent interface {
	ID() byte
}

// Batch is the ordered set of events sampled during a single tick.
type Batch []InputEvent

// Fire is sent when the fire button is pressed.
type Fire struct{}

func (Fire) ID() byte { return EventIDFire }

// FireEnd is sent when the fire button is released.
type FireEnd struct{}

func (FireEnd) ID() byte { return EventIDFireEnd }

type Jump struct{}

func (Jump) ID() byte { return EventIDJump }

// ToggleScope is sent when the scope button is pressed.
type ToggleScope struct{}

func (ToggleScope) ID() byte { return EventIDToggleScope }

// DesiredVelocity carries the camera-relative movement velocity requested by the movement keys, already scaled by
// the player speed. X points right and Z points backwards.
type DesiredVelocity struct {
	Velocity mgl32.Vec3
}

func (DesiredVelocity) ID() byte { return EventIDDesiredVelocity }

// DesiredCameraRotation carries an absolute camera orientation in degrees.
type DesiredCameraRotation struct {
	Yaw, Pitch float32
}

func (DesiredCameraRotation) ID() byte { return EventIDDesiredCameraRotation }

// Name returns a human readable name of the event, used for debug logging.
func Name(ev InputEvent) string {
	switch ev := ev.(type) {
	case Fire:
		return "fire"
	case FireEnd:
		return "fire_end"
	case Jump:
		return "jump"
	case ToggleScope:
		return "toggle_scope"
	case DesiredVelocity:
		return fmt.Sprintf("desired_velocity%v", ev.Velocity)
	case DesiredCameraRotation:
		return fmt.Sprintf("desired_rotation(%.2f, %.2f)", ev.Yaw, ev.Pitch)
	default:
		return fmt.Sprintf("unknown(%d)", ev.ID())
	}
}
