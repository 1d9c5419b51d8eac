package entity

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/aimbench/game"
)

// Target represents a spherical target the player shoots at.
type Target struct {
	// ID uniquely identifies the target within its Manager.
	ID uint64
	// Position is the centre of the target.
	Position mgl32.Vec3
	// Velocity is the velocity of the target in units/s.
	Velocity mgl32.Vec3
	// Radius is the radius of the target sphere.
	Radius float32
	// Health is the remaining health of the target, starting at 1. It only ever decreases.
	Health float32
	// TimeToNextChange is the time in seconds until the target picks a new random velocity.
	TimeToNextChange float32
	// Age is the time in seconds since the target spawned.
	Age float32
	// Reference is true for the single calibration target shown before a session starts.
	Reference bool
	// Color is the display colour of the target.
	Color game.Color
}

// Speed returns the current speed of the target.
func (t *Target) Speed() float32 {
	return t.Velocity.Len()
}
