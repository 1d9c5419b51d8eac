package player

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/aimbench/game"
)

// Tick advances the player by dt seconds. While the controller is disabled the player is held still on the ground.
func (c *Controller) Tick(dt float32) {
	s := &c.state
	if !c.enabled {
		s.Velocity = mgl32.Vec3{}
		s.Position[1] = s.Height
		return
	}

	s.Velocity[1] -= game.Gravity * dt
	damping := max(1-game.HorizontalDamping*dt, 0)
	s.Velocity[0] *= damping
	s.Velocity[2] *= damping
	s.Velocity = s.Velocity.Add(game.RotateYaw(s.DesiredVelocity, s.Yaw).Mul(dt))

	collide := c.conf.Player.CollisionDetection
	if collide {
		c.deflect()
	}
	s.Position = s.Position.Add(s.Velocity.Mul(dt))

	s.Grounded = false
	if collide {
		c.groundContact()
	}

	// The floor holds the player up even when collision detection is disabled.
	if s.Position.Y() < s.Height {
		s.Position[1] = s.Height
		s.Velocity[1] = 0
		s.CanJump = true
		s.Grounded = true
	}

	c.clampToBounds()
}

// deflect removes the velocity component along the normal of a wall the player is about to walk into. Only the
// nearest contact is resolved each tick.
func (c *Controller) deflect() {
	s := &c.state
	dir := game.Horizontal(s.Velocity)
	if dir.LenSqr() < 1e-12 {
		return
	}
	hit, ok := game.SafeRaycast(c.world, c.log, s.Position, dir.Normalize(), float32(c.conf.Player.CollisionDistance))
	if !ok {
		return
	}
	s.Velocity = game.RemoveComponent(s.Velocity, hit.Normal)
}

// groundContact probes straight down for the ground.
func (c *Controller) groundContact() {
	s := &c.state
	hit, ok := game.SafeRaycast(c.world, c.log, s.Position, mgl32.Vec3{0, -1, 0}, s.Height+game.GroundEpsilon)
	if !ok {
		return
	}
	if s.Velocity.Y() < 0 {
		s.Velocity[1] = 0
		s.Position[1] = hit.Position.Y() + s.Height
	}
	s.CanJump = true
	s.Grounded = true
}

// clampToBounds keeps the player inside the scene, stopping movement along a clamped axis.
func (c *Controller) clampToBounds() {
	s := &c.state
	boundX := float32(c.conf.Scene.Width)/2 - game.WallMargin
	boundZ := float32(c.conf.Scene.Depth)/2 - game.WallMargin
	if math32.Abs(s.Position.X()) > boundX {
		s.Velocity[0] = 0
		s.Position[0] = game.Sign(s.Position.X()) * boundX
	}
	if math32.Abs(s.Position.Z()) > boundZ {
		s.Velocity[2] = 0
		s.Position[2] = game.Sign(s.Position.Z()) * boundZ
	}
}
