package entity

import (
	"github.com/chewxy/math32"
	"github.com/oomph-ac/aimbench/game"
)

// Tick advances every target by dt seconds.
func (m *Manager) Tick(dt float32) {
	for _, t := range m.targets {
		m.tickTarget(t, dt)
	}
}

// tickTarget moves a single target. Leaving the bound region or an imminent collision reflects the velocity, and
// either takes priority over picking a new random velocity in the same tick.
func (m *Manager) tickTarget(t *Target, dt float32) {
	reflected := m.reflectAtBounds(t)

	if !reflected && m.conf.Targets.CollisionDetection {
		if speed := t.Speed(); speed > 0 {
			hit, ok := game.SafeRaycast(m.world, m.log, t.Position, t.Velocity.Mul(1/speed), t.Radius+dt*speed)
			if ok {
				t.Velocity = game.Reflect(t.Velocity, hit.Normal)
				reflected = true
			}
		}
	}

	t.TimeToNextChange -= dt
	if t.TimeToNextChange <= 0 && !reflected {
		t.Velocity = m.randomVelocity()
		t.TimeToNextChange = m.randomChangeTime()
	}

	t.Age += dt
	t.Position = t.Position.Add(t.Velocity.Mul(dt))
}

// reflectAtBounds points the velocity back inside the bound region on every axis the target has left. It returns
// true if any axis was reflected.
func (m *Manager) reflectAtBounds(t *Target) bool {
	boundX, boundZ := m.horizontalBounds()
	ceiling := game.TargetCeilingMultiplier * float32(m.conf.Player.Height)

	var reflected bool
	if math32.Abs(t.Position.X()) > boundX {
		t.Velocity[0] = -game.Sign(t.Position.X()) * math32.Abs(t.Velocity.X())
		reflected = true
	}
	if t.Position.Y() < t.Radius {
		t.Velocity[1] = math32.Abs(t.Velocity.Y())
		reflected = true
	} else if t.Position.Y() > ceiling {
		t.Velocity[1] = -math32.Abs(t.Velocity.Y())
		reflected = true
	}
	if math32.Abs(t.Position.Z()) > boundZ {
		t.Velocity[2] = -game.Sign(t.Position.Z()) * math32.Abs(t.Velocity.Z())
		reflected = true
	}
	return reflected
}

// horizontalBounds returns the half-extents targets are kept within: the box-free clearing around the spawn point,
// or the whole scene.
func (m *Manager) horizontalBounds() (x, z float32) {
	if m.conf.Targets.KeepInClearing {
		r := float32(m.conf.Scene.Boxes.MinDistanceToPlayer)
		return r, r
	}
	return float32(m.conf.Scene.Width) / 2, float32(m.conf.Scene.Depth) / 2
}
