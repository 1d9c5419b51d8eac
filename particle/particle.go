package particle

import (
	"math/rand"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/aimbench/game"
)

// Particle is a single point of an effect, integrated with Verlet steps relative to the effect origin.
type Particle struct {
	Offset   mgl32.Vec3
	Previous mgl32.Vec3
	Color    game.Color
}

// Effect is a burst of particles emanating from a point.
type Effect struct {
	Origin    mgl32.Vec3
	Size      float32
	Particles []Particle

	Created time.Time
	// Duration is how long the effect lives. Zero means it lives until most particles have landed.
	Duration time.Duration
}

// Spawn creates an effect of count particles at origin. A zero colour gives every particle a random warm colour.
func Spawn(origin mgl32.Vec3, color game.Color, size float32, count int, duration time.Duration, now time.Time, rng *rand.Rand) Effect {
	e := Effect{
		Origin:    origin,
		Size:      size,
		Particles: make([]Particle, count),
		Created:   now,
		Duration:  duration,
	}
	for i := range e.Particles {
		c := color
		if c.IsZero() {
			c = game.Color{R: rng.Float32()*0.5 + 0.5, G: rng.Float32() * 0.3}
		}
		e.Particles[i] = Particle{Offset: randomOffset(rng, rng.Float32()), Color: c}
	}
	return e
}

// randomOffset returns a random point within radius of the origin. The previous position of a new particle is the
// origin, so the offset doubles as its initial velocity.
func randomOffset(rng *rand.Rand, radius float32) mgl32.Vec3 {
	radius *= rng.Float32()
	theta := rng.Float32() * 2 * math32.Pi
	phi := rng.Float32() * math32.Pi
	return mgl32.Vec3{
		radius * math32.Sin(phi) * math32.Cos(theta),
		radius * math32.Sin(phi) * math32.Sin(theta),
		radius * math32.Cos(phi),
	}
}

// Tick advances every effect by one step and returns the effects that are still alive. The slice is compacted in
// place.
func Tick(effects []Effect, now time.Time) []Effect {
	for i := len(effects) - 1; i >= 0; i-- {
		if step(&effects[i], now) {
			continue
		}
		effects = append(effects[:i], effects[i+1:]...)
	}
	return effects
}

// step advances e by one Verlet step. It returns false once the effect has finished.
func step(e *Effect, now time.Time) bool {
	var grounded int
	for i := range e.Particles {
		p := &e.Particles[i]
		vel := p.Offset.Sub(p.Previous)
		prev := p.Offset

		p.Offset[1] -= game.ParticleGravity
		p.Offset = p.Offset.Add(vel)
		if e.Origin.Y()+p.Offset.Y() <= 0 {
			prev[1] = p.Offset.Y()
			p.Offset[1] = prev.Y() - vel.Y()*game.ParticleBounce
			grounded++
		}
		p.Previous = prev
	}

	if float32(grounded) >= game.ParticleGroundedRatio*float32(len(e.Particles)) {
		return false
	}
	return e.Duration <= 0 || now.Sub(e.Created) <= e.Duration
}

// Points returns the world-space position of every particle in e.
func (e Effect) Points() []mgl32.Vec3 {
	points := make([]mgl32.Vec3, len(e.Particles))
	for i, p := range e.Particles {
		points[i] = e.Origin.Add(p.Offset)
	}
	return points
}
