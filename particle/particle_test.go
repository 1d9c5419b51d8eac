package particle

import (
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/aimbench/game"
)

func TestSpawnRandomColours(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	e := Spawn(mgl32.Vec3{0, 10, 0}, game.Color{}, 0.2, 50, 0, time.Now(), rng)
	if len(e.Particles) != 50 {
		t.Fatalf("expected 50 particles, got %d", len(e.Particles))
	}
	for _, p := range e.Particles {
		if p.Color.R < 0.5 || p.Color.G > 0.3 || p.Color.B != 0 {
			t.Fatalf("expected a warm random colour, got %+v", p.Color)
		}
		if p.Offset.Len() > 1 {
			t.Fatalf("expected offset within unit radius, got %v", p.Offset)
		}
	}

	red := game.Color{R: 1}
	e = Spawn(mgl32.Vec3{}, red, 0.2, 5, 0, time.Now(), rng)
	for _, p := range e.Particles {
		if p.Color != red {
			t.Fatalf("expected the given colour, got %+v", p.Color)
		}
	}
}

func TestTickRemovesLandedEffects(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	now := time.Now()
	effects := []Effect{Spawn(mgl32.Vec3{0, 2, 0}, game.Color{}, 0.2, 100, 0, now, rng)}

	for i := 0; i < 10000 && len(effects) > 0; i++ {
		effects = Tick(effects, now)
	}
	if len(effects) != 0 {
		t.Fatalf("expected the effect to be removed once its particles landed")
	}
}

func TestTickRemovesExpiredEffects(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	now := time.Now()
	effects := []Effect{
		Spawn(mgl32.Vec3{0, 1000, 0}, game.Color{}, 0.2, 10, 300*time.Millisecond, now, rng),
		Spawn(mgl32.Vec3{0, 1000, 0}, game.Color{}, 0.2, 10, 0, now, rng),
		Spawn(mgl32.Vec3{0, 1000, 0}, game.Color{}, 0.2, 10, 300*time.Millisecond, now, rng),
	}

	effects = Tick(effects, now.Add(100*time.Millisecond))
	if len(effects) != 3 {
		t.Fatalf("expected every effect alive, got %d", len(effects))
	}
	effects = Tick(effects, now.Add(time.Second))
	if len(effects) != 1 || effects[0].Duration != 0 {
		t.Fatalf("expected only the unbounded effect to remain, got %d", len(effects))
	}
}

func TestParticlesFallAndBounce(t *testing.T) {
	e := Effect{
		Origin:    mgl32.Vec3{0, 0.05, 0},
		Particles: []Particle{{}, {Offset: mgl32.Vec3{0, 5, 0}, Previous: mgl32.Vec3{0, 5, 0}}},
	}
	step(&e, time.Now())
	if e.Particles[1].Offset.Y() >= 5 {
		t.Fatalf("expected gravity to pull the particle down, got %v", e.Particles[1].Offset)
	}

	// The first particle reaches the floor on its second step and must bounce.
	y := e.Particles[0].Offset.Y()
	step(&e, time.Now())
	if e.Particles[0].Offset.Y() <= y-game.ParticleGravity*2 {
		t.Fatalf("expected the grounded particle to bounce, got %v", e.Particles[0].Offset)
	}
}
