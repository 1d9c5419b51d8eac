package entity

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/aimbench/game"
	"github.com/oomph-ac/aimbench/internal"
	"github.com/oomph-ac/aimbench/settings"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// View is the player pose targets are spawned relative to. Angles are in degrees.
type View struct {
	Position   mgl32.Vec3
	Yaw, Pitch float32
}

// Manager owns the collection of live targets. It must only be used from the goroutine running the simulation.
type Manager struct {
	targets []*Target
	nextID  uint64

	world game.Raycaster
	rng   *rand.Rand
	conf  settings.Config
	log   *logrus.Logger

	fullHealth, minHealth game.Color

	onHit     func(t *Target, point mgl32.Vec3)
	onDestroy func(t *Target)
}

// NewManager returns an empty target manager. Targets collide with world, and every random draw comes from rng.
func NewManager(world game.Raycaster, conf settings.Config, rng *rand.Rand, log *logrus.Logger) *Manager {
	m := &Manager{world: world, rng: rng, log: internal.Logger(log)}
	m.Configure(conf)
	return m
}

// Configure applies new settings. Live targets keep their state and only future spawns and ticks are affected.
func (m *Manager) Configure(conf settings.Config) {
	m.conf = conf
	m.fullHealth = game.MustParseHexColor(conf.Targets.FullHealthColor)
	m.minHealth = game.MustParseHexColor(conf.Targets.MinHealthColor)
}

// SetWorld replaces the geometry targets collide with.
func (m *Manager) SetWorld(world game.Raycaster) {
	m.world = world
}

// OnHit sets a function called when a target is damaged without being destroyed. It is called before the colour of
// the target is updated.
func (m *Manager) OnHit(f func(t *Target, point mgl32.Vec3)) {
	m.onHit = f
}

// OnDestroy sets a function called when a target is destroyed by damage.
func (m *Manager) OnDestroy(f func(t *Target)) {
	m.onDestroy = f
}

// Targets returns the live targets. The slice must not be modified.
func (m *Manager) Targets() []*Target {
	return m.targets
}

// Len returns the number of live targets.
func (m *Manager) Len() int {
	return len(m.targets)
}

// Spawn creates a target relative to view. A reference target is placed straight ahead at a fixed distance and does
// not move. Any other target is placed at a random offset from the view direction with random size and velocity.
func (m *Manager) Spawn(reference bool, view View) *Target {
	conf := m.conf.Targets
	m.nextID++
	t := &Target{ID: m.nextID, Health: 1, Reference: reference}

	if reference {
		t.Position = view.Position.Add(game.DirectionVector(view.Yaw, 0).Mul(float32(conf.Reference.Distance)))
		t.Radius = float32(conf.Reference.Size)
		t.TimeToNextChange = math32.Inf(1)
		t.Color = game.Color{R: 1}
	} else {
		azim := float32(conf.SpawnAzimRangeDeg) * (2*m.rng.Float32() - 1)
		elev := float32(conf.SpawnElevRangeDeg) * (2*m.rng.Float32() - 1)
		dir := game.DirectionVector(view.Yaw+azim, game.ClampPitch(view.Pitch+elev))
		distance := game.RandInRange(m.rng, float32(conf.MinSpawnDistance), float32(conf.MaxSpawnDistance))

		t.Position = view.Position.Add(dir.Mul(distance))
		t.Radius = game.RandInRange(m.rng, float32(conf.MinSize), float32(conf.MaxSize))
		if t.Position.Y()-t.Radius < 0 {
			t.Position[1] = game.SpawnFloorClearance * t.Radius
		}
		t.Velocity = m.randomVelocity()
		t.TimeToNextChange = m.randomChangeTime()
		t.Color = m.fullHealth
	}

	m.targets = append(m.targets, t)
	m.log.Debugf("spawned target %d (reference=%v) at %v", t.ID, reference, t.Position)
	return t
}

func (m *Manager) randomVelocity() mgl32.Vec3 {
	conf := m.conf.Targets
	return game.RandomDirection(m.rng).Mul(game.RandInRange(m.rng, float32(conf.MinSpeed), float32(conf.MaxSpeed)))
}

func (m *Manager) randomChangeTime() float32 {
	conf := m.conf.Targets
	return game.RandInRange(m.rng, float32(conf.MinChangeTime), float32(conf.MaxChangeTime))
}

// ApplyDamage removes amount from the health of t. The target is destroyed if its health runs out or if it is a
// reference target, in which case true is returned.
func (m *Manager) ApplyDamage(t *Target, amount float32, point mgl32.Vec3) (destroyed bool) {
	t.Health -= max(amount, 0)
	if t.Health <= 0 || t.Reference {
		if !m.Remove(t) {
			return false
		}
		m.log.Debugf("target %d destroyed after %.2fs", t.ID, t.Age)
		if m.onDestroy != nil {
			m.onDestroy(t)
		}
		return true
	}

	if m.onHit != nil {
		m.onHit(t, point)
	}
	t.Color = m.fullHealth.Lerp(m.minHealth, 1-t.Health)
	return false
}

// Remove removes t from the collection without firing any hook. It returns false if t was not live.
func (m *Manager) Remove(t *Target) bool {
	i := slices.Index(m.targets, t)
	if i < 0 {
		return false
	}
	m.targets = slices.Delete(m.targets, i, i+1)
	return true
}

// Clear removes every target.
func (m *Manager) Clear() {
	clear(m.targets)
	m.targets = m.targets[:0]
}

// Raycast returns the nearest target intersected by the ray within maxDist.
func (m *Manager) Raycast(origin, dir mgl32.Vec3, maxDist float32) (*Target, game.RayHit, bool) {
	var (
		nearest *Target
		hit     game.RayHit
	)
	for _, t := range m.targets {
		h, ok := game.SphereRaycast(t.Position, t.Radius, origin, dir, maxDist)
		if !ok {
			continue
		}
		if nearest == nil || h.Distance < hit.Distance {
			nearest, hit = t, h
		}
	}
	return nearest, hit, nearest != nil
}
