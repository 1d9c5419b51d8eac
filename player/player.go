package player

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/aimbench/event"
	"github.com/oomph-ac/aimbench/game"
	"github.com/oomph-ac/aimbench/internal"
	"github.com/oomph-ac/aimbench/render"
	"github.com/oomph-ac/aimbench/settings"
	"github.com/sirupsen/logrus"
)

// State is the kinematic state of the player. Position is the eye position, so it sits Height above the ground.
type State struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	// Yaw and Pitch are in degrees. They only change through delivered DesiredCameraRotation events.
	Yaw, Pitch float32

	Grounded bool
	CanJump  bool

	Height       float32
	JumpVelocity float32

	// DesiredVelocity is the camera-relative velocity requested by the movement keys.
	DesiredVelocity mgl32.Vec3
	Firing          bool
	Scoped          bool
}

// Controller is a first-person controller driven by delayed input events.
type Controller struct {
	state   State
	enabled bool

	world game.Raycaster
	conf  settings.Config
	log   *logrus.Logger
}

// NewController returns a disabled controller standing at the origin of world.
func NewController(world game.Raycaster, conf settings.Config, log *logrus.Logger) *Controller {
	c := &Controller{world: world, log: internal.Logger(log)}
	c.Configure(conf)
	c.Reset()
	return c
}

// Configure applies new settings. The kinematic state is kept.
func (c *Controller) Configure(conf settings.Config) {
	c.conf = conf
	c.state.Height = float32(conf.Player.Height)
	c.state.JumpVelocity = c.state.Height + float32(conf.Player.JumpHeight)
	if !conf.Weapon.Scoped {
		c.state.Scoped = false
	}
}

// SetWorld replaces the geometry collided against.
func (c *Controller) SetWorld(world game.Raycaster) {
	c.world = world
}

// Reset moves the player back to the spawn point, looking down the negative Z axis.
func (c *Controller) Reset() {
	h := c.state.Height
	c.state = State{
		Position:     mgl32.Vec3{0, h, 0},
		Height:       h,
		JumpVelocity: c.state.JumpVelocity,
	}
}

// SetEnabled enables or disables the controller. Disabling it stops the player and releases every held action.
func (c *Controller) SetEnabled(enabled bool) {
	c.enabled = enabled
	if !enabled {
		c.state.Velocity = mgl32.Vec3{}
		c.state.DesiredVelocity = mgl32.Vec3{}
		c.state.Position[1] = c.state.Height
		c.state.Firing = false
		c.state.Scoped = false
	}
}

// Enabled returns true if the controller is consuming input.
func (c *Controller) Enabled() bool {
	return c.enabled
}

// State returns a copy of the player state.
func (c *Controller) State() State {
	return c.state
}

// ApplyBatch applies every event of a delivered batch in order.
func (c *Controller) ApplyBatch(b event.Batch) {
	for _, ev := range b {
		c.ApplyEvent(ev)
	}
}

// ApplyEvent applies a single delivered input event.
func (c *Controller) ApplyEvent(ev event.InputEvent) {
	s := &c.state
	switch ev := ev.(type) {
	case event.DesiredCameraRotation:
		s.Yaw = game.WrapYaw(ev.Yaw)
		s.Pitch = game.ClampPitch(ev.Pitch)
	case event.DesiredVelocity:
		s.DesiredVelocity = ev.Velocity
	case event.Fire:
		s.Firing = true
	case event.FireEnd:
		s.Firing = false
	case event.Jump:
		// Consumed immediately, so duplicate jumps within a batch cannot stack.
		if s.CanJump {
			s.Velocity[1] += s.JumpVelocity
		}
		s.CanJump = false
	case event.ToggleScope:
		if c.conf.Weapon.Scoped {
			s.Scoped = !s.Scoped
		}
	}
	c.log.Tracef("player applied %s", event.Name(ev))
}

// ClearFiring releases the firing flag, as a non-automatic weapon does after each shot.
func (c *Controller) ClearFiring() {
	c.state.Firing = false
}

// Camera returns the camera for the current player pose.
func (c *Controller) Camera(aspect float32) render.Camera {
	fov := float32(c.conf.Render.HFoV)
	if c.state.Scoped {
		fov = float32(c.conf.Weapon.ScopeFov)
	}
	if aspect <= 0 {
		aspect = 1
	}
	return render.Camera{
		Position: c.state.Position,
		Yaw:      c.state.Yaw,
		Pitch:    c.state.Pitch,
		FovY:     fov / aspect,
		Aspect:   aspect,
		Near:     game.DefaultNearPlane,
		Far:      game.DefaultFarPlane,
	}
}
