package event

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/aimbench/game"
	"go.uber.org/atomic"
)

// Button is a pointer button index.
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonAuxiliary Button = 1
	ButtonSecondary Button = 2
)

// Key is a logical key the benchmark reacts to. Platforms map their own key codes onto these.
type Key int

const (
	KeyUnknown Key = iota
	KeyForward
	KeyBackward
	KeyLeft
	KeyRight
	KeyJump
)

// RawInput turns platform input callbacks into input events pushed onto a Queue. It also tracks the undelayed camera
// rotation and fire button state, which are read by late warp and the click-to-photon indicator.
//
// Every method is safe to call from any goroutine.
type RawInput struct {
	queue   *Queue
	capture atomic.Bool

	mu          sync.Mutex
	yaw, pitch  float32
	sensitivity float32
	speed       float32
	holdScope   bool
	keys        [KeyJump + 1]bool
	fireDown    bool
	scopeDown   bool
}

// NewRawInput returns a RawInput feeding q.
func NewRawInput(q *Queue, sensitivity, speed float32) *RawInput {
	return &RawInput{queue: q, sensitivity: sensitivity, speed: speed}
}

// Configure updates the mouse sensitivity and player speed used for future events. If holdScope is true the scope
// is only held while the secondary button is down, so its release toggles the scope again. A speed change while a
// movement key is held pushes the rescaled velocity.
func (r *RawInput) Configure(sensitivity, speed float32, holdScope bool) {
	r.mu.Lock()
	speedChanged := speed != r.speed
	r.sensitivity, r.speed, r.holdScope = sensitivity, speed, holdScope
	moving := r.movementHeld()
	ev := DesiredVelocity{Velocity: r.desiredVelocity()}
	r.mu.Unlock()

	if speedChanged && moving {
		r.queue.Push(ev)
	}
}

// SetCapture enables or disables input capture. While capture is disabled platform input is dropped. Losing capture
// releases every held key and button and pushes the matching release events, so presses still waiting in the queue
// are followed by their release.
func (r *RawInput) SetCapture(enabled bool) {
	if !r.capture.CompareAndSwap(!enabled, enabled) || enabled {
		return
	}
	r.mu.Lock()
	var release []InputEvent
	if r.fireDown {
		release = append(release, FireEnd{})
	}
	if r.movementHeld() {
		release = append(release, DesiredVelocity{})
	}
	if r.scopeDown && r.holdScope {
		release = append(release, ToggleScope{})
	}
	r.keys = [KeyJump + 1]bool{}
	r.fireDown, r.scopeDown = false, false
	r.mu.Unlock()

	for _, ev := range release {
		r.queue.Push(ev)
	}
}

// Captured returns true if input is currently captured.
func (r *RawInput) Captured() bool {
	return r.capture.Load()
}

// PointerButton handles a pointer button press or release.
func (r *RawInput) PointerButton(button Button, down bool) {
	if !r.capture.Load() {
		return
	}
	switch {
	case button == ButtonPrimary && down:
		r.setFireDown(true)
		r.queue.Push(Fire{})
	case button == ButtonPrimary:
		r.setFireDown(false)
		r.queue.Push(FireEnd{})
	case button == ButtonSecondary:
		if r.setScopeDown(down) {
			r.queue.Push(ToggleScope{})
		}
	}
}

// setScopeDown records the secondary button state and returns true if the change toggles the scope.
func (r *RawInput) setScopeDown(down bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	wasDown := r.scopeDown
	r.scopeDown = down
	if down {
		return true
	}
	return wasDown && r.holdScope
}

func (r *RawInput) setFireDown(down bool) {
	r.mu.Lock()
	r.fireDown = down
	r.mu.Unlock()
}

// PointerMove handles a relative pointer movement, in counts. Sensitivity is applied as sensitivity/100 radians per
// count.
func (r *RawInput) PointerMove(dx, dy float32) {
	if !r.capture.Load() {
		return
	}

	r.mu.Lock()
	scale := mgl32.RadToDeg(r.sensitivity / 100)
	r.yaw = game.WrapYaw(r.yaw - dx*scale)
	r.pitch = game.ClampPitch(r.pitch - dy*scale)
	ev := DesiredCameraRotation{Yaw: r.yaw, Pitch: r.pitch}
	r.mu.Unlock()

	r.queue.Push(ev)
}

// Key handles a key press or release.
func (r *RawInput) Key(key Key, down bool) {
	if !r.capture.Load() || key <= KeyUnknown || key > KeyJump {
		return
	}
	if key == KeyJump {
		if down {
			r.queue.Push(Jump{})
		}
		return
	}

	r.mu.Lock()
	r.keys[key] = down
	ev := DesiredVelocity{Velocity: r.desiredVelocity()}
	r.mu.Unlock()

	r.queue.Push(ev)
}

// movementHeld returns true if any movement key is down. The caller must hold r.mu.
func (r *RawInput) movementHeld() bool {
	return r.keys[KeyForward] || r.keys[KeyBackward] || r.keys[KeyLeft] || r.keys[KeyRight]
}

// desiredVelocity returns the normalised camera-relative movement direction scaled by the player speed. The caller
// must hold r.mu.
func (r *RawInput) desiredVelocity() mgl32.Vec3 {
	v := mgl32.Vec3{
		boolToFloat(r.keys[KeyRight]) - boolToFloat(r.keys[KeyLeft]),
		0,
		boolToFloat(r.keys[KeyBackward]) - boolToFloat(r.keys[KeyForward]),
	}
	if v.LenSqr() == 0 {
		return mgl32.Vec3{}
	}
	return v.Normalize().Mul(r.speed)
}

// Rotation returns the latest undelayed camera yaw and pitch, in degrees.
func (r *RawInput) Rotation() (yaw, pitch float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.yaw, r.pitch
}

// ResetRotation sets the undelayed camera rotation and pushes it as an event, so the controller follows.
func (r *RawInput) ResetRotation(yaw, pitch float32) {
	r.mu.Lock()
	r.yaw, r.pitch = game.WrapYaw(yaw), game.ClampPitch(pitch)
	ev := DesiredCameraRotation{Yaw: r.yaw, Pitch: r.pitch}
	r.mu.Unlock()

	r.queue.Push(ev)
}

// FireDown returns true while the fire button is physically held.
func (r *RawInput) FireDown() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fireDown
}

func boolToFloat(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
