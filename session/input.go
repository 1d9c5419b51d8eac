package session

import (
	"time"

	"github.com/oomph-ac/aimbench/assert"
	"github.com/oomph-ac/aimbench/event"
	"github.com/oomph-ac/aimbench/settings"
	"github.com/oomph-ac/aimbench/world"
)

// PointerButton handles a pointer button press or release.
func (s *Session) PointerButton(button event.Button, down bool) {
	s.raw.PointerButton(button, down)
}

// PointerMove handles a relative pointer movement, in counts.
func (s *Session) PointerMove(dx, dy float32) {
	s.raw.PointerMove(dx, dy)
}

// Key handles a key press or release.
func (s *Session) Key(key event.Key, down bool) {
	s.raw.Key(key, down)
}

// SetCapture enables or disables input capture. The player controller follows on the next tick.
func (s *Session) SetCapture(enabled bool) {
	s.raw.SetCapture(enabled)
}

// Captured returns true if input is currently captured.
func (s *Session) Captured() bool {
	return s.raw.Captured()
}

// ResetStats clears the statistics of the run on the next tick.
func (s *Session) ResetStats() {
	s.enqueue(func(time.Time) {
		s.score.Reset()
		s.log.Debug("statistics reset")
	})
}

// Regenerate rebuilds the scene and brings back the reference target on the next tick.
func (s *Session) Regenerate() {
	s.enqueue(func(time.Time) {
		s.regenerate()
	})
}

// Configure imports data as the new configuration document. If data cannot be decoded the previous document is kept
// and the diagnostic is returned. Input settings apply immediately, the frame delay and simulation settings on the
// next tick.
func (s *Session) Configure(data []byte) error {
	conf, changed, err := s.store.Replace(data)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	s.raw.Configure(float32(conf.Player.MouseSensitivity), float32(conf.Player.Speed), !conf.Weapon.ToggleScope)
	s.enqueue(func(now time.Time) {
		s.apply(conf, now)
	})
	return nil
}

// Export encodes the live configuration document.
func (s *Session) Export() ([]byte, error) {
	return s.store.Export()
}

// ExportFile writes the live configuration document to path without blocking the caller.
func (s *Session) ExportFile(path string) <-chan error {
	return s.store.ExportFile(path)
}

// enqueue schedules f to run at the start of the next tick.
func (s *Session) enqueue(f func(now time.Time)) {
	s.commandMu.Lock()
	s.commands = append(s.commands, f)
	s.commandMu.Unlock()
}

// runCommands runs every command enqueued since the last tick.
func (s *Session) runCommands(now time.Time) {
	s.commandMu.Lock()
	commands := s.commands
	s.commands = nil
	s.commandMu.Unlock()

	for _, f := range commands {
		f(now)
	}
}

// apply applies a new configuration document to the simulation. A changed scene is regenerated.
func (s *Session) apply(conf settings.Config, now time.Time) {
	sceneChanged := conf.Scene != s.conf.Scene
	s.conf = conf
	err := s.queue.SetDepth(conf.Render.FrameDelay)
	assert.IsTrue(err == nil, "normalised frame delay rejected: %v", err)
	s.player.Configure(conf)
	s.targets.Configure(conf)
	s.weapon.Configure(conf.Weapon, now)
	if sceneChanged {
		s.regenerate()
	}
	s.log.Infof("configuration applied (frame delay %d)", conf.Render.FrameDelay)
}

// regenerate rebuilds the scene and moves the player back to the spawn point. Every target and effect is removed and
// a new reference target is spawned.
func (s *Session) regenerate() {
	s.world = world.Generate(s.conf.Scene, s.rng)
	s.player.SetWorld(s.world)
	s.player.Reset()
	s.raw.ResetRotation(0, 0)
	s.weapon.Reset()
	s.targets.SetWorld(s.world)
	s.targets.Clear()
	s.particles = nil
	s.score.Reset()
	s.spawn(true)
	s.log.Info("scene regenerated")
}
