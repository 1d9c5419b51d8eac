package session

import (
	"errors"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/aimbench/entity"
	"github.com/oomph-ac/aimbench/event"
	"github.com/oomph-ac/aimbench/game"
	"github.com/oomph-ac/aimbench/particle"
	"github.com/oomph-ac/aimbench/render"
	"github.com/oomph-ac/aimbench/settings"
	"github.com/oomph-ac/aimbench/weapon"
)

const (
	missParticleSize  = 0.2
	missParticleCount = 50
)

// Tick advances the simulation to now and renders a frame if draw is true. The order is fixed: input is sampled
// and the batch due this tick is delivered, the player moves, then weapon fire, targets and particles are simulated
// while input is captured, and the frame is drawn last.
func (s *Session) Tick(now time.Time, draw bool) {
	s.runCommands(now)
	dt := s.advanceClock(now)

	if captured := s.raw.Captured(); captured != s.player.Enabled() {
		s.player.SetEnabled(captured)
		if !captured {
			s.delayedFire = false
		}
		s.log.Infof("input capture changed (captured=%v)", captured)
	}

	s.queue.Sample()
	batch := s.queue.Deliver()
	if s.player.Enabled() {
		s.player.ApplyBatch(batch)
		s.trackDelayedFire(batch)
	}
	s.player.Tick(dt)

	if s.player.Enabled() {
		s.fire(now)
		s.targets.Tick(dt)
		if now.Sub(s.lastParticles) > game.ParticleStep {
			s.lastParticles = now
			s.particles = particle.Tick(s.particles, now)
		}
	}

	if draw {
		s.render(now)
	}
}

// advanceClock records the interval since the previous tick and returns it in seconds. The first tick has a zero
// interval.
func (s *Session) advanceClock(now time.Time) float32 {
	last := s.lastTick
	s.lastTick = now
	if last.IsZero() {
		return 0
	}
	interval := now.Sub(last)
	_ = s.frameTimes.Append(interval)
	return float32(interval.Seconds())
}

// frameTimeStats returns the mean and standard deviation of the tick intervals once the history is full.
func (s *Session) frameTimeStats() (mean, deviation time.Duration, ok bool) {
	if !s.frameTimes.Full() {
		return 0, 0, false
	}
	samples := make([]float64, 0, s.frameTimes.Len())
	for d := range s.frameTimes.Iter() {
		samples = append(samples, float64(d))
	}
	return time.Duration(game.Mean(samples)), time.Duration(game.StandardDeviation(samples)), true
}

// trackDelayedFire follows the fire button through the delivered events.
func (s *Session) trackDelayedFire(batch event.Batch) {
	for _, ev := range batch {
		switch ev.(type) {
		case event.Fire:
			s.delayedFire = true
		case event.FireEnd:
			s.delayedFire = false
		}
	}
}

// fire fires the weapon along the camera direction if the player is firing and the fire period allows it.
func (s *Session) fire(now time.Time) {
	st := s.player.State()
	if !st.Firing || !s.weapon.TryFire(now) {
		return
	}
	dir := s.weapon.Spread(s.player.Camera(s.aspect.Load()).Forward())

	reference := s.reference
	s.score.Shot(reference)
	shot := weapon.Resolve(s.targets, s.world, s.log, st.Position, dir, game.MaxRayDistance)
	switch {
	case shot.Target != nil:
		s.score.Hit(reference)
		s.targets.ApplyDamage(shot.Target, s.weapon.Damage(), shot.Hit.Position)
	case shot.World:
		s.particles = append(s.particles, particle.Spawn(shot.Hit.Position, game.Color{}, missParticleSize, missParticleCount, 0, now, s.rng))
	}

	if !s.weapon.Auto() {
		s.player.ClearFiring()
	}
}

// targetHit spawns hit particles in the colour the target had before it was hit.
func (s *Session) targetHit(t *entity.Target, point mgl32.Vec3) {
	conf := s.conf.Targets.Particles
	s.particles = append(s.particles, particle.Spawn(point, t.Color, float32(conf.Size), conf.HitCount, 0, s.lastTick, s.rng))
}

// targetDestroyed spawns destruction particles and replaces the target. Destroying the reference target starts the
// run proper by spawning the configured number of targets.
func (s *Session) targetDestroyed(t *entity.Target) {
	conf := s.conf.Targets
	duration := time.Duration(game.DestroyParticleDuration * float64(time.Second))
	s.particles = append(s.particles, particle.Spawn(t.Position, t.Color, float32(conf.Particles.Size), conf.Particles.DestroyCount, duration, s.lastTick, s.rng))

	if s.reference {
		for s.targets.Len() < conf.Count {
			s.spawn(false)
		}
		s.reference = false
		s.log.Info("reference target destroyed, run started")
		return
	}
	s.score.Destroyed(t.Age)
	s.spawn(false)
}

// render builds the frame for now and draws it. A lost renderer context is logged once and drawing is skipped until
// it is restored.
func (s *Session) render(now time.Time) {
	f := s.buildFrame(now)
	s.frame = f
	if s.renderer == nil {
		return
	}
	if s.contextLost {
		if w, ok := s.renderer.(render.ContextWatcher); ok && !w.ContextRestored() {
			return
		}
	}

	var err error
	if s.conf.Render.LateWarp {
		s.lastWarp, err = s.warper.Present(f)
	} else {
		s.lastWarp = mgl32.Ident4()
		err = s.renderer.RenderScene(f, false)
	}

	switch {
	case errors.Is(err, render.ErrContextLost):
		if !s.contextLost {
			s.log.Warnf("rendering suspended: %v", err)
		}
		s.contextLost = true
	case err != nil:
		s.log.Errorf("unable to render frame: %v", err)
	case s.contextLost:
		s.contextLost = false
		s.log.Info("renderer context restored")
	}
}

// buildFrame collects everything drawn for now.
func (s *Session) buildFrame(now time.Time) *render.Frame {
	targets := s.targets.Targets()
	f := &render.Frame{
		Time:      now,
		Camera:    s.player.Camera(s.aspect.Load()),
		Sky:       game.MustParseHexColor(s.conf.Scene.SkyColor),
		World:     s.world,
		Targets:   make([]render.TargetView, 0, len(targets)),
		Particles: s.particles,
		Reticle: render.Reticle{
			Reticle: s.conf.Reticle,
			Scale:   s.reticleScale(now),
		},
		ClickToPhoton: render.ClickToPhoton{
			ClickToPhoton: s.conf.Render.C2P,
			Down:          s.clickToPhotonDown(),
		},
	}
	for _, t := range targets {
		f.Targets = append(f.Targets, render.ViewTarget(t))
	}
	if s.conf.Render.ShowBanner {
		f.Banner = s.score.Banner(s.reference)
	}
	f.FrameTime, f.FrameTimeDeviation, f.FrameTimeValid = s.frameTimeStats()
	return f
}

// reticleScale returns the reticle expansion following the last shot, shrinking linearly back to 1.
func (s *Session) reticleScale(now time.Time) float32 {
	conf := s.conf.Reticle
	since, ok := s.weapon.SinceLastShot(now)
	if !ok || conf.ShrinkTime <= 0 || since.Seconds() >= conf.ShrinkTime {
		return 1
	}
	return float32(conf.ExpandedScale*(1-since.Seconds()/conf.ShrinkTime) + 1)
}

func (s *Session) clickToPhotonDown() bool {
	if s.conf.Render.C2P.Mode == settings.ClickToPhotonDelayed {
		return s.delayedFire
	}
	return s.raw.FireDown()
}
