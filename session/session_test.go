package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/aimbench/event"
	"github.com/oomph-ac/aimbench/render"
	"github.com/oomph-ac/aimbench/settings"
)

var start = time.Unix(1700000000, 0)

func testConfig() settings.Config {
	conf := settings.Default()
	conf.Scene.Boxes.Count = 0
	conf.Targets.Count = 3
	conf.Weapon.FireSpread = 0
	return conf
}

func newTestSession(t *testing.T, conf settings.Config, r render.Renderer) *Session {
	t.Helper()
	s, err := New(conf, r, rand.New(rand.NewSource(1)), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func at(tick int) time.Time {
	return start.Add(time.Duration(tick) * 200 * time.Millisecond)
}

// shoot holds the primary button down for a single tick.
func shoot(s *Session, now time.Time, draw bool) {
	s.PointerButton(event.ButtonPrimary, true)
	s.Tick(now, draw)
	s.PointerButton(event.ButtonPrimary, false)
}

func TestSessionStartsWithReferenceTarget(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	if !s.Reference() || len(s.Targets()) != 1 || !s.Targets()[0].Reference {
		t.Fatalf("expected a single reference target at start")
	}
	ref := s.Targets()[0]
	if ref.Position.Sub(mgl32.Vec3{0, 5, -30}).Len() > 1e-3 {
		t.Fatalf("expected reference target 30 units ahead of the player, got %v", ref.Position)
	}
}

func TestSessionIgnoresInputWithoutCapture(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	shoot(s, at(0), false)
	if s.Player().Firing || !s.Reference() {
		t.Fatalf("expected input to be dropped without capture")
	}
}

func TestSessionReferenceFlow(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	s.SetCapture(true)
	s.PointerButton(event.ButtonPrimary, true)
	s.Tick(at(0), false)

	if s.Reference() {
		t.Fatalf("expected reference target to be destroyed by the first shot")
	}
	if len(s.Targets()) != 3 {
		t.Fatalf("expected 3 targets after the reference target, got %d", len(s.Targets()))
	}
	for _, tg := range s.Targets() {
		if tg.Reference {
			t.Fatalf("expected only real targets after the reference target")
		}
	}
	if s.Score().Shots() != 0 || s.Score().Hits() != 0 || s.Score().DestroyedCount() != 0 {
		t.Fatalf("expected reference shots to not be counted")
	}
	if len(s.Particles()) != 1 {
		t.Fatalf("expected destruction particles, got %d effects", len(s.Particles()))
	}
	if s.Player().Firing {
		t.Fatalf("expected semi-automatic weapon to release the firing flag after a shot")
	}
}

func TestSessionFrameDelay(t *testing.T) {
	conf := testConfig()
	conf.Render.FrameDelay = 2
	s := newTestSession(t, conf, nil)
	s.SetCapture(true)
	shoot(s, at(0), false)
	s.Tick(at(1), false)
	if !s.Reference() {
		t.Fatalf("expected fire to be delayed by 2 ticks")
	}
	s.Tick(at(2), false)
	if s.Reference() {
		t.Fatalf("expected fire to be delivered on the third tick")
	}
}

// With the default weapon a single shot deals a full target's health, so every hit destroys a target.
func TestSessionDestroysTargetOnFirstHit(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	s.SetCapture(true)
	shoot(s, at(0), false)

	targets := s.Targets()
	aimed := targets[0]
	aimed.Position, aimed.Velocity, aimed.TimeToNextChange = mgl32.Vec3{0, 5, -50}, mgl32.Vec3{}, math32.Inf(1)
	for i, tg := range targets[1:] {
		tg.Position = mgl32.Vec3{60, 5, 60 - float32(i)*10}
		tg.Velocity, tg.TimeToNextChange = mgl32.Vec3{}, math32.Inf(1)
	}

	shoot(s, at(1), false)

	if s.Score().Shots() != 1 || s.Score().Hits() != 1 || s.Score().DestroyedCount() != 1 {
		t.Fatalf("expected 1 shot, 1 hit and 1 destroyed target, got %d/%d/%d", s.Score().Shots(), s.Score().Hits(), s.Score().DestroyedCount())
	}
	if s.Score().Accuracy() != "100.0%" {
		t.Fatalf("expected 100%% accuracy, got %s", s.Score().Accuracy())
	}
	if len(s.Targets()) != 3 {
		t.Fatalf("expected destroyed target to be replaced, got %d targets", len(s.Targets()))
	}
	for _, tg := range s.Targets() {
		if tg == aimed {
			t.Fatalf("expected aimed target to be removed")
		}
	}
}

func TestSessionMissHitsWorld(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	s.SetCapture(true)
	shoot(s, at(0), false)
	for _, tg := range s.Targets() {
		tg.Position = mgl32.Vec3{60, 5, 60}
		tg.Velocity, tg.TimeToNextChange = mgl32.Vec3{}, math32.Inf(1)
	}
	effects := len(s.Particles())

	shoot(s, at(1), false)
	if s.Score().Shots() != 1 || s.Score().Hits() != 0 {
		t.Fatalf("expected a counted miss, got %d shots and %d hits", s.Score().Shots(), s.Score().Hits())
	}
	if s.Score().Accuracy() != "0.0%" {
		t.Fatalf("expected 0%% accuracy, got %s", s.Score().Accuracy())
	}
	if len(s.Particles()) != effects+1 {
		t.Fatalf("expected miss particles at the wall")
	}
}

func TestSessionBanner(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	s.SetCapture(true)
	s.Tick(at(0), true)

	banner := s.Frame().Banner
	if banner == nil || banner.Len() != 1 {
		t.Fatalf("expected a single banner row in reference mode")
	}
	if _, ok := banner.Get("Message"); !ok {
		t.Fatalf("expected reference message row")
	}

	shoot(s, at(1), true)
	banner = s.Frame().Banner
	if acc, _ := banner.Get("Accuracy"); acc != "N/A" {
		t.Fatalf("expected N/A accuracy without counted shots, got %q", acc)
	}
	if avg, _ := banner.Get("Avg Time"); avg != "N/A" {
		t.Fatalf("expected N/A average time without destroyed targets, got %q", avg)
	}
}

func TestSessionHiddenBanner(t *testing.T) {
	conf := testConfig()
	conf.Render.ShowBanner = false
	s := newTestSession(t, conf, nil)
	s.Tick(at(0), true)
	if s.Frame().Banner != nil {
		t.Fatalf("expected no banner rows when the banner is hidden")
	}
}

func TestSessionReticleShrinks(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	s.SetCapture(true)
	s.Tick(at(0), true)
	if s.Frame().Reticle.Scale != 1 {
		t.Fatalf("expected reticle at rest before any shot")
	}

	shoot(s, at(1), true)
	if s.Frame().Reticle.Scale != 3 {
		t.Fatalf("expected fully expanded reticle on the shot tick, got %v", s.Frame().Reticle.Scale)
	}
	s.Tick(at(1).Add(150*time.Millisecond), true)
	if scale := s.Frame().Reticle.Scale; math32.Abs(scale-2) > 1e-4 {
		t.Fatalf("expected reticle half way shrunk, got %v", scale)
	}
	s.Tick(at(3), true)
	if s.Frame().Reticle.Scale != 1 {
		t.Fatalf("expected reticle at rest after the shrink time")
	}
}

func TestSessionClickToPhoton(t *testing.T) {
	for _, mode := range []string{settings.ClickToPhotonImmediate, settings.ClickToPhotonDelayed} {
		conf := testConfig()
		conf.Render.FrameDelay = 1
		conf.Render.C2P.Mode = mode
		s := newTestSession(t, conf, nil)
		s.SetCapture(true)

		s.PointerButton(event.ButtonPrimary, true)
		s.Tick(at(0), true)
		if got, want := s.Frame().ClickToPhoton.Down, mode == settings.ClickToPhotonImmediate; got != want {
			t.Fatalf("%s: expected down=%v before delivery, got %v", mode, want, got)
		}
		s.Tick(at(1), true)
		if !s.Frame().ClickToPhoton.Down {
			t.Fatalf("%s: expected indicator down once the press is delivered", mode)
		}
	}
}

func TestSessionFrameTime(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	for i := 0; i <= 100; i++ {
		s.Tick(start.Add(time.Duration(i)*10*time.Millisecond), true)
		if i < 100 && s.Frame().FrameTimeValid {
			t.Fatalf("expected frame time to be invalid after %d intervals", i)
		}
	}
	if !s.Frame().FrameTimeValid || s.Frame().FrameTime != 10*time.Millisecond {
		t.Fatalf("expected 10ms mean frame time, got %v (valid=%v)", s.Frame().FrameTime, s.Frame().FrameTimeValid)
	}
	if s.Frame().FrameTimeDeviation != 0 {
		t.Fatalf("expected no deviation for evenly spaced ticks, got %v", s.Frame().FrameTimeDeviation)
	}
}

func TestSessionConfigure(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	if err := s.Configure([]byte("render = [")); err == nil {
		t.Fatalf("expected malformed document to be rejected")
	}
	if s.Config().Render.FrameDelay != 0 {
		t.Fatalf("expected previous document to be kept")
	}

	conf := s.Config()
	conf.Render.FrameDelay = 3
	conf.Weapon.Auto = true
	data, err := settings.Export(conf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Configure(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.queue.Depth() != 0 || s.weapon.Auto() {
		t.Fatalf("expected simulation settings to wait for the next tick")
	}
	s.Tick(at(0), false)
	if s.queue.Depth() != 3 || !s.weapon.Auto() {
		t.Fatalf("expected frame delay and weapon settings to apply on the next tick")
	}

	exported, err := s.Export()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(exported) != string(data) {
		t.Fatalf("expected export to match the imported document")
	}
}

func TestSessionConfigureSceneRegenerates(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	s.SetCapture(true)
	shoot(s, at(0), false)
	if s.Reference() {
		t.Fatalf("expected run to have started")
	}

	conf := s.Config()
	conf.Scene.Boxes.Count = 5
	data, _ := settings.Export(conf)
	if err := s.Configure(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Tick(at(1), false)
	if !s.Reference() || len(s.Targets()) != 1 {
		t.Fatalf("expected scene change to bring back the reference target")
	}
	// Floor, four walls and five boxes.
	if n := len(s.World().Objects()); n != 10 {
		t.Fatalf("expected 10 scene objects, got %d", n)
	}
}

func TestSessionRegenerateAndResetStats(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	s.SetCapture(true)
	shoot(s, at(0), false)
	shoot(s, at(1), false)
	if s.Score().Shots() == 0 {
		t.Fatalf("expected a counted shot")
	}

	s.ResetStats()
	s.Tick(at(2), false)
	if s.Score().Shots() != 0 || s.Reference() {
		t.Fatalf("expected statistics to be cleared without leaving the run")
	}

	s.Regenerate()
	s.Tick(at(3), false)
	if !s.Reference() || len(s.Targets()) != 1 || len(s.Particles()) != 0 {
		t.Fatalf("expected a fresh scene with the reference target")
	}
	if _, ok := s.weapon.SinceLastShot(at(3)); ok {
		t.Fatalf("expected a fresh scene to reset the weapon")
	}
}

func TestSessionCaptureLossStopsSimulation(t *testing.T) {
	s := newTestSession(t, testConfig(), nil)
	s.SetCapture(true)
	s.Key(event.KeyForward, true)
	s.Tick(at(0), false)
	s.Tick(at(1), false)
	if s.Player().Position.Z() >= 0 {
		t.Fatalf("expected player to move forward, got %v", s.Player().Position)
	}

	s.SetCapture(false)
	s.Tick(at(2), false)
	st := s.Player()
	if st.Velocity.Len() != 0 || st.DesiredVelocity.Len() != 0 {
		t.Fatalf("expected player to stop once capture is lost, got %v", st.Velocity)
	}
}

func TestSessionCaptureLossReleasesDelayedFire(t *testing.T) {
	conf := testConfig()
	conf.Render.FrameDelay = 3
	conf.Weapon.Auto = true
	s := newTestSession(t, conf, nil)
	s.SetCapture(true)

	s.PointerButton(event.ButtonPrimary, true)
	s.Tick(at(0), false)
	s.SetCapture(false)
	s.SetCapture(true)
	for tick := 1; tick <= 9; tick++ {
		s.Tick(at(tick), false)
	}

	if s.Reference() {
		t.Fatalf("expected the delayed press to reach the reference target")
	}
	if s.Player().Firing || s.Score().Shots() != 0 {
		t.Fatalf("expected firing to stop once the release was delivered, got firing=%v shots=%d",
			s.Player().Firing, s.Score().Shots())
	}
}

func TestSessionCaptureLossCancelsUnsampledFire(t *testing.T) {
	conf := testConfig()
	conf.Render.FrameDelay = 3
	conf.Weapon.Auto = true
	s := newTestSession(t, conf, nil)
	s.SetCapture(true)

	s.PointerButton(event.ButtonPrimary, true)
	s.SetCapture(false)
	s.SetCapture(true)
	for tick := 0; tick < 9; tick++ {
		s.Tick(at(tick), false)
	}

	if !s.Reference() || s.Player().Firing || s.Score().Shots() != 0 {
		t.Fatalf("expected no shot from a press released by capture loss, got firing=%v shots=%d",
			s.Player().Firing, s.Score().Shots())
	}
}

func TestSessionCaptureLossStopsDelayedMovement(t *testing.T) {
	conf := testConfig()
	conf.Render.FrameDelay = 2
	s := newTestSession(t, conf, nil)
	s.SetCapture(true)

	s.Key(event.KeyForward, true)
	s.Tick(at(0), false)
	s.SetCapture(false)
	s.SetCapture(true)
	for tick := 1; tick <= 5; tick++ {
		s.Tick(at(tick), false)
	}

	if v := s.Player().DesiredVelocity; v.LenSqr() != 0 {
		t.Fatalf("expected the delayed movement to be released, got %v", v)
	}
}

type fakeRenderer struct {
	lost     int
	restored bool

	scenes    int
	offscreen int
	warps     []mgl32.Mat4
}

func (r *fakeRenderer) RenderScene(_ *render.Frame, offscreen bool) error {
	r.scenes++
	if r.lost > 0 {
		r.lost--
		return render.ErrContextLost
	}
	if offscreen {
		r.offscreen++
	}
	return nil
}

func (r *fakeRenderer) PresentWarped(warp mgl32.Mat4) error {
	r.warps = append(r.warps, warp)
	return nil
}

func (r *fakeRenderer) ContextRestored() bool {
	return r.restored
}

func TestSessionContextLoss(t *testing.T) {
	r := &fakeRenderer{lost: 1}
	s := newTestSession(t, testConfig(), r)

	s.Tick(at(0), true)
	s.Tick(at(1), true)
	s.Tick(at(2), true)
	if r.scenes != 1 {
		t.Fatalf("expected rendering to be skipped while the context is lost, got %d renders", r.scenes)
	}
	if s.Frame() == nil {
		t.Fatalf("expected frames to be built while the context is lost")
	}

	r.restored = true
	s.Tick(at(3), true)
	s.Tick(at(4), false)
	if r.scenes != 2 {
		t.Fatalf("expected rendering to resume once restored, got %d renders", r.scenes)
	}
}

func TestSessionLateWarp(t *testing.T) {
	conf := testConfig()
	conf.Render.FrameDelay = 5
	conf.Render.LateWarp = true
	r := &fakeRenderer{}
	s := newTestSession(t, conf, r)
	s.SetCapture(true)

	s.PointerMove(-50, 0)
	s.Tick(at(0), true)
	if r.offscreen != 1 || len(r.warps) != 1 {
		t.Fatalf("expected an offscreen render followed by a warped present")
	}
	if s.Player().Yaw != 0 {
		t.Fatalf("expected the simulated camera to still use the delayed rotation")
	}
	if s.LastWarp() == mgl32.Ident4() {
		t.Fatalf("expected a non-identity warp towards the raw rotation")
	}

	for i := 1; i <= 5; i++ {
		s.Tick(at(i), true)
	}
	warp := s.LastWarp()
	for i := range warp {
		if math32.Abs(warp[i]-mgl32.Ident4()[i]) > 1e-4 {
			t.Fatalf("expected identity warp once the delayed rotation caught up, got %v", warp)
		}
	}
}
