package session

import (
	"math/rand"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/aimbench/entity"
	"github.com/oomph-ac/aimbench/event"
	"github.com/oomph-ac/aimbench/game"
	"github.com/oomph-ac/aimbench/internal"
	"github.com/oomph-ac/aimbench/latewarp"
	"github.com/oomph-ac/aimbench/particle"
	"github.com/oomph-ac/aimbench/player"
	"github.com/oomph-ac/aimbench/render"
	"github.com/oomph-ac/aimbench/score"
	"github.com/oomph-ac/aimbench/settings"
	"github.com/oomph-ac/aimbench/utils"
	"github.com/oomph-ac/aimbench/weapon"
	"github.com/oomph-ac/aimbench/world"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// Session is the simulation context of a benchmark run. Platform input may be fed to it from any goroutine, but
// Tick and every accessor of simulation state must only be called from the goroutine running the scheduler.
type Session struct {
	store *settings.Store
	conf  settings.Config

	queue *event.Queue
	raw   *event.RawInput

	world     *world.World
	player    *player.Controller
	targets   *entity.Manager
	weapon    *weapon.Weapon
	score     score.Scoreboard
	particles []particle.Effect

	// reference is true while the reference target is shown.
	reference bool
	// delayedFire is the fire button state as seen through delivered events.
	delayedFire bool

	renderer    render.Renderer
	warper      *latewarp.Warper
	aspect      *atomic.Float32
	contextLost bool
	lastWarp    mgl32.Mat4
	frame       *render.Frame

	lastTick      time.Time
	lastParticles time.Time
	frameTimes    *utils.CircularQueue[time.Duration]

	commandMu sync.Mutex
	commands  []func(now time.Time)

	rng *rand.Rand
	log *logrus.Logger
}

// New creates a session from conf, drawing through r. r may be nil to run without rendering, in which case frames
// are still built and available through Frame. Every random draw of the session comes from rng, which defaults to a
// time-seeded source if nil.
func New(conf settings.Config, r render.Renderer, rng *rand.Rand, log *logrus.Logger) (*Session, error) {
	log = internal.Logger(log)
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	store := settings.NewStore(conf, log)
	conf = store.Config()
	queue, err := event.NewQueue(conf.Render.FrameDelay)
	if err != nil {
		return nil, err
	}

	s := &Session{
		store:      store,
		conf:       conf,
		queue:      queue,
		raw:        event.NewRawInput(queue, float32(conf.Player.MouseSensitivity), float32(conf.Player.Speed)),
		world:      world.Generate(conf.Scene, rng),
		weapon:     weapon.New(conf.Weapon, rng),
		renderer:   r,
		aspect:     atomic.NewFloat32(16.0 / 9.0),
		lastWarp:   mgl32.Ident4(),
		frameTimes: utils.NewCircularQueue[time.Duration](game.FrameTimeHistory),
		rng:        rng,
		log:        log,
	}
	s.raw.Configure(float32(conf.Player.MouseSensitivity), float32(conf.Player.Speed), !conf.Weapon.ToggleScope)
	s.player = player.NewController(s.world, conf, log)
	s.targets = entity.NewManager(s.world, conf, rng, log)
	s.targets.OnHit(s.targetHit)
	s.targets.OnDestroy(s.targetDestroyed)
	if r != nil {
		s.warper = latewarp.NewWarper(r, s.raw.Rotation)
	}

	s.spawn(true)
	s.log.Infof("session started (frame delay %d, pacing %s)", conf.Render.FrameDelay, conf.Render.Pacing)
	return s, nil
}

// Config returns the live configuration document.
func (s *Session) Config() settings.Config {
	return s.store.Config()
}

// SetAspect sets the width/height ratio of the drawing surface. It may be called from any goroutine.
func (s *Session) SetAspect(aspect float32) {
	if aspect > 0 {
		s.aspect.Store(aspect)
	}
}

// Player returns the current player state.
func (s *Session) Player() player.State {
	return s.player.State()
}

// Targets returns the live targets. The slice must not be modified.
func (s *Session) Targets() []*entity.Target {
	return s.targets.Targets()
}

// Particles returns the live particle effects.
func (s *Session) Particles() []particle.Effect {
	return s.particles
}

// World returns the static scene geometry.
func (s *Session) World() *world.World {
	return s.world
}

// Score returns the statistics of the run.
func (s *Session) Score() *score.Scoreboard {
	return &s.score
}

// Reference returns true while the reference target is shown.
func (s *Session) Reference() bool {
	return s.reference
}

// LastWarp returns the warp transform used for the last presented frame, or the identity if late warp is disabled.
func (s *Session) LastWarp() mgl32.Mat4 {
	return s.lastWarp
}

// Frame returns the last frame built, or nil if no tick rendered yet.
func (s *Session) Frame() *render.Frame {
	return s.frame
}

// spawn spawns a target relative to the current player view.
func (s *Session) spawn(reference bool) {
	st := s.player.State()
	s.targets.Spawn(reference, entity.View{Position: st.Position, Yaw: st.Yaw, Pitch: st.Pitch})
	s.reference = reference
}
