package weapon

import (
	"math/rand"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/aimbench/game"
	"github.com/oomph-ac/aimbench/settings"
	"golang.org/x/time/rate"
)

// Weapon gates fire to the configured fire period and perturbs shots within the spread cone.
type Weapon struct {
	conf    settings.Weapon
	limiter *rate.Limiter
	rng     *rand.Rand

	lastShot time.Time
}

// New returns a weapon that is ready to fire.
func New(conf settings.Weapon, rng *rand.Rand) *Weapon {
	return &Weapon{
		conf:    conf,
		limiter: rate.NewLimiter(fireLimit(conf), 1),
		rng:     rng,
	}
}

func fireLimit(conf settings.Weapon) rate.Limit {
	return rate.Every(time.Duration(conf.FirePeriod * float64(time.Second)))
}

// Configure applies new weapon settings. A changed fire period applies from now on.
func (w *Weapon) Configure(conf settings.Weapon, now time.Time) {
	w.conf = conf
	w.limiter.SetLimitAt(now, fireLimit(conf))
}

// Auto returns true if the weapon keeps firing while the fire button is held.
func (w *Weapon) Auto() bool {
	return w.conf.Auto
}

// Damage returns the damage dealt by a single shot.
func (w *Weapon) Damage() float32 {
	return float32(w.conf.DamagePerShot())
}

// TryFire returns true and records the shot if at least one fire period passed since the previous shot.
func (w *Weapon) TryFire(now time.Time) bool {
	if !w.limiter.AllowN(now, 1) {
		return false
	}
	w.lastShot = now
	return true
}

// SinceLastShot returns the time elapsed since the last shot, or false if the weapon never fired.
func (w *Weapon) SinceLastShot(now time.Time) (time.Duration, bool) {
	if w.lastShot.IsZero() {
		return 0, false
	}
	return now.Sub(w.lastShot), true
}

// Reset makes the weapon ready to fire immediately.
func (w *Weapon) Reset() {
	w.limiter = rate.NewLimiter(fireLimit(w.conf), 1)
	w.lastShot = time.Time{}
}

// Spread rotates dir by a random angle of up to the configured spread, split between the X and Y axes.
func (w *Weapon) Spread(dir mgl32.Vec3) mgl32.Vec3 {
	rot := game.RandInRange(w.rng, 0, 2*math32.Pi)
	mag := game.RandInRange(w.rng, 0, mgl32.DegToRad(float32(w.conf.FireSpread)))

	dir = mgl32.Rotate3DX(mag * math32.Cos(rot)).Mul3x1(dir)
	dir = mgl32.Rotate3DY(mag * math32.Sin(rot)).Mul3x1(dir)
	return dir.Normalize()
}
