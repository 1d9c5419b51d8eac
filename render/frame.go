package render

import (
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/aimbench/entity"
	"github.com/oomph-ac/aimbench/game"
	"github.com/oomph-ac/aimbench/particle"
	"github.com/oomph-ac/aimbench/settings"
	"github.com/oomph-ac/aimbench/world"
)

// Frame is everything a Renderer needs to draw a single frame. A Frame is only valid until the next tick; renderers
// must copy anything they keep.
type Frame struct {
	Time   time.Time
	Camera Camera

	Sky     game.Color
	World   *world.World
	Targets []TargetView
	// Particles are the live particle effects.
	Particles []particle.Effect

	Reticle       Reticle
	ClickToPhoton ClickToPhoton

	// Banner holds the statistics rows, or nil if the banner is hidden.
	Banner *orderedmap.OrderedMap[string, string]
	// FrameTime is the mean tick interval and FrameTimeDeviation its standard deviation. Both are only valid once
	// enough ticks have been measured.
	FrameTime          time.Duration
	FrameTimeDeviation time.Duration
	FrameTimeValid     bool
}

// TargetView is the drawable state of a target.
type TargetView struct {
	Position  mgl32.Vec3
	Radius    float32
	Color     game.Color
	Reference bool
}

// ViewTarget returns the drawable state of t.
func ViewTarget(t *entity.Target) TargetView {
	return TargetView{Position: t.Position, Radius: t.Radius, Color: t.Color, Reference: t.Reference}
}

// Reticle is the crosshair to draw at the screen centre.
type Reticle struct {
	settings.Reticle
	// Scale is the current expansion of the reticle following a shot, 1 at rest.
	Scale float32
}

// ClickToPhoton is the latency indicator drawn at the left edge of the screen.
type ClickToPhoton struct {
	settings.ClickToPhoton
	// Down is true while the indicator shows the fire button pressed.
	Down bool
}

// Color returns the colour the indicator is drawn in.
func (c ClickToPhoton) Color() game.Color {
	if c.Down {
		return game.MustParseHexColor(c.DownColor)
	}
	return game.MustParseHexColor(c.UpColor)
}
