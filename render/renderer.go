package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/aimbench/game"
	"github.com/oomph-ac/aimbench/oerror"
)

// ErrContextLost is returned by a Renderer whose drawing context is temporarily unavailable. The simulation keeps
// running and rendering is skipped until the context is restored.
var ErrContextLost = oerror.New(game.ErrorRendererContextLost)

// Renderer draws frames produced by the simulation.
type Renderer interface {
	// RenderScene draws a frame. If offscreen is true the frame is drawn into an offscreen colour target that a
	// following PresentWarped call samples from, otherwise it is drawn straight to the screen.
	RenderScene(f *Frame, offscreen bool) error
	// PresentWarped draws the offscreen colour target to the screen through the warp transform.
	PresentWarped(warp mgl32.Mat4) error
}

// ContextWatcher may be implemented by a Renderer to report that a lost context has been restored. Renderers that do
// not implement it are retried every frame.
type ContextWatcher interface {
	ContextRestored() bool
}
