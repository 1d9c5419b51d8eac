package latewarp

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/aimbench/render"
)

// RawRotation returns the most recent undelayed camera yaw and pitch, in degrees.
type RawRotation func() (yaw, pitch float32)

// Warper presents frames through late warp: the scene is rendered offscreen with the simulated camera, then drawn to
// the screen reprojected to the most recent raw camera rotation.
type Warper struct {
	renderer render.Renderer
	raw      RawRotation
	now      func() time.Time
}

// NewWarper returns a Warper drawing through r and reading the raw rotation from raw.
func NewWarper(r render.Renderer, raw RawRotation) *Warper {
	return &Warper{renderer: r, raw: raw, now: time.Now}
}

// Present renders f offscreen and presents it warped, returning the warp transform used. The raw rotation is sampled
// once the offscreen render has been submitted.
func (w *Warper) Present(f *render.Frame) (mgl32.Mat4, error) {
	if err := w.renderer.RenderScene(f, true); err != nil {
		return mgl32.Ident4(), err
	}

	pose := w.sample()
	warp := Transform(f.Camera.Projection(), pose.Rotation, f.Camera.Rotation())
	return warp, w.renderer.PresentWarped(warp)
}

func (w *Warper) sample() PoseSample {
	yaw, pitch := w.raw()
	return PoseSample{Rotation: Rotation(yaw, pitch), Time: w.now()}
}
