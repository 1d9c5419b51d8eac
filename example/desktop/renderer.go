package main

import (
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/oomph-ac/aimbench/game"
	"github.com/oomph-ac/aimbench/latewarp"
	"github.com/oomph-ac/aimbench/render"
	"github.com/oomph-ac/aimbench/world"
	"golang.org/x/image/font/basicfont"
)

const (
	floorGridStep  = 50
	particlePixels = 2
)

var face = text.NewGoXFace(basicfont.Face7x13)

// renderer draws frames with ebiten. Scenes are drawn as wireframes into an offscreen image, or straight into the
// presented image when late warp is disabled. The presented image is copied to the screen by Draw.
type renderer struct {
	mu            sync.Mutex
	width, height int
	scene         *ebiten.Image
	present       *ebiten.Image
	shader        *ebiten.Shader

	// overlay is the frame whose reticle and banner are drawn on top of the presented image.
	overlay *render.Frame
}

func newRenderer(width, height int) (*renderer, error) {
	shader, err := ebiten.NewShader(warpShader)
	if err != nil {
		return nil, fmt.Errorf("unable to compile warp shader: %w", err)
	}
	r := &renderer{shader: shader}
	r.resize(width, height)
	return r, nil
}

// resize reallocates the render targets if the screen size changed.
func (r *renderer) resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	r.scene = ebiten.NewImage(width, height)
	r.present = ebiten.NewImage(width, height)
}

// RenderScene draws the scene of f. The overlay is drawn right away unless the scene still has to be warped.
func (r *renderer) RenderScene(f *render.Frame, offscreen bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target := r.present
	if offscreen {
		target = r.scene
	}
	target.Fill(rgba(f.Sky))
	r.drawWorld(target, f)
	r.drawTargets(target, f)
	r.drawParticles(target, f)
	if f.ClickToPhoton.Show {
		r.drawClickToPhoton(target, f.ClickToPhoton)
	}

	r.overlay = f
	if !offscreen {
		r.drawOverlay(r.present)
	}
	return nil
}

// PresentWarped draws the offscreen scene through the warp, followed by the overlay.
func (r *renderer) PresentWarped(warp mgl32.Mat4) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := latewarp.Homography(warp)
	op := &ebiten.DrawRectShaderOptions{}
	op.Images[0] = r.scene
	op.Uniforms = map[string]any{
		"Homography": h[:],
		"ScreenSize": []float32{float32(r.width), float32(r.height)},
	}
	r.present.Clear()
	r.present.DrawRectShader(r.width, r.height, r.shader, op)
	r.drawOverlay(r.present)
	return nil
}

// draw copies the last presented image to the screen.
func (r *renderer) draw(screen *ebiten.Image) {
	r.mu.Lock()
	defer r.mu.Unlock()
	screen.DrawImage(r.present, nil)
}

// toScreen maps a world-space point to pixels.
func (r *renderer) toScreen(cam render.Camera, p mgl32.Vec3) (x, y float32, ok bool) {
	ndc, ok := cam.Project(p)
	if !ok {
		return 0, 0, false
	}
	return (ndc.X() + 1) / 2 * float32(r.width), (1 - ndc.Y()) / 2 * float32(r.height), true
}

func (r *renderer) line(dst *ebiten.Image, cam render.Camera, a, b mgl32.Vec3, clr color.Color) {
	x0, y0, ok0 := r.toScreen(cam, a)
	x1, y1, ok1 := r.toScreen(cam, b)
	if ok0 && ok1 {
		vector.StrokeLine(dst, x0, y0, x1, y1, 1, clr, true)
	}
}

func (r *renderer) drawWorld(dst *ebiten.Image, f *render.Frame) {
	if f.World == nil {
		return
	}
	for _, obj := range f.World.Objects() {
		clr := rgba(obj.Color)
		if obj.Kind == world.KindFloor {
			r.drawFloor(dst, f.Camera, f.World, clr)
			continue
		}
		lo, hi := obj.Box.Min(), obj.Box.Max()
		corners := [8]mgl32.Vec3{
			{lo[0], lo[1], lo[2]}, {hi[0], lo[1], lo[2]}, {hi[0], lo[1], hi[2]}, {lo[0], lo[1], hi[2]},
			{lo[0], hi[1], lo[2]}, {hi[0], hi[1], lo[2]}, {hi[0], hi[1], hi[2]}, {lo[0], hi[1], hi[2]},
		}
		for i := 0; i < 4; i++ {
			r.line(dst, f.Camera, corners[i], corners[(i+1)%4], clr)
			r.line(dst, f.Camera, corners[i+4], corners[(i+1)%4+4], clr)
			r.line(dst, f.Camera, corners[i], corners[i+4], clr)
		}
	}
}

func (r *renderer) drawFloor(dst *ebiten.Image, cam render.Camera, w *world.World, clr color.Color) {
	hw, hd := w.Bounds()
	for x := -hw; x <= hw; x += floorGridStep {
		r.line(dst, cam, mgl32.Vec3{x, 0, -hd}, mgl32.Vec3{x, 0, hd}, clr)
	}
	for z := -hd; z <= hd; z += floorGridStep {
		r.line(dst, cam, mgl32.Vec3{-hw, 0, z}, mgl32.Vec3{hw, 0, z}, clr)
	}
}

func (r *renderer) drawTargets(dst *ebiten.Image, f *render.Frame) {
	focal := float32(r.height) / 2 / math32.Tan(mgl32.DegToRad(f.Camera.FovY)/2)
	forward := f.Camera.Forward()
	for _, t := range f.Targets {
		x, y, ok := r.toScreen(f.Camera, t.Position)
		if !ok {
			continue
		}
		depth := t.Position.Sub(f.Camera.Position).Dot(forward)
		if depth <= 0 {
			continue
		}
		vector.FillCircle(dst, x, y, t.Radius/depth*focal, rgba(t.Color), true)
	}
}

func (r *renderer) drawParticles(dst *ebiten.Image, f *render.Frame) {
	for _, e := range f.Particles {
		for i, p := range e.Points() {
			x, y, ok := r.toScreen(f.Camera, p)
			if !ok {
				continue
			}
			vector.DrawFilledRect(dst, x, y, particlePixels, particlePixels, rgba(e.Particles[i].Color), false)
		}
	}
}

func (r *renderer) drawClickToPhoton(dst *ebiten.Image, c render.ClickToPhoton) {
	w, h := float32(c.Width)*float32(r.height), float32(c.Height)*float32(r.height)
	y := (1-float32(c.VertPos))*float32(r.height) - h/2
	vector.DrawFilledRect(dst, 0, y, w, h, rgba(c.Color()), false)
}

// drawOverlay draws the reticle, banner and frame time of the last rendered frame. The caller must hold r.mu.
func (r *renderer) drawOverlay(dst *ebiten.Image) {
	f := r.overlay
	if f == nil {
		return
	}

	ret := f.Reticle
	unit := float32(r.height) / 2
	size, gap := float32(ret.Size)*unit*ret.Scale, float32(ret.Gap)*unit*ret.Scale
	thickness := max(float32(ret.Thickness*ret.Size)*unit, 1)
	clr := rgba(game.MustParseHexColor(ret.Color))
	cx, cy := float32(r.width)/2, float32(r.height)/2
	vector.StrokeLine(dst, cx, cy-size, cx, cy-gap, thickness, clr, true)
	vector.StrokeLine(dst, cx, cy+gap, cx, cy+size, thickness, clr, true)
	vector.StrokeLine(dst, cx-size, cy, cx-gap, cy, thickness, clr, true)
	vector.StrokeLine(dst, cx+gap, cy, cx+size, cy, thickness, clr, true)

	y := 16
	if f.Banner != nil {
		for el := f.Banner.Front(); el != nil; el = el.Next() {
			label := el.Value
			if el.Key != "Message" {
				label = el.Key + ": " + el.Value
			}
			drawText(dst, 16, y, label)
			y += 16
		}
	}
	if f.FrameTimeValid {
		drawText(dst, 16, y, fmt.Sprintf("Frame time: %.2fms (σ %.2fms)", milliseconds(f.FrameTime), milliseconds(f.FrameTimeDeviation)))
	}
}

func drawText(dst *ebiten.Image, x, y int, msg string) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(color.Black)
	text.Draw(dst, msg, face, op)
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func rgba(c game.Color) color.RGBA {
	r, g, b, a := c.RGBA8()
	return color.RGBA{R: r, G: g, B: b, A: a}
}
