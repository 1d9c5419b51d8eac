package latewarp

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/aimbench/game"
)

// PoseSample is a camera rotation captured when a frame is submitted. It is only kept until the warp transform of
// that frame has been computed.
type PoseSample struct {
	Rotation mgl32.Mat4
	Time     time.Time
}

// Rotation returns the camera-to-world rotation for a yaw and pitch in degrees.
func Rotation(yaw, pitch float32) mgl32.Mat4 {
	return game.CameraRotation(yaw, pitch)
}

// Transform returns the matrix reprojecting an image rendered with the submit rotation so that it appears as seen
// with the stale rotation: P · inverse(stale) · submit · inverse(P). Any translation in submit is ignored, so only
// rotational latency is corrected.
func Transform(proj, stale, submit mgl32.Mat4) mgl32.Mat4 {
	submit.SetCol(3, mgl32.Vec4{0, 0, 0, 1})
	return proj.Mul4(stale.Inv()).Mul4(submit).Mul4(proj.Inv())
}

// Homography returns the 2D projective map taking a screen position in normalised device coordinates to the position
// in the rendered image it must be sampled from. The warp moves image points at depth zero, so only its x, y and w
// rows and columns take part.
func Homography(warp mgl32.Mat4) mgl32.Mat3 {
	forward := mgl32.Mat3{
		warp.At(0, 0), warp.At(1, 0), warp.At(3, 0),
		warp.At(0, 1), warp.At(1, 1), warp.At(3, 1),
		warp.At(0, 3), warp.At(1, 3), warp.At(3, 3),
	}
	return forward.Inv()
}

// Apply maps a point in normalised device coordinates through a homography.
func Apply(h mgl32.Mat3, p mgl32.Vec2) mgl32.Vec2 {
	v := h.Mul3x1(mgl32.Vec3{p.X(), p.Y(), 1})
	if v.Z() == 0 {
		return p
	}
	return mgl32.Vec2{v.X() / v.Z(), v.Y() / v.Z()}
}
