package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/aimbench/game"
)

// Camera is a perspective camera. Angles are in degrees.
type Camera struct {
	Position   mgl32.Vec3
	Yaw, Pitch float32
	// FovY is the vertical field of view.
	FovY   float32
	Aspect float32
	Near   float32
	Far    float32
}

// Projection returns the perspective projection matrix of the camera.
func (c Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

// Rotation returns the camera-to-world rotation, without translation.
func (c Camera) Rotation() mgl32.Mat4 {
	return game.CameraRotation(c.Yaw, c.Pitch)
}

// View returns the world-to-camera matrix.
func (c Camera) View() mgl32.Mat4 {
	return c.Rotation().Transpose().Mul4(mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z()))
}

// Forward returns the unit view direction.
func (c Camera) Forward() mgl32.Vec3 {
	return game.DirectionVector(c.Yaw, c.Pitch)
}

// Project maps a world-space point to normalised device coordinates. The boolean is false if the point is behind
// the camera.
func (c Camera) Project(p mgl32.Vec3) (mgl32.Vec3, bool) {
	clip := c.Projection().Mul4(c.View()).Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return mgl32.Vec3{}, false
	}
	return clip.Vec3().Mul(1 / clip.W()), true
}
