package game

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Float32ApproxEq determines whether two floating point numbers are close enough to each other
// by a threshold of 1e-5.
func Float32ApproxEq(a, b float32) bool {
	return math32.Abs(a-b) <= 1e-5
}

// DirectionVector returns the unit view direction for the given yaw and pitch values in degrees. A yaw and pitch of
// zero look down the negative Z axis, positive pitch looks up and positive yaw turns counter-clockwise seen from above.
func DirectionVector(yaw, pitch float32) mgl32.Vec3 {
	yawRad, pitchRad := mgl32.DegToRad(yaw), mgl32.DegToRad(pitch)
	m := math32.Cos(pitchRad)

	return mgl32.Vec3{
		-m * math32.Sin(yawRad),
		math32.Sin(pitchRad),
		-m * math32.Cos(yawRad),
	}
}

// RotateYaw rotates a camera-relative vector around the Y axis by yaw degrees, producing a world-space vector.
func RotateYaw(v mgl32.Vec3, yaw float32) mgl32.Vec3 {
	return mgl32.Rotate3DY(mgl32.DegToRad(yaw)).Mul3x1(v)
}

// WrapYaw wraps a yaw value into [0, 360).
func WrapYaw(yaw float32) float32 {
	yaw = math32.Mod(yaw, 360)
	if yaw < 0 {
		yaw += 360
	}
	// Mod can round a tiny negative value up to exactly 360.
	if yaw >= 360 {
		yaw = 0
	}
	return yaw
}

// ClampPitch clamps a pitch value into [-90, 90].
func ClampPitch(pitch float32) float32 {
	return mgl32.Clamp(pitch, -90, 90)
}

// Horizontal returns the vector with its Y component zeroed.
func Horizontal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X(), 0, v.Z()}
}

// Reflect reflects v about the unit normal n.
func Reflect(v, n mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// RemoveComponent subtracts the component of v along the unit normal n.
func RemoveComponent(v, n mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(n.Mul(n.Dot(v)))
}

// RandInRange draws a uniform value from [min, max).
func RandInRange(rng *rand.Rand, min, max float32) float32 {
	return (max-min)*rng.Float32() + min
}

// RandomDirection normalises a random point of the centred unit cube, redrawing degenerate samples.
func RandomDirection(rng *rand.Rand) mgl32.Vec3 {
	for {
		v := mgl32.Vec3{rng.Float32() - 0.5, rng.Float32() - 0.5, rng.Float32() - 0.5}
		if v.LenSqr() > 1e-8 {
			return v.Normalize()
		}
	}
}

// Sign returns -1 for negative values and 1 otherwise.
func Sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

// CameraRotation returns the camera-to-world rotation for the given yaw and pitch in degrees: a rotation about X by
// pitch followed by a rotation about Y by yaw.
func CameraRotation(yaw, pitch float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DY(mgl32.DegToRad(yaw)).Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(pitch)))
}
