package game

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// RayHit is the nearest intersection of a ray with some geometry.
type RayHit struct {
	// Position is the world-space point of intersection.
	Position mgl32.Vec3
	// Normal is the unit surface normal at Position, facing away from the geometry.
	Normal mgl32.Vec3
	// Distance is the distance from the ray origin to Position.
	Distance float32
}

// Raycaster is the scene-query capability: it intersects a ray with static world geometry.
type Raycaster interface {
	// Raycast returns the nearest hit along dir (a unit vector) from origin within maxDist.
	Raycast(origin, dir mgl32.Vec3, maxDist float32) (RayHit, bool)
}

// SafeRaycast runs a raycast, turning a panicking or nil query into "no collision" so a broken scene query degrades
// collision instead of halting the simulation.
func SafeRaycast(r Raycaster, log logrus.FieldLogger, origin, dir mgl32.Vec3, maxDist float32) (hit RayHit, ok bool) {
	if r == nil {
		return RayHit{}, false
	}
	defer func() {
		if v := recover(); v != nil {
			if log != nil {
				log.Warnf(ErrorRaycastPanicked, v)
			}
			hit, ok = RayHit{}, false
		}
	}()
	return r.Raycast(origin, dir, maxDist)
}

// BoxRaycast intersects a ray with a bounding box.
func BoxRaycast(bb cube.BBox, origin, dir mgl32.Vec3, maxDist float32) (RayHit, bool) {
	result, ok := trace.BBoxIntercept(bb, origin, origin.Add(dir.Mul(maxDist)))
	if !ok {
		return RayHit{}, false
	}
	pos := result.Position()
	return RayHit{
		Position: pos,
		Normal:   FaceNormal(result.Face()),
		Distance: pos.Sub(origin).Len(),
	}, true
}

// SphereRaycast intersects a ray with a sphere. A ray starting inside the sphere hits its far side.
func SphereRaycast(center mgl32.Vec3, radius float32, origin, dir mgl32.Vec3, maxDist float32) (RayHit, bool) {
	oc := origin.Sub(center)
	b := dir.Dot(oc)
	c := oc.LenSqr() - radius*radius
	disc := b*b - c
	if disc < 0 {
		return RayHit{}, false
	}
	sq := math32.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 || t > maxDist {
		return RayHit{}, false
	}
	pos := origin.Add(dir.Mul(t))
	normal := pos.Sub(center)
	if radius > 0 {
		normal = normal.Mul(1 / radius)
	}
	return RayHit{Position: pos, Normal: normal, Distance: t}, true
}

// FaceNormal returns the outward unit normal of a box face.
func FaceNormal(f cube.Face) mgl32.Vec3 {
	switch f {
	case cube.FaceDown:
		return mgl32.Vec3{0, -1, 0}
	case cube.FaceUp:
		return mgl32.Vec3{0, 1, 0}
	case cube.FaceNorth:
		return mgl32.Vec3{0, 0, -1}
	case cube.FaceSouth:
		return mgl32.Vec3{0, 0, 1}
	case cube.FaceWest:
		return mgl32.Vec3{-1, 0, 0}
	default:
		return mgl32.Vec3{1, 0, 0}
	}
}
