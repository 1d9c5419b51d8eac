package weapon

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/aimbench/entity"
	"github.com/oomph-ac/aimbench/game"
	"github.com/sirupsen/logrus"
)

// TargetQuery intersects a ray with the live targets.
type TargetQuery interface {
	Raycast(origin, dir mgl32.Vec3, maxDist float32) (*entity.Target, game.RayHit, bool)
}

// Shot is the outcome of a single shot.
type Shot struct {
	// Target is the target hit, or nil if the shot hit world geometry or nothing.
	Target *entity.Target
	// Hit is the nearest intersection. It is only valid if Target is set or World is true.
	Hit game.RayHit
	// World is true if the shot hit world geometry before any target.
	World bool
}

// Missed returns true if the shot hit nothing at all.
func (s Shot) Missed() bool {
	return s.Target == nil && !s.World
}

// Resolve finds what a shot from origin along dir hits: the nearest of the targets and the world geometry. A target
// is preferred when both are hit at the same distance.
func Resolve(targets TargetQuery, world game.Raycaster, log logrus.FieldLogger, origin, dir mgl32.Vec3, maxDist float32) Shot {
	var shot Shot
	if targets != nil {
		if t, hit, ok := targets.Raycast(origin, dir, maxDist); ok {
			shot.Target, shot.Hit = t, hit
			maxDist = hit.Distance
		}
	}
	if hit, ok := game.SafeRaycast(world, log, origin, dir, maxDist); ok {
		if shot.Target == nil || hit.Distance < shot.Hit.Distance {
			shot = Shot{Hit: hit, World: true}
		}
	}
	return shot
}
