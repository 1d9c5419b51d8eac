package world

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/aimbench/game"
	"github.com/oomph-ac/aimbench/settings"
)

// Kind is the kind of a static world object.
type Kind uint8

const (
	KindFloor Kind = iota
	KindWall
	KindBox
)

// Object is a piece of static world geometry.
type Object struct {
	Kind  Kind
	Box   cube.BBox
	Color game.Color
}

// World is the static geometry of a scene: a floor with its top face at y=0, four walls bounding the scene and a
// number of randomly placed boxes. Targets are not part of the world.
type World struct {
	width, depth float32
	objects      []Object
}

// Generate builds a new randomised world from the scene settings.
func Generate(scene settings.Scene, rng *rand.Rand) *World {
	w := &World{width: float32(scene.Width), depth: float32(scene.Depth)}
	hw, hd := w.width/2, w.depth/2
	t := game.WallThickness

	w.objects = append(w.objects, Object{
		Kind:  KindFloor,
		Box:   cube.Box(-hw-t, -1, -hd-t, hw+t, 0, hd+t),
		Color: game.MustParseHexColor(scene.FloorColor),
	})

	wallColor := game.MustParseHexColor(scene.Walls.Color)
	wallHeight := float32(scene.Walls.Height)
	for _, bb := range []cube.BBox{
		cube.Box(-hw-t, 0, -hd, -hw, wallHeight, hd),
		cube.Box(hw, 0, -hd, hw+t, wallHeight, hd),
		cube.Box(-hw, 0, hd, hw, wallHeight, hd+t),
		cube.Box(-hw, 0, -hd-t, hw, wallHeight, -hd),
	} {
		w.objects = append(w.objects, Object{Kind: KindWall, Box: bb, Color: wallColor})
	}

	b := scene.Boxes
	boxColor := game.MustParseHexColor(b.Color)
	distRange := float32(b.DistanceRange)
	minDist := float32(b.MinDistanceToPlayer)
	boxW, boxD := float32(b.Width), float32(b.Depth)
	for i := 0; i < b.Count; i++ {
		colorScale := float32(1-b.ColorScaleRange/2) - rng.Float32()*float32(b.ColorScaleRange)

		pos := mgl32.Vec3{game.RandInRange(rng, -distRange, distRange), 0, game.RandInRange(rng, -distRange, distRange)}
		if l := pos.Len(); l < minDist {
			// Push the box out far enough that none of its corners reach into the clearing.
			push := rng.Float32()*10 + math32.Sqrt(boxW*boxW+boxD*boxD) + minDist
			if l == 0 {
				pos = mgl32.Vec3{push, 0, 0}
			} else {
				pos = pos.Mul(push / l)
			}
		}

		height := game.RandInRange(rng, float32(b.MinHeight), float32(b.MaxHeight))
		w.objects = append(w.objects, Object{
			Kind:  KindBox,
			Box:   game.BoxFromCenter(pos, boxW, height, boxD),
			Color: boxColor.Scale(colorScale),
		})
	}
	return w
}

// Objects returns every object in the world. The returned slice must not be modified.
func (w *World) Objects() []Object {
	return w.objects
}

// Bounds returns the half-extents of the walkable area.
func (w *World) Bounds() (halfWidth, halfDepth float32) {
	return w.width / 2, w.depth / 2
}

// Raycast returns the nearest intersection of the ray with any world object within maxDist.
func (w *World) Raycast(origin, dir mgl32.Vec3, maxDist float32) (game.RayHit, bool) {
	if dir.LenSqr() == 0 || maxDist <= 0 {
		return game.RayHit{}, false
	}

	var (
		nearest game.RayHit
		found   bool
	)
	for _, obj := range w.objects {
		hit, ok := game.BoxRaycast(obj.Box, origin, dir, maxDist)
		if !ok {
			continue
		}
		if !found || hit.Distance < nearest.Distance {
			nearest, found = hit, true
		}
	}
	return nearest, found
}
