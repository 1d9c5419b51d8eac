package game

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// BoxFromCenter returns a bounding box with its base centred on the given point.
func BoxFromCenter(base mgl32.Vec3, width, height, depth float32) cube.BBox {
	hw, hd := width/2, depth/2
	return cube.Box(
		base.X()-hw, base.Y(), base.Z()-hd,
		base.X()+hw, base.Y()+height, base.Z()+hd,
	)
}
