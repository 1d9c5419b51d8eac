package main

// warpShader samples the offscreen scene through the late-warp homography. Positions are converted to normalised
// device coordinates, mapped, and converted back to source pixels.
var warpShader = []byte(`//kage:unit pixels

package main

var Homography mat3
var ScreenSize vec2

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	pos := srcPos - imageSrc0Origin()
	ndc := vec2(pos.x/ScreenSize.x*2-1, 1-pos.y/ScreenSize.y*2)
	p := Homography * vec3(ndc, 1)
	if p.z == 0 {
		return vec4(0)
	}
	src := p.xy / p.z
	if abs(src.x) > 1 || abs(src.y) > 1 {
		return vec4(0, 0, 0, 1)
	}
	uv := vec2((src.x+1)/2*ScreenSize.x, (1-src.y)/2*ScreenSize.y)
	return imageSrc0At(uv + imageSrc0Origin())
}
`)
