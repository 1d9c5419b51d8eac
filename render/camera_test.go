package render

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func testCamera(yaw, pitch float32) Camera {
	return Camera{Position: mgl32.Vec3{10, 5, -20}, Yaw: yaw, Pitch: pitch, FovY: 60, Aspect: 16.0 / 9.0, Near: 0.1, Far: 1000}
}

func TestProjectForwardIsScreenCentre(t *testing.T) {
	for _, pose := range [][2]float32{{0, 0}, {90, 0}, {200, 30}, {315, -60}} {
		cam := testCamera(pose[0], pose[1])
		ndc, ok := cam.Project(cam.Position.Add(cam.Forward().Mul(50)))
		if !ok {
			t.Fatalf("%v: expected point ahead to be in front of the camera", pose)
		}
		if math32.Abs(ndc.X()) > 1e-4 || math32.Abs(ndc.Y()) > 1e-4 {
			t.Fatalf("%v: expected point ahead at the screen centre, got %v", pose, ndc)
		}
	}
}

func TestProjectOrientation(t *testing.T) {
	cam := testCamera(0, 0)
	right, _ := cam.Project(cam.Position.Add(mgl32.Vec3{5, 0, -50}))
	if right.X() <= 0 {
		t.Fatalf("expected +X to project right of centre, got %v", right)
	}
	up, _ := cam.Project(cam.Position.Add(mgl32.Vec3{0, 5, -50}))
	if up.Y() <= 0 {
		t.Fatalf("expected +Y to project above centre, got %v", up)
	}
	if _, ok := cam.Project(cam.Position.Add(mgl32.Vec3{0, 0, 50})); ok {
		t.Fatalf("expected point behind the camera to be rejected")
	}
}

func TestViewInvertsRotation(t *testing.T) {
	cam := testCamera(123, 17)
	local := cam.View().Mul4x1(cam.Position.Add(cam.Forward()).Vec4(1)).Vec3()
	if local.Sub(mgl32.Vec3{0, 0, -1}).Len() > 1e-4 {
		t.Fatalf("expected forward to map to -Z in camera space, got %v", local)
	}
}
