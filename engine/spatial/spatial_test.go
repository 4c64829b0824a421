package spatial

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/nova-go/engine/camera"
)

func TestMapCenterHitsOrigin(t *testing.T) {
	cam := camera.NewCamera()
	m := NewMapper(cam)

	x, y, z, ok := m.Map(0.5, 0.5)
	if !ok {
		t.Fatal("expected an intersection at screen center")
	}
	if math.Abs(float64(x)) > 1e-4 || math.Abs(float64(y)) > 1e-4 || math.Abs(float64(z)) > 1e-4 {
		t.Fatalf("screen center mapped to (%v, %v, %v), want origin", x, y, z)
	}
}

func TestMapImageAxesMatchWorldAxes(t *testing.T) {
	cam := camera.NewCamera()
	m := NewMapper(cam)

	// Top of the image is world +y, right of the image is world +x.
	_, topY, _, ok := m.Map(0.5, 0.0)
	if !ok || topY <= 0 {
		t.Fatalf("top of image mapped to y=%v, want positive", topY)
	}
	rightX, _, _, ok := m.Map(1.0, 0.5)
	if !ok || rightX <= 0 {
		t.Fatalf("right of image mapped to x=%v, want positive", rightX)
	}
}

func TestMapEdgesStayOnPlane(t *testing.T) {
	cam := camera.NewCamera(camera.WithAspect(16.0 / 9.0))
	m := NewMapper(cam)

	corners := [][2]float32{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	for _, c := range corners {
		x, y, z, ok := m.Map(c[0], c[1])
		if !ok {
			t.Fatalf("corner (%v, %v) produced no intersection", c[0], c[1])
		}
		if math.Abs(float64(z)) > 1e-3 {
			t.Fatalf("corner (%v, %v) left the z=0 plane: z=%v", c[0], c[1], z)
		}
		if math.Abs(float64(x)) < 1 && math.Abs(float64(y)) < 1 {
			t.Fatalf("corner (%v, %v) mapped too close to center: (%v, %v)", c[0], c[1], x, y)
		}
	}
}

func TestMapParallelRayRejected(t *testing.T) {
	// Camera on the plane looking along it: every view ray is parallel to z=0.
	cam := camera.NewCamera(
		camera.WithPosition(0, 0, 0),
		camera.WithTarget(1, 0, 0),
	)
	m := NewMapper(cam)

	if _, _, _, ok := m.Map(0.5, 0.5); ok {
		t.Fatal("expected no intersection for a ray parallel to the plane")
	}
}
