package particle

import (
	"math/rand"
	"testing"
)

func testSets(t *testing.T, n int) (Set, Set) {
	t.Helper()
	assembled, exploded, err := Generate(n, DefaultSphereRadius, DefaultExplosionRadius, WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatal(err)
	}
	return assembled, exploded
}

func TestInterpolateEndpoints(t *testing.T) {
	assembled, exploded := testSets(t, 200)
	c := NewCloud(assembled, exploded)

	c.Interpolate(0)
	for i, p := range c.Positions() {
		if p != assembled[i] {
			t.Fatalf("factor 0: position %d = %v, want assembled %v", i, p, assembled[i])
		}
	}

	c.Interpolate(1)
	for i, p := range c.Positions() {
		if p != exploded[i] {
			t.Fatalf("factor 1: position %d = %v, want exploded %v", i, p, exploded[i])
		}
	}
}

func TestInterpolateMidpointExact(t *testing.T) {
	assembled, exploded := testSets(t, 200)
	c := NewCloud(assembled, exploded)

	c.Interpolate(0.5)
	for i, p := range c.Positions() {
		for axis := 0; axis < 3; axis++ {
			// Exact arithmetic mean: a*0.5 + e*0.5 in float32.
			want := assembled[i][axis]*0.5 + exploded[i][axis]*0.5
			if p[axis] != want {
				t.Fatalf("position %d axis %d = %f, want %f", i, axis, p[axis], want)
			}
		}
	}
}

func TestInterpolateRangeCoversDisjointSlices(t *testing.T) {
	assembled, exploded := testSets(t, 100)
	full := NewCloud(assembled, exploded)
	split := NewCloud(assembled, exploded)

	full.Interpolate(0.3)
	split.InterpolateRange(0.3, 0, 37)
	split.InterpolateRange(0.3, 37, 100)

	fp, sp := full.Positions(), split.Positions()
	for i := range fp {
		if fp[i] != sp[i] {
			t.Fatalf("range split diverges at index %d: %v vs %v", i, fp[i], sp[i])
		}
	}
}

func TestRotationAccumulates(t *testing.T) {
	assembled, exploded := testSets(t, 10)
	c := NewCloud(assembled, exploded, WithRotationSpeed(0.1, 0.2, 0))

	var prevY float32
	for i := 0; i < 5; i++ {
		c.AdvanceRotation(1.0 / 60.0)
		rot := c.Rotation()
		if rot[1] <= prevY {
			t.Fatalf("rotation.y must grow monotonically: %f then %f", prevY, rot[1])
		}
		prevY = rot[1]
	}
}

func TestColorThresholdSwitch(t *testing.T) {
	assembled, exploded := testSets(t, 10)
	blue := [4]float32{0, 0, 1, 1}
	red := [4]float32{1, 0, 0, 1}
	c := NewCloud(assembled, exploded, WithColors(blue, red))

	cases := []struct {
		factor float32
		want   [4]float32
	}{
		{0, blue},
		{0.49, blue},
		{0.5, red},
		{1, red},
	}
	for _, tc := range cases {
		if got := c.Color(tc.factor); got != tc.want {
			t.Errorf("Color(%f) = %v, want %v", tc.factor, got, tc.want)
		}
	}
}

func TestNewCloudPanicsOnMismatchedShapes(t *testing.T) {
	assembled, exploded := testSets(t, 10)
	defer func() {
		if recover() == nil {
			t.Fatal("mismatched shape lengths should panic")
		}
	}()
	NewCloud(assembled[:5], exploded)
}
