package particle

import (
	"math"
	"math/rand"
	"testing"
)

func TestGenerateCardinality(t *testing.T) {
	for _, n := range []int{1, 2, 100, 5000} {
		assembled, exploded, err := Generate(n, DefaultSphereRadius, DefaultExplosionRadius)
		if err != nil {
			t.Fatalf("Generate(%d): %v", n, err)
		}
		if assembled.Len() != n || exploded.Len() != n {
			t.Fatalf("Generate(%d): got lengths %d/%d", n, assembled.Len(), exploded.Len())
		}
	}
}

func TestGenerateRejectsInvalidCount(t *testing.T) {
	for _, n := range []int{0, -1, -5000} {
		if _, _, err := Generate(n, DefaultSphereRadius, DefaultExplosionRadius); err == nil {
			t.Errorf("Generate(%d) should fail", n)
		}
	}
}

func TestGenerateRejectsInvertedRadii(t *testing.T) {
	if _, _, err := Generate(100, 8.0, 1.5); err == nil {
		t.Fatal("explosion radius below sphere radius should fail")
	}
}

func TestAssembledPointsOnSphere(t *testing.T) {
	const radius = 1.5
	assembled, _, err := Generate(1000, radius, DefaultExplosionRadius)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range assembled {
		if d := math.Abs(float64(p.Length() - radius)); d > 1e-4 {
			t.Fatalf("point %d at distance %f from origin, want %f", i, p.Length(), float32(radius))
		}
	}
}

func TestExplodedPointsInShell(t *testing.T) {
	const inner, outer = 1.5, 8.0
	_, exploded, err := Generate(1000, inner, outer, WithRand(rand.New(rand.NewSource(7))))
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range exploded {
		r := p.Length()
		if r < inner-1e-4 || r > outer+1e-4 {
			t.Fatalf("point %d at radius %f, want within [%f, %f]", i, r, float32(inner), float32(outer))
		}
	}
}

func TestAssembledDeterministic(t *testing.T) {
	a1, _, err := Generate(500, DefaultSphereRadius, DefaultExplosionRadius)
	if err != nil {
		t.Fatal(err)
	}
	a2, _, err := Generate(500, DefaultSphereRadius, DefaultExplosionRadius)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a1 {
		if a1[i] != a2[i] {
			t.Fatalf("assembled layout differs at index %d: %v vs %v", i, a1[i], a2[i])
		}
	}
}
