// Package particle owns the particle data model: the two fixed target shapes
// (assembled sphere and exploded shell), and the Cloud that blends between
// them each frame.
package particle

import "math"

// Default generation parameters for a visualization session.
const (
	// DefaultCount is the number of particles in a cloud.
	DefaultCount = 5000

	// DefaultSphereRadius is the radius of the assembled sphere shape.
	DefaultSphereRadius = 1.5

	// DefaultExplosionRadius is the outer radius of the exploded shell shape.
	DefaultExplosionRadius = 8.0
)

// Point is a single particle position in world space.
// The layout matches the GPU instance buffer exactly (12 bytes, float32x3).
type Point [3]float32

// Length returns the point's distance from the origin.
//
// Returns:
//   - float32: the Euclidean length
func (p Point) Length() float32 {
	return float32(math.Sqrt(float64(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])))
}

// Set is an ordered, fixed-cardinality sequence of particle positions.
// The assembled and exploded sets of a session have identical length and are
// index-aligned: index i in one is the same particle as index i in the other.
// Sets are treated as immutable after generation.
type Set []Point

// Len returns the number of particles in the set.
//
// Returns:
//   - int: the particle count
func (s Set) Len() int {
	return len(s)
}
