package particle

import (
	"fmt"
	"math"
	"math/rand"
)

// generateConfig holds generation parameters collected from options.
type generateConfig struct {
	rng *rand.Rand
}

// GenerateOption is a functional option for configuring shape generation.
type GenerateOption func(*generateConfig)

// WithRand pins the random source used for the exploded shape.
// Generation of the assembled shape is fully deterministic and unaffected.
//
// Parameters:
//   - rng: the random source to use
//
// Returns:
//   - GenerateOption: functional option to set the random source
func WithRand(rng *rand.Rand) GenerateOption {
	return func(c *generateConfig) {
		c.rng = rng
	}
}

// Generate produces the two index-aligned target shapes for a session:
// the assembled sphere and the exploded outer shell.
//
// The assembled shape is a deterministic Fibonacci-spiral distribution on a
// sphere of radius sphereRadius: polar angle acos(-1 + 2i/n), azimuth
// accumulating as sqrt(n*π) * polar. The same n always yields the same
// layout, keeping the visual stable across sessions.
//
// The exploded shape is uniform spherical sampling (polar via acos(2v-1) to
// avoid pole clustering) with radius uniform in [sphereRadius,
// explosionRadiusMax], a random shell strictly outside the assembled sphere.
// Both shapes are generated once per session, not per transition.
//
// Parameters:
//   - n: the particle count (must be > 0)
//   - sphereRadius: radius of the assembled sphere
//   - explosionRadiusMax: outer radius of the exploded shell (must be >= sphereRadius)
//   - options: functional options (e.g. WithRand for deterministic tests)
//
// Returns:
//   - Set: the assembled shape (length n)
//   - Set: the exploded shape (length n)
//   - error: error if the parameters are invalid
func Generate(n int, sphereRadius, explosionRadiusMax float32, options ...GenerateOption) (Set, Set, error) {
	if n <= 0 {
		return nil, nil, fmt.Errorf("particle: count must be positive, got %d", n)
	}
	if explosionRadiusMax < sphereRadius {
		return nil, nil, fmt.Errorf("particle: explosion radius %f must be >= sphere radius %f", explosionRadiusMax, sphereRadius)
	}

	cfg := &generateConfig{}
	for _, opt := range options {
		opt(cfg)
	}
	randFloat := rand.Float64
	if cfg.rng != nil {
		randFloat = cfg.rng.Float64
	}

	assembled := make(Set, n)
	exploded := make(Set, n)

	scale := math.Sqrt(float64(n) * math.Pi)
	for i := 0; i < n; i++ {
		// Fibonacci spiral over the sphere surface.
		polar := math.Acos(-1 + 2*float64(i)/float64(n))
		azimuth := scale * polar

		sinPolar, cosPolar := math.Sincos(polar)
		sinAz, cosAz := math.Sincos(azimuth)
		r := float64(sphereRadius)
		assembled[i] = Point{
			float32(r * sinPolar * cosAz),
			float32(r * sinPolar * sinAz),
			float32(r * cosPolar),
		}

		// Uniform direction, radius uniform in the shell band.
		ePolar := math.Acos(2*randFloat() - 1)
		eAzimuth := 2 * math.Pi * randFloat()
		eRadius := float64(sphereRadius) + randFloat()*float64(explosionRadiusMax-sphereRadius)

		sinEP, cosEP := math.Sincos(ePolar)
		sinEA, cosEA := math.Sincos(eAzimuth)
		exploded[i] = Point{
			float32(eRadius * sinEP * cosEA),
			float32(eRadius * sinEP * sinEA),
			float32(eRadius * cosEP),
		}
	}

	return assembled, exploded, nil
}
