// Package spatial maps normalized 2D hand coordinates onto the world-space
// z=0 plane by unprojecting through the active camera.
package spatial

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/nova-go/common"
	"github.com/Carmen-Shannon/nova-go/engine/camera"
)

// DefaultDepthHint is the clip-space depth used for the unprojected sample
// point. Any value strictly between the near and far plane works; the ray
// direction is what matters.
const DefaultDepthHint = 0.5

type mapperImpl struct {
	mu        *sync.Mutex
	cam       camera.Camera
	depthHint float32
}

// Mapper converts normalized image coordinates into world-space positions.
type Mapper interface {
	// Map unprojects a normalized coordinate pair onto the z=0 plane.
	// The input uses image conventions: (0,0) is the top-left corner and
	// (1,1) the bottom-right. ok is false when the view ray runs parallel
	// to the plane and no intersection exists.
	//
	// Parameters:
	//   - nx, ny: normalized coordinates in [0,1]
	//
	// Returns:
	//   - x, y, z: world-space intersection with the z=0 plane
	//   - ok: whether an intersection was found
	Map(nx, ny float32) (x, y, z float32, ok bool)

	// Camera returns the camera used for unprojection.
	//
	// Returns:
	//   - camera.Camera: the attached camera
	Camera() camera.Camera
}

var _ Mapper = &mapperImpl{}

// NewMapper creates a Mapper bound to the given camera.
//
// Parameters:
//   - cam: the camera whose inverse view-projection drives the unprojection
//   - options: functional options to configure the mapper
//
// Returns:
//   - Mapper: the newly created mapper
func NewMapper(cam camera.Camera, options ...MapperBuilderOption) Mapper {
	m := &mapperImpl{
		mu:        &sync.Mutex{},
		cam:       cam,
		depthHint: DefaultDepthHint,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *mapperImpl) Map(nx, ny float32) (x, y, z float32, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Image y grows downward, NDC y grows upward.
	clipX := nx*2 - 1
	clipY := -(ny*2 - 1)

	inv := m.cam.InverseViewProjectionMatrix()
	sample := common.TransformVec4(inv[:], clipX, clipY, m.depthHint, 1)
	if sample[3] == 0 {
		return 0, 0, 0, false
	}
	wx := sample[0] / sample[3]
	wy := sample[1] / sample[3]
	wz := sample[2] / sample[3]

	ex, ey, ez := m.cam.Position()
	dirX := wx - ex
	dirY := wy - ey
	dirZ := wz - ez

	if math.Abs(float64(dirZ)) < 1e-6 {
		return 0, 0, 0, false
	}

	t := -ez / dirZ
	return ex + dirX*t, ey + dirY*t, ez + dirZ*t, true
}

func (m *mapperImpl) Camera() camera.Camera {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cam
}
