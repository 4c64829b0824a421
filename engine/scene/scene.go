package scene

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/nova-go/common"
	"github.com/Carmen-Shannon/nova-go/engine/camera"
	"github.com/Carmen-Shannon/nova-go/engine/light"
	"github.com/Carmen-Shannon/nova-go/engine/particle"
	"github.com/Carmen-Shannon/nova-go/engine/renderer"
	"github.com/Carmen-Shannon/nova-go/engine/tween"
)

// Default scene tuning.
const (
	// DefaultPositionTweenDuration smooths the cloud toward the mapped hand
	// position instead of jumping each detection.
	DefaultPositionTweenDuration = 0.2

	// DefaultParticleSize is the billboard half-extent in view units.
	DefaultParticleSize = 0.035

	// DefaultBloomThreshold is the bright-pass luminance cutoff.
	DefaultBloomThreshold = 0.3
)

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.Mutex

	name  string
	cam   camera.Camera
	cloud particle.Cloud
	lit   light.Light
	r     renderer.Renderer

	position tween.Vector

	particleSize   float32
	bloomThreshold float32

	// Frame state handed from Advance (tick side) to Draw (render side).
	factor float32
	bloom  float32

	// scratch receives a copy of the particle positions under the mutex so
	// the upload never aliases the buffer Advance mutates concurrently.
	scratch []byte

	// computePool fans the per-frame interpolation of all particles out
	// across a bounded set of reusable goroutines.
	computePool    worker.DynamicWorkerPool
	computeWorkers int
}

// Scene owns the renderable state of one visualization: the camera, the
// particle cloud, the light, and the renderer. The tick side drives Advance
// each logic step; the render side calls Draw once per frame.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Camera returns the attached camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// Cloud returns the attached particle cloud.
	//
	// Returns:
	//   - particle.Cloud: the cloud
	Cloud() particle.Cloud

	// Light returns the attached light.
	//
	// Returns:
	//   - light.Light: the light
	Light() light.Light

	// Position returns the cloud's current world-space position.
	//
	// Returns:
	//   - [3]float32: the position
	Position() [3]float32

	// SetTargetPosition retargets the cloud position tween toward the given
	// world-space point. The move takes DefaultPositionTweenDuration seconds.
	//
	// Parameters:
	//   - x, y, z: the new target position
	SetTargetPosition(x, y, z float32)

	// Advance runs one logic step: accumulate rotation, tick the position
	// tween, and recompute every particle position for the given morph
	// factor in parallel across the compute pool. The bloom intensity is
	// stored for the next Draw.
	//
	// Parameters:
	//   - dt: elapsed seconds since the last step
	//   - factor: the morph factor in [0,1]
	//   - bloom: the bloom intensity for the frame
	Advance(dt, factor, bloom float32)

	// Draw uploads the frame state (positions, transforms, color, light,
	// bloom) to the renderer and renders one composited frame.
	//
	// Returns:
	//   - error: an error if the frame could not be rendered
	Draw() error

	// Resize propagates a new surface size to the renderer and updates the
	// camera's aspect ratio.
	//
	// Parameters:
	//   - width, height: the new surface size in pixels
	Resize(width, height int)

	// Stop cancels the position tween where it is. Called on session
	// teardown; a stopped tween makes no guarantee of reaching its target
	// and later Advance calls will not move it.
	Stop()
}

var _ Scene = &scene{}

// NewScene creates a new Scene with the given camera, cloud, light, and
// renderer. All four are required and NewScene panics if any is nil. The
// renderer's particle buffer is sized for the cloud.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - cloud: the particle cloud to attach (must not be nil)
//   - lit: the light to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
//   - error: an error if the renderer could not size its particle buffer
func NewScene(name string, cam camera.Camera, cloud particle.Cloud, lit light.Light, r renderer.Renderer, options ...SceneBuilderOption) (Scene, error) {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if cloud == nil {
		panic("scene: NewScene requires a non-nil Cloud")
	}
	if lit == nil {
		panic("scene: NewScene requires a non-nil Light")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:             &sync.Mutex{},
		name:           name,
		cam:            cam,
		cloud:          cloud,
		lit:            lit,
		r:              r,
		position:       tween.NewVector([3]float32{0, 0, 0}),
		particleSize:   DefaultParticleSize,
		bloomThreshold: DefaultBloomThreshold,
		computeWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the compute pool after options so WithComputeWorkers can
	// override the default.
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)

	if err := r.InitParticleBuffers(cloud.Count()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *scene) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *scene) Camera() camera.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cam
}

func (s *scene) Cloud() particle.Cloud {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloud
}

func (s *scene) Light() light.Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lit
}

func (s *scene) Position() [3]float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position.Current()
}

func (s *scene) SetTargetPosition(x, y, z float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position.Retarget([3]float32{x, y, z}, DefaultPositionTweenDuration, tween.EaseOutQuad)
}

func (s *scene) Advance(dt, factor, bloom float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cloud.AdvanceRotation(dt)
	s.position.Tick(dt)
	s.factor = factor
	s.bloom = bloom

	// Fan the interpolation out across the pool in contiguous ranges; a
	// WaitGroup provides the per-frame barrier.
	count := s.cloud.Count()
	workers := s.computeWorkers
	if workers > count {
		workers = count
	}
	chunk := (count + workers - 1) / workers

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * chunk
		end := min(start+chunk, count)
		if start >= end {
			break
		}

		wg.Add(1)
		s.computePool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				s.cloud.InterpolateRange(factor, start, end)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (s *scene) Draw() error {
	s.mu.Lock()

	pos := s.position.Current()
	rot := s.cloud.Rotation()

	var u renderer.SceneUniforms
	common.BuildModelMatrix(u.Model[:], pos[0], pos[1], pos[2], rot[0], rot[1], rot[2], 1, 1, 1)
	u.View = s.cam.ViewMatrix()
	u.Projection = s.cam.ProjectionMatrix()
	u.Color = s.cloud.Color(s.factor)

	lc := s.lit.Color()
	intensity := s.lit.Intensity()
	if !s.lit.Enabled() {
		intensity = 0
	}
	lp := s.lit.Position()
	u.LightColor = [4]float32{lc[0], lc[1], lc[2], intensity}
	u.LightPosition = [4]float32{lp[0], lp[1], lp[2], 0}
	u.Params = [4]float32{s.particleSize, s.bloom, s.bloomThreshold, 0}

	s.scratch = append(s.scratch[:0], common.SliceToBytes(s.cloud.Positions())...)
	data := s.scratch
	s.mu.Unlock()

	s.r.SetUniforms(u)
	s.r.UpdateParticles(data)
	return s.r.RenderFrame()
}

func (s *scene) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.position.Cancel()
}

func (s *scene) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if height > 0 {
		s.cam.SetAspect(float32(width) / float32(height))
	}
	s.r.Resize(width, height)
}
