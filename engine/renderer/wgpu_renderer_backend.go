package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/nova-go/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// offscreenFormat is the render target format for the base pass and the bloom
// chain. Float16 keeps the bright-pass headroom that bloom needs.
const offscreenFormat = wgpu.TextureFormatRGBA16Float

type wgpuRendererBackendImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat *wgpu.TextureFormat
	presentMode   wgpu.PresentMode
	width         int
	height        int

	sampler *wgpu.Sampler

	// Offscreen targets: the base pass renders the particles into the scene
	// target, the bright pass extracts hot pixels, and the two blur targets
	// ping-pong the separable Gaussian.
	sceneTexture  *wgpu.Texture
	sceneView     *wgpu.TextureView
	brightTexture *wgpu.Texture
	brightView    *wgpu.TextureView
	blurTextures  [2]*wgpu.Texture
	blurViews     [2]*wgpu.TextureView

	uniformBuffer    *wgpu.Buffer
	effectBuffer     *wgpu.Buffer
	blurParamBuffers [2]*wgpu.Buffer

	instanceBuffer   *wgpu.Buffer
	instanceCapacity int
	instanceCount    uint32

	uniformLayout *wgpu.BindGroupLayout
	effectLayout  *wgpu.BindGroupLayout
	compLayout    *wgpu.BindGroupLayout

	particlePipeline  *wgpu.RenderPipeline
	brightPipeline    *wgpu.RenderPipeline
	blurPipeline      *wgpu.RenderPipeline
	compositePipeline *wgpu.RenderPipeline

	uniformBindGroup   *wgpu.BindGroup
	brightBindGroup    *wgpu.BindGroup
	blurBindGroups     [2]*wgpu.BindGroup
	compositeBindGroup *wgpu.BindGroup

	// Cached scalar knobs so resize can rewrite the effect buffer without a
	// fresh SceneUniforms.
	threshold float32
	intensity float32

	releaseOnce sync.Once
	released    bool
}

type wgpuRendererBackend interface {
	// ConfigureSurface (re)configures the surface and rebuilds all
	// size-dependent render targets and bind groups. Must be called before
	// the first RenderFrame and on every window resize. A no-op after
	// Release.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames
	// are delivered to the display. Takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// InitParticleBuffers sizes the per-instance position buffer for the
	// given particle count.
	//
	// Parameters:
	//   - count: the number of particles the buffer must hold
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitParticleBuffers(count int) error

	// WriteParticles uploads packed particle positions (3 float32 per
	// particle) into the instance buffer.
	//
	// Parameters:
	//   - data: the raw position bytes to upload
	WriteParticles(data []byte)

	// WriteUniforms uploads the per-frame scene uniforms and refreshes the
	// bloom effect parameters derived from them.
	//
	// Parameters:
	//   - u: the scene uniforms for the next frame
	WriteUniforms(u SceneUniforms)

	// RenderFrame runs the full compositor for one frame: base pass, bright
	// pass, horizontal and vertical blur, composite to the surface, present.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	RenderFrame() error

	// Release frees all GPU resources. Safe to call twice; every call after
	// the first is a no-op, as is any other backend method.
	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) wgpuRendererBackend {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		panic(err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		panic(err)
	}
	b.device = d
	b.queue = d.GetQueue()

	sampler, err := d.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Compositor Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
	if err != nil {
		panic(err)
	}
	b.sampler = sampler

	if err := b.createUniformBuffers(); err != nil {
		panic(err)
	}

	return b
}

// createUniformBuffers allocates the scene uniform buffer, the shared bloom
// effect buffer, and the two blur direction buffers.
func (b *wgpuRendererBackendImpl) createUniformBuffers() error {
	var u SceneUniforms
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Scene Uniform Buffer",
		Size:  uint64(len(common.StructToBytes(&u))),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.uniformBuffer = buf

	effect, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Bloom Effect Buffer",
		Size:  16,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.effectBuffer = effect

	for i := range b.blurParamBuffers {
		blur, blurErr := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: fmt.Sprintf("Blur Param Buffer %d", i),
			Size:  16,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if blurErr != nil {
			return blurErr
		}
		b.blurParamBuffers[i] = blur
	}
	return nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released || width <= 0 || height <= 0 {
		return
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	// Prefer a premultiplied-alpha surface so the transparent clear lets the
	// host UI show through where no particles were drawn.
	alphaMode := capabilities.AlphaModes[0]
	for _, mode := range capabilities.AlphaModes {
		if mode == wgpu.CompositeAlphaModePremultiplied {
			alphaMode = mode
			break
		}
	}

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   alphaMode,
	})
	b.width = width
	b.height = height

	b.releaseTargets()
	if err := b.createTargets(width, height); err != nil {
		panic(err)
	}
	if err := b.ensurePipelines(); err != nil {
		panic(err)
	}
	if err := b.createBindGroups(); err != nil {
		panic(err)
	}

	// Texel size feeds both the blur kernels and the shared effect buffer.
	texelW := 1.0 / float32(width)
	texelH := 1.0 / float32(height)
	b.queue.WriteBuffer(b.blurParamBuffers[0], 0, common.SliceToBytes([]float32{1, 0, texelW, texelH}))
	b.queue.WriteBuffer(b.blurParamBuffers[1], 0, common.SliceToBytes([]float32{0, 1, texelW, texelH}))
	b.queue.WriteBuffer(b.effectBuffer, 0, common.SliceToBytes([]float32{b.threshold, b.intensity, texelW, texelH}))
}

// createTargets allocates the offscreen color targets for the compositor
// chain. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) createTargets(width, height int) error {
	create := func(label string) (*wgpu.Texture, *wgpu.TextureView, error) {
		tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label: label,
			Size: wgpu.Extent3D{
				Width:              uint32(width),
				Height:             uint32(height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     wgpu.TextureDimension2D,
			Format:        offscreenFormat,
			Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
		})
		if err != nil {
			return nil, nil, err
		}
		view, err := tex.CreateView(nil)
		if err != nil {
			tex.Release()
			return nil, nil, err
		}
		return tex, view, nil
	}

	var err error
	if b.sceneTexture, b.sceneView, err = create("Scene Target"); err != nil {
		return err
	}
	if b.brightTexture, b.brightView, err = create("Bright Target"); err != nil {
		return err
	}
	for i := range b.blurTextures {
		if b.blurTextures[i], b.blurViews[i], err = create(fmt.Sprintf("Blur Target %d", i)); err != nil {
			return err
		}
	}
	return nil
}

// releaseTargets frees the size-dependent textures and bind groups so resize
// can rebuild them. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) releaseTargets() {
	for _, bg := range []*wgpu.BindGroup{b.brightBindGroup, b.blurBindGroups[0], b.blurBindGroups[1], b.compositeBindGroup} {
		if bg != nil {
			bg.Release()
		}
	}
	b.brightBindGroup = nil
	b.blurBindGroups = [2]*wgpu.BindGroup{}
	b.compositeBindGroup = nil

	release := func(tex *wgpu.Texture, view *wgpu.TextureView) {
		if view != nil {
			view.Release()
		}
		if tex != nil {
			tex.Release()
		}
	}
	release(b.sceneTexture, b.sceneView)
	release(b.brightTexture, b.brightView)
	for i := range b.blurTextures {
		release(b.blurTextures[i], b.blurViews[i])
	}
	b.sceneTexture, b.sceneView = nil, nil
	b.brightTexture, b.brightView = nil, nil
	b.blurTextures = [2]*wgpu.Texture{}
	b.blurViews = [2]*wgpu.TextureView{}
}

// ensurePipelines builds the four render pipelines once. Requires the surface
// format, so it runs on the first ConfigureSurface. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) ensurePipelines() error {
	if b.particlePipeline != nil {
		return nil
	}

	uniformLayout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Scene Uniform Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeUniform,
				},
			},
		},
	})
	if err != nil {
		return err
	}
	b.uniformLayout = uniformLayout

	effectLayout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Effect Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeUniform,
				},
			},
		},
	})
	if err != nil {
		return err
	}
	b.effectLayout = effectLayout

	compLayout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Composite Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
			{
				Binding:    3,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeUniform,
				},
			},
		},
	})
	if err != nil {
		return err
	}
	b.compLayout = compLayout

	makeModule := func(label, source string) (*wgpu.ShaderModule, error) {
		return b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
			Label: label,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
				Code: source,
			},
		})
	}

	particleModule, err := makeModule("particle", particleShaderWGSL)
	if err != nil {
		return err
	}
	particleLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Particle Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{uniformLayout},
	})
	if err != nil {
		return err
	}

	// Additive blending so overlapping glows accumulate energy for the
	// bright pass to pick up.
	additive := &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOne,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOne,
			Operation: wgpu.BlendOperationAdd,
		},
	}

	b.particlePipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Particle Render Pipeline",
		Layout: particleLayout,
		Vertex: wgpu.VertexState{
			Module:     particleModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: 12,
					StepMode:    wgpu.VertexStepModeInstance,
					Attributes: []wgpu.VertexAttribute{
						{
							Format:         wgpu.VertexFormatFloat32x3,
							Offset:         0,
							ShaderLocation: 0,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     particleModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    offscreenFormat,
					Blend:     additive,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleStrip,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return err
	}

	fullscreen := func(label, source string, layout *wgpu.BindGroupLayout, format wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
		module, moduleErr := makeModule(label, source)
		if moduleErr != nil {
			return nil, moduleErr
		}
		pipelineLayout, layoutErr := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
			Label:            label + " Pipeline Layout",
			BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
		})
		if layoutErr != nil {
			return nil, layoutErr
		}
		return b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
			Label:  label + " Pipeline",
			Layout: pipelineLayout,
			Vertex: wgpu.VertexState{
				Module:     module,
				EntryPoint: "vs_main",
			},
			Fragment: &wgpu.FragmentState{
				Module:     module,
				EntryPoint: "fs_main",
				Targets: []wgpu.ColorTargetState{
					{
						Format:    format,
						WriteMask: wgpu.ColorWriteMaskAll,
					},
				},
			},
			Primitive: wgpu.PrimitiveState{
				Topology:  wgpu.PrimitiveTopologyTriangleList,
				FrontFace: wgpu.FrontFaceCCW,
				CullMode:  wgpu.CullModeNone,
			},
			Multisample: wgpu.MultisampleState{
				Count: 1,
				Mask:  0xFFFFFFFF,
			},
		})
	}

	if b.brightPipeline, err = fullscreen("bright", brightPassShaderWGSL, effectLayout, offscreenFormat); err != nil {
		return err
	}
	if b.blurPipeline, err = fullscreen("blur", blurShaderWGSL, effectLayout, offscreenFormat); err != nil {
		return err
	}
	if b.compositePipeline, err = fullscreen("composite", compositeShaderWGSL, compLayout, *b.surfaceFormat); err != nil {
		return err
	}

	uniformBindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Scene Uniform Bind Group",
		Layout: uniformLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  b.uniformBuffer,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return err
	}
	b.uniformBindGroup = uniformBindGroup

	return nil
}

// createBindGroups rebuilds the bind groups that reference the offscreen
// target views. Caller must hold the mutex.
func (b *wgpuRendererBackendImpl) createBindGroups() error {
	effectGroup := func(label string, src *wgpu.TextureView, params *wgpu.Buffer) (*wgpu.BindGroup, error) {
		return b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  label,
			Layout: b.effectLayout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, TextureView: src},
				{Binding: 1, Sampler: b.sampler},
				{Binding: 2, Buffer: params, Size: wgpu.WholeSize},
			},
		})
	}

	var err error
	if b.brightBindGroup, err = effectGroup("Bright Bind Group", b.sceneView, b.effectBuffer); err != nil {
		return err
	}
	if b.blurBindGroups[0], err = effectGroup("Blur H Bind Group", b.brightView, b.blurParamBuffers[0]); err != nil {
		return err
	}
	if b.blurBindGroups[1], err = effectGroup("Blur V Bind Group", b.blurViews[0], b.blurParamBuffers[1]); err != nil {
		return err
	}

	b.compositeBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Composite Bind Group",
		Layout: b.compLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: b.sceneView},
			{Binding: 1, TextureView: b.blurViews[1]},
			{Binding: 2, Sampler: b.sampler},
			{Binding: 3, Buffer: b.effectBuffer, Size: wgpu.WholeSize},
		},
	})
	return err
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) InitParticleBuffers(count int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return errors.New("backend released")
	}
	if count <= 0 {
		return fmt.Errorf("invalid particle count %d", count)
	}
	if b.instanceBuffer != nil && count <= b.instanceCapacity {
		b.instanceCount = uint32(count)
		return nil
	}
	if b.instanceBuffer != nil {
		b.instanceBuffer.Release()
		b.instanceBuffer = nil
	}

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Particle Instance Buffer",
		Size:  uint64(count) * 12,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.instanceBuffer = buf
	b.instanceCapacity = count
	b.instanceCount = uint32(count)
	return nil
}

func (b *wgpuRendererBackendImpl) WriteParticles(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released || b.instanceBuffer == nil || len(data) == 0 {
		return
	}
	b.queue.WriteBuffer(b.instanceBuffer, 0, data)
}

func (b *wgpuRendererBackendImpl) WriteUniforms(u SceneUniforms) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return
	}
	b.threshold = u.Params[2]
	b.intensity = u.Params[1]

	b.queue.WriteBuffer(b.uniformBuffer, 0, common.StructToBytes(&u))
	if b.width > 0 && b.height > 0 {
		texelW := 1.0 / float32(b.width)
		texelH := 1.0 / float32(b.height)
		b.queue.WriteBuffer(b.effectBuffer, 0, common.SliceToBytes([]float32{b.threshold, b.intensity, texelW, texelH}))
	}
}

func (b *wgpuRendererBackendImpl) RenderFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.released {
		return errors.New("backend released")
	}
	if b.sceneView == nil || b.particlePipeline == nil {
		return errors.New("surface not configured")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	surfaceView, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		surfaceView.Release()
		surfaceTexture.Release()
		return err
	}

	transparent := wgpu.Color{R: 0, G: 0, B: 0, A: 0}

	// Base pass: particles into the scene target over a transparent clear.
	basePass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       b.sceneView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: transparent,
			},
		},
	})
	basePass.SetPipeline(b.particlePipeline)
	basePass.SetBindGroup(0, b.uniformBindGroup, nil)
	if b.instanceBuffer != nil && b.instanceCount > 0 {
		basePass.SetVertexBuffer(0, b.instanceBuffer, 0, wgpu.WholeSize)
		basePass.Draw(4, b.instanceCount, 0, 0)
	}
	basePass.End()

	// Post-process chain: bright pass, horizontal blur, vertical blur,
	// composite to the surface.
	fullscreenPass := func(target *wgpu.TextureView, pipeline *wgpu.RenderPipeline, bindGroup *wgpu.BindGroup) {
		pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
			ColorAttachments: []wgpu.RenderPassColorAttachment{
				{
					View:       target,
					LoadOp:     wgpu.LoadOpClear,
					StoreOp:    wgpu.StoreOpStore,
					ClearValue: transparent,
				},
			},
		})
		pass.SetPipeline(pipeline)
		pass.SetBindGroup(0, bindGroup, nil)
		pass.Draw(3, 1, 0, 0)
		pass.End()
	}

	fullscreenPass(b.brightView, b.brightPipeline, b.brightBindGroup)
	fullscreenPass(b.blurViews[0], b.blurPipeline, b.blurBindGroups[0])
	fullscreenPass(b.blurViews[1], b.blurPipeline, b.blurBindGroups[1])
	fullscreenPass(surfaceView, b.compositePipeline, b.compositeBindGroup)

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		encoder.Release()
		surfaceView.Release()
		surfaceTexture.Release()
		return err
	}

	b.queue.Submit(commandBuffer)
	b.surface.Present()

	commandBuffer.Release()
	encoder.Release()
	surfaceView.Release()
	surfaceTexture.Release()

	return nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.releaseOnce.Do(func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		b.released = true

		b.releaseTargets()

		if b.uniformBindGroup != nil {
			b.uniformBindGroup.Release()
			b.uniformBindGroup = nil
		}
		for _, layout := range []*wgpu.BindGroupLayout{b.uniformLayout, b.effectLayout, b.compLayout} {
			if layout != nil {
				layout.Release()
			}
		}
		b.uniformLayout, b.effectLayout, b.compLayout = nil, nil, nil

		buffers := []*wgpu.Buffer{b.uniformBuffer, b.effectBuffer, b.blurParamBuffers[0], b.blurParamBuffers[1], b.instanceBuffer}
		for _, buf := range buffers {
			if buf != nil {
				buf.Release()
			}
		}
		b.uniformBuffer, b.effectBuffer, b.instanceBuffer = nil, nil, nil
		b.blurParamBuffers = [2]*wgpu.Buffer{}

		if b.sampler != nil {
			b.sampler.Release()
			b.sampler = nil
		}
	})
}
