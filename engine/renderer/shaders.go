package renderer

// WGSL sources for the particle base pass and the bloom compositor chain.
// All passes except the composite render into RGBA16Float offscreen targets
// with premultiplied alpha so the final surface can blend over the host UI.

const particleShaderWGSL = `
struct SceneUniforms {
    model : mat4x4<f32>,
    view : mat4x4<f32>,
    proj : mat4x4<f32>,
    color : vec4<f32>,
    light_color : vec4<f32>,
    light_position : vec4<f32>,
    params : vec4<f32>,
};

@group(0) @binding(0) var<uniform> scene : SceneUniforms;

struct VertexOutput {
    @builtin(position) position : vec4<f32>,
    @location(0) corner : vec2<f32>,
    @location(1) shade : f32,
};

@vertex
fn vs_main(
    @builtin(vertex_index) vi : u32,
    @location(0) instance_pos : vec3<f32>,
) -> VertexOutput {
    var corners = array<vec2<f32>, 4>(
        vec2<f32>(-1.0, -1.0),
        vec2<f32>( 1.0, -1.0),
        vec2<f32>(-1.0,  1.0),
        vec2<f32>( 1.0,  1.0),
    );
    let corner = corners[vi];

    let world = scene.model * vec4<f32>(instance_pos, 1.0);
    var view_pos = scene.view * world;

    // Billboard: offset the quad corner in view space so the sprite always
    // faces the camera.
    let size = scene.params.x;
    view_pos = vec4<f32>(view_pos.xy + corner * size, view_pos.zw);

    let dist = distance(scene.light_position.xyz, world.xyz);
    let shade = clamp(scene.light_color.w / (1.0 + 0.02 * dist * dist), 0.2, 1.0);

    var out : VertexOutput;
    out.position = scene.proj * view_pos;
    out.corner = corner;
    out.shade = shade;
    return out;
}

@fragment
fn fs_main(in : VertexOutput) -> @location(0) vec4<f32> {
    let r = length(in.corner);
    if (r > 1.0) {
        discard;
    }
    let falloff = 1.0 - smoothstep(0.0, 1.0, r);
    let rgb = scene.color.rgb * scene.light_color.rgb * in.shade;
    let a = scene.color.a * falloff;
    return vec4<f32>(rgb * a, a);
}
`

// fullscreenVertexWGSL is the shared single-triangle vertex stage for the
// post-process passes.
const fullscreenVertexWGSL = `
struct VertexOutput {
    @builtin(position) position : vec4<f32>,
    @location(0) uv : vec2<f32>,
};

@vertex
fn vs_main(@builtin(vertex_index) vi : u32) -> VertexOutput {
    let uv = vec2<f32>(f32((vi << 1u) & 2u), f32(vi & 2u));
    var out : VertexOutput;
    out.position = vec4<f32>(uv * 2.0 - 1.0, 0.0, 1.0);
    out.uv = vec2<f32>(uv.x, 1.0 - uv.y);
    return out;
}
`

const brightPassShaderWGSL = fullscreenVertexWGSL + `
struct EffectUniforms {
    // x = threshold, y = bloom intensity, z/w = texel size
    params : vec4<f32>,
};

@group(0) @binding(0) var src : texture_2d<f32>;
@group(0) @binding(1) var samp : sampler;
@group(0) @binding(2) var<uniform> effect : EffectUniforms;

@fragment
fn fs_main(in : VertexOutput) -> @location(0) vec4<f32> {
    let c = textureSample(src, samp, in.uv);
    let luma = dot(c.rgb, vec3<f32>(0.2126, 0.7152, 0.0722));
    let keep = max(luma - effect.params.x, 0.0) / max(luma, 1e-4);
    return vec4<f32>(c.rgb * keep, c.a * keep);
}
`

const blurShaderWGSL = fullscreenVertexWGSL + `
struct EffectUniforms {
    // xy = blur direction, zw = texel size
    params : vec4<f32>,
};

@group(0) @binding(0) var src : texture_2d<f32>;
@group(0) @binding(1) var samp : sampler;
@group(0) @binding(2) var<uniform> effect : EffectUniforms;

@fragment
fn fs_main(in : VertexOutput) -> @location(0) vec4<f32> {
    let step = effect.params.xy * effect.params.zw;
    var weights = array<f32, 5>(0.227027, 0.194594, 0.121621, 0.054054, 0.016216);

    var acc = textureSample(src, samp, in.uv) * weights[0];
    for (var i = 1; i < 5; i++) {
        let offset = step * f32(i);
        acc += textureSample(src, samp, in.uv + offset) * weights[i];
        acc += textureSample(src, samp, in.uv - offset) * weights[i];
    }
    return acc;
}
`

const compositeShaderWGSL = fullscreenVertexWGSL + `
struct EffectUniforms {
    // x = threshold, y = bloom intensity, z/w = texel size
    params : vec4<f32>,
};

@group(0) @binding(0) var scene_tex : texture_2d<f32>;
@group(0) @binding(1) var bloom_tex : texture_2d<f32>;
@group(0) @binding(2) var samp : sampler;
@group(0) @binding(3) var<uniform> effect : EffectUniforms;

@fragment
fn fs_main(in : VertexOutput) -> @location(0) vec4<f32> {
    let base = textureSample(scene_tex, samp, in.uv);
    let bloom = textureSample(bloom_tex, samp, in.uv) * effect.params.y;
    let rgb = base.rgb + bloom.rgb;
    let a = clamp(base.a + bloom.a, 0.0, 1.0);
    return vec4<f32>(rgb, a);
}
`
