package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/nova-go/common"
)

func TestSceneUniformsLayout(t *testing.T) {
	// The WGSL SceneUniforms struct is three mat4x4 plus four vec4:
	// 3*64 + 4*16 = 256 bytes, with no padding gaps.
	var u SceneUniforms
	if got := len(common.StructToBytes(&u)); got != 256 {
		t.Fatalf("SceneUniforms marshals to %d bytes, want 256", got)
	}
}

func TestMockRendererRecordsCalls(t *testing.T) {
	m := NewMockRenderer()

	if err := m.InitParticleBuffers(5000); err != nil {
		t.Fatalf("init: %v", err)
	}
	if m.ParticleCount() != 5000 {
		t.Fatalf("particle count = %d, want 5000", m.ParticleCount())
	}

	m.UpdateParticles([]byte{1, 2, 3})
	m.UpdateParticles([]byte{4, 5, 6})
	if m.Uploads() != 2 {
		t.Fatalf("uploads = %d, want 2", m.Uploads())
	}
	if got := m.LastData(); len(got) != 3 || got[0] != 4 {
		t.Fatalf("unexpected last data %v", got)
	}

	if err := m.RenderFrame(); err != nil {
		t.Fatalf("frame: %v", err)
	}
	if m.Frames() != 1 {
		t.Fatalf("frames = %d, want 1", m.Frames())
	}

	m.Release()
	m.Release()
	if m.ReleaseCount() != 2 {
		t.Fatalf("release count = %d, want 2", m.ReleaseCount())
	}
}
