package shader

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/Faultbox/umbra/internal/engine/ubo"
)

// fakeBackend links everything and reports blocks by scanning the sources.
type fakeBackend struct {
	next     uint32
	sources  map[uint32]string
	programs map[uint32]string
	deleted  map[uint32]bool
	bindings map[uint32]map[string]uint32
	samplers map[uint32]map[string]int32

	failCompile string
	// skew shifts every reported member offset of this block.
	skew map[string]int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		sources:  map[uint32]string{},
		programs: map[uint32]string{},
		deleted:  map[uint32]bool{},
		bindings: map[uint32]map[string]uint32{},
		samplers: map[uint32]map[string]int32{},
		skew:     map[string]int{},
	}
}

func (f *fakeBackend) compile(stage, source string) (uint32, error) {
	if f.failCompile != "" && strings.Contains(source, f.failCompile) {
		return 0, errors.New(stage + ": syntax error")
	}
	f.next++
	f.sources[f.next] = source
	return f.next, nil
}

func (f *fakeBackend) link(shaders ...uint32) (uint32, error) {
	f.next++
	var all strings.Builder
	for _, s := range shaders {
		all.WriteString(f.sources[s])
	}
	f.programs[f.next] = all.String()
	return f.next, nil
}

func (f *fakeBackend) deleteShader(s uint32)  { f.deleted[s] = true }
func (f *fakeBackend) deleteProgram(p uint32) { f.deleted[p] = true }

func (f *fakeBackend) bindBlock(p uint32, block string, binding uint32) bool {
	if !strings.Contains(f.programs[p], "uniform "+block) {
		return false
	}
	if f.bindings[p] == nil {
		f.bindings[p] = map[string]uint32{}
	}
	f.bindings[p][block] = binding
	return true
}

func (f *fakeBackend) reflectBlock(_ uint32, l ubo.Layout) ubo.Reflection {
	r := ubo.Reflection{Size: l.Size, Offsets: map[string]int{}}
	for _, fl := range l.Fields {
		r.Offsets[fl.Name] = fl.Offset + f.skew[l.Name]
	}
	return r
}

func (f *fakeBackend) setSampler(p uint32, name string, unit int32) {
	if f.samplers[p] == nil {
		f.samplers[p] = map[string]int32{}
	}
	f.samplers[p][name] = unit
}

func TestEveryProgramHasSources(t *testing.T) {
	for id := ProgramID(0); id < NumPrograms; id++ {
		src := programs[id]
		assert.NotEmpty(t, src.name, "program %d", id)
		assert.NotEmpty(t, src.vertex, id.String())
		assert.NotEmpty(t, src.fragment, id.String())
		assert.True(t, strings.HasPrefix(src.vertex, "#version 410 core"), id.String())
	}
	assert.Equal(t, "unknown", NumPrograms.String())
}

func TestBuildLinksAllPrograms(t *testing.T) {
	be := newFakeBackend()
	lib, err := build(be)
	require.NoError(t, err)

	seen := map[uint32]bool{}
	for id := ProgramID(0); id < NumPrograms; id++ {
		p := lib.Program(id)
		require.NotZero(t, p, id.String())
		assert.False(t, seen[p])
		seen[p] = true
	}
	assert.Zero(t, lib.Program(NumPrograms))

	// Shader objects are deleted once linked.
	for s := range be.sources {
		assert.True(t, be.deleted[s])
	}
}

func TestBuildBindsBlocks(t *testing.T) {
	be := newFakeBackend()
	lib, err := build(be)
	require.NoError(t, err)

	sv := be.bindings[lib.Program(InstancedShadowVolume)]
	assert.Equal(t, uint32(0), sv["TransformBlock"])
	assert.Equal(t, uint32(1), sv["InstanceBuffer"])

	def := be.bindings[lib.Program(Default)]
	assert.Contains(t, def, "TransformBlock")
	assert.NotContains(t, def, "InstanceBuffer")

	assert.Empty(t, be.bindings[lib.Program(Tonemapping)])
}

func TestBuildSetsSamplerUnits(t *testing.T) {
	be := newFakeBackend()
	lib, err := build(be)
	require.NoError(t, err)

	inst := be.samplers[lib.Program(Instancing)]
	assert.Equal(t, int32(UnitDiffuse), inst["Diffuse"])
	assert.Equal(t, int32(UnitOcclusion), inst["Occlusion"])

	spot := be.samplers[lib.Program(InstancingSpotLights)]
	assert.Equal(t, int32(UnitShadowMap), spot["ShadowMap"])

	assert.Equal(t, int32(UnitHDR), be.samplers[lib.Program(Tonemapping)]["HDR"])
}

func TestBuildRejectsLayoutMismatch(t *testing.T) {
	be := newFakeBackend()
	be.skew[ubo.InstanceLayout.Name] = 16

	lib, err := build(be)
	require.Error(t, err)
	assert.Nil(t, lib)

	var mismatch *ubo.MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "InstanceBuffer", mismatch.Block)

	// Every instanced program is reported.
	assert.Len(t, multierr.Errors(err), 4)

	// Nothing stays linked.
	for p := range be.programs {
		assert.True(t, be.deleted[p])
	}
}

func TestBuildAggregatesCompileErrors(t *testing.T) {
	be := newFakeBackend()
	be.failCompile = "sampler2DMS"

	_, err := build(be)
	require.Error(t, err)
	errs := multierr.Errors(err)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "program Tonemapping")
}
