package shader

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/umbra/internal/engine/ubo"
	"github.com/Faultbox/umbra/internal/logger"
)

// Shader stages.
const (
	stageVertex   = "vertex"
	stageGeometry = "geometry"
	stageFragment = "fragment"
)

// backend is the slice of the GL program API the library drives.
type backend interface {
	compile(stage, source string) (uint32, error)
	link(shaders ...uint32) (uint32, error)
	deleteShader(shader uint32)
	deleteProgram(program uint32)
	// bindBlock attaches the named block to a binding point and reports
	// whether the program declares it.
	bindBlock(program uint32, block string, binding uint32) bool
	reflectBlock(program uint32, layout ubo.Layout) ubo.Reflection
	setSampler(program uint32, name string, unit int32)
}

// Library holds every linked program.
type Library struct {
	be       backend
	programs [NumPrograms]uint32
}

// NewLibrary compiles and links all programs on the current GL context.
func NewLibrary() (*Library, error) {
	return build(glBackend{})
}

func build(be backend) (*Library, error) {
	for _, l := range []ubo.Layout{ubo.TransformLayout, ubo.InstanceLayout} {
		if err := l.Validate(); err != nil {
			return nil, err
		}
	}

	lib := &Library{be: be}
	var errs error
	for id := ProgramID(0); id < NumPrograms; id++ {
		p, err := buildProgram(be, programs[id])
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("program %s: %w", id, err))
			continue
		}
		lib.programs[id] = p
	}
	if errs != nil {
		lib.Release()
		return nil, errs
	}

	logger.Named("shader").Info("shader programs linked", zap.Int("count", int(NumPrograms)))
	return lib, nil
}

func buildProgram(be backend, src programSource) (uint32, error) {
	stages := []struct{ stage, source string }{
		{stageVertex, src.vertex},
		{stageGeometry, src.geometry},
		{stageFragment, src.fragment},
	}

	var shaders []uint32
	defer func() {
		for _, s := range shaders {
			be.deleteShader(s)
		}
	}()
	for _, st := range stages {
		if st.source == "" {
			continue
		}
		s, err := be.compile(st.stage, st.source)
		if err != nil {
			return 0, err
		}
		shaders = append(shaders, s)
	}

	program, err := be.link(shaders...)
	if err != nil {
		return 0, err
	}

	var errs error
	for _, layout := range src.blocks {
		if !be.bindBlock(program, layout.Name, layout.Binding) {
			errs = multierr.Append(errs, fmt.Errorf("uniform block %s not declared", layout.Name))
			continue
		}
		errs = multierr.Append(errs, layout.Check(src.name, be.reflectBlock(program, layout)))
	}
	if errs != nil {
		be.deleteProgram(program)
		return 0, errs
	}

	for name, unit := range src.samplers {
		be.setSampler(program, name, unit)
	}
	return program, nil
}

// Program returns the GL name of a linked program.
func (l *Library) Program(id ProgramID) uint32 {
	if id < 0 || id >= NumPrograms {
		return 0
	}
	return l.programs[id]
}

// Release deletes every program.
func (l *Library) Release() {
	for i, p := range l.programs {
		if p != 0 {
			l.be.deleteProgram(p)
			l.programs[i] = 0
		}
	}
}
