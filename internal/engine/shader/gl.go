package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/umbra/internal/engine/ubo"
)

var stageTypes = map[string]uint32{
	stageVertex:   gl.VERTEX_SHADER,
	stageGeometry: gl.GEOMETRY_SHADER,
	stageFragment: gl.FRAGMENT_SHADER,
}

// glBackend drives the current OpenGL context.
type glBackend struct{}

func (glBackend) compile(stage, source string) (uint32, error) {
	shader := gl.CreateShader(stageTypes[stage])
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", stage, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func (glBackend) link(shaders ...uint32) (uint32, error) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)
	for _, s := range shaders {
		gl.DetachShader(program, s)
	}

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", strings.TrimRight(log, "\x00"))
	}
	return program, nil
}

func (glBackend) deleteShader(shader uint32)   { gl.DeleteShader(shader) }
func (glBackend) deleteProgram(program uint32) { gl.DeleteProgram(program) }

func (glBackend) bindBlock(program uint32, block string, binding uint32) bool {
	index := gl.GetUniformBlockIndex(program, gl.Str(block+"\x00"))
	if index == gl.INVALID_INDEX {
		return false
	}
	gl.UniformBlockBinding(program, index, binding)
	return true
}

// reflectBlock asks the linker for the block size and the offsets of the
// members the layout names.
func (glBackend) reflectBlock(program uint32, layout ubo.Layout) ubo.Reflection {
	r := ubo.Reflection{Offsets: map[string]int{}}

	index := gl.GetUniformBlockIndex(program, gl.Str(layout.Name+"\x00"))
	var size int32
	gl.GetActiveUniformBlockiv(program, index, gl.UNIFORM_BLOCK_DATA_SIZE, &size)
	r.Size = int(size)

	for _, f := range layout.Fields {
		name, free := gl.Strs(f.Name + "\x00")
		var idx uint32
		gl.GetUniformIndices(program, 1, name, &idx)
		free()
		if idx == gl.INVALID_INDEX {
			continue
		}
		var offset int32
		gl.GetActiveUniformsiv(program, 1, &idx, gl.UNIFORM_OFFSET, &offset)
		r.Offsets[f.Name] = int(offset)
	}
	return r
}

func (glBackend) setSampler(program uint32, name string, unit int32) {
	loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	if loc < 0 {
		return
	}
	gl.ProgramUniform1i(program, loc, unit)
}
