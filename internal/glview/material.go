package glview

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"orthoslice/internal/models"
)

// Material is a linked shader program with a uniform location cache.
type Material struct {
	program  uint32
	uniforms map[string]int32
}

// NewMaterial compiles and links a program from NUL-terminated sources.
func NewMaterial(vertexSource, fragmentSource string) (*Material, error) {
	vs, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("%w: link program: %s", models.ErrGraphicsInit, strings.TrimRight(log, "\x00"))
	}

	return &Material{
		program:  program,
		uniforms: make(map[string]int32),
	}, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: compile shader: %s", models.ErrGraphicsInit, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

// Bind makes the material current.
func (m *Material) Bind() { gl.UseProgram(m.program) }

// Unbind clears the current program.
func (m *Material) Unbind() { gl.UseProgram(0) }

func (m *Material) location(name string) int32 {
	if loc, ok := m.uniforms[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(m.program, gl.Str(name+"\x00"))
	m.uniforms[name] = loc
	return loc
}

// SetUniformMat4 sets a 4x4 matrix uniform on the bound material.
func (m *Material) SetUniformMat4(name string, v mgl32.Mat4) {
	gl.UniformMatrix4fv(m.location(name), 1, false, &v[0])
}

// SetUniform1i sets an int or sampler uniform on the bound material.
func (m *Material) SetUniform1i(name string, v int32) {
	gl.Uniform1i(m.location(name), v)
}

// SetUniform1f sets a float uniform on the bound material.
func (m *Material) SetUniform1f(name string, v float32) {
	gl.Uniform1f(m.location(name), v)
}

// SetUniform3f sets a vec3 uniform on the bound material.
func (m *Material) SetUniform3f(name string, v mgl32.Vec3) {
	gl.Uniform3f(m.location(name), v[0], v[1], v[2])
}

// Close deletes the program.
func (m *Material) Close() {
	gl.DeleteProgram(m.program)
}
