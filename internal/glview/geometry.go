package glview

import (
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Geometry is an uploaded vertex array with positions at attribute 0.
type Geometry struct {
	vao, vbo, ebo uint32
	mode          uint32
	count         int32
	indexed       bool
}

func newGeometry(mode uint32, positions []float32, indices []uint32) *Geometry {
	g := &Geometry{mode: mode}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, gl.Ptr(positions), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	if len(indices) > 0 {
		gl.GenBuffers(1, &g.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
		g.indexed = true
		g.count = int32(len(indices))
	} else {
		g.count = int32(len(positions) / 3)
	}

	gl.BindVertexArray(0)
	return g
}

// NewRectangle returns the canonical unit rectangle centered at the origin
// in the z = 0 plane. Plane model matrices carry it into place.
func NewRectangle() *Geometry {
	positions := []float32{
		-0.5, -0.5, 0,
		0.5, -0.5, 0,
		0.5, 0.5, 0,
		-0.5, 0.5, 0,
	}
	indices := []uint32{0, 1, 2, 2, 3, 0}
	return newGeometry(gl.TRIANGLES, positions, indices)
}

// NewSphere returns a unit sphere tessellated into stacks and slices.
func NewSphere(stacks, slices int) *Geometry {
	positions := make([]float32, 0, (stacks+1)*(slices+1)*3)
	for i := 0; i <= stacks; i++ {
		phi := math.Pi * float64(i) / float64(stacks)
		for j := 0; j <= slices; j++ {
			theta := 2 * math.Pi * float64(j) / float64(slices)
			positions = append(positions,
				float32(math.Sin(phi)*math.Cos(theta)),
				float32(math.Cos(phi)),
				float32(math.Sin(phi)*math.Sin(theta)),
			)
		}
	}

	indices := make([]uint32, 0, stacks*slices*6)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			a := uint32(i*(slices+1) + j)
			b := a + uint32(slices+1)
			indices = append(indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return newGeometry(gl.TRIANGLES, positions, indices)
}

// NewDividers returns the two lines splitting the framebuffer into
// quadrants, in normalized device coordinates.
func NewDividers() *Geometry {
	positions := []float32{
		-1, 0, 0,
		1, 0, 0,
		0, -1, 0,
		0, 1, 0,
	}
	return newGeometry(gl.LINES, positions, nil)
}

// Draw issues the draw call with whatever material is bound.
func (g *Geometry) Draw() {
	gl.BindVertexArray(g.vao)
	if g.indexed {
		gl.DrawElements(g.mode, g.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(g.mode, 0, g.count)
	}
	gl.BindVertexArray(0)
}

// Close releases the buffers.
func (g *Geometry) Close() {
	if g.indexed {
		gl.DeleteBuffers(1, &g.ebo)
	}
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteVertexArrays(1, &g.vao)
}
