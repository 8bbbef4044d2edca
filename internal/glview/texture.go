package glview

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"orthoslice/pkg/volume"
)

// Texture3D holds a volume on the GPU.
type Texture3D struct {
	id       uint32
	channels int
}

// NewTexture3D uploads vol as an 8-bit 3D texture with nearest filtering,
// matching the voxel readout on the CPU side.
func NewTexture3D(vol *volume.Volume) (*Texture3D, error) {
	var internal int32
	var format uint32
	switch vol.Channels {
	case 1:
		internal, format = gl.R8, gl.RED
	case 3:
		internal, format = gl.RGB8, gl.RGB
	default:
		return nil, fmt.Errorf("unsupported channel count %d", vol.Channels)
	}

	t := &Texture3D{channels: vol.Channels}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_3D, t.id)

	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	// rows of odd-width scalar volumes are not 4-byte aligned
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage3D(gl.TEXTURE_3D, 0, internal,
		int32(vol.Width), int32(vol.Height), int32(vol.Depth), 0,
		format, gl.UNSIGNED_BYTE, gl.Ptr(vol.Data))

	gl.BindTexture(gl.TEXTURE_3D, 0)
	return t, nil
}

// Channels returns 1 for scalar and 3 for RGB textures.
func (t *Texture3D) Channels() int { return t.channels }

// Bind attaches the texture to the given texture unit.
func (t *Texture3D) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_3D, t.id)
}

// Unbind detaches any 3D texture from the given unit.
func (t *Texture3D) Unbind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_3D, 0)
}

// Close deletes the texture.
func (t *Texture3D) Close() {
	gl.DeleteTextures(1, &t.id)
}
