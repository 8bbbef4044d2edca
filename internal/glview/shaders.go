package glview

// slicer renders one cross-section of the 3D volume texture. The texture
// coordinate comes from the model-space position so any plane orientation
// samples the right voxels; the cut axis is pinned to the slice position.
const slicerVertex = `
#version 410 core

layout(location = 0) in vec3 position;

uniform mat4 MVP;
uniform mat4 Model;
uniform vec3 volumeSize;

out vec3 texCoord;

void main() {
    vec3 world = (Model * vec4(position, 1.0)).xyz;
    texCoord = world / volumeSize + 0.5;
    gl_Position = MVP * vec4(position, 1.0);
}
` + "\x00"

const slicerFragment = `
#version 410 core

in vec3 texCoord;

uniform sampler3D volumeTexture;
uniform int axis;
uniform float slider;
uniform int channels;

out vec4 fragColor;

void main() {
    vec3 t = texCoord;
    t[axis] = slider;
    vec4 s = texture(volumeTexture, t);
    fragColor = channels == 1 ? vec4(s.rrr, 1.0) : vec4(s.rgb, 1.0);
}
` + "\x00"

const dotVertex = `
#version 410 core

layout(location = 0) in vec3 position;

uniform mat4 Trans;

void main() {
    gl_Position = Trans * vec4(position, 1.0);
}
` + "\x00"

const dotFragment = `
#version 410 core

uniform vec3 color;

out vec4 fragColor;

void main() {
    fragColor = vec4(color, 1.0);
}
` + "\x00"

// lines are specified directly in normalized device coordinates
const lineVertex = `
#version 410 core

layout(location = 0) in vec3 position;

void main() {
    gl_Position = vec4(position, 1.0);
}
` + "\x00"
