// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MeshVertexShader is the vertex shader for exhibits and the ground.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader lights meshes with ambient light and spot lights.
//
//go:embed mesh.frag
var MeshFragmentShader string

// LabelVertexShader is the vertex shader for text labels.
//
//go:embed label.vert
var LabelVertexShader string

// LabelFragmentShader is the fragment shader for text labels.
//
//go:embed label.frag
var LabelFragmentShader string
