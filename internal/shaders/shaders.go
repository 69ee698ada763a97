package shaders

import (
	_ "embed"
)

//go:embed mesh.wgsl
var MeshWGSL string

//go:embed wireframe.wgsl
var WireframeWGSL string

//go:embed ui.wgsl
var UIWGSL string
