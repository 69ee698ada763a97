package core

// LightUniform matches the WGSL Light struct; each vec3 is padded to 16 bytes.
type LightUniform struct {
	Position [3]float32
	_        uint32
	Color    [3]float32
	_        uint32
}

func NewLightUniform(position, color [3]float32) LightUniform {
	return LightUniform{Position: position, Color: color}
}
