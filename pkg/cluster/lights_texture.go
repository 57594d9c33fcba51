package cluster

// LightTextureHeight is the number of texel rows per light in the light
// texture: position+radius, then color.
const LightTextureHeight = 2

// PackLights lays lights out as a len(lights)×2 texture of 4-channel
// texels using the same column-per-record layout as Buffer. Row 0 holds
// position.xyz and radius, row 1 holds color.rgb and a zero pad.
func PackLights(lights []Light) []float32 {
	width := len(lights)
	data := make([]float32, TexelChannels*width*LightTextureHeight)
	for i, l := range lights {
		p := TexelChannels * i
		data[p+0] = float32(l.Position.X)
		data[p+1] = float32(l.Position.Y)
		data[p+2] = float32(l.Position.Z)
		data[p+3] = float32(l.Radius)

		c := TexelChannels*i + TexelChannels*width
		data[c+0] = float32(l.Color.X)
		data[c+1] = float32(l.Color.Y)
		data[c+2] = float32(l.Color.Z)
	}
	return data
}
