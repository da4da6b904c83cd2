// SPDX-License-Identifier: GPL-2.0-or-later

package refgl

import (
	"github.com/chewxy/math32"

	"goq2/conlog"
	"goq2/cvars"
	"goq2/texture"
)

const maxTextureSize = 1024

// PixelLoader fetches the RGBA pixels for a named image, usually from the
// game's pack files. ok is false when the image does not exist.
type PixelLoader func(name string, typ texture.Type) (rgba []byte, w, h int, ok bool)

// ImageRegistry owns every uploaded texture. Lookups are idempotent: a
// second FindOrLoad of the same name bumps the registration sequence and
// returns the existing upload.
type ImageRegistry struct {
	ctx      *Context
	textures map[string]*texture.Texture
	sequence int
	loader   PixelLoader

	noTexture *texture.Texture
	particles [particleTypeCount]*texture.Texture

	gammaTable     [256]uint8
	intensityTable [256]uint8

	minFilter TexFilter
	magFilter TexFilter
}

func NewImageRegistry(ctx *Context) *ImageRegistry {
	ir := &ImageRegistry{
		ctx:       ctx,
		textures:  make(map[string]*texture.Texture),
		sequence:  1,
		minFilter: FilterLinearMipNearest,
		magFilter: FilterLinear,
	}
	ir.buildGammaTables()
	ir.noTexture = ir.uploadBuiltin("***notexture***", checkerPixels(), 8, 8, texture.TypeWall)
	ir.buildParticleTextures()
	return ir
}

// SetLoader installs the pack file loader; before this only the built-in
// textures resolve.
func (ir *ImageRegistry) SetLoader(l PixelLoader) { ir.loader = l }

func (ir *ImageRegistry) NoTexture() *texture.Texture { return ir.noTexture }

// buildGammaTables bakes vid_gamma and intensity into lookup tables
// applied at upload time, the only option without fragment shaders.
func (ir *ImageRegistry) buildGammaTables() {
	g := cvars.VideoGamma.Value()
	if g <= 0 {
		g = 1
	}
	for i := 0; i < 256; i++ {
		if g == 1 {
			ir.gammaTable[i] = uint8(i)
		} else {
			v := 255 * math32.Pow((float32(i)+0.5)/255.5, g)
			if v > 255 {
				v = 255
			}
			ir.gammaTable[i] = uint8(v)
		}
	}

	intensity := cvars.Intensity.Value()
	if intensity < 1 {
		intensity = 1
		cvars.Intensity.SetValue(1)
	}
	for i := 0; i < 256; i++ {
		v := float32(i) * intensity
		if v > 255 {
			v = 255
		}
		ir.intensityTable[i] = uint8(v)
	}
}

// checkerPixels is the fallback image for missing textures.
func checkerPixels() []byte {
	px := make([]byte, 8*8*4)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			o := (y*8 + x) * 4
			var c byte
			if (x+y)&1 == 0 {
				c = 0
			} else {
				c = 0x7f
			}
			px[o] = c
			px[o+1] = c
			px[o+2] = c
			px[o+3] = 0xff
		}
	}
	return px
}

// particleBlob builds a soft round 16x16 dot tinted for the given type.
func particleBlob(t ParticleType) []byte {
	tint := [particleTypeCount][3]float32{
		ParticleDefault: {1, 1, 1},
		ParticleFire:    {1, 0.7, 0.3},
		ParticleSmoke:   {0.5, 0.5, 0.5},
		ParticleBubble:  {0.7, 0.8, 1},
		ParticleBlood:   {1, 0.2, 0.2},
	}[t]

	const n = 16
	px := make([]byte, n*n*4)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			dx := float32(x) - n/2 + 0.5
			dy := float32(y) - n/2 + 0.5
			d := math32.Sqrt(dx*dx+dy*dy) / (n / 2)
			a := 1 - d
			if a < 0 {
				a = 0
			}
			o := (y*n + x) * 4
			px[o] = uint8(255 * tint[0])
			px[o+1] = uint8(255 * tint[1])
			px[o+2] = uint8(255 * tint[2])
			px[o+3] = uint8(255 * a * a)
		}
	}
	return px
}

var particleNames = [particleTypeCount]string{
	ParticleDefault: "particles/basic",
	ParticleFire:    "particles/fire",
	ParticleSmoke:   "particles/smoke",
	ParticleBubble:  "particles/bubble",
	ParticleBlood:   "particles/blood",
}

func (ir *ImageRegistry) buildParticleTextures() {
	for t := ParticleDefault; t < particleTypeCount; t++ {
		ir.particles[t] = ir.uploadBuiltin(particleNames[t], particleBlob(t), 16, 16, texture.TypeParticle)
	}
}

func (ir *ImageRegistry) uploadBuiltin(name string, rgba []byte, w, h int, typ texture.Type) *texture.Texture {
	tx := ir.upload(name, rgba, w, h, typ)
	ir.textures[name] = tx
	return tx
}

// ParticleTexture returns the texture id for a particle batch.
func (ir *ImageRegistry) ParticleTexture(t ParticleType) uint32 {
	if t < 0 || t >= particleTypeCount {
		t = ParticleDefault
	}
	return ir.particles[t].ID
}

// WallTexture resolves a world surface texture, falling back to the
// checkerboard for anything the loader can not find.
func (ir *ImageRegistry) WallTexture(name string) uint32 {
	if name == "" {
		return ir.noTexture.ID
	}
	if tx := ir.find(name, texture.TypeWall); tx != nil {
		return tx.ID
	}
	return ir.noTexture.ID
}

// FindOrLoad returns the named texture, loading and uploading it on first
// use. Returns the checkerboard stand-in when the image is missing.
func (ir *ImageRegistry) FindOrLoad(name string, typ texture.Type) *texture.Texture {
	if tx := ir.find(name, typ); tx != nil {
		return tx
	}
	return ir.noTexture
}

func (ir *ImageRegistry) find(name string, typ texture.Type) *texture.Texture {
	if tx, ok := ir.textures[name]; ok {
		tx.Sequence = ir.sequence
		return tx
	}
	if ir.loader == nil {
		return nil
	}
	rgba, w, h, ok := ir.loader(name, typ)
	if !ok {
		conlog.DPrintf("image %s not found\n", name)
		return nil
	}
	tx := ir.upload(name, rgba, w, h, typ)
	ir.textures[name] = tx
	return tx
}

func mipmapped(typ texture.Type) bool {
	switch typ {
	case texture.TypeWall, texture.TypeSkin, texture.TypeSky:
		return true
	}
	return false
}

// upload scales the image to a power of two, bakes the gamma/intensity
// tables in and pushes the mip chain to the backend.
func (ir *ImageRegistry) upload(name string, rgba []byte, w, h int, typ texture.Type) *texture.Texture {
	mip := mipmapped(typ)

	sw := scaledSize(w, mip)
	sh := scaledSize(h, mip)
	if sw != w || sh != h {
		rgba = resample(rgba, w, h, sw, sh)
	}
	rgba = append([]byte(nil), rgba...)
	ir.lightScale(rgba, !mip)

	hasAlpha := false
	for i := 3; i < len(rgba); i += 4 {
		if rgba[i] != 255 {
			hasAlpha = true
			break
		}
	}

	b := ir.ctx.Backend()
	id := b.GenTexture()
	ir.ctx.Bind(id)
	b.TexImage2D(0, int32(sw), int32(sh), rgba)

	if mip {
		level := int32(0)
		mw, mh := sw, sh
		data := rgba
		for mw > 1 || mh > 1 {
			data, mw, mh = mipReduce(data, mw, mh)
			level++
			b.TexImage2D(level, int32(mw), int32(mh), data)
		}
		b.TexFilters(ir.minFilter, ir.magFilter)
		b.TexAnisotropy(cvars.GlTextureAnisotropy.Value())
	} else {
		b.TexFilters(FilterLinear, FilterLinear)
	}

	flags := texture.TexPrefNone
	if mip {
		flags |= texture.TexPrefMipMap
	}
	if hasAlpha {
		flags |= texture.TexPrefAlpha
	}
	tx := texture.NewTexture(id, int32(sw), int32(sh), flags, name, typ)
	tx.HasAlpha = hasAlpha
	tx.Sequence = ir.sequence
	return tx
}

// scaledSize picks the upload size: power of two, optionally rounded down
// and shifted by gl_picmip for world data.
func scaledSize(v int, mip bool) int {
	s := 1
	for s < v {
		s <<= 1
	}
	if cvars.GlRoundDown.Bool() && s > v && mip {
		s >>= 1
	}
	if mip {
		s >>= int(cvars.GlPicMip.Value())
	}
	if s < 1 {
		s = 1
	}
	if s > maxTextureSize {
		s = maxTextureSize
	}
	return s
}

func resample(in []byte, w, h, nw, nh int) []byte {
	out := make([]byte, nw*nh*4)
	for y := 0; y < nh; y++ {
		sy := y * h / nh
		for x := 0; x < nw; x++ {
			sx := x * w / nw
			si := (sy*w + sx) * 4
			di := (y*nw + x) * 4
			copy(out[di:di+4], in[si:si+4])
		}
	}
	return out
}

// mipReduce box-filters the image down one mip level.
func mipReduce(in []byte, w, h int) ([]byte, int, int) {
	nw := w / 2
	if nw < 1 {
		nw = 1
	}
	nh := h / 2
	if nh < 1 {
		nh = 1
	}
	out := make([]byte, nw*nh*4)
	for y := 0; y < nh; y++ {
		for x := 0; x < nw; x++ {
			x0 := x * 2
			y0 := y * 2
			x1 := x0 + 1
			if x1 >= w {
				x1 = x0
			}
			y1 := y0 + 1
			if y1 >= h {
				y1 = y0
			}
			for c := 0; c < 4; c++ {
				s := int(in[(y0*w+x0)*4+c]) + int(in[(y0*w+x1)*4+c]) +
					int(in[(y1*w+x0)*4+c]) + int(in[(y1*w+x1)*4+c])
				out[(y*nw+x)*4+c] = uint8(s >> 2)
			}
		}
	}
	return out, nw, nh
}

// lightScale runs the pixels through the gamma table, and the intensity
// table too for world data. Alpha is untouched.
func (ir *ImageRegistry) lightScale(rgba []byte, gammaOnly bool) {
	for i := 0; i+3 < len(rgba); i += 4 {
		if gammaOnly {
			rgba[i] = ir.gammaTable[rgba[i]]
			rgba[i+1] = ir.gammaTable[rgba[i+1]]
			rgba[i+2] = ir.gammaTable[rgba[i+2]]
		} else {
			rgba[i] = ir.gammaTable[ir.intensityTable[rgba[i]]]
			rgba[i+1] = ir.gammaTable[ir.intensityTable[rgba[i+1]]]
			rgba[i+2] = ir.gammaTable[ir.intensityTable[rgba[i+2]]]
		}
	}
}

var textureModes = map[string][2]TexFilter{
	"GL_NEAREST":                {FilterNearest, FilterNearest},
	"GL_LINEAR":                 {FilterLinear, FilterLinear},
	"GL_NEAREST_MIPMAP_NEAREST": {FilterNearestMipNearest, FilterNearest},
	"GL_LINEAR_MIPMAP_NEAREST":  {FilterLinearMipNearest, FilterLinear},
	"GL_NEAREST_MIPMAP_LINEAR":  {FilterNearestMipLinear, FilterNearest},
	"GL_LINEAR_MIPMAP_LINEAR":   {FilterLinearMipLinear, FilterLinear},
}

// ApplyTextureMode re-filters every mipmapped texture after a
// gl_texturemode change.
func (ir *ImageRegistry) ApplyTextureMode(mode string) {
	f, ok := textureModes[mode]
	if !ok {
		conlog.Printf("bad filter name: %s\n", mode)
		return
	}
	ir.minFilter = f[0]
	ir.magFilter = f[1]

	b := ir.ctx.Backend()
	for _, tx := range ir.textures {
		if !tx.Flags(texture.TexPrefMipMap) {
			continue
		}
		ir.ctx.Bind(tx.ID)
		b.TexFilters(ir.minFilter, ir.magFilter)
	}
}

// BeginRegistration opens a new registration sequence; textures untouched
// until EndRegistration become eviction candidates.
func (ir *ImageRegistry) BeginRegistration() {
	ir.sequence++
}

// EndRegistration frees every evictable texture that was not looked up
// during the current sequence.
func (ir *ImageRegistry) EndRegistration() {
	b := ir.ctx.Backend()
	for name, tx := range ir.textures {
		if tx.Sequence == ir.sequence || !tx.Evictable() {
			continue
		}
		b.DeleteTexture(tx.ID)
		delete(ir.textures, name)
	}
	ir.ctx.ForgetTexture()
}
