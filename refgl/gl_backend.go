// SPDX-License-Identifier: GPL-2.0-or-later

package refgl

import (
	"unsafe"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/pkg/errors"

	"goq2/glh"
)

// glTextureMaxAnisotropyExt is not in the 2.1 headers.
const glTextureMaxAnisotropyExt = 0x84FE

// GLBackend issues every Backend call straight to the compatibility
// profile. It must only be used from the thread owning the GL context.
type GLBackend struct{}

// NewGLBackend loads the GL function pointers; the context must be current.
func NewGLBackend() (*GLBackend, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "initializing GL")
	}
	return &GLBackend{}, nil
}

func (*GLBackend) Viewport(x, y, w, h int32) {
	gl.Viewport(x, y, w, h)
}

func (*GLBackend) Scissor(x, y, w, h int32) {
	gl.Scissor(x, y, w, h)
}

func (*GLBackend) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (*GLBackend) Clear(color, depth bool) {
	var bits uint32
	if color {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if depth {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if bits != 0 {
		gl.Clear(bits)
	}
}

func glCap(c Cap) uint32 {
	switch c {
	case CapDepthTest:
		return gl.DEPTH_TEST
	case CapCullFace:
		return gl.CULL_FACE
	case CapBlend:
		return gl.BLEND
	case CapAlphaTest:
		return gl.ALPHA_TEST
	case CapScissorTest:
		return gl.SCISSOR_TEST
	case CapTexture2D:
		return gl.TEXTURE_2D
	case CapClipPlane0:
		return gl.CLIP_PLANE0
	}
	return 0
}

func (*GLBackend) Enable(c Cap) {
	gl.Enable(glCap(c))
}

func (*GLBackend) Disable(c Cap) {
	gl.Disable(glCap(c))
}

func (*GLBackend) DepthMask(on bool) {
	gl.DepthMask(on)
}

func (*GLBackend) DepthFunc(f DepthFunc) {
	switch f {
	case DepthLEqual:
		gl.DepthFunc(gl.LEQUAL)
	case DepthGEqual:
		gl.DepthFunc(gl.GEQUAL)
	}
}

func (*GLBackend) DepthRange(near, far float64) {
	gl.DepthRange(near, far)
}

func (*GLBackend) CullFace(m CullMode) {
	switch m {
	case CullBack:
		gl.CullFace(gl.BACK)
	case CullFront:
		gl.CullFace(gl.FRONT)
	}
}

func glBlend(f BlendFactor) uint32 {
	switch f {
	case BlendSrcAlpha:
		return gl.SRC_ALPHA
	case BlendOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case BlendOne:
		return gl.ONE
	}
	return gl.ZERO
}

func (*GLBackend) BlendFunc(src, dst BlendFactor) {
	gl.BlendFunc(glBlend(src), glBlend(dst))
}

func (*GLBackend) TexEnv(m TexEnvMode) {
	switch m {
	case TexEnvModulate:
		gl.TexEnvi(gl.TEXTURE_ENV, gl.TEXTURE_ENV_MODE, gl.MODULATE)
	case TexEnvReplace:
		gl.TexEnvi(gl.TEXTURE_ENV, gl.TEXTURE_ENV_MODE, gl.REPLACE)
	}
}

func (*GLBackend) ClipPlane(eqn [4]float64) {
	gl.ClipPlane(gl.CLIP_PLANE0, &eqn[0])
}

func (*GLBackend) MatrixMode(m MatrixMode) {
	switch m {
	case MatrixProjection:
		gl.MatrixMode(gl.PROJECTION)
	case MatrixModelView:
		gl.MatrixMode(gl.MODELVIEW)
	case MatrixTexture:
		gl.MatrixMode(gl.TEXTURE)
	}
}

func (*GLBackend) LoadIdentity() {
	gl.LoadIdentity()
}

func (*GLBackend) LoadMatrix(m *glh.Matrix) {
	cm := m.ColumnMajor()
	gl.LoadMatrixf(&cm[0])
}

func (*GLBackend) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (*GLBackend) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}

func (*GLBackend) BindTexture(id uint32) {
	gl.BindTexture(gl.TEXTURE_2D, id)
}

func (*GLBackend) TexImage2D(level, w, h int32, rgba []byte) {
	var ptr unsafe.Pointer
	if len(rgba) > 0 {
		ptr = gl.Ptr(rgba)
	}
	gl.TexImage2D(gl.TEXTURE_2D, level, gl.RGBA, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
}

func (*GLBackend) CopyTexSubImage2D(xoffset, yoffset, x, y, w, h int32) {
	gl.CopyTexSubImage2D(gl.TEXTURE_2D, 0, xoffset, yoffset, x, y, w, h)
}

func glFilter(f TexFilter) int32 {
	switch f {
	case FilterNearest:
		return gl.NEAREST
	case FilterLinear:
		return gl.LINEAR
	case FilterNearestMipNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	case FilterLinearMipNearest:
		return gl.LINEAR_MIPMAP_NEAREST
	case FilterNearestMipLinear:
		return gl.NEAREST_MIPMAP_LINEAR
	case FilterLinearMipLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	}
	return gl.LINEAR
}

func (*GLBackend) TexFilters(min, mag TexFilter) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(min))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(mag))
}

func (*GLBackend) TexAnisotropy(level float32) {
	gl.TexParameterf(gl.TEXTURE_2D, glTextureMaxAnisotropyExt, level)
}

func glPrim(p Primitive) uint32 {
	switch p {
	case PrimTriangles:
		return gl.TRIANGLES
	case PrimTriangleStrip:
		return gl.TRIANGLE_STRIP
	case PrimTriangleFan:
		return gl.TRIANGLE_FAN
	case PrimQuads:
		return gl.QUADS
	case PrimPolygon:
		return gl.POLYGON
	case PrimPoints:
		return gl.POINTS
	}
	return gl.TRIANGLES
}

func (*GLBackend) Begin(p Primitive) {
	gl.Begin(glPrim(p))
}

func (*GLBackend) End() {
	gl.End()
}

func (*GLBackend) Vertex3f(x, y, z float32) {
	gl.Vertex3f(x, y, z)
}

func (*GLBackend) TexCoord2f(s, t float32) {
	gl.TexCoord2f(s, t)
}

func (*GLBackend) TexCoord3f(s, t, r float32) {
	gl.TexCoord3f(s, t, r)
}

func (*GLBackend) Color4f(r, g, b, a float32) {
	gl.Color4f(r, g, b, a)
}

func (*GLBackend) Finish() {
	gl.Finish()
}
