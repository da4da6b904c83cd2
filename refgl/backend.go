// SPDX-License-Identifier: GPL-2.0-or-later

package refgl

import (
	"goq2/glh"
)

// Cap is a rasterizer capability toggle.
type Cap int

const (
	CapDepthTest Cap = iota
	CapCullFace
	CapBlend
	CapAlphaTest
	CapScissorTest
	CapTexture2D
	CapClipPlane0
	capCount
)

type MatrixMode int

const (
	MatrixProjection MatrixMode = iota
	MatrixModelView
	MatrixTexture
)

type DepthFunc int

const (
	DepthLEqual DepthFunc = iota
	DepthGEqual
)

type BlendFactor int

const (
	BlendSrcAlpha BlendFactor = iota
	BlendOneMinusSrcAlpha
	BlendOne
	BlendZero
)

type TexEnvMode int

const (
	TexEnvModulate TexEnvMode = iota
	TexEnvReplace
)

type CullMode int

const (
	CullBack CullMode = iota
	CullFront
)

type Primitive int

const (
	PrimTriangles Primitive = iota
	PrimTriangleStrip
	PrimTriangleFan
	PrimQuads
	PrimPolygon
	PrimPoints
)

type TexFilter int

const (
	FilterNearest TexFilter = iota
	FilterLinear
	FilterNearestMipNearest
	FilterLinearMipNearest
	FilterNearestMipLinear
	FilterLinearMipLinear
)

// Backend is the fixed-function surface the pipeline draws through. The
// production implementation wraps the 2.1 compatibility profile; tests use
// a recording implementation.
type Backend interface {
	Viewport(x, y, w, h int32)
	Scissor(x, y, w, h int32)
	ClearColor(r, g, b, a float32)
	Clear(color, depth bool)

	Enable(c Cap)
	Disable(c Cap)
	DepthMask(on bool)
	DepthFunc(f DepthFunc)
	DepthRange(near, far float64)
	CullFace(m CullMode)
	BlendFunc(src, dst BlendFactor)
	TexEnv(m TexEnvMode)
	ClipPlane(eqn [4]float64)

	MatrixMode(m MatrixMode)
	LoadIdentity()
	LoadMatrix(m *glh.Matrix)

	GenTexture() uint32
	DeleteTexture(id uint32)
	BindTexture(id uint32)
	TexImage2D(level, w, h int32, rgba []byte)
	CopyTexSubImage2D(xoffset, yoffset, x, y, w, h int32)
	TexFilters(min, mag TexFilter)
	TexAnisotropy(level float32)

	Begin(p Primitive)
	End()
	Vertex3f(x, y, z float32)
	TexCoord2f(s, t float32)
	// TexCoord3f feeds a world position through a projective texture matrix.
	TexCoord3f(s, t, r float32)
	Color4f(r, g, b, a float32)

	Finish()
}
