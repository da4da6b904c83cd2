// SPDX-License-Identifier: GPL-2.0-or-later

package refgl

import (
	"fmt"
	"strings"

	"goq2/glh"
)

// recordBackend logs every call as a readable event so tests can assert
// ordering and state bracketing without a GL context.
type recordBackend struct {
	events  []string
	nextTex uint32
	failGen bool
}

func newRecordBackend() *recordBackend {
	return &recordBackend{}
}

func (r *recordBackend) log(format string, a ...interface{}) {
	r.events = append(r.events, fmt.Sprintf(format, a...))
}

// indexAfter finds the first event containing sub at or after from,
// returning -1 when absent.
func (r *recordBackend) indexAfter(from int, sub string) int {
	for i := from; i < len(r.events); i++ {
		if strings.Contains(r.events[i], sub) {
			return i
		}
	}
	return -1
}

func (r *recordBackend) count(sub string) int {
	n := 0
	for _, e := range r.events {
		if strings.Contains(e, sub) {
			n++
		}
	}
	return n
}

func (r *recordBackend) Viewport(x, y, w, h int32) { r.log("viewport %d %d %d %d", x, y, w, h) }
func (r *recordBackend) Scissor(x, y, w, h int32)  { r.log("scissor %d %d %d %d", x, y, w, h) }
func (r *recordBackend) ClearColor(cr, g, b, a float32) {
	r.log("clearcolor %.2f %.2f %.2f %.2f", cr, g, b, a)
}
func (r *recordBackend) Clear(color, depth bool) { r.log("clear color=%v depth=%v", color, depth) }

func capName(c Cap) string {
	switch c {
	case CapDepthTest:
		return "depthtest"
	case CapCullFace:
		return "cullface"
	case CapBlend:
		return "blend"
	case CapAlphaTest:
		return "alphatest"
	case CapScissorTest:
		return "scissortest"
	case CapTexture2D:
		return "texture2d"
	case CapClipPlane0:
		return "clip0"
	}
	return "?"
}

func (r *recordBackend) Enable(c Cap)               { r.log("enable %s", capName(c)) }
func (r *recordBackend) Disable(c Cap)              { r.log("disable %s", capName(c)) }
func (r *recordBackend) DepthMask(on bool)          { r.log("depthmask %v", on) }
func (r *recordBackend) DepthFunc(f DepthFunc)      { r.log("depthfunc %d", f) }
func (r *recordBackend) DepthRange(n, f float64)    { r.log("depthrange %v %v", n, f) }
func (r *recordBackend) CullFace(m CullMode)        { r.log("cullface-mode %d", m) }
func (r *recordBackend) BlendFunc(s, d BlendFactor) { r.log("blendfunc %d %d", s, d) }
func (r *recordBackend) TexEnv(m TexEnvMode)        { r.log("texenv %d", m) }
func (r *recordBackend) ClipPlane(eqn [4]float64) {
	r.log("clipplane %v %v %v %v", eqn[0], eqn[1], eqn[2], eqn[3])
}

func (r *recordBackend) MatrixMode(m MatrixMode)   { r.log("matrixmode %d", m) }
func (r *recordBackend) LoadIdentity()             { r.log("loadidentity") }
func (r *recordBackend) LoadMatrix(m *glh.Matrix)  { r.log("loadmatrix") }

func (r *recordBackend) GenTexture() uint32 {
	if r.failGen {
		r.log("gentexture fail")
		return 0
	}
	r.nextTex++
	r.log("gentexture %d", r.nextTex)
	return r.nextTex
}
func (r *recordBackend) DeleteTexture(id uint32) { r.log("deletetexture %d", id) }
func (r *recordBackend) BindTexture(id uint32)   { r.log("bind %d", id) }
func (r *recordBackend) TexImage2D(level, w, h int32, rgba []byte) {
	r.log("teximage level=%d %dx%d", level, w, h)
}
func (r *recordBackend) CopyTexSubImage2D(xo, yo, x, y, w, h int32) {
	r.log("copytex %d %d %d %d %d %d", xo, yo, x, y, w, h)
}
func (r *recordBackend) TexFilters(min, mag TexFilter) { r.log("texfilters %d %d", min, mag) }
func (r *recordBackend) TexAnisotropy(level float32)   { r.log("anisotropy %v", level) }

func primName(p Primitive) string {
	switch p {
	case PrimTriangles:
		return "triangles"
	case PrimTriangleStrip:
		return "tristrip"
	case PrimTriangleFan:
		return "trifan"
	case PrimQuads:
		return "quads"
	case PrimPolygon:
		return "polygon"
	case PrimPoints:
		return "points"
	}
	return "?"
}

func (r *recordBackend) Begin(p Primitive)           { r.log("begin %s", primName(p)) }
func (r *recordBackend) End()                        { r.log("end") }
func (r *recordBackend) Vertex3f(x, y, z float32)    { r.log("vertex") }
func (r *recordBackend) TexCoord2f(s, t float32)     { r.log("texcoord2") }
func (r *recordBackend) TexCoord3f(s, t, q float32)  { r.log("texcoord3") }
func (r *recordBackend) Color4f(cr, g, b, a float32) { r.log("color") }
func (r *recordBackend) Finish()                     { r.log("finish") }
