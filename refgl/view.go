// SPDX-License-Identifier: GPL-2.0-or-later

package refgl

import (
	"goq2/bsp"
	"goq2/cvars"
	"goq2/glh"
	qmath "goq2/math"
	"goq2/math/vec"
)

const (
	zNear = 4
	// distance from camera to the edge of the skybox
	skyboxSize = 4600
)

// reflectionPass carries everything a mirrored render needs; the main view
// has a nil pass. This replaces the original's global "drawing reflection"
// flag.
type reflectionPass struct {
	height float32
	target *reflTarget
	// capturedFov is the fov the texture matrix will project with. It is
	// recorded when the pass renders, deliberately not re-read from the
	// current refdef at sampling time.
	capturedFov float32
}

// viewState is the camera state for one render pass, main or mirrored.
type viewState struct {
	rd   *RefDef
	refl *reflectionPass

	origin  vec.Vec3
	forward vec.Vec3
	right   vec.Vec3
	up      vec.Vec3
	fovX    float32
	fovY    float32
	frustum [4]fPlane
}

// mirrorHeight reflects a camera height across the surface height.
func mirrorHeight(z, surface float32) float32 {
	return 2*surface - z
}

// computeFarZ picks the far plane from the skybox size: the smallest power
// of two that holds the box, capped, then doubled since the size is the
// distance from camera to edge, not the total.
func computeFarZ() float32 {
	boxsize := float32(skyboxSize)
	boxsize -= 252 * ceil32(boxsize/2300)
	farz := qmath.PowerOfTwoCeil(boxsize, 65536)
	return farz * 2
}

func ceil32(v float32) float32 {
	i := float32(int32(v))
	if i < v {
		i++
	}
	return i
}

// setupFrame derives the camera basis and resolves the view clusters.
// A reflection pass mirrors the origin across the surface height and
// negates pitch so the basis is a true mirror, and resolves exactly one
// cluster.
func (r *Renderer) setupFrame(v *viewState) {
	r.frameCount++

	v.origin = v.rd.ViewOrg
	v.fovX = v.rd.FovX
	v.fovY = v.rd.FovY

	if v.refl != nil {
		v.origin[2] = mirrorHeight(v.origin[2], v.refl.height)

		angles := v.rd.ViewAngles
		angles[0] = -angles[0]
		v.forward, v.right, v.up = vec.AngleVectors(angles)

		if !v.rd.NoWorldModel() && r.world != nil {
			leaf := r.world.PointInLeaf(v.origin)
			r.viewCluster = leaf.Cluster
			r.viewCluster2 = leaf.Cluster
		}
		return
	}

	v.forward, v.right, v.up = vec.AngleVectors(v.rd.ViewAngles)

	if !v.rd.NoWorldModel() && r.world != nil {
		r.oldViewCluster = r.viewCluster
		r.oldViewCluster2 = r.viewCluster2
		leaf := r.world.PointInLeaf(v.origin)
		r.viewCluster = leaf.Cluster
		r.viewCluster2 = leaf.Cluster

		// check above and below so crossing solid water doesn't draw wrong
		probe := v.origin
		if leaf.Contents() == 0 {
			// look down a bit
			probe[2] -= 16
		} else {
			// look up a bit
			probe[2] += 16
		}
		leaf = r.world.PointInLeaf(probe)
		if leaf.Contents()&bsp.CONTENTS_SOLID == 0 && leaf.Cluster != r.viewCluster2 {
			r.viewCluster2 = leaf.Cluster
		}
	}

	// clear out the portion of the screen that the refdef defines
	if v.rd.NoWorldModel() {
		b := r.ctx.Backend()
		r.ctx.Enable(CapScissorTest)
		b.ClearColor(0.3, 0.3, 0.3, 1)
		b.Scissor(v.rd.X, r.height-v.rd.Height-v.rd.Y, v.rd.Width, v.rd.Height)
		b.Clear(true, true)
		b.ClearColor(1, 0, 0.5, 0.5)
		r.ctx.Disable(CapScissorTest)
	}
}

// perspective is MYgluPerspective: expand fovy/aspect to the near-plane
// edges and hand off to the Mesa frustum form.
func perspective(fovy, aspect, znear, zfar float32) *glh.Matrix {
	return glh.Perspective(fovy, aspect, znear, zfar)
}

// setupGL sets viewport, projection and the modelview transform for the
// pass and toggles the rasterizer state that depends on it.
func (r *Renderer) setupGL(v *viewState) {
	b := r.ctx.Backend()

	if v.refl == nil {
		b.Viewport(v.rd.X, r.height-(v.rd.Y+v.rd.Height), v.rd.Width, v.rd.Height)
	} else {
		// texture size, not screen size
		b.Viewport(0, 0, r.refl.texW, r.refl.texH)
	}

	screenaspect := float32(v.rd.Width) / float32(v.rd.Height)
	b.MatrixMode(MatrixProjection)
	b.LoadMatrix(perspective(v.fovY, screenaspect, zNear, r.farZ))

	b.CullFace(CullFront)

	b.MatrixMode(MatrixModelView)
	r.worldMV = r.modelViewMatrix(v)
	b.LoadMatrix(r.worldMV)

	// mirroring inverts winding, so culling must be off while reflecting
	if cvars.GlCull.Bool() && v.refl == nil {
		r.ctx.Enable(CapCullFace)
	} else {
		r.ctx.Disable(CapCullFace)
	}

	r.ctx.Disable(CapBlend)
	r.ctx.Disable(CapAlphaTest)
	r.ctx.Enable(CapDepthTest)
}

// modelViewMatrix composes the world-to-camera transform. The leading
// rotations swizzle the axes so +Z is up, +X forward, +Y left.
func (r *Renderer) modelViewMatrix(v *viewState) *glh.Matrix {
	m := glh.Identity()
	m.RotateX(-90) // put Z going up
	m.RotateZ(90)  // put Z going up

	if v.refl == nil {
		m.RotateX(-v.rd.ViewAngles[2]) // roll
		m.RotateY(-v.rd.ViewAngles[0]) // pitch
		m.RotateZ(-v.rd.ViewAngles[1]) // yaw
		m.Translate(-v.rd.ViewOrg[0], -v.rd.ViewOrg[1], -v.rd.ViewOrg[2])
	} else {
		reflTransform(m, v.rd, v.refl.height)
	}
	return m
}

// reflTransform appends the mirrored camera transform: flip upside down,
// reversed pitch, and the origin translated to the reflected height.
func reflTransform(m *glh.Matrix, rd *RefDef, height float32) {
	m.RotateX(180) // flip upside down (X-axis is forward)
	m.RotateX(rd.ViewAngles[2])
	m.RotateY(rd.ViewAngles[0]) // up/down rotation (reversed)
	m.RotateZ(-rd.ViewAngles[1])
	m.Translate(-rd.ViewOrg[0], -rd.ViewOrg[1], -mirrorHeight(rd.ViewOrg[2], height))
}

// clear clears the buffers, optionally running the depth-range ping-pong
// that works around z-fighting on some drivers.
func (r *Renderer) clear() {
	b := r.ctx.Backend()
	if cvars.GlZTrick.Bool() {
		if cvars.GlClear.Bool() {
			b.Clear(true, false)
		}
		r.trickFrame++
		if r.trickFrame&1 != 0 {
			b.DepthRange(0, 0.49999)
			b.DepthFunc(DepthLEqual)
		} else {
			b.DepthRange(1, 0.5)
			b.DepthFunc(DepthGEqual)
		}
		return
	}
	if cvars.GlClear.Bool() {
		b.Clear(true, true)
	} else {
		b.Clear(false, true)
	}
	b.DepthRange(0, 1)
	b.DepthFunc(DepthLEqual)
}

// SetGL2D transitions to the orthographic overlay mode for HUD/console.
func (r *Renderer) SetGL2D() {
	b := r.ctx.Backend()
	b.Viewport(0, 0, r.width, r.height)
	b.MatrixMode(MatrixProjection)
	b.LoadMatrix(glh.Ortho(0, float32(r.width), float32(r.height), 0, -99999, 99999))
	b.MatrixMode(MatrixModelView)
	b.LoadIdentity()
	r.ctx.Disable(CapDepthTest)
	r.ctx.Disable(CapCullFace)
	r.ctx.Disable(CapBlend)
	r.ctx.Enable(CapAlphaTest)
	b.Color4f(1, 1, 1, 1)
}
