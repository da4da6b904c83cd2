// SPDX-License-Identifier: GPL-2.0-or-later

package refgl

import (
	"github.com/chewxy/math32"

	"goq2/bsp"
	"goq2/cvars"
	"goq2/math/vec"
)

const dLightCutoff = 64

// pushDLights marks the surfaces each dynamic light touches so the surface
// pass can modulate them. Marks carry the light index as a bit.
func (r *Renderer) pushDLights(rd *RefDef) {
	if cvars.GlFlashBlend.Bool() {
		return // blobs instead of lightmaps
	}
	if rd.NoWorldModel() || r.world == nil {
		return
	}
	r.dLightFrameCount = r.frameCount + 1 // because the count hasn't advanced yet
	for i := range rd.DLights {
		dl := &rd.DLights[i]
		r.markDLight(dl, uint32(1)<<uint(i&31), r.world.Node)
	}
}

func (r *Renderer) markDLight(dl *DynamicLight, bit uint32, node bsp.Node) {
	if node == nil || node.Contents() != -1 {
		return
	}
	n := node.(*bsp.MNode)

	dist := vec.Dot(dl.Origin, n.Plane.Normal) - n.Plane.Dist
	if dist > dl.Intensity-dLightCutoff {
		r.markDLight(dl, bit, n.Children[0])
		return
	}
	if dist < -dl.Intensity+dLightCutoff {
		r.markDLight(dl, bit, n.Children[1])
		return
	}

	for _, s := range n.Surfaces {
		if s.DLightFrame != r.dLightFrameCount {
			s.DLightFrame = r.dLightFrameCount
			s.DLightBits = 0
		}
		s.DLightBits |= bit
	}

	r.markDLight(dl, bit, n.Children[0])
	r.markDLight(dl, bit, n.Children[1])
}

// lightPoint samples the light at a world position: a flat ambient term
// plus each dynamic light's falloff contribution.
func (r *Renderer) lightPoint(rd *RefDef, p vec.Vec3) vec.Vec3 {
	color := vec.Vec3{1, 1, 1}
	if cvars.RFullBright.Bool() || r.world == nil {
		return color
	}

	// darken points inside opaque liquids
	if leaf := r.world.PointInLeaf(p); leaf != nil {
		if leaf.Contents()&(bsp.CONTENTS_LAVA|bsp.CONTENTS_SLIME) != 0 {
			color = vec.Scale(0.5, color)
		}
	}

	modulate := cvars.GlModulate.Value()
	color = vec.Scale(modulate, color)

	for i := range rd.DLights {
		dl := &rd.DLights[i]
		d := vec.Sub(p, dl.Origin)
		add := (dl.Intensity - d.Length()) / 256
		if add > 0 {
			color.Add(vec.Scale(add, dl.Color))
		}
	}
	return color
}

// setLightLevel feeds the light at the view origin back to the client; the
// server uses it for monster sight checks.
func (r *Renderer) setLightLevel(rd *RefDef) {
	if rd.NoWorldModel() {
		return
	}

	shadelight := r.lightPoint(rd, rd.ViewOrg)

	// pick the greatest component, which should be the same
	// as the mono value returned by software
	m := shadelight[0]
	if shadelight[1] > m {
		m = shadelight[1]
	}
	if shadelight[2] > m {
		m = shadelight[2]
	}
	cvars.RLightLevel.SetValue(150 * m)
}

// renderDLights draws additive light blobs when gl_flashblend is on.
func (r *Renderer) renderDLights(v *viewState) {
	if !cvars.GlFlashBlend.Bool() {
		return
	}
	if len(v.rd.DLights) == 0 {
		return
	}

	b := r.ctx.Backend()
	r.ctx.DepthMask(false)
	r.ctx.Disable(CapTexture2D)
	r.ctx.Enable(CapBlend)
	b.BlendFunc(BlendOne, BlendOne)

	for i := range v.rd.DLights {
		r.renderDLight(v, &v.rd.DLights[i])
	}

	b.Color4f(1, 1, 1, 1)
	r.ctx.Disable(CapBlend)
	r.ctx.Enable(CapTexture2D)
	b.BlendFunc(BlendSrcAlpha, BlendOneMinusSrcAlpha)
	r.ctx.DepthMask(true)
}

func (r *Renderer) renderDLight(v *viewState, dl *DynamicLight) {
	rad := dl.Intensity * 0.35

	b := r.ctx.Backend()
	b.Begin(PrimTriangleFan)
	b.Color4f(dl.Color[0]*0.2, dl.Color[1]*0.2, dl.Color[2]*0.2, 1)
	center := vec.Sub(dl.Origin, vec.Scale(rad, v.forward))
	b.Vertex3f(center[0], center[1], center[2])
	b.Color4f(0, 0, 0, 1)
	for i := 16; i >= 0; i-- {
		a := float32(i) / 16 * math32.Pi * 2
		s, c := math32.Sincos(a)
		p := dl.Origin
		p.Add(vec.Scale(c*rad, v.right))
		p.Add(vec.Scale(s*rad, v.up))
		b.Vertex3f(p[0], p[1], p[2])
	}
	b.End()
}
