// SPDX-License-Identifier: GPL-2.0-or-later

package refgl

import (
	"goq2/math/vec"
	"goq2/palette"
)

// Per-type billboard half-size multipliers.
var particleScales = [particleTypeCount]float32{
	ParticleDefault: 0.667,
	ParticleFire:    0.8,
	ParticleSmoke:   3.667,
	ParticleBubble:  0.667,
	ParticleBlood:   1.667,
}

// partitionParticles buckets the scene particles by type so each texture is
// bound once. Relative order inside a bucket is preserved.
func partitionParticles(ps []Particle) [particleTypeCount][]int {
	var out [particleTypeCount][]int
	for i := range ps {
		t := ps[i].Type
		if t < 0 || t >= particleTypeCount {
			t = ParticleDefault
		}
		out[t] = append(out[t], i)
	}
	return out
}

// drawParticles draws all particles as camera-facing quads, batched by
// type. Particles far from the camera get scaled up so they stay visible.
func (r *Renderer) drawParticles(v *viewState) {
	ps := v.rd.Particles
	if len(ps) == 0 {
		return
	}

	b := r.ctx.Backend()
	batches := partitionParticles(ps)

	for t := ParticleDefault; t < particleTypeCount; t++ {
		batch := batches[t]
		if len(batch) == 0 {
			continue
		}

		r.ctx.Bind(r.images.ParticleTexture(t))
		r.ctx.DepthMask(false) // no z buffering
		r.ctx.Enable(CapBlend)
		r.ctx.TexEnv(TexEnvModulate)

		up := vec.Scale(particleScales[t], v.up)
		right := vec.Scale(particleScales[t], v.right)

		b.Begin(PrimQuads)
		for _, i := range batch {
			p := &ps[i]

			// hack a scale up to keep particles from disappearing
			scale := (p.Origin[0]-v.origin[0])*v.forward[0] +
				(p.Origin[1]-v.origin[1])*v.forward[1] +
				(p.Origin[2]-v.origin[2])*v.forward[2]
			if scale < 20 {
				scale = 1
			} else {
				scale = 1 + scale*0.004
			}

			cr, cg, cb := palette.Color(p.Color)
			b.Color4f(float32(cr)/255, float32(cg)/255, float32(cb)/255, p.Alpha)

			b.TexCoord2f(0, 0)
			b.Vertex3f(p.Origin[0], p.Origin[1], p.Origin[2])
			b.TexCoord2f(0, 1)
			b.Vertex3f(p.Origin[0]+up[0]*scale, p.Origin[1]+up[1]*scale, p.Origin[2]+up[2]*scale)
			b.TexCoord2f(1, 1)
			b.Vertex3f(p.Origin[0]+up[0]*scale+right[0]*scale,
				p.Origin[1]+up[1]*scale+right[1]*scale,
				p.Origin[2]+up[2]*scale+right[2]*scale)
			b.TexCoord2f(1, 0)
			b.Vertex3f(p.Origin[0]+right[0]*scale, p.Origin[1]+right[1]*scale, p.Origin[2]+right[2]*scale)
		}
		b.End()

		r.ctx.Disable(CapBlend)
		b.Color4f(1, 1, 1, 1)
		r.ctx.DepthMask(true) // back to normal Z buffering
		r.ctx.TexEnv(TexEnvReplace)
	}
}
