// SPDX-License-Identifier: GPL-2.0-or-later

package refgl

import (
	"goq2/bsp"
	"goq2/cvars"
	"goq2/math/vec"
)

// markLeaves marks the leaves and nodes reachable from the current view
// clusters. Early-out when the clusters did not change; gl_lockpvs freezes
// the marking for debugging.
func (r *Renderer) markLeaves() {
	if r.oldViewCluster == r.viewCluster && r.oldViewCluster2 == r.viewCluster2 &&
		!cvars.RNoVis.Bool() && r.viewCluster != -1 {
		return
	}
	if cvars.GlLockPvs.Bool() {
		return
	}

	r.visFrameCount++
	r.oldViewCluster = r.viewCluster
	r.oldViewCluster2 = r.viewCluster2

	if cvars.RNoVis.Bool() || r.viewCluster == -1 || r.world.NumClusters == 0 {
		for _, leaf := range r.world.Leafs {
			r.markChain(leaf)
		}
		return
	}

	vis := r.world.ClusterPVS(r.viewCluster)
	// may have to combine two clusters because of solid water boundaries
	if r.viewCluster2 != r.viewCluster {
		fat := make([]byte, len(vis))
		copy(fat, vis)
		vis2 := r.world.ClusterPVS(r.viewCluster2)
		for i := range fat {
			if i < len(vis2) {
				fat[i] |= vis2[i]
			}
		}
		vis = fat
	}

	for _, leaf := range r.world.Leafs {
		c := leaf.Cluster
		if c == -1 {
			continue
		}
		if c>>3 < len(vis) && vis[c>>3]&(1<<(uint(c)&7)) != 0 {
			r.markChain(leaf)
		}
	}
}

// markChain walks from a leaf up to the root, stamping the vis frame.
func (r *Renderer) markChain(n bsp.Node) {
	for n != nil && n.VisFrame() != r.visFrameCount {
		n.SetVisFrame(r.visFrameCount)
		n = n.Parent()
	}
}

// recursiveWorldNode walks the tree front to back, emitting the surfaces
// facing the camera. Translucent surfaces are deferred to the alpha chain
// so they draw back to front after everything opaque.
func (r *Renderer) recursiveWorldNode(v *viewState, node bsp.Node) {
	if node.Contents() == bsp.CONTENTS_SOLID {
		return // solid
	}
	if node.VisFrame() != r.visFrameCount {
		return
	}
	if mins, maxs := node.Bounds(); v.cullBox(mins, maxs) {
		return
	}

	if leaf, ok := node.(*bsp.MLeaf); ok {
		if v.rd.AreaBits != nil {
			if v.rd.AreaBits[leaf.Area>>3]&(1<<(uint(leaf.Area)&7)) == 0 {
				return // not visible
			}
		}
		for _, s := range leaf.MarkSurfaces {
			s.VisFrame = r.frameCount
		}
		return
	}

	n := node.(*bsp.MNode)

	// node is just a decision point, so go down the appropriate sides
	var dot float32
	switch n.Plane.Type {
	case bsp.PlaneX:
		dot = v.origin[0] - n.Plane.Dist
	case bsp.PlaneY:
		dot = v.origin[1] - n.Plane.Dist
	case bsp.PlaneZ:
		dot = v.origin[2] - n.Plane.Dist
	default:
		dot = vec.Dot(v.origin, n.Plane.Normal) - n.Plane.Dist
	}

	side := 0
	sidebit := uint32(0)
	if dot < 0 {
		side = 1
		sidebit = bsp.SURF_PLANEBACK
	}

	r.recursiveWorldNode(v, n.Children[side])

	for _, s := range n.Surfaces {
		if s.VisFrame != r.frameCount {
			continue
		}
		if s.Flags&bsp.SURF_PLANEBACK != sidebit {
			continue // wrong side
		}
		if s.TexInfo != nil && s.TexInfo.Flags&bsp.SURF_NODRAW != 0 {
			continue
		}
		if s.Translucent() {
			r.alphaChain = append(r.alphaChain, s)
		} else {
			r.drawSurface(v, s)
		}
	}

	r.recursiveWorldNode(v, n.Children[side^1])
}

func (r *Renderer) drawWorld(v *viewState) {
	if !cvars.RDrawWorld.Bool() {
		return
	}
	if v.rd.NoWorldModel() {
		return
	}
	b := r.ctx.Backend()
	b.Color4f(1, 1, 1, 1)
	r.recursiveWorldNode(v, r.world.Node)
}

func (r *Renderer) drawSurface(v *viewState, s *bsp.Surface) {
	name := ""
	if s.TexInfo != nil {
		name = s.TexInfo.Name
	}
	r.ctx.Bind(r.images.WallTexture(name))
	b := r.ctx.Backend()
	for i := range s.Polys {
		p := &s.Polys[i]
		r.counters.brushPolys++
		b.Begin(PrimPolygon)
		for j, vert := range p.Verts {
			if j < len(p.TexCoords) {
				b.TexCoord2f(p.TexCoords[j][0], p.TexCoords[j][1])
			}
			b.Vertex3f(vert[0], vert[1], vert[2])
		}
		b.End()
	}
}

// drawAlphaSurfaces draws the deferred translucent chain. Reflective water
// samples the offscreen mirror render through the projective texture
// matrix; other translucent surfaces blend with their compiler alpha.
func (r *Renderer) drawAlphaSurfaces(v *viewState) {
	if len(r.alphaChain) == 0 {
		return
	}
	b := r.ctx.Backend()
	r.ctx.TexEnv(TexEnvModulate)
	r.ctx.Enable(CapBlend)
	b.BlendFunc(BlendSrcAlpha, BlendOneMinusSrcAlpha)

	for _, s := range r.alphaChain {
		alpha := float32(1)
		if s.TexInfo.Flags&bsp.SURF_TRANS33 != 0 {
			alpha = 0.33
		} else if s.TexInfo.Flags&bsp.SURF_TRANS66 != 0 {
			alpha = 0.66
		}

		if v.refl == nil && r.refl.enabled() && s.Plane != nil && s.Plane.Type == bsp.PlaneZ {
			if tgt := r.refl.targetFor(surfaceHeight(s)); tgt != nil {
				r.drawReflectiveSurface(v, s, tgt)
				continue
			}
		}

		b.Color4f(1, 1, 1, alpha)
		r.ctx.Bind(r.images.WallTexture(s.TexInfo.Name))
		for i := range s.Polys {
			p := &s.Polys[i]
			r.counters.brushPolys++
			b.Begin(PrimPolygon)
			for j, vert := range p.Verts {
				if j < len(p.TexCoords) {
					b.TexCoord2f(p.TexCoords[j][0], p.TexCoords[j][1])
				}
				b.Vertex3f(vert[0], vert[1], vert[2])
			}
			b.End()
		}
	}

	b.Color4f(1, 1, 1, 1)
	r.ctx.TexEnv(TexEnvReplace)
	r.ctx.Disable(CapBlend)
	r.alphaChain = r.alphaChain[:0]
}

// drawReflectiveSurface projects the mirror texture onto the water plane.
// The texture matrix maps world positions to mirror screen space, so the
// vertex position doubles as the texture coordinate.
func (r *Renderer) drawReflectiveSurface(v *viewState, s *bsp.Surface, tgt *reflTarget) {
	b := r.ctx.Backend()
	r.loadReflMatrix(tgt)
	r.ctx.Bind(tgt.texID)
	b.Color4f(1, 1, 1, cvars.GlReflAlpha.Value())
	for i := range s.Polys {
		p := &s.Polys[i]
		r.counters.brushPolys++
		b.Begin(PrimPolygon)
		for _, vert := range p.Verts {
			b.TexCoord3f(vert[0], vert[1], vert[2])
			b.Vertex3f(vert[0], vert[1], vert[2])
		}
		b.End()
	}
	r.clearReflMatrix()
}

func surfaceHeight(s *bsp.Surface) float32 {
	if len(s.Polys) == 0 || len(s.Polys[0].Verts) == 0 {
		return 0
	}
	return s.Polys[0].Verts[0][2]
}

// drawBrushModel draws an inline submodel with the entity transform
// applied on top of the world modelview.
func (r *Renderer) drawBrushModel(m *BrushModel, v *viewState, e *Entity) {
	if len(m.Surfaces) == 0 {
		return
	}

	mins := vec.Add(e.Origin, m.Mins)
	maxs := vec.Add(e.Origin, m.Maxs)
	if v.cullBox(mins, maxs) {
		return
	}

	b := r.ctx.Backend()
	b.Color4f(1, 1, 1, 1)

	em := r.worldMV.Copy()
	em.Translate(e.Origin[0], e.Origin[1], e.Origin[2])
	em.RotateZ(e.Angles[1])
	em.RotateY(-e.Angles[0])
	em.RotateX(-e.Angles[2])
	b.LoadMatrix(em)

	if e.Translucent() {
		r.ctx.Enable(CapBlend)
		b.BlendFunc(BlendSrcAlpha, BlendOneMinusSrcAlpha)
		b.Color4f(1, 1, 1, 0.25)
		r.ctx.TexEnv(TexEnvModulate)
	}

	for _, s := range m.Surfaces {
		if s.TexInfo != nil && s.TexInfo.Flags&bsp.SURF_NODRAW != 0 {
			continue
		}
		r.drawSurface(v, s)
	}

	if e.Translucent() {
		r.ctx.Disable(CapBlend)
		b.Color4f(1, 1, 1, 1)
		r.ctx.TexEnv(TexEnvReplace)
	}

	b.LoadMatrix(r.worldMV)
}
