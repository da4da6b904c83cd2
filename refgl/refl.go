// SPDX-License-Identifier: GPL-2.0-or-later

// Planar water reflections: visible upward-facing translucent surfaces
// register their height, each height gets a mirrored render into a texture,
// and the water pass projects that texture back onto the surface.

package refgl

import (
	"goq2/bsp"
	"goq2/conlog"
	"goq2/cvars"
	"goq2/glh"
	"goq2/math/vec"
)

const (
	reflTexSize    = 512
	maxReflections = 2
)

// AddOutcome reports what happened to a surface height offered to the
// reflection set.
type AddOutcome int

const (
	ReflAccepted AddOutcome = iota
	ReflDuplicate
	ReflRejected // set full
)

// reflSet holds the distinct water heights found this discovery pass.
type reflSet struct {
	heights [maxReflections]float32
	n       int
}

func (s *reflSet) add(h float32) AddOutcome {
	for i := 0; i < s.n; i++ {
		if s.heights[i] == h {
			return ReflDuplicate
		}
	}
	if s.n == len(s.heights) {
		return ReflRejected
	}
	s.heights[s.n] = h
	s.n++
	return ReflAccepted
}

func (s *reflSet) clear() { s.n = 0 }

// everyNth fires once every n ticks.
type everyNth struct {
	n     int
	count int
}

func newEveryNth(n int) *everyNth {
	if n < 1 {
		n = 1
	}
	return &everyNth{n: n}
}

func (e *everyNth) tick() bool {
	e.count++
	return e.count%e.n == 0
}

// reflTarget is one allocated mirror texture bound to a water height.
type reflTarget struct {
	height      float32
	texID       uint32
	capturedFov float32
}

// reflSystem owns the mirror textures and the discovery schedule. A failed
// texture allocation disables the whole subsystem instead of aborting the
// frame.
type reflSystem struct {
	ctx        *Context
	texW, texH int32 // effective capture size, <= reflTexSize

	set     reflSet
	targets []*reflTarget
	pool    [maxReflections]*reflTarget
	sched   *everyNth

	disabled bool

	accepted   int
	duplicates int
	rejected   int
}

func newReflSystem(ctx *Context, screenW, screenH int32) *reflSystem {
	w := screenW
	if w > reflTexSize {
		w = reflTexSize
	}
	h := screenH
	if h > reflTexSize {
		h = reflTexSize
	}
	return &reflSystem{
		ctx:   ctx,
		texW:  w,
		texH:  h,
		sched: newEveryNth(10),
	}
}

func (rs *reflSystem) enabled() bool {
	return !rs.disabled && len(rs.targets) > 0
}

func (rs *reflSystem) targetFor(height float32) *reflTarget {
	for _, t := range rs.targets {
		if t.height == height {
			return t
		}
	}
	return nil
}

// offer records a water height. Duplicates and overflow are counted but
// otherwise dropped.
func (rs *reflSystem) offer(height float32) AddOutcome {
	o := rs.set.add(height)
	switch o {
	case ReflAccepted:
		rs.accepted++
	case ReflDuplicate:
		rs.duplicates++
	case ReflRejected:
		rs.rejected++
	}
	return o
}

// rebuildTargets maps the discovered heights to allocated textures. Texture
// allocation happens here, once per slot, and failure flips the subsystem
// off with a warning instead of killing the frame.
func (rs *reflSystem) rebuildTargets() {
	rs.targets = rs.targets[:0]
	if rs.disabled {
		return
	}
	for i := 0; i < rs.set.n; i++ {
		t := rs.pool[i]
		if t == nil {
			t = rs.allocTarget()
			if t == nil {
				rs.disabled = true
				rs.targets = rs.targets[:0]
				conlog.Printf("water reflection texture allocation failed, reflections disabled\n")
				return
			}
			rs.pool[i] = t
		}
		t.height = rs.set.heights[i]
		rs.targets = append(rs.targets, t)
	}
}

func (rs *reflSystem) allocTarget() *reflTarget {
	b := rs.ctx.Backend()
	id := b.GenTexture()
	if id == 0 {
		return nil
	}
	// start from a known white texture so an unrendered mirror isn't garbage
	white := make([]byte, reflTexSize*reflTexSize*4)
	for i := range white {
		white[i] = 0xff
	}
	rs.ctx.Bind(id)
	b.TexImage2D(0, reflTexSize, reflTexSize, white)
	b.TexFilters(FilterLinear, FilterLinear)
	return &reflTarget{texID: id}
}

// findReflectiveSurfaces walks the visible tree collecting the heights of
// upward-facing translucent surfaces. It reuses the leaf marking and
// frustum of the last main render, so discovery costs no extra marking.
func (r *Renderer) findReflectiveSurfaces(rd *RefDef, node bsp.Node) {
	if node == nil {
		return
	}
	if node.Contents() == bsp.CONTENTS_SOLID {
		return
	}
	if node.VisFrame() != r.visFrameCount {
		return
	}
	if r.lastView != nil {
		if mins, maxs := node.Bounds(); r.lastView.cullBox(mins, maxs) {
			return
		}
	}

	if leaf, ok := node.(*bsp.MLeaf); ok {
		if rd.AreaBits != nil {
			if rd.AreaBits[leaf.Area>>3]&(1<<(uint(leaf.Area)&7)) == 0 {
				return
			}
		}
		for _, s := range leaf.MarkSurfaces {
			s.VisFrame = r.frameCount
		}
		return
	}

	n := node.(*bsp.MNode)

	var dot float32
	switch n.Plane.Type {
	case bsp.PlaneX:
		dot = rd.ViewOrg[0] - n.Plane.Dist
	case bsp.PlaneY:
		dot = rd.ViewOrg[1] - n.Plane.Dist
	case bsp.PlaneZ:
		dot = rd.ViewOrg[2] - n.Plane.Dist
	default:
		dot = vec.Dot(rd.ViewOrg, n.Plane.Normal) - n.Plane.Dist
	}

	side := 0
	sidebit := uint32(0)
	if dot < 0 {
		side = 1
		sidebit = bsp.SURF_PLANEBACK
	}

	r.findReflectiveSurfaces(rd, n.Children[side])

	for _, s := range n.Surfaces {
		if s.VisFrame != r.frameCount {
			continue
		}
		if s.Flags&bsp.SURF_PLANEBACK != sidebit {
			continue
		}
		if !s.Translucent() {
			continue
		}
		if rd.Underwater() {
			continue // never reflect while underwater
		}
		if s.Plane == nil || s.Plane.Type != bsp.PlaneZ {
			continue // only flat horizontal water
		}
		r.refl.offer(surfaceHeight(s))
	}

	r.findReflectiveSurfaces(rd, n.Children[side^1])
}

// updateReflections renders the mirrored view for each water height into
// its texture. Draw failures inside a mirror pass degrade that texture,
// never the main frame.
func (r *Renderer) updateReflections(rd *RefDef) {
	b := r.ctx.Backend()

	for _, tgt := range r.refl.targets {
		b.ClearColor(0, 0, 0, 1)
		b.Clear(true, true)

		tgt.capturedFov = rd.FovY
		pass := &reflectionPass{
			height:      tgt.height,
			target:      tgt,
			capturedFov: tgt.capturedFov,
		}
		if err := r.renderOneView(rd, pass); err != nil {
			conlog.DPrintf("reflection pass at %v: %v\n", tgt.height, err)
			continue
		}

		r.ctx.Bind(tgt.texID)
		b.CopyTexSubImage2D(
			(reflTexSize-r.refl.texW)>>1, (reflTexSize-r.refl.texH)>>1,
			0, 0, r.refl.texW, r.refl.texH)
	}

	b.Clear(true, true)
}

// loadReflMatrix builds the projective texture matrix that maps a world
// position on the water plane to its spot in the mirror texture: bias and
// scale into the used sub-rectangle, then the capture-time projection and
// the mirrored camera transform.
func (r *Renderer) loadReflMatrix(tgt *reflTarget) {
	rd := r.lastRefDef
	if rd == nil {
		return
	}
	b := r.ctx.Backend()

	m := glh.Identity()
	m.Translate(0.5, 0.5, 0)
	m.Scale(0.5*float32(r.refl.texW)/reflTexSize, 0.5*float32(r.refl.texH)/reflTexSize, 1)
	m.Mul(glh.Perspective(tgt.capturedFov, float32(rd.Width)/float32(rd.Height), zNear, 4096))
	m.RotateX(-90)
	m.RotateZ(90)
	reflTransform(m, rd, tgt.height)

	b.MatrixMode(MatrixTexture)
	b.LoadMatrix(m)
	b.MatrixMode(MatrixModelView)
}

func (r *Renderer) clearReflMatrix() {
	b := r.ctx.Backend()
	b.MatrixMode(MatrixTexture)
	b.LoadIdentity()
	b.MatrixMode(MatrixModelView)
}

// drawDebugReflTextures pastes the mirror textures into the corner of the
// 2D overlay so gl_refl_debug can eyeball them.
func (r *Renderer) drawDebugReflTextures() {
	if !cvars.GlReflDebug.Bool() || !r.refl.enabled() {
		return
	}
	b := r.ctx.Backend()
	r.ctx.Enable(CapTexture2D)
	for i, tgt := range r.refl.targets {
		x := float32(i) * 200
		r.ctx.Bind(tgt.texID)
		b.Begin(PrimQuads)
		b.TexCoord2f(1, 1)
		b.Vertex3f(x, 0, 0)
		b.TexCoord2f(0, 1)
		b.Vertex3f(x+200, 0, 0)
		b.TexCoord2f(0, 0)
		b.Vertex3f(x+200, 200, 0)
		b.TexCoord2f(1, 0)
		b.Vertex3f(x, 200, 0)
		b.End()
	}
}
