// SPDX-License-Identifier: GPL-2.0-or-later

package refgl

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"goq2/bsp"
	"goq2/conlog"
	"goq2/cvars"
	"goq2/glh"
	"goq2/math/vec"
	"goq2/palette"
)

type speedCounters struct {
	brushPolys       int
	aliasPolys       int
	visibleTextures  int
	visibleLightmaps int
}

// Renderer draws one frame of a scene description. All GL state flows
// through the cached Context so redundant changes are filtered.
type Renderer struct {
	ctx    *Context
	images *ImageRegistry
	refl   *reflSystem

	world  *bsp.Model
	width  int32
	height int32
	farZ   float32

	frameCount       int
	visFrameCount    int
	dLightFrameCount int
	trickFrame       int

	viewCluster     int
	viewCluster2    int
	oldViewCluster  int
	oldViewCluster2 int

	alphaChain []*bsp.Surface
	worldMV    *glh.Matrix

	// state of the last completed main view, reused by the reflection
	// discovery walk and the water texture matrix
	lastView   *viewState
	lastRefDef *RefDef

	counters speedCounters
}

func NewRenderer(b Backend, width, height int32) *Renderer {
	ctx := NewContext(b)
	r := &Renderer{
		ctx:             ctx,
		width:           width,
		height:          height,
		farZ:            computeFarZ(),
		viewCluster:     -1,
		viewCluster2:    -1,
		oldViewCluster:  -1,
		oldViewCluster2: -1,
	}
	r.images = NewImageRegistry(ctx)
	r.refl = newReflSystem(ctx, width, height)
	return r
}

func (r *Renderer) Images() *ImageRegistry { return r.images }

// SetWorld installs the world model and invalidates the cluster cache.
func (r *Renderer) SetWorld(m *bsp.Model) {
	r.world = m
	r.viewCluster = -1
	r.viewCluster2 = -1
	r.oldViewCluster = -1
	r.oldViewCluster2 = -1
	r.lastView = nil
	r.lastRefDef = nil
	r.refl.set.clear()
	r.refl.targets = r.refl.targets[:0]
}

// RenderFrame draws one complete frame: the periodic water discovery walk,
// the offscreen mirror passes, the main view, the light level feedback and
// the switch to 2D overlay mode.
func (r *Renderer) RenderFrame(rd *RefDef) error {
	discover := r.refl.sched.tick()

	if cvars.GlReflAlpha.Value() > 0 && !rd.Underwater() &&
		!rd.NoWorldModel() && r.world != nil && !r.refl.disabled {
		if discover {
			r.refl.set.clear()
			r.findReflectiveSurfaces(rd, r.world.Node)
			r.refl.rebuildTargets()
		}
		if r.refl.enabled() {
			r.updateReflections(rd)
		}
	}

	if err := r.renderOneView(rd, nil); err != nil {
		return err
	}

	r.setLightLevel(rd)
	r.SetGL2D()
	r.drawDebugReflTextures()
	return nil
}

// renderOneView runs the full draw pass sequence for one camera, either
// the player view or a mirrored water pass. Pass order is fixed: world,
// opaque entities, translucent entities, dynamic lights, particles, alpha
// surfaces, then the screen blend (main view only).
func (r *Renderer) renderOneView(rd *RefDef, pass *reflectionPass) error {
	if cvars.RNoRefresh.Bool() {
		return nil
	}
	if r.world == nil && !rd.NoWorldModel() {
		return errors.New("renderOneView: no world model")
	}

	if cvars.RSpeeds.Bool() {
		r.counters = speedCounters{}
	}

	r.pushDLights(rd)

	if cvars.GlFinish.Bool() {
		r.ctx.Backend().Finish()
	}

	v := &viewState{rd: rd, refl: pass}

	r.clear()
	r.setupFrame(v)
	v.setFrustum()
	r.setupGL(v)

	if pass == nil {
		// the water texture matrix and next frame's discovery walk need
		// the main camera, not the mirrored one
		r.lastView = v
		r.lastRefDef = rd
	}

	if pass != nil {
		// clip everything below the water plane; the plane is transformed
		// by the current modelview, so this must follow setupGL
		r.ctx.Enable(CapClipPlane0)
		r.ctx.Backend().ClipPlane([4]float64{0, 0, 1, -float64(pass.height)})
	}

	if !rd.NoWorldModel() && r.world != nil {
		r.markLeaves()
		r.drawWorld(v)
	}
	r.drawEntities(v)
	r.renderDLights(v)
	r.drawParticles(v)
	r.drawAlphaSurfaces(v)

	if pass != nil {
		r.ctx.Disable(CapClipPlane0)
		return nil
	}

	r.polyBlend(v)

	if cvars.RSpeeds.Bool() {
		conlog.Printf("%4d wpoly %4d epoly %d tex %d lmaps\n",
			r.counters.brushPolys, r.counters.aliasPolys,
			r.counters.visibleTextures, r.counters.visibleLightmaps)
	}
	return nil
}

// drawEntities draws opaque entities first, then translucent ones with
// depth writes off so they don't punch holes in each other.
func (r *Renderer) drawEntities(v *viewState) {
	if !cvars.RDrawEntities.Bool() {
		return
	}

	for i := range v.rd.Entities {
		e := &v.rd.Entities[i]
		if e.Translucent() {
			continue
		}
		r.drawEntity(v, e)
	}

	r.ctx.DepthMask(false) // no z writes
	for i := range v.rd.Entities {
		e := &v.rd.Entities[i]
		if !e.Translucent() {
			continue
		}
		r.drawEntity(v, e)
	}
	r.ctx.DepthMask(true)
}

func (r *Renderer) drawEntity(v *viewState, e *Entity) {
	switch {
	case e.Flags&RfBeam != 0:
		r.drawBeam(v, e)
	case e.Model == nil:
		r.drawNullModel(v, e)
	default:
		e.Model.draw(r, v, e)
	}
}

// entityMatrix puts the entity transform on top of the world modelview.
func (r *Renderer) entityMatrix(e *Entity) *glh.Matrix {
	m := r.worldMV.Copy()
	m.Translate(e.Origin[0], e.Origin[1], e.Origin[2])
	m.RotateZ(e.Angles[1])
	m.RotateY(-e.Angles[0])
	m.RotateX(-e.Angles[2])
	return m
}

// drawNullModel draws a small diamond where an entity has no model, so
// missing assets are visible instead of silently absent.
func (r *Renderer) drawNullModel(v *viewState, e *Entity) {
	var shadelight vec.Vec3
	if e.Flags&RfFullBright != 0 {
		shadelight = vec.Vec3{1, 1, 1}
	} else {
		shadelight = r.lightPoint(v.rd, e.Origin)
	}

	b := r.ctx.Backend()
	b.LoadMatrix(r.entityMatrix(e))

	r.ctx.Disable(CapTexture2D)
	b.Color4f(shadelight[0], shadelight[1], shadelight[2], 1)

	b.Begin(PrimTriangleFan)
	b.Vertex3f(0, 0, -16)
	for i := 0; i <= 4; i++ {
		s, c := math32.Sincos(float32(i) * math32.Pi / 2)
		b.Vertex3f(16*c, 16*s, 0)
	}
	b.End()

	b.Begin(PrimTriangleFan)
	b.Vertex3f(0, 0, 16)
	for i := 4; i >= 0; i-- {
		s, c := math32.Sincos(float32(i) * math32.Pi / 2)
		b.Vertex3f(16*c, 16*s, 0)
	}
	b.End()

	b.Color4f(1, 1, 1, 1)
	r.ctx.Enable(CapTexture2D)
	b.LoadMatrix(r.worldMV)
}

func (r *Renderer) drawAliasModel(m *AliasModel, v *viewState, e *Entity) {
	// the player model only shows up in mirrored views
	if e.Flags&RfViewerModel != 0 && v.refl == nil {
		return
	}
	if len(m.Frames) == 0 {
		conlog.DPrintf("drawAliasModel %s: no frames\n", m.Name())
		return
	}

	frame := e.Frame
	if frame < 0 || frame >= len(m.Frames) {
		conlog.DPrintf("drawAliasModel %s: no such frame %d\n", m.Name(), frame)
		frame = 0
	}
	oldFrame := e.OldFrame
	if oldFrame < 0 || oldFrame >= len(m.Frames) {
		conlog.DPrintf("drawAliasModel %s: no such oldframe %d\n", m.Name(), oldFrame)
		oldFrame = 0
	}

	if e.Flags&RfWeaponModel == 0 {
		mins := vec.Add(e.Origin, m.Frames[frame].Mins)
		maxs := vec.Add(e.Origin, m.Frames[frame].Maxs)
		if v.cullBox(mins, maxs) {
			return
		}
	}

	var shadelight vec.Vec3
	if e.Flags&RfFullBright != 0 {
		shadelight = vec.Vec3{1, 1, 1}
	} else {
		shadelight = r.lightPoint(v.rd, e.Origin)
	}
	if e.Flags&RfMinLight != 0 {
		for i := range shadelight {
			if shadelight[i] < 0.1 {
				shadelight[i] = 0.1
			}
		}
	}
	if e.Flags&RfGlow != 0 {
		// bonus items pulse
		pulse := 0.1 * math32.Sin(v.rd.Time*7)
		for i := range shadelight {
			s := shadelight[i] + pulse
			if s < 0 {
				s = 0
			}
			shadelight[i] = s
		}
	}

	b := r.ctx.Backend()
	b.LoadMatrix(r.entityMatrix(e))

	if e.Flags&RfDepthHack != 0 {
		// weapon model never pokes into walls
		b.DepthRange(0, 0.3)
	}

	alpha := float32(1)
	if e.Translucent() {
		alpha = e.Alpha
		r.ctx.Enable(CapBlend)
		b.BlendFunc(BlendSrcAlpha, BlendOneMinusSrcAlpha)
	}

	skin := e.Skin
	if skin == 0 {
		skin = m.SkinID
	}
	r.ctx.Bind(skin)
	r.ctx.TexEnv(TexEnvModulate)

	backLerp := e.BackLerp
	if !cvars.RLerpModels.Bool() {
		backLerp = 0
	}
	frontLerp := 1 - backLerp
	cur := m.Frames[frame].Verts
	old := m.Frames[oldFrame].Verts

	b.Color4f(shadelight[0], shadelight[1], shadelight[2], alpha)
	b.Begin(PrimTriangles)
	for _, tri := range m.Tris {
		for _, idx := range tri {
			if idx < 0 || idx >= len(cur) || idx >= len(old) {
				continue
			}
			if idx < len(m.TexCoords) {
				b.TexCoord2f(m.TexCoords[idx][0], m.TexCoords[idx][1])
			}
			p := vec.Add(vec.Scale(frontLerp, cur[idx]), vec.Scale(backLerp, old[idx]))
			b.Vertex3f(p[0], p[1], p[2])
		}
	}
	b.End()
	r.counters.aliasPolys += len(m.Tris)

	r.ctx.TexEnv(TexEnvReplace)
	if e.Translucent() {
		r.ctx.Disable(CapBlend)
	}
	if e.Flags&RfDepthHack != 0 {
		b.DepthRange(0, 1)
	}
	b.Color4f(1, 1, 1, 1)
	b.LoadMatrix(r.worldMV)
}

func (r *Renderer) drawSpriteModel(m *SpriteModel, v *viewState, e *Entity) {
	alpha := float32(1)
	if e.Translucent() {
		alpha = e.Alpha
	}
	b := r.ctx.Backend()

	if alpha != 1 {
		r.ctx.Enable(CapBlend)
		b.BlendFunc(BlendSrcAlpha, BlendOneMinusSrcAlpha)
	}
	r.ctx.Bind(m.TexID)
	r.ctx.TexEnv(TexEnvModulate)
	if alpha == 1 {
		r.ctx.Enable(CapAlphaTest)
	} else {
		r.ctx.Disable(CapAlphaTest)
	}

	b.Color4f(1, 1, 1, alpha)
	b.Begin(PrimQuads)

	p := e.Origin
	p.Add(vec.Scale(-m.OriginY, v.up))
	p.Add(vec.Scale(-m.OriginX, v.right))
	b.TexCoord2f(0, 1)
	b.Vertex3f(p[0], p[1], p[2])

	p = e.Origin
	p.Add(vec.Scale(m.Height-m.OriginY, v.up))
	p.Add(vec.Scale(-m.OriginX, v.right))
	b.TexCoord2f(0, 0)
	b.Vertex3f(p[0], p[1], p[2])

	p = e.Origin
	p.Add(vec.Scale(m.Height-m.OriginY, v.up))
	p.Add(vec.Scale(m.Width-m.OriginX, v.right))
	b.TexCoord2f(1, 0)
	b.Vertex3f(p[0], p[1], p[2])

	p = e.Origin
	p.Add(vec.Scale(-m.OriginY, v.up))
	p.Add(vec.Scale(m.Width-m.OriginX, v.right))
	b.TexCoord2f(1, 1)
	b.Vertex3f(p[0], p[1], p[2])

	b.End()

	r.ctx.Disable(CapAlphaTest)
	r.ctx.TexEnv(TexEnvReplace)
	if alpha != 1 {
		r.ctx.Disable(CapBlend)
	}
	b.Color4f(1, 1, 1, 1)
}

const numBeamSegs = 6

// drawBeam draws a lightning bolt as a ring of quads between the two
// entity origins. Frame carries the beam diameter, the low byte of Skin
// the palette color.
func (r *Renderer) drawBeam(v *viewState, e *Entity) {
	dir := vec.Sub(e.OldOrigin, e.Origin)
	if dir.Length() == 0 {
		return
	}
	norm := dir.Normalize()

	// pick any vector perpendicular to the beam
	perp := vec.Cross(norm, vec.Vec3{0, 0, 1})
	if perp.Length() < 1e-6 {
		perp = vec.Cross(norm, vec.Vec3{1, 0, 0})
	}
	perp = perp.Normalize()

	radius := float32(e.Frame) / 2
	if radius <= 0 {
		radius = 1
	}

	var start, end [numBeamSegs]vec.Vec3
	for i := 0; i < numBeamSegs; i++ {
		p := vec.RotatePointAroundVector(norm, perp, float32(i)*360/numBeamSegs)
		p = vec.Scale(radius, p)
		start[i] = vec.Add(e.Origin, p)
		end[i] = vec.Add(start[i], dir)
	}

	b := r.ctx.Backend()
	r.ctx.Disable(CapTexture2D)
	r.ctx.Enable(CapBlend)
	b.BlendFunc(BlendSrcAlpha, BlendOneMinusSrcAlpha)
	r.ctx.DepthMask(false)

	alpha := e.Alpha
	if alpha == 0 {
		alpha = 0.3
	}
	cr, cg, cb := palette.Color(uint8(e.Skin & 0xff))
	b.Color4f(float32(cr)/255, float32(cg)/255, float32(cb)/255, alpha)

	b.Begin(PrimTriangleStrip)
	for i := 0; i <= numBeamSegs; i++ {
		j := i % numBeamSegs
		b.Vertex3f(start[j][0], start[j][1], start[j][2])
		b.Vertex3f(end[j][0], end[j][1], end[j][2])
	}
	b.End()

	r.ctx.DepthMask(true)
	r.ctx.Disable(CapBlend)
	r.ctx.Enable(CapTexture2D)
	b.Color4f(1, 1, 1, 1)
}

// polyBlend draws the full screen damage/pickup flash over the 3D view.
func (r *Renderer) polyBlend(v *viewState) {
	if !cvars.GlPolyBlend.Bool() {
		return
	}
	if v.rd.Blend[3] == 0 {
		return
	}

	b := r.ctx.Backend()
	r.ctx.Disable(CapAlphaTest)
	r.ctx.Enable(CapBlend)
	r.ctx.Disable(CapDepthTest)
	r.ctx.Disable(CapTexture2D)

	m := glh.Identity()
	m.RotateX(-90) // put Z going up
	m.RotateZ(90)  // put Z going up
	b.LoadMatrix(m)

	b.Color4f(v.rd.Blend[0], v.rd.Blend[1], v.rd.Blend[2], v.rd.Blend[3])

	b.Begin(PrimQuads)
	b.Vertex3f(10, 100, 100)
	b.Vertex3f(10, -100, 100)
	b.Vertex3f(10, -100, -100)
	b.Vertex3f(10, 100, -100)
	b.End()

	r.ctx.Disable(CapBlend)
	r.ctx.Enable(CapTexture2D)
	r.ctx.Enable(CapAlphaTest)
	b.Color4f(1, 1, 1, 1)
}
