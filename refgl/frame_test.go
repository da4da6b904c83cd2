// SPDX-License-Identifier: GPL-2.0-or-later

package refgl

import (
	"testing"

	"goq2/bsp"
	"goq2/cvars"
	"goq2/math/vec"
)

// testWorld builds a two-leaf map split by a water plane at z=0: air with
// cluster 0 above, water with cluster 1 below. The split node carries one
// opaque surface and one translucent water surface.
func testWorld() (*bsp.Model, *bsp.Surface, *bsp.Surface) {
	plane := bsp.NewPlane(vec.Vec3{0, 0, 1}, 0)

	quad := []vec.Vec3{{-64, -64, 0}, {64, -64, 0}, {64, 64, 0}, {-64, 64, 0}}
	uv := [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	water := &bsp.Surface{
		Plane:   plane,
		TexInfo: &bsp.TexInfo{Name: "water", Flags: bsp.SURF_TRANS66 | bsp.SURF_WARP},
		Polys:   []bsp.Poly{{Verts: quad, TexCoords: uv}},
	}
	floor := &bsp.Surface{
		Plane:   plane,
		TexInfo: &bsp.TexInfo{Name: "floor"},
		Polys:   []bsp.Poly{{Verts: quad, TexCoords: uv}},
	}

	mins := vec.Vec3{-128, -128, -128}
	maxs := vec.Vec3{128, 128, 128}
	surfs := []*bsp.Surface{floor, water}

	air := bsp.NewLeaf(0, 0, 0, vec.Vec3{-128, -128, 0}, maxs, surfs)
	below := bsp.NewLeaf(bsp.CONTENTS_WATER, 1, 0, mins, vec.Vec3{128, 128, 0}, surfs)

	root := bsp.NewNode(plane, mins, maxs, surfs)
	root.Children[0] = air
	root.Children[1] = below

	return bsp.NewModel("testmap", root, []*bsp.MLeaf{air, below}, 2), water, floor
}

// downRefDef is a camera at (0,0,100) looking straight down at the water.
func downRefDef() *RefDef {
	return &RefDef{
		Width: 640, Height: 480,
		FovX: 90, FovY: 74,
		ViewOrg:    vec.Vec3{0, 0, 100},
		ViewAngles: vec.Vec3{90, 0, 0},
	}
}

func TestMissingWorldIsFatal(t *testing.T) {
	b := newRecordBackend()
	r := NewRenderer(b, 640, 480)

	if err := r.RenderFrame(downRefDef()); err == nil {
		t.Errorf("no world model and no flag: want an error")
	}
}

func TestNoWorldModelFrame(t *testing.T) {
	b := newRecordBackend()
	r := NewRenderer(b, 640, 480)

	rd := downRefDef()
	rd.RdFlags = RdfNoWorldModel

	mark := len(b.events)
	if err := r.RenderFrame(rd); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	events := b.events[mark:]

	if b.indexAfter(mark, "enable scissortest") < 0 {
		t.Errorf("no scissored clear for the no-world frame")
	}
	for _, e := range events {
		if e == "begin polygon" {
			t.Errorf("world geometry drawn without a world model")
			break
		}
		if e == "copytex 0 16 0 0 512 480" {
			t.Errorf("reflection capture ran without a world model")
			break
		}
	}
}

func TestDrawPassOrder(t *testing.T) {
	b := newRecordBackend()
	r := NewRenderer(b, 640, 480)
	world, _, _ := testWorld()
	r.SetWorld(world)

	rd := downRefDef()
	rd.Entities = []Entity{
		{Origin: vec.Vec3{10, 0, 20}},
		{Origin: vec.Vec3{-10, 0, 20}, Flags: RfTranslucent, Alpha: 0.5},
	}
	rd.Particles = []Particle{
		{Origin: vec.Vec3{0, 5, 30}, Color: 10, Alpha: 1},
		{Origin: vec.Vec3{0, -5, 30}, Color: 10, Alpha: 1, Type: ParticleFire},
	}
	rd.Blend = [4]float32{1, 0, 0, 0.3}

	mark := len(b.events)
	if err := r.RenderFrame(rd); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	iWorld := b.indexAfter(mark, "begin polygon")
	if iWorld < 0 {
		t.Fatalf("world surface never drawn")
	}
	iOpaque := b.indexAfter(iWorld, "begin trifan")
	if iOpaque < 0 {
		t.Fatalf("opaque entity never drawn")
	}
	iMaskOff := b.indexAfter(iOpaque, "depthmask false")
	if iMaskOff < 0 {
		t.Fatalf("depth writes not turned off for translucent entities")
	}
	iTrans := b.indexAfter(iMaskOff, "begin trifan")
	if iTrans < 0 {
		t.Fatalf("translucent entity never drawn")
	}
	iMaskOn := b.indexAfter(iTrans, "depthmask true")
	if iMaskOn < 0 {
		t.Fatalf("depth writes not restored")
	}
	iParticles := b.indexAfter(iMaskOn, "begin quads")
	if iParticles < 0 {
		t.Fatalf("particles never drawn")
	}
	iAlpha := b.indexAfter(iParticles, "begin polygon")
	if iAlpha < 0 {
		t.Fatalf("alpha surfaces never drawn")
	}
	iBlend := b.indexAfter(iAlpha, "begin quads")
	if iBlend < 0 {
		t.Fatalf("screen blend never drawn")
	}
}

func TestReflectionCapture(t *testing.T) {
	b := newRecordBackend()
	r := NewRenderer(b, 640, 480)
	world, _, _ := testWorld()
	r.SetWorld(world)
	r.refl.sched = newEveryNth(1) // discover on the first frame

	mark := len(b.events)
	if err := r.RenderFrame(downRefDef()); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	if len(r.refl.targets) != 1 {
		t.Fatalf("water heights discovered = %d, want 1", len(r.refl.targets))
	}
	if h := r.refl.targets[0].height; h != 0 {
		t.Errorf("water height = %v, want 0", h)
	}
	if fov := r.refl.targets[0].capturedFov; fov != 74 {
		t.Errorf("captured fov = %v, want 74", fov)
	}

	// the mirror pass renders at texture size with the clip plane on, and
	// the plane is gone before the capture copy
	iView := b.indexAfter(mark, "viewport 0 0 512 480")
	if iView < 0 {
		t.Fatalf("mirror pass did not use the texture viewport")
	}
	iClipOn := b.indexAfter(mark, "enable clip0")
	if iClipOn < 0 {
		t.Fatalf("clip plane never enabled")
	}
	iEqn := b.indexAfter(iClipOn, "clipplane")
	if iEqn < 0 {
		t.Fatalf("clip plane equation never set")
	}
	iClipOff := b.indexAfter(iEqn, "disable clip0")
	if iClipOff < 0 {
		t.Fatalf("clip plane never disabled")
	}
	iCopy := b.indexAfter(iClipOff, "copytex 0 16 0 0 512 480")
	if iCopy < 0 {
		t.Fatalf("reflection capture copy missing")
	}
	if n := b.count("copytex"); n != 1 {
		t.Errorf("capture copies = %d, want 1", n)
	}
	if b.indexAfter(iCopy, "enable clip0") >= 0 {
		t.Errorf("clip plane re-enabled during the main view")
	}

	// main view samples the mirror through the projective texture matrix
	if b.indexAfter(iCopy, "texcoord3") < 0 {
		t.Errorf("water surface did not project the mirror texture")
	}
}

func TestReflectionSkippedUnderwater(t *testing.T) {
	b := newRecordBackend()
	r := NewRenderer(b, 640, 480)
	world, _, _ := testWorld()
	r.SetWorld(world)
	r.refl.sched = newEveryNth(1)

	rd := downRefDef()
	rd.ViewOrg = vec.Vec3{0, 0, -50}
	rd.RdFlags = RdfUnderwater

	mark := len(b.events)
	if err := r.RenderFrame(rd); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if len(r.refl.targets) != 0 {
		t.Errorf("reflections discovered while underwater")
	}
	if b.indexAfter(mark, "copytex") >= 0 {
		t.Errorf("reflection captured while underwater")
	}
}

func TestNoRefreshSkipsDrawing(t *testing.T) {
	cvars.RNoRefresh.SetValue(1)
	defer cvars.RNoRefresh.SetValue(0)

	b := newRecordBackend()
	r := NewRenderer(b, 640, 480)
	world, _, _ := testWorld()
	r.SetWorld(world)

	mark := len(b.events)
	if err := r.RenderFrame(downRefDef()); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	for _, e := range b.events[mark:] {
		if len(e) >= 5 && e[:5] == "begin" {
			t.Errorf("geometry drawn with r_norefresh set: %v", e)
			break
		}
	}
}

func TestSpeedCountersResetOnlyWhenCounting(t *testing.T) {
	b := newRecordBackend()
	r := NewRenderer(b, 640, 480)
	world, _, _ := testWorld()
	r.SetWorld(world)

	rd := downRefDef()
	if err := r.RenderFrame(rd); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	first := r.counters.brushPolys
	if first == 0 {
		t.Fatalf("no world polys counted")
	}

	// r_speeds off: counters keep accumulating across frames
	if err := r.RenderFrame(rd); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if r.counters.brushPolys != 2*first {
		t.Errorf("counters reset without r_speeds: %d, want %d",
			r.counters.brushPolys, 2*first)
	}

	cvars.RSpeeds.SetValue(1)
	defer cvars.RSpeeds.SetValue(0)
	if err := r.RenderFrame(rd); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if r.counters.brushPolys != first {
		t.Errorf("r_speeds frame counted %d polys, want %d",
			r.counters.brushPolys, first)
	}
}

func TestLightLevelFeedback(t *testing.T) {
	b := newRecordBackend()
	r := NewRenderer(b, 640, 480)
	world, _, _ := testWorld()
	r.SetWorld(world)

	cvars.RLightLevel.SetValue(0)
	if err := r.RenderFrame(downRefDef()); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	// flat ambient of 1 scaled by 150
	if got := cvars.RLightLevel.Value(); got != 150 {
		t.Errorf("r_lightlevel = %v, want 150", got)
	}

	rd := downRefDef()
	rd.DLights = []DynamicLight{{
		Origin:    vec.Vec3{0, 0, 100},
		Color:     vec.Vec3{1, 1, 1},
		Intensity: 512,
	}}
	if err := r.RenderFrame(rd); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	// ambient 1 plus (512-0)/256 from the light on top of the camera
	if got := cvars.RLightLevel.Value(); got != 150*3 {
		t.Errorf("r_lightlevel with dlight = %v, want %v", got, 150*3)
	}
}
