// SPDX-License-Identifier: GPL-2.0-or-later

package refgl

import (
	"math/rand"
	"testing"

	"goq2/math/vec"
)

func TestMirrorHeightIdempotence(t *testing.T) {
	// 2*h-z rounds, so a double reflection can be off by an ulp
	const e = 1e-3
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		z := rng.Float32()*4000 - 2000
		h := rng.Float32()*2000 - 1000
		got := mirrorHeight(mirrorHeight(z, h), h)
		if d := got - z; d > e || d < -e {
			t.Errorf("mirror twice across %v moved %v to %v", h, z, got)
		}
	}
	if got := mirrorHeight(100, 0); got != -100 {
		t.Errorf("mirrorHeight(100, 0) = %v, want -100", got)
	}
	if got := mirrorHeight(-20, 30); got != 80 {
		t.Errorf("mirrorHeight(-20, 30) = %v, want 80", got)
	}
}

func TestComputeFarZ(t *testing.T) {
	// 4600 - 252*2 = 4096, already a power of two, doubled
	if got := computeFarZ(); got != 8192 {
		t.Errorf("computeFarZ() = %v, want 8192", got)
	}
}

func TestSetupFrameMirrorsReflectionPass(t *testing.T) {
	b := newRecordBackend()
	r := NewRenderer(b, 640, 480)

	rd := &RefDef{
		Width: 640, Height: 480,
		FovX: 90, FovY: 74,
		ViewOrg:    vec.Vec3{10, 20, 100},
		ViewAngles: vec.Vec3{15, 30, 0},
		RdFlags:    RdfNoWorldModel,
	}

	main := &viewState{rd: rd}
	r.setupFrame(main)

	mirror := &viewState{rd: rd, refl: &reflectionPass{height: 0}}
	r.setupFrame(mirror)

	if mirror.origin[2] != -100 {
		t.Errorf("mirrored origin z = %v, want -100", mirror.origin[2])
	}
	if mirror.origin[0] != 10 || mirror.origin[1] != 20 {
		t.Errorf("mirroring moved the origin laterally: %v", mirror.origin)
	}

	// negated pitch flips the vertical component of forward
	e := float32(1e-6)
	if d := mirror.forward[2] + main.forward[2]; d > e || d < -e {
		t.Errorf("mirrored forward z = %v, main = %v, want opposite",
			mirror.forward[2], main.forward[2])
	}
	if d := mirror.forward[0] - main.forward[0]; d > e || d < -e {
		t.Errorf("mirrored forward x = %v, main = %v, want equal",
			mirror.forward[0], main.forward[0])
	}
}

func TestSetupFrameNoWorldClears(t *testing.T) {
	b := newRecordBackend()
	r := NewRenderer(b, 640, 480)

	rd := &RefDef{
		X: 40, Y: 30, Width: 320, Height: 240,
		FovX: 90, FovY: 74,
		RdFlags: RdfNoWorldModel,
	}
	mark := len(b.events)
	v := &viewState{rd: rd}
	r.setupFrame(v)

	i := b.indexAfter(mark, "enable scissortest")
	if i < 0 {
		t.Fatalf("no scissor enable for the no-world clear")
	}
	j := b.indexAfter(i, "scissor 40 210 320 240")
	if j < 0 {
		t.Fatalf("scissor rect missing or wrong, events: %v", b.events[mark:])
	}
	k := b.indexAfter(j, "clear color=true depth=true")
	if k < 0 {
		t.Errorf("no clear inside the scissored region")
	}
	if b.indexAfter(k, "disable scissortest") < 0 {
		t.Errorf("scissor test left enabled")
	}
}
