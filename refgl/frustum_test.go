// SPDX-License-Identifier: GPL-2.0-or-later

package refgl

import (
	"math/rand"
	"testing"

	"goq2/math/vec"
)

// bruteCull is the reference test: a box is outside a plane iff every one
// of its 8 corners is behind it.
func bruteCull(frustum *[4]fPlane, mins, maxs vec.Vec3) bool {
	for _, f := range frustum {
		allBehind := true
		for c := 0; c < 8; c++ {
			p := vec.Vec3{mins[0], mins[1], mins[2]}
			if c&1 != 0 {
				p[0] = maxs[0]
			}
			if c&2 != 0 {
				p[1] = maxs[1]
			}
			if c&4 != 0 {
				p[2] = maxs[2]
			}
			if vec.Dot(p, f.normal) >= f.dist {
				allBehind = false
				break
			}
		}
		if allBehind {
			return true
		}
	}
	return false
}

func randomView(rng *rand.Rand) *viewState {
	v := &viewState{
		origin: vec.Vec3{
			rng.Float32()*2000 - 1000,
			rng.Float32()*2000 - 1000,
			rng.Float32()*2000 - 1000,
		},
		fovX: 60 + rng.Float32()*60,
		fovY: 50 + rng.Float32()*50,
	}
	angles := vec.Vec3{
		rng.Float32()*180 - 90,
		rng.Float32() * 360,
		rng.Float32()*90 - 45,
	}
	v.forward, v.right, v.up = vec.AngleVectors(angles)
	v.setFrustum()
	return v
}

func TestCullBoxMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1500; i++ {
		v := randomView(rng)
		center := vec.Vec3{
			rng.Float32()*4000 - 2000,
			rng.Float32()*4000 - 2000,
			rng.Float32()*4000 - 2000,
		}
		size := vec.Vec3{
			rng.Float32() * 500,
			rng.Float32() * 500,
			rng.Float32() * 500,
		}
		mins := vec.Sub(center, size)
		maxs := vec.Add(center, size)

		got := v.cullBox(mins, maxs)
		want := bruteCull(&v.frustum, mins, maxs)
		if got != want {
			t.Errorf("case %d: cullBox(%v, %v) = %v, brute force = %v",
				i, mins, maxs, got, want)
		}
	}
}

func TestCullBoxAroundOrigin(t *testing.T) {
	v := &viewState{
		origin: vec.Vec3{0, 0, 0},
		fovX:   90,
		fovY:   74,
	}
	v.forward, v.right, v.up = vec.AngleVectors(vec.Vec3{0, 0, 0})
	v.setFrustum()

	// box straight ahead on +X
	if v.cullBox(vec.Vec3{100, -10, -10}, vec.Vec3{120, 10, 10}) {
		t.Errorf("box in front of the camera was culled")
	}
	// box behind the camera
	if !v.cullBox(vec.Vec3{-120, -10, -10}, vec.Vec3{-100, 10, 10}) {
		t.Errorf("box behind the camera was not culled")
	}
	// box containing the camera is never culled
	if v.cullBox(vec.Vec3{-50, -50, -50}, vec.Vec3{50, 50, 50}) {
		t.Errorf("box containing the camera was culled")
	}
	// box far off to the side
	if !v.cullBox(vec.Vec3{10, 5000, -10}, vec.Vec3{30, 5100, 10}) {
		t.Errorf("box far off axis was not culled")
	}
}

func TestFrustumSignBits(t *testing.T) {
	p := fPlane{normal: vec.Vec3{-1, 2, -3}}
	p.updateSignBits()
	if p.signBits != 1|4 {
		t.Errorf("signBits = %d, want %d", p.signBits, 1|4)
	}
	p.normal = vec.Vec3{1, 1, 1}
	p.updateSignBits()
	if p.signBits != 0 {
		t.Errorf("signBits = %d, want 0", p.signBits)
	}
}
