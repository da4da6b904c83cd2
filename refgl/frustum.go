// SPDX-License-Identifier: GPL-2.0-or-later

package refgl

import (
	"goq2/cvars"
	"goq2/math/vec"
)

type fPlane struct {
	signBits uint8 // caching of plane side tests
	normal   vec.Vec3
	dist     float32
}

func (p *fPlane) updateSignBits() {
	p.signBits = 0
	if p.normal[0] < 0 {
		p.signBits |= 1 << 0
	}
	if p.normal[1] < 0 {
		p.signBits |= 1 << 1
	}
	if p.normal[2] < 0 {
		p.signBits |= 1 << 2
	}
}

// set derives the plane by rotating forward around axis and anchors it at
// the view origin.
func (p *fPlane) set(forward, axis, org vec.Vec3, angle float32) {
	p.normal = vec.RotatePointAroundVector(axis, forward, angle)
	p.dist = vec.Dot(org, p.normal)
	p.updateSignBits()
}

// setFrustum computes the 4 inward frustum planes. The rotation angle is
// ±(90 - fov/2), not ±fov/2: horizontal and vertical fov differ.
func (v *viewState) setFrustum() {
	v.frustum[0].set(v.forward, v.up, v.origin, -(90 - v.fovX/2))  // left
	v.frustum[1].set(v.forward, v.up, v.origin, 90-v.fovX/2)       // right
	v.frustum[2].set(v.forward, v.right, v.origin, 90-v.fovY/2)    // top
	v.frustum[3].set(v.forward, v.right, v.origin, -(90 - v.fovY/2)) // bottom
}

// cullBox returns true if the box is completely outside the frustum.
func (v *viewState) cullBox(mins, maxs vec.Vec3) bool {
	if cvars.RNoCull.Bool() {
		return false
	}
	for _, f := range v.frustum {
		switch f.signBits {
		case 0:
			if f.normal[0]*maxs[0]+f.normal[1]*maxs[1]+f.normal[2]*maxs[2] < f.dist {
				return true
			}
		case 1:
			if f.normal[0]*mins[0]+f.normal[1]*maxs[1]+f.normal[2]*maxs[2] < f.dist {
				return true
			}
		case 2:
			if f.normal[0]*maxs[0]+f.normal[1]*mins[1]+f.normal[2]*maxs[2] < f.dist {
				return true
			}
		case 3:
			if f.normal[0]*mins[0]+f.normal[1]*mins[1]+f.normal[2]*maxs[2] < f.dist {
				return true
			}
		case 4:
			if f.normal[0]*maxs[0]+f.normal[1]*maxs[1]+f.normal[2]*mins[2] < f.dist {
				return true
			}
		case 5:
			if f.normal[0]*mins[0]+f.normal[1]*maxs[1]+f.normal[2]*mins[2] < f.dist {
				return true
			}
		case 6:
			if f.normal[0]*maxs[0]+f.normal[1]*mins[1]+f.normal[2]*mins[2] < f.dist {
				return true
			}
		case 7:
			if f.normal[0]*mins[0]+f.normal[1]*mins[1]+f.normal[2]*mins[2] < f.dist {
				return true
			}
		}
	}
	return false
}
