// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"goq2/math/vec"
)

type Plane struct {
	Normal   vec.Vec3
	Dist     float32
	Type     byte
	SignBits uint8
}

// NewPlane derives Type and SignBits from the normal.
func NewPlane(normal vec.Vec3, dist float32) *Plane {
	p := &Plane{Normal: normal, Dist: dist}
	switch {
	case normal[0] == 1:
		p.Type = PlaneX
	case normal[1] == 1:
		p.Type = PlaneY
	case normal[2] == 1:
		p.Type = PlaneZ
	default:
		p.Type = PlaneAnyZ
	}
	for i := 0; i < 3; i++ {
		if normal[i] < 0 {
			p.SignBits |= 1 << i
		}
	}
	return p
}

// BoxOnPlaneSide returns 1 if the box is on the front side, 2 on the back
// side, 3 if it straddles the plane.
func (p *Plane) BoxOnPlaneSide(mins, maxs vec.Vec3) int {
	if p.Type < PlaneAnyX {
		if p.Dist <= mins[int(p.Type)] {
			return 1
		}
		if p.Dist >= maxs[int(p.Type)] {
			return 2
		}
		return 3
	}
	n := p.Normal
	var d1, d2 float32
	switch p.SignBits {
	case 0:
		d1 = n[0]*maxs[0] + n[1]*maxs[1] + n[2]*maxs[2]
		d2 = n[0]*mins[0] + n[1]*mins[1] + n[2]*mins[2]
	case 1:
		d1 = n[0]*mins[0] + n[1]*maxs[1] + n[2]*maxs[2]
		d2 = n[0]*maxs[0] + n[1]*mins[1] + n[2]*mins[2]
	case 2:
		d1 = n[0]*maxs[0] + n[1]*mins[1] + n[2]*maxs[2]
		d2 = n[0]*mins[0] + n[1]*maxs[1] + n[2]*mins[2]
	case 3:
		d1 = n[0]*mins[0] + n[1]*mins[1] + n[2]*maxs[2]
		d2 = n[0]*maxs[0] + n[1]*maxs[1] + n[2]*mins[2]
	case 4:
		d1 = n[0]*maxs[0] + n[1]*maxs[1] + n[2]*mins[2]
		d2 = n[0]*mins[0] + n[1]*mins[1] + n[2]*maxs[2]
	case 5:
		d1 = n[0]*mins[0] + n[1]*maxs[1] + n[2]*mins[2]
		d2 = n[0]*maxs[0] + n[1]*mins[1] + n[2]*maxs[2]
	case 6:
		d1 = n[0]*maxs[0] + n[1]*mins[1] + n[2]*mins[2]
		d2 = n[0]*mins[0] + n[1]*maxs[1] + n[2]*maxs[2]
	default:
		d1 = n[0]*mins[0] + n[1]*mins[1] + n[2]*mins[2]
		d2 = n[0]*maxs[0] + n[1]*maxs[1] + n[2]*maxs[2]
	}
	sides := 0
	if d1 >= p.Dist {
		sides = 1
	}
	if d2 < p.Dist {
		sides |= 2
	}
	return sides
}
