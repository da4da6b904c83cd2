// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	"github.com/chewxy/math32"
)

type Number interface {
	int64 | float64 | float32 | int
}

func Clamp[K Number](min, val, max K) K {
	if min > val {
		return min
	} else if max < val {
		return max
	}
	return val
}

func DegToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// PowerOfTwoCeil returns the smallest power of two >= v, capped at cap.
func PowerOfTwoCeil(v, cap float32) float32 {
	p := float32(1)
	for p < v {
		p *= 2
		if p >= cap {
			break
		}
	}
	return p
}
