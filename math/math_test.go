// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	"testing"
)

func TestClampMin(t *testing.T) {
	v := Clamp(1, 0, 10)
	if v != 1 {
		t.Errorf("Clamp(1,0,10) = %v", v)
	}
}

func TestClampMax(t *testing.T) {
	v := Clamp(1, 100, 10)
	if v != 10 {
		t.Errorf("Clamp(1,100,10) = %v", v)
	}
}

func TestClampVal(t *testing.T) {
	v := Clamp(1, 5, 10)
	if v != 5 {
		t.Errorf("Clamp(1,5,10) = %v", v)
	}
}

func TestPowerOfTwoCeil(t *testing.T) {
	cases := []struct {
		in, cap, want float32
	}{
		{1, 65536, 1},
		{2, 65536, 2},
		{3, 65536, 4},
		{4600, 65536, 8192},
		{100000, 65536, 65536},
	}
	for _, c := range cases {
		if got := PowerOfTwoCeil(c.in, c.cap); got != c.want {
			t.Errorf("PowerOfTwoCeil(%v,%v) = %v, want %v", c.in, c.cap, got, c.want)
		}
	}
}
