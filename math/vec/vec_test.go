package vec

import (
	"testing"

	"github.com/chewxy/math32"
)

var (
	NULL = Vec3{}
)

func TestLength(t *testing.T) {
	if NULL.Length() != 0 {
		t.Errorf("Null vector has not 0 length")
	}
	v := Vec3{2, 2, 1}
	if v.Length() != 3 {
		t.Errorf("%v Length is not 3", v)
	}
	v = Vec3{1, 2, 2}
	if v.Length() != 3 {
		t.Errorf("%v Length is not 3", v)
	}
}

func TestAdd(t *testing.T) {
	v := Vec3{1, 2, 3}
	got := Add(NULL, v)
	if v != got {
		t.Errorf("Adding a null vector changed the vector")
	}
	got = Add(v, v)
	want := Vec3{2, 4, 6}
	if got != want {
		t.Errorf("Add(%v,%v) = %v want %v", v, v, got, want)
	}
}

func TestCross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := Cross(x, y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Cross(%v,%v) = %v want %v", x, y, got, want)
	}
}

func TestAngleVectorsIdentity(t *testing.T) {
	f, r, u := AngleVectors(Vec3{0, 0, 0})
	if f != (Vec3{1, 0, 0}) {
		t.Errorf("forward = %v", f)
	}
	if r != (Vec3{0, -1, 0}) {
		t.Errorf("right = %v", r)
	}
	if u != (Vec3{0, 0, 1}) {
		t.Errorf("up = %v", u)
	}
}

func TestAngleVectorsOrthonormal(t *testing.T) {
	angles := []Vec3{
		{30, 0, 0},
		{0, 45, 0},
		{0, 0, 60},
		{-15, 120, 10},
	}
	const e = 1e-6
	for _, a := range angles {
		f, r, u := AngleVectors(a)
		if d := math32.Abs(Dot(f, r)); d > e {
			t.Errorf("angles %v: forward.right = %v", a, d)
		}
		if d := math32.Abs(Dot(f, u)); d > e {
			t.Errorf("angles %v: forward.up = %v", a, d)
		}
		if d := math32.Abs(f.Length() - 1); d > e {
			t.Errorf("angles %v: |forward| = %v", a, f.Length())
		}
	}
}

func TestRotatePointAroundVector(t *testing.T) {
	up := Vec3{0, 0, 1}
	p := Vec3{1, 0, 0}
	got := RotatePointAroundVector(up, p, 90)
	want := Vec3{0, 1, 0}
	const e = 1e-6
	for i := 0; i < 3; i++ {
		if math32.Abs(got[i]-want[i]) > e {
			t.Fatalf("rotate %v around %v by 90 = %v, want %v", p, up, got, want)
		}
	}
	// a full turn is the identity
	got = RotatePointAroundVector(up, p, 360)
	for i := 0; i < 3; i++ {
		if math32.Abs(got[i]-p[i]) > e {
			t.Fatalf("rotate by 360 = %v, want %v", got, p)
		}
	}
}
