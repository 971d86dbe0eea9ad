package math

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	n := Vec2{3, 4}.Normalize()
	if l := n.Length(); math.Abs(l-1) > eps {
		t.Errorf("Vec2.Normalize().Length() = %v, want 1", l)
	}
	if z := (Vec2{}).Normalize(); z != (Vec2{}) {
		t.Errorf("zero Vec2 normalized to %v", z)
	}
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Distance(t *testing.T) {
	got := Vec3{1, 2, 3}.Distance(Vec3{1, 2, 5})
	if got != 2 {
		t.Errorf("Vec3.Distance() = %v, want 2", got)
	}
}

func TestVec3Lerp(t *testing.T) {
	got := Vec3{0, 0, 0}.Lerp(Vec3{2, 4, 6}, 0.5)
	if !got.ApproxEqual(Vec3{1, 2, 3}, eps) {
		t.Errorf("Vec3.Lerp() = %v, want (1,2,3)", got)
	}
}

func TestRotateAbout(t *testing.T) {
	center := Vec3{1, 1, 5}

	tests := []struct {
		name string
		p    Vec3
		deg  float64
		want Vec3
	}{
		{"quarter turn", Vec3{2, 1, 7}, 90, Vec3{1, 2, 7}},
		{"half turn", Vec3{2, 1, 7}, 180, Vec3{0, 1, 7}},
		{"negative turn", Vec3{2, 1, 7}, -90, Vec3{1, 0, 7}},
		{"no turn", Vec3{3, 3, 3}, 0, Vec3{3, 3, 3}},
		{"center is fixed", center, 45, center},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RotateAbout(tt.p, center, tt.deg)
			if !got.ApproxEqual(tt.want, 1e-9) {
				t.Errorf("RotateAbout(%v, %v) = %v, want %v", tt.p, tt.deg, got, tt.want)
			}
		})
	}
}

func TestRotateAboutKeepsRadius(t *testing.T) {
	p := Vec3{0.29, 0, 0}
	for deg := 0.0; deg < 360; deg += 20 {
		got := RotateAbout(p, Vec3{}, deg)
		if r := got.XY().Length(); math.Abs(r-0.29) > 1e-9 {
			t.Errorf("radius at %v deg = %v, want 0.29", deg, r)
		}
	}
}

func TestNormalizeDeg(t *testing.T) {
	cases := map[float64]float64{0: 0, 370: 10, -90: 270, 720: 0}
	for in, want := range cases {
		if got := NormalizeDeg(in); got != want {
			t.Errorf("NormalizeDeg(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		v    float64
		want float64
	}{
		{0.123456, 0.1234},
		{-0.123456, -0.1234},
		{0.5, 0.5},
		{2.99999, 2.9999},
	}
	for _, tt := range tests {
		if got := Truncate(tt.v, 4); math.Abs(got-tt.want) > eps {
			t.Errorf("Truncate(%v, 4) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestQuadBezier(t *testing.T) {
	p0 := Vec3{0, 0, 0}
	p1 := Vec3{1, 0, 2}
	p2 := Vec3{2, 0, 0}

	if got := QuadBezier(p0, p1, p2, 0); got != p0 {
		t.Errorf("QuadBezier(t=0) = %v, want %v", got, p0)
	}
	if got := QuadBezier(p0, p1, p2, 1); !got.ApproxEqual(p2, eps) {
		t.Errorf("QuadBezier(t=1) = %v, want %v", got, p2)
	}
	if got := QuadBezier(p0, p1, p2, 0.5); !got.ApproxEqual(Vec3{1, 0, 1}, eps) {
		t.Errorf("QuadBezier(t=0.5) = %v, want (1,0,1)", got)
	}
}
