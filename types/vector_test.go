package types

import (
	"math"
	"testing"
)

func TestMinMaxVec3(t *testing.T) {
	v1 := XYZ(1, -2, 3)
	v2 := XYZ(-1, 2, 3)

	expMin := XYZ(-1, -2, 3)
	if min := MinVec3(v1, v2); min != expMin {
		t.Fatalf("expected min to be %v; got %v", expMin, min)
	}

	expMax := XYZ(1, 2, 3)
	if max := MaxVec3(v1, v2); max != expMax {
		t.Fatalf("expected max to be %v; got %v", expMax, max)
	}
}

func TestHasNaN(t *testing.T) {
	if XYZ(0, 1, 2).HasNaN() {
		t.Fatal("expected vector without NaN components")
	}

	nan := float32(math.NaN())
	if !XYZ(0, nan, 2).HasNaN() {
		t.Fatal("expected vector with a NaN component")
	}
}

func TestParseVec3(t *testing.T) {
	type spec struct {
		in     string
		exp    Vec3
		expErr bool
	}
	specs := []spec{
		{"1,2,3", XYZ(1, 2, 3), false},
		{"1.5, -2 ,0", XYZ(1.5, -2, 0), false},
		{"0 0 1", XYZ(0, 0, 1), false},
		{"1,2", Vec3{}, true},
		{"1,2,foo", Vec3{}, true},
	}

	for index, s := range specs {
		v, err := ParseVec3(s.in)
		if s.expErr {
			if err == nil {
				t.Fatalf("[spec %d] expected to get an error", index)
			}
			continue
		}
		if err != nil {
			t.Fatalf("[spec %d] %v", index, err)
		}
		if v != s.exp {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.exp, v)
		}
	}
}
