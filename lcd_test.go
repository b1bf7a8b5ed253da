package lcd

import (
	"errors"
	"testing"
)

func TestRotationFromID(t *testing.T) {
	for id := uint32(0); id < 4; id++ {
		r, err := RotationFromID(id)
		if err != nil {
			t.Fatal(err)
		}
		if uint32(r) != id {
			t.Errorf("expected rotation %d, got %d", id, r)
		}
	}
	for _, id := range []uint32{4, 5, 0xffffffff} {
		if _, err := RotationFromID(id); !errors.Is(err, ErrInvalidRotationID) {
			t.Errorf("expected ErrInvalidRotationID for %d, got %v", id, err)
		}
	}
}

func TestParseRotation(t *testing.T) {
	tests := []struct {
		in   string
		want Rotation
	}{
		{"", NoRotation},
		{"0", NoRotation},
		{"90", Rotate90},
		{"CW", Rotate90},
		{"flip", Rotate180},
		{"270", Rotate270},
		{"left", Rotate270},
	}
	for _, test := range tests {
		t.Run(test.in, func(it *testing.T) {
			r, err := ParseRotation(test.in)
			if err != nil {
				it.Fatal(err)
			}
			if r != test.want {
				it.Errorf("expected %s, got %s", test.want, r)
			}
		})
	}

	if _, err := ParseRotation("45"); !errors.Is(err, ErrInvalidRotationID) {
		t.Errorf("expected ErrInvalidRotationID, got %v", err)
	}
}

func TestRotationArithmetic(t *testing.T) {
	for _, r := range []Rotation{NoRotation, Rotate90, Rotate180, Rotate270} {
		if got := r.Add(4); got != r {
			t.Errorf("expected %s + 4 quarter turns to be %s, got %s", r, r, got)
		}
		if got := r.Add(1).Add(-1); got != r {
			t.Errorf("expected %s to survive a turn back and forth, got %s", r, got)
		}
		if got := r.Add(int(r.Inverse())); got != NoRotation {
			t.Errorf("expected %s plus its inverse to be 0°, got %s", r, got)
		}
	}
	if s := Rotate270.String(); s != "270°" {
		t.Errorf("expected 270°, got %s", s)
	}
	if !Rotate90.IsSwapped() || Rotate180.IsSwapped() {
		t.Error("expected only quarter turns to swap width and height")
	}
}
