package lcd

import (
	"image"
	"testing"
)

var rotations = []Rotation{NoRotation, Rotate90, Rotate180, Rotate270}

func TestToNative(t *testing.T) {
	native := image.Pt(240, 320)
	tests := []struct {
		r    Rotation
		p    image.Point
		want image.Point
	}{
		{NoRotation, image.Pt(0, 0), image.Pt(0, 0)},
		{NoRotation, image.Pt(239, 319), image.Pt(239, 319)},
		{Rotate90, image.Pt(0, 0), image.Pt(239, 0)},
		{Rotate90, image.Pt(319, 239), image.Pt(0, 319)},
		{Rotate180, image.Pt(0, 0), image.Pt(239, 319)},
		{Rotate180, image.Pt(10, 20), image.Pt(229, 299)},
		{Rotate270, image.Pt(0, 0), image.Pt(0, 319)},
		{Rotate270, image.Pt(319, 239), image.Pt(239, 0)},
	}
	for _, test := range tests {
		t.Run(test.r.String(), func(it *testing.T) {
			if got := ToNative(test.r, test.p, native); got != test.want {
				it.Errorf("expected %s to map to %s, got %s", test.p, test.want, got)
			}
		})
	}
}

func TestToNativeBijection(t *testing.T) {
	native := image.Pt(24, 32)
	bounds := image.Rectangle{Max: native}
	for _, r := range rotations {
		t.Run(r.String(), func(it *testing.T) {
			size := LogicalSize(r, native)
			seen := make(map[image.Point]image.Point, size.X*size.Y)
			for y := 0; y < size.Y; y++ {
				for x := 0; x < size.X; x++ {
					p := image.Pt(x, y)
					n := ToNative(r, p, native)
					if !n.In(bounds) {
						it.Fatalf("%s maps to %s, outside of %s", p, n, bounds)
					}
					if q, dup := seen[n]; dup {
						it.Fatalf("%s and %s both map to %s", q, p, n)
					}
					seen[n] = p

					if back := ToNative(r.Inverse(), n, size); back != p {
						it.Fatalf("expected %s to map back to %s, got %s", n, p, back)
					}
				}
			}
			if len(seen) != native.X*native.Y {
				it.Errorf("expected %d native points, got %d", native.X*native.Y, len(seen))
			}
		})
	}
}

func TestLogicalSize(t *testing.T) {
	native := image.Pt(240, 320)
	for _, r := range rotations {
		want := native
		if r == Rotate90 || r == Rotate270 {
			want = image.Pt(320, 240)
		}
		if got := LogicalSize(r, native); got != want {
			t.Errorf("expected %s size %s, got %s", r, want, got)
		}
	}
}

func TestNativeWindow(t *testing.T) {
	native := image.Pt(240, 320)
	r := image.Rect(0, 0, 10, 20)
	tests := []struct {
		rot    Rotation
		lo, hi image.Point
	}{
		{NoRotation, image.Pt(0, 0), image.Pt(9, 19)},
		{Rotate90, image.Pt(220, 0), image.Pt(239, 9)},
		{Rotate180, image.Pt(230, 300), image.Pt(239, 319)},
		{Rotate270, image.Pt(0, 310), image.Pt(19, 319)},
	}
	for _, test := range tests {
		t.Run(test.rot.String(), func(it *testing.T) {
			lo, hi := nativeWindow(test.rot, r, native)
			if lo != test.lo || hi != test.hi {
				it.Errorf("expected window %s-%s, got %s-%s", test.lo, test.hi, lo, hi)
			}
		})
	}
}
