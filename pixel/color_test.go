package pixel

import (
	"image/color"
	"testing"
)

func TestRGB565(t *testing.T) {
	tests := []struct {
		c       RGB565
		r, g, b uint32
	}{
		{Black, 0x0000, 0x0000, 0x0000},
		{White, 0xffff, 0xffff, 0xffff},
		{Red, 0xffff, 0x0000, 0x0000},
		{Green, 0x0000, 0xffff, 0x0000},
		{Blue, 0x0000, 0x0000, 0xffff},
	}
	for _, test := range tests {
		t.Run("", func(it *testing.T) {
			r, g, b, a := test.c.RGBA()
			if r != test.r {
				it.Errorf("expected red to be %#04x, got %#04x", test.r, r)
			}
			if g != test.g {
				it.Errorf("expected green to be %#04x, got %#04x", test.g, g)
			}
			if b != test.b {
				it.Errorf("expected blue to be %#04x, got %#04x", test.b, b)
			}
			if a != 0xffff {
				it.Errorf("expected alpha to be opaque, got %#04x", a)
			}
		})
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want uint16
	}{
		{"red", color.RGBA{R: 0xff, A: 0xff}, 0xF800},
		{"green", color.RGBA{G: 0xff, A: 0xff}, 0x07E0},
		{"blue", color.RGBA{B: 0xff, A: 0xff}, 0x001F},
		{"white16", color.RGBA64{R: 0xffff, G: 0xffff, B: 0xffff, A: 0xffff}, 0xFFFF},
		{"gray", color.Gray{Y: 0x80}, 0x8410},
		{"black", color.Black, 0x0000},
		{"rgb565", Magenta, 0xF81F},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			if v := Encode(test.c); v != test.want {
				it.Errorf("expected %#04x, got %#04x", test.want, v)
			}
			if v := RGB565Model.Convert(test.c).(RGB565); v.V != test.want {
				it.Errorf("expected model to convert to %#04x, got %#04x", test.want, v.V)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for v := 0; v <= 0xffff; v += 7 {
		c := RGB565{uint16(v)}
		if e := Encode(c.RGBA8()); e != c.V {
			t.Fatalf("expected %#04x to survive 8-bit conversion, got %#04x", c.V, e)
		}
	}
}

func TestSwap(t *testing.T) {
	if v := Red.Swap(); v != Blue {
		t.Errorf("expected swapped red to be blue, got %#04x", v.V)
	}
	if v := Green.Swap(); v != Green {
		t.Errorf("expected swapped green to be green, got %#04x", v.V)
	}
}
