package conn

import (
	"errors"
	"testing"
)

func TestBank0(t *testing.T) {
	tests := []struct {
		name  string
		first int
		mask  uint32
		set   uint32
		reset uint32
	}{
		{"GPIO0", 0, 0x0000ffff, 0x00001234, 0x0000edcb},
		{"GPIO4", 4, 0x000ffff0, 0x00012340, 0x000edcb0},
		{"GPIO16", 16, 0xffff0000, 0x12340000, 0xedcb0000},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			b, err := newBank0(test.first)
			if err != nil {
				it.Fatal(err)
			}
			if b.mask != test.mask {
				it.Errorf("expected mask %#08x, got %#08x", test.mask, b.mask)
			}

			set, reset := b.levels(0x1234)
			if set != test.set {
				it.Errorf("expected set %#08x, got %#08x", test.set, set)
			}
			if reset != test.reset {
				it.Errorf("expected reset %#08x, got %#08x", test.reset, reset)
			}
			if set&reset != 0 || set|reset != test.mask {
				it.Errorf("expected set %#08x and reset %#08x to split the mask %#08x", set, reset, test.mask)
			}

			// Lines outside of the port are ignored.
			if v := b.word(set | ^test.mask); v != 0x1234 {
				it.Errorf("expected to read back %#04x, got %#04x", 0x1234, v)
			}
		})
	}

	for _, first := range []int{-1, 17} {
		if _, err := newBank0(first); !errors.Is(err, ErrBCM283xRange) {
			t.Errorf("expected %v for GPIO%d, got %v", ErrBCM283xRange, first, err)
		}
	}
}
