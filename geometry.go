package lcd

import "image"

// ToNative maps logical point p under rotation r into the native coordinates of
// a panel of the given native size.
func ToNative(r Rotation, p, native image.Point) image.Point {
	switch r {
	case Rotate90:
		return image.Pt(native.X-1-p.Y, p.X)
	case Rotate180:
		return image.Pt(native.X-1-p.X, native.Y-1-p.Y)
	case Rotate270:
		return image.Pt(p.Y, native.Y-1-p.X)
	default:
		return p
	}
}

// LogicalSize is the size of a native panel as seen under rotation r.
func LogicalSize(r Rotation, native image.Point) image.Point {
	if r.IsSwapped() {
		return image.Pt(native.Y, native.X)
	}
	return native
}

// nativeWindow maps the logical rectangle r into an inclusive native window.
// Corners are mapped on their own and normalized, rotation swaps their order.
func nativeWindow(rot Rotation, r image.Rectangle, native image.Point) (lo, hi image.Point) {
	a := ToNative(rot, r.Min, native)
	b := ToNative(rot, r.Max.Sub(image.Pt(1, 1)), native)
	lo = image.Pt(min(a.X, b.X), min(a.Y, b.Y))
	hi = image.Pt(max(a.X, b.X), max(a.Y, b.Y))
	return
}
