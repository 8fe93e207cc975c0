package math3d

// BaryCoords returns the barycentric weights (u, v, w) of p with respect to
// the triangle a, b, c, so that p = u*a + v*b + w*c and u+v+w = 1.
//
// A degenerate triangle (zero signed area) yields (-1, -1, -1).
func BaryCoords(a, b, c, p Vec2) (u, v, w float64) {
	ca, cb, cp := a.Sub(c), b.Sub(c), p.Sub(c)
	denom := ca.Cross(cb)
	if denom == 0 {
		return -1, -1, -1
	}

	u = cp.Cross(cb) / denom
	v = ca.Cross(cp) / denom
	w = 1 - u - v
	return u, v, w
}

// Inside reports whether weights returned by BaryCoords place the point
// inside (or on the edge of) the triangle.
func Inside(u, v, w float64) bool {
	return u >= 0 && v >= 0 && w >= 0
}
