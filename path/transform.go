package path

// Affine is a 2D affine transformation:
//
//	[A B Tx]
//	[C D Ty]
//	[0 0 1 ]
type Affine struct {
	A, B, C, D float32
	Tx, Ty     float32
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, D: 1}
}

// Scale returns a scaling transform.
func Scale(sx, sy float32) Affine {
	return Affine{A: sx, D: sy}
}

// Translate returns a translation.
func Translate(tx, ty float32) Affine {
	return Affine{A: 1, D: 1, Tx: tx, Ty: ty}
}

// Shear returns a horizontal shear: x' = x + k*y. A positive k leans
// glyphs to the right in y-up coordinates, which is how synthetic
// obliques are produced.
func Shear(k float32) Affine {
	return Affine{A: 1, B: k, D: 1}
}

// Apply transforms a point.
func (m Affine) Apply(pt Point) Point {
	return Point{
		X: m.A*pt.X + m.B*pt.Y + m.Tx,
		Y: m.C*pt.X + m.D*pt.Y + m.Ty,
	}
}

// Then returns the transform that applies m first and then n.
func (m Affine) Then(n Affine) Affine {
	return Affine{
		A:  n.A*m.A + n.B*m.C,
		B:  n.A*m.B + n.B*m.D,
		C:  n.C*m.A + n.D*m.C,
		D:  n.C*m.B + n.D*m.D,
		Tx: n.A*m.Tx + n.B*m.Ty + n.Tx,
		Ty: n.C*m.Tx + n.D*m.Ty + n.Ty,
	}
}

// Transform applies m to every point of the path in place.
func (p *Path) Transform(m Affine) {
	for i, pt := range p.points {
		p.points[i] = m.Apply(pt)
	}
}
