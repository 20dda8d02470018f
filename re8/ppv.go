// Package re8 implements the RE8 lattice core of the algebraic vector
// quantizer used by the G.722 superwideband extension layers: the
// nearest-neighbor search, the absolute-leader classifier, the base-index
// (rank) coder for the Q2/Q3/Q4 codebooks and the Voronoi extension coder
// for points beyond them.
//
// RE8 = 2·D8 ∪ (2·D8 + 1): a point belongs to the lattice iff all of its
// coordinates are even, or all odd, with the coordinate sum divisible by 4.
// All arithmetic is exact integer arithmetic; encoder and decoder derived
// from this package agree bit-for-bit on every stream.
//
// Reference: ITU-T G.722 Annex B, AVQ subclauses (shared with G.718 and
// G.729.1 annexes).
package re8

// NearestPoint returns the RE8 lattice point closest to x, where x holds
// Q13 fixed-point values (8192 = 1.0) and the result holds plain integer
// lattice coordinates.
//
// The search decodes the two cosets separately with the Wagner rule: round
// every coordinate to the nearest even integer and, when the coordinate sum
// misses the mod-4 constraint, re-round the coordinate with the largest
// rounding error the other way. The 2·D8 candidate wins ties.
func NearestPoint(x [8]int32) [8]int32 {
	y0 := nearest2D8(x)

	var xs [8]int32
	for i := range x {
		xs[i] = x[i] - 8192
	}
	y1 := nearest2D8(xs)
	for i := range y1 {
		y1[i]++
	}

	if dist2Q13(x, y1) < dist2Q13(x, y0) {
		return y1
	}
	return y0
}

// nearest2D8 rounds a Q13 vector to the nearest point of 2·D8.
func nearest2D8(x [8]int32) [8]int32 {
	var y [8]int32
	var sum int32
	worst := 0
	var worstErr int64
	worstAbs := int64(-1)
	for i := 0; i < 8; i++ {
		// Nearest even integer, halves rounding up.
		y[i] = 2 * ((x[i] + 8192) >> 14)
		sum += y[i]
		e := int64(x[i]) - int64(y[i])<<13
		ae := e
		if ae < 0 {
			ae = -ae
		}
		if ae > worstAbs {
			worstAbs = ae
			worstErr = e
			worst = i
		}
	}
	if sum&3 != 0 {
		// Sum is ≡2 (mod 4); moving one coordinate by ±2 toward its
		// rounding error restores the constraint at minimal cost.
		if worstErr >= 0 {
			y[worst] += 2
		} else {
			y[worst] -= 2
		}
	}
	return y
}

func dist2Q13(x [8]int32, y [8]int32) int64 {
	var d int64
	for i := 0; i < 8; i++ {
		e := int64(x[i]) - int64(y[i])<<13
		d += e * e
	}
	return d
}
