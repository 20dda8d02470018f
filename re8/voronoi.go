package re8

// Voronoi extension coder.
//
// Points outside the base codebooks are decomposed as y = 2^r·c + v where c
// is a Q3/Q4 codevector and v, identified by the Voronoi index k (eight
// values in [0, 2^r)), is a coset representative of RE8/2^r·RE8. Each
// extension order r multiplies the codebook size by 4 per dimension pair,
// hence codebook numbers n = n' + 2r with n' ∈ {3,4}.
//
// The generator matrix used for lattice coordinates is
//
//	G = | 4 0 0 0 0 0 0 0 |
//	    | 2 2 0 0 0 0 0 0 |
//	    | 2 0 2 0 0 0 0 0 |
//	    |       ...       |
//	    | 2 0 0 0 0 0 2 0 |
//	    | 1 1 1 1 1 1 1 1 |
//
// whose rows form a basis of RE8, so the back-substitution in
// latticeCoords is exact for every lattice point.

// latticeCoords returns the basis coordinates k of y, with y = k·G.
func latticeCoords(y [8]int32) [8]int32 {
	var k [8]int32
	k[7] = y[7]
	var sum int32
	for i := 1; i <= 6; i++ {
		k[i] = (y[i] - y[7]) >> 1
		sum += k[i]
	}
	k[0] = (y[0] - 2*sum - y[7]) >> 2
	return k
}

// VoronoiPoint maps a Voronoi index k of order r to its coset
// representative: the member of k·G + 2^r·RE8 lying in the (offset)
// Voronoi region of 2^r·RE8. The small offset on the first coordinate
// breaks region-boundary ties the same way at encode and decode.
func VoronoiPoint(k [8]int32, r int) [8]int32 {
	var z [8]int32
	var sk int32
	for i := 1; i <= 6; i++ {
		sk += k[i]
	}
	z[0] = 4*k[0] + 2*sk + k[7]
	for i := 1; i <= 6; i++ {
		z[i] = 2*k[i] + k[7]
	}
	z[7] = k[7]

	// (z − offset) / 2^r as a Q13 vector for the nearest-neighbor search.
	// Orders above 13 scale down instead of up; the rounding bias keeps
	// encode and decode on identical grid points either way.
	var x [8]int32
	for i := range z {
		zi := int64(z[i])
		if i == 0 {
			zi -= 2
		}
		if r <= 13 {
			x[i] = int32(zi << uint(13-r))
		} else {
			s := uint(r - 13)
			x[i] = int32((zi + int64(1)<<(s-1)) >> s)
		}
	}
	c := NearestPoint(x)

	m := int32(1) << uint(r)
	var v [8]int32
	for i := range v {
		v[i] = z[i] - m*c[i]
	}
	return v
}

// EncodeExtension decomposes an RE8 point y that classifies as an outlier:
// it returns the base codevector c with its leader ka, the Voronoi index k
// and the codebook number n = n' + 2r. The order r is minimal: the r−1
// candidate never classifies into a base codebook. Base points landing in
// Q2 are promoted to n' = 3 (Q2 ⊂ Q3).
//
// A zero n reports the degenerate give-up case (never reached for outputs
// of NearestPoint); callers treat it as the zero vector.
func EncodeExtension(y [8]int32) (c [8]int32, ka int, k [8]int32, n int) {
	coords := latticeCoords(y)

	var s2 int64
	for i := 0; i < 8; i++ {
		v := int64(y[i])
		s2 += v * v
	}
	shell := (s2 + 4) >> 3
	r := 1
	for sq := shell >> 2; sq > MaxShell; sq >>= 2 {
		r++
	}

	for iter := 0; iter < 16; iter++ {
		cc, kk, kac := tryExtension(y, coords, r)
		switch {
		case kac == KaOutlier:
			// Base point still too energetic, scale down more.
			r++
			continue
		case kac == KaZero:
			if r == 1 {
				return c, KaZero, k, 0
			}
			r--
			continue
		}
		c, k, ka = cc, kk, kac

		// Confirm minimality by probing downward.
		for r > 1 {
			cc, kk, kac = tryExtension(y, coords, r-1)
			if kac == KaOutlier || kac == KaZero {
				break
			}
			r--
			c, k, ka = cc, kk, kac
		}

		n = leaderInfos[ka].nq
		if n < 3 {
			n = 3
		}
		return c, ka, k, n + 2*r
	}
	return c, KaZero, k, 0
}

// tryExtension evaluates one candidate order: mask the coordinates to r
// bits, decode them to a coset point and classify the residual base point.
func tryExtension(y, coords [8]int32, r int) (c, k [8]int32, ka int) {
	mask := int32(1)<<uint(r) - 1
	for i := range k {
		k[i] = coords[i] & mask
	}
	v := VoronoiPoint(k, r)
	for i := range c {
		c[i] = (y[i] - v[i]) >> uint(r)
	}
	ka, _ = Classify(c)
	return c, k, ka
}

// DecodeExtension reconstructs y = 2^r·c + v from a codebook number n > 4,
// the base index and the Voronoi index. Exact integer arithmetic; the
// result is always a valid RE8 point.
func DecodeExtension(n int, index uint32, k [8]int32) [8]int32 {
	nq := 4
	if n&1 == 1 {
		nq = 3
	}
	r := (n - nq) >> 1
	if r < 1 {
		return DecodeBaseIndex(n, index)
	}
	c := DecodeBaseIndex(nq, index)
	v := VoronoiPoint(k, r)
	var y [8]int32
	for i := range y {
		y[i] = c[i]<<uint(r) + v[i]
	}
	return y
}
