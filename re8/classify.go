package re8

// Classify maps an RE8 lattice point to its absolute-leader id ka and the
// number nq of the smallest base codebook containing it (0 for the zero
// vector, otherwise 2, 3 or 4). Points outside every base codebook return
// KaOutlier with nq 0; the caller applies Voronoi extension to those.
//
// The lookup is shell number (Σyᵢ²/8) then quartic invariant (Σyᵢ⁴/8)
// within the shell's run of the leader table. Pure function over constant
// tables, idempotent by construction.
func Classify(y [8]int32) (ka, nq int) {
	var s2, s4 int64
	for i := 0; i < 8; i++ {
		v := int64(y[i])
		sq := v * v
		s2 += sq
		s4 += sq * sq
	}
	if s2 == 0 {
		return KaZero, 0
	}
	shell := (s2 + 4) >> 3
	if shell > MaxShell {
		return KaOutlier, 0
	}
	id := (s4 + 4) >> 3
	first := shellFirst[shell]
	if first < 0 {
		return KaOutlier, 0
	}
	for k := first; k < first+shellCount[shell]; k++ {
		if int64(leaderInfos[k].id) == id {
			return k, leaderInfos[k].nq
		}
	}
	return KaOutlier, 0
}
