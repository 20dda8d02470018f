package goavq

import "math/bits"

// Energy-based bit estimation and the log-domain gain search.
//
// Per-subvector bit costs are estimated as 5·log2(energy)/2 in Q3 and a
// global offset (a gain in the log domain) is bisected so the estimated
// total fits the bit budget. The estimate is deliberately cheaper than an
// exact bit count, so the multiplexer re-checks true costs and resolves
// the occasional overshoot; the correction only ever runs in that
// direction.

// log2Q7 returns 128·log2(x) for x > 0, integer part from the bit length
// and a second-order correction on the 7-bit fraction.
func log2Q7(x int64) int32 {
	il := 63 - bits.LeadingZeros64(uint64(x))
	var frac int32
	if il >= 7 {
		frac = int32(x>>(uint(il)-7)) & 127
	} else {
		frac = int32(x<<(7-uint(il))) & 127
	}
	return int32(il)<<7 + frac + int32((int64(frac)*int64(128-frac)*179)>>16)
}

// bitEstimate returns the Q3 bit-cost estimate for a subvector of the
// given energy (Σxᵢ²).
func bitEstimate(energy int64) int32 {
	if energy <= 0 {
		return 0
	}
	return (5*log2Q7(energy) + 16) >> 5
}

// gainOffset bisects the log-domain offset subtracted from every
// subvector's estimate. Ten iterations, geometric steps from 128 estimate
// bits down; the offset is kept unchanged only when the candidate total
// fits the target, otherwise it grows by the step. The result is the
// largest offset still (just) infeasible at the search resolution, which
// keeps the estimator on the optimistic side — the multiplexer enforces
// the hard budget.
func gainOffset(ests []int32, budget int) int32 {
	target := int32(budget) << 3
	var offset int32
	fac := int32(1024)
	for i := 0; i < 10; i++ {
		cand := offset + fac
		var total int32
		for _, est := range ests {
			if t := est - cand; t > 0 {
				total += t
			}
		}
		if total > target {
			offset = cand
		}
		fac >>= 1
	}
	return offset
}

// pow2m8Q14[i] = 2^(−i/8) in Q14, the fractional part of the inverse-gain
// exponential.
var pow2m8Q14 = [8]int32{16384, 15024, 13777, 12634, 11585, 10624, 9742, 8933}

// invGainQ14 converts the Q3 estimate offset to a reciprocal gain. Five
// estimate bits correspond to one amplitude doubling, so the exponent in
// eighths is offset/5; the return values satisfy
// x/gain in Q13 = (x·q14) >> shift.
func invGainQ14(offset int32) (q14 int32, shift uint) {
	t := offset / 5
	return pow2m8Q14[t&7], uint(1 + t>>3)
}

// scaleQ13 applies the reciprocal gain to one coefficient, rounding to
// nearest.
func scaleQ13(v, q14 int32, shift uint) int32 {
	p := int64(v) * int64(q14)
	return int32((p + int64(1)<<(shift-1)) >> shift)
}
