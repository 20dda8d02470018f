package goavq

import (
	"sort"

	"github.com/thesyncim/goavq/bitstream"
)

// Multiplexer: serializes a block of quantized subvectors under a hard bit
// budget.
//
// Stream layout, per subvector in original order: a unary codebook prefix
// of N−1 "1" bits with a "0" terminator (the terminator is implied, and
// omitted, once the remaining budget exactly fits the fixed fields), the
// base index of 4·n' bits (n' = N for N ≤ 4, else 3 for odd N, 4 for
// even), then for extensions the 8 Voronoi sub-indices of r bits each in
// coordinate order. Unused trailing bits are zero-padded. The identity
// 4·n' + 8r = 4N makes every nonzero subvector cost exactly 5N−1 bits
// plus its terminator.

// streamBits returns the exact number of bits the block layout consumes
// for the given per-subvector codebook numbers under the budget,
// including the terminator-omission rule.
func streamBits(ns []int, budget int) int {
	used := 0
	for _, n := range ns {
		if n == 0 {
			if budget-used > 0 {
				used++
			}
			continue
		}
		used += n - 1
		if budget-used > 4*n {
			used++
		}
		used += 4 * n
	}
	return used
}

// Mux writes the block to a fresh soft-bit buffer of exactly budget bits
// and returns it with the count of padding bits. Subvectors whose true
// cost would overflow the budget are forced to N=0 in place — their
// records are zeroed so the encoder-side codevectors match what the
// decoder will reconstruct. Admission runs in descending estimated-cost
// order; the estimator's occasional overshoot is corrected here and only
// here.
func Mux(svs []Subvector, budget int) ([]uint16, int) {
	order := make([]int, len(svs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return svs[order[a]].Est > svs[order[b]].Est
	})

	ns := make([]int, len(svs))
	for _, idx := range order {
		if svs[idx].N == 0 {
			continue
		}
		ns[idx] = svs[idx].N
		if streamBits(ns, budget) > budget {
			// Dropped, not truncated: the decoder sees a zero vector.
			ns[idx] = 0
			svs[idx].N = 0
			svs[idx].Index = 0
			svs[idx].K = [8]int32{}
			svs[idx].Code = [8]int32{}
		}
	}

	w := bitstream.NewWriter(budget)
	for i := range svs {
		writeSubvector(w, &svs[i])
	}
	used := w.Len()
	w.Pad()
	return w.Bits(), budget - used
}

func writeSubvector(w *bitstream.Writer, sv *Subvector) {
	n := sv.N
	if n == 0 {
		if w.Remaining() > 0 {
			w.WriteBit(0)
		}
		return
	}
	for i := 0; i < n-1; i++ {
		w.WriteBit(1)
	}
	if w.Remaining() > 4*n {
		w.WriteBit(0)
	}
	nb := baseBits(n)
	w.WriteBits(sv.Index, nb)
	if n > 4 {
		r := (4*n - nb) / 8
		for i := 0; i < 8; i++ {
			w.WriteBits(uint32(sv.K[i]), r)
		}
	}
}

// baseBits returns the base-index field width 4·n'.
func baseBits(n int) int {
	if n <= 4 {
		return 4 * n
	}
	if n&1 == 1 {
		return 12
	}
	return 16
}
