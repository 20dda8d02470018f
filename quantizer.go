package goavq

import "github.com/thesyncim/goavq/re8"

// Subvector is the per-8-coefficient quantization record: the quantized
// codevector together with its stream parameters and the encoder-side
// bit accounting. Records live for one encode or decode call only.
type Subvector struct {
	Code  [8]int32 // quantized RE8 codevector
	N     int      // codebook number: 0, 2..4, or n'+2r for extensions
	Index uint32   // base index within codebook N
	K     [8]int32 // Voronoi sub-indices, meaningful when N > 4
	Est   int32    // Q3 bit-cost estimate from the gain search
	Alloc int      // rounded bit allocation for this subvector
}

// Quantize runs the gain search and quantizes every subvector of a block
// (at most 4 subvectors of 8 coefficients) through the RE8 chain. The
// returned records carry provisional (N, Index, K) triples; Mux applies
// the hard budget and may still force individual subvectors to N=0.
func Quantize(coeffs [][8]int32, budget int) []Subvector {
	svs := make([]Subvector, len(coeffs))
	ests := make([]int32, len(coeffs))
	for l := range coeffs {
		var energy int64
		for _, v := range coeffs[l] {
			energy += int64(v) * int64(v)
		}
		ests[l] = bitEstimate(energy)
		svs[l].Est = ests[l]
	}

	offset := gainOffset(ests, budget)
	q14, shift := invGainQ14(offset)

	for l := range coeffs {
		var x [8]int32
		for i, v := range coeffs[l] {
			x[i] = scaleQ13(v, q14, shift)
		}
		y := re8.NearestPoint(x)
		n, index, k := re8.Encode(y)
		sv := &svs[l]
		sv.N, sv.Index, sv.K = n, index, k
		if n == 0 {
			sv.Code = [8]int32{}
		} else {
			sv.Code = y
		}
		alloc := ests[l] - offset
		if alloc < 0 {
			alloc = 0
		}
		sv.Alloc = int((alloc + 4) >> 3)
	}
	return svs
}
