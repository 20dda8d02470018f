package goavq

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thesyncim/goavq/bitstream"
	"github.com/thesyncim/goavq/re8"
)

// baseSubvector builds a codebook-4 record from a known-good index.
func baseSubvector(index uint32, est int32) Subvector {
	return Subvector{
		Code:  re8.Decode(4, index, [8]int32{}),
		N:     4,
		Index: index,
		Est:   est,
	}
}

func TestMuxForcesOverflowToZero(t *testing.T) {
	// Three codebook-4 subvectors cost 19-20 bits each; a 45-bit budget
	// fits two. The cheapest estimate (the last) must be dropped whole,
	// never truncated.
	svs := []Subvector{
		baseSubvector(7, 300),
		baseSubvector(1234, 200),
		baseSubvector(99, 100),
	}
	bits, unused := Mux(svs, 45)
	require.Len(t, bits, 45)
	require.Equal(t, 4, unused)

	require.Equal(t, 0, svs[2].N, "overflowing subvector must be forced to N=0")
	require.Equal(t, [8]int32{}, svs[2].Code)
	require.Equal(t, 4, svs[0].N)
	require.Equal(t, 4, svs[1].N)

	decoded, unusedDec := Demux(bits, 45, 3)
	require.Equal(t, unused, unusedDec)
	for i := range svs {
		require.Equal(t, svs[i].N, decoded[i].N, "subvector %d", i)
		require.Equal(t, svs[i].Index, decoded[i].Index, "subvector %d", i)
		require.Equal(t, svs[i].Code, decoded[i].Code, "subvector %d", i)
	}
}

func TestMuxDropsByEstimateNotPosition(t *testing.T) {
	// The middle subvector carries the lowest estimate, so it is the one
	// sacrificed even though it is not last in stream order.
	svs := []Subvector{
		baseSubvector(3, 300),
		baseSubvector(4, 50),
		baseSubvector(5, 200),
	}
	_, _ = Mux(svs, 45)
	require.Equal(t, 0, svs[1].N)
	require.Equal(t, 4, svs[0].N)
	require.Equal(t, 4, svs[2].N)
}

func TestMuxOmitsTerminatorOnExactFit(t *testing.T) {
	// A single codebook-2 subvector in exactly 9 bits: one unary bit plus
	// the 8-bit index, terminator implied by the exhausted budget.
	svs := []Subvector{{Code: re8.Decode(2, 17, [8]int32{}), N: 2, Index: 17, Est: 100}}
	bits, unused := Mux(svs, 9)
	require.Equal(t, 0, unused)
	require.Equal(t, bitstream.Bit1, bits[0], "unary prefix")

	decoded, unusedDec := Demux(bits, 9, 1)
	require.Equal(t, 0, unusedDec)
	require.Equal(t, 2, decoded[0].N)
	require.Equal(t, uint32(17), decoded[0].Index)

	// One bit more and the terminator is written explicitly.
	svs[0] = Subvector{Code: re8.Decode(2, 17, [8]int32{}), N: 2, Index: 17, Est: 100}
	bits, unused = Mux(svs, 10)
	require.Equal(t, 0, unused)
	require.Equal(t, bitstream.Bit0, bits[1], "explicit terminator")
	decoded, _ = Demux(bits, 10, 1)
	require.Equal(t, 2, decoded[0].N)
	require.Equal(t, uint32(17), decoded[0].Index)
}

func TestMuxVoronoiLayout(t *testing.T) {
	// An extended point: n = n' + 2r carries a 4·n'-bit base index plus 8
	// r-bit sub-indices, 5n−1 bits in total.
	y := [8]int32{30, 6, 0, 0, 0, 0, 0, 0} // outlier, extends at r=2
	n, index, k := re8.Encode(y)
	require.Greater(t, n, 4)

	svs := []Subvector{{Code: y, N: n, Index: index, K: k, Est: 400}}
	budget := 5*n + 10
	bits, unused := Mux(svs, budget)
	require.Equal(t, budget-(5*n-1)-1, unused, "cost must be 5n-1 plus terminator")

	decoded, unusedDec := Demux(bits, budget, 1)
	require.Equal(t, unused, unusedDec)
	require.Equal(t, n, decoded[0].N)
	require.Equal(t, index, decoded[0].Index)
	require.Equal(t, k, decoded[0].K)
	require.Equal(t, y, decoded[0].Code)
}

func TestDemuxCorruptStreamIsDeterministic(t *testing.T) {
	// All-ones garbage: the unary reads must stop on the budget rule and
	// decoding must stay in range without panicking.
	bits := make([]uint16, 40)
	for i := range bits {
		bits[i] = bitstream.Bit1
	}
	a, unusedA := Demux(bits, 40, 4)
	b, unusedB := Demux(bits, 40, 4)
	require.Equal(t, a, b, "decode must be deterministic")
	require.Equal(t, unusedA, unusedB)
}

func TestStreamBitsMatchesWriter(t *testing.T) {
	cases := [][]int{
		{0, 0, 0},
		{2, 0, 0},
		{4, 4, 0},
		{3, 2, 4},
		{7, 0, 2, 4},
	}
	for _, ns := range cases {
		for _, budget := range []int{9, 20, 36, 80, 200} {
			want := streamBits(ns, budget)
			if want > budget {
				continue
			}
			w := bitstream.NewWriter(budget)
			for _, n := range ns {
				sv := Subvector{N: n}
				writeSubvector(w, &sv)
			}
			require.Equal(t, want, w.Len(), "ns=%v budget=%d", ns, budget)
		}
	}
}
