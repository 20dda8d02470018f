package goavq

import (
	"github.com/thesyncim/goavq/bitstream"
	"github.com/thesyncim/goavq/re8"
)

// Demux is the exact mirror of Mux: it reads nsv subvectors from a
// soft-bit buffer under the same bit budget and reconstructs their
// codevectors. The unary read consumes a continuation bit only while more
// than the following fixed fields could still fit, which reproduces the
// encoder's terminator-omission rule bit for bit. Corrupt input degrades
// to deterministic in-range output, never an error: decode always trusts
// the bitstream.
//
// The returned unused-bit count equals the encoder's; callers use it to
// locate fields the outer layers placed after the block.
func Demux(bits []uint16, budget, nsv int) ([]Subvector, int) {
	r := bitstream.NewReader(bits, budget)
	svs := make([]Subvector, nsv)
	for l := 0; l < nsv; l++ {
		if r.Remaining() == 0 {
			continue
		}
		if r.ReadBit() == 0 {
			continue
		}
		ones := 1
		for r.Remaining() > 4*(ones+1) {
			if r.ReadBit() == 0 {
				break
			}
			ones++
		}
		n := ones + 1

		nb := baseBits(n)
		index := r.ReadBits(nb)
		var k [8]int32
		if n > 4 {
			rr := (4*n - nb) / 8
			for i := 0; i < 8; i++ {
				k[i] = int32(r.ReadBits(rr))
			}
		}

		sv := &svs[l]
		sv.N, sv.Index, sv.K = n, index, k
		sv.Code = re8.Decode(n, index, k)
	}
	return svs, r.Remaining()
}
