// Package goavq implements the RE8 algebraic vector quantizer of the
// G.722 superwideband extension layers: gain search and quantization of
// blocks of up to four 8-coefficient subvectors against a hard bit
// budget, and the matching soft-bit multiplexer and demultiplexer.
//
// The package is a pure computation library. It performs no I/O, holds no
// mutable package state and is safe for concurrent use; all tables are
// fixed at package init. Encoder and decoder agree bit-for-bit on every
// stream the encoder produces, including the unused-bit counts the
// surrounding codec layers rely on to place their own side information.
//
// Reference: ITU-T G.722 Annex B AVQ (AVQ_Cod, AVQ_Encmux_Bstr,
// AVQ_Demuxdec_Bstr), shared with the G.718 and G.729.1 annexes.
package goavq

// QuantizeBlock quantizes a block of subvectors to a soft-bit buffer of
// exactly budget bits. It returns the quantized codevectors (identical to
// what DequantizeBlock will reconstruct from the buffer, including any
// subvector forced to zero by the budget) and the number of padding bits
// left unused at the tail.
func QuantizeBlock(coeffs [][8]int32, budget int) (quantized [][8]int32, bits []uint16, unused int) {
	svs := Quantize(coeffs, budget)
	bits, unused = Mux(svs, budget)
	quantized = make([][8]int32, len(svs))
	for i := range svs {
		quantized[i] = svs[i].Code
	}
	return quantized, bits, unused
}

// DequantizeBlock reconstructs nsv codevectors from a soft-bit buffer and
// returns them with the unused-bit count.
func DequantizeBlock(bits []uint16, budget, nsv int) (coeffs [][8]int32, unused int) {
	svs, unused := Demux(bits, budget, nsv)
	coeffs = make([][8]int32, nsv)
	for i := range svs {
		coeffs[i] = svs[i].Code
	}
	return coeffs, unused
}
