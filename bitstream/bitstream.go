// Package bitstream implements the G.192 soft-bit serialization layer used
// by the AVQ multiplexer. Each logical bit occupies one uint16 storage unit
// holding one of two sentinel values; packing soft bits into octets is an
// outer-layer concern and does not happen here.
//
// Reference: ITU-T G.192 softbit format as used by the G.722 Annex B
// bitstream routines.
package bitstream

// G.192 sentinel values, one per transmitted bit.
const (
	Bit0 uint16 = 0x007F
	Bit1 uint16 = 0x0081
)

// Writer emits soft bits into a fixed-capacity buffer. The capacity is the
// block's bit budget; writes beyond it are dropped so a caller can never
// overrun the budget, and Pad zero-fills whatever the payload left unused.
type Writer struct {
	bits []uint16
	cap  int
}

// NewWriter returns a writer with room for budget soft bits.
func NewWriter(budget int) *Writer {
	if budget < 0 {
		budget = 0
	}
	return &Writer{bits: make([]uint16, 0, budget), cap: budget}
}

// WriteBit appends one bit. Any nonzero b is written as a logical 1.
func (w *Writer) WriteBit(b int) {
	if len(w.bits) >= w.cap {
		return
	}
	if b != 0 {
		w.bits = append(w.bits, Bit1)
	} else {
		w.bits = append(w.bits, Bit0)
	}
}

// WriteBits appends the low n bits of v, most significant first.
func (w *Writer) WriteBits(v uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		w.WriteBit(int(v>>uint(i)) & 1)
	}
}

// Len returns the number of bits written so far.
func (w *Writer) Len() int {
	return len(w.bits)
}

// Remaining returns the number of bits still available before the budget.
func (w *Writer) Remaining() int {
	return w.cap - len(w.bits)
}

// Pad zero-fills the buffer up to the budget.
func (w *Writer) Pad() {
	for len(w.bits) < w.cap {
		w.bits = append(w.bits, Bit0)
	}
}

// Bits returns the underlying soft-bit buffer.
func (w *Writer) Bits() []uint16 {
	return w.bits
}

// Reader consumes soft bits under a bit budget. Reads past the budget or
// past the end of the buffer yield zero bits, never an error; the decoder
// is required to produce deterministic output from any input.
type Reader struct {
	bits []uint16
	pos  int
	cap  int
}

// NewReader returns a reader over bits, interpreting at most budget of them.
func NewReader(bits []uint16, budget int) *Reader {
	if budget < 0 {
		budget = 0
	}
	return &Reader{bits: bits, cap: budget}
}

// ReadBit consumes one bit. Values other than the Bit1 sentinel read as 0.
func (r *Reader) ReadBit() int {
	if r.pos >= r.cap {
		return 0
	}
	var b int
	if r.pos < len(r.bits) && r.bits[r.pos] == Bit1 {
		b = 1
	}
	r.pos++
	return b
}

// ReadBits consumes n bits, most significant first.
func (r *Reader) ReadBits(n int) uint32 {
	var v uint32
	for i := 0; i < n; i++ {
		v = v<<1 | uint32(r.ReadBit())
	}
	return v
}

// Remaining returns the number of budget bits not yet consumed.
func (r *Reader) Remaining() int {
	if r.pos >= r.cap {
		return 0
	}
	return r.cap - r.pos
}
