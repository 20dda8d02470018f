package re8

// Encode produces the (n, index, k) triple for an RE8 lattice point:
// base-codebook points get their rank index directly, outliers go through
// the Voronoi extension. n = 0 means the zero vector (no index follows).
func Encode(y [8]int32) (n int, index uint32, k [8]int32) {
	ka, nq := Classify(y)
	switch ka {
	case KaZero:
		return 0, 0, k
	case KaOutlier:
		c, kab, kv, nv := EncodeExtension(y)
		if nv == 0 {
			return 0, 0, k
		}
		return nv, EncodeBaseIndex(c, kab), kv
	default:
		return nq, EncodeBaseIndex(y, ka), k
	}
}

// Decode is the inverse of Encode. n < 2 yields the zero vector.
func Decode(n int, index uint32, k [8]int32) [8]int32 {
	switch {
	case n < 2:
		return [8]int32{}
	case n <= 4:
		return DecodeBaseIndex(n, index)
	default:
		return DecodeExtension(n, index, k)
	}
}
