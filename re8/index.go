package re8

// Base-index (rank) coder for the Q2/Q3/Q4 codebooks.
//
// An index is composed as leaderOffset + (positionRank << signBits | signs).
// The position rank is a lexicographic multi-level combination rank: for
// each distinct magnitude, largest first, rank which of the still-free
// coordinate positions carry it (at most 3 levels for the supported
// leaders). Uniform leaders, whose single magnitude fills all eight
// coordinates, skip the position rank entirely and carry signs only; the
// two paths cover disjoint leaders and can never collide.
//
// Sign bits are one per nonzero coordinate for even leaders, first nonzero
// coordinate in the most significant bit, set meaning negative. Odd leaders
// transmit only the first seven signs; the eighth is the unique choice that
// keeps the coordinate sum divisible by 4.

// EncodeBaseIndex returns the base index of an RE8 point y previously
// classified to leader ka.
func EncodeBaseIndex(y [8]int32, ka int) uint32 {
	info := &leaderInfos[ka]

	var sign uint32
	if info.odd {
		for i := 0; i < 7; i++ {
			sign <<= 1
			if y[i] < 0 {
				sign |= 1
			}
		}
	} else {
		for i := 0; i < 8; i++ {
			if y[i] != 0 {
				sign <<= 1
				if y[i] < 0 {
					sign |= 1
				}
			}
		}
	}

	var rank uint32
	if !info.uniform {
		rank = positionRank(y, info)
	}
	return info.offset + (rank<<info.signBits | sign)
}

// DecodeBaseIndex reconstructs the RE8 point for a base index in the nq
// codebook space. Out-of-range indices (possible on corrupted input) are
// clamped to 0 so decoding always yields a valid point.
func DecodeBaseIndex(nq int, index uint32) [8]int32 {
	var y [8]int32
	if nq < 2 || nq > 4 {
		return y
	}
	if index >= codebookSize[nq] {
		index = 0
	}

	// Leader offsets partition the space contiguously in ka order.
	ka := codebookKa[nq][0]
	for _, cand := range codebookKa[nq] {
		if index < leaderInfos[cand].offset {
			break
		}
		ka = cand
	}
	info := &leaderInfos[ka]
	local := index - info.offset

	sign := local & (1<<info.signBits - 1)
	rank := local >> info.signBits
	if info.uniform {
		for i := range y {
			y[i] = info.levels[0].mag
		}
	} else {
		positionUnrank(rank, info, &y)
	}
	applySigns(&y, sign, info)
	return y
}

// positionRank ranks which free positions hold each magnitude level.
func positionRank(y [8]int32, info *leaderInfo) uint32 {
	free := [8]int{0, 1, 2, 3, 4, 5, 6, 7}
	q := 8
	var rank uint32
	for li, lv := range info.levels {
		// Slots (indices into the free list) carrying this magnitude.
		var slots [8]int
		m := 0
		for si := 0; si < q; si++ {
			if abs32(y[free[si]]) == lv.mag {
				slots[m] = si
				m++
			}
		}

		// Lexicographic rank of the m-combination among C(q, m).
		var r uint32
		prev := -1
		for j := 0; j < m; j++ {
			for t := prev + 1; t < slots[j]; t++ {
				r += binom[q-1-t][m-1-j]
			}
			prev = slots[j]
		}
		rank = rank*info.combos[li] + r

		// Drop the consumed slots from the free list.
		w := 0
		for si := 0; si < q; si++ {
			if abs32(y[free[si]]) != lv.mag {
				free[w] = free[si]
				w++
			}
		}
		q = w
	}
	return rank
}

// positionUnrank is the exact inverse of positionRank: it peels one
// combination rank per level off the composed rank and fills y with the
// leader's magnitudes at the decoded positions. Untouched coordinates
// stay zero.
func positionUnrank(rank uint32, info *leaderInfo, y *[8]int32) {
	free := [8]int{0, 1, 2, 3, 4, 5, 6, 7}
	q := 8
	for li, lv := range info.levels {
		r := rank / info.suffix[li+1]
		rank %= info.suffix[li+1]

		m := lv.count
		var slots [8]int
		prev := -1
		for j := 0; j < m; j++ {
			t := prev + 1
			for {
				cnt := binom[q-1-t][m-1-j]
				if r < cnt {
					break
				}
				r -= cnt
				t++
			}
			slots[j] = t
			prev = t
		}

		w := 0
		cj := 0
		for si := 0; si < q; si++ {
			if cj < m && slots[cj] == si {
				y[free[si]] = lv.mag
				cj++
			} else {
				free[w] = free[si]
				w++
			}
		}
		q = w
	}
}

func applySigns(y *[8]int32, sign uint32, info *leaderInfo) {
	if info.odd {
		for i := 0; i < 7; i++ {
			if sign>>uint(6-i)&1 == 1 {
				y[i] = -y[i]
			}
		}
		var sum int32
		for i := 0; i < 8; i++ {
			sum += y[i]
		}
		// Flipping the last odd coordinate moves the sum by 2 (mod 4),
		// so exactly one choice satisfies the lattice constraint.
		if sum&3 != 0 {
			y[7] = -y[7]
		}
		return
	}
	bit := info.signBits
	for i := 0; i < 8; i++ {
		if y[i] != 0 {
			bit--
			if sign>>bit&1 == 1 {
				y[i] = -y[i]
			}
		}
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
