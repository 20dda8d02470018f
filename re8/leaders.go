package re8

// Absolute-leader tables for the Q2/Q3/Q4 base codebooks.
//
// A leader is the canonical representative of a permutation-and-sign orbit
// of RE8 points: magnitudes sorted in non-increasing order, all signs
// positive. Leaders are listed shell-major (shell = Σxᵢ²/8) and id-minor
// (id = Σxᵢ⁴/8) so each shell maps to a contiguous run of the table; the
// classifier depends on that ordering.
//
// Everything else about a leader (shell, id, orbit size, sign-bit count,
// magnitude-level structure, codebook index offsets) is derived once at
// package init from the magnitudes below. The derived values are never
// mutated afterwards, so the tables are safe to share across concurrent
// encode and decode calls.

const (
	// NbLeaders is the number of absolute leaders across Q2, Q3 and Q4.
	NbLeaders = 35
	// KaZero is the classifier result for the zero vector (codebook Q0).
	KaZero = NbLeaders
	// KaOutlier is the classifier result for points outside every base
	// codebook; the caller must apply Voronoi extension.
	KaOutlier = NbLeaders + 1
	// MaxShell is the largest shell covered by the leader table.
	MaxShell = 32
)

type leaderDef struct {
	mag [8]int32 // magnitudes, non-increasing
	nq  int      // smallest base codebook containing the orbit (2, 3 or 4)
}

var leaderDefs = [NbLeaders]leaderDef{
	{[8]int32{1, 1, 1, 1, 1, 1, 1, 1}, 2},  // ka 0   shell 1   id 1
	{[8]int32{2, 2, 0, 0, 0, 0, 0, 0}, 2},  // ka 1   shell 1   id 4
	{[8]int32{2, 2, 2, 2, 0, 0, 0, 0}, 3},  // ka 2   shell 2   id 8
	{[8]int32{3, 1, 1, 1, 1, 1, 1, 1}, 3},  // ka 3   shell 2   id 11
	{[8]int32{4, 0, 0, 0, 0, 0, 0, 0}, 3},  // ka 4   shell 2   id 32
	{[8]int32{2, 2, 2, 2, 2, 2, 0, 0}, 4},  // ka 5   shell 3   id 12
	{[8]int32{3, 3, 1, 1, 1, 1, 1, 1}, 4},  // ka 6   shell 3   id 21
	{[8]int32{4, 2, 2, 0, 0, 0, 0, 0}, 4},  // ka 7   shell 3   id 36
	{[8]int32{2, 2, 2, 2, 2, 2, 2, 2}, 3},  // ka 8   shell 4   id 16
	{[8]int32{3, 3, 3, 1, 1, 1, 1, 1}, 4},  // ka 9   shell 4   id 31
	{[8]int32{4, 2, 2, 2, 2, 0, 0, 0}, 4},  // ka 10  shell 4   id 40
	{[8]int32{4, 4, 0, 0, 0, 0, 0, 0}, 3},  // ka 11  shell 4   id 64
	{[8]int32{5, 1, 1, 1, 1, 1, 1, 1}, 4},  // ka 12  shell 4   id 79
	{[8]int32{4, 2, 2, 2, 2, 2, 2, 0}, 4},  // ka 13  shell 5   id 44
	{[8]int32{4, 4, 2, 2, 0, 0, 0, 0}, 4},  // ka 14  shell 5   id 68
	{[8]int32{5, 3, 1, 1, 1, 1, 1, 1}, 4},  // ka 15  shell 5   id 89
	{[8]int32{6, 2, 0, 0, 0, 0, 0, 0}, 3},  // ka 16  shell 5   id 164
	{[8]int32{4, 4, 4, 0, 0, 0, 0, 0}, 4},  // ka 17  shell 6   id 96
	{[8]int32{6, 2, 2, 2, 0, 0, 0, 0}, 4},  // ka 18  shell 6   id 168
	{[8]int32{6, 4, 2, 0, 0, 0, 0, 0}, 4},  // ka 19  shell 7   id 196
	{[8]int32{7, 1, 1, 1, 1, 1, 1, 1}, 4},  // ka 20  shell 7   id 301
	{[8]int32{3, 3, 3, 3, 3, 3, 3, 1}, 4},  // ka 21  shell 8   id 71
	{[8]int32{4, 4, 4, 4, 0, 0, 0, 0}, 4},  // ka 22  shell 8   id 128
	{[8]int32{7, 3, 1, 1, 1, 1, 1, 1}, 4},  // ka 23  shell 8   id 311
	{[8]int32{8, 0, 0, 0, 0, 0, 0, 0}, 3},  // ka 24  shell 8   id 512
	{[8]int32{3, 3, 3, 3, 3, 3, 3, 3}, 4},  // ka 25  shell 9   id 81
	{[8]int32{6, 6, 0, 0, 0, 0, 0, 0}, 4},  // ka 26  shell 9   id 324
	{[8]int32{8, 2, 2, 0, 0, 0, 0, 0}, 4},  // ka 27  shell 9   id 516
	{[8]int32{8, 4, 0, 0, 0, 0, 0, 0}, 4},  // ka 28  shell 10  id 544
	{[8]int32{10, 2, 0, 0, 0, 0, 0, 0}, 4}, // ka 29  shell 13  id 1252
	{[8]int32{8, 8, 0, 0, 0, 0, 0, 0}, 4},  // ka 30  shell 16  id 1024
	{[8]int32{10, 6, 0, 0, 0, 0, 0, 0}, 4}, // ka 31  shell 17  id 1412
	{[8]int32{12, 0, 0, 0, 0, 0, 0, 0}, 4}, // ka 32  shell 18  id 2592
	{[8]int32{12, 4, 0, 0, 0, 0, 0, 0}, 4}, // ka 33  shell 20  id 2624
	{[8]int32{16, 0, 0, 0, 0, 0, 0, 0}, 4}, // ka 34  shell 32  id 8192
}

// magLevel is one distinct nonzero magnitude of a leader and how many
// coordinates carry it.
type magLevel struct {
	mag   int32
	count int
}

// leaderInfo is the derived per-leader data used by the classifier and the
// rank coder.
type leaderInfo struct {
	nq       int
	shell    int32
	id       int32
	card     uint32 // orbit size: position arrangements × 2^signBits
	offset   uint32 // first index of this leader inside its codebook space
	signBits uint
	odd      bool // all magnitudes odd: 7 sign bits, eighth sign implied
	uniform  bool // single magnitude on all 8 coordinates: no position rank
	levels   []magLevel
	// combos[i] is C(free positions, levels[i].count) at ranking step i;
	// suffix[i] is the product of combos[i:], used to peel level ranks
	// apart at decode.
	combos []uint32
	suffix []uint32
}

var leaderInfos [NbLeaders]leaderInfo

// shellFirst/shellCount give, per shell, the contiguous ka range of leaders
// on that shell (count 0 when the shell has no table entry).
var (
	shellFirst [MaxShell + 1]int
	shellCount [MaxShell + 1]int
)

// codebookKa lists the leaders of each base codebook space in ka order;
// codebookSize is the total number of indices in the space. Q2 leaders
// occupy the same offsets in the Q2 and Q3 spaces because the Q3 space
// starts with them.
var (
	codebookKa   [5][]int
	codebookSize [5]uint32
)

// binom is Pascal's triangle up to C(8,8); binom[n][k] = 0 for k > n.
var binom = [9][9]uint32{
	{1, 0, 0, 0, 0, 0, 0, 0, 0},
	{1, 1, 0, 0, 0, 0, 0, 0, 0},
	{1, 2, 1, 0, 0, 0, 0, 0, 0},
	{1, 3, 3, 1, 0, 0, 0, 0, 0},
	{1, 4, 6, 4, 1, 0, 0, 0, 0},
	{1, 5, 10, 10, 5, 1, 0, 0, 0},
	{1, 6, 15, 20, 15, 6, 1, 0, 0},
	{1, 7, 21, 35, 35, 21, 7, 1, 0},
	{1, 8, 28, 56, 70, 56, 28, 8, 1},
}

func init() {
	for ka := range leaderDefs {
		d := &leaderDefs[ka]
		info := &leaderInfos[ka]
		info.nq = d.nq

		var s2, s4 int64
		nz := 0
		for _, m := range d.mag {
			v := int64(m)
			s2 += v * v
			s4 += v * v * v * v
			if m != 0 {
				nz++
			}
		}
		info.shell = int32((s2 + 4) >> 3)
		info.id = int32((s4 + 4) >> 3)

		info.odd = d.mag[0]&1 == 1
		info.uniform = nz == 8 && d.mag[0] == d.mag[7]
		if info.odd {
			info.signBits = 7
		} else {
			info.signBits = uint(nz)
		}

		// Distinct nonzero magnitudes, largest first (magnitudes are
		// already sorted non-increasing).
		for i := 0; i < 8 && d.mag[i] != 0; {
			j := i
			for j < 8 && d.mag[j] == d.mag[i] {
				j++
			}
			info.levels = append(info.levels, magLevel{d.mag[i], j - i})
			i = j
		}

		perms := uint32(1)
		free := 8
		for _, lv := range info.levels {
			c := binom[free][lv.count]
			info.combos = append(info.combos, c)
			perms *= c
			free -= lv.count
		}
		info.suffix = make([]uint32, len(info.combos)+1)
		info.suffix[len(info.combos)] = 1
		for i := len(info.combos) - 1; i >= 0; i-- {
			info.suffix[i] = info.suffix[i+1] * info.combos[i]
		}
		info.card = perms << info.signBits
	}

	// Codebook index offsets. The Q3 space spans the nq≤3 leaders, the Q4
	// space the nq=4 leaders, both in ka order; the Q2 space is the prefix
	// of the Q3 space.
	var off3, off4 uint32
	for ka := range leaderInfos {
		info := &leaderInfos[ka]
		if info.nq <= 3 {
			info.offset = off3
			off3 += info.card
			if info.nq == 2 {
				codebookKa[2] = append(codebookKa[2], ka)
				codebookSize[2] = off3
			}
			codebookKa[3] = append(codebookKa[3], ka)
		} else {
			info.offset = off4
			off4 += info.card
			codebookKa[4] = append(codebookKa[4], ka)
		}
	}
	codebookSize[3] = off3
	codebookSize[4] = off4

	for s := range shellFirst {
		shellFirst[s] = -1
	}
	for ka := range leaderInfos {
		s := leaderInfos[ka].shell
		if shellFirst[s] < 0 {
			shellFirst[s] = ka
		}
		shellCount[s]++
	}
}
