package tbcore

// Static combinatorial tables shared by the Index Encoder (index.go) and the
// Table Layout Parser (layout.go). All of them are process-wide immutable.
// flap, ptwist and invflap are literal arrays; the combinatorial tables are
// computed once from init(), mirroring the teacher's own package-level init()
// for Zobrist keys in chess/position.go.

// flap maps a pawn square on ranks 2-7 to a code 0..23 that is symmetric
// between files a-d and h-e; the lead pawn is the one with the lowest code,
// and its file picks which of the four per-file pawn subtables is used.
var flap = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	0, 6, 12, 18, 18, 12, 6, 0,
	1, 7, 13, 19, 19, 13, 7, 1,
	2, 8, 14, 20, 20, 14, 8, 2,
	3, 9, 15, 21, 21, 15, 9, 3,
	4, 10, 16, 22, 22, 16, 10, 4,
	5, 11, 17, 23, 23, 17, 11, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

// ptwist orders and encodes a pawn table's lead pawns after the first one.
var ptwist = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	47, 35, 23, 11, 10, 22, 34, 46,
	45, 33, 21, 9, 8, 20, 32, 44,
	43, 31, 19, 7, 6, 18, 30, 42,
	41, 29, 17, 5, 4, 16, 28, 40,
	39, 27, 15, 3, 2, 14, 26, 38,
	37, 25, 13, 1, 0, 12, 24, 36,
	0, 0, 0, 0, 0, 0, 0, 0,
}

// invflap is the inverse of flap over the 24 squares flap assigns a distinct
// code to (files a-d, ranks 2-7).
var invflap = [24]int{
	8, 16, 24, 32, 40, 48,
	9, 17, 25, 33, 41, 49,
	10, 18, 26, 34, 42, 50,
	11, 19, 27, 35, 43, 51,
}

var (
	binomial  [6][64]int
	pawnidx   [5][24]int
	pfactor   [5][4]int
	mapB1H1H7 [64]int
	mapA1D1D4 [64]int
	kkIdx     [10][64]int
)

func fileOf(sq int) int { return sq & 7 }
func rankOf(sq int) int { return sq >> 3 }

// offA1H8 is negative below the a1-h8 diagonal, zero on it, positive above.
func offA1H8(sq int) int { return rankOf(sq) - fileOf(sq) }

func kingStepAttacks(sq int) uint64 {
	var bb uint64
	for dr := -1; dr <= 1; dr++ {
		for df := -1; df <= 1; df++ {
			if dr == 0 && df == 0 {
				continue
			}
			r, f := rankOf(sq)+dr, fileOf(sq)+df
			if r < 0 || r > 7 || f < 0 || f > 7 {
				continue
			}
			bb |= uint64(1) << uint((r<<3)|f)
		}
	}
	return bb
}

func init() {
	binomial[0][0] = 1
	for n := 1; n < 64; n++ {
		for k := 0; k < 6 && k <= n; k++ {
			var a, b int
			if k > 0 {
				a = binomial[k-1][n-1]
			}
			if k < n {
				b = binomial[k][n-1]
			}
			binomial[k][n] = a + b
		}
	}

	for i := 0; i < 5; i++ {
		k := 0
		for j := 1; j <= 4; j++ {
			s := 0
			for ; k < 6*j; k++ {
				pawnidx[i][k] = s
				s += binomial[i][ptwist[invflap[k]]]
			}
			pfactor[i][j-1] = s
		}
	}

	// mapB1H1H7: squares strictly below the a1-h8 diagonal, encoded 0..27.
	code := 0
	for s := 0; s < 64; s++ {
		if offA1H8(s) < 0 {
			mapB1H1H7[s] = code
			code++
		}
	}

	// mapA1D1D4: the a1-d1-d4 triangle, encoded 0..9; on-diagonal squares
	// (a1, b2, c3, d4) are appended last.
	code = 0
	var diagonal []int
	for s := 0; s < 64; s++ {
		switch {
		case offA1H8(s) < 0 && fileOf(s) <= 3 && rankOf(s) <= 3:
			mapA1D1D4[s] = code
			code++
		case offA1H8(s) == 0 && fileOf(s) <= 3:
			diagonal = append(diagonal, s)
		}
	}
	for _, s := range diagonal {
		mapA1D1D4[s] = code
		code++
	}

	// kkIdx encodes the 462 legal, non-mirrored placements of the two kings:
	// the first king restricted to the a1-d1-d4 triangle, with both-on-
	// diagonal placements appended last (mirrors WDLHash::init in the
	// original, see original_source/src/syzygy/tbprobe.cpp).
	for i := range kkIdx {
		for j := range kkIdx[i] {
			kkIdx[i][j] = -1
		}
	}
	type diagPair struct{ idx, s2 int }
	var bothOnDiagonal []diagPair
	code = 0
	for idx := 0; idx < 10; idx++ {
		for s1 := 0; s1 < 64; s1++ {
			if mapA1D1D4[s1] != idx || (idx == 0 && s1 != 1) {
				continue
			}
			for s2 := 0; s2 < 64; s2++ {
				switch {
				case (kingStepAttacks(s1)|uint64(1)<<uint(s1))&(uint64(1)<<uint(s2)) != 0:
					kkIdx[idx][s2] = -1
				case offA1H8(s1) == 0 && offA1H8(s2) > 0:
					kkIdx[idx][s2] = -1
				case offA1H8(s1) == 0 && offA1H8(s2) == 0:
					bothOnDiagonal = append(bothOnDiagonal, diagPair{idx, s2})
				default:
					kkIdx[idx][s2] = code
					code++
				}
			}
		}
	}
	for _, p := range bothOnDiagonal {
		kkIdx[p.idx][p.s2] = code
		code++
	}
}
