package tbcore

import "sort"

// Index Encoder (spec.md §4.4): maps a legal position to its index into a
// tableBody's compressed stream. This mirrors probe_table's steps from
// original_source/src/syzygy/tbprobe.cpp: canonicalize color/orientation
// against the entry's stored assignment, collect piece squares, reorder
// them to the precomp's stored piece sequence, fold king/lead-piece
// placement through the combinatorial tables in tables.go, then fold the
// remaining pieces through Binomial coefficients.

type indexResult struct {
	precomp *pairsData
	idx     uint64
	tbFile  int
	stm     bool
}

// encodeIndex computes the index for pos against one material-signature
// entry. key is the entry's canonical (white-strong, white-to-move) material
// key; key2 is the color-swapped key (equal to key for a symmetric entry).
func encodeIndex(pos Position, body tableBody, key, key2 uint64, symmetric, hasPawns bool, pieceCount int) indexResult {
	var squares [6]int
	var pieces [6]int
	size := 0
	leadPawnsCnt := 0
	tbFile := 0

	var flipColor, flipSquares int
	var stm bool

	posKey := pos.MaterialKey(true)

	if symmetric {
		if !pos.WhiteToMove() {
			flipColor = 8
			flipSquares = 56
		}
		stm = true
	} else {
		mismatch := posKey != key
		if mismatch {
			flipColor = 8
			flipSquares = 56
		}
		// Entries store stm 0 (WHITE) in sub[0] and stm 1 (BLACK) in sub[1];
		// stm here is true exactly when the original's int stm equals 0, so
		// it is the negation of the mismatch-XOR-side-to-move the original
		// computes directly as an array index.
		stm = mismatch == !pos.WhiteToMove()
	}
	_ = key2

	var precomp *pairsData

	if hasPawns {
		leadWhite := pieceSide(flipColor == 0)
		lead := pos.PieceSquares(pawnPieceType, leadWhite)
		for _, sq := range lead {
			squares[size] = sq ^ flipSquares
			size++
		}
		leadPawnsCnt = size

		sort.Slice(squares[:size], func(i, j int) bool { return flap[squares[i]] < flap[squares[j]] })

		tbFile = fileOf(squares[0])
		if tbFile > 3 {
			tbFile = fileOf(squares[0] ^ 7)
		}
		precomp = body.subtable(stm, tbFile)
	} else {
		precomp = body.subtable(stm, 0)
	}

	// Collect the remaining pieces (every piece not already claimed as a
	// lead pawn), mapped through flipColor/flipSquares.
	leadMask := make(map[int]bool, leadPawnsCnt)
	for i := 0; i < leadPawnsCnt; i++ {
		leadMask[squares[i]^flipSquares] = true
	}
	for pt := pawnPieceType; pt <= kingPieceType; pt++ {
		for _, white := range []bool{true, false} {
			for _, sq := range pos.PieceSquares(pt, white) {
				if hasPawns && pt == pawnPieceType && white == pieceSide(flipColor == 0) {
					continue // already collected as a lead pawn
				}
				code := pt
				if !white {
					code += 8
				}
				code ^= flipColor
				squares[size] = sq ^ flipSquares
				pieces[size] = code
				size++
			}
		}
	}

	// Reorder to match precomp's stored piece sequence (best-compression
	// order chosen when the table was generated).
	for i := leadPawnsCnt; i < size; i++ {
		for j := i; j < size; j++ {
			if precomp.pieces[i] == pieces[j] {
				pieces[i], pieces[j] = pieces[j], pieces[i]
				squares[i], squares[j] = squares[j], squares[i]
				break
			}
		}
	}

	if fileOf(squares[0]) > 3 {
		for i := 0; i < size; i++ {
			squares[i] ^= 7
		}
	}

	var idx uint64
	next := 0

	if hasPawns {
		sort.Slice(squares[1:leadPawnsCnt], func(i, j int) bool {
			return ptwist[squares[1+i]] > ptwist[squares[1+j]]
		})
		idx = uint64(pawnidx[leadPawnsCnt-1][flap[squares[0]]])
		for i := 1; i < leadPawnsCnt; i++ {
			idx += uint64(binomial[i][ptwist[squares[i]]])
		}
		next = leadPawnsCnt
	} else {
		if rankOf(squares[0]) > 3 {
			for i := 0; i < size; i++ {
				squares[i] ^= 56
			}
		}

		hasUnique := pieceBodyHasUnique(body)

		for i := 0; i < size; i++ {
			if offA1H8(squares[i]) == 0 {
				continue
			}
			limit := 2
			if hasUnique {
				limit = 3
			}
			if offA1H8(squares[i]) > 0 && i < limit {
				for j := i; j < size; j++ {
					squares[j] = ((squares[j] >> 3) | (squares[j] << 3)) & 63
				}
			}
			break
		}

		if hasUnique {
			adjust1 := 0
			if squares[1] > squares[0] {
				adjust1 = 1
			}
			adjust2 := 0
			if squares[2] > squares[0] {
				adjust2++
			}
			if squares[2] > squares[1] {
				adjust2++
			}

			switch {
			case offA1H8(squares[0]) != 0:
				idx = uint64(mapA1D1D4[squares[0]])*63*62 + uint64(squares[1]-adjust1)*62 + uint64(squares[2]-adjust2)
			case offA1H8(squares[1]) != 0:
				idx = 6*63*62 + uint64(rankOf(squares[0]))*28*62 + uint64(mapB1H1H7[squares[1]])*62 + uint64(squares[2]-adjust2)
			case offA1H8(squares[2]) != 0:
				idx = 6*63*62 + 4*28*62 + uint64(rankOf(squares[0]))*7*28 + uint64(rankOf(squares[1])-adjust1)*28 + uint64(mapB1H1H7[squares[2]])
			default:
				idx = 6*63*62 + 4*28*62 + 4*7*28 + uint64(rankOf(squares[0]))*7*6 + uint64(rankOf(squares[1])-adjust1)*6 + uint64(rankOf(squares[2])-adjust2)
			}
		} else {
			idx = uint64(kkIdx[mapA1D1D4[squares[0]]][squares[1]])
		}
		next = 3
		if !hasUnique {
			next = 2
		}
	}

	idx *= precomp.factor[0]

	remainingPawns := 0
	if hasPawns {
		remainingPawns = pawnCountsOf(body)[1]
	}

	for next < size {
		end := next + remainingPawns
		if remainingPawns == 0 {
			end = next + int(precomp.norm[next])
		}
		sort.Ints(squares[next:end])

		var s uint64
		for i := next; i < end; i++ {
			adjust := 0
			for j := 0; j < next; j++ {
				if squares[i] > squares[j] {
					adjust++
				}
			}
			off := 0
			if remainingPawns != 0 {
				off = 8
			}
			s += uint64(binomial[i-next+1][squares[i]-adjust-off])
		}
		remainingPawns = 0
		idx += s * precomp.factor[next]
		next = end
	}

	return indexResult{precomp: precomp, idx: idx, tbFile: tbFile, stm: stm}
}

const (
	pawnPieceType = 1
	kingPieceType = 6
)

func pieceSide(whiteStrong bool) bool { return whiteStrong }

func pieceBodyHasUnique(body tableBody) bool {
	switch b := body.(type) {
	case *piecelessBody:
		return b.hasUnique
	case *dtzPiecelessBody:
		return b.hasUnique
	}
	return false
}

func pawnCountsOf(body tableBody) [2]int {
	switch b := body.(type) {
	case *pawnBody:
		return b.pawnCounts
	case *dtzPawnBody:
		return b.pawnCounts
	}
	return [2]int{}
}

// dtzSTMMatches is check_dtz_stm from the original: a one-sided DTZ table
// only stores positions for the side to move its STM flag names, so a
// lookup against the other side must decline rather than decompress
// garbage. Always true for non-pawn symmetric material, since a symmetric
// pieceless entry has no meaningful STM of its own.
func dtzSTMMatches(body tableBody, file int, stm bool) bool {
	var flags uint8
	var symmetric, hasPawns bool
	switch b := body.(type) {
	case *dtzPiecelessBody:
		flags, symmetric, hasPawns = b.sub.flags, b.symmetric, false
	case *dtzPawnBody:
		if file < 0 || file > 3 {
			file = 0
		}
		flags, symmetric, hasPawns = b.sub[file].flags, b.symmetric, true
	default:
		return true
	}
	if symmetric && !hasPawns {
		return true
	}
	// flags&dtzFlagSTM is the original's stm==0 case; stm here is true
	// exactly when the original's int stm is 0, so they must agree.
	return (flags&dtzFlagSTM != 0) == !stm
}
