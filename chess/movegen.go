package chess

const (
	f1g1Mask = (uint64(1) << SquareF1) | (uint64(1) << SquareG1)
	b1d1Mask = (uint64(1) << SquareB1) | (uint64(1) << SquareC1) | (uint64(1) << SquareD1)
	f8g8Mask = (uint64(1) << SquareF8) | (uint64(1) << SquareG8)
	b8d8Mask = (uint64(1) << SquareB8) | (uint64(1) << SquareC8) | (uint64(1) << SquareD8)
)

var (
	whiteKingSideCastle  = makeMove(SquareE1, SquareG1, King, Empty)
	whiteQueenSideCastle = makeMove(SquareE1, SquareC1, King, Empty)
	blackKingSideCastle  = makeMove(SquareE8, SquareG8, King, Empty)
	blackQueenSideCastle = makeMove(SquareE8, SquareC8, King, Empty)
)

func addPromotions(ml []Move, move Move) int {
	ml[0] = move ^ Move(Queen<<18)
	ml[1] = move ^ Move(Rook<<18)
	ml[2] = move ^ Move(Bishop<<18)
	ml[3] = move ^ Move(Knight<<18)
	return 4
}

// Generate fills ml with pseudo-legal moves of the requested category and
// returns the used prefix. Categories mirror goosemg's genCaptures/genQuiets
// filter, generalised to the full Captures/Evasions/NonEvasions/Quiets/Legal
// set the tablebase host interface (§6.1) needs: the probe driver generates
// Captures at the AB horizon, the root filter generates Legal at the root.
func (p *Position) Generate(cat Category, ml []Move) []Move {
	if cat == Legal {
		var buf [MaxMoves]Move
		var pseudo = p.generatePseudoLegal(let(p.Checkers != 0, int(Evasions), int(NonEvasions)), buf[:])
		var pinned = p.PinnedPieces()
		var count = 0
		for _, m := range pseudo {
			if p.Legal(m, pinned) {
				ml[count] = m
				count++
			}
		}
		return ml[:count]
	}
	return p.generatePseudoLegal(int(cat), ml)
}

// GenerateLegalMoves is a convenience wrapper returning a freshly allocated
// legal move list.
func (p *Position) GenerateLegalMoves() []Move {
	var buf [MaxMoves]Move
	var ml = p.Generate(Legal, buf[:])
	return append([]Move(nil), ml...)
}

func (p *Position) generatePseudoLegal(cat int, ml []Move) []Move {
	var count = 0
	var fromBB, toBB, ownPieces, oppPieces uint64
	var from, to int

	if p.WhiteMove {
		ownPieces, oppPieces = p.White, p.Black
	} else {
		ownPieces, oppPieces = p.Black, p.White
	}

	var wantCaptures = cat == int(Captures) || cat == int(Evasions) || cat == int(NonEvasions)
	var wantQuiets = cat == int(Quiets) || cat == int(Evasions) || cat == int(NonEvasions)

	var target uint64
	switch {
	case cat == int(Captures):
		target = oppPieces
	case cat == int(Quiets):
		target = ^(ownPieces | oppPieces)
	default:
		target = ^ownPieces
	}
	// The king may step to any square the category allows; only the other
	// pieces are limited to capturing the checker or blocking the check.
	var kingTarget = target
	if cat == int(Evasions) && p.Checkers != 0 {
		var kingSq = FirstOne(p.Kings & ownPieces)
		target &= p.Checkers | BetweenSquares(FirstOne(p.Checkers), kingSq)
	}

	var allPieces = p.White | p.Black
	var ownPawns = p.Pawns & ownPieces

	if wantCaptures && p.EpSquare != SquareNone {
		for fromBB = PawnAttacks(p.EpSquare, !p.WhiteMove) & ownPawns; fromBB != 0; fromBB &= fromBB - 1 {
			from = FirstOne(fromBB)
			ml[count] = makeMove(from, p.EpSquare, Pawn, Pawn)
			count++
		}
	}

	var pushDelta, startRank, promoRank = 8, Rank2, Rank7
	if !p.WhiteMove {
		pushDelta, startRank, promoRank = -8, Rank7, Rank2
	}

	for fromBB = ownPawns & ^rankMaskOf(promoRank); fromBB != 0; fromBB &= fromBB - 1 {
		from = FirstOne(fromBB)
		var one = from + pushDelta
		if wantQuiets && squareMask[one]&allPieces == 0 {
			ml[count] = makeMove(from, one, Pawn, Empty)
			count++
			if Rank(from) == startRank {
				var two = one + pushDelta
				if squareMask[two]&allPieces == 0 {
					ml[count] = makeMove(from, two, Pawn, Empty)
					count++
				}
			}
		}
		if wantCaptures {
			for _, df := range []int{-1, 1} {
				if (df < 0 && File(from) == FileA) || (df > 0 && File(from) == FileH) {
					continue
				}
				var capSq = one + df
				if squareMask[capSq]&oppPieces != 0 {
					ml[count] = makeMove(from, capSq, Pawn, p.WhatPiece(capSq))
					count++
				}
			}
		}
	}

	for fromBB = ownPawns & rankMaskOf(promoRank); fromBB != 0; fromBB &= fromBB - 1 {
		from = FirstOne(fromBB)
		var one = from + pushDelta
		if squareMask[one]&allPieces == 0 {
			count += addPromotions(ml[count:], makeMove(from, one, Pawn, Empty))
		}
		for _, df := range []int{-1, 1} {
			if (df < 0 && File(from) == FileA) || (df > 0 && File(from) == FileH) {
				continue
			}
			var capSq = one + df
			if squareMask[capSq]&oppPieces != 0 {
				count += addPromotions(ml[count:], makeMove(from, capSq, Pawn, p.WhatPiece(capSq)))
			}
		}
	}

	for fromBB = p.Knights & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		from = FirstOne(fromBB)
		for toBB = KnightAttacks(from) & target; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count] = makeMove(from, to, Knight, p.WhatPiece(to))
			count++
		}
	}

	for fromBB = p.Bishops & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		from = FirstOne(fromBB)
		for toBB = BishopAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count] = makeMove(from, to, Bishop, p.WhatPiece(to))
			count++
		}
	}

	for fromBB = p.Rooks & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		from = FirstOne(fromBB)
		for toBB = RookAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count] = makeMove(from, to, Rook, p.WhatPiece(to))
			count++
		}
	}

	for fromBB = p.Queens & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		from = FirstOne(fromBB)
		for toBB = QueenAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
			to = FirstOne(toBB)
			ml[count] = makeMove(from, to, Queen, p.WhatPiece(to))
			count++
		}
	}

	from = FirstOne(p.Kings & ownPieces)
	for toBB = KingAttacks(from) &^ ownPieces & kingTarget; toBB != 0; toBB &= toBB - 1 {
		to = FirstOne(toBB)
		ml[count] = makeMove(from, to, King, p.WhatPiece(to))
		count++
	}

	if wantQuiets && p.Checkers == 0 {
		if p.WhiteMove {
			if (p.CastleRights&WhiteKingSide) != 0 && (allPieces&f1g1Mask) == 0 &&
				!p.isAttackedBySide(SquareE1, false) && !p.isAttackedBySide(SquareF1, false) {
				ml[count] = whiteKingSideCastle
				count++
			}
			if (p.CastleRights&WhiteQueenSide) != 0 && (allPieces&b1d1Mask) == 0 &&
				!p.isAttackedBySide(SquareE1, false) && !p.isAttackedBySide(SquareD1, false) {
				ml[count] = whiteQueenSideCastle
				count++
			}
		} else {
			if (p.CastleRights&BlackKingSide) != 0 && (allPieces&f8g8Mask) == 0 &&
				!p.isAttackedBySide(SquareE8, true) && !p.isAttackedBySide(SquareF8, true) {
				ml[count] = blackKingSideCastle
				count++
			}
			if (p.CastleRights&BlackQueenSide) != 0 && (allPieces&b8d8Mask) == 0 &&
				!p.isAttackedBySide(SquareE8, true) && !p.isAttackedBySide(SquareD8, true) {
				ml[count] = blackQueenSideCastle
				count++
			}
		}
	}

	return ml[:count]
}

func rankMaskOf(rank int) uint64 {
	return Rank1Mask << uint(8*rank)
}
