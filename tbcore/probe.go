package tbcore

// WDLScore is one of the five Win/Draw/Loss outcomes spec.md §1 describes,
// from the probed position's side-to-move perspective.
type WDLScore int

const (
	WDLLoss       WDLScore = -2
	WDLCursedLoss WDLScore = -1
	WDLDraw       WDLScore = 0
	WDLCursedWin  WDLScore = 1
	WDLWin        WDLScore = 2
)

// Success is the result channel of every probe: a usable value, a
// cache/table miss the caller should fall back on search for, (via
// probeAB's alpha-beta cutoff) a value that was never fully resolved but is
// known to be at least/at most a bound, or, inside the DTZ probe chain, a
// declined one-sided DTZ lookup that calls for a one-ply move search.
type Success int

const (
	SuccessMiss            Success = 0
	SuccessOK              Success = 1
	SuccessOKBeta          Success = 2
	SuccessRetryMoveSearch Success = -1
)

// wdlToDTZTable is wdl_to_dtz from the original: it rescales a WDLScore
// (offset by 2 to index 0..4) onto the DTZ value scale, used wherever an
// en-passant correction needs to compare a WDL bound against a DTZ value.
var wdlToDTZTable = [5]int{-1, -101, 0, 101, 1}

// ProbeWDL answers the position's WDL outcome (spec.md §6.2). pos must
// already satisfy the Non-goals boundary (<=6 pieces, no castling rights);
// ProbeWDL returns SuccessMiss if the position's material signature has no
// mapped table.
func (t *Tablebase) ProbeWDL(pos Position) (WDLScore, Success) {
	if err := validatePosition(pos); err != nil {
		return WDLDraw, SuccessMiss
	}
	success := SuccessOK
	v := t.probeWDL(pos, &success)
	return v, success
}

// probeWDL is probe_wdl from the original: probeAB's capture-only search,
// corrected for en passant. probeAB alone cannot see an ep capture (probeAB
// deliberately excludes it, spec.md §4.5), so when one is available this
// replays it separately and folds the result back in, including the
// zugzwang case where the losing ep capture is the only legal move.
func (t *Tablebase) probeWDL(pos Position, success *Success) WDLScore {
	*success = SuccessOK
	v := t.probeAB(pos, WDLLoss, WDLWin, success)

	if pos.EPSquare() == -1 {
		return v
	}
	if *success == SuccessMiss {
		return WDLDraw
	}

	var buf [64]Move
	cat := Captures
	if pos.Checkers() != 0 {
		cat = Evasions
	}
	moves := t.host.Generate(pos, cat, buf[:])
	pinned := pinnedOf(pos)

	v1 := WDLScore(-3)
	for _, m := range moves {
		if !isEnPassant(pos, m) || !t.host.Legal(pos, m, pinned) {
			continue
		}
		child, ok := t.host.DoMove(pos, m)
		if !ok {
			continue
		}
		v0 := -t.probeAB(child, WDLLoss, WDLWin, success)
		if *success == SuccessMiss {
			return WDLDraw
		}
		if v0 > v1 {
			v1 = v0
		}
	}

	if v1 > -3 {
		if v1 >= v {
			v = v1
		} else if v == WDLDraw && !t.hasLegalNonEPMove(pos, moves, pinned) {
			// Forced to play the losing ep capture: no other legal move
			// exists, so the position's true value is v1, not the draw
			// probeAB found by ignoring en passant.
			v = v1
		}
	}

	return v
}

// probeWDLTable is probe_wdl_table from the original: a direct table lookup
// with no search, used as probeAB's leaf evaluator.
func (t *Tablebase) probeWDLTable(pos Position, success *Success) WDLScore {
	if pos.PieceCount() <= 2 {
		return WDLDraw // KvK
	}

	e, miss := t.entryForSignature(pos)
	if e == nil {
		*success = miss
		if *success == SuccessOK {
			*success = SuccessMiss
		}
		return WDLDraw
	}

	res := encodeIndex(pos, e.body, e.key, e.key2, e.symmetric, e.hasPawns, e.pieceCount)
	raw := decompressPairs(res.precomp, res.idx)
	return WDLScore(raw - 2)
}

// probeAB is the alpha-beta driver restricted to captures (spec.md §4.5):
// it recurses over capturing replies only, trusting that any position with
// a non-capture best move is adequately scored by the leaf table lookup,
// since DTZ/WDL tables are only consulted for <=6-piece positions where a
// capture always exists on the path to the zeroing move that matters here.
// En passant is deliberately excluded; probeWDL/probeDTZFull fold it back
// in afterward.
func (t *Tablebase) probeAB(pos Position, alpha, beta WDLScore, success *Success) WDLScore {
	var buf [64]Move
	cat := Captures
	if pos.Checkers() != 0 {
		cat = Evasions
	}
	moves := t.host.Generate(pos, cat, buf[:])
	pinned := pinnedOf(pos)

	for _, m := range moves {
		if !isCaptureMove(m) || isEnPassant(pos, m) {
			continue
		}
		if !t.host.Legal(pos, m, pinned) {
			continue
		}
		child, ok := t.host.DoMove(pos, m)
		if !ok {
			continue
		}
		v := -t.probeAB(child, -beta, -alpha, success)
		if *success == SuccessMiss {
			return WDLDraw
		}
		if v > alpha {
			if v >= beta {
				*success = SuccessOKBeta
				return v
			}
			alpha = v
		}
	}

	value := t.probeWDLTable(pos, success)
	if *success == SuccessMiss {
		return WDLDraw
	}
	if alpha >= value {
		if alpha > 0 {
			*success = SuccessOKBeta
		} else {
			*success = SuccessOK
		}
		return alpha
	}
	*success = SuccessOK
	return value
}

// ProbeDTZ answers the position's DTZ value (spec.md §6.2, §4.5). The
// returned int is signed plies-to-zeroing from the side-to-move's
// perspective; magnitudes over 100 flag a 50-move-rule-bounded draw
// per spec.md §1.
func (t *Tablebase) ProbeDTZ(pos Position) (int, Success) {
	if err := validatePosition(pos); err != nil {
		return 0, SuccessMiss
	}
	success := SuccessOK
	v := t.probeDTZFull(pos, &success)
	return v, success
}

// probeDTZFull is probe_dtz from the original: probeDTZNoEP's result,
// corrected for en passant the same way probeWDL corrects probeAB's. The
// correction table differs from probeWDL's because DTZ values carry
// magnitude (plies, not just a WDL class), so the five branches below each
// compare v (the no-ep DTZ) against v1 (the ep capture's DTZ-scaled WDL) on
// the axis that matters for that magnitude band.
func (t *Tablebase) probeDTZFull(pos Position, success *Success) int {
	*success = SuccessOK
	v := t.probeDTZNoEP(pos, success)

	if pos.EPSquare() == -1 {
		return v
	}
	if *success == SuccessMiss {
		return 0
	}

	var buf [64]Move
	cat := Captures
	if pos.Checkers() != 0 {
		cat = Evasions
	}
	moves := t.host.Generate(pos, cat, buf[:])
	pinned := pinnedOf(pos)

	v1 := WDLScore(-3)
	for _, m := range moves {
		if !isEnPassant(pos, m) || !t.host.Legal(pos, m, pinned) {
			continue
		}
		child, ok := t.host.DoMove(pos, m)
		if !ok {
			continue
		}
		v0 := -t.probeAB(child, WDLLoss, WDLWin, success)
		if *success == SuccessMiss {
			return 0
		}
		if v0 > v1 {
			v1 = v0
		}
	}

	if v1 <= -3 {
		return v
	}
	dtz1 := wdlToDTZTable[v1+2]

	switch {
	case v < -100:
		if dtz1 >= 0 {
			v = dtz1
		}
	case v < 0:
		if dtz1 >= 0 || dtz1 < -100 {
			v = dtz1
		}
	case v > 100:
		if dtz1 > 0 {
			v = dtz1
		}
	case v > 0:
		if dtz1 == 1 {
			v = dtz1
		}
	case dtz1 >= 0:
		v = dtz1
	default:
		if !t.hasLegalNonEPMove(pos, moves, pinned) {
			v = dtz1
		}
	}

	return v
}

// probeDTZNoEP treats a position as if en passant captures don't exist,
// matching probe_dtz_no_ep. Step 4's recursion into probeDTZFull (not back
// into itself) matches the original calling the full ep-correcting
// probe_dtz from inside probe_dtz_no_ep's fallback.
func (t *Tablebase) probeDTZNoEP(pos Position, success *Success) int {
	wdl := t.probeAB(pos, WDLLoss, WDLWin, success)
	if *success == SuccessMiss {
		return 0
	}
	if wdl == WDLDraw {
		return 0
	}
	if *success == SuccessOKBeta {
		if wdl == WDLWin {
			return 1
		}
		return 101
	}

	var buf [64]Move
	var stack []Move
	pinned := pinnedOf(pos)

	if wdl > 0 {
		cat := NonEvasions
		if pos.Checkers() != 0 {
			cat = Evasions
		}
		stack = t.host.Generate(pos, cat, buf[:])
		for _, m := range stack {
			if !isPawnMove(m) || isCaptureMove(m) {
				continue
			}
			if !t.host.Legal(pos, m, pinned) {
				continue
			}
			child, ok := t.host.DoMove(pos, m)
			if !ok {
				continue
			}
			v := -t.probeAB(child, WDLLoss, WDLCursedWin-wdl, success)
			if *success == SuccessMiss {
				return 0
			}
			if v == wdl {
				if v == WDLWin {
					return 1
				}
				return 101
			}
		}
	}

	dtz := 1 + t.probeDTZTable(pos, wdl, success)
	if *success != SuccessRetryMoveSearch {
		if int(wdl)&1 != 0 {
			dtz += 100
		}
		if wdl >= 0 {
			return dtz
		}
		return -dtz
	}

	// The DTZ table declined (wrong side to move stored); fall back to a
	// one-ply search that asks probeDTZFull about every reply instead.
	*success = SuccessOK

	if wdl > 0 {
		best := 0xffff
		for _, m := range stack {
			if isCaptureMove(m) || isPawnMove(m) {
				continue
			}
			if !t.host.Legal(pos, m, pinned) {
				continue
			}
			child, ok := t.host.DoMove(pos, m)
			if !ok {
				continue
			}
			v := -t.probeDTZFull(child, success)
			if *success == SuccessMiss {
				return 0
			}
			if v > 0 && v+1 < best {
				best = v + 1
			}
		}
		return best
	}

	best := -1
	cat := NonEvasions
	if pos.Checkers() != 0 {
		cat = Evasions
	}
	var buf2 [64]Move
	moves := t.host.Generate(pos, cat, buf2[:])
	for _, m := range moves {
		if !t.host.Legal(pos, m, pinned) {
			continue
		}
		child, ok := t.host.DoMove(pos, m)
		if !ok {
			continue
		}

		var v int
		if child.Rule50() == 0 {
			if wdl == WDLLoss {
				v = -1
			} else {
				abv := t.probeAB(child, WDLCursedWin, WDLWin, success)
				if abv == WDLWin {
					v = 0
				} else {
					v = -101
				}
			}
		} else {
			v = -t.probeDTZFull(child, success) - 1
		}

		if *success == SuccessMiss {
			return 0
		}
		if v < best {
			best = v
		}
	}
	return best
}

// probeDTZTable is probe_dtz_table from the original: a direct lookup in
// the one-sided DTZ table, used once probeDTZNoEP has established wdl. A
// DTZ table only stores one side to move; check_dtz_stm's Go equivalent
// dtzSTMMatches declines the lookup (SuccessRetryMoveSearch) when pos is on
// the other side, rather than decompressing a value for the wrong position.
func (t *Tablebase) probeDTZTable(pos Position, wdl WDLScore, success *Success) int {
	e, miss := t.entryForDTZ(pos)
	if e == nil {
		*success = miss
		if *success == SuccessOK {
			*success = SuccessMiss
		}
		return 0
	}

	res := encodeIndex(pos, e.body, e.key, e.key2, e.symmetric, e.hasPawns, e.pieceCount)
	if !dtzSTMMatches(e.body, res.tbFile, res.stm) {
		*success = SuccessRetryMoveSearch
		return 0
	}

	raw := decompressPairs(res.precomp, res.idx)
	return mapDTZScore(e.body, res.tbFile, raw, wdl)
}

// mapDTZScore applies the DTZ value map (spec.md §3's extra DTZ flags) and
// the plies-vs-moves doubling rule from the original's map_score.
func mapDTZScore(body tableBody, file int, value int, wdl WDLScore) int {
	var flags uint8
	var mapData []byte
	var mapIdx [4]uint16

	switch b := body.(type) {
	case *dtzPiecelessBody:
		flags = b.sub.flags
		mapData = b.mapData
		mapIdx = b.sub.mapIdx
	case *dtzPawnBody:
		if file < 0 || file > 3 {
			file = 0
		}
		flags = b.sub[file].flags
		mapData = b.mapData
		mapIdx = b.sub[file].mapIdx
	default:
		return value - 2
	}

	wdlMap := [5]int{1, 3, 0, 2, 0}
	if flags&dtzFlagMapped != 0 {
		sel := wdlMap[wdl+2]
		off := int(mapIdx[sel])
		if off >= 0 && off+value < len(mapData) {
			value = int(mapData[off+value])
		}
	}

	if (wdl == WDLWin && flags&dtzFlagWinPlies == 0) ||
		(wdl == WDLLoss && flags&dtzFlagLossPlies == 0) ||
		wdl == WDLCursedWin || wdl == WDLCursedLoss {
		value *= 2
	}
	return value
}

// hasLegalNonEPMove reports whether pos has a legal move other than an
// en-passant capture, checking generated (the already-generated Captures or
// Evasions buffer) before falling back to generating Quiets - mirroring the
// original's reuse of its capture stack ahead of a fresh QUIETS generation,
// and only trying Quiets at all when pos isn't in check (an Evasions buffer
// already lists every legal reply to a check).
func (t *Tablebase) hasLegalNonEPMove(pos Position, generated []Move, pinned uint64) bool {
	for _, m := range generated {
		if isEnPassant(pos, m) {
			continue
		}
		if t.host.Legal(pos, m, pinned) {
			return true
		}
	}
	if pos.Checkers() != 0 {
		return false
	}
	var buf [64]Move
	for _, m := range t.host.Generate(pos, Quiets, buf[:]) {
		if t.host.Legal(pos, m, pinned) {
			return true
		}
	}
	return false
}

func pinnedOf(pos Position) uint64 {
	if v, ok := pos.(posView); ok {
		return v.underlying().PinnedPieces()
	}
	return 0
}

func isCaptureMove(m Move) bool { return m.IsCapture() }
func isPawnMove(m Move) bool    { return m.MovingPiece() == pawnPieceType }

// isEnPassant reports whether m captures via en passant: chess.Position's
// move encoding has no dedicated ep flag, so the only way to tell is that
// the move's destination is the position's en-passant square.
func isEnPassant(pos Position, m Move) bool {
	return m.MovingPiece() == pawnPieceType && m.To() == pos.EPSquare() && pos.EPSquare() != -1
}
