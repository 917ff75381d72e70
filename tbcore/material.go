package tbcore

import (
	"fmt"
	"strings"

	"github.com/tablebase-go/syzygy/chess"
)

const (
	ptPawn = iota
	ptKnight
	ptBishop
	ptRook
	ptQueen
	ptKing
)

var pieceLetters = "PNBRQK"

// materialCounts is the piece-count vector of one side, pawn through queen;
// kings are implicit (every side has exactly one).
type materialCounts [5]int

// signature builds a "KQPvKRP"-style material signature: the first side's
// pieces (king then queens..pawns, by descending value), a "v", then the
// second side's. It keeps the argument order; signatureOf is what puts the
// stronger side first.
func signature(white, black materialCounts) string {
	var sb strings.Builder
	sb.WriteByte('K')
	writeSide(&sb, white)
	sb.WriteByte('v')
	sb.WriteByte('K')
	writeSide(&sb, black)
	return sb.String()
}

func writeSide(sb *strings.Builder, c materialCounts) {
	for pt := ptQueen; pt >= ptPawn; pt-- {
		for i := 0; i < c[pt]; i++ {
			sb.WriteByte(pieceLetters[pt])
		}
	}
}

// countsFromPosition extracts the material-count vectors of both sides from
// a host Position.
func countsFromPosition(p Position, white bool) materialCounts {
	var c materialCounts
	c[ptPawn] = len(p.PieceSquares(chess.Pawn, white))
	c[ptKnight] = len(p.PieceSquares(chess.Knight, white))
	c[ptBishop] = len(p.PieceSquares(chess.Bishop, white))
	c[ptRook] = len(p.PieceSquares(chess.Rook, white))
	c[ptQueen] = len(p.PieceSquares(chess.Queen, white))
	return c
}

// signatureOf builds the canonical material signature of a position, e.g.
// "KQPvKRP". Syzygy filenames list the stronger-or-equal side first
// regardless of which color it is literally playing (original_source's
// WDLHash insertion enumerates pieces that way), so this orders by
// isStrongerOrEqual rather than assuming white is always first.
func signatureOf(p Position) string {
	white := countsFromPosition(p, true)
	black := countsFromPosition(p, false)
	if isStrongerOrEqual(white, black) {
		return signature(white, black)
	}
	return signature(black, white)
}

// tableFileName returns the bare on-disk table name (without extension or
// directory) for a material signature, e.g. "KQPvKRP". Syzygy filenames omit
// the "K" of the side with fewer total pieces when ambiguity cannot arise,
// but de Man's tools always include both kings explicitly, which is the
// convention followed here.
func tableFileName(sig string) string { return sig }

// hasUniquePieces reports whether at least 3 of the piece codes in pieces
// (colored piece types, kings included) occur exactly once, matching the original's
// hasUniquePieces classification (shared by the Index Encoder's king-group
// encoding, §4.4 step 9, and the Table Layout Parser's norm[] construction,
// §4.3 step 2c).
func hasUniquePieces(pieces []int) bool {
	seen := map[int]int{}
	for _, pc := range pieces {
		seen[pc]++
	}
	distinct := 0
	for _, n := range seen {
		if n == 1 {
			distinct++
		}
	}
	return distinct >= 3
}

// ValidationError reports a position this core cannot probe because it
// exceeds the six-piece ceiling (spec.md §1 Non-goals).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return "tbcore: " + e.Reason }

// validatePosition enforces the Non-goals boundary before any probe touches
// the table registry: at most six pieces total. Castling rights aren't
// observable through the Position interface and are checked neither here
// nor in ProbeWDL/ProbeDTZ; this check only guards the piece-count ceiling,
// the one property Position exposes directly.
func validatePosition(p Position) error {
	if n := p.PieceCount(); n > 6 {
		return &ValidationError{Reason: fmt.Sprintf("position has %d pieces, tablebase core supports at most 6", n)}
	}
	return nil
}
