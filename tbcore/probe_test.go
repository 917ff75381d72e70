package tbcore

import (
	"testing"

	"github.com/rs/zerolog"
)

// fakePosition is a minimal Position implementation for exercising the
// registry/probe driver without real Syzygy files or a real chess.Position.
type fakePosition struct {
	white, black materialCounts
	whiteToMove  bool
	checkers     uint64
	epSquare     int
	rule50       int
	pliesFromNull int
	key          uint64
	prev         *fakePosition
}

func (f *fakePosition) WhiteToMove() bool { return f.whiteToMove }
func (f *fakePosition) MaterialKey(stm bool) uint64 {
	if stm == f.whiteToMove {
		return 1
	}
	return 2
}
func (f *fakePosition) PieceCount() int {
	n := 2 // kings
	for _, c := range [...]materialCounts{f.white, f.black} {
		for _, v := range c {
			n += v
		}
	}
	return n
}
func (f *fakePosition) HasPawns() bool { return f.white[ptPawn]+f.black[ptPawn] > 0 }
func (f *fakePosition) PieceSquares(pieceType int, white bool) []int {
	c := f.black
	if white {
		c = f.white
	}
	var pt int
	switch pieceType {
	case pawnPieceType:
		pt = ptPawn
	case 2:
		pt = ptKnight
	case 3:
		pt = ptBishop
	case 4:
		pt = ptRook
	case 5:
		pt = ptQueen
	default:
		return nil
	}
	n := c[pt]
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
func (f *fakePosition) EPSquare() int          { return f.epSquare }
func (f *fakePosition) Rule50() int            { return f.rule50 }
func (f *fakePosition) PliesFromNull() int     { return f.pliesFromNull }
func (f *fakePosition) ZobristKey() uint64     { return f.key }
func (f *fakePosition) Checkers() uint64       { return f.checkers }
func (f *fakePosition) GivesCheck(m Move) bool { return false }
func (f *fakePosition) Previous() Position {
	if f.prev == nil {
		return nil
	}
	return f.prev
}

type fakeHost struct{}

func (fakeHost) Generate(p Position, cat MoveGenCategory, buf []Move) []Move { return buf[:0] }
func (fakeHost) Legal(p Position, m Move, pinned uint64) bool                { return true }
func (fakeHost) DoMove(p Position, m Move) (Position, bool)                  { return nil, false }

func newBareTablebase() *Tablebase {
	return NewTablebase(zerolog.Nop(), fakeHost{})
}

func TestProbeWDLBareKingsIsAlwaysDraw(t *testing.T) {
	tb := newBareTablebase()
	if err := tb.Init(""); err != nil {
		t.Fatal(err)
	}
	pos := &fakePosition{whiteToMove: true}
	wdl, success := tb.ProbeWDL(pos)
	if success != SuccessOK {
		t.Fatalf("ProbeWDL(KvK) success = %v, want SuccessOK", success)
	}
	if wdl != WDLDraw {
		t.Errorf("ProbeWDL(KvK) = %v, want WDLDraw", wdl)
	}
}

func TestProbeWDLMissingTableReportsMiss(t *testing.T) {
	tb := newBareTablebase()
	if err := tb.Init(""); err != nil {
		t.Fatal(err)
	}
	pos := &fakePosition{white: materialCounts{ptQueen: 1}, whiteToMove: true}
	_, success := tb.ProbeWDL(pos)
	if success != SuccessMiss {
		t.Errorf("ProbeWDL with no search path configured = %v, want SuccessMiss", success)
	}
}

func TestProbeWDLRejectsMoreThanSixPieces(t *testing.T) {
	tb := newBareTablebase()
	pos := &fakePosition{white: materialCounts{ptQueen: 1, ptRook: 1, ptBishop: 1}, black: materialCounts{ptQueen: 1, ptKnight: 1}, whiteToMove: true}
	if pos.PieceCount() <= 6 {
		t.Fatalf("test fixture has %d pieces, want >6", pos.PieceCount())
	}
	_, success := tb.ProbeWDL(pos)
	if success != SuccessMiss {
		t.Errorf("ProbeWDL with >6 pieces = %v, want SuccessMiss", success)
	}
}
