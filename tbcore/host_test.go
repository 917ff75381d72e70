package tbcore

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/tablebase-go/syzygy/chess"
)

func TestChessHostKvKIsAlwaysDraw(t *testing.T) {
	pos, err := chess.NewPositionFromFEN("8/8/4k3/8/8/3K4/8/8 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}

	tb := NewTablebase(zerolog.Nop(), ChessHost{})
	if err := tb.Init(""); err != nil {
		t.Fatal(err)
	}

	view := WrapPosition(&pos)
	wdl, success := tb.ProbeWDL(view)
	if success != SuccessOK || wdl != WDLDraw {
		t.Errorf("ProbeWDL(KvK) = (%v, %v), want (WDLDraw, SuccessOK)", wdl, success)
	}
}

func TestWrapPositionPreviousChain(t *testing.T) {
	pos, err := chess.NewPositionFromFEN(chess.InitialPositionFen)
	if err != nil {
		t.Fatal(err)
	}
	var child chess.Position
	var buf [chess.MaxMoves]chess.Move
	moves := pos.Generate(chess.Legal, buf[:])
	if len(moves) == 0 {
		t.Fatal("startpos has no legal moves")
	}
	if !pos.MakeMove(moves[0], &child) {
		t.Fatal("first legal move should be playable")
	}

	view := WrapPosition(&child)
	if view.Previous() == nil {
		t.Fatal("Previous() should return the pre-move position")
	}
	if view.Previous().ZobristKey() != pos.Key {
		t.Error("Previous().ZobristKey() should match the parent position's key")
	}
}
