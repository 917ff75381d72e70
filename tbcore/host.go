package tbcore

import "github.com/tablebase-go/syzygy/chess"

// Move and MoveGenCategory are the probe driver's view of the host's move
// representation. chess.Move and chess.Category already match this shape
// exactly (spec.md §6.1), so they are reused directly rather than mirrored.
type Move = chess.Move
type MoveGenCategory = chess.Category

const (
	Captures    = chess.Captures
	Evasions    = chess.Evasions
	NonEvasions = chess.NonEvasions
	Quiets      = chess.Quiets
	Legal       = chess.Legal
)

// Position is the minimal read-only view of a chess position the Index
// Encoder and Probe Driver need (spec.md §6.1). A host engine that is not
// package chess implements this directly; WrapPosition adapts a
// *chess.Position.
type Position interface {
	WhiteToMove() bool
	MaterialKey(stm bool) uint64
	PieceCount() int
	HasPawns() bool
	PieceSquares(pieceType int, white bool) []int
	EPSquare() int
	Rule50() int
	PliesFromNull() int
	Previous() Position
	ZobristKey() uint64
	Checkers() uint64
	GivesCheck(m Move) bool
}

// Host bundles the move-generation and make/unmake capabilities the Probe
// Driver and Root Filter need beyond read-only Position access.
type Host interface {
	Generate(p Position, cat MoveGenCategory, buf []Move) []Move
	Legal(p Position, m Move, pinned uint64) bool
	DoMove(p Position, m Move) (Position, bool)
}

// posView adapts a *chess.Position to Position. It is the concrete host
// realization named in spec.md §6.1: "this repository ships a concrete host
// implementation (package chess)".
type posView struct {
	p *chess.Position
}

// WrapPosition adapts a chess.Position to the Position interface the probe
// driver consumes.
func WrapPosition(p *chess.Position) Position {
	if p == nil {
		return nil
	}
	return posView{p}
}

func (v posView) WhiteToMove() bool               { return v.p.WhiteMove }
func (v posView) MaterialKey(stm bool) uint64     { return v.p.MaterialKey(stm) }
func (v posView) PieceCount() int                 { return v.p.PieceCount() }
func (v posView) HasPawns() bool                  { return v.p.HasPawns() }
func (v posView) PieceSquares(pt int, w bool) []int { return v.p.PieceSquares(pt, w) }
func (v posView) EPSquare() int                   { return v.p.EpSquare }
func (v posView) Rule50() int                     { return v.p.Rule50 }
func (v posView) PliesFromNull() int              { return v.p.PliesFromNull }
func (v posView) ZobristKey() uint64              { return v.p.Key }
func (v posView) Checkers() uint64                { return v.p.Checkers }
func (v posView) GivesCheck(m Move) bool          { return v.p.GivesCheck(m) }

func (v posView) Previous() Position {
	if v.p.Previous == nil {
		return nil
	}
	return posView{v.p.Previous}
}

func (v posView) underlying() *chess.Position { return v.p }

// ChessHost is the default Host backed by package chess, used whenever the
// caller probes with a Position produced by WrapPosition.
type ChessHost struct{}

func (ChessHost) Generate(p Position, cat MoveGenCategory, buf []Move) []Move {
	return p.(posView).underlying().Generate(cat, buf)
}

func (ChessHost) Legal(p Position, m Move, pinned uint64) bool {
	return p.(posView).underlying().Legal(m, pinned)
}

// DoMove plays m against p, returning the resulting Position and whether the
// move was legal (a pseudo-legal move can leave the mover's own king in
// check, mirroring chess.Position.MakeMove's bool result).
func (ChessHost) DoMove(p Position, m Move) (Position, bool) {
	var child chess.Position
	if !p.(posView).underlying().MakeMove(m, &child) {
		return nil, false
	}
	return posView{&child}, true
}
