package chess

import (
	"strings"
	"unicode"
)

func let(ok bool, yes, no int) int {
	if ok {
		return yes
	}
	return no
}

func FlipSquare(sq int) int { return sq ^ 56 }
func FlipFile(sq int) int   { return sq ^ 7 }

func File(sq int) int { return sq & 7 }
func Rank(sq int) int { return sq >> 3 }

func AbsDelta(x, y int) int {
	if x > y {
		return x - y
	}
	return y - x
}

func FileDistance(sq1, sq2 int) int { return AbsDelta(File(sq1), File(sq2)) }
func RankDistance(sq1, sq2 int) int { return AbsDelta(Rank(sq1), Rank(sq2)) }

func SquareDistance(sq1, sq2 int) int {
	var fd, rd = FileDistance(sq1, sq2), RankDistance(sq1, sq2)
	if fd > rd {
		return fd
	}
	return rd
}

func MakeSquare(file, rank int) int { return (rank << 3) | file }

const (
	fileNames = "abcdefgh"
	rankNames = "12345678"
)

func SquareName(sq int) string {
	return string(fileNames[File(sq)]) + string(rankNames[Rank(sq)])
}

func ParseSquare(s string) int {
	if s == "-" {
		return SquareNone
	}
	var file = strings.Index(fileNames, s[0:1])
	var rank = strings.Index(rankNames, s[1:2])
	return MakeSquare(file, rank)
}

type coloredPiece struct {
	Type int
	Side bool
}

func parsePiece(ch rune) coloredPiece {
	var side = unicode.IsUpper(ch)
	var spiece = string(unicode.ToLower(ch))
	var i = strings.Index("pnbrqk", spiece)
	if i < 0 {
		return coloredPiece{Empty, false}
	}
	return coloredPiece{i + Pawn, side}
}

func pieceToChar(pieceType int, side bool) string {
	var result = string("pnbrqk"[pieceType-Pawn])
	if side {
		result = strings.ToUpper(result)
	}
	return result
}

func makeMove(from, to, movingPiece, capturedPiece int) Move {
	return Move(from ^ (to << 6) ^ (movingPiece << 12) ^ (capturedPiece << 15))
}

func (m Move) From() int           { return int(m & 63) }
func (m Move) To() int             { return int((m >> 6) & 63) }
func (m Move) MovingPiece() int    { return int((m >> 12) & 7) }
func (m Move) CapturedPiece() int  { return int((m >> 15) & 7) }
func (m Move) Promotion() int      { return int((m >> 18) & 7) }
func (m Move) IsCapture() bool     { return m.CapturedPiece() != Empty }
func (m Move) IsPromotion() bool   { return m.Promotion() != Empty }

func (m Move) String() string {
	if m == MoveEmpty {
		return "0000"
	}
	var sPromotion = ""
	if m.Promotion() != Empty {
		sPromotion = string("nbrq"[m.Promotion()-Knight])
	}
	return SquareName(m.From()) + SquareName(m.To()) + sPromotion
}

// WithDecrementedPromotion returns a copy of a promotion-capture move whose
// promotion piece is stepped down by one (Queen->Rook->Bishop->Knight). It
// reports false once the promotion piece is a Knight or the move is not a
// promotion.
func (m Move) WithDecrementedPromotion() (Move, bool) {
	var promo = m.Promotion()
	if promo <= Knight {
		return MoveEmpty, false
	}
	return (m &^ (7 << 18)) | Move((promo-1)<<18), true
}

func MakePiece(pieceType int, white bool) int {
	if white {
		return pieceType
	}
	return pieceType + 7
}
