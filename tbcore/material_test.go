package tbcore

import "testing"

func TestSignatureOrdersPiecesByDescendingValue(t *testing.T) {
	white := materialCounts{ptPawn: 1, ptRook: 1} // one pawn, one rook
	black := materialCounts{ptPawn: 1}
	if got, want := signature(white, black), "KRPvKP"; got != want {
		t.Errorf("signature() = %q, want %q", got, want)
	}
}

func TestSignatureBareKings(t *testing.T) {
	if got, want := signature(materialCounts{}, materialCounts{}), "KvK"; got != want {
		t.Errorf("signature() = %q, want %q", got, want)
	}
}

func TestSignatureOfOrdersStrongerSideFirstRegardlessOfColor(t *testing.T) {
	pos := &fakePosition{
		white:       materialCounts{ptPawn: 1},
		black:       materialCounts{ptQueen: 1},
		whiteToMove: true,
	}
	if got, want := signatureOf(pos), "KQvKP"; got != want {
		t.Errorf("signatureOf() = %q, want %q (literal black is stronger and must come first)", got, want)
	}
}

func TestHasUniquePieces(t *testing.T) {
	var tests = []struct {
		name   string
		pieces []int
		want   bool
	}{
		{"KRRvK two identical rooks", []int{6, 4, 4}, false},
		{"KQRvK queen+rook+king distinct", []int{6, 5, 4}, true},
		{"KBBvK two identical bishops", []int{6, 3, 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasUniquePieces(tt.pieces); got != tt.want {
				t.Errorf("hasUniquePieces(%v) = %v, want %v", tt.pieces, got, tt.want)
			}
		})
	}
}
