package chess

import "testing"

// https://www.chessprogramming.org/Perft_Results
func TestPerft(t *testing.T) {
	var tests = []struct {
		name  string
		fen   string
		depth int
		nodes int
	}{
		{"startpos d3", InitialPositionFen, 3, 8902},
		{"startpos d4", InitialPositionFen, 4, 197281},
		{"kiwipete d2", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2, 2039},
		{"kiwipete d3", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3, 97862},
		{"position3 d4", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 4, 43238},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p, err = NewPositionFromFEN(tt.fen)
			if err != nil {
				t.Fatal(err)
			}
			if got := perft(&p, tt.depth); got != tt.nodes {
				t.Errorf("perft(%q, %d) = %d, want %d", tt.fen, tt.depth, got, tt.nodes)
			}
		})
	}
}

func perft(p *Position, depth int) int {
	var buffer [MaxMoves]Move
	var result = 0
	var child Position
	for _, move := range p.Generate(Legal, buffer[:]) {
		if !p.MakeMove(move, &child) {
			continue
		}
		if depth > 1 {
			result += perft(&child, depth-1)
		} else {
			result++
		}
	}
	return result
}

func TestQuietMoveKeepsMaterialKey(t *testing.T) {
	var p, err = NewPositionFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var buffer [MaxMoves]Move
	var before = p.MaterialKey(true)
	for _, move := range p.Generate(Legal, buffer[:]) {
		var child Position
		if !p.MakeMove(move, &child) {
			continue
		}
		if !move.IsCapture() && !move.IsPromotion() {
			if child.MaterialKey(false) != before {
				t.Errorf("move %s changed material key without a capture/promotion", move)
			}
		}
	}
}
