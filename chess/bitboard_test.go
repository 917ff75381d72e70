package chess

import "testing"

func TestFileRankMasksHaveEightBits(t *testing.T) {
	var tests = []struct {
		name string
		mask uint64
	}{
		{"A", FileAMask}, {"B", FileBMask}, {"C", FileCMask}, {"D", FileDMask},
		{"E", FileEMask}, {"F", FileFMask}, {"G", FileGMask}, {"H", FileHMask},
		{"1", Rank1Mask}, {"2", Rank2Mask}, {"3", Rank3Mask}, {"4", Rank4Mask},
		{"5", Rank5Mask}, {"6", Rank6Mask}, {"7", Rank7Mask}, {"8", Rank8Mask},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PopCount(tt.mask); got != 8 {
				t.Errorf("PopCount(%s) = %d, want 8", tt.name, got)
			}
		})
	}
}

func TestMoreThanOne(t *testing.T) {
	var tests = []struct {
		name  string
		value uint64
		want  bool
	}{
		{"zero", 0, false},
		{"one", 1, false},
		{"far one", 1 << 60, false},
		{"two ones", 3, true},
		{"two ones apart", 1<<6 | 1<<25, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MoreThanOne(tt.value); got != tt.want {
				t.Errorf("MoreThanOne(%d) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestFirstOneReturnsASetBit(t *testing.T) {
	var tests = []uint64{FileAMask, FileHMask, Rank1Mask, Rank8Mask, 0x0004085000500800, 1 << 63}
	for _, v := range tests {
		var sq = FirstOne(v)
		if v&squareMask[sq] == 0 {
			t.Errorf("FirstOne(%#x) = %d is not set in the bitboard", v, sq)
		}
	}
}

func TestSlidingAttacksExcludeOrigin(t *testing.T) {
	for sq := 0; sq < 64; sq++ {
		var rook = RookAttacks(sq, 0)
		var bishop = BishopAttacks(sq, 0)
		if rook&squareMask[sq] != 0 || bishop&squareMask[sq] != 0 {
			t.Errorf("attacks from %s include the origin square", SquareName(sq))
		}
	}
}

func TestBetweenSquaresOnSameRank(t *testing.T) {
	var got = BetweenSquares(SquareA1, SquareH1)
	var want = (FileBMask | FileCMask | FileDMask | FileEMask | FileFMask | FileGMask) & Rank1Mask
	if got != want {
		t.Errorf("BetweenSquares(a1,h1) = %#x, want %#x", got, want)
	}
	if BetweenSquares(SquareA1, SquareB3) != 0 {
		t.Errorf("BetweenSquares(a1,b3) should be 0 (not aligned)")
	}
}
