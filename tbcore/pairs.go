package tbcore

import "github.com/tablebase-go/syzygy/tbcore/internal/bits"

// pairsData holds one subtable's compressed-block layout and canonical-code
// decode tables (spec.md §4.2 "Pairs Decoder" + §3 data model). It is filled
// in by the Table Layout Parser (layout.go) directly from the mapped file
// bytes; every slice here is a window into the mmap'd region, never copied.
type pairsData struct {
	blockSize     int
	idxBits       int
	numIndices    int
	realNumBlocks int
	numBlocks     int
	maxLen        int
	minLen        int

	offset     []byte // 2 bytes per length, indexed by (len - minLen)
	sympat     []byte // 3 bytes per symbol
	indexTable []byte // 6 bytes per index block
	sizeTable  []byte // 2 bytes per physical block
	data       []byte // compressed bit stream, blockSize-aligned

	base   []uint64
	symlen []uint8

	pieces [6]int
	factor [6]uint64
	norm   [6]uint8
}

// decompressPairs decodes the symbol at literal index idx and returns its
// payload byte (a WDL score 0..4, or for DTZ the stored value before
// mapDTZScore remaps it), per the
// canonical-code + symbol-pair-tree scheme described in spec.md §4.2.
func decompressPairs(d *pairsData, idx uint64) int {
	if d.idxBits == 0 {
		return d.minLen
	}

	blockIdx := uint32(idx >> uint(d.idxBits))
	litIdx := int(idx&((uint64(1)<<uint(d.idxBits))-1)) - (1 << uint(d.idxBits-1))

	block := bits.LE32(d.indexTable[6*blockIdx:])
	litIdx += int(bits.LE16(d.indexTable[6*blockIdx+4:]))

	for litIdx < 0 {
		block--
		litIdx += int(bits.LE16(d.sizeTable[2*block:])) + 1
	}
	for litIdx > int(bits.LE16(d.sizeTable[2*block:])) {
		litIdx -= int(bits.LE16(d.sizeTable[2*block:])) + 1
		block++
	}

	ptr := d.data[uint64(block)<<uint(d.blockSize):]
	code := bits.BE64(ptr)
	ptr = ptr[8:]

	m := d.minLen
	bitcnt := 0

	var sym int
	for {
		l := m
		for code < d.base[l-d.minLen] {
			l++
		}
		sym = int(bits.LE16(d.offset[2*(l-d.minLen):]))
		sym += int((code - d.base[l-d.minLen]) >> uint(64-l))

		if litIdx < int(d.symlen[sym])+1 {
			break
		}
		litIdx -= int(d.symlen[sym]) + 1
		code <<= uint(l)
		bitcnt += l

		if bitcnt >= 32 {
			bitcnt -= 32
			code |= uint64(bits.BE32(ptr)) << uint(bitcnt)
			ptr = ptr[4:]
		}
	}

	for d.symlen[sym] != 0 {
		w := d.sympat[3*sym:]
		s1 := (int(w[1]&0xf) << 8) | int(w[0])
		if litIdx < int(d.symlen[s1])+1 {
			sym = s1
		} else {
			litIdx -= int(d.symlen[s1]) + 1
			sym = (int(w[2]) << 4) | int(w[1]>>4)
		}
	}

	return int(d.sympat[3*sym])
}

// calcSymLen fills in d.symlen[s] by recursively summing the lengths of the
// symbol-pair tree rooted at s, memoized through done.
func calcSymLen(d *pairsData, s int, done []bool) {
	w := d.sympat[3*s:]
	s2 := (int(w[2]) << 4) | int(w[1]>>4)
	if s2 == 0xfff {
		d.symlen[s] = 0
	} else {
		s1 := (int(w[1]&0xf) << 8) | int(w[0])
		if !done[s1] {
			calcSymLen(d, s1, done)
		}
		if !done[s2] {
			calcSymLen(d, s2, done)
		}
		d.symlen[s] = d.symlen[s1] + d.symlen[s2] + 1
	}
	done[s] = true
}
