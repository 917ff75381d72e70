package tbcore

import (
	"fmt"

	"github.com/tablebase-go/syzygy/tbcore/internal/bits"
)

// Table Layout Parser (spec.md §4.3). The on-disk body (everything after the
// 4-byte magic) is a single byte stream; each step below advances a cursor
// through it exactly as the original's raw-pointer walk does, just using a
// slice-and-reslice style instead of pointer arithmetic.

const (
	layoutFlagSplit    = 1
	layoutFlagHasPawns = 2
)

// setNorms fills precomp.norm: norm[0] is the lead-group size (pawn count,
// or 3/2 depending on hasUniquePieces for a pawnless table); subsequent
// entries group consecutive identical remaining pieces together, the
// encoding unit the Index Encoder's Binomial step consumes.
func setNorms(d *pairsData, pieceCount int, lead [2]int) {
	d.norm[0] = uint8(lead[0])
	if lead[1] != 0 {
		d.norm[lead[0]] = uint8(lead[1])
	}
	for i := lead[0] + lead[1]; i < pieceCount; i += int(d.norm[i]) {
		for j := i; j < pieceCount && d.pieces[j] == d.pieces[i]; j++ {
			d.norm[i]++
		}
	}
}

func pfactorOf(d *pairsData, hasUnique, hasPawns bool, file int) int {
	if !hasPawns {
		if hasUnique {
			return 31332
		}
		return 462
	}
	idx := int(d.norm[0]) - 1
	if idx < 0 || idx > 4 {
		idx = 0
	}
	if file < 0 || file > 3 {
		file = 0
	}
	return pfactor[idx][file]
}

// setFactors computes precomp.factor[], the mixed-radix multipliers the
// Index Encoder multiplies each encoding group's sub-index by, and returns
// the table's total size (number of distinct positions).
func setFactors(d *pairsData, pieceCount int, order [2]int, hasUnique bool, hasPawns bool, file int) uint64 {
	i := int(d.norm[0])
	if order[1] < 0xF {
		i += int(d.norm[i])
	}
	n := 64 - i
	size := uint64(1)

	for k := 0; i < pieceCount || k == order[0] || k == order[1]; k++ {
		switch {
		case k == order[0]:
			d.factor[0] = size
			size *= uint64(pfactorOf(d, hasUnique, hasPawns, file))
		case k == order[1]:
			d.factor[d.norm[0]] = size
			size *= uint64(binomial[d.norm[d.norm[0]]][48-int(d.norm[0])])
		default:
			if i >= pieceCount {
				panic("tbcore: setFactors loop ran past pieceCount without satisfying order[]")
			}
			d.factor[i] = size
			size *= uint64(binomial[d.norm[i]][n])
			n -= int(d.norm[i])
			i += int(d.norm[i])
		}
		if k > pieceCount+4 {
			panic("tbcore: setFactors failed to terminate")
		}
	}
	return size
}

// setSizes parses one subtable's block-compression header (spec.md §4.2's
// block index table / size table framing) and returns the remaining stream.
func setSizes(d *pairsData, data []byte, tbSize uint64) []byte {
	if data[0]&0x80 != 0 {
		d.minLen = int(data[1])
		return data[2:]
	}
	data = data[1:]

	d.blockSize = int(data[0])
	d.idxBits = int(data[1])
	d.numIndices = int((tbSize + (1 << uint(d.idxBits)) - 1) >> uint(d.idxBits))
	d.numBlocks = int(data[2])
	d.realNumBlocks = int(bits.LE32(data[3:]))
	d.numBlocks += d.realNumBlocks
	data = data[7:]
	d.maxLen = int(data[0])
	d.minLen = int(data[1])
	data = data[2:]

	d.offset = data
	baseLen := d.maxLen - d.minLen + 1
	d.base = make([]uint64, baseLen)
	for i := baseLen - 2; i >= 0; i-- {
		d.base[i] = (d.base[i+1] + uint64(bits.LE16(d.offset[2*i:])) - uint64(bits.LE16(d.offset[2*(i+1):]))) / 2
	}
	for i := range d.base {
		d.base[i] <<= uint(64 - d.minLen - i)
	}

	data = data[2*baseLen:]
	symlenCount := int(bits.LE16(data))
	data = data[2:]
	d.symlen = make([]uint8, symlenCount)
	d.sympat = data

	done := make([]bool, symlenCount)
	for i := 0; i < symlenCount; i++ {
		if !done[i] {
			calcSymLen(d, i, done)
		}
	}

	consumed := 3*symlenCount + (symlenCount & 1)
	return data[consumed:]
}

func align(data []byte, n int) []byte {
	if extra := len(data) % n; extra != 0 {
		return data[n-extra:]
	}
	return data
}

// pieceOrder decodes the two 4-bit orderings ({order0, order1} for stm 0 and
// stm 1) and advances past the order/pieces header of one file's block.
func pieceOrder(data []byte, pp bool) (order [2][2]int, rest []byte) {
	order[0][0] = int(data[0] & 0xf)
	order[1][0] = int(data[0] >> 4)
	if pp {
		order[0][1] = int(data[1] & 0xf)
		order[1][1] = int(data[1] >> 4)
		rest = data[2:]
	} else {
		order[0][1] = 0xF
		order[1][1] = 0xF
		rest = data[1:]
	}
	return order, rest
}

// parseWDL builds the tableBody for a WDL (.rtbw) table from its mapped
// body bytes (past the 4-byte magic), per spec.md §4.3 steps 1-4.
func parseWDL(body []byte, pieceCount int, hasPawns bool, pawnCounts [2]int, symmetric bool) (tableBody, error) {
	data := body
	flags := data[0]
	data = data[1:]

	if (flags&layoutFlagHasPawns != 0) != hasPawns {
		return nil, fmt.Errorf("tbcore: WDL header hasPawns mismatch")
	}

	maxFile := 0
	if hasPawns {
		maxFile = 3
	}
	pp := hasPawns && pawnCounts[1] != 0

	var piecelessUnique bool
	var tbSize [8]uint64
	var subtables [4][2]*pairsData // [file][stm]

	var pieceleless piecelessBody
	var pawnb pawnBody
	pawnb.pawnCounts = pawnCounts
	pawnb.symmetric = symmetric
	pieceleless.symmetric = symmetric

	for f := 0; f <= maxFile; f++ {
		if hasPawns {
			subtables[f][0] = &pawnb.sub[0][f]
			subtables[f][1] = &pawnb.sub[1][f]
		} else {
			subtables[f][0] = &pieceleless.sub[0]
			subtables[f][1] = &pieceleless.sub[1]
		}

		var order [2][2]int
		order, data = pieceOrder(data, pp)

		for i := 0; i < pieceCount; i++ {
			subtables[f][0].pieces[i] = int(data[i] & 0xf)
			subtables[f][1].pieces[i] = int(data[i] >> 4)
		}
		data = data[pieceCount:]

		hasUnique := hasUniquePieces(subtables[f][0].pieces[:pieceCount])
		piecelessUnique = hasUnique

		pn := [2]int{2, 0}
		if hasUnique {
			pn[0] = 3
		}

		for k := 0; k < 2; k++ {
			lead := pn
			if hasPawns {
				lead = pawnCounts
			}
			setNorms(subtables[f][k], pieceCount, lead)
			tbSize[2*f+k] = setFactors(subtables[f][k], pieceCount, order[k], hasUnique, hasPawns, f)
		}
	}

	data = align(data, 2)

	split := 1
	if symmetric {
		split = 0
	}
	for f := 0; f <= maxFile; f++ {
		for k := 0; k <= split; k++ {
			data = setSizes(subtables[f][k], data, tbSize[2*f+k])
		}
	}
	for f := 0; f <= maxFile; f++ {
		for k := 0; k <= split; k++ {
			d := subtables[f][k]
			d.indexTable = data[:6*d.numIndices]
			data = data[6*d.numIndices:]
		}
	}
	for f := 0; f <= maxFile; f++ {
		for k := 0; k <= split; k++ {
			d := subtables[f][k]
			d.sizeTable = data[:2*d.numBlocks]
			data = data[2*d.numBlocks:]
		}
	}
	for f := 0; f <= maxFile; f++ {
		for k := 0; k <= split; k++ {
			data = align(data, 64)
			d := subtables[f][k]
			n := (1 << uint(d.blockSize)) * d.realNumBlocks
			d.data = data[:n]
			data = data[n:]
		}
	}

	if hasPawns {
		return &pawnb, nil
	}
	pieceleless.hasUnique = piecelessUnique
	return &pieceleless, nil
}

// parseDTZ builds the tableBody for a one-sided DTZ (.rtbz) table, per
// spec.md §4.3 steps 1-4 and §3's DTZ-specific flags/map fields.
func parseDTZ(body []byte, pieceCount int, hasPawns bool, pawnCounts [2]int, symmetric bool) (tableBody, []byte, error) {
	data := body
	flags := data[0]
	data = data[1:]

	if (flags&layoutFlagHasPawns != 0) != hasPawns {
		return nil, nil, fmt.Errorf("tbcore: DTZ header hasPawns mismatch")
	}

	maxFile := 0
	if hasPawns {
		maxFile = 3
	}
	pp := hasPawns && pawnCounts[1] != 0

	var tbSize [4]uint64
	var subs [4]*dtzSubtable
	var piecelessUnique bool

	var pieceless dtzPiecelessBody
	var pawnb dtzPawnBody
	pawnb.pawnCounts = pawnCounts
	pawnb.symmetric = symmetric
	pieceless.symmetric = symmetric

	for f := 0; f <= maxFile; f++ {
		if hasPawns {
			subs[f] = &pawnb.sub[f]
		} else {
			subs[f] = &pieceless.sub
		}

		var order [2][2]int
		order, data = pieceOrder(data, pp)

		for i := 0; i < pieceCount; i++ {
			subs[f].pairs.pieces[i] = int(data[i] & 0xf)
		}
		data = data[pieceCount:]

		hasUnique := hasUniquePieces(subs[f].pairs.pieces[:pieceCount])
		piecelessUnique = hasUnique

		pn := [2]int{2, 0}
		if hasUnique {
			pn[0] = 3
		}
		lead := pn
		if hasPawns {
			lead = pawnCounts
		}
		setNorms(&subs[f].pairs, pieceCount, lead)
		tbSize[f] = setFactors(&subs[f].pairs, pieceCount, order[0], hasUnique, hasPawns, f)
	}

	data = align(data, 2)

	for f := 0; f <= maxFile; f++ {
		subs[f].flags = data[0]
		data = setSizes(&subs[f].pairs, data, tbSize[f])
	}

	mapBase := data
	for f := 0; f <= maxFile; f++ {
		if subs[f].flags&dtzFlagMapped != 0 {
			for i := 0; i < 4; i++ {
				subs[f].mapIdx[i] = uint16(len(mapBase) - len(data) + 1)
				n := int(data[0])
				data = data[n+1:]
			}
		}
	}
	if hasPawns {
		pawnb.mapData = mapBase
	} else {
		pieceless.mapData = mapBase
	}

	data = align(data, 2)

	for f := 0; f <= maxFile; f++ {
		d := &subs[f].pairs
		d.indexTable = data[:6*d.numIndices]
		data = data[6*d.numIndices:]
	}
	for f := 0; f <= maxFile; f++ {
		d := &subs[f].pairs
		d.sizeTable = data[:2*d.numBlocks]
		data = data[2*d.numBlocks:]
	}
	for f := 0; f <= maxFile; f++ {
		data = align(data, 64)
		d := &subs[f].pairs
		n := (1 << uint(d.blockSize)) * d.realNumBlocks
		d.data = data[:n]
		data = data[n:]
	}

	if hasPawns {
		return &pawnb, mapBase, nil
	}
	pieceless.hasUnique = piecelessUnique
	return &pieceless, mapBase, nil
}
