package tbcore

// Root Filter (spec.md §4.6): narrows a host's legal root move list down to
// the DTZ/WDL-optimal subset, so the host's search only has to pick among
// moves tablebase-proven equally good.

// RootProbe is root_probe from the original: DTZ-driven. It scores every
// move in *moves from the root side's perspective, then retains only the
// subset that preserves the root's WDL-optimal result (spec.md §4.6), and
// reports the root's WDL-scale classification through score. On any probe
// failure it returns false and leaves *moves untouched, matching the
// original's "no moves were filtered out" contract.
func (t *Tablebase) RootProbe(pos Position, moves *[]Move, score *int) bool {
	list := *moves

	dtz, success := t.ProbeDTZ(pos)
	if success == SuccessMiss {
		return false
	}

	scores := make([]int, len(list))
	for i, m := range list {
		child, ok := t.host.DoMove(pos, m)
		if !ok {
			return false
		}

		v := 0
		if dtz > 0 && child.Checkers() != 0 {
			var buf [256]Move
			if len(t.host.Generate(child, Legal, buf[:])) == 0 {
				v = 1
			}
		}

		if v == 0 {
			if child.Rule50() != 0 {
				d, s := t.ProbeDTZ(child)
				success = s
				v = -d
				if v > 0 {
					v++
				} else if v < 0 {
					v--
				}
			} else {
				wdl, s := t.ProbeWDL(child)
				success = s
				v = wdlToDTZTable[int(-wdl)+2]
			}
		}

		if success == SuccessMiss {
			return false
		}
		scores[i] = v
	}

	// The root position's own 50-move counter; every root move above was
	// played against and undone from this same position, so it never
	// changes across the loop.
	cnt50 := pos.Rule50()

	wdl := 0
	switch {
	case dtz > 0:
		if dtz+cnt50 <= 100 {
			wdl = 2
		} else {
			wdl = 1
		}
	case dtz < 0:
		if -dtz+cnt50 <= 100 {
			wdl = -2
		} else {
			wdl = -1
		}
	}
	if score != nil {
		*score = wdl
	}

	kept := list[:0]
	switch {
	case dtz > 0: // winning (or 50-move-rule draw)
		best := 0xffff
		for _, v := range scores {
			if v > 0 && v < best {
				best = v
			}
		}
		max := best
		if !hasRepeated(pos) && best+cnt50 <= 99 {
			max = 99 - cnt50
		}
		for i, v := range scores {
			if v > 0 && v <= max {
				kept = append(kept, list[i])
			}
		}
	case dtz < 0: // losing (or 50-move-rule draw)
		best := 0
		for _, v := range scores {
			if v < best {
				best = v
			}
		}
		if -best*2+cnt50 < 100 {
			return true // plenty of room left; every move stays
		}
		for i, v := range scores {
			if v == best {
				kept = append(kept, list[i])
			}
		}
	default: // drawing
		for i, v := range scores {
			if v == 0 {
				kept = append(kept, list[i])
			}
		}
	}

	*moves = kept
	return true
}

// RootProbeWDL is root_probe_wdl from the original: WDL-only fallback used
// when DTZ tables are unavailable. It retains only moves whose child WDL
// equals the negated best child WDL.
func (t *Tablebase) RootProbeWDL(pos Position, moves *[]Move, score *int) bool {
	list := *moves

	wdl, success := t.ProbeWDL(pos)
	if success == SuccessMiss {
		return false
	}
	if score != nil {
		*score = int(wdl)
	}

	scores := make([]WDLScore, len(list))
	best := WDLLoss
	for i, m := range list {
		child, ok := t.host.DoMove(pos, m)
		if !ok {
			return false
		}
		v, s := t.ProbeWDL(child)
		v = -v
		if s == SuccessMiss {
			return false
		}
		scores[i] = v
		if v > best {
			best = v
		}
	}

	kept := list[:0]
	for i, v := range scores {
		if v == best {
			kept = append(kept, list[i])
		}
	}
	*moves = kept
	return true
}

// hasRepeated reports whether the unbroken run of reversible moves leading
// to pos contains an earlier position with the same side to move and the
// same Zobrist key (spec.md §4.6), mirroring the original's has_repeated:
// for each ply st walking back from pos.Previous(), scan same-side-to-move
// ancestors (two plies apart) up to min(st.Rule50(), st.PliesFromNull()),
// since a null move resets PliesFromNull without resetting Rule50 and the
// repetition can only recur within whichever window closes first.
func hasRepeated(pos Position) bool {
	for st := pos.Previous(); st != nil; st = st.Previous() {
		e := min(st.Rule50(), st.PliesFromNull())
		if e < 4 {
			return false
		}
		stp := back2(st)
		for i := 4; i <= e; i += 2 {
			stp = back2(stp)
			if stp == nil {
				return false
			}
			if stp.ZobristKey() == st.ZobristKey() {
				return true
			}
		}
	}
	return false
}

// back2 steps two plies back through Previous, returning nil if either step
// runs off the end of the chain.
func back2(p Position) Position {
	if p == nil {
		return nil
	}
	p = p.Previous()
	if p == nil {
		return nil
	}
	return p.Previous()
}
