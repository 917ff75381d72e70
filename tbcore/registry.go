package tbcore

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// dtzMRUCap bounds the DTZ table cache, matching the original's DTZTable
// list (spec.md §9 Open Question 3: kept as a fixed, unexported constant).
const dtzMRUCap = 64

// Tablebase is the public entry point (spec.md §6.2): it owns the Table
// Registry (directory list, WDL entries keyed by material signature, the
// DTZ MRU list) and drives the Probe Driver and Root Filter against a Host.
type Tablebase struct {
	log  zerolog.Logger
	host Host

	dirs []string

	mu  sync.Mutex
	wdl map[uint64]*wdlEntry // keyed by the signature's canonical material key

	dtzMu  sync.Mutex
	dtz    []*dtzEntry // MRU order, front = most recently used
	dtzIdx map[uint64]*dtzEntry

	sf singleflight.Group

	// MaxCardinality is the largest piece count across every table the
	// registry has successfully mapped so far (spec.md SUPPLEMENTED
	// FEATURES, TB_LARGEST). A host probing a position with more pieces
	// than this can skip the attempt outright.
	MaxCardinality int
}

// NewTablebase constructs an unready Tablebase; call Init before probing.
func NewTablebase(logger zerolog.Logger, host Host) *Tablebase {
	return &Tablebase{
		log:    logger,
		host:   host,
		wdl:    make(map[uint64]*wdlEntry),
		dtzIdx: make(map[uint64]*dtzEntry),
	}
}

// Init records the tablebase search path(s), separated by the host's
// path-list separator (':' on POSIX, ';' on Windows). It does not eagerly
// load any table; WDL/DTZ entries are mapped lazily on first probe (spec.md
// §5 "double-checked lazy init"), so Init never fails on a missing table
// file. Search directories that do not exist are logged and dropped, and
// Init returns nil even when none remain; an empty path list simply
// disables probing (every probe that needs a table then reports
// SuccessMiss).
func (t *Tablebase) Init(paths string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	candidates := searchPaths(paths)
	t.wdl = make(map[uint64]*wdlEntry)
	t.dtzIdx = make(map[uint64]*dtzEntry)
	t.dtz = nil
	t.MaxCardinality = 0

	if len(candidates) == 0 {
		t.dirs = nil
		t.log.Warn().Msg("tb.init: empty search path, probing disabled")
		return nil
	}

	// Stat every configured directory concurrently, one goroutine per
	// directory (DOMAIN STACK's "concurrent directory-existence scanning"):
	// a directory that doesn't exist is dropped from the search list now so
	// findTableFile never has to touch it again on every later probe.
	present := make([]bool, len(candidates))
	g, ctx := errgroup.WithContext(context.Background())
	for i, dir := range candidates {
		i, dir := i, dir
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			st, err := os.Stat(dir)
			if err != nil {
				t.log.Warn().Str("dir", dir).Err(err).Msg("tb.init: search directory unavailable")
				return nil
			}
			if !st.IsDir() {
				t.log.Warn().Str("dir", dir).Msg("tb.init: search path is not a directory")
				return nil
			}
			present[i] = true
			t.log.Debug().Str("dir", dir).Msg("tb.init: scanning search directory")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("tbcore: init: %w", err)
	}

	t.dirs = t.dirs[:0]
	for i, dir := range candidates {
		if present[i] {
			t.dirs = append(t.dirs, dir)
		}
	}
	t.log.Info().Strs("dirs", t.dirs).Msg("tb.init")
	return nil
}

// entryForSignature looks up (and lazily maps, via singleflight so
// concurrent first-probers collapse into one file load) the WDL entry for
// pos's material signature. It returns (nil, SuccessMiss) if no table file
// exists in any search directory.
func (t *Tablebase) entryForSignature(pos Position) (*wdlEntry, Success) {
	if pos.PieceCount() <= 2 {
		return nil, SuccessOK // KvK: always a draw, no table needed
	}

	key := pos.MaterialKey(true)

	t.mu.Lock()
	e, ok := t.wdl[key]
	t.mu.Unlock()

	if !ok {
		sig := signatureOf(pos)
		key2 := pos.MaterialKey(false)
		v, _, _ := t.sf.Do("wdl:"+sig, func() (interface{}, error) {
			t.mu.Lock()
			if existing, ok := t.wdl[key]; ok {
				t.mu.Unlock()
				return existing, nil
			}
			t.mu.Unlock()

			ne, loadErr := t.loadWDL(sig, pos)
			if loadErr != nil {
				// Suppress the entry entirely: once a signature's .rtbw is
				// known absent, no later probe re-scans the search dirs for
				// it (spec.md §5).
				t.log.Debug().Err(loadErr).Str("sig", sig).Msg("tb.miss")
				miss := &wdlEntry{key: key, key2: key2, sig: sig, missing: true}
				t.mu.Lock()
				t.wdl[key] = miss
				t.wdl[key2] = miss
				t.mu.Unlock()
				return miss, nil
			}

			t.mu.Lock()
			t.wdl[key] = ne
			t.wdl[ne.key2] = ne
			if ne.pieceCount > t.MaxCardinality {
				t.MaxCardinality = ne.pieceCount
			}
			t.mu.Unlock()
			return ne, nil
		})
		e = v.(*wdlEntry)
	}
	if e.missing {
		return nil, SuccessMiss
	}
	return e, SuccessOK
}

func (t *Tablebase) loadWDL(sig string, pos Position) (*wdlEntry, error) {
	path, ok := findTableFile(t.dirs, sig, ".rtbw")
	if !ok {
		return nil, fmt.Errorf("no .rtbw for %s", sig)
	}

	h := mapFile(path, wdlMagic)

	pieceCount := pos.PieceCount()
	hasPawns := pos.HasPawns()
	symmetric := isSymmetric(pos)
	pawnCounts := pawnSignatureCounts(pos)

	body, err := parseWDL(h.body(), pieceCount, hasPawns, pawnCounts, symmetric)
	if err != nil {
		unmapFileOS(h.os)
		return nil, err
	}

	e := &wdlEntry{
		key:        pos.MaterialKey(true),
		key2:       pos.MaterialKey(false),
		pieceCount: pieceCount,
		symmetric:  symmetric,
		hasPawns:   hasPawns,
		sig:        sig,
		mapped:     h,
		body:       body,
	}
	return e, nil
}

// entryForDTZ is the DTZ analogue of entryForSignature, additionally
// maintaining the MRU list capped at dtzMRUCap (spec.md §9 Open Question 1
// and 3, DESIGN.md's decisions).
func (t *Tablebase) entryForDTZ(pos Position) (*dtzEntry, Success) {
	if pos.PieceCount() <= 2 {
		return nil, SuccessOK
	}

	key := pos.MaterialKey(true)

	t.dtzMu.Lock()
	if e, ok := t.dtzIdx[key]; ok {
		t.touchDTZ(e)
		t.dtzMu.Unlock()
		if e.missing {
			return nil, SuccessMiss
		}
		return e, SuccessOK
	}
	t.dtzMu.Unlock()

	sig := signatureOf(pos)
	key2 := pos.MaterialKey(false)
	v, _, _ := t.sf.Do("dtz:"+sig, func() (interface{}, error) {
		t.dtzMu.Lock()
		if existing, ok := t.dtzIdx[key]; ok {
			t.dtzMu.Unlock()
			return existing, nil
		}
		t.dtzMu.Unlock()

		ne, loadErr := t.loadDTZ(sig, pos)
		if loadErr != nil {
			// Leave an empty entry in the MRU list rather than suppressing
			// the signature forever: the slot is still subject to eviction
			// like any other, so a later retry is possible once it ages out
			// (spec.md §5).
			t.log.Debug().Err(loadErr).Str("sig", sig).Msg("tb.miss")
			ne = &dtzEntry{key: key, key2: key2, sig: sig, missing: true}
		}

		t.dtzMu.Lock()
		t.dtzIdx[ne.key] = ne
		t.dtzIdx[ne.key2] = ne
		t.dtz = append([]*dtzEntry{ne}, t.dtz...)
		t.evictDTZLocked()
		t.dtzMu.Unlock()
		return ne, nil
	})
	e := v.(*dtzEntry)
	if e.missing {
		return nil, SuccessMiss
	}
	return e, SuccessOK
}

func (t *Tablebase) loadDTZ(sig string, pos Position) (*dtzEntry, error) {
	path, ok := findTableFile(t.dirs, sig, ".rtbz")
	if !ok {
		return nil, fmt.Errorf("no .rtbz for %s", sig)
	}

	h := mapFile(path, dtzMagic)

	pieceCount := pos.PieceCount()
	hasPawns := pos.HasPawns()
	symmetric := isSymmetric(pos)
	pawnCounts := pawnSignatureCounts(pos)

	body, _, err := parseDTZ(h.body(), pieceCount, hasPawns, pawnCounts, symmetric)
	if err != nil {
		unmapFileOS(h.os)
		return nil, err
	}

	e := &dtzEntry{
		key:        pos.MaterialKey(true),
		key2:       pos.MaterialKey(false),
		pieceCount: pieceCount,
		symmetric:  symmetric,
		hasPawns:   hasPawns,
		sig:        sig,
		mapped:     h,
		body:       body,
	}
	return e, nil
}

// touchDTZ moves e to the front of the MRU list; caller holds dtzMu.
func (t *Tablebase) touchDTZ(e *dtzEntry) {
	for i, cur := range t.dtz {
		if cur == e {
			t.dtz = append(t.dtz[:i], t.dtz[i+1:]...)
			break
		}
	}
	t.dtz = append([]*dtzEntry{e}, t.dtz...)
}

// evictDTZLocked drops the least-recently-used DTZ entry once the cache
// exceeds dtzMRUCap; caller holds dtzMu.
func (t *Tablebase) evictDTZLocked() {
	for len(t.dtz) > dtzMRUCap {
		victim := t.dtz[len(t.dtz)-1]
		t.dtz = t.dtz[:len(t.dtz)-1]
		delete(t.dtzIdx, victim.key)
		delete(t.dtzIdx, victim.key2)
		t.log.Debug().Str("sig", victim.sig).Msg("tb.evict")
	}
}

func isSymmetric(pos Position) bool {
	return countsFromPosition(pos, true) == countsFromPosition(pos, false)
}

// pawnSignatureCounts returns [strongerSidePawns, weakerSidePawns] as the
// layout parser expects, derived from the position currently being probed
// (the stronger side is whichever side the signature lists first).
func pawnSignatureCounts(pos Position) [2]int {
	w := countsFromPosition(pos, true)
	b := countsFromPosition(pos, false)
	if isStrongerOrEqual(w, b) {
		return [2]int{w[ptPawn], b[ptPawn]}
	}
	return [2]int{b[ptPawn], w[ptPawn]}
}

// isStrongerOrEqual orders two material vectors the way the signature
// builder does: more total value first, tie-broken lexicographically from
// queens down to pawns.
func isStrongerOrEqual(a, b materialCounts) bool {
	av, bv := materialValue(a), materialValue(b)
	if av != bv {
		return av >= bv
	}
	for pt := ptQueen; pt >= ptPawn; pt-- {
		if a[pt] != b[pt] {
			return a[pt] > b[pt]
		}
	}
	return true
}

func materialValue(c materialCounts) int {
	return c[ptQueen]*9 + c[ptRook]*5 + c[ptBishop]*3 + c[ptKnight]*3 + c[ptPawn]
}
