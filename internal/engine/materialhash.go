package engine

import "github.com/FireFather/chesscore/internal/board"

// EndgameTag classifies the material balance into broad buckets so that
// applyEndgameTag can scale drawish endgames toward zero: opposite-colored
// bishops and KRvKR by 1-0.5*coef, a lone minor by 1-0.15*coef. The
// positional terms still run for tagged positions; there is no KBNK tag.
type EndgameTag uint8

const (
	EndgameNone           EndgameTag = iota
	EndgameOppositeBishops            // single bishop each, opposite colored squares
	EndgameKRvKR                      // rook endgame, notoriously drawish
	EndgamePawnsOnly                  // king+pawn endgame, no pieces
	EndgameLoneMinor                  // one side has only a king and a single minor
)

// MaterialEntry caches per-material-signature facts: game-phase weight for
// tapered eval interpolation, an endgame classification tag, and knight/rook
// value corrections that depend on the opponent's remaining pawn count
// (knights get relatively weaker, rooks relatively stronger, as pawns come
// off — the classic Kaufman adjustment).
type MaterialEntry struct {
	Key          uint64
	Phase        int // 0 (pure endgame) .. maxPhase (full middlegame material)
	Tag          EndgameTag
	KnightAdjust [2]int16 // added to each side's knight value
	RookAdjust   [2]int16 // added to each side's rook value
	Score        int16    // material balance (White perspective) with adjustments applied
	EndgameCoef  float64  // 0 at 14 non-pawn pieces .. 1 at 2 non-pawn pieces
}

const maxPhase = 24 // 4 knights+4 bishops(1 each)+4 rooks(2 each)+2 queens(4 each) weighting, Stockfish-style

var phaseWeight = [6]int{0, 1, 1, 2, 4, 0} // pawn, knight, bishop, rook, queen, king

// MaterialTable caches MaterialEntry values keyed by Position.MaterialKey.
type MaterialTable struct {
	entries []MaterialEntry
	mask    uint64
}

// NewMaterialTable creates a material cache with the given size in MB.
func NewMaterialTable(sizeMB int) *MaterialTable {
	entrySize := 24
	numEntries := (sizeMB * 1024 * 1024) / entrySize
	size := 1
	for size*2 <= numEntries {
		size *= 2
	}
	if size == 0 {
		size = 1
	}
	return &MaterialTable{
		entries: make([]MaterialEntry, size),
		mask:    uint64(size - 1),
	}
}

// Probe looks up a material evaluation by key.
func (mt *MaterialTable) Probe(key uint64) (*MaterialEntry, bool) {
	entry := &mt.entries[key&mt.mask]
	if entry.Key == key {
		return entry, true
	}
	return nil, false
}

// Store saves a computed material entry in the cache.
func (mt *MaterialTable) Store(entry MaterialEntry) {
	mt.entries[entry.Key&mt.mask] = entry
}

// Clear clears the material table.
func (mt *MaterialTable) Clear() {
	for i := range mt.entries {
		mt.entries[i] = MaterialEntry{}
	}
}

// ComputeMaterialEntry builds a MaterialEntry from scratch for a position.
func ComputeMaterialEntry(pos *board.Position) MaterialEntry {
	entry := MaterialEntry{Key: pos.MaterialKey}

	phase := 0
	for c := board.White; c <= board.Black; c++ {
		for pt := board.Knight; pt < board.King; pt++ {
			phase += pos.Pieces[c][pt].PopCount() * phaseWeight[pt]
		}
	}
	if phase > maxPhase {
		phase = maxPhase
	}
	entry.Phase = phase

	for c := board.White; c <= board.Black; c++ {
		them := c.Other()
		pawns := pos.Pieces[them][board.Pawn].PopCount()
		// Knights lose value as the opponent's pawns disappear (fewer
		// outposts/blockades to leverage); rooks gain relative value in
		// open, pawn-light positions.
		entry.KnightAdjust[c] = int16((pawns - 5) * 2)
		entry.RookAdjust[c] = int16((5 - pawns) * 3)
	}

	entry.Tag = classifyEndgame(pos)

	var score int
	nonPawn := 0
	for c := board.White; c <= board.Black; c++ {
		sign := 1
		if c == board.Black {
			sign = -1
		}
		score += sign * pos.Pieces[c][board.Pawn].PopCount() * PawnValue
		knights := pos.Pieces[c][board.Knight].PopCount()
		score += sign * knights * (KnightValue + int(entry.KnightAdjust[c]))
		score += sign * pos.Pieces[c][board.Bishop].PopCount() * BishopValue
		rooks := pos.Pieces[c][board.Rook].PopCount()
		score += sign * rooks * (RookValue + int(entry.RookAdjust[c]))
		score += sign * pos.Pieces[c][board.Queen].PopCount() * QueenValue
		nonPawn += knights + pos.Pieces[c][board.Bishop].PopCount() + rooks + pos.Pieces[c][board.Queen].PopCount()
	}
	entry.Score = int16(score)

	coef := float64(14-nonPawn) / 12.0
	if coef < 0 {
		coef = 0
	}
	if coef > 1 {
		coef = 1
	}
	entry.EndgameCoef = coef

	return entry
}

func classifyEndgame(pos *board.Position) EndgameTag {
	totalNonPawn := 0
	for c := board.White; c <= board.Black; c++ {
		for pt := board.Knight; pt <= board.Queen; pt++ {
			totalNonPawn += pos.Pieces[c][pt].PopCount()
		}
	}
	if totalNonPawn == 0 {
		return EndgamePawnsOnly
	}

	wMinor := pos.Pieces[board.White][board.Knight].PopCount() + pos.Pieces[board.White][board.Bishop].PopCount()
	bMinor := pos.Pieces[board.Black][board.Knight].PopCount() + pos.Pieces[board.Black][board.Bishop].PopCount()
	wMajor := pos.Pieces[board.White][board.Rook].PopCount() + pos.Pieces[board.White][board.Queen].PopCount()
	bMajor := pos.Pieces[board.Black][board.Rook].PopCount() + pos.Pieces[board.Black][board.Queen].PopCount()

	if wMajor == 0 && bMajor == 0 && wMinor == 1 && bMinor == 0 {
		return EndgameLoneMinor
	}
	if wMajor == 0 && bMajor == 0 && bMinor == 1 && wMinor == 0 {
		return EndgameLoneMinor
	}

	if pos.Pieces[board.White][board.Bishop].PopCount() == 1 && pos.Pieces[board.Black][board.Bishop].PopCount() == 1 &&
		pos.Pieces[board.White][board.Knight] == 0 && pos.Pieces[board.Black][board.Knight] == 0 &&
		pos.Pieces[board.White][board.Rook] == 0 && pos.Pieces[board.Black][board.Rook] == 0 &&
		pos.Pieces[board.White][board.Queen] == 0 && pos.Pieces[board.Black][board.Queen] == 0 {
		wBishopSq := pos.Pieces[board.White][board.Bishop].LSB()
		bBishopSq := pos.Pieces[board.Black][board.Bishop].LSB()
		if isLightSquare(wBishopSq) != isLightSquare(bBishopSq) {
			return EndgameOppositeBishops
		}
	}

	if pos.Pieces[board.White][board.Rook].PopCount() == 1 && pos.Pieces[board.Black][board.Rook].PopCount() == 1 &&
		wMinor == 0 && bMinor == 0 &&
		pos.Pieces[board.White][board.Queen] == 0 && pos.Pieces[board.Black][board.Queen] == 0 {
		return EndgameKRvKR
	}

	return EndgameNone
}

func isLightSquare(sq board.Square) bool {
	return (sq.File()+sq.Rank())%2 != 0
}
