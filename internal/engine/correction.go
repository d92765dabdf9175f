package engine

import (
	"github.com/FireFather/chesscore/internal/board"
)

// CorrectionHistory adjusts static evaluation based on search results.
// When the search discovers the static eval was wrong, we record the error
// and apply corrections to similar positions in the future. Keyed by pawn
// structure (PawnKey) rather than the full position hash: pawn skeleton is
// the dominant driver of static-eval error across otherwise different piece
// placements, so positions sharing one benefit from the same correction,
// and the table stays useful across many more positions than a full-hash
// key would allow. Two colors are kept per pawn-key slot since the same
// skeleton means something different depending on who is to move.
// Based on Stockfish's correction history.
type CorrectionHistory struct {
	// Pawn-structure correction indexed by [pawnKey & mask][sideToMove].
	// Uses 16-bit entries to save memory.
	pawnCorr [65536][2]int16
}

const correctionTableMask = 65535

// NewCorrectionHistory creates a new correction history table.
func NewCorrectionHistory() *CorrectionHistory {
	return &CorrectionHistory{}
}

// correctionScale reads the active Tunables.CorrectionScale, defaulting to
// 1 if the engine hasn't installed tunables yet (zero value of Tunables).
func correctionScale() float64 {
	if currentTunables.CorrectionScale == 0 {
		return 1.0
	}
	return currentTunables.CorrectionScale
}

// Get returns the correction value for a position, scaled by
// Tunables.CorrectionScale. The correction should be added to the static
// evaluation.
func (ch *CorrectionHistory) Get(pos *board.Position) int {
	idx := pos.PawnKey & correctionTableMask
	raw := int(ch.pawnCorr[idx][pos.SideToMove])
	return int(float64(raw) * correctionScale())
}

// Update records a correction based on the difference between
// the static evaluation and the search result.
// Uses gravity update: new = old + (target - old) / 16
func (ch *CorrectionHistory) Update(pos *board.Position, searchScore, staticEval, depth int) {
	// Only update if we have meaningful data
	if depth < 1 {
		return
	}

	// Calculate the error
	diff := searchScore - staticEval

	// Scale bonus by depth (deeper searches are more reliable)
	bonus := diff * depth / 8

	// Clamp the bonus to prevent extreme updates
	if bonus > 256 {
		bonus = 256
	} else if bonus < -256 {
		bonus = -256
	}

	idx := pos.PawnKey & correctionTableMask
	stm := pos.SideToMove
	old := int(ch.pawnCorr[idx][stm])

	// Gravity update: gradually move toward the target
	newVal := old + (bonus-old)/16

	// Clamp to int16 range but with reasonable limits
	if newVal > 16000 {
		newVal = 16000
	} else if newVal < -16000 {
		newVal = -16000
	}

	ch.pawnCorr[idx][stm] = int16(newVal)
}

// Clear resets all correction values.
func (ch *CorrectionHistory) Clear() {
	for i := range ch.pawnCorr {
		ch.pawnCorr[i][0] = 0
		ch.pawnCorr[i][1] = 0
	}
}

// Age scales down all correction values (called between games/positions).
func (ch *CorrectionHistory) Age() {
	for i := range ch.pawnCorr {
		ch.pawnCorr[i][0] /= 2
		ch.pawnCorr[i][1] /= 2
	}
}
