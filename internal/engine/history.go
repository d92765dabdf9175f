package engine

import (
	"sync/atomic"

	"github.com/FireFather/chesscore/internal/board"
)

// PieceToHistory is a [piece][to-square] stat table. A node stores a pointer
// to the table slice for the move it just played; child nodes 1 and 2 plies
// down read it to score move-pair patterns.
// Ported from Stockfish's PieceToHistory.
type PieceToHistory [12][64]int

// contHistWeight scales the continuation-history bonus by how far back the
// paired move was played. Ply 1 and 2 carry most of the signal; the tail
// mostly catches long maneuvering patterns.
// Weights follow Stockfish's update_continuation_histories.
var contHistWeight = [7]int{0, 1024, 640, 320, 256, 128, 64}

// GetContinuationHistoryTable returns the continuation-history table for the
// move that just placed piece on toSq. The caller parks the pointer in its
// search stack entry so descendant nodes can index it directly.
func (mo *MoveOrderer) GetContinuationHistoryTable(piece board.Piece, toSq board.Square) *PieceToHistory {
	if piece >= board.NoPiece || toSq >= board.NoSquare {
		return nil
	}
	return &mo.continuationHistory[piece][toSq]
}

// UpdateContinuationHistory credits (or debits) the move-pair (prevPiece on
// prevTo, then piece on toSq) observed plyBack plies apart. The bonus decays
// with ply distance via contHistWeight.
func (mo *MoveOrderer) UpdateContinuationHistory(prevPiece board.Piece, prevTo board.Square, piece board.Piece, toSq board.Square, depth, plyBack int, isGood bool) {
	if prevPiece >= board.NoPiece || piece >= board.NoPiece {
		return
	}
	if plyBack < 1 || plyBack >= len(contHistWeight) {
		return
	}

	bonus := int(float64(depth*depth)*historyScale()) * contHistWeight[plyBack] / 1024
	entry := &mo.continuationHistory[prevPiece][prevTo][piece][toSq]
	if isGood {
		*entry += bonus
		if *entry > historyClampBound {
			mo.scaleContinuationHistory()
		}
	} else {
		*entry -= bonus
		if *entry < -historyClampBound {
			*entry = -historyClampBound
		}
	}
}

// scaleContinuationHistory halves every continuation-history entry once any
// of them hits the clamp bound, preserving relative ordering.
func (mo *MoveOrderer) scaleContinuationHistory() {
	for p := range mo.continuationHistory {
		for sq := range mo.continuationHistory[p] {
			for p2 := range mo.continuationHistory[p][sq] {
				for sq2 := range mo.continuationHistory[p][sq][p2] {
					mo.continuationHistory[p][sq][p2][sq2] /= 2
				}
			}
		}
	}
}

// SharedHistory is the one history table all Lazy SMP workers write to, so a
// refutation found by any worker steers every worker's move ordering.
// Entries are atomics only to keep the race detector quiet; a lost update
// here perturbs ordering and nothing else.
type SharedHistory struct {
	table [64][64]atomic.Int32
}

// NewSharedHistory creates an empty shared history table.
func NewSharedHistory() *SharedHistory {
	return &SharedHistory{}
}

// Get returns the shared history score for a from/to square pair.
func (sh *SharedHistory) Get(from, to int) int {
	return int(sh.table[from][to].Load())
}

// Update adds bonus to the from/to entry, halving the entry when it drifts
// past the clamp bound. The check-then-store is not atomic as a pair; a
// concurrent writer can at worst delay the halving by one update.
func (sh *SharedHistory) Update(from, to, bonus int) {
	v := sh.table[from][to].Add(int32(bonus))
	if v > historyClampBound || v < -historyClampBound {
		sh.table[from][to].Store(v / 2)
	}
}

// Clear zeroes the shared table for a new game.
func (sh *SharedHistory) Clear() {
	for i := range sh.table {
		for j := range sh.table[i] {
			sh.table[i][j].Store(0)
		}
	}
}
