package engine

import "github.com/FireFather/chesscore/internal/board"

// PawnEntry stores cached pawn structure evaluation, keyed by PawnKey (pawn
// placement only — independent of every other piece on the board). Besides
// the material-independent mg/eg score it also records the structural sets
// passed/isolated/doubled pawns and semi-open files; the terms in eval.go
// compute their own and do not read these.
type PawnEntry struct {
	Key           uint64
	MgScore       int16
	EgScore       int16
	Passed        [2]board.Bitboard
	Isolated      [2]board.Bitboard
	Doubled       [2]board.Bitboard
	Backward      [2]board.Bitboard
	SemiOpenFiles [2]uint8 // bit i set => side has no pawn on file i
	LockedCenter  bool     // d/e-file pawns mutually blocked; recorded, not read by any evaluation term
}

// PawnTable is a hash table for caching pawn structure evaluations.
type PawnTable struct {
	entries []PawnEntry
	mask    uint64
}

// NewPawnTable creates a new pawn hash table with the given size in MB.
func NewPawnTable(sizeMB int) *PawnTable {
	entrySize := 96
	numEntries := (sizeMB * 1024 * 1024) / entrySize

	size := 1
	for size*2 <= numEntries {
		size *= 2
	}
	if size == 0 {
		size = 1
	}

	return &PawnTable{
		entries: make([]PawnEntry, size),
		mask:    uint64(size - 1),
	}
}

// Probe looks up a pawn structure evaluation in the hash table.
func (pt *PawnTable) Probe(key uint64) (*PawnEntry, bool) {
	entry := &pt.entries[key&pt.mask]
	if entry.Key == key {
		return entry, true
	}
	return nil, false
}

// Store saves a fully computed pawn structure entry in the hash table.
func (pt *PawnTable) Store(entry PawnEntry) {
	pt.entries[entry.Key&pt.mask] = entry
}

// Clear clears the pawn hash table.
func (pt *PawnTable) Clear() {
	for i := range pt.entries {
		pt.entries[i] = PawnEntry{}
	}
}

// ComputePawnEntry builds a PawnEntry from scratch for the given position.
// Called on a pawn-hash miss; the result is then cached under pos.PawnKey.
func ComputePawnEntry(pos *board.Position) PawnEntry {
	entry := PawnEntry{Key: pos.PawnKey}

	mg, eg := evaluatePawnStructure(pos)
	entry.MgScore = int16(mg)
	entry.EgScore = int16(eg)

	for file := 0; file < 8; file++ {
		fileBB := board.FileMask[file]
		if pos.Pieces[board.White][board.Pawn]&fileBB == 0 {
			entry.SemiOpenFiles[board.White] |= 1 << uint(file)
		}
		if pos.Pieces[board.Black][board.Pawn]&fileBB == 0 {
			entry.SemiOpenFiles[board.Black] |= 1 << uint(file)
		}
	}

	for c := board.White; c <= board.Black; c++ {
		them := c.Other()
		pawns := pos.Pieces[c][board.Pawn]
		enemyPawns := pos.Pieces[them][board.Pawn]

		bb := pawns
		for bb != 0 {
			sq := bb.PopLSB()
			file := sq.File()

			adjacent := board.Empty
			if file > 0 {
				adjacent |= board.FileMask[file-1]
			}
			if file < 7 {
				adjacent |= board.FileMask[file+1]
			}
			if adjacent&pawns == 0 {
				entry.Isolated[c] |= board.SquareBB(sq)
			}

			if board.FileMask[file]&pawns&^board.SquareBB(sq) != 0 {
				entry.Doubled[c] |= board.SquareBB(sq)
			}

			if pawnCacheIsPassed(sq, c, enemyPawns) {
				entry.Passed[c] |= board.SquareBB(sq)
			}

			if isBackwardPawn(sq, c, pawns, enemyPawns) {
				entry.Backward[c] |= board.SquareBB(sq)
			}
		}
	}

	d4, e4, d5, e5 := board.D4, board.E4, board.D5, board.E5
	wPawns := pos.Pieces[board.White][board.Pawn]
	bPawns := pos.Pieces[board.Black][board.Pawn]
	entry.LockedCenter = (wPawns&board.SquareBB(d4) != 0 && bPawns&board.SquareBB(d5) != 0) ||
		(wPawns&board.SquareBB(e4) != 0 && bPawns&board.SquareBB(e5) != 0)

	return entry
}

// aboveRank returns the mask of all squares on ranks strictly greater than rank.
func aboveRank(rank int) board.Bitboard {
	mask := board.Empty
	for r := rank + 1; r <= 7; r++ {
		mask |= board.RankMask[r]
	}
	return mask
}

// belowRank returns the mask of all squares on ranks strictly less than rank.
func belowRank(rank int) board.Bitboard {
	mask := board.Empty
	for r := 0; r < rank; r++ {
		mask |= board.RankMask[r]
	}
	return mask
}

// pawnCacheIsPassed reports whether a pawn has no enemy pawn able to stop or
// capture it on its own file or the adjacent files ahead of it.
func pawnCacheIsPassed(sq board.Square, c board.Color, enemyPawns board.Bitboard) bool {
	file := sq.File()
	front := board.Empty
	for f := file - 1; f <= file+1; f++ {
		if f < 0 || f > 7 {
			continue
		}
		front |= board.FileMask[f]
	}
	if c == board.White {
		front &= aboveRank(sq.Rank())
	} else {
		front &= belowRank(sq.Rank())
	}
	return front&enemyPawns == 0
}

// isBackwardPawn reports whether a pawn cannot safely advance because the
// squares it would need support from are empty and an enemy pawn already
// controls its stop square.
func isBackwardPawn(sq board.Square, c board.Color, ownPawns, enemyPawns board.Bitboard) bool {
	file := sq.File()
	rank := sq.Rank()

	var supportFiles board.Bitboard
	if file > 0 {
		supportFiles |= board.FileMask[file-1]
	}
	if file < 7 {
		supportFiles |= board.FileMask[file+1]
	}

	var behind board.Bitboard
	if c == board.White {
		behind = supportFiles & belowRank(rank+1)
	} else {
		behind = supportFiles & aboveRank(rank-1)
	}
	if behind&ownPawns != 0 {
		return false // a friendly pawn can still advance to support it
	}

	stopRank := rank + 1
	if c == board.Black {
		stopRank = rank - 1
	}
	if stopRank < 0 || stopRank > 7 {
		return false
	}
	stop := board.NewSquare(file, stopRank)
	return board.PawnAttacks(stop, c)&enemyPawns != 0
}
