package engine

import (
	"testing"

	"github.com/FireFather/chesscore/internal/board"
)

// TestMateInOneFoundWithMateScore checks that the rook mate is found with a
// mate-distance score, and that the chosen move is one of the two rook
// moves that finish (or force) the mate.
func TestMateInOneFoundWithMateScore(t *testing.T) {
	pos, err := board.ParseFEN("7k/4R3/6K1/8/8/8/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	tt := NewTranspositionTable(16)
	s := NewSearcher(tt)
	s.Reset()

	move, score := s.Search(pos, 4)

	if got := move.String(); got != "e7e8" && got != "e7h7" {
		t.Errorf("best move = %s, want e7e8 or e7h7", got)
	}
	if score < MateScore-10 {
		t.Errorf("score = %d, want a mate-distance score (>= %d)", score, MateScore-10)
	}
}

// TestStartPositionPrefersMainlineOpening checks the depth-4 root move is
// one of the four mainline openers.
func TestStartPositionPrefersMainlineOpening(t *testing.T) {
	pos := board.NewPosition()
	tt := NewTranspositionTable(16)
	s := NewSearcher(tt)
	s.Reset()

	move, _ := s.Search(pos, 4)

	want := map[string]bool{"e2e4": true, "d2d4": true, "g1f3": true, "c2c4": true}
	if !want[move.String()] {
		t.Errorf("root move = %s, want one of e2e4 d2d4 g1f3 c2c4", move.String())
	}
}

// TestLonePawnEndgameIsWinning checks that deep search on KPK with a safe
// passed pawn sees the promotion: the score must be at least a queen up.
func TestLonePawnEndgameIsWinning(t *testing.T) {
	if testing.Short() {
		t.Skip("deep endgame search")
	}

	pos, err := board.ParseFEN("8/8/8/8/8/8/P7/K6k w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	tt := NewTranspositionTable(64)
	s := NewSearcher(tt)
	s.Reset()

	_, score := s.Search(pos, 14)
	if score < QueenValue-PawnValue {
		t.Errorf("score = %d, want at least a queen's worth (%d): the a-pawn promotes by force",
			score, QueenValue-PawnValue)
	}
}

// TestOpeningSequenceMaterialFromCache plays the knight-grab line and checks
// the material cache arithmetic at the two interesting points: after White
// wins the e5 pawn, and after Black restores the balance.
func TestOpeningSequenceMaterialFromCache(t *testing.T) {
	pos := board.NewPosition()

	apply := func(uci string) {
		t.Helper()
		moves := pos.GenerateLegalMoves()
		for i := 0; i < moves.Len(); i++ {
			if moves.Get(i).String() == uci {
				pos.MakeMove(moves.Get(i))
				return
			}
		}
		t.Fatalf("move %s is not legal in %s", uci, pos.ToFEN())
	}

	for _, uci := range []string{"e2e4", "e7e5", "g1f3", "g8f6", "f3e5"} {
		apply(uci)
	}

	// White just won a pawn: the cache must show about +1 pawn, give or
	// take the pawn-count knight/rook corrections.
	entry := ComputeMaterialEntry(pos)
	if entry.Score < PawnValue-25 || entry.Score > PawnValue+25 {
		t.Errorf("after f3e5: material score = %d, want ~%d (White up one pawn)", entry.Score, PawnValue)
	}

	apply("f6e4")

	entry = ComputeMaterialEntry(pos)
	if entry.Score < -25 || entry.Score > 25 {
		t.Errorf("after f6e4: material score = %d, want ~0 (pawns traded back)", entry.Score)
	}
}

// TestTranspositionExactEntryRoundTrip checks that an exact-bound store with
// sufficient depth comes back verbatim on probe.
func TestTranspositionExactEntryRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(4)
	pos := board.NewPosition()
	best := board.NewMove(board.E2, board.E4)

	tt.Store(pos.Hash, 7, 42, TTExact, best)

	entry, found := tt.Probe(pos.Hash)
	if !found {
		t.Fatal("expected a hit for the key just stored")
	}
	if entry.Flag != TTExact {
		t.Errorf("Flag = %v, want TTExact", entry.Flag)
	}
	if entry.Depth != 7 {
		t.Errorf("Depth = %d, want 7", entry.Depth)
	}
	if entry.Score != 42 {
		t.Errorf("Score = %d, want 42", entry.Score)
	}
	if entry.BestMove != best {
		t.Errorf("BestMove = %s, want %s", entry.BestMove, best)
	}
}

// TestTranspositionMissAfterKeyChange checks that probing with a different
// key never returns another position's payload.
func TestTranspositionMissAfterKeyChange(t *testing.T) {
	tt := NewTranspositionTable(4)
	pos := board.NewPosition()

	tt.Store(pos.Hash, 5, 10, TTExact, board.NewMove(board.D2, board.D4))

	if _, found := tt.Probe(pos.Hash ^ 0xDEADBEEF); found {
		t.Error("probe with a different key should miss")
	}
}

// TestMateScoreAdjustmentRoundTrip checks the to/from-TT mate score ply
// adjustment inverts cleanly.
func TestMateScoreAdjustmentRoundTrip(t *testing.T) {
	for _, ply := range []int{0, 3, 10} {
		for _, score := range []int{MateScore - 5, -(MateScore - 7), 120, -40, 0} {
			stored := AdjustScoreToTT(score, ply)
			if got := AdjustScoreFromTT(stored, ply); got != score {
				t.Errorf("ply %d score %d: round trip gave %d", ply, score, got)
			}
		}
	}
}
