package engine

import (
	"testing"
	"time"

	"github.com/FireFather/chesscore/internal/board"
	"github.com/FireFather/chesscore/internal/config"
)

func TestMultiPVFindsDistinctLinesInScoreOrder(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(16)

	limits := SearchLimits{
		Depth:    4,
		MoveTime: 2 * time.Second,
		MultiPV:  3,
	}

	results := eng.SearchMultiPV(pos, limits)

	if len(results) < 2 {
		t.Fatalf("expected at least 2 PVs, got %d", len(results))
	}

	if results[0].Move == results[1].Move {
		t.Errorf("first two PVs share the same move: %s", results[0].Move.String())
	}

	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("PV %d scored higher than PV %d (%d > %d)",
				i+1, i, results[i].Score, results[i-1].Score)
		}
	}
}

func TestMultiPVHonorsFixedDepth(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(16)
	tuning := config.Default()
	tuning.FixedDepth = 3
	eng.ApplyTuning(tuning)

	limits := SearchLimits{MultiPV: 2, MoveTime: 2 * time.Second}
	results := eng.SearchMultiPV(pos, limits)

	if len(results) == 0 {
		t.Fatal("expected at least one PV")
	}
	for i, r := range results {
		if r.Depth > 3 {
			t.Errorf("PV %d searched past the configured fixed depth: got depth %d, want <= 3", i, r.Depth)
		}
	}
}

func TestSearchFindsAMoveAtEasyDifficulty(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(16)
	eng.SetDifficulty(Easy)

	move := eng.Search(pos)
	if move == board.NoMove {
		t.Fatal("search returned NoMove for the starting position")
	}
}

// TestConcurrentSearchIsRaceFree stresses the Lazy SMP worker pool.
// Run with: GOMAXPROCS=8 go test -race -run TestConcurrentSearchIsRaceFree ./internal/engine
func TestConcurrentSearchIsRaceFree(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine(16)

	iterations := 10
	if testing.Short() {
		iterations = 3
	}

	for i := 0; i < iterations; i++ {
		limits := SearchLimits{
			Depth:    6,
			MoveTime: 500 * time.Millisecond,
		}

		move := eng.SearchWithLimits(pos, limits)
		if move == board.NoMove {
			t.Errorf("iteration %d: search returned NoMove", i)
		}

		if i%2 == 0 {
			pos, _ = board.ParseFEN("rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2")
		} else {
			pos, _ = board.ParseFEN("rnbqkbnr/ppp1pppp/8/3p4/3P4/8/PPP1PPPP/RNBQKBNR w KQkq d6 0 2")
		}
	}
}

func TestSearchAcrossGamePhases(t *testing.T) {
	eng := NewEngine(16)

	positions := []string{
		board.StartFEN,
		"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3", // Italian Game
		"8/8/8/4k3/8/4K3/4P3/8 w - - 0 1",                                  // KP endgame
	}

	for i, fen := range positions {
		pos, err := board.ParseFEN(fen)
		if err != nil {
			t.Fatalf("position %d: parse FEN: %v", i, err)
		}

		limits := SearchLimits{Depth: 5, MoveTime: 300 * time.Millisecond}
		move := eng.SearchWithLimits(pos, limits)
		if move == board.NoMove && pos.GenerateLegalMoves().Len() > 0 {
			t.Errorf("position %d: search returned NoMove for a non-terminal position", i)
		}
	}
}

func TestPawnHashTableRoundTrip(t *testing.T) {
	pt := NewPawnTable(1) // 1MB
	pos := board.NewPosition()

	if _, found := pt.Probe(pos.PawnKey); found {
		t.Error("expected a cache miss before any store")
	}

	pt.Store(PawnEntry{Key: pos.PawnKey, MgScore: -15, EgScore: -20})

	entry, found := pt.Probe(pos.PawnKey)
	if !found {
		t.Fatal("expected a cache hit after store")
	}
	if entry.MgScore != -15 || entry.EgScore != -20 {
		t.Errorf("got mg=%d eg=%d, want -15 -20", entry.MgScore, entry.EgScore)
	}

	oldKey := pos.PawnKey
	move := board.NewMove(board.E2, board.E4)
	undo := pos.MakeMove(move)
	if pos.PawnKey == oldKey {
		t.Error("pawn key should change once a pawn moves")
	}

	pos.UnmakeMove(move, undo)
	if pos.PawnKey != oldKey {
		t.Error("pawn key should be restored on unmake")
	}
}

// TestSearcherRootExclusionSkipsGivenMoves exercises the root-move exclusion
// path SearchMultiPV relies on (searchWithExclusions -> SetExcludedMoves).
func TestSearcherRootExclusionSkipsGivenMoves(t *testing.T) {
	pos := board.NewPosition()
	tt := NewTranspositionTable(4)
	s := NewSearcher(tt)
	s.Reset()

	unexcluded, _ := s.Search(pos, 3)
	if unexcluded == board.NoMove {
		t.Fatal("expected a move with no exclusions")
	}

	s.Reset()
	s.SetExcludedMoves([]board.Move{unexcluded})
	excluded, _ := s.Search(pos, 3)

	if excluded == board.NoMove {
		t.Fatal("expected a different move once the first was excluded")
	}
	if excluded == unexcluded {
		t.Error("excluded root move was returned again")
	}
}

func TestSearcherIsStoppedReflectsStopCall(t *testing.T) {
	tt := NewTranspositionTable(4)
	s := NewSearcher(tt)

	if s.IsStopped() {
		t.Error("fresh searcher should not report stopped")
	}
	s.Stop()
	if !s.IsStopped() {
		t.Error("IsStopped should report true after Stop")
	}
}

func TestCorrectionHistoryKeyedByPawnStructureAndSideToMove(t *testing.T) {
	ch := NewCorrectionHistory()

	white, _ := board.ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	black, _ := board.ParseFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")

	// Same pawn skeleton on both sides, but different side to move: an
	// update for White must not leak into Black's slot.
	ch.Update(white, 120, 0, 8)
	if got := ch.Get(black); got != 0 {
		t.Errorf("correction leaked across side to move: got %d, want 0", got)
	}
	if got := ch.Get(white); got == 0 {
		t.Error("expected a non-zero correction after Update")
	}

	// A different pawn skeleton must not share White's slot.
	kpEndgame, _ := board.ParseFEN("8/8/8/4k3/8/4K3/4P3/8 w - - 0 1")
	if got := ch.Get(kpEndgame); got != 0 {
		t.Errorf("correction leaked across pawn structures: got %d, want 0", got)
	}
}

func TestCorrectionHistoryScalesWithTunable(t *testing.T) {
	defer SetTunables(DefaultTunables())

	ch := NewCorrectionHistory()
	pos := board.NewPosition()
	ch.Update(pos, 120, 0, 8)

	base := DefaultTunables()
	base.CorrectionScale = 1.0
	SetTunables(base)
	unscaled := ch.Get(pos)

	base.CorrectionScale = 0.5
	SetTunables(base)
	scaled := ch.Get(pos)

	if unscaled == 0 {
		t.Fatal("expected a non-zero baseline correction")
	}
	if scaled != unscaled/2 {
		t.Errorf("CorrectionScale=0.5 should halve the correction: got %d from %d", scaled, unscaled)
	}
}

func TestTimeManagerRespectsTimeScale(t *testing.T) {
	defer SetTunables(DefaultTunables())

	limits := UCILimits{Time: [2]time.Duration{20 * time.Second, 20 * time.Second}}

	base := DefaultTunables()
	base.TimeScale = 1.0
	SetTunables(base)
	tmBase := NewTimeManager()
	tmBase.Init(limits, board.White, 0)

	base.TimeScale = 2.0
	SetTunables(base)
	tmDoubled := NewTimeManager()
	tmDoubled.Init(limits, board.White, 0)

	if tmDoubled.OptimumTime() <= tmBase.OptimumTime() {
		t.Errorf("TimeScale=2.0 should allot more optimum time: got %v vs base %v",
			tmDoubled.OptimumTime(), tmBase.OptimumTime())
	}
}

func TestMoveOrdererMateKillersOutrankNormalKillersAndCaptures(t *testing.T) {
	mo := NewMoveOrderer()
	pos := board.NewPosition()

	normalKiller := board.NewMove(board.G1, board.F3)
	mateKiller := board.NewMove(board.B1, board.C3)

	mo.UpdateKillers(normalKiller, 2)
	mo.UpdateMateKillers(mateKiller, 2)

	moves := board.NewMoveList()
	moves.Add(normalKiller)
	moves.Add(mateKiller)

	scores := mo.ScoreMoves(pos, moves, 2, board.NoMove)

	var normalScore, mateScoreVal int
	for i := 0; i < moves.Len(); i++ {
		switch moves.Get(i) {
		case normalKiller:
			normalScore = scores[i]
		case mateKiller:
			mateScoreVal = scores[i]
		}
	}

	if mateScoreVal <= normalScore {
		t.Errorf("mate killer should outrank normal killer: mate=%d normal=%d", mateScoreVal, normalScore)
	}
}

func TestMoveOrdererThreatEvasionBonusesQuietsLeavingThreatenedSquare(t *testing.T) {
	mo := NewMoveOrderer()
	pos := board.NewPosition()

	threatTarget := board.NewMove(board.A7, board.A6) // opponent threat lands on a6
	moveAway := board.NewMove(board.A6, board.A5)
	unrelated := board.NewMove(board.H2, board.H3)

	moves := board.NewMoveList()
	moves.Add(moveAway)
	moves.Add(unrelated)

	withThreat := mo.ScoreMovesWithCounter(pos, moves, 1, board.NoMove, board.NoMove, threatTarget)
	withoutThreat := mo.ScoreMovesWithCounter(pos, moves, 1, board.NoMove, board.NoMove, board.NoMove)

	if withThreat[0]-withoutThreat[0] <= 0 {
		t.Errorf("move leaving the threatened square should gain a bonus: with=%d without=%d",
			withThreat[0], withoutThreat[0])
	}
}
