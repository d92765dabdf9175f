package engine

import (
	"testing"

	"github.com/FireFather/chesscore/internal/board"
)

// scoreOf runs the orderer over moves and returns the score assigned to m.
func scoreOf(t *testing.T, mo *MoveOrderer, pos *board.Position, moves *board.MoveList, m board.Move) int {
	t.Helper()
	scores := mo.ScoreMoves(pos, moves, 0, board.NoMove)
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i) == m {
			return scores[i]
		}
	}
	t.Fatalf("move %s not in list", m)
	return 0
}

// TestCaptureScoresAreSignedValueDeltas checks the good/bad capture split:
// winning and even captures stay in the good-capture band, ordered by how
// much material they win, while losing captures drop to the bad-capture
// band below the killers.
func TestCaptureScoresAreSignedValueDeltas(t *testing.T) {
	mo := NewMoveOrderer()

	pos, err := board.ParseFEN("4k3/8/8/3q4/4P3/8/8/3QK3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	pxq := board.NewMove(board.E4, board.D5) // pawn takes queen: +800
	qxq := board.NewMove(board.D1, board.D5) // queen takes queen: even

	moves := board.NewMoveList()
	moves.Add(pxq)
	moves.Add(qxq)

	pxqScore := scoreOf(t, mo, pos, moves, pxq)
	qxqScore := scoreOf(t, mo, pos, moves, qxq)

	if pxqScore < stageGoodCapture {
		t.Errorf("PxQ score = %d, want >= %d (good-capture band)", pxqScore, stageGoodCapture)
	}
	if qxqScore < stageGoodCapture {
		t.Errorf("QxQ (even trade) score = %d, want >= %d (good-capture band)", qxqScore, stageGoodCapture)
	}
	if pxqScore <= qxqScore {
		t.Errorf("PxQ (%d) should outrank the even trade QxQ (%d)", pxqScore, qxqScore)
	}
}

// TestLosingCaptureDemotedBelowKillers checks that a plain losing capture
// (queen takes pawn with nothing else to show for it) lands in the
// bad-capture band and is tried after the killer moves.
func TestLosingCaptureDemotedBelowKillers(t *testing.T) {
	mo := NewMoveOrderer()

	pos, err := board.ParseFEN("4k3/8/8/2p5/8/8/8/2Q1K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	qxp := board.NewMove(board.C1, board.C5)    // queen takes pawn: -800
	killer := board.NewMove(board.E1, board.E2) // quiet king move
	mo.UpdateKillers(killer, 0)

	moves := board.NewMoveList()
	moves.Add(qxp)
	moves.Add(killer)

	qxpScore := scoreOf(t, mo, pos, moves, qxp)
	killerScore := scoreOf(t, mo, pos, moves, killer)

	if qxpScore > stageBadCapture {
		t.Errorf("QxP score = %d, want <= %d (bad-capture band)", qxpScore, stageBadCapture)
	}
	if qxpScore >= stageKiller2 {
		t.Errorf("QxP score = %d, should sit below the killer stage (%d)", qxpScore, stageKiller2)
	}
	if killerScore <= qxpScore {
		t.Errorf("killer (%d) should outrank the losing capture (%d)", killerScore, qxpScore)
	}
}

// TestBadCapturesKeepRelativeOrder checks losing captures stay sorted among
// themselves by how much material they shed.
func TestBadCapturesKeepRelativeOrder(t *testing.T) {
	mo := NewMoveOrderer()

	// White rook c1 and queen f1 can each grab the c5/f5 pawns.
	pos, err := board.ParseFEN("4k3/8/8/2p2p2/8/8/8/2R1KQ2 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	rxp := board.NewMove(board.C1, board.C5) // rook takes pawn: -400
	qxp := board.NewMove(board.F1, board.F5) // queen takes pawn: -800

	moves := board.NewMoveList()
	moves.Add(rxp)
	moves.Add(qxp)

	rxpScore := scoreOf(t, mo, pos, moves, rxp)
	qxpScore := scoreOf(t, mo, pos, moves, qxp)

	if rxpScore <= qxpScore {
		t.Errorf("RxP (%d) sheds less than QxP (%d) and should rank first", rxpScore, qxpScore)
	}
}

// TestCapturePromotionCountsPromotionGain checks the promotion gain feeds
// the delta: a pawn grabbing a queen while promoting is a clear win even
// though the pawn itself is the cheapest attacker.
func TestCapturePromotionCountsPromotionGain(t *testing.T) {
	mo := NewMoveOrderer()

	pos, err := board.ParseFEN("1q2k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	capPromo := board.NewPromotion(board.A7, board.B8, board.Queen)

	moves := board.NewMoveList()
	moves.Add(capPromo)

	if got := scoreOf(t, mo, pos, moves, capPromo); got < stageGoodCapture {
		t.Errorf("axb8=Q score = %d, want >= %d (good-capture band)", got, stageGoodCapture)
	}
}
