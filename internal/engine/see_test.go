package engine

import (
	"testing"

	"github.com/FireFather/chesscore/internal/board"
)

// TestSEEQuietMove checks SEE = 0 for a quiet (non-capturing) move.
func TestSEEQuietMove(t *testing.T) {
	pos := board.NewPosition()
	move := board.NewMove(board.E2, board.E4)
	if got := SEE(pos, move); got != 0 {
		t.Errorf("SEE(quiet move) = %d, want 0", got)
	}
}

// TestSEEFreeCapture checks SEE = V for a capture of value V with no recapture.
func TestSEEFreeCapture(t *testing.T) {
	// White rook takes an undefended black knight on d5; nothing can recapture.
	pos, err := board.ParseFEN("4k3/8/8/3n4/8/8/8/3RK3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	move := board.NewMove(board.D1, board.D5)
	if got, want := SEE(pos, move), KnightValue; got != want {
		t.Errorf("SEE(free capture) = %d, want %d", got, want)
	}
}

// TestSEEDefendedCapture checks SEE falls in {V-A+B, V-A} for a capture of a
// piece worth V by an attacker worth A, defended by a piece worth B <= A.
func TestSEEDefendedCapture(t *testing.T) {
	// White rook takes a black knight on d5, defended by a black pawn on c6.
	pos, err := board.ParseFEN("4k3/8/2p5/3n4/8/8/8/3RK3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	move := board.NewMove(board.D1, board.D5)
	got := SEE(pos, move)

	v, a, b := KnightValue, RookValue, PawnValue
	lo, hi := v-a, v-a+b
	if lo > hi {
		lo, hi = hi, lo
	}
	if got < lo || got > hi {
		t.Errorf("SEE(defended capture) = %d, want in [%d, %d]", got, lo, hi)
	}
}
