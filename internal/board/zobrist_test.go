package board

import "testing"

// findMove looks up a legal move by its UCI string, failing the test if the
// position doesn't allow it.
func findMove(t *testing.T, pos *Position, uci string) Move {
	t.Helper()
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i).String() == uci {
			return moves.Get(i)
		}
	}
	t.Fatalf("move %s is not legal in position %s", uci, pos.ToFEN())
	return NoMove
}

// checkKeys compares the incrementally maintained keys against a from-scratch
// recomputation.
func checkKeys(t *testing.T, pos *Position, context string) {
	t.Helper()
	if got, want := pos.Hash, pos.ComputeHash(); got != want {
		t.Errorf("%s: incremental hash %x != recomputed %x", context, got, want)
	}
	if got, want := pos.PawnKey, pos.ComputePawnKey(); got != want {
		t.Errorf("%s: incremental pawn key %x != recomputed %x", context, got, want)
	}
	if got, want := pos.MaterialKey, pos.ComputeMaterialKey(); got != want {
		t.Errorf("%s: incremental material key %x != recomputed %x", context, got, want)
	}
}

// TestIncrementalKeysMatchRecompute walks move sequences covering every make
// flavor (quiet, double push, capture, castle, en passant, promotion,
// capture-promotion) and checks the incrementally maintained Zobrist keys
// against a from-scratch recomputation after every single make and unmake.
func TestIncrementalKeysMatchRecompute(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		moves []string
	}{
		{
			name: "quiets captures and castling",
			fen:  StartFEN,
			moves: []string{
				"e2e4", "d7d5", "e4d5", "d8d5", "g1f3", "c8g4",
				"f1e2", "b8c6", "e1g1", "e8c8",
			},
		},
		{
			name:  "en passant capture",
			fen:   "rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2",
			moves: []string{"d4e3"},
		},
		{
			name:  "quiet promotion",
			fen:   "8/P6k/8/8/8/8/7K/8 w - - 0 1",
			moves: []string{"a7a8q"},
		},
		{
			name:  "capture promotion",
			fen:   "1n5k/P7/8/8/8/8/7K/8 w - - 0 1",
			moves: []string{"a7b8q"},
		},
		{
			name:  "underpromotion",
			fen:   "8/P6k/8/8/8/8/7K/8 w - - 0 1",
			moves: []string{"a7a8n"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			checkKeys(t, pos, "initial")

			type applied struct {
				move Move
				undo UndoInfo
			}
			var stack []applied

			for _, uci := range tc.moves {
				m := findMove(t, pos, uci)
				undo := pos.MakeMove(m)
				if !undo.Valid {
					t.Fatalf("MakeMove(%s) reported invalid", uci)
				}
				stack = append(stack, applied{m, undo})
				checkKeys(t, pos, "after "+uci)
			}

			for i := len(stack) - 1; i >= 0; i-- {
				pos.UnmakeMove(stack[i].move, stack[i].undo)
				checkKeys(t, pos, "after unmake "+stack[i].move.String())
			}

			if got, want := pos.ToFEN(), tc.fen; got != want {
				t.Errorf("round trip changed the position:\n got %s\nwant %s", got, want)
			}
		})
	}
}

// TestNullMoveKeyRoundTrip checks that a null move flips only the
// side-to-move and en passant contributions, and that undoing it restores
// the position bit for bit.
func TestNullMoveKeyRoundTrip(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	before := *pos
	undo := pos.MakeNullMove()

	if pos.SideToMove != White {
		t.Error("null move should flip side to move")
	}
	if pos.EnPassant != NoSquare {
		t.Error("null move should clear the en passant square")
	}
	checkKeys(t, pos, "after null move")

	pos.UnmakeNullMove(undo)
	if pos.Hash != before.Hash || pos.PawnKey != before.PawnKey || pos.MaterialKey != before.MaterialKey {
		t.Error("null move round trip changed a key")
	}
	if pos.EnPassant != before.EnPassant || pos.SideToMove != before.SideToMove {
		t.Error("null move round trip changed game state")
	}
	if pos.HalfMoveClock != before.HalfMoveClock {
		t.Error("null move round trip changed the half-move clock")
	}
}

// TestMakeUnmakeRestoresEverything runs a longer mixed sequence and checks
// every user-visible field, not just the keys.
func TestMakeUnmakeRestoresEverything(t *testing.T) {
	pos := NewPosition()
	initial := *pos

	seq := []string{"e2e4", "e7e5", "g1f3", "g8f6", "f3e5", "f6e4", "d1e2", "e4f6"}
	var moves []Move
	var undos []UndoInfo
	for _, uci := range seq {
		m := findMove(t, pos, uci)
		moves = append(moves, m)
		undos = append(undos, pos.MakeMove(m))
	}
	for i := len(moves) - 1; i >= 0; i-- {
		pos.UnmakeMove(moves[i], undos[i])
	}

	if pos.Hash != initial.Hash {
		t.Errorf("hash not restored: %x != %x", pos.Hash, initial.Hash)
	}
	if pos.Pieces != initial.Pieces {
		t.Error("piece bitboards not restored")
	}
	if pos.Occupied != initial.Occupied || pos.AllOccupied != initial.AllOccupied {
		t.Error("occupancy bitboards not restored")
	}
	if pos.CastlingRights != initial.CastlingRights || pos.EnPassant != initial.EnPassant {
		t.Error("castling/en passant state not restored")
	}
	if pos.HalfMoveClock != initial.HalfMoveClock || pos.FullMoveNumber != initial.FullMoveNumber {
		t.Error("move counters not restored")
	}
}
