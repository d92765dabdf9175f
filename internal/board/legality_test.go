package board

import "testing"

// TestPinnedPieceCannotLeaveRay checks that a piece pinned against its own
// king only ever moves along the pin ray.
func TestPinnedPieceCannotLeaveRay(t *testing.T) {
	// White knight on d2 is pinned by the black rook on d8 against Kd1.
	pos, err := ParseFEN("3r3k/8/8/8/8/8/3N4/3K4 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	pos.UpdatePinned()
	if pos.Pinned[White]&SquareBB(D2) == 0 {
		t.Fatal("knight on d2 should be marked pinned")
	}

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		if moves.Get(i).From() == D2 {
			t.Errorf("pinned knight move %s should be illegal", moves.Get(i))
		}
	}
}

// TestPinnedSliderMovesAlongRayOnly checks that a pinned slider keeps its
// moves on the king-slider line.
func TestPinnedSliderMovesAlongRayOnly(t *testing.T) {
	// White rook on d4 is pinned by the black rook on d8 against Kd1; it
	// may slide on the d-file (including capturing d8) but never sideways.
	pos, err := ParseFEN("3r3k/8/8/8/3R4/8/8/3K4 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	moves := pos.GenerateLegalMoves()
	sawFileMove := false
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.From() != D4 {
			continue
		}
		if m.To().File() != D4.File() {
			t.Errorf("pinned rook left the d-file: %s", m)
		} else {
			sawFileMove = true
		}
	}
	if !sawFileMove {
		t.Error("pinned rook should still be able to slide along the pin ray")
	}
}

// TestLegalEqualsPseudoLegalFiltered checks that the staged legal generator
// agrees with the naive "pseudo-legal then filter by IsLegal" definition on
// positions exercising checks, pins, and en passant.
func TestLegalEqualsPseudoLegalFiltered(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", // white in check
	}

	for _, fen := range fens {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%s): %v", fen, err)
		}

		legal := map[Move]bool{}
		lm := pos.GenerateLegalMoves()
		for i := 0; i < lm.Len(); i++ {
			legal[lm.Get(i)] = true
		}

		filtered := map[Move]bool{}
		pm := pos.GeneratePseudoLegalMoves()
		for i := 0; i < pm.Len(); i++ {
			if pos.IsLegal(pm.Get(i)) {
				filtered[pm.Get(i)] = true
			}
		}

		if len(legal) != len(filtered) {
			t.Errorf("%s: %d legal moves vs %d filtered pseudo-legal", fen, len(legal), len(filtered))
		}
		for m := range legal {
			if !filtered[m] {
				t.Errorf("%s: legal generator emits %s but the filter rejects it", fen, m)
			}
		}
		for m := range filtered {
			if !legal[m] {
				t.Errorf("%s: filter accepts %s but the legal generator misses it", fen, m)
			}
		}
	}
}

// TestThreefoldRepetitionDetected shuffles knights back and forth until the
// starting position has occurred three times with the same side to move.
func TestThreefoldRepetitionDetected(t *testing.T) {
	pos := NewPosition()

	shuffle := []string{
		"g1f3", "g8f6", "f3g1", "f6g8", // second occurrence of the start
		"g1f3", "g8f6", "f3g1", "f6g8", // third occurrence
	}
	for _, uci := range shuffle {
		m := findMove(t, pos, uci)
		if undo := pos.MakeMove(m); !undo.Valid {
			t.Fatalf("MakeMove(%s) reported invalid", uci)
		}
	}

	if pos.RepetitionCount() < 2 {
		t.Errorf("RepetitionCount = %d, want >= 2 prior occurrences", pos.RepetitionCount())
	}
	if !pos.IsRepetition() {
		t.Error("IsRepetition should report true after the third occurrence")
	}
	if !pos.IsDraw() {
		t.Error("IsDraw should report true on threefold repetition")
	}
}
