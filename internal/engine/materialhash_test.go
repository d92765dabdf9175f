package engine

import (
	"testing"

	"github.com/FireFather/chesscore/internal/board"
)

func TestMaterialEntryStartPosition(t *testing.T) {
	pos := board.NewPosition()
	entry := ComputeMaterialEntry(pos)

	if entry.Key != pos.MaterialKey {
		t.Errorf("Key = %x, want %x", entry.Key, pos.MaterialKey)
	}
	if entry.Tag != EndgameNone {
		t.Errorf("Tag = %v, want EndgameNone for the starting position", entry.Tag)
	}
	if entry.Score != 0 {
		t.Errorf("Score = %d, want 0 (material is symmetric)", entry.Score)
	}
	if entry.EndgameCoef != 0 {
		t.Errorf("EndgameCoef = %v, want 0 at full material", entry.EndgameCoef)
	}
}

func TestMaterialEntryKPEndgame(t *testing.T) {
	pos, err := board.ParseFEN("8/8/8/4k3/8/4K3/4P3/8 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	entry := ComputeMaterialEntry(pos)
	if entry.Tag != EndgamePawnsOnly {
		t.Errorf("Tag = %v, want EndgamePawnsOnly", entry.Tag)
	}
	if entry.EndgameCoef != 1 {
		t.Errorf("EndgameCoef = %v, want 1 with no non-pawn material left", entry.EndgameCoef)
	}
	if entry.Score != PawnValue {
		t.Errorf("Score = %d, want %d (White is up exactly one pawn)", entry.Score, PawnValue)
	}
}

func TestMaterialTableProbeStore(t *testing.T) {
	mt := NewMaterialTable(1)
	pos := board.NewPosition()

	if _, found := mt.Probe(pos.MaterialKey); found {
		t.Error("expected cache miss before any store")
	}

	entry := ComputeMaterialEntry(pos)
	mt.Store(entry)

	got, found := mt.Probe(pos.MaterialKey)
	if !found {
		t.Fatal("expected cache hit after store")
	}
	if got.Score != entry.Score {
		t.Errorf("Score = %d, want %d", got.Score, entry.Score)
	}
}
