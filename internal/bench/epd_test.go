package bench

import (
	"strings"
	"testing"
)

func TestParseEPDBasic(t *testing.T) {
	input := `r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - bm Nxg6; id "WAC.001";
# a comment line
this is not a valid epd line
`
	cases := ParseEPD(strings.NewReader(input))
	if len(cases) != 1 {
		t.Fatalf("got %d cases, want 1", len(cases))
	}
	c := cases[0]
	if c.Comment != "WAC.001" {
		t.Errorf("Comment = %q, want %q", c.Comment, "WAC.001")
	}
	if len(c.BestMoves) != 1 || c.BestMoves[0] != "Nxg6" {
		t.Errorf("BestMoves = %v, want [Nxg6]", c.BestMoves)
	}
	if !strings.HasPrefix(c.FEN, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq") {
		t.Errorf("FEN = %q", c.FEN)
	}
}

func TestParseEPDMultipleBestMoves(t *testing.T) {
	input := "8/8/8/8/8/8/P7/K6k w - - bm a3 a4;\n"
	cases := ParseEPD(strings.NewReader(input))
	if len(cases) != 1 {
		t.Fatalf("got %d cases, want 1", len(cases))
	}
	if len(cases[0].BestMoves) != 2 {
		t.Errorf("BestMoves = %v, want 2 entries", cases[0].BestMoves)
	}
}

func TestSANEqualIgnoresCheckAnnotations(t *testing.T) {
	cases := []struct {
		got, want string
		equal     bool
	}{
		{"Qxf7+", "Qxf7", true},
		{"Qh5#", "Qh5", true},
		{"Nf3", "Nf3", true},
		{"Nf3", "Nc3", false},
	}
	for _, c := range cases {
		if got := sanEqual(c.got, c.want); got != c.equal {
			t.Errorf("sanEqual(%q, %q) = %v, want %v", c.got, c.want, got, c.equal)
		}
	}
}

func TestCompleteFENPadsMissingCounters(t *testing.T) {
	in := "8/8/8/8/8/8/8/8 w - -"
	got := completeFEN(in)
	if got != in+" 0 1" {
		t.Errorf("completeFEN(%q) = %q", in, got)
	}
	full := "8/8/8/8/8/8/8/8 w - - 5 10"
	if got := completeFEN(full); got != full {
		t.Errorf("completeFEN should leave a full FEN unchanged, got %q", got)
	}
}
