package config

import (
	"strings"
	"testing"
)

func TestParseOverridesKnownKeys(t *testing.T) {
	input := `# comment
positional_boost: 1.5
tempo:12
fixed_depth: 9
history_scale: 1.25
correction_scale: 0.5
time_scale: 1.1
unknown_key: 3.0
`
	tuning, err := Parse(strings.NewReader(input), Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tuning.PositionalBoost != 1.5 {
		t.Errorf("PositionalBoost = %v, want 1.5", tuning.PositionalBoost)
	}
	if tuning.Tempo != 12 {
		t.Errorf("Tempo = %v, want 12", tuning.Tempo)
	}
	if tuning.FixedDepth != 9 {
		t.Errorf("FixedDepth = %v, want 9", tuning.FixedDepth)
	}
	if tuning.HistoryScale != 1.25 {
		t.Errorf("HistoryScale = %v, want 1.25", tuning.HistoryScale)
	}
	if tuning.CorrectionScale != 0.5 {
		t.Errorf("CorrectionScale = %v, want 0.5", tuning.CorrectionScale)
	}
	if tuning.TimeScale != 1.1 {
		t.Errorf("TimeScale = %v, want 1.1", tuning.TimeScale)
	}
	// Fields not overridden keep the default.
	if tuning.MobilityScale != Default().MobilityScale {
		t.Errorf("MobilityScale should be unchanged, got %v", tuning.MobilityScale)
	}
}

func TestParseSkipsMalformedLines(t *testing.T) {
	input := "no colon here\ntempo: not-a-number\ntempo: 20\n"
	tuning, err := Parse(strings.NewReader(input), Default())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tuning.Tempo != 20 {
		t.Errorf("Tempo = %v, want 20 (last valid line should win)", tuning.Tempo)
	}
}

func TestLoadFileMissingIsNotError(t *testing.T) {
	tuning, err := LoadFile("/nonexistent/path/chesscore.conf")
	if err != nil {
		t.Fatalf("LoadFile on a missing file should not error, got %v", err)
	}
	if tuning != Default() {
		t.Errorf("LoadFile on a missing file should return Default(), got %+v", tuning)
	}
}
