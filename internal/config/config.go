// Package config parses the engine's line-oriented tuning file: one
// "key:value" pair per line, floating-point values, unknown keys ignored
// with a log line rather than failing the load.
package config

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/FireFather/chesscore/internal/elog"
)

var log = elog.Get("config")

// Keys recognized in a tuning file. Anything else is logged and skipped.
const (
	KeyPositionalBoost = "positional_boost"
	KeyTempo           = "tempo"
	KeyMobilityScale   = "mobility_scale"
	KeyAttackScale     = "attack_scale"
	KeyKingSafetyScale = "king_safety_scale"
	KeyPinnedScale     = "pinned_scale"
	KeyFixedDepth      = "fixed_depth"
	KeyHistoryScale    = "history_scale"
	KeyCorrectionScale = "correction_scale"
	KeyTimeScale       = "time_scale"
)

// Tuning holds the floating-point tuning parameters a config file may
// override. Zero value means "use the engine default"; Load only sets the
// fields it finds a matching key for, and FixedDepth uses -1 as its "unset"
// sentinel since 0 is a meaningful depth override.
type Tuning struct {
	PositionalBoost float64
	Tempo           float64
	MobilityScale   float64
	AttackScale     float64
	KingSafetyScale float64
	PinnedScale     float64
	FixedDepth      int
	HistoryScale    float64 // scales move-ordering history/capture-history bonuses
	CorrectionScale float64 // scales the eval correction-history adjustment
	TimeScale       float64 // scales allotted search time, >1 plays slower but stronger
}

// Default returns the tuning values the engine ships with absent any
// config file, mirroring engine.DefaultTunables so a missing file changes
// nothing.
func Default() Tuning {
	return Tuning{
		PositionalBoost: 1.35,
		Tempo:           10,
		MobilityScale:   1.0,
		AttackScale:     1.0,
		KingSafetyScale: 1.0,
		PinnedScale:     1.0,
		FixedDepth:      -1,
		HistoryScale:    1.0,
		CorrectionScale: 1.0,
		TimeScale:       1.0,
	}
}

// LoadFile opens path and parses it as a tuning file, starting from
// Default() and overriding only the keys present. A missing file is not an
// error: it is treated the same as an empty file, since a config file is an
// optional override, not a requirement.
func LoadFile(path string) (Tuning, error) {
	t := Default()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, err
	}
	defer f.Close()
	return Parse(f, t)
}

// Parse reads key:value lines from r, overriding fields in base. Blank lines
// and lines starting with '#' are comments. Malformed lines and unknown keys
// are logged and skipped; Parse never returns an error for bad input. A
// typo in one line should not discard the rest of the file.
func Parse(r io.Reader, base Tuning) (Tuning, error) {
	t := base
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			log.Warningf("config line %d: missing ':': %q", lineNo, line)
			continue
		}
		key = strings.TrimSpace(strings.ToLower(key))
		val = strings.TrimSpace(val)

		if key == KeyFixedDepth {
			depth, err := strconv.Atoi(val)
			if err != nil {
				log.Warningf("config line %d: bad integer for %s: %q", lineNo, key, val)
				continue
			}
			t.FixedDepth = depth
			continue
		}

		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			log.Warningf("config line %d: bad float for %s: %q", lineNo, key, val)
			continue
		}
		switch key {
		case KeyPositionalBoost:
			t.PositionalBoost = f
		case KeyTempo:
			t.Tempo = f
		case KeyMobilityScale:
			t.MobilityScale = f
		case KeyAttackScale:
			t.AttackScale = f
		case KeyKingSafetyScale:
			t.KingSafetyScale = f
		case KeyPinnedScale:
			t.PinnedScale = f
		case KeyHistoryScale:
			t.HistoryScale = f
		case KeyCorrectionScale:
			t.CorrectionScale = f
		case KeyTimeScale:
			t.TimeScale = f
		default:
			log.Infof("config line %d: unknown key %q ignored", lineNo, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return t, err
	}
	return t, nil
}

// DefaultPaths returns the standard locations searched for a tuning file at
// startup, in priority order: a path given explicitly (returned as a
// single-element slice by the caller) falls outside this list.
func DefaultPaths() []string {
	paths := []string{"chesscore.conf"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, home+string(os.PathSeparator)+".chesscore.conf")
	}
	return paths
}

// LoadDefault tries each of DefaultPaths in turn, returning the first one
// found parsed, or engine defaults if none exist.
func LoadDefault() Tuning {
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			t, err := LoadFile(p)
			if err != nil {
				log.Errorf("failed to load config %s: %v", p, err)
				continue
			}
			log.Infof("loaded tuning config from %s", p)
			return t
		}
	}
	return Default()
}
