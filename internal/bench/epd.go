package bench

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/clinaresl/table"

	"github.com/FireFather/chesscore/internal/board"
	"github.com/FireFather/chesscore/internal/elog"
	"github.com/FireFather/chesscore/internal/engine"
)

var log = elog.Get("bench")

// EPDCase is one "<FEN tokens> bm <SAN move> ;" line from an EPD test set.
// Apart from "bm" and "id" (kept as Comment), opcodes are ignored; this
// harness only checks best-move agreement, not the full EPD opcode grammar.
type EPDCase struct {
	FEN        string
	BestMoves  []string // accepted SAN moves, as written in the "bm" operation
	Comment    string   // "id" operation value, if present
}

// ParseEPD reads one EPD case per line. Malformed lines are logged and
// skipped; a bad line never aborts the whole set.
func ParseEPD(r io.Reader) []EPDCase {
	var cases []EPDCase
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c, ok := parseEPDLine(line)
		if !ok {
			log.Warningf("epd line %d: could not parse %q", lineNo, line)
			continue
		}
		cases = append(cases, c)
	}
	return cases
}

// parseEPDLine splits the leading 4 FEN-like fields from the semicolon
// separated opcode list and pulls out "bm" and "id".
func parseEPDLine(line string) (EPDCase, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return EPDCase{}, false
	}
	fen := strings.Join(fields[:4], " ")
	rest := strings.Join(fields[4:], " ")

	var bestMoves []string
	var comment string
	for _, op := range strings.Split(rest, ";") {
		op = strings.TrimSpace(op)
		if op == "" {
			continue
		}
		switch {
		case strings.HasPrefix(op, "bm "):
			bestMoves = strings.Fields(strings.TrimPrefix(op, "bm "))
		case strings.HasPrefix(op, "id "):
			comment = strings.Trim(strings.TrimPrefix(op, "id "), "\"")
		}
	}
	if len(bestMoves) == 0 {
		return EPDCase{}, false
	}
	return EPDCase{FEN: fen, BestMoves: bestMoves, Comment: comment}, true
}

// CaseResult is the outcome of running one EPDCase through the engine.
type CaseResult struct {
	Case     EPDCase
	Got      string
	Nodes    uint64
	Took     time.Duration
	Pass     bool
}

// RunEPD searches each case to depth and reports whether the engine's best
// move (rendered to SAN) is one of the case's accepted moves.
func RunEPD(eng *engine.Engine, cases []EPDCase, depth int) []CaseResult {
	results := make([]CaseResult, 0, len(cases))
	for _, c := range cases {
		pos, err := board.ParseFEN(completeFEN(c.FEN))
		if err != nil {
			log.Warningf("epd case %q: bad FEN: %v", c.Comment, err)
			continue
		}

		start := time.Now()
		var nodes uint64
		eng.OnInfo = func(info engine.SearchInfo) { nodes = info.Nodes }
		move := eng.SearchWithLimits(pos, engine.SearchLimits{Depth: depth})
		eng.OnInfo = nil
		took := time.Since(start)

		got := move.ToSAN(pos)
		pass := false
		for _, want := range c.BestMoves {
			if sanEqual(got, want) {
				pass = true
				break
			}
		}
		results = append(results, CaseResult{Case: c, Got: got, Nodes: nodes, Took: took, Pass: pass})
	}
	return results
}

// completeFEN pads a 4-field EPD position with the half-move/full-move
// counters ParseFEN tolerates missing.
func completeFEN(fen string) string {
	if len(strings.Fields(fen)) >= 6 {
		return fen
	}
	return fen + " 0 1"
}

// sanEqual compares SAN strings ignoring check/mate annotations ('+', '#'),
// since EPD "bm" operations are not consistent about including them.
func sanEqual(got, want string) bool {
	trim := func(s string) string { return strings.TrimRight(s, "+#") }
	return trim(got) == trim(want)
}

// Report renders results as an aligned summary table: one row per
// position with its id, FEN, the move expected, the move found, nodes and
// pass/fail.
func Report(w io.Writer, results []CaseResult) {
	tab, err := table.NewTable("|l|l|l|l|r|c|")
	if err != nil {
		fmt.Fprintf(w, "bench: could not build report table: %v\n", err)
		return
	}
	tab.AddRow("id", "fen", "best", "found", "nodes", "pass")
	tab.AddSingleRule()

	passed := 0
	for _, r := range results {
		status := "FAIL"
		if r.Pass {
			status = "PASS"
			passed++
		}
		tab.AddRow(r.Case.Comment, r.Case.FEN, strings.Join(r.Case.BestMoves, "/"), r.Got, r.Nodes, status)
	}
	tab.AddSingleRule()
	printer.Fprintf(w, "%v\n%d/%d passed\n", tab, passed, len(results))
}
