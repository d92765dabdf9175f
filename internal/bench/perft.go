// Package bench implements the perft and EPD benchmarking harness,
// consuming the engine/board core through its public interfaces exactly as
// an external driver would. It never reaches into unexported engine state.
package bench

import (
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/FireFather/chesscore/internal/board"
	"github.com/FireFather/chesscore/internal/engine"
)

// printer formats node/nps counts with thousands separators; perft totals
// routinely run past 10^7 and are unreadable ungrouped.
var printer = message.NewPrinter(language.English)

// PerftResult holds one depth's leaf count and the time taken to compute it.
type PerftResult struct {
	Depth int
	Nodes uint64
	Took  time.Duration
}

// RunPerft runs perft at every depth from 1 to maxDepth against pos, using
// eng's move generator/make-unmake (internal/board), and writes a
// thousands-grouped report line per depth to w.
func RunPerft(w io.Writer, eng *engine.Engine, pos *board.Position, maxDepth int) []PerftResult {
	results := make([]PerftResult, 0, maxDepth)
	for d := 1; d <= maxDepth; d++ {
		start := time.Now()
		nodes := eng.Perft(pos, d)
		took := time.Since(start)
		results = append(results, PerftResult{Depth: d, Nodes: nodes, Took: took})

		nps := uint64(0)
		if took > 0 {
			nps = uint64(float64(nodes) / took.Seconds())
		}
		printer.Fprintf(w, "perft %d: %d nodes in %s (%d nps)\n", d, nodes, took.Round(time.Millisecond), nps)
	}
	return results
}
