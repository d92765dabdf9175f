// Command bench runs the EPD best-move regression harness against the
// engine core, printing a pass/fail table, or a perft sweep with -perft.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/FireFather/chesscore/internal/bench"
	"github.com/FireFather/chesscore/internal/board"
	"github.com/FireFather/chesscore/internal/engine"
)

func main() {
	epdPath := flag.String("epd", "", "path to an EPD test set")
	depth := flag.Int("depth", 8, "search depth per position")
	hashMB := flag.Int("hash", 64, "transposition table size in MB")
	perftDepth := flag.Int("perft", 0, "run perft 1..N from -fen instead of the EPD harness")
	fen := flag.String("fen", board.StartFEN, "position for -perft")
	flag.Parse()

	eng := engine.NewEngine(*hashMB)

	if *perftDepth > 0 {
		pos, err := board.ParseFEN(*fen)
		if err != nil {
			log.Fatalf("bench: %v", err)
		}
		bench.RunPerft(os.Stdout, eng, pos, *perftDepth)
		return
	}

	if *epdPath == "" {
		log.Fatal("usage: bench -epd <file> [-depth N] [-hash MB], or bench -perft N [-fen <fen>]")
	}

	f, err := os.Open(*epdPath)
	if err != nil {
		log.Fatalf("bench: %v", err)
	}
	defer f.Close()

	cases := bench.ParseEPD(f)
	if len(cases) == 0 {
		log.Fatalf("bench: no valid EPD cases found in %s", *epdPath)
	}

	results := bench.RunEPD(eng, cases, *depth)
	bench.Report(os.Stdout, results)
}
