// Command chesscore runs the engine core behind a UCI front end.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/FireFather/chesscore/internal/config"
	"github.com/FireFather/chesscore/internal/engine"
	"github.com/FireFather/chesscore/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	configPath = flag.String("config", "", "path to a key:value tuning config file")
	hashMB     = flag.Int("hash", 64, "transposition table size in MB")
)

func main() {
	flag.Parse()

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	eng := engine.NewEngine(*hashMB)

	var tuning config.Tuning
	var err error
	if *configPath != "" {
		tuning, err = config.LoadFile(*configPath)
		if err != nil {
			log.Printf("config: %v (using defaults)", err)
			tuning = config.Default()
		}
	} else {
		tuning = config.LoadDefault()
	}
	eng.ApplyTuning(tuning)

	protocol := uci.New(eng)
	protocol.Run()
}
