// Package elog provides the leveled, structured logging used by the engine
// driver, UCI loop and configuration loader. Move generation and position
// code stay on the bare standard-library "log" package behind debug-assertion
// flags; elog is reserved for the places a tournament operator actually
// wants to dial verbosity up or down without a rebuild: search instability
// warnings, transposition-table resizing, configuration parse errors.
package elog

import (
	"os"

	"github.com/op/go-logging"
)

var backendLevel = logging.AddModuleLevel(
	logging.NewBackendFormatter(
		logging.NewLogBackend(os.Stderr, "", 0),
		logging.MustStringFormatter(
			`%{time:15:04:05.000} %{level:.4s} %{module}: %{message}`,
		),
	),
)

func init() {
	backendLevel.SetLevel(logging.INFO, "")
	logging.SetBackend(backendLevel)
}

// Get returns the named module logger. Call once per package and keep the
// result in a package-level var (`var log = elog.Get("...")`).
func Get(module string) *logging.Logger {
	return logging.MustGetLogger(module)
}

// SetLevel adjusts the global verbosity. UCI's "setoption name LogLevel"
// handler calls this.
func SetLevel(level logging.Level) {
	backendLevel.SetLevel(level, "")
}

// ParseLevel maps a UCI/CLI level name to a logging.Level, defaulting to
// INFO on an unrecognized name rather than failing startup over a cosmetic
// setting.
func ParseLevel(name string) logging.Level {
	lvl, err := logging.LogLevel(name)
	if err != nil {
		return logging.INFO
	}
	return lvl
}
