package env

import (
	"fmt"
	"log/slog"
)

// Mode names the environment the process runs in. It gates dev-only
// surfaces and tunes logging and pool sizing.
type Mode string

const (
	Test  Mode = "test"
	Local Mode = "local"
	Dev   Mode = "dev"
	Prod  Mode = "prod"
)

var currentMode = Test

// Parse validates a raw mode string, typically from an env var.
func Parse(raw string) (Mode, error) {
	m := Mode(raw)
	if !m.Valid() {
		return "", fmt.Errorf("unknown environment mode %q", raw)
	}
	return m, nil
}

func SetMode(mode Mode) {
	if !mode.Valid() {
		panic("invalid mode: " + string(mode))
	}
	currentMode = mode
}

func Current() Mode {
	return currentMode
}

func (m Mode) String() string { return string(m) }

func (m Mode) Valid() bool {
	switch m {
	case Test, Local, Dev, Prod:
		return true
	}
	return false
}

// SlogLevel maps the mode to its default log verbosity.
func (m Mode) SlogLevel() slog.Level {
	if m == Prod {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}
