// Package logging hands out component loggers from the grove core logging
// package. The prefs CLI owns their level and sink: core's default file
// sink under the working directory is dropped in favour of --log-file.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	corelogging "github.com/grovetools/core/logging"
	"github.com/sirupsen/logrus"
)

var (
	mu      sync.Mutex
	level   = defaultLevel()
	out     io.Writer = os.Stderr
	loggers = make(map[*logrus.Logger]struct{})
)

func defaultLevel() logrus.Level {
	if os.Getenv("PREFS_DEBUG") == "true" || os.Getenv("DEBUG") == "true" {
		return logrus.DebugLevel
	}
	return logrus.WarnLevel
}

// NewLogger returns the core logger entry for component, tagged with a
// "component" field and using the current level and output.
func NewLogger(component string) *logrus.Entry {
	entry := corelogging.NewLogger(component)

	mu.Lock()
	defer mu.Unlock()
	if _, seen := loggers[entry.Logger]; !seen {
		entry.Logger.ReplaceHooks(make(logrus.LevelHooks))
		loggers[entry.Logger] = struct{}{}
	}
	entry.Logger.SetLevel(level)
	entry.Logger.SetOutput(out)
	return entry
}

// SetLevel parses and applies a level name such as "debug" or "warn".
// Unknown names leave the level unchanged and return an error.
func SetLevel(name string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	level = lvl
	for l := range loggers {
		l.SetLevel(lvl)
	}
	return nil
}

// Level returns the level applied to new loggers.
func Level() logrus.Level {
	mu.Lock()
	defer mu.Unlock()
	return level
}

// SetOutput redirects all loggers. TUIs log to a file so that log lines
// never interleave with the rendered screen.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
	for l := range loggers {
		l.SetOutput(w)
	}
	corelogging.SetGlobalOutput(w)
}

// OpenFile appends log output to path and returns a closer for it.
func OpenFile(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	SetOutput(f)
	return f, nil
}

// Discard silences all loggers.
func Discard() {
	SetOutput(io.Discard)
}
