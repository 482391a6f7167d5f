// Package logging owns the shared "data logger" used by the filtering
// packages and exposes BrainFlow-style level control over it.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Level mirrors the BrainFlow log levels.
type Level int

const (
	Trace Level = iota
	Debug
	Info
	Warn
	Error
	Critical
	Off
)

// ErrInvalidLevel is returned for a level outside Trace..Off.
var ErrInvalidLevel = errors.New("logging: invalid log level")

var levelNames = [...]string{"trace", "debug", "info", "warn", "error", "critical", "off"}

func (l Level) String() string {
	if l < Trace || l > Off {
		return fmt.Sprintf("Level(%d)", int(l))
	}

	return levelNames[l]
}

// ParseLevel converts a level name as printed by String.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// logrusLevel maps l onto logrus. Critical maps to Fatal and Off to Panic;
// this package never emits entries at those logrus levels through paths
// that would exit or panic.
func (l Level) logrusLevel() logrus.Level {
	switch l {
	case Trace:
		return logrus.TraceLevel
	case Debug:
		return logrus.DebugLevel
	case Info:
		return logrus.InfoLevel
	case Warn:
		return logrus.WarnLevel
	case Error:
		return logrus.ErrorLevel
	case Critical:
		return logrus.FatalLevel
	default:
		return logrus.PanicLevel
	}
}

const defaultLevel = Error

var (
	mu      sync.Mutex
	data    = newDataLogger()
	logFile *os.File
)

func newDataLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(defaultLevel.logrusLevel())

	return l
}

// Data returns the data logger.
func Data() *logrus.Logger {
	return data
}

// SetLevel sets the threshold of the data logger.
func SetLevel(l Level) error {
	if l < Trace || l > Off {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, int(l))
	}

	data.SetLevel(l.logrusLevel())

	return nil
}

// Enable sets the data logger to Info.
func Enable() { _ = SetLevel(Info) }

// EnableDev sets the data logger to Trace.
func EnableDev() { _ = SetLevel(Trace) }

// Disable silences the data logger.
func Disable() { _ = SetLevel(Off) }

// SetLogFile redirects the data logger to path, appending to an existing
// file. An empty path restores stderr.
func SetLogFile(path string) error {
	mu.Lock()
	defer mu.Unlock()

	var out io.Writer = os.Stderr

	var f *os.File
	if path != "" {
		var err error

		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("logging: open log file: %w", err)
		}

		out = f
	}

	data.SetOutput(out)

	if logFile != nil {
		_ = logFile.Close()
	}

	logFile = f

	return nil
}

// Message writes msg to the data logger at level l. Critical messages are
// written without exiting; Off drops the message.
func Message(l Level, msg string) error {
	if l < Trace || l > Off {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, int(l))
	}

	if l == Off {
		return nil
	}

	data.Log(l.logrusLevel(), msg)

	return nil
}
