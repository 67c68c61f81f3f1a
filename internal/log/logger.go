// Package log provides named, leveled loggers shared by every package of the
// renderer. Output goes to a single sink that frontends may redirect, which the
// terminal viewer needs because it owns the screen.
package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var plainFormat = logging.MustStringFormatter(
	`[%{time:15:04:05.000}] [%{module}] [%{level}] %{message}`,
)

var (
	leveledBackend logging.LeveledBackend
	currentLevel   = logging.NOTICE
)

// Logger is the leveled logging interface handed to every component.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New creates a named logger.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink overrides the backend output sink. Color codes are only emitted when
// the sink is a terminal-attached file.
func SetSink(sink io.Writer) {
	f := plainFormat
	if file, ok := sink.(*os.File); ok && (file == os.Stderr || file == os.Stdout) {
		f = format
	}
	backend := logging.NewLogBackend(sink, "", 0)
	leveledBackend = logging.AddModuleLevel(logging.NewBackendFormatter(backend, f))
	leveledBackend.SetLevel(currentLevel, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets logger verbosity for every module.
func SetLevel(level Level) {
	switch level {
	case Debug:
		currentLevel = logging.DEBUG
	case Info:
		currentLevel = logging.INFO
	case Notice:
		currentLevel = logging.NOTICE
	case Warning:
		currentLevel = logging.WARNING
	case Error:
		currentLevel = logging.ERROR
	}

	leveledBackend.SetLevel(currentLevel, "")
}

// LevelFromVerbosity maps a -v count to a level: 0 is Notice, 1 Info, 2+ Debug.
func LevelFromVerbosity(n int) Level {
	switch {
	case n >= 2:
		return Debug
	case n == 1:
		return Info
	default:
		return Notice
	}
}

func init() {
	SetSink(os.Stderr)
	SetLevel(Notice)
}
