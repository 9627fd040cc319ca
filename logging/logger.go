// Package logging provides the leveled logger that every core/* package
// calls into. It is deliberately small: the library is an in-process
// dependency, not a standalone service, so it writes to stderr unless a
// host passes another io.Writer to SetOutput; it ships no file sink of
// its own.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

type LogLevel uint8

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelPrefix = map[LogLevel]string{
	DEBUG: "[DEBUG]",
	INFO:  "[INFO]",
	WARN:  "[WARN]",
	ERROR: "[ERROR]",
	FATAL: "[FATAL]",
}

// Logger is the interface every internal component depends on. Hosts
// embedding this library may supply their own implementation through
// SetDefaultLogger.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	SetLevel(level LogLevel)
}

var (
	defaultLogger Logger = newStdLogger(os.Stderr, INFO)
	defaultMux    sync.RWMutex
)

// SetDefaultLogger replaces the package-level logger used by core/*.
func SetDefaultLogger(l Logger) {
	defaultMux.Lock()
	defer defaultMux.Unlock()
	defaultLogger = l
}

// SetOutput points the default logger at w (e.g. a rolling file), keeping
// its current level.
func SetOutput(w io.Writer) {
	defaultMux.Lock()
	defer defaultMux.Unlock()
	if sl, ok := defaultLogger.(*stdLogger); ok {
		sl.setOutput(w)
		return
	}
	defaultLogger = newStdLogger(w, INFO)
}

func getDefault() Logger {
	defaultMux.RLock()
	defer defaultMux.RUnlock()
	return defaultLogger
}

func Debugf(format string, args ...interface{}) { getDefault().Debugf(format, args...) }
func Infof(format string, args ...interface{})  { getDefault().Infof(format, args...) }
func Warnf(format string, args ...interface{})  { getDefault().Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { getDefault().Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { getDefault().Fatalf(format, args...) }

// Error logs an error value together with a human-readable message. The
// recovery sites in core/* log through Errorf rather than this helper.
func Error(err error, msg string, kv ...interface{}) {
	getDefault().Errorf("%s: %v %v", msg, err, kv)
}

func Warn(msg string, kv ...interface{}) {
	getDefault().Warnf("%s %v", msg, kv)
}

// stdLogger is the default Logger: a thin wrapper over the standard
// library's log.Logger with a level gate and a swappable writer, mirroring
// the shape (if not the syslog/rolling-file machinery) of mosn's own
// pkg/log.logger.
type stdLogger struct {
	mu    sync.Mutex
	level LogLevel
	inner *log.Logger
}

func newStdLogger(w io.Writer, level LogLevel) *stdLogger {
	return &stdLogger{
		level: level,
		inner: log.New(w, "", log.LstdFlags|log.Lmicroseconds),
	}
}

func (l *stdLogger) setOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inner.SetOutput(w)
}

func (l *stdLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *stdLogger) log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	cur := l.level
	l.mu.Unlock()
	if level < cur {
		return
	}
	l.inner.Output(3, levelPrefix[level]+" "+fmt.Sprintf(format, args...))
}

func (l *stdLogger) Debugf(format string, args ...interface{}) { l.log(DEBUG, format, args...) }
func (l *stdLogger) Infof(format string, args ...interface{})  { l.log(INFO, format, args...) }
func (l *stdLogger) Warnf(format string, args ...interface{})  { l.log(WARN, format, args...) }
func (l *stdLogger) Errorf(format string, args ...interface{}) { l.log(ERROR, format, args...) }
func (l *stdLogger) Fatalf(format string, args ...interface{}) {
	l.log(FATAL, format, args...)
	os.Exit(1)
}
