package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/op/go-logging"
)

// Leveled logger shared by the whole service.
// - go-logging backend with a single formatted writer
// - provides Debug/Info/Warn/Error/Fatal variants and Init(level)

const (
	module     = "pakdocs"
	timeFormat = "2006-01-02T15:04:05Z07:00"
)

var (
	mu      sync.RWMutex
	log     = logging.MustGetLogger(module)
	backend logging.LeveledBackend
	level   = logging.INFO
)

func init() {
	setOutput(os.Stdout)
}

// setOutput rebuilds the backend around w, keeping the current level.
func setOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	format := logging.MustStringFormatter(`%{time:` + timeFormat + `} [%{level}] %{message}`)
	backend = logging.AddModuleLevel(logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), format))
	backend.SetLevel(level, module)
	log.SetBackend(backend)
}

// Init sets the global log level (case-insensitive: debug, info, warn, error, fatal).
// Call early during startup. Default level is Info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		level = logging.DEBUG
	case "warn", "warning":
		level = logging.WARNING
	case "error":
		level = logging.ERROR
	case "fatal":
		level = logging.CRITICAL
	default:
		level = logging.INFO
	}
	backend.SetLevel(level, module)
}

func Debugf(format string, v ...interface{}) { log.Debugf(format, v...) }
func Infof(format string, v ...interface{})  { log.Infof(format, v...) }
func Warnf(format string, v ...interface{})  { log.Warningf(format, v...) }
func Errorf(format string, v ...interface{}) { log.Errorf(format, v...) }

// Fatalf logs at critical level and exits the process.
func Fatalf(format string, v ...interface{}) {
	log.Criticalf(format, v...)
	os.Exit(1)
}

func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString returns the current level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch level {
	case logging.DEBUG:
		return "debug"
	case logging.WARNING:
		return "warn"
	case logging.ERROR:
		return "error"
	case logging.CRITICAL:
		return "fatal"
	}
	return "info"
}
