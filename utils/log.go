package utils

import (
	"fmt"
	"os"
	"path"
	"runtime"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	loggersMu sync.Mutex
	loggers   = make(map[string]*logrus.Logger)
	logLevel  = logrus.InfoLevel
)

// NamedLogger returns the package logger registered under name, creating it on first use
func NamedLogger(name string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	if l, ok := loggers[name]; ok {
		return l
	}
	l := &logrus.Logger{
		Out: os.Stderr,
		Formatter: &CustomTextFormatter{
			Name: name,
			TextFormatter: logrus.TextFormatter{
				FullTimestamp: true,
				CallerPrettyfier: func(*runtime.Frame) (string, string) {
					return "", ""
				},
			},
		},
		Hooks:        make(logrus.LevelHooks),
		Level:        logLevel,
		ReportCaller: true,
	}
	loggers[name] = l
	return l
}

// SetLogLevel parses level and applies it to every named logger, present and future
func SetLogLevel(level string) error {
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	loggersMu.Lock()
	defer loggersMu.Unlock()
	logLevel = lvl
	for _, l := range loggers {
		l.SetLevel(lvl)
	}
	return nil
}

type CustomTextFormatter struct {
	Name string
	logrus.TextFormatter
}

// Format prefixes the message with the logger name and the calling file:line
func (f *CustomTextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry.HasCaller() {
		entry.Message = fmt.Sprintf("[%s %s:%03d] %s", f.Name, path.Base(entry.Caller.File), entry.Caller.Line, entry.Message)
	} else {
		entry.Message = fmt.Sprintf("[%s] %s", f.Name, entry.Message)
	}
	return f.TextFormatter.Format(entry)
}
