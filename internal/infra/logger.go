package infra

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

type charmLogger struct {
	l *log.Logger
}

// NewLogger builds a logger writing to w. format is one of text, json or
// logfmt; level is a charmbracelet/log level name.
func NewLogger(w io.Writer, format, level string) Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "finebook",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		l.SetLevel(lvl)
	}
	switch strings.ToLower(format) {
	case "json":
		l.SetFormatter(log.JSONFormatter)
	case "logfmt":
		l.SetFormatter(log.LogfmtFormatter)
	default:
		l.SetFormatter(log.TextFormatter)
	}
	return &charmLogger{l: l}
}

func NewNopLogger() Logger { return NewLogger(io.Discard, "text", "error") }

func (c *charmLogger) Debugf(format string, v ...interface{}) { c.l.Debugf(format, v...) }
func (c *charmLogger) Infof(format string, v ...interface{})  { c.l.Infof(format, v...) }
func (c *charmLogger) Warnf(format string, v ...interface{})  { c.l.Warnf(format, v...) }
func (c *charmLogger) Errorf(format string, v ...interface{}) { c.l.Errorf(format, v...) }
