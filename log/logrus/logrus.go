package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/vcache"
)

var _ vcache.Logger = Logger{}

// Logger adapts a *logrus.Entry.
type Logger struct{ E *logrus.Entry }

// New tags every line with component=vcache.
func New(l *logrus.Logger) Logger {
	return Logger{E: l.WithField("component", "vcache")}
}

func (l Logger) Debug(msg string, f vcache.Fields) { l.with(f).Debug(msg) }
func (l Logger) Info(msg string, f vcache.Fields)  { l.with(f).Info(msg) }
func (l Logger) Warn(msg string, f vcache.Fields)  { l.with(f).Warn(msg) }
func (l Logger) Error(msg string, f vcache.Fields) { l.with(f).Error(msg) }

func (l Logger) with(f vcache.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	return l.E.WithFields(logrus.Fields(f))
}
