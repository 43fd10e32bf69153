// Package logger tags logrus entries with the object that produced them.
package logger

import (
	"io"
	"reflect"

	"github.com/sirupsen/logrus"
)

type stringer interface {
	String() string
}

const objWidth = 20

var log = logrus.StandardLogger()

func objToString(obj any) (objStr string) {
	if obj == nil {
		objStr = "NIL"
	} else if stringerObj, ok := obj.(stringer); ok {
		objStr = stringerObj.String()
	} else if objStr, ok = obj.(string); ok {
	} else {
		t := reflect.TypeOf(obj)
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		objStr = t.Name()
	}
	if len(objStr) > objWidth {
		objStr = objStr[:objWidth]
	}
	return
}

// Init sets the level and the text format used by every entry.
func Init(lvl logrus.Level) {
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		PadLevelText:    true,
		TimestampFormat: "2006/01/02 15:04:05",
	})
}

// SetOutput redirects entries, mostly for tests.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// ParseLevel accepts logrus level names such as "debug" or "warning".
func ParseLevel(lvl string) (logrus.Level, error) {
	return logrus.ParseLevel(lvl)
}

func entry(object any) *logrus.Entry {
	return log.WithField("obj", objToString(object))
}

func Trace(object any, message string) {
	if log.IsLevelEnabled(logrus.TraceLevel) {
		entry(object).Trace(message)
	}
}

func Tracef(object any, message string, args ...any) {
	if log.IsLevelEnabled(logrus.TraceLevel) {
		entry(object).Tracef(message, args...)
	}
}

func Debug(object any, message string) {
	if log.IsLevelEnabled(logrus.DebugLevel) {
		entry(object).Debug(message)
	}
}

func Debugf(object any, message string, args ...any) {
	if log.IsLevelEnabled(logrus.DebugLevel) {
		entry(object).Debugf(message, args...)
	}
}

func Info(object any, message string) {
	if log.IsLevelEnabled(logrus.InfoLevel) {
		entry(object).Info(message)
	}
}

func Infof(object any, message string, args ...any) {
	if log.IsLevelEnabled(logrus.InfoLevel) {
		entry(object).Infof(message, args...)
	}
}

func Warning(object any, message string) {
	if log.IsLevelEnabled(logrus.WarnLevel) {
		entry(object).Warning(message)
	}
}

func Warningf(object any, message string, args ...any) {
	if log.IsLevelEnabled(logrus.WarnLevel) {
		entry(object).Warningf(message, args...)
	}
}

func Error(object any, message string) {
	entry(object).Error(message)
}

func Errorf(object any, message string, args ...any) {
	entry(object).Errorf(message, args...)
}

func Fatal(object any, message string) {
	entry(object).Fatal(message)
}

func Fatalf(object any, message string, args ...any) {
	entry(object).Fatalf(message, args...)
}
