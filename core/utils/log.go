package utils

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ConfigureLogger sets level, format ("text" or "json") and output of
// l.  A nil out keeps the current output.
func ConfigureLogger(l *logrus.Logger, level, format string, out io.Writer) error {
	lvl, e := logrus.ParseLevel(level)
	if e != nil {
		return errors.Wrapf(e, "invalid log level %q", level)
	}
	l.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		return errors.Errorf("invalid log format %q", format)
	}

	if out != nil {
		l.SetOutput(out)
	}
	return nil
}
