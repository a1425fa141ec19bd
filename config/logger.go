package config

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// NewLogger builds a logrus logger writing to w with the configured level
// and format. Text output is coloured only on a terminal that allows it.
func (c *Config) NewLogger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "log level: %v", err)
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	if c.Log.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
			ForceColors:      colorable(w),
			DisableColors:    !colorable(w),
		})
	}

	return l, nil
}

func colorable(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return false
	}
	// https://no-color.org/
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	switch os.Getenv("TERM") {
	case "dumb", "unknown":
		return false
	}

	return true
}
