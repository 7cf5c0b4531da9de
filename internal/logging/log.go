package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/pdrpinto/gridpath/internal/config"
)

// New builds the process logger. Unknown levels fall back to info.
func New(cfg config.Config) *logrus.Logger {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg config.Config, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	if cfg.Logging.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	return l
}
