package contract

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a stderr logger for debug traces.
// It only emits debug entries when verbose is set.
func NewLogger(verbose bool) *logrus.Logger {
	return newLoggerTo(os.Stderr, verbose)
}

func newLoggerTo(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}
