// Package log wraps logrus behind a logr.Logger. Logs go to stderr so
// stdout stays clean JSON for consumers such as ansible-inventory.
package log

import (
	"os"

	"github.com/bombsimon/logrusr/v4"
	"github.com/go-logr/logr"
	"github.com/sirupsen/logrus"
)

var logger = logr.Discard()

func Init(verbose bool) {
	impl := logrus.New()
	impl.SetOutput(os.Stderr)
	impl.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
	})
	if verbose {
		impl.SetLevel(logrus.DebugLevel)
	} else {
		impl.SetLevel(logrus.WarnLevel)
	}

	logger = logrusr.New(impl)
}

func Logger() logr.Logger {
	return logger
}
