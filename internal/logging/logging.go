// Package logging builds the process-wide *logrus.Logger vaultkeep's
// command layer injects into everything that needs to report what it's
// doing. The vault core itself stays silent — a Session or the codec never
// logs, since it has no way to distinguish a caller that wants progress
// output from a caller embedding it as a library.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/huttonjc/vaultkeep/internal/config"
)

// New builds a *logrus.Logger configured from cfg: text or JSON formatting,
// and a parsed level. An unrecognized level string falls back to Info
// rather than failing startup over a logging misconfiguration.
func New(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.Out = os.Stderr

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
