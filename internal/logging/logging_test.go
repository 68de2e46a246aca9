package logging

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/huttonjc/vaultkeep/internal/config"
)

func TestNewDefaultsToInfoOnBadLevel(t *testing.T) {
	logger := New(config.LogConfig{Level: "not-a-level", Format: "text"})
	if logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("expected InfoLevel fallback, got %v", logger.GetLevel())
	}
}

func TestNewHonorsExplicitLevel(t *testing.T) {
	logger := New(config.LogConfig{Level: "debug", Format: "text"})
	if logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("expected DebugLevel, got %v", logger.GetLevel())
	}
}

func TestNewJSONFormatter(t *testing.T) {
	logger := New(config.LogConfig{Level: "info", Format: "json"})
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("expected JSONFormatter, got %T", logger.Formatter)
	}
}

func TestNewTextFormatter(t *testing.T) {
	logger := New(config.LogConfig{Level: "info", Format: "text"})
	if _, ok := logger.Formatter.(*logrus.TextFormatter); !ok {
		t.Errorf("expected TextFormatter, got %T", logger.Formatter)
	}
}
