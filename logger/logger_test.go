package logger

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"fitcsv/config"
)

func TestSetupTextLogger(t *testing.T) {
	log, err := Setup(config.LoggingConfig{Level: "debug", Format: "text", Output: "stderr"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if log.GetLevel() != logrus.DebugLevel {
		t.Errorf("unexpected level: %v", log.GetLevel())
	}
}

func TestSetupJSONFormatter(t *testing.T) {
	log, err := Setup(config.LoggingConfig{Level: "info", Format: "json", Output: "stdout"})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if _, ok := log.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("expected JSON formatter, got %T", log.Formatter)
	}
}

func TestSetupFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "convert.log")
	log, err := Setup(config.LoggingConfig{Level: "info", Format: "text", Output: path})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	log.Info("hello")
}

func TestSetupRejectsInvalidLevel(t *testing.T) {
	if _, err := Setup(config.LoggingConfig{Level: "loud", Format: "text"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestSetupRejectsInvalidFormat(t *testing.T) {
	if _, err := Setup(config.LoggingConfig{Level: "info", Format: "xml"}); err == nil {
		t.Fatal("expected error for invalid format")
	}
}
