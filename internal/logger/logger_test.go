package logger

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSetup_Level(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	Setup("debug", "")
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	Setup("nonsense", "")
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestSetup_File(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	file := filepath.Join(t.TempDir(), "app.log")
	Setup("info", file)
	log.Info("written to rotating file")

	data, err := os.ReadFile(file)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "written to rotating file")
}
