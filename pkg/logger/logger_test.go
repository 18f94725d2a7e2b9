package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesConsoleAndFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "rh.log")

	require.NoError(t, Init(Config{Level: "debug", OutputFile: path, Console: &console}))
	t.Cleanup(func() { _ = Close() })

	WithField("symbol", "BTC-USD").Info("quote")
	Debugf("debug %d", 1)

	assert.Contains(t, console.String(), "symbol=BTC-USD")
	assert.Contains(t, console.String(), "debug 1")
	assert.Equal(t, path, GetCurrentLogFile())

	require.NoError(t, Close())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "quote")
}

func TestInitLevelFallsBackToInfo(t *testing.T) {
	var console bytes.Buffer
	require.NoError(t, Init(Config{Level: "nonsense", Console: &console}))

	assert.Equal(t, logrus.InfoLevel, Logger.GetLevel())
	Debugf("hidden")
	Infof("shown")
	assert.NotContains(t, console.String(), "hidden")
	assert.Contains(t, console.String(), "shown")
	assert.Empty(t, GetCurrentLogFile())
}

func TestInitJSON(t *testing.T) {
	var console bytes.Buffer
	require.NoError(t, Init(Config{Level: "info", JSON: true, Console: &console}))

	WithFields(logrus.Fields{"path": "/api/v1/crypto/trading/accounts/"}).Warn("slow")

	var line map[string]any
	require.NoError(t, json.Unmarshal(console.Bytes(), &line))
	assert.Equal(t, "slow", line["msg"])
	assert.Equal(t, "warning", line["level"])
	assert.Equal(t, "/api/v1/crypto/trading/accounts/", line["path"])
}
