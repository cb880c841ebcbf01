package logging

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIDStable(t *testing.T) {
	first := GetSessionID()
	second := GetSessionID()
	assert.Equal(t, first, second, "session ID must be stable within one process")
	assert.NotEmpty(t, first)
}

func TestNewLoggerWritesEntries(t *testing.T) {
	logger, err := NewLogger("test-component")
	if err != nil {
		t.Skipf("file logging unavailable in this environment: %v", err)
	}
	defer logger.Close()

	logger.Infof("hello %s", "world")
	logger.Warnf("watch out")

	data, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "[test-component]")
	assert.Contains(t, content, "[INFO] hello world")
	assert.Contains(t, content, "[WARN] watch out")
}

func TestLoggerCloseIdempotent(t *testing.T) {
	logger, err := NewLogger("close-test")
	if err != nil {
		t.Skipf("file logging unavailable in this environment: %v", err)
	}

	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())
}

func TestFormatLogEntry(t *testing.T) {
	logger := &Logger{component: "snapshot"}
	entry := logger.formatLogEntry("DEBUG", "built tree")

	assert.True(t, strings.HasSuffix(entry, "[snapshot] [DEBUG] built tree"), entry)
}
