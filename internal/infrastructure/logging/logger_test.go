package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appLogging "github.com/andrescamacho/devempire-go/internal/application/logging"
	"github.com/andrescamacho/devempire-go/internal/infrastructure/config"
	"github.com/andrescamacho/devempire-go/internal/infrastructure/logging"
)

func TestSlogLogger_JSONRecord(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, config.LoggingConfig{Level: "info", Format: "json"})

	// Act
	logger.Log(appLogging.LevelWarning, "Busted", map[string]interface{}{"lost": 1000})

	// Assert
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "Busted", record["msg"])
	assert.Equal(t, float64(1000), record["lost"])
}

func TestSlogLogger_LevelFilter(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, config.LoggingConfig{Level: "warn", Format: "text"})

	// Act
	logger.Log(appLogging.LevelInfo, "quiet", nil)
	logger.Log(appLogging.LevelError, "loud", nil)

	// Assert
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestSlogLogger_SatisfiesPort(t *testing.T) {
	var _ appLogging.Logger = logging.NewWithWriter(&bytes.Buffer{}, config.LoggingConfig{})
}
