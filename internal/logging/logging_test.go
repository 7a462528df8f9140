package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symeq/internal/logging"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New("debug", "json", &buf)
	require.NoError(t, err)
	logger.Debug("graded", "tier", "2")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "graded", line["msg"])
	assert.Equal(t, "DEBUG", line["level"])
	assert.Equal(t, "2", line["tier"])
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New("warn", "text", &buf)
	require.NoError(t, err)
	logger.Info("hidden")
	assert.Empty(t, buf.String())
	logger.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestNew_Errors(t *testing.T) {
	_, err := logging.New("loud", "text", &bytes.Buffer{})
	assert.Error(t, err)
	_, err = logging.New("info", "xml", &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown log format")
}
