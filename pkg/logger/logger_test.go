package logx

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrolito-ai/advisor/internal/core"
)

func TestInit_ProductionWritesJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	Init(LoggerOpts{Environment: core.Production, Output: &buf})
	t.Cleanup(func() { Init() })

	Debug().Msg("hidden")
	Info().Str("component", "dialog").Msg("visible")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "visible", line["message"])
	assert.Equal(t, "dialog", line["component"])
	assert.Equal(t, "info", line["level"])
}

func TestInit_Verbosity(t *testing.T) {
	t.Cleanup(func() { Init() })

	var dev bytes.Buffer
	Init(LoggerOpts{Environment: core.Development, Output: &dev})
	Debug().Msg("classified")
	assert.Contains(t, dev.String(), "classified")

	var staging bytes.Buffer
	Init(LoggerOpts{Environment: core.Staging, Output: &staging})
	Debug().Msg("classified")
	assert.Empty(t, staging.String())
}
