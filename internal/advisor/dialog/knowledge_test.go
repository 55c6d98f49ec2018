package dialog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrolito-ai/advisor/internal/advisor/model"
	errx "github.com/petrolito-ai/advisor/internal/core/error"
)

func TestLoadDefault(t *testing.T) {
	kb, err := LoadDefault()
	require.NoError(t, err)

	assert.Equal(t, []model.Topic{model.TopicDebt, model.TopicLiquidity, model.TopicOperations, model.TopicMacro}, kb.Order())
	for _, topic := range model.Topics() {
		for d := 0; d <= model.MaxDepth; d++ {
			e := kb.Entry(topic, d)
			assert.NotEmpty(t, e.Title)
			assert.True(t, e.Attachment.Valid())
		}
	}
	assert.Equal(t, map[model.ParamName]float64{
		model.ParamCommodityPrice: 75,
		model.ParamOutputRate:     95,
		model.ParamDebtService:    2,
	}, kb.Defaults())
}

func TestParse_Invalid(t *testing.T) {
	base := string(defaultKnowledge)

	tests := []struct {
		name    string
		mutate  func(string) string
		problem string
	}{
		{
			name:    "unknown topic",
			mutate:  func(s string) string { return strings.Replace(s, "  - id: macro", "  - id: weather", 1) },
			problem: `unknown topic "weather"`,
		},
		{
			name:    "missing topic",
			mutate:  func(s string) string { return strings.Replace(s, "  - id: macro", "  - id: weather", 1) },
			problem: "topic macro: missing",
		},
		{
			name:    "depth out of range",
			mutate:  func(s string) string { return strings.Replace(s, "      - depth: 2", "      - depth: 3", 1) },
			problem: "depth must be 0..2",
		},
		{
			name:    "missing entry",
			mutate:  func(s string) string { return strings.Replace(s, "      - depth: 2", "      - depth: 3", 1) },
			problem: "entry debt/2: missing",
		},
		{
			name:    "bad attachment",
			mutate:  func(s string) string { return strings.Replace(s, "attachment: savings", "attachment: pie", 1) },
			problem: `unknown attachment "pie"`,
		},
		{
			name: "no continuation words",
			mutate: func(s string) string {
				i := strings.Index(s, "continuation: [")
				j := strings.Index(s[i:], "\n")
				return s[:i] + "continuation: []" + s[i+j:]
			},
			problem: "continuation: at least one word is required",
		},
		{
			name:    "missing default",
			mutate:  func(s string) string { return strings.Replace(s, "    default: 2\n", "", 1) },
			problem: "parameter debt_service: default is required",
		},
		{
			name: "two capture groups",
			mutate: func(s string) string {
				return strings.Replace(s, `(\d{2,3}(?:\.\d+)?)\b'`, `(\d{2,3})(\.\d+)?\b'`, 1)
			},
			problem: "exactly one capture group",
		},
		{
			name: "malformed pattern",
			mutate: func(s string) string {
				return strings.Replace(s, `(\d{2,3}(?:\.\d+)?)\b'`, `(\d{2,3}(?:\.\d+)?\b'`, 1)
			},
			problem: "malformed pattern",
		},
		{
			name:    "unknown field",
			mutate:  func(s string) string { return strings.Replace(s, "footers:", "colors: red\nfooters:", 1) },
			problem: "field colors not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutated := tt.mutate(base)
			require.NotEqual(t, base, mutated)

			kb, err := Parse([]byte(mutated))
			require.Error(t, err)
			assert.Nil(t, kb)
			assert.ErrorIs(t, err, errx.ErrInvalidKnowledge)
			assert.Contains(t, err.Error(), tt.problem)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("embedded when unset", func(t *testing.T) {
		kb, err := Load(model.KnowledgeConfig{})
		require.NoError(t, err)
		assert.Len(t, kb.Order(), 4)
	})

	t.Run("file override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "knowledge.yaml")
		custom := strings.Replace(string(defaultKnowledge), "label: Macro", "label: Economy", 1)
		require.NoError(t, os.WriteFile(path, []byte(custom), 0o600))

		kb, err := Load(model.KnowledgeConfig{File: path})
		require.NoError(t, err)
		assert.Equal(t, "Economy", kb.Label(model.TopicMacro))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(model.KnowledgeConfig{File: filepath.Join(t.TempDir(), "nope.yaml")})
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
