package repo

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrolito-ai/advisor/internal/advisor/model"
	errx "github.com/petrolito-ai/advisor/internal/core/error"
)

// runRepositoryContract exercises behaviour every SessionRepository shares.
func runRepositoryContract(t *testing.T, r model.SessionRepository) {
	ctx := context.Background()

	t.Run("missing state", func(t *testing.T) {
		st, err := r.LoadState(ctx, "missing")
		assert.Nil(t, st)
		assert.ErrorIs(t, err, errx.ErrSessionNotFound)
	})

	t.Run("state round trip", func(t *testing.T) {
		want := &model.ConversationState{
			CurrentTopic: model.TopicLiquidity,
			DepthLevel:   2,
			LearnedParameters: map[model.ParamName]float64{
				model.ParamCommodityPrice: 82.5,
				model.ParamOutputRate:     95,
				model.ParamDebtService:    2,
			},
		}
		require.NoError(t, r.SaveState(ctx, "s1", want))

		got, err := r.LoadState(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, want, got)

		// stored copy is independent of the caller's pointer
		want.DepthLevel = 0
		got, err = r.LoadState(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, 2, got.DepthLevel)
	})

	t.Run("transcript", func(t *testing.T) {
		require.NoError(t, r.AddMessage(ctx, "s2", schema.UserMessage("tell me about the debt")))
		require.NoError(t, r.AddMessage(ctx, "s2", schema.AssistantMessage("Debt: executive summary", nil)))

		n, err := r.GetMessageCount(ctx, "s2")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		h, err := r.LoadHistory(ctx, "s2")
		require.NoError(t, err)
		require.Len(t, h.Messages, 2)
		assert.Equal(t, schema.User, h.Messages[0].Role)
		assert.Equal(t, "Debt: executive summary", h.Messages[1].Content)
	})

	t.Run("empty transcript", func(t *testing.T) {
		h, err := r.LoadHistory(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, h.Messages)

		n, err := r.GetMessageCount(ctx, "nobody")
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("save turn", func(t *testing.T) {
		st := &model.ConversationState{
			CurrentTopic:      model.TopicDebt,
			DepthLevel:        1,
			LearnedParameters: map[model.ParamName]float64{model.ParamCommodityPrice: 85},
		}
		require.NoError(t, r.SaveTurn(ctx, "s4", st,
			schema.UserMessage("debt again"),
			schema.AssistantMessage("Debt: analytical detail", nil),
		))

		got, err := r.LoadState(ctx, "s4")
		require.NoError(t, err)
		assert.Equal(t, st, got)

		h, err := r.LoadHistory(ctx, "s4")
		require.NoError(t, err)
		require.Len(t, h.Messages, 2)
		assert.Equal(t, "debt again", h.Messages[0].Content)
		assert.Equal(t, schema.Assistant, h.Messages[1].Role)

		// state-only turn
		st.DepthLevel = 2
		require.NoError(t, r.SaveTurn(ctx, "s4", st))
		got, err = r.LoadState(ctx, "s4")
		require.NoError(t, err)
		assert.Equal(t, 2, got.DepthLevel)
		n, err := r.GetMessageCount(ctx, "s4")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("clear", func(t *testing.T) {
		require.NoError(t, r.SaveState(ctx, "s3", &model.ConversationState{}))
		require.NoError(t, r.AddMessage(ctx, "s3", schema.UserMessage("hi")))
		require.NoError(t, r.ClearSession(ctx, "s3"))

		_, err := r.LoadState(ctx, "s3")
		assert.ErrorIs(t, err, errx.ErrSessionNotFound)
		n, err := r.GetMessageCount(ctx, "s3")
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestMemorySessionRepository(t *testing.T) {
	runRepositoryContract(t, NewMemorySessionRepository())
}
