package observers

import (
	"context"
	"time"

	einocb "github.com/cloudwego/eino/callbacks"

	"github.com/petrolito-ai/advisor/internal/advisor/model"
	logx "github.com/petrolito-ai/advisor/pkg/logger"
)

// newGraphHandler logs one line per turn at graph entry and exit.
func newGraphHandler() einocb.Handler {
	return einocb.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *einocb.RunInfo, input einocb.CallbackInput) context.Context {
			ev := logx.Debug().Str("component", "graph")
			if in, ok := input.(model.QueryInput); ok {
				ev = ev.Str("session_id", in.SessionID).Int("query_len", len(in.Query))
			}
			ev.Msg("turn start")
			return context.WithValue(ctx, startedAtKey{info.Name}, time.Now())
		}).
		OnEndFn(func(ctx context.Context, info *einocb.RunInfo, output einocb.CallbackOutput) context.Context {
			ev := logx.Debug().Str("component", "graph").Dur("elapsed", elapsed(ctx, info.Name))
			if resp, ok := output.(*model.Response); ok && resp != nil {
				ev = ev.Str("response", string(resp.Kind)).Str("topic", resp.Topic.String()).Int("depth", resp.Depth)
			}
			ev.Msg("turn end")
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().Str("component", "graph").Err(err).Msg("turn failed")
			return ctx
		}).
		Build()
}
