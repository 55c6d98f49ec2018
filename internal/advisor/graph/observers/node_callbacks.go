package observers

import (
	"context"
	"time"

	einocb "github.com/cloudwego/eino/callbacks"

	logx "github.com/petrolito-ai/advisor/pkg/logger"
)

type startedAtKey struct{ name string }

// newNodeHandler logs the lifecycle of lambda nodes with their run time.
func newNodeHandler() einocb.Handler {
	return einocb.NewHandlerBuilder().
		OnStartFn(func(ctx context.Context, info *einocb.RunInfo, input einocb.CallbackInput) context.Context {
			logx.Debug().
				Str("component", "graph").
				Str("node", info.Name).
				Str("type", info.Type).
				Msg("node start")
			return context.WithValue(ctx, startedAtKey{info.Name}, time.Now())
		}).
		OnEndFn(func(ctx context.Context, info *einocb.RunInfo, output einocb.CallbackOutput) context.Context {
			logx.Debug().
				Str("component", "graph").
				Str("node", info.Name).
				Dur("elapsed", elapsed(ctx, info.Name)).
				Msg("node end")
			return ctx
		}).
		OnErrorFn(func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().
				Str("component", "graph").
				Str("node", info.Name).
				Dur("elapsed", elapsed(ctx, info.Name)).
				Err(err).
				Msg("node failed")
			return ctx
		}).
		Build()
}

func elapsed(ctx context.Context, name string) time.Duration {
	if t, ok := ctx.Value(startedAtKey{name}).(time.Time); ok {
		return time.Since(t)
	}
	return 0
}
