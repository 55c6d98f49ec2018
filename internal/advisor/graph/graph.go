package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/petrolito-ai/advisor/internal/advisor/dialog"
	"github.com/petrolito-ai/advisor/internal/advisor/graph/nodes"
	"github.com/petrolito-ai/advisor/internal/advisor/graph/observers"
	"github.com/petrolito-ai/advisor/internal/advisor/graph/sessions"
	"github.com/petrolito-ai/advisor/internal/advisor/model"
	logx "github.com/petrolito-ai/advisor/pkg/logger"
)

// Runner executes one conversational turn for a session.
// Turns of the same session must be invoked sequentially.
type Runner interface {
	Invoke(ctx context.Context, in model.QueryInput) (*model.Response, error)
	Sessions() *sessions.SessionManager
}

// Config holds everything needed to compose the turn graph end-to-end.
type Config struct {
	Engine       *dialog.Engine
	SessionRepo  model.SessionRepository
	Conversation model.ConversationConfig
}

// GraphConfig holds the collaborators the nodes are bound to.
type GraphConfig struct {
	Engine   *dialog.Engine
	Sessions *sessions.SessionManager
}

// GraphBuilder handles the construction of the turn graph.
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.QueryInput, *model.Response]
}

type graphRunner struct {
	runnable compose.Runnable[model.QueryInput, *model.Response]
	sessions *sessions.SessionManager
}

func (r *graphRunner) Invoke(ctx context.Context, in model.QueryInput) (*model.Response, error) {
	return r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
}

func (r *graphRunner) Sessions() *sessions.SessionManager {
	return r.sessions
}

// BuildTurnGraph wires the session manager and compiles the graph.
func BuildTurnGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.SessionRepo == nil {
		return nil, fmt.Errorf("session repo is nil")
	}
	if cfg.Engine == nil {
		return nil, fmt.Errorf("dialog engine is nil")
	}

	sm := sessions.NewSessionManager(cfg.SessionRepo, cfg.Engine, cfg.Conversation)

	runnable, err := BuildGraph(ctx, &GraphConfig{
		Engine:   cfg.Engine,
		Sessions: sm,
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Turn graph built successfully")
	return &graphRunner{runnable: runnable, sessions: sm}, nil
}

// BuildGraph constructs and returns the compiled turn graph.
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.QueryInput, *model.Response], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.Engine == nil || config.Sessions == nil {
		return nil, fmt.Errorf("engine and session manager are required")
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.QueryInput, *model.Response](
			compose.WithGenLocalState(func(ctx context.Context) *model.TurnState {
				return &model.TurnState{}
			}),
		),
	}

	if err := builder.addNodes(); err != nil {
		return nil, err
	}
	if err := builder.addEdges(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

func (b *GraphBuilder) addNodes() error {
	type node struct {
		key    string
		lambda *compose.Lambda
		opts   []compose.GraphAddNodeOpt
	}

	list := []node{
		{
			key:    nodes.NodeInputConverter,
			lambda: nodes.NewInputConverterNode(b.config.Sessions),
			opts:   []compose.GraphAddNodeOpt{compose.WithStatePreHandler(nodes.NewInputConverterPreHandler())},
		},
		{
			key:    nodes.NodeClassifier,
			lambda: nodes.NewClassifierNode(b.config.Engine),
			opts:   []compose.GraphAddNodeOpt{compose.WithStatePostHandler(nodes.NewClassifierPostHandler())},
		},
		{
			key:    nodes.NodeExtractor,
			lambda: nodes.NewExtractorNode(b.config.Engine),
			opts:   []compose.GraphAddNodeOpt{compose.WithStatePostHandler(nodes.NewExtractorPostHandler())},
		},
		{
			key:    nodes.NodeResponder,
			lambda: nodes.NewResponderNode(b.config.Engine),
		},
		{
			key:    nodes.NodeFinalizer,
			lambda: nodes.NewFinalizerNode(b.config.Sessions),
			opts:   []compose.GraphAddNodeOpt{compose.WithStatePostHandler(nodes.NewFinalizerPostHandler())},
		},
	}

	for _, n := range list {
		if err := b.graph.AddLambdaNode(n.key, n.lambda, n.opts...); err != nil {
			logx.Error().Err(err).Str("node", n.key).Msg("Error adding node")
			return fmt.Errorf("error adding node %s: %w", n.key, err)
		}
	}
	return nil
}

// addEdges chains the nodes in turn order.
func (b *GraphBuilder) addEdges() error {
	edges := [][2]string{
		{compose.START, nodes.NodeInputConverter},
		{nodes.NodeInputConverter, nodes.NodeClassifier},
		{nodes.NodeClassifier, nodes.NodeExtractor},
		{nodes.NodeExtractor, nodes.NodeResponder},
		{nodes.NodeResponder, nodes.NodeFinalizer},
		{nodes.NodeFinalizer, compose.END},
	}

	for _, edge := range edges {
		if err := b.graph.AddEdge(edge[0], edge[1]); err != nil {
			logx.Error().Err(err).Str("from", edge[0]).Str("to", edge[1]).Msg("Error adding edge")
			return fmt.Errorf("error adding edge %s -> %s: %w", edge[0], edge[1], err)
		}
	}
	return nil
}

func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.QueryInput, *model.Response], error) {
	runnable, err := b.graph.Compile(ctx, compose.WithGraphName("AdvisorTurn"))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
