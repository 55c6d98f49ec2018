package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/petrolito-ai/advisor/internal/advisor/dialog"
	"github.com/petrolito-ai/advisor/internal/advisor/forecast"
	"github.com/petrolito-ai/advisor/internal/advisor/graph"
	"github.com/petrolito-ai/advisor/internal/advisor/model"
	"github.com/petrolito-ai/advisor/internal/advisor/repo"
	"github.com/petrolito-ai/advisor/internal/core"
	errx "github.com/petrolito-ai/advisor/internal/core/error"
	logx "github.com/petrolito-ai/advisor/pkg/logger"
	pkgredis "github.com/petrolito-ai/advisor/pkg/redis"
	"github.com/petrolito-ai/advisor/pkg/termview"
)

// AppConfig defines all configurable parameters of the advisor,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// Advisor configs
	Conversation model.ConversationConfig
	Knowledge    model.KnowledgeConfig
	Forecast     model.ForecastConfig

	SessionID   string `envconfig:"SESSION_ID"`
	Interactive bool   `envconfig:"CHAT_INTERACTIVE"`
	Width       int    `envconfig:"TERM_WIDTH" default:"96"`
}

func main() {
	ctx := context.Background()
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	kb, err := dialog.Load(envCfg.Knowledge)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to load knowledge table")
	}
	engine := dialog.NewEngine(kb, forecast.New(envCfg.Forecast, kb.Defaults()))

	store, closeStore := sessionStore(ctx, envCfg)
	defer closeStore()

	runner, err := graph.BuildTurnGraph(ctx, graph.Config{
		Engine:       engine,
		SessionRepo:  store,
		Conversation: envCfg.Conversation,
	})
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to build graph")
	}

	sessionID := envCfg.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	logx.Info().Str("session_id", sessionID).Msg("Session started")

	turn := func(query string) {
		resp, err := runner.Invoke(ctx, model.QueryInput{SessionID: sessionID, Query: query})
		if err != nil {
			logx.Error().Err(err).Int("status", errx.Status(err)).Str("session_id", sessionID).Msg("Failed to process turn")
			fmt.Printf("Sorry, something went wrong (%s). Please try again.\n\n", errx.UserMessage(err))
			return
		}
		fmt.Println(termview.Render(resp, envCfg.Width))
		fmt.Println()
	}

	if envCfg.Interactive {
		runInteractive(turn)
	} else {
		runScripted(turn)
	}

	count, err := runner.Sessions().MessageCount(ctx, sessionID)
	if err != nil {
		logx.Warn().Err(err).Msg("Could not count transcript messages")
		return
	}
	fmt.Printf("Session %s: %d transcript messages stored\n", sessionID, count)
}

// sessionStore picks Redis when a URL is configured and memory otherwise.
func sessionStore(ctx context.Context, cfg AppConfig) (model.SessionRepository, func()) {
	if !cfg.Redis.Enabled() {
		logx.Info().Msg("REDIS_URL not set; sessions are kept in memory")
		return repo.NewMemorySessionRepository(), func() {}
	}

	ttl, err := time.ParseDuration(cfg.Conversation.TTL)
	if err != nil {
		logx.Fatal().Err(err).Str("ttl", cfg.Conversation.TTL).Msg("Invalid CONVERSATION_TTL")
	}

	rdb, err := cfg.Redis.New(ctx)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to initialise Redis client")
	}
	logx.Info().Msg("Connected to Redis successfully")
	return repo.NewRedisSessionRepository(rdb, ttl), func() { _ = rdb.Close() }
}

func runScripted(turn func(string)) {
	queries := []string{
		"What's our debt situation?",
		"tell me more",
		"more detail",
		"more",
		"what about liquidity with brent at 82",
		"continue",
		"how is the refinery doing",
		"the price is 85",
	}
	for i, q := range queries {
		fmt.Printf("» Turn %d: %s\n", i+1, q)
		turn(q)
	}
}

func runInteractive(turn func(string)) {
	fmt.Println("Ask about debt, liquidity, operations or macro. Empty line to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("» ")
		if !scanner.Scan() {
			return
		}
		q := strings.TrimSpace(scanner.Text())
		if q == "" {
			return
		}
		turn(q)
	}
}
