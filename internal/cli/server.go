package cli

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"quizroom/internal/adapters/genai"
	"quizroom/internal/app"
	"quizroom/internal/config"
	"quizroom/internal/domain"
	"quizroom/internal/infra/memory"
	pgstore "quizroom/internal/infra/postgres"
	redisstore "quizroom/internal/infra/redis"
	transport "quizroom/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	// Postgres is reached two ways: pgx for the hot quiz read path, bun
	// for authoring and history rows.
	var pool *pgxpool.Pool
	var bundb *bun.DB
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
		bundb = bun.NewDB(sqldb, pgdialect.New())
		defer bundb.Close()
	}

	var quizStore app.QuizStore
	var loader memory.QuizLoader
	if bundb != nil {
		quizStore = pgstore.NewQuizStore(bundb)
		loader = pgstore.NewQuizLoader(pool)
	} else {
		memStore := memory.NewQuizStoreWith(sampleQuizzes())
		quizStore = memStore
		loader = memStore
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	var quizSource app.QuizSource
	if redisClient != nil {
		quizSource = redisstore.NewQuizRepository(redisClient, loader, quizTTL)
	} else {
		quizSource = memory.NewQuizRepository(loader, quizTTL)
	}

	var sessions app.SessionRepository
	if redisClient != nil {
		sessions = redisstore.NewSessionStore(redisClient, redisTTL)
	} else {
		sessions = memory.NewSessionStore()
	}

	var history app.HistoryStore
	if bundb != nil {
		history = pgstore.NewHistoryStore(bundb)
	} else {
		history = memory.NewHistoryStore()
	}

	var quizOpts []app.QuizServiceOption
	var gameOpts []app.GameOption
	if cfg.GenAI.BaseURL != "" {
		client := genai.NewClient(cfg.GenAI.BaseURL, cfg.GenAI.APIKey, config.TTLDuration(cfg.GenAI.Timeout, 30*time.Second))
		quizOpts = append(quizOpts, app.WithGenerator(client))
		gameOpts = append(gameOpts, app.WithExplainer(client))
	}

	quizService := app.NewQuizService(quizStore, quizOpts...)
	gameService := app.NewGameService(sessions, quizSource, history, gameOpts...)

	monitorCtx, stopMonitor := context.WithCancel(ctx)
	defer stopMonitor()
	monitor := app.NewPresenceMonitor(sessions,
		config.TTLDuration(cfg.Game.HeartbeatTimeout, 15*time.Second),
		config.TTLDuration(cfg.Game.PresenceInterval, 5*time.Second),
		cfg.Game.HeartbeatStrikes,
		app.WithRetention(config.TTLDuration(cfg.Game.EndedRetention, 5*time.Minute)))
	go monitor.Run(monitorCtx)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(quizService, gameService),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		slog.Info("starting quiz server", "port", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		slog.Info("shutting down server")
	case <-ctx.Done():
		slog.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuizzes seeds the in-memory store so the service is playable
// without Postgres.
func sampleQuizzes() map[string]domain.Quiz {
	return map[string]domain.Quiz{
		"quiz-1": {
			ID:                   "quiz-1",
			Title:                "Quick Arithmetic",
			CreatedBy:            "demo-host",
			HasNegativeMarking:   true,
			NegativeMarkingValue: 25,
			Questions: []domain.Question{
				{
					ID:   "q1",
					Text: "What is 2 + 2?",
					Options: []domain.Option{
						{ID: "o1", Text: "3"},
						{ID: "o2", Text: "4"},
						{ID: "o3", Text: "5"},
					},
					CorrectOption: "o2",
					Marks:         10,
					TimeLimitSec:  20,
					Explanation:   "Adding two and two gives four.",
				},
				{
					ID:   "q2",
					Text: "What is 9 - 5?",
					Options: []domain.Option{
						{ID: "o4", Text: "4"},
						{ID: "o5", Text: "3"},
					},
					CorrectOption: "o4",
					Marks:         4,
					TimeLimitSec:  15,
				},
			},
		},
	}
}
