package main

import (
	"context"

	"github.com/abhishek622/interviewSession/internal/auth"
	"github.com/abhishek622/interviewSession/internal/cache"
	"github.com/abhishek622/interviewSession/internal/config"
	"github.com/abhishek622/interviewSession/internal/database"
	"github.com/abhishek622/interviewSession/internal/events"
	"github.com/abhishek622/interviewSession/internal/handler"
	"github.com/abhishek622/interviewSession/internal/lock"
	"github.com/abhishek622/interviewSession/internal/logger"
	"github.com/abhishek622/interviewSession/internal/projector"
	"github.com/abhishek622/interviewSession/internal/repository"
	"github.com/abhishek622/interviewSession/internal/session"
	"github.com/abhishek622/interviewSession/internal/sweep"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type application struct {
	DB         *pgxpool.Pool
	Redis      *redis.Client
	Logger     *zap.Logger
	Config     *config.Config
	Repository *repository.Repository
	Sessions   *session.Engine
	Sweeper    *sweep.Sweeper
	TokenMaker *auth.JWTMaker
	Handler    *handler.Handler
}

func main() {
	ctx := context.Background()
	cfg := config.MustLoad()

	log, err := logger.NewLogger(cfg.IsDevelopment())
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded, %s", cfg)

	pool, err := database.Connect(ctx, cfg.DB.DSN, cfg.DB.MaxConns, cfg.DB.MaxConnLifetime)
	if err != nil {
		sugar.Fatal(err)
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(ctx, pool); err != nil {
			sugar.Fatal(err)
		}
	}

	repo := repository.NewRepository(pool)

	var (
		locker     lock.Locker = lock.NewKeyedMutex()
		publishers []projector.Publisher
		rdb        *redis.Client
	)
	if cfg.Redis.Enabled {
		rdb = cache.NewRedisClient(cfg.Redis)
		if err := cache.Ping(ctx, rdb); err != nil {
			sugar.Fatal(err)
		}
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, cfg.Session.LockTTL, log)
		publishers = append(publishers, events.NewRedisPublisher(rdb))
	}

	proj := projector.New(repo, log, publishers...)
	engine := session.New(repo, locker, proj, log, session.Config{
		GracePeriod:               cfg.Session.GracePeriod,
		EarlyJoinWindow:           cfg.Session.EarlyJoinWindow,
		DefaultScreenshotInterval: cfg.Session.DefaultScreenshotInterval,
		SweepBatchSize:            cfg.Session.SweepBatchSize,
	})

	app := &application{
		DB:         pool,
		Redis:      rdb,
		Logger:     log,
		Config:     cfg,
		Repository: repo,
		Sessions:   engine,
		Sweeper:    sweep.New(engine, cfg.Session.SweepSchedule, log),
		TokenMaker: auth.NewJWTMaker(cfg.JWT.Secret),
		Handler: &handler.Handler{
			Logger:   log,
			Sessions: engine,
		},
	}

	if err := app.Sweeper.Start(); err != nil {
		sugar.Fatal(err)
	}
	defer app.Sweeper.Stop()

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}
