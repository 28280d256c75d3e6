package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"

	config "github.com/sweetslice/go-backend/internal/cfg"
	v1Http "github.com/sweetslice/go-backend/internal/delivery/v1/http"
	"github.com/sweetslice/go-backend/internal/infrastructure/kafka"
	minioInfra "github.com/sweetslice/go-backend/internal/infrastructure/minio"
	"github.com/sweetslice/go-backend/internal/infrastructure/token"
	s3Repo "github.com/sweetslice/go-backend/internal/repository/minio"
	"github.com/sweetslice/go-backend/internal/repository/pgdb"
	pgdbConv "github.com/sweetslice/go-backend/internal/repository/pgdb/converter"
	"github.com/sweetslice/go-backend/internal/repository/redis"
	"github.com/sweetslice/go-backend/internal/usecase"
	"github.com/sweetslice/go-backend/pkg/clients"
	"github.com/sweetslice/go-backend/pkg/closer"
	"github.com/sweetslice/go-backend/pkg/e"
	"github.com/sweetslice/go-backend/pkg/logger"
	"github.com/sweetslice/go-backend/pkg/postgres"
)

// App owns every long-lived component and coordinates startup and shutdown.
type App struct {
	cfg    *config.Config
	logger logger.Logger

	db           *postgres.PgDatabase
	redisClient  *clients.RedisClient
	producer     *kafka.Producer
	outboxWorker *kafka.OutboxWorker
	imagesInfra  *minioInfra.MinioInfrastructure
	httpSrv      *v1Http.Server

	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	db, err := initPGDB(log, cfg)
	if err != nil {
		shutdownCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	prConv := pgdbConv.NewProductConverter()
	userConv := pgdbConv.NewUserConverter()
	orderConv := pgdbConv.NewOrderConverter()
	outboxConv := pgdbConv.NewOutboxEventConverter()

	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	userRepo := pgdb.NewUserRepo(db.Pool, userConv)
	orderRepo := pgdb.NewOrderRepo(db.Pool, orderConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		shutdownCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName)
	minioCancel()
	if err != nil {
		shutdownCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)
	imagesInfra := minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio, log, shutdownCtx)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = redisClient.Ping(redisCtx)
	redisCancel()
	if err != nil {
		shutdownCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cacheRepo := redis.NewCacheRepo(redisClient, cfg.Redis, log)
	cartStore := redis.NewCartStore(redisClient, cfg.Redis)

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		shutdownCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		shutdownCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	outboxWorker := kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)

	tokens := token.NewJWTService(cfg.Jwt)

	productUC := usecase.NewProductUC(productRepo, outboxRepo, db.Pool, imagesInfra, cacheRepo, log)
	cartUC := usecase.NewCartUC(cartStore, productRepo, log)
	authUC := usecase.NewAuthUC(userRepo, tokens, log)
	userUC := usecase.NewUserUC(userRepo, log)
	orderUC := usecase.NewOrderUC(orderRepo, outboxRepo, db.Pool, log)

	r := chi.NewRouter()
	mw := v1Http.NewMiddleware(tokens, log)
	router := v1Http.NewRouter(r, mw, log)
	router.Init(productUC, cartUC, authUC, userUC, orderUC)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	return &App{
		cfg:            cfg,
		logger:         log,
		db:             db,
		redisClient:    redisClient,
		producer:       producer,
		outboxWorker:   outboxWorker,
		imagesInfra:    imagesInfra,
		httpSrv:        httpSrv,
		shutdownCtx:    shutdownCtx,
		shutdownCancel: shutdownCancel,
	}, nil
}

// Run starts the HTTP server and the outbox worker, then blocks until a
// shutdown signal or a fatal server error.
func (a *App) Run() error {
	a.outboxWorker.Start(a.shutdownCtx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	a.stop()
	return appErr
}

// stop closes resources in reverse startup order: HTTP first so no new work
// arrives, then the background workers, then the stores underneath them.
func (a *App) stop() {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	c := closer.NewCloser(2 * time.Second)

	c.Add(func(context.Context) error {
		a.db.Close()
		return nil
	})
	c.Add(func(context.Context) error {
		return a.redisClient.Client.Close()
	})
	c.Add(func(ctx context.Context) error {
		return a.imagesInfra.WaitForCleanup(ctx)
	})
	c.Add(func(context.Context) error {
		return a.producer.Close()
	})
	c.Add(func(context.Context) error {
		// Stop accepting new background work, then drain what is in flight.
		a.shutdownCancel()
		a.outboxWorker.Stop()
		return nil
	})
	c.Add(func(ctx context.Context) error {
		return a.httpSrv.Stop(ctx)
	})

	if err := c.Close(shutdownCtx); err != nil {
		a.logger.Warnf("shutdown finished with errors: %v", err)
		return
	}

	a.logger.Infof("Application shutdown complete")
}

func initPGDB(log logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		log.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(log); err != nil {
		log.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		log.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
