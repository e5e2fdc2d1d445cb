package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"shopapi/internal/config"
	"shopapi/internal/handler"
	"shopapi/internal/infra/db"
	infraRepo "shopapi/internal/infra/repository"
	"shopapi/internal/logger"
	appmw "shopapi/internal/middleware"
	"shopapi/internal/observability/metrics"
	"shopapi/internal/server"
	"shopapi/internal/usecase"
	auth "shopapi/internal/usecase/auth_usecase"
	"shopapi/internal/worker"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	//設定
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	//ロガー
	log, closer, err := logger.New(logger.Options{
		Level:      cfg.LogLevel,
		Production: cfg.IsProduction(),
		Dir:        cfg.LogDir,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closer.Close()
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect(cfg, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	defer sqlDB.Close()

	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	//メトリクス
	var (
		m        *metrics.Metrics
		reg      *prometheus.Registry
		sessionM auth.SessionMetrics
		sweepM   worker.SweepMetrics
	)
	if cfg.MetricsEnabled {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.New(reg)
		sessionM = m
		sweepM = m
	}

	//Repository（GORM実装）生成
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	tokenRepo := infraRepo.NewRefreshTokenGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	brandRepo := infraRepo.NewBrandGormRepository(gormDB)
	reviewRepo := infraRepo.NewReviewGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := auth.SystemClock{}
	codec := auth.NewJWTCodec(auth.TokenConfig{
		AccessSecret:  cfg.JWTSecret,
		AccessTTL:     cfg.JWTExpiresIn,
		RefreshSecret: cfg.JWTRefreshSecret,
		RefreshTTL:    cfg.JWTRefreshTTL,
	}, clock, auth.UUIDGenerator{})

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(cfg.BcryptRounds)
	verifier := auth.NewBcryptPasswordVerifier()

	session := auth.NewSession(codec, clock, auth.NewAuditRecorder(auditRepo, clock, log), sessionM)

	//Handler生成
	handlers := server.Handlers{
		Health: handler.NewHealthHandler(sqlDB),
		Auth: handler.NewAuthHandler(handler.AuthUsecases{
			Register:  auth.NewRegisterUserUsecase(customerRepo, txm, hasher, session),
			Login:     auth.NewLoginUsecase(customerRepo, txm, verifier, session),
			Refresh:   auth.NewRefreshUsecase(customerRepo, tokenRepo, txm, session),
			Logout:    auth.NewLogoutUsecase(tokenRepo, session),
			LogoutAll: auth.NewLogoutAllUsecase(tokenRepo, session),
			Profile:   auth.NewProfileUsecase(customerRepo),
			Audit:     auth.NewListAuditUsecase(auditRepo),
		}),
		Products:   handler.NewProductHandler(usecase.NewProductUsecase(productRepo, nil)),
		Categories: handler.NewCategoryHandler(usecase.NewCategoryUsecase(categoryRepo)),
		Brands:     handler.NewBrandHandler(usecase.NewBrandUsecase(brandRepo)),
		Reviews:    handler.NewReviewHandler(usecase.NewReviewUsecase(reviewRepo)),
	}

	limiter := appmw.NewRateLimiter(cfg.AuthRateLimitPerMinute)
	go limiter.RunCleanup(ctx)

	opts := server.Options{Config: cfg, Logger: log, Metrics: m}
	if reg != nil {
		opts.Gatherer = reg
	}
	e := server.New(opts)
	server.RegisterRoutes(e, handlers, server.Middlewares{
		AuthJWT:       appmw.AuthJWT(codec),
		AuthRateLimit: limiter.RateLimit(),
	})

	//期限切れrefresh tokenの掃除
	cleaner := worker.NewRefreshTokenCleaner(tokenRepo, cfg.RefreshCleanupInterval, sweepM, log)
	go cleaner.Run(ctx)

	//Server起動
	return server.Start(ctx, e, server.Addr(cfg.Port), log)
}
