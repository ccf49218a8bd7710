package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/Leganyst/provider-catalog/internal/api/grpcapi"
	"github.com/Leganyst/provider-catalog/internal/api/rest"
	"github.com/Leganyst/provider-catalog/internal/catalog"
	"github.com/Leganyst/provider-catalog/internal/config"
	"github.com/Leganyst/provider-catalog/internal/db"
	"github.com/Leganyst/provider-catalog/internal/logging"
	"github.com/Leganyst/provider-catalog/internal/metrics"
	"github.com/Leganyst/provider-catalog/internal/model"
	"github.com/Leganyst/provider-catalog/internal/repository"
	"github.com/Leganyst/provider-catalog/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("provider catalog stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Конфиг из .env и окружения.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.Log.Level)

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(&cfg.DB, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		return err
	}

	// 4. Репозитории (реализации на GORM).
	countryRepo := repository.NewGormCountryRepository(gormDB)
	serviceRepo := repository.NewGormServiceRepository(gormDB)
	providerRepo := repository.NewGormProviderRepository(gormDB)
	reportRepo := repository.NewGormReportRepository(gormDB)
	eventRepo := repository.NewGormEventRepository(gormDB)

	// 5. Сервисы каталога и авторизация.
	countrySvc := service.NewCountryService(countryRepo, logger)
	serviceSvc := service.NewServiceService(serviceRepo, logger)
	providerSvc := service.NewProviderService(providerRepo, logger)
	reportSvc := service.NewReportService(reportRepo)
	eventSvc := service.NewEventService(eventRepo)
	external := service.StaticCountrySource{}

	if cfg.Auth.Password == "" {
		logger.Warn("AUTH_PASSWORD is empty, login is disabled")
	}
	accounts, err := catalog.NewStaticAccountStore(cfg.Auth.Username, cfg.Auth.Password, catalog.RoleAdmin)
	if err != nil {
		return err
	}
	authSvc := service.NewAuthService(accounts, cfg.JWT)

	m := metrics.New()

	// 6. HTTP (gin) и gRPC.
	router := rest.NewRouter(rest.Deps{
		Countries:         countrySvc,
		Services:          serviceSvc,
		Providers:         providerSvc,
		Reports:           reportSvc,
		Events:            eventSvc,
		Auth:              authSvc,
		ExternalCountries: external,
		Metrics:           m,
		Ping:              func(ctx context.Context) error { return db.Ping(ctx, gormDB) },
		Logger:            logger,
		RateLimitRPS:      cfg.RateLimit.RPS,
		RateLimitBurst:    cfg.RateLimit.Burst,
	})
	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	catalogSrv := grpcapi.NewServer(countrySvc, serviceSvc, providerSvc, reportSvc, eventSvc, external, logger)
	grpcServer := grpcapi.NewGRPCServer(catalogSrv, authSvc, m, logger)

	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		return err
	}

	// 7. Грейсфул-шатдаун по сигналу.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", "addr", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("grpc server listening", "addr", cfg.GRPC.Addr)
		return grpcServer.Serve(lis)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
