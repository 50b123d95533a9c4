package main

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/cyberacademy/internal/bootstrap"
	"github.com/Skotchmaster/cyberacademy/internal/config"
	"github.com/Skotchmaster/cyberacademy/internal/events"
	"github.com/Skotchmaster/cyberacademy/internal/httpserver"
	"github.com/Skotchmaster/cyberacademy/internal/logging"
	loggingmw "github.com/Skotchmaster/cyberacademy/internal/middleware/logging"
	"github.com/Skotchmaster/cyberacademy/internal/payment"
	"github.com/Skotchmaster/cyberacademy/internal/repo"
	"github.com/Skotchmaster/cyberacademy/internal/search"
	"github.com/Skotchmaster/cyberacademy/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()
	config.MustValid(cfg)

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)
	ctx := logging.IntoContext(context.Background(), logger)

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	backing, err := bootstrap.OpenStore(openCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("store open: %v", err)
	}
	store := backing.Store

	if cfg.SeedSampleData {
		admin, err := bootstrap.AdminUser(cfg.AdminUsername, cfg.AdminPassword)
		if err != nil {
			log.Fatalf("admin password: %v", err)
		}
		res, err := repo.Seed(ctx, store, admin)
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		logger.Info("seed_done", "courses", res.Courses, "admin_created", res.AdminCreated)
	}

	secret := cfg.JWTSecret
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			log.Fatalf("jwt secret: %v", err)
		}
		logger.Warn("jwt_secret_generated", "reason", "JWT_SECRET not set, admin tokens will not survive a restart")
	}

	var publisher events.Publisher = &events.LogPublisher{Logger: logger}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers)
		logger.Info("events_kafka", "brokers", cfg.KafkaBrokers)
	}

	var index search.Index
	if cfg.ESURL != "" {
		esCtx, esCancel := context.WithTimeout(ctx, 5*time.Second)
		es, err := search.NewClient(esCtx, cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		esCancel()
		if err != nil {
			logger.Warn("search_disabled", "reason", "elasticsearch unavailable", "error", err)
		} else {
			index = &search.ESIndex{ES: es, Index: cfg.ESIndex}
		}
	}

	catalogSvc := &service.CatalogService{Repo: store, Index: index, Events: publisher}
	if index != nil {
		n, err := catalogSvc.Reindex(ctx)
		if err != nil {
			logger.Warn("reindex_failed", "error", err)
		} else {
			logger.Info("reindex_done", "courses", n)
		}
	}

	checkoutSvc := &service.CheckoutService{
		Carts:          store,
		Courses:        store,
		Orders:         store,
		Payments:       payment.NewStripeGateway(cfg.StripeSecretKey, cfg.PaymentTimeout),
		Events:         publisher,
		Currency:       cfg.PaymentCurrency,
		QRCodeURL:      cfg.PaymentQRURL,
		WhatsAppNumber: cfg.WhatsAppNumber,
	}
	authSvc := &service.AuthService{Users: store, JWTSecret: secret}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpserver.NewValidator()
	e.HTTPErrorHandler = httpserver.ErrorHandler
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization,
			"username", "password",
		},
	}))

	httpserver.Register(e, &httpserver.Deps{
		CatalogHandler:  &httpserver.CatalogHTTP{Svc: catalogSvc},
		CartHandler:     &httpserver.CartHTTP{Svc: &service.CartService{Repo: store, Courses: store, Events: publisher}},
		CheckoutHandler: &httpserver.CheckoutHTTP{Svc: checkoutSvc},
		AdminHandler: &httpserver.AdminHTTP{
			Auth:     authSvc,
			StatsSvc: &service.StatsService{Courses: store, Orders: store},
			Checkout: checkoutSvc,
		},
		AdminAuth: authSvc,
		Ready:     backing.Ready,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	if err := publisher.Close(); err != nil {
		logger.Warn("publisher_close_failed", "error", err)
	}
	backing.Close()

	logger.Info("stopped")
}
