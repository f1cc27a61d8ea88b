package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/shop_orders/internal/auth"
	"github.com/Skotchmaster/shop_orders/internal/config"
	"github.com/Skotchmaster/shop_orders/internal/db"
	"github.com/Skotchmaster/shop_orders/internal/events"
	"github.com/Skotchmaster/shop_orders/internal/httpserver"
	"github.com/Skotchmaster/shop_orders/internal/logging"
	loggingmw "github.com/Skotchmaster/shop_orders/internal/middleware/logging"
	"github.com/Skotchmaster/shop_orders/internal/repo"
	"github.com/Skotchmaster/shop_orders/internal/service"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	authn, err := auth.New(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatalf("auth init: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers, cfg.OrderTopic)
	if producer == nil {
		logger.Warn("kafka disabled, order events will not be published")
	}

	r := &repo.GormRepo{DB: gormDB}
	orderSvc := &service.OrderService{Repo: r, Producer: producer}
	authSvc := &service.AuthService{Repo: r, Auth: authn}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		OrderHandler: &httpserver.OrderHTTP{Svc: orderSvc, Auth: authn},
		AuthHandler:  &httpserver.AuthHTTP{Svc: authSvc},
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("orders listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)

	if err := producer.Close(); err != nil {
		log.Printf("kafka close: %v", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("orders stopped")
}
