package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/till/internal/config"
	tillHttp "github.com/MrJamesThe3rd/till/internal/http"
	cartHandler "github.com/MrJamesThe3rd/till/internal/http/cart"
	catalogHandler "github.com/MrJamesThe3rd/till/internal/http/catalog"
	checkoutHandler "github.com/MrJamesThe3rd/till/internal/http/checkout"
	scanHandler "github.com/MrJamesThe3rd/till/internal/http/scan"
	"github.com/MrJamesThe3rd/till/internal/register"
	"github.com/MrJamesThe3rd/till/internal/scan"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	products, err := register.OpenCatalog(ctx, cfg)
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	session, err := register.NewSessionFromConfig(products, cfg)
	if err != nil {
		slog.Error("failed to create session", "error", err)
		os.Exit(1)
	}

	if cfg.Scan.Stdin {
		go func() {
			src := scan.NewLineSource(os.Stdin, time.Now)
			defer src.Close()

			if err := session.Run(ctx, src, nil); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("stdin scanner stopped", "error", err)
			}
		}()

		slog.Info("reading scans from stdin")
	}

	var (
		catalogH  = catalogHandler.NewHandler(products)
		cartH     = cartHandler.NewHandler(session)
		scanH     = scanHandler.NewHandler(session)
		checkoutH = checkoutHandler.NewHandler(session, register.ReceiptOptions(cfg))
	)

	router := tillHttp.New(catalogH, cartH, scanH, checkoutH, tillHttp.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		AuthSecret:  []byte(cfg.Auth.Secret),
	})

	if cfg.Auth.Secret == "" {
		slog.Warn("AUTH_SECRET not set, register endpoints are unauthenticated")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "name", cfg.App.Name, "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
