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

	"github.com/MrJamesThe3rd/collecta/internal/agent"
	"github.com/MrJamesThe3rd/collecta/internal/app"
	"github.com/MrJamesThe3rd/collecta/internal/config"
	collectaHttp "github.com/MrJamesThe3rd/collecta/internal/http"
	agentHandler "github.com/MrJamesThe3rd/collecta/internal/http/agent"
	"github.com/MrJamesThe3rd/collecta/internal/http/auth"
	exportHandler "github.com/MrJamesThe3rd/collecta/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/collecta/internal/http/importsheet"
	loanHandler "github.com/MrJamesThe3rd/collecta/internal/http/loan"
	reportHandler "github.com/MrJamesThe3rd/collecta/internal/http/report"
	sessionHandler "github.com/MrJamesThe3rd/collecta/internal/http/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to start application", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	tokens := auth.NewTokens(cfg.Auth.JWTSecret)
	trackerService := application.Tracker

	var (
		sessionH = sessionHandler.NewHandler(trackerService, tokens)
		loanH    = loanHandler.NewHandler(trackerService)
		agentH   = agentHandler.NewHandler(trackerService)
		importH  = importHandler.NewHandler(trackerService)
		reportH  = reportHandler.NewHandler(trackerService)
		exportH  = exportHandler.NewHandler(trackerService, application.Export)
	)

	router := collectaHttp.New(
		collectaHttp.Options{
			Timeout:     cfg.Server.Timeout,
			CORSOrigins: cfg.Server.CORSOrigins,
			Tokens:      tokens,
			Lookup: func(id string) (agent.Agent, bool) {
				return trackerService.Snapshot().Agent(id)
			},
		},
		collectaHttp.Handlers{
			Session: sessionH,
			Loans:   loanH,
			Agents:  agentH,
			Import:  importH,
			Reports: reportH,
			Export:  exportH,
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down server", "error", err)
		}
	}()

	slog.Info("starting server", "name", cfg.App.Name, "port", cfg.App.Port, "store", cfg.Store.Driver)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
