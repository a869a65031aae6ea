package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GregMSThompson/schedule-assistant/internal/bootstrap"
	"github.com/GregMSThompson/schedule-assistant/internal/config"
	"github.com/GregMSThompson/schedule-assistant/internal/handlers"
	"github.com/GregMSThompson/schedule-assistant/internal/metrics"
	"github.com/GregMSThompson/schedule-assistant/internal/response"
	"github.com/GregMSThompson/schedule-assistant/internal/router"
	"github.com/GregMSThompson/schedule-assistant/internal/services"
)

const shutdownTimeout = 10 * time.Second

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// config
	cfg, err := config.Load()
	exitOnError("invalid configuration", err, slog.Default())

	// bootstrap
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// services
	llm := bs.LLM
	var schserv metrics.ScheduleOperations = services.NewScheduleService(bs.Records, cfg.DefaultStatus)

	var mtr *metrics.Metrics
	if cfg.MetricsEnabled {
		mtr = metrics.New()
		llm = mtr.InstrumentLLM(llm, cfg.LLMProvider)
		schserv = mtr.InstrumentSchedules(schserv)
	}
	chserv := services.NewChatService(llm, schserv, cfg.LLMTemperature, cfg.Location())

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.ChatSvc = chserv
	deps.Metrics = mtr

	// router
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		bs.Log.Info("server listening", "addr", srv.Addr)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			bs.Close()
			exitOnError("server start failed", err, bs.Log)
		}
	case <-ctx.Done():
		bs.Log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			bs.Log.Error("graceful shutdown failed", "error", err)
		}
	}
}
