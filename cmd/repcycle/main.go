package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tailscale.com/tsnet"

	"github.com/claude/repcycle/internal/catalog"
	"github.com/claude/repcycle/internal/config"
	"github.com/claude/repcycle/internal/models"
	"github.com/claude/repcycle/internal/server"
	"github.com/claude/repcycle/internal/session"
	"github.com/claude/repcycle/internal/storage"
	"github.com/claude/repcycle/internal/timer"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("RepCycle starting", "version", Version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.Path, log)
	if err != nil {
		log.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	log.Info("storage ready", "path", cfg.Storage.Path)

	ctx := context.Background()
	cat := buildCatalog(ctx, cfg, store, log)

	engine := session.New(store, cat, cfg.Workout.WeeklyGoal, cfg.Workout.WeekStartDay(), nil, log)
	if err := engine.CheckStaleSession(ctx); err != nil {
		log.Warn("stale session check failed", "error", err)
	}

	timers := timer.NewManager(engine, log)
	srv := server.New(engine, timers, cfg.Auth.APIKey, log)

	// Start server — tsnet or plain HTTP
	var listener net.Listener

	if cfg.Tailscale.Enabled {
		tsServer := &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	timers.Dismiss(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

// buildCatalog merges extra templates from the configured catalog file with
// the set persisted in storage, file entries winning by id. The merged set is
// written back so templates survive the catalog file going away.
func buildCatalog(ctx context.Context, cfg *config.Config, store *storage.Store, log *slog.Logger) *catalog.Catalog {
	byID := make(map[string]int)
	var extras []models.WorkoutTemplate
	for _, t := range store.LoadCatalog(ctx) {
		byID[t.ID] = len(extras)
		extras = append(extras, t)
	}

	if cfg.Catalog.Path != "" {
		fromFile, err := catalog.LoadFile(cfg.Catalog.Path)
		if err != nil {
			log.Warn("catalog file not loaded", "path", cfg.Catalog.Path, "error", err)
		}
		for _, t := range fromFile {
			if i, ok := byID[t.ID]; ok {
				extras[i] = t
				continue
			}
			byID[t.ID] = len(extras)
			extras = append(extras, t)
		}
	}

	if len(extras) > 0 {
		if err := store.SaveCatalog(ctx, extras); err != nil {
			log.Warn("persisting catalog failed", "error", err)
		}
	}
	return catalog.New(extras...)
}
