package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/region-survey/auth"
	"github.com/danielhkuo/region-survey/catalog"
	"github.com/danielhkuo/region-survey/cliparse"
	"github.com/danielhkuo/region-survey/db"
	"github.com/danielhkuo/region-survey/middleware"
	"github.com/danielhkuo/region-survey/router"
	"github.com/danielhkuo/region-survey/store"
)

func main() {
	var err error

	// region-survey hash-password <password> prints a value for ADMIN_PASSWORD_HASH
	if len(os.Args) == 3 && os.Args[1] == "hash-password" {
		hash, err := auth.HashPassword(os.Args[2], bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(newLogHandler(cfg.LogFormat)))

	// Connect and verify
	dbConn, err := db.Open(context.Background(), cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn, cfg.DatabaseType); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Seed the region catalog when one is configured
	if cfg.RegionCatalog != "" {
		seed, err := catalog.LoadSeed(cfg.RegionCatalog)
		if err != nil {
			slog.Error("region catalog load failed", "error", err, "path", cfg.RegionCatalog)
			os.Exit(1)
		}
		n, err := store.New(dbConn).Seed(context.Background(), seed)
		if err != nil {
			slog.Error("region catalog seed failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Region catalog seeded", "leaves", n)
	}

	// Create router
	mux := router.NewRouter(dbConn, cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

func newLogHandler(format string) slog.Handler {
	switch format {
	case cliparse.LogFormatJSON:
		return slog.NewJSONHandler(os.Stdout, nil)
	case cliparse.LogFormatText:
		return slog.NewTextHandler(os.Stdout, nil)
	default:
		return tint.NewHandler(os.Stdout, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: "2006-01-02 15:04:05",
		})
	}
}
