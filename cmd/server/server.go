package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/resource-uploader/backend/internal/api"
	"github.com/resource-uploader/backend/internal/config"
	"github.com/resource-uploader/backend/internal/ledger"
	"github.com/resource-uploader/backend/internal/logging"
	"github.com/resource-uploader/backend/internal/storage"
	"github.com/resource-uploader/backend/internal/upload"
	"github.com/resource-uploader/backend/internal/web"
	"github.com/sirupsen/logrus"
)

// loadConfig reads the config file and applies command line overrides,
// which take precedence over the file and the environment.
func loadConfig(opts *options) (*config.AppConfig, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	if opts.port != 0 {
		cfg.Server.Port = opts.port
	}
	if opts.root != "" {
		root, err := filepath.Abs(opts.root)
		if err != nil {
			return nil, fmt.Errorf("resolving storage root: %w", err)
		}
		cfg.Storage.RootDirectory = root
	}
	if opts.logLevel != "" {
		cfg.Advanced.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

func runServer(opts *options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	// Ensure all data directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	log := logging.NewLogger(cfg.Advanced.LogLevel)

	store, err := storage.NewLocalStore(storage.Options{
		Root:           cfg.GetStorageRoot(),
		FallbackFolder: cfg.Storage.FallbackFolder,
		PublicPrefix:   cfg.Storage.PublicPrefix,
		Naming:         cfg.Storage.Naming,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	var uploadLedger upload.Ledger
	if cfg.Ledger.Enabled {
		duck, err := ledger.Open(cfg.Ledger.Path, cfg.Ledger.Threads)
		if err != nil {
			return fmt.Errorf("failed to open upload ledger: %w", err)
		}
		defer duck.Close()
		uploadLedger = duck
		log.WithField("path", duck.Path()).Info("upload ledger opened")
	}

	uploadMgr := upload.NewManager(store, uploadLedger, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	api.SetupMiddleware(e, api.MiddlewareConfig{
		Log:               log,
		BodyLimit:         cfg.Server.BodyLimit,
		CacheMaxAge:       time.Duration(cfg.Server.CacheMaxAgeSeconds) * time.Second,
		PoweredBy:         cfg.Server.PoweredBy,
		RequestLogging:    cfg.Advanced.EnableRequestLogging,
		EnableCompression: cfg.Server.EnableCompression,
		CompressionLevel:  cfg.Server.CompressionLevel,
		ExposeErrors:      log.IsLevelEnabled(logrus.DebugLevel),
	})
	api.RegisterRoutes(e, api.NewHandlers(&api.Dependencies{
		Uploader:    uploadMgr,
		StorageRoot: store.Root(),
		Version:     Version,
	}))
	if err := web.RegisterStaticRoutes(e, cfg.Storage.PublicPrefix, store.Root()); err != nil {
		return fmt.Errorf("failed to register static routes: %w", err)
	}

	// Configure server with settings from config
	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		Handler:      e,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	printBanner(opts.configPath, cfg)

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", s.Addr).Info("server starting")
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownGraceSeconds)*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
		return err
	}

	log.Info("server exited")
	return nil
}

func printBanner(configPath string, cfg *config.AppConfig) {
	ledgerPath := "disabled"
	if cfg.Ledger.Enabled {
		ledgerPath = cfg.Ledger.Path
	}

	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           Resource Uploader Server                        ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-39s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Storage:   %-46s║\n", cfg.GetStorageRoot())
	fmt.Printf("║  Ledger:    %-46s║\n", ledgerPath)
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")
}
