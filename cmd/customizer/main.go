package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/modgarage/customizer/internal/config"
	"github.com/modgarage/customizer/internal/dispatcher"
	"github.com/modgarage/customizer/internal/handlers"
	"github.com/modgarage/customizer/internal/influx"
	"github.com/modgarage/customizer/internal/live"
	"github.com/modgarage/customizer/internal/logging"
	"github.com/modgarage/customizer/internal/metrics"
	intOtel "github.com/modgarage/customizer/internal/otel"
	"github.com/modgarage/customizer/internal/storage"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// module defs - BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.0.1"
	BuildDate      string = "unknown"

	ServiceName string = "customizer"
)

// global variables
var (
	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager

	// Logger is the slog logger (convenience reference)
	Logger *slog.Logger

	// ZLogger is the zerolog logger for the storage, influx and dispatcher layers
	ZLogger zerolog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	SessionStartTime time.Time = time.Now()
)

func main() {
	SlogManager = logging.NewSlogManager(ServiceName)
	SlogManager.Setup(nil, "info", nil)
	Logger = SlogManager.Logger()
	ZLogger = logging.NewZerolog(os.Stdout, "info")

	if err := config.Load(configDir()); err != nil {
		Logger.Warn("Failed to load config, using defaults!", "error", err)
	} else {
		Logger.Debug("Loaded config")
	}

	cmd, args := "serve", os.Args[1:]
	if len(args) > 0 {
		cmd, args = strings.ToLower(args[0]), args[1:]
	}

	if cmd == "serve" {
		if err := serve(); err != nil {
			Logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := runCLI(context.Background(), os.Stdout, cmd, args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// configDir is the directory holding customizer.cfg.json.
func configDir() string {
	if dir := os.Getenv(config.EnvPrefix + "_CONFIG_DIR"); dir != "" {
		return dir
	}
	return "."
}

// setupLogging opens the session log file and rebuilds the loggers with
// file, Graylog and OTel outputs. The returned closer releases them.
func setupLogging(ctx context.Context) (func(), error) {
	logsDir := viper.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs dir: %w", err)
	}

	logFilePath := logging.LogFilePath(logsDir, ServiceName, SessionStartTime)
	logFile, err := os.OpenFile(logFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, fmt.Errorf("failed to create/open log file: %w", err)
	}
	Logger.Info("Begin logging in logs directory", "path", logFilePath)

	closers := []io.Closer{logFile}

	// Initialize OTel provider if enabled (after log file is created)
	otelCfg := config.GetOTelConfig()
	var otelLogProvider *sdklog.LoggerProvider
	if otelCfg.Enabled {
		OTelProvider, err = intOtel.New(ctx, intOtel.Config{
			Enabled:      otelCfg.Enabled,
			ServiceName:  otelCfg.ServiceName,
			BatchTimeout: otelCfg.BatchTimeout,
			LogWriter:    logFile,
			Endpoint:     otelCfg.Endpoint,
			Insecure:     otelCfg.Insecure,
		})
		if err != nil {
			Logger.Error("Failed to initialize OTel provider", "error", err)
		} else {
			otelLogProvider = OTelProvider.LoggerProvider()
			Logger.Info("OTel provider initialized", "endpoint", otelCfg.Endpoint)
		}
	}

	var extra []io.Writer
	if viper.GetBool("graylog.enabled") {
		gelfWriter, err := logging.NewGELFWriter(viper.GetString("graylog.address"))
		if err != nil {
			Logger.Error("Failed to initialize Graylog output", "error", err)
		} else {
			extra = append(extra, gelfWriter)
			closers = append(closers, gelfWriter)
		}
	}

	level := viper.GetString("logLevel")
	SlogManager.SetContextProvider(func() []slog.Attr {
		return []slog.Attr{slog.Int64("designsStored", metrics.Stored())}
	})
	SlogManager.Setup(logFile, level, otelLogProvider, extra...)
	Logger = SlogManager.Logger()
	ZLogger = logging.NewZerolog(io.MultiWriter(append([]io.Writer{logFile}, extra...)...), level)

	return func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i].Close()
		}
	}, nil
}

// registerAuditHandlers logs every lifecycle event through the dispatcher.
func registerAuditHandlers(d *dispatcher.Dispatcher) {
	audit := func(e dispatcher.Event) (any, error) {
		ev, _ := dispatcher.DesignEventFrom(e)
		Logger.Info("Design event", "command", e.Command, "id", ev.Design.ID, "baseModel", ev.Design.BaseModel)
		return nil, nil
	}
	for _, cmd := range []string{
		dispatcher.CmdDesignCreated,
		dispatcher.CmdDesignUpdated,
		dispatcher.CmdDesignDeleted,
	} {
		d.Register(cmd, audit, dispatcher.Logged())
	}
}

func serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	closeLogs, err := setupLogging(ctx)
	if err != nil {
		return err
	}
	defer closeLogs()

	Logger.Info("Starting up...", "version", CurrentVersion, "buildDate", BuildDate)

	backend, err := createStorageBackend(config.GetStorageConfig(), ZLogger)
	if err != nil {
		return err
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage backend: %w", err)
	}

	designs, err := backend.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list stored designs: %w", err)
	}
	metrics.SetStored(len(designs))

	eventDispatcher, err := dispatcher.New(logging.NewDispatcherLogger(ZLogger))
	if err != nil {
		return fmt.Errorf("failed to create dispatcher: %w", err)
	}
	metrics.RegisterHandlers(eventDispatcher)
	registerAuditHandlers(eventDispatcher)

	var influxManager *influx.Manager
	if influxCfg := config.GetInfluxConfig(); influxCfg.Enabled {
		influxManager = influx.NewManager(influxCfg, ZLogger)
		if err := influxManager.Connect(ctx); err != nil {
			Logger.Error("Failed to connect to InfluxDB", "error", err)
			influxManager = nil
		} else {
			influxManager.RegisterHandlers(eventDispatcher)
		}
	}

	liveServer := live.NewServer(backend, eventDispatcher, Logger)
	service := handlers.NewService(handlers.Dependencies{
		Store:  backend,
		Events: eventDispatcher,
		Logger: Logger,
		Live:   liveServer,
	})

	serverCfg := config.GetServerConfig()
	server := &http.Server{
		Addr:         serverCfg.Address,
		Handler:      service.Routes(),
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		Logger.Info("HTTP server listening", "address", serverCfg.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		Logger.Info("Shutdown signal received")
	case serveErr = <-errCh:
	}

	shutdown(server, serverCfg.ShutdownTimeout, eventDispatcher, influxManager, backend)
	return serveErr
}

// shutdown stops the listener first, then drains events, then closes the sinks.
func shutdown(server *http.Server, timeout time.Duration, d *dispatcher.Dispatcher, im *influx.Manager, backend storage.Backend) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		Logger.Error("HTTP server shutdown failed", "error", err)
	}

	d.Close()

	if im != nil {
		if err := im.Close(); err != nil {
			Logger.Error("Failed to close InfluxDB manager", "error", err)
		}
	}

	if err := backend.Close(); err != nil {
		Logger.Error("Failed to close storage backend", "error", err)
	}
	if s, ok := backend.(storage.Snapshotter); ok && s.SnapshotPath() != "" {
		Logger.Info("Designs snapshot written", "path", s.SnapshotPath())
	}

	if err := SlogManager.Flush(ctx); err != nil {
		Logger.Warn("Failed to flush logs", "error", err)
	}
	if OTelProvider != nil {
		if err := OTelProvider.Shutdown(ctx); err != nil {
			Logger.Warn("Failed to shut down OTel provider", "error", err)
		}
	}
	Logger.Info("Shutdown complete")
}
