// Command nativebridge serves the relational bridge and the speech
// transcription service over a loopback HTTP API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kbukum/nativebridge/bootstrap"
	"github.com/kbukum/nativebridge/config"
	"github.com/kbukum/nativebridge/logger"
	"github.com/kbukum/nativebridge/observability"
	"github.com/kbukum/nativebridge/server"
	"github.com/kbukum/nativebridge/sqlbridge"
	"github.com/kbukum/nativebridge/transcription/whisper"
	"github.com/kbukum/nativebridge/version"
)

const serviceName = "nativebridge"

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg AppConfig
	if err := config.Load(serviceName, &cfg, config.WithEnvPrefix("NATIVEBRIDGE")); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	app, err := bootstrap.NewApp(&cfg)
	if err != nil {
		return err
	}
	log := app.Logger

	if cfg.Version != "" {
		version.Version = cfg.Version
	}
	version.SetEngine("sql", "sqlite")
	version.SetEngine("whisper", whisper.EngineName)

	shutdownTracer, err := observability.InitTracer(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	app.OnStop(shutdownTracer)

	shutdownMeter, err := observability.InitMeter(ctx, cfg.Metrics)
	if err != nil {
		return fmt.Errorf("init meter: %w", err)
	}
	app.OnStop(shutdownMeter)

	bridge := sqlbridge.New(cfg.SQL, log)
	speech := whisper.NewService(cfg.Whisper, whisper.DefaultLoader, log)
	srv := server.New(cfg.Server, log)

	// The server goes last so it only accepts requests once the services are up.
	if err := app.RegisterComponent(bridge); err != nil {
		return err
	}
	if err := app.RegisterComponent(speech); err != nil {
		return err
	}

	srv.ApplyDefaults(serviceName, app.Components.HealthAll)
	srv.RegisterSQLRoutes(bridge)
	srv.RegisterWhisperRoutes(speech)
	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return err
	}

	app.OnReady(func(context.Context) error {
		log.Info("nativebridge listening", logger.Fields(
			"addr", srv.Addr(),
			"engine", whisper.EngineName,
			"version", version.Short(),
		))
		return nil
	})

	return app.Run(ctx)
}
