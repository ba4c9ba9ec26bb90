package cmd

import (
	"context"

	paho_mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/jackc/pgx/v5"
	"github.com/robfig/cron/v3"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/anicoll/fusionbridge/internal/pkg/bridge"
	"github.com/anicoll/fusionbridge/internal/pkg/config"
	"github.com/anicoll/fusionbridge/internal/pkg/database"
	"github.com/anicoll/fusionbridge/internal/pkg/domoticz"
	"github.com/anicoll/fusionbridge/internal/pkg/fusion"
	"github.com/anicoll/fusionbridge/internal/pkg/mqtt"
	"github.com/anicoll/fusionbridge/internal/pkg/publisher"
	"github.com/anicoll/fusionbridge/internal/pkg/pushbullet"
)

// BridgeCommand is the entry point for the fusionbridge CLI command. It
// assembles configuration, wires the services and runs the poll cycle.
func BridgeCommand(ctx *cli.Context) error {
	cfg := &config.Config{
		FusionCfg: &config.FusionConfig{
			BaseURL:     ctx.String("fusion-base-url"),
			CookiesFile: ctx.String("cookies-file"),
			InverterDn:  ctx.String("inverter-dn"),
			MeterDn:     ctx.String("meter-dn"),
		},
		HubCfg: &config.HubConfig{
			Host:           ctx.String("hub-host"),
			Username:       ctx.String("hub-user"),
			Password:       ctx.String("hub-pass"),
			ActivePowerIdx: ctx.Int("hub-active-power-idx"),
			MeterIdx:       ctx.Int("hub-meter-idx"),
			Timeout:        ctx.Duration("hub-timeout"),
		},
		PushCfg: &config.PushConfig{
			URL:   ctx.String("push-url"),
			Token: ctx.String("push-token"),
		},
		MqttCfg: &config.MqttConfig{
			Host:     ctx.String("mqtt-host"),
			Username: ctx.String("mqtt-user"),
			Password: ctx.String("mqtt-pass"),
		},
		DatabaseURL: ctx.String("database-url"),
		Schedule:    ctx.String("schedule"),
		LogLevel:    ctx.String("log-level"),
	}

	logCfg := zap.NewProductionConfig()
	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logCfg.Level = level
	logCfg.OutputPaths = []string{"stdout"}
	logCfg.ErrorOutputPaths = []string{"stdout"}
	logCfg.Sampling = nil
	logger := zap.Must(logCfg.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)))
	defer func() {
		_ = logger.Sync() // flushes buffer, if any.
	}()
	zap.ReplaceGlobals(logger)

	svc, closeSinks, err := buildBridge(ctx.Context, cfg)
	if err != nil {
		return err
	}
	defer closeSinks()

	return run(ctx.Context, cfg, svc, logger)
}

// buildBridge wires notifier, telemetry client, hub forwarder and the
// optional publishing sinks. Only the telemetry client is load-bearing: a
// sink that cannot be set up is logged and skipped.
func buildBridge(ctx context.Context, cfg *config.Config) (*bridge.Service, func(), error) {
	logger := zap.L()
	notifier := pushbullet.New(cfg.PushCfg)

	client, err := fusion.New(ctx, cfg.FusionCfg, notifier)
	if err != nil {
		return nil, nil, err
	}

	closers := []func(){}

	if cfg.MqttCfg.Host != "" {
		opts := paho_mqtt.NewClientOptions().
			AddBroker(cfg.MqttCfg.Host).
			SetUsername(cfg.MqttCfg.Username).
			SetPassword(cfg.MqttCfg.Password).
			SetClientID("fusionbridge")
		mqttSvc := mqtt.New(paho_mqtt.NewClient(opts))
		if err := mqttSvc.Connect(); err != nil {
			logger.Error("mqtt sink unavailable, continuing without it", zap.Error(err))
		} else if err := publisher.RegisterPublisher("mqtt", mqttSvc); err != nil {
			logger.Error("mqtt sink registration failed", zap.Error(err))
		}
	}

	if cfg.DatabaseURL != "" {
		conn, err := pgx.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("postgres sink unavailable, continuing without it", zap.Error(err))
		} else {
			db, err := database.New(ctx, conn)
			if err != nil {
				logger.Error("postgres sink setup failed", zap.Error(err))
				_ = conn.Close(ctx)
			} else if err := publisher.RegisterPublisher("postgres", db); err != nil {
				logger.Error("postgres sink registration failed", zap.Error(err))
				_ = db.Close(ctx)
			} else {
				closers = append(closers, func() { _ = db.Close(context.Background()) })
			}
		}
	}

	hub := domoticz.New(cfg.HubCfg)
	svc := bridge.New(cfg, client, hub, notifier)

	return svc, func() {
		for _, closer := range closers {
			closer()
		}
	}, nil
}

// run executes one cycle and exits, or keeps cycling on the configured cron
// schedule until the context is cancelled.
func run(ctx context.Context, cfg *config.Config, svc BridgeService, logger *zap.Logger) error {
	if cfg.Schedule == "" {
		svc.RunCycle(ctx)
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.Schedule, func() {
		svc.RunCycle(ctx)
	}); err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		c.Run()
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		<-c.Stop().Done()
		return ctx.Err()
	})

	logger.Info("running on schedule", zap.String("schedule", cfg.Schedule))
	svc.RunCycle(ctx) // first cycle immediately, then on the cron cadence

	return eg.Wait()
}
