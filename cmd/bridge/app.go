package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"echonet-alexa-bridge/internal/adapters/output/echonet"
	"echonet-alexa-bridge/internal/adapters/output/influx"
	"echonet-alexa-bridge/internal/adapters/output/metrics"
	"echonet-alexa-bridge/internal/adapters/output/mqtt"
	"echonet-alexa-bridge/internal/adapters/output/persistence"
	"echonet-alexa-bridge/internal/config"
	"echonet-alexa-bridge/internal/domain/model"
	"echonet-alexa-bridge/internal/domain/service"
	"echonet-alexa-bridge/internal/domain/translator"
	"echonet-alexa-bridge/internal/logging"
	"echonet-alexa-bridge/internal/ports"
)

// app holds the wired components shared by all subcommands.
type app struct {
	cfg        *model.Config
	logger     *zap.Logger
	client     *echonet.Client
	names      *persistence.JSONNameRepository
	service    *service.BridgeService
	dispatcher *service.Dispatcher
	metrics    *metrics.Metrics
	registry   *prometheus.Registry
	closers    []func()
}

type buildOptions struct {
	withMetrics bool
}

func newApp(configPath string, opts buildOptions) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	loc, err := config.Location(cfg)
	if err != nil {
		return nil, err
	}
	airFlow, err := translator.NewAirFlowFormula(cfg.Thermostat.AirFlowFormula)
	if err != nil {
		return nil, err
	}

	client, err := echonet.NewClient(cfg.API.URL, cfg.API.Authorization, echonet.Options{
		DeviceType:     cfg.API.DeviceType,
		ReloadInterval: cfg.API.ReloadInterval,
		Logger:         logger.Named("echonet"),
	})
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, client: client}

	var publishers []ports.StatePublisher
	if opts.withMetrics {
		a.registry = prometheus.NewRegistry()
		a.metrics = metrics.NewMetrics(a.registry)
		publishers = append(publishers, a.metrics)
	}
	if cfg.MQTT.Enabled {
		p, err := mqtt.Connect(cfg.MQTT)
		if err != nil {
			return nil, err
		}
		publishers = append(publishers, p)
		a.closers = append(a.closers, p.Close)
		logger.Info("publishing state to MQTT", zap.String("broker", cfg.MQTT.Broker))
	}
	if cfg.InfluxDB.Enabled {
		r := influx.NewRecorder(cfg.InfluxDB)
		publishers = append(publishers, r)
		a.closers = append(a.closers, r.Close)
		logger.Info("recording state to InfluxDB", zap.String("url", cfg.InfluxDB.URL), zap.String("bucket", cfg.InfluxDB.Bucket))
	}

	deps := service.Deps{
		API:        client,
		Publishers: publishers,
		Logger:     logger.Named("service"),
		Discovery:  cfg.Discovery,
		DeviceType: cfg.API.DeviceType,
		AirFlow:    airFlow,
		Location:   loc,
	}
	if cfg.Discovery.NamesFile != "" {
		a.names = persistence.NewJSONNameRepository(cfg.Discovery.NamesFile)
		deps.Names = a.names
	}

	a.service, err = service.NewBridgeService(deps)
	if err != nil {
		a.Close()
		return nil, err
	}

	var m ports.Metrics
	if a.metrics != nil {
		m = a.metrics
	}
	a.dispatcher = service.NewDispatcher(a.service, logger.Named("dispatcher"), m)
	return a, nil
}

func (a *app) Close() {
	for _, c := range a.closers {
		c()
	}
	_ = a.logger.Sync()
}
