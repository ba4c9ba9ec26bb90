package bridge

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/anicoll/fusionbridge/internal/pkg/config"
	"github.com/anicoll/fusionbridge/internal/pkg/fusion"
	"github.com/anicoll/fusionbridge/internal/pkg/model"
	"github.com/anicoll/fusionbridge/internal/pkg/publisher"
)

type telemetryClient interface {
	RealtimeData(ctx context.Context, deviceDn string) (*model.RealtimeResponse, error)
}

type forwarder interface {
	SendReading(ctx context.Context, idx int, value float64, label string) bool
}

type notifier interface {
	Notify(ctx context.Context, title, body string)
}

// Service drives one inverter-plus-meter poll cycle against the hub.
type Service struct {
	fusion   telemetryClient
	hub      forwarder
	notifier notifier
	logger   *zap.Logger

	inverterDn     string
	meterDn        string
	activePowerIdx int
	meterIdx       int
}

func New(cfg *config.Config, client telemetryClient, hub forwarder, n notifier) *Service {
	return &Service{
		fusion:         client,
		hub:            hub,
		notifier:       n,
		logger:         zap.L(),
		inverterDn:     cfg.FusionCfg.InverterDn,
		meterDn:        cfg.FusionCfg.MeterDn,
		activePowerIdx: cfg.HubCfg.ActivePowerIdx,
		meterIdx:       cfg.HubCfg.MeterIdx,
	}
}

// RunCycle performs one sequential fetch/extract/forward pass. Both devices
// share the client's session. Forwarding and meter failures are absorbed: the
// cycle logs them, alerts the operator where the meter is involved, and still
// reports completion. Only an unusable inverter payload stops the cycle.
func (s *Service) RunCycle(ctx context.Context) {
	payload, err := s.fusion.RealtimeData(ctx, s.inverterDn)
	if err != nil {
		s.logger.Error("inverter fetch failed, stopping cycle", zap.Error(err))
		return
	}

	fusion.LogAllSignals(payload)
	publisher.PublishReadings(ctx, fusion.Readings(payload, s.inverterDn))

	reading, err := fusion.ExtractPowerReading(payload)
	if err != nil {
		s.logger.Error("no usable power reading in inverter payload", zap.Error(err))
		return
	}
	s.logger.Info("inverter power reading",
		zap.Float64("active_power_w", reading.ActivePower),
		zap.Float64("consumption_w", reading.Consumption),
		zap.Float64("grid_power_w", reading.GridPower))

	if s.hub.SendReading(ctx, s.activePowerIdx, reading.ActivePower, model.ActivePowerLabel.String()) {
		s.logger.Info("forwarded active power",
			zap.Float64("watts", reading.ActivePower),
			zap.Int("idx", s.activePowerIdx))
	} else {
		s.logger.Error("forwarding active power failed", zap.Int("idx", s.activePowerIdx))
	}

	s.forwardMeter(ctx)

	s.logger.Info("cycle complete")
}

// forwardMeter reads the standalone meter on the same session and pushes its
// active power to the hub. The meter already reports watts.
func (s *Service) forwardMeter(ctx context.Context) {
	payload, err := s.fusion.RealtimeData(ctx, s.meterDn)
	if err != nil {
		s.meterFailed(ctx, err)
		return
	}
	publisher.PublishReadings(ctx, fusion.Readings(payload, s.meterDn))

	watts, err := fusion.ExtractSignal(payload, model.ActivePowerLabel)
	if err != nil {
		s.meterFailed(ctx, err)
		return
	}

	if s.hub.SendReading(ctx, s.meterIdx, watts, model.ActivePowerLabel.String()) {
		s.logger.Info("forwarded meter power",
			zap.Float64("watts", watts),
			zap.Int("idx", s.meterIdx))
	} else {
		s.logger.Error("forwarding meter power failed", zap.Int("idx", s.meterIdx))
	}
}

func (s *Service) meterFailed(ctx context.Context, err error) {
	s.logger.Error("meter readout failed",
		zap.String("device_dn", s.meterDn),
		zap.Error(err))
	s.notifier.Notify(ctx, "fusionbridge: meter readout failed",
		fmt.Sprintf("device %s: %v", s.meterDn, err))
}
