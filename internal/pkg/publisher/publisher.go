package publisher

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/anicoll/fusionbridge/internal/pkg/model"
)

var errAlreadyRegistered = errors.New("publisher already registered")

var (
	registeredPublishers = make(map[string]publisher)
	sensors              sync.Map
)

type publisher interface {
	Write(ctx context.Context, readings []model.Reading) error
}

func RegisterPublisher(name string, p publisher) error {
	if _, ok := registeredPublishers[name]; ok {
		return errAlreadyRegistered
	}
	registeredPublishers[name] = p
	return nil
}

// PublishReadings fans readings out to every registered sink, skipping
// values unchanged since the last publish. Sink failures are logged and never
// reach the caller; the sinks are strictly additive to the forward path.
func PublishReadings(ctx context.Context, readings []model.Reading) {
	changed := make([]model.Reading, 0, len(readings))
	for _, reading := range readings {
		if !shouldUpdate(reading.Identifier, reading.Slug, reading.Value) {
			continue
		}
		changed = append(changed, reading)
	}
	if len(changed) == 0 || len(registeredPublishers) == 0 {
		return
	}

	for name, p := range registeredPublishers {
		if err := p.Write(ctx, changed); err != nil {
			zap.L().Error("failed to publish readings", zap.Error(err), zap.String("publisher", name))
			continue
		}
		zap.L().Debug("published readings", zap.Int("count", len(changed)), zap.String("publisher", name))
	}
}

func shouldUpdate(identifier, slug, newValue string) bool {
	key := identifier + "_" + slug
	oldValue, exists := sensors.Load(key)
	if exists && strings.EqualFold(newValue, oldValue.(string)) {
		return false
	}
	if !exists {
		zap.L().Info("configured sensor",
			zap.String("device", identifier),
			zap.String("sensor", slug),
			zap.String("value", newValue))
	}
	sensors.Store(key, newValue)
	return true
}
