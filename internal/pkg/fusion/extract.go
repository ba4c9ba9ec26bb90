package fusion

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/anicoll/fusionbridge/internal/pkg/model"
)

// The inverter reports power in kilowatts; the hub wants watts.
const wattsPerKilowatt = 1000

// ExtractPowerReading scans every group's signals in order and fills the
// reading slot each recognized label maps to. Labels repeat across groups and
// the last occurrence in scan order wins. One unparsable matched value aborts
// the whole extraction; there is no partial reading.
func ExtractPowerReading(res *model.RealtimeResponse) (*model.PowerReading, error) {
	reading := &model.PowerReading{}
	found := false
	for _, group := range res.Data {
		for _, signal := range group.Signals {
			slot, ok := model.PowerSlots[model.SignalLabel(signal.Name)]
			if !ok {
				continue
			}
			kilowatts, err := strconv.ParseFloat(signal.RealValue, 64)
			if err != nil {
				return nil, fmt.Errorf("fusion: signal %q carries non-numeric value %q: %w", signal.Name, signal.RealValue, err)
			}
			reading.Set(slot, kilowatts*wattsPerKilowatt)
			found = true
		}
	}
	if !found {
		return nil, ErrNoSignals
	}
	return reading, nil
}

// ExtractSignal returns the value of the first signal matching label, in the
// unit the device reports it in. First match wins here, unlike
// ExtractPowerReading where later groups override earlier ones.
func ExtractSignal(res *model.RealtimeResponse, label model.SignalLabel) (float64, error) {
	signals := lo.FlatMap(res.Data, func(group model.DeviceGroup, _ int) []model.Signal {
		return group.Signals
	})
	signal, found := lo.Find(signals, func(s model.Signal) bool {
		return s.Name == label.String()
	})
	if !found {
		return 0, ErrNoSignals
	}

	value, err := strconv.ParseFloat(signal.RealValue, 64)
	if err != nil {
		return 0, fmt.Errorf("fusion: signal %q carries non-numeric value %q: %w", signal.Name, signal.RealValue, err)
	}
	return value, nil
}

// LogAllSignals dumps every signal of the payload for operator visibility.
// Diagnostic only.
func LogAllSignals(res *model.RealtimeResponse) {
	logger := zap.L()
	for _, group := range res.Data {
		for _, signal := range group.Signals {
			logger.Info("signal",
				zap.String("name", signal.Name),
				zap.String("real_value", signal.RealValue),
				zap.String("unit", signal.Unit))
		}
	}
}

// Readings normalizes every populated signal of a payload for the registered
// publishers. "--" is the vendor's marker for a sensor with no current value.
func Readings(res *model.RealtimeResponse, identifier string) []model.Reading {
	now := time.Now()
	readings := make([]model.Reading, 0)
	for _, group := range res.Data {
		for _, signal := range group.Signals {
			if signal.RealValue == "" || signal.RealValue == "--" {
				continue
			}
			readings = append(readings, model.Reading{
				Identifier: identifier,
				Name:       signal.Name,
				Slug:       strings.ReplaceAll(slug.Make(signal.Name), "-", "_"),
				Value:      signal.RealValue,
				Unit:       signal.Unit,
				Timestamp:  now,
			})
		}
	}
	return readings
}
