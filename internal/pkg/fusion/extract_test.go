package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anicoll/fusionbridge/internal/pkg/model"
)

func payloadWith(groups ...[]model.Signal) *model.RealtimeResponse {
	res := &model.RealtimeResponse{Success: true}
	for _, signals := range groups {
		res.Data = append(res.Data, model.DeviceGroup{Signals: signals})
	}
	return res
}

func TestExtractPowerReading_AllLabels(t *testing.T) {
	t.Parallel()
	res := payloadWith([]model.Signal{
		{Name: "Active power", RealValue: "1.5", Unit: "kW"},
		{Name: "Active power consumption", RealValue: "0.5", Unit: "kW"},
		{Name: "Active power to grid", RealValue: "1.0", Unit: "kW"},
	})

	reading, err := ExtractPowerReading(res)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, reading.ActivePower)
	assert.Equal(t, 500.0, reading.Consumption)
	assert.Equal(t, 1000.0, reading.GridPower)
}

func TestExtractPowerReading_NoRecognizedLabels(t *testing.T) {
	t.Parallel()
	res := payloadWith([]model.Signal{
		{Name: "Grid voltage", RealValue: "230.1", Unit: "V"},
		{Name: "Grid frequency", RealValue: "50.02", Unit: "Hz"},
	})

	reading, err := ExtractPowerReading(res)
	assert.Nil(t, reading)
	assert.ErrorIs(t, err, ErrNoSignals)
}

func TestExtractPowerReading_DuplicateLabelLastWins(t *testing.T) {
	t.Parallel()
	res := payloadWith(
		[]model.Signal{{Name: "Active power", RealValue: "1.5", Unit: "kW"}},
		[]model.Signal{{Name: "Active power", RealValue: "2.5", Unit: "kW"}},
	)

	reading, err := ExtractPowerReading(res)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, reading.ActivePower)
}

func TestExtractPowerReading_UnfoundSlotsDefaultToZero(t *testing.T) {
	t.Parallel()
	res := payloadWith([]model.Signal{
		{Name: "Active power", RealValue: "3.2", Unit: "kW"},
	})

	reading, err := ExtractPowerReading(res)
	require.NoError(t, err)
	assert.Equal(t, 3200.0, reading.ActivePower)
	assert.Equal(t, 0.0, reading.Consumption)
	assert.Equal(t, 0.0, reading.GridPower)
}

func TestExtractPowerReading_BadValueAbortsWholeExtraction(t *testing.T) {
	t.Parallel()
	res := payloadWith([]model.Signal{
		{Name: "Active power", RealValue: "1.5", Unit: "kW"},
		{Name: "Active power consumption", RealValue: "--", Unit: "kW"},
	})

	reading, err := ExtractPowerReading(res)
	assert.Nil(t, reading)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSignals)
}

func TestExtractSignal_FirstMatchWins(t *testing.T) {
	t.Parallel()
	res := payloadWith(
		[]model.Signal{{Name: "Active power", RealValue: "410", Unit: "W"}},
		[]model.Signal{{Name: "Active power", RealValue: "999", Unit: "W"}},
	)

	watts, err := ExtractSignal(res, model.ActivePowerLabel)
	require.NoError(t, err)
	assert.Equal(t, 410.0, watts)
}

func TestExtractSignal_NotFound(t *testing.T) {
	t.Parallel()
	res := payloadWith([]model.Signal{
		{Name: "Grid voltage", RealValue: "231.8", Unit: "V"},
	})

	_, err := ExtractSignal(res, model.ActivePowerLabel)
	assert.ErrorIs(t, err, ErrNoSignals)
}

func TestExtractSignal_BadValue(t *testing.T) {
	t.Parallel()
	res := payloadWith([]model.Signal{
		{Name: "Active power", RealValue: "n/a", Unit: "W"},
	})

	_, err := ExtractSignal(res, model.ActivePowerLabel)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSignals)
}

func TestReadings_SkipsEmptySensors(t *testing.T) {
	t.Parallel()
	res := payloadWith([]model.Signal{
		{Name: "Active power", RealValue: "1.5", Unit: "kW"},
		{Name: "MPPT 1 voltage", RealValue: "--", Unit: "V"},
		{Name: "Grid frequency", RealValue: "", Unit: "Hz"},
	})

	readings := Readings(res, "NE=1234")
	require.Len(t, readings, 1)
	assert.Equal(t, "NE=1234", readings[0].Identifier)
	assert.Equal(t, "active_power", readings[0].Slug)
	assert.Equal(t, "1.5", readings[0].Value)
	assert.Equal(t, "kW", readings[0].Unit)
}
