package publisher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anicoll/fusionbridge/internal/pkg/model"
)

type mockSink struct {
	writes [][]model.Reading
	err    error
}

func (m *mockSink) Write(_ context.Context, readings []model.Reading) error {
	m.writes = append(m.writes, readings)
	return m.err
}

func resetRegistry() {
	registeredPublishers = make(map[string]publisher)
	sensors.Range(func(key, _ any) bool {
		sensors.Delete(key)
		return true
	})
}

func reading(identifier, slugName, value string) model.Reading {
	return model.Reading{
		Identifier: identifier,
		Name:       slugName,
		Slug:       slugName,
		Value:      value,
		Unit:       "W",
		Timestamp:  time.Now(),
	}
}

func TestRegisterPublisher_Duplicate(t *testing.T) {
	resetRegistry()
	sink := &mockSink{}

	require.NoError(t, RegisterPublisher("mqtt", sink))
	assert.ErrorIs(t, RegisterPublisher("mqtt", sink), errAlreadyRegistered)
}

func TestPublishReadings_SuppressesUnchangedValues(t *testing.T) {
	resetRegistry()
	sink := &mockSink{}
	require.NoError(t, RegisterPublisher("test", sink))

	PublishReadings(context.Background(), []model.Reading{
		reading("NE=101", "active_power", "1.5"),
		reading("NE=101", "grid_frequency", "50.01"),
	})
	require.Len(t, sink.writes, 1)
	assert.Len(t, sink.writes[0], 2)

	// identical values again: nothing to publish
	PublishReadings(context.Background(), []model.Reading{
		reading("NE=101", "active_power", "1.5"),
		reading("NE=101", "grid_frequency", "50.01"),
	})
	assert.Len(t, sink.writes, 1)

	// one value changed: only that one goes out
	PublishReadings(context.Background(), []model.Reading{
		reading("NE=101", "active_power", "1.7"),
		reading("NE=101", "grid_frequency", "50.01"),
	})
	require.Len(t, sink.writes, 2)
	require.Len(t, sink.writes[1], 1)
	assert.Equal(t, "active_power", sink.writes[1][0].Slug)
}

func TestPublishReadings_SinkErrorsAreAbsorbed(t *testing.T) {
	resetRegistry()
	broken := &mockSink{err: errors.New("connection reset")}
	healthy := &mockSink{}
	require.NoError(t, RegisterPublisher("broken", broken))
	require.NoError(t, RegisterPublisher("healthy", healthy))

	assert.NotPanics(t, func() {
		PublishReadings(context.Background(), []model.Reading{
			reading("NE=202", "active_power", "410"),
		})
	})
	assert.Len(t, broken.writes, 1)
	assert.Len(t, healthy.writes, 1)
}

func TestPublishReadings_NoSinksRegistered(t *testing.T) {
	resetRegistry()
	assert.NotPanics(t, func() {
		PublishReadings(context.Background(), []model.Reading{
			reading("NE=101", "active_power", "1.5"),
		})
	})
}
