package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	paho_mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/anicoll/fusionbridge/internal/pkg/model"
)

// service mirrors readings onto Home-Assistant style state topics.
type service struct {
	client paho_mqtt.Client
}

func New(client paho_mqtt.Client) *service {
	return &service{
		client: client,
	}
}

func (s *service) Connect() error {
	token := s.client.Connect()
	if token.WaitTimeout(time.Second * 5) {
		return nil
	}
	if err := token.Error(); err != nil {
		return err
	}
	return errors.New("unable to connect in time")
}

func (s *service) Write(ctx context.Context, readings []model.Reading) error {
	for _, reading := range readings {
		topic := fmt.Sprintf("homeassistant/sensor/%s/%s/state", reading.Identifier, reading.Slug)

		payload, err := json.Marshal(map[string]string{
			"value":               reading.Value,
			"unit_of_measurement": reading.Unit,
		})
		if err != nil {
			return err
		}

		token := s.client.Publish(topic, 0, false, payload)
		if token.WaitTimeout(time.Second * 10) {
			continue
		}
		if err := token.Error(); err != nil {
			return err
		}
	}
	return nil
}
