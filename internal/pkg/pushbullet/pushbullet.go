package pushbullet

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/anicoll/fusionbridge/internal/pkg/config"
)

const pushesPath = "/v2/pushes"

// Client sends short operator alerts through a Pushbullet-compatible push
// service.
type Client struct {
	cfg    *config.PushConfig
	client *http.Client
	logger *zap.Logger
}

func New(cfg *config.PushConfig) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: zap.L(),
	}
}

type pushNote struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Notify is fire and forget: a dead push service must never take the poll
// cycle down with it, so every failure is logged and swallowed. An empty
// token disables notifications entirely.
func (c *Client) Notify(ctx context.Context, title, body string) {
	if c.cfg.Token == "" {
		c.logger.Debug("push token not configured, dropping notification", zap.String("title", title))
		return
	}

	payload, err := json.Marshal(pushNote{Type: "note", Title: title, Body: body})
	if err != nil {
		c.logger.Error("marshalling notification failed", zap.String("title", title), zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL+pushesPath, bytes.NewReader(payload))
	if err != nil {
		c.logger.Error("building notification request failed", zap.String("title", title), zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	res, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("sending notification failed", zap.String("title", title), zap.Error(err))
		return
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		c.logger.Error("push service rejected notification",
			zap.String("title", title),
			zap.Int("status_code", res.StatusCode))
		return
	}
	c.logger.Debug("notification sent", zap.String("title", title))
}
