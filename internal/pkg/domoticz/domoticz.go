package domoticz

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/anicoll/fusionbridge/internal/pkg/config"
)

const defaultTimeout = 10 * time.Second

// Client writes power values into virtual devices of a Domoticz instance
// over its JSON API.
type Client struct {
	cfg    *config.HubConfig
	client *http.Client
	logger *zap.Logger
}

func New(cfg *config.HubConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: zap.L(),
	}
}

// SendReading updates the virtual device at idx with value. Sub-watt
// precision is dropped, the hub device takes an integer svalue. Returns true
// only on a 200 response; every failure is logged and absorbed.
func (c *Client) SendReading(ctx context.Context, idx int, value float64, label string) bool {
	query := url.Values{}
	query.Set("param", "udevice")
	query.Set("type", "command")
	query.Set("idx", strconv.Itoa(idx))
	query.Set("nvalue", "0")
	query.Set("svalue", strconv.FormatInt(int64(value), 10))

	endpoint := fmt.Sprintf("http://%s/json.htm?%s", c.cfg.Host, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Error("building hub request failed",
			zap.String("label", label),
			zap.Int("idx", idx),
			zap.Error(err))
		return false
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)

	res, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("hub update failed",
			zap.String("label", label),
			zap.Int("idx", idx),
			zap.Error(err))
		return false
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		c.logger.Error("hub rejected update",
			zap.String("label", label),
			zap.Int("idx", idx),
			zap.Int("status_code", res.StatusCode))
		return false
	}
	return true
}
