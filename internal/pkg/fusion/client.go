package fusion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/anicoll/fusionbridge/internal/pkg/config"
	"github.com/anicoll/fusionbridge/internal/pkg/model"
)

const (
	realtimeDataPath = "/rest/pvms/web/device/v1/device-realtime-data"

	// The vendor serves browsers only; API calls need to look like one.
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

type notifier interface {
	Notify(ctx context.Context, title, body string)
}

// Client holds one cookie-authenticated session against the vendor platform.
// The cookie set is installed at construction and never mutated afterwards.
type Client struct {
	cfg      *config.FusionConfig
	client   *http.Client
	baseURL  *url.URL
	notifier notifier
	logger   *zap.Logger
}

// New primes an HTTP session with the cookies from cfg.CookiesFile. A load or
// validation failure alerts the operator and is fatal: the platform rejects
// uncookied requests and there is no login flow to fall back on.
func New(ctx context.Context, cfg *config.FusionConfig, n notifier) (*Client, error) {
	c := &Client{
		cfg:      cfg,
		notifier: n,
		logger:   zap.L(),
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		n.Notify(ctx, "fusionbridge: configuration error", err.Error())
		return nil, &ConfigError{Err: err}
	}
	c.baseURL = base

	cookies, err := loadCookies(cfg.CookiesFile)
	if err != nil {
		n.Notify(ctx, "fusionbridge: configuration error", err.Error())
		return nil, &ConfigError{Err: err}
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		n.Notify(ctx, "fusionbridge: configuration error", err.Error())
		return nil, &ConfigError{Err: err}
	}
	jar.SetCookies(base, cookies)

	// No client-wide timeout: realtime-data calls are left unbounded, callers
	// may cap individual calls through ctx.
	c.client = &http.Client{Jar: jar}

	c.logger.Debug("fusion session primed",
		zap.String("base_url", cfg.BaseURL),
		zap.Int("cookies", len(cookies)))
	return c, nil
}

// RealtimeData fetches the current telemetry payload for one device. Each
// call is a single best-effort attempt; every failure is logged, reported to
// the operator and returned as a *FetchError.
func (c *Client) RealtimeData(ctx context.Context, deviceDn string) (*model.RealtimeResponse, error) {
	u := *c.baseURL
	u.Path = realtimeDataPath

	query := url.Values{}
	query.Set("deviceDn", deviceDn)
	query.Set("displayAccessModel", "true")
	// cache buster, the platform caches aggressively otherwise
	query.Set("_", strconv.FormatInt(time.Now().UnixMilli(), 10))
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, c.failed(ctx, &FetchError{Kind: KindUnexpected, DeviceDn: deviceDn, Err: err})
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, c.failed(ctx, &FetchError{Kind: KindConnection, DeviceDn: deviceDn, Err: err})
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, c.failed(ctx, &FetchError{Kind: KindHTTP, StatusCode: res.StatusCode, DeviceDn: deviceDn})
	}

	payload := &model.RealtimeResponse{}
	if err := json.NewDecoder(res.Body).Decode(payload); err != nil {
		return nil, c.failed(ctx, &FetchError{Kind: KindParse, DeviceDn: deviceDn, Err: err})
	}

	c.logger.Debug("realtime data received",
		zap.String("device_dn", deviceDn),
		zap.String("build_code", payload.BuildCode),
		zap.Bool("success", payload.Success),
		zap.Int("groups", len(payload.Data)))
	return payload, nil
}

func (c *Client) failed(ctx context.Context, ferr *FetchError) error {
	c.logger.Error("realtime data fetch failed",
		zap.String("device_dn", ferr.DeviceDn),
		zap.String("kind", string(ferr.Kind)),
		zap.Int("status_code", ferr.StatusCode),
		zap.Error(ferr.Err))
	c.notifier.Notify(ctx, "fusionbridge: fetch failed", ferr.Error())
	return ferr
}
