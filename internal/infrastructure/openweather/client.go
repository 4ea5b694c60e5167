package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/routineplus/backend/domain"
)

// Config carries the provider settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Units   string
	Lang    string
}

// Client fetches current conditions and the near-term forecast from the
// OpenWeather HTTP API. Fetch errors are reported as
// domain.ErrForecastUnavailable so callers can degrade to "no data".
type Client struct {
	http   *fasthttp.Client
	cfg    Config
	logger *zap.Logger
}

// New builds an OpenWeather client.
func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openweathermap.org/data/2.5"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Units == "" {
		cfg.Units = "metric"
	}
	if cfg.Lang == "" {
		cfg.Lang = "pt_br"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:  cfg.Timeout,
			WriteTimeout: cfg.Timeout,
		},
		cfg:    cfg,
		logger: logger,
	}
}

type conditionPayload struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type currentPayload struct {
	Name    string             `json:"name"`
	Weather []conditionPayload `json:"weather"`
	Main    struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	DT int64 `json:"dt"`
}

type forecastPayload struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []struct {
		DT      int64              `json:"dt"`
		Weather []conditionPayload `json:"weather"`
		Main    struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
	} `json:"list"`
}

// Snapshot fetches both the current conditions and the periodic forecast
// for the city and merges them into one snapshot.
func (c *Client) Snapshot(ctx context.Context, city string) (*domain.WeatherSnapshot, error) {
	if city == "" {
		return nil, domain.ErrInvalidPayload
	}

	var current currentPayload
	if err := c.fetch(ctx, "/weather", city, &current); err != nil {
		return nil, err
	}

	snapshot := &domain.WeatherSnapshot{
		City:      current.Name,
		WindSpeed: current.Wind.Speed,
		FetchedAt: time.Now().UTC(),
	}
	if len(current.Weather) > 0 {
		snapshot.Current = domain.Condition{
			Main:        current.Weather[0].Main,
			Description: current.Weather[0].Description,
			Temp:        current.Main.Temp,
			At:          time.Unix(current.DT, 0).UTC(),
		}
	}

	// The forecast is additive: losing it still leaves a usable snapshot
	// built from current conditions.
	var forecast forecastPayload
	if err := c.fetch(ctx, "/forecast", city, &forecast); err != nil {
		c.logger.Debug("forecast fetch failed, using current conditions only",
			zap.String("city", city), zap.Error(err))
		return snapshot, nil
	}

	if snapshot.City == "" {
		snapshot.City = forecast.City.Name
	}
	for _, slot := range forecast.List {
		if len(slot.Weather) == 0 {
			continue
		}
		snapshot.Hourly = append(snapshot.Hourly, domain.Condition{
			Main:        slot.Weather[0].Main,
			Description: slot.Weather[0].Description,
			Temp:        slot.Main.Temp,
			At:          time.Unix(slot.DT, 0).UTC(),
		})
	}
	return snapshot, nil
}

func (c *Client) fetch(ctx context.Context, path, city string, out interface{}) error {
	requestURL := fmt.Sprintf("%s%s?q=%s&appid=%s&units=%s&lang=%s",
		c.cfg.BaseURL,
		path,
		url.QueryEscape(city),
		url.QueryEscape(c.cfg.APIKey),
		c.cfg.Units,
		c.cfg.Lang,
	)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)

	deadline := time.Now().Add(c.cfg.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return domain.WrapError(domain.ErrCodeUnavailable, "weather provider unreachable", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return domain.WrapError(domain.ErrCodeUnavailable,
			fmt.Sprintf("weather provider returned status %d", resp.StatusCode()), nil)
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return domain.WrapError(domain.ErrCodeUnavailable, "weather payload malformed", err)
	}
	return nil
}
