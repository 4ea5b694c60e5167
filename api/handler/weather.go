package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/routineplus/backend/api/transport"
	"github.com/routineplus/backend/domain"
	"github.com/routineplus/backend/pkg/httpcontext"
	weatherUC "github.com/routineplus/backend/usecase/weather"
)

type WeatherHandler struct {
	baseHandler
	uc *weatherUC.UseCase
}

func NewWeatherHandler(uc *weatherUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *WeatherHandler {
	return &WeatherHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Current conditions for a city
// @Tags weather
// @Router /api/v1/weather [get]
func (h *WeatherHandler) GetWeather(ctx *fasthttp.RequestCtx) {
	snapshot, ok := h.snapshot(ctx)
	if !ok {
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"city":       snapshot.City,
		"current":    snapshot.Current,
		"wind_speed": snapshot.WindSpeed,
		"fetched_at": snapshot.FetchedAt,
	})
}

// @Summary Near-term forecast for a city
// @Tags weather
// @Router /api/v1/weather/forecast [get]
func (h *WeatherHandler) GetForecast(ctx *fasthttp.RequestCtx) {
	snapshot, ok := h.snapshot(ctx)
	if !ok {
		return
	}
	h.respondSuccess(ctx, http.StatusOK, snapshot)
}

func (h *WeatherHandler) snapshot(ctx *fasthttp.RequestCtx) (*domain.WeatherSnapshot, bool) {
	city := string(ctx.QueryArgs().Peek("city"))
	if city == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "city required", nil))
		return nil, false
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	snapshot, err := h.uc.Snapshot(stdCtx, city)
	if err != nil {
		h.respondError(ctx, err)
		return nil, false
	}
	return snapshot, true
}
