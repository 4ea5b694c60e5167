package usecase

import (
	"context"

	"github.com/routineplus/backend/domain"
)

// ForecastProvider abstracts the external weather API. Implementations
// report fetch failures as recoverable errors; they never panic the
// request flow.
type ForecastProvider interface {
	Snapshot(ctx context.Context, city string) (*domain.WeatherSnapshot, error)
}
