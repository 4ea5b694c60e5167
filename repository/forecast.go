package repository

import (
	"context"

	"github.com/routineplus/backend/domain"
)

// ForecastCache stores recent weather snapshots keyed by city so repeated
// alert evaluations do not hammer the provider. A cache miss is reported
// as domain.ErrForecastUnavailable.
type ForecastCache interface {
	Get(ctx context.Context, city string) (*domain.WeatherSnapshot, error)
	Set(ctx context.Context, snapshot *domain.WeatherSnapshot) error
}
