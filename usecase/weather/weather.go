package weather

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/routineplus/backend/domain"
	"github.com/routineplus/backend/repository"
	"github.com/routineplus/backend/usecase"
)

// UseCase evaluates best-effort precipitation warnings for outdoor tasks.
// Forecast failures never fail the surrounding request: they degrade to
// "no alert".
type UseCase struct {
	provider usecase.ForecastProvider
	cache    repository.ForecastCache
	tasks    repository.TaskRepository
	logger   *zap.Logger
	now      func() time.Time
}

func New(provider usecase.ForecastProvider, cache repository.ForecastCache, tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		provider: provider,
		cache:    cache,
		tasks:    tasks,
		logger:   logger,
		now:      time.Now,
	}
}

// Snapshot returns the weather snapshot for a city, serving from the cache
// when a recent one exists.
func (uc *UseCase) Snapshot(ctx context.Context, city string) (*domain.WeatherSnapshot, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, city); err == nil {
			return cached, nil
		}
	}

	snapshot, err := uc.provider.Snapshot(ctx, city)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, snapshot); err != nil {
			uc.logger.Debug("forecast cache write failed", zap.String("city", city), zap.Error(err))
		}
	}
	return snapshot, nil
}

// AlertsForOwner evaluates the caller's active outdoor tasks against one
// forecast snapshot. A forecast failure yields no alerts and no error.
func (uc *UseCase) AlertsForOwner(ctx context.Context, ownerID, city string) ([]domain.WeatherAlert, error) {
	tasks, err := uc.tasks.ListActive(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var outdoor []domain.Task
	for _, task := range tasks {
		if task.Category.IsOutdoor() {
			outdoor = append(outdoor, task)
		}
	}
	if len(outdoor) == 0 {
		return nil, nil
	}

	snapshot, err := uc.Snapshot(ctx, city)
	if err != nil {
		uc.logger.Debug("forecast unavailable, suppressing alerts",
			zap.String("city", city), zap.Error(err))
		return nil, nil
	}

	now := uc.now()
	var alerts []domain.WeatherAlert
	for _, task := range outdoor {
		if alert, ok := domain.EvaluateWeatherAlert(task, snapshot, now); ok {
			alerts = append(alerts, alert)
		}
	}
	return alerts, nil
}
