package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/routineplus/backend/api/handler"
)

type Handlers struct {
	Task         *apiHandler.TaskHandler
	History      *apiHandler.HistoryHandler
	Weather      *apiHandler.WeatherHandler
	Notification *apiHandler.NotificationHandler
	Health       *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Weather proxy routes are public: the forecast is advisory data and
	// carries nothing owner-scoped.
	r.GET("/api/v1/weather", handlers.Weather.GetWeather)
	r.GET("/api/v1/weather/forecast", handlers.Weather.GetForecast)

	// Protected routes
	r.GET("/api/v1/tasks", authMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.POST("/api/v1/tasks/{id}/complete", authMiddleware(handlers.Task.CompleteTask))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))
	r.GET("/api/v1/tasks/alerts", authMiddleware(handlers.Task.GetAlerts))

	r.GET("/api/v1/history", authMiddleware(handlers.History.GetHistory))

	r.POST("/api/v1/notifications/token", authMiddleware(handlers.Notification.RegisterToken))

	return r
}
