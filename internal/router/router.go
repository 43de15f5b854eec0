package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/multitimer/backend/api/handler"
)

type Handlers struct {
	Timer   *apiHandler.TimerHandler
	History *apiHandler.HistoryHandler
	Health  *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Timer intents
	r.GET("/api/v1/timers", authMiddleware(handlers.Timer.GetTimers))
	r.POST("/api/v1/timers", authMiddleware(handlers.Timer.AddTimer))
	r.PUT("/api/v1/timers/{id}", authMiddleware(handlers.Timer.UpdateTimer))
	r.DELETE("/api/v1/timers/{id}", authMiddleware(handlers.Timer.DeleteTimer))
	r.POST("/api/v1/timers/{id}/toggle", authMiddleware(handlers.Timer.ToggleTimer))
	r.POST("/api/v1/timers/{id}/reset", authMiddleware(handlers.Timer.ResetTimer))
	r.POST("/api/v1/timers/batch", authMiddleware(handlers.Timer.BatchUpdate))

	// Categories and history
	r.POST("/api/v1/categories/{name}/{action}", authMiddleware(handlers.Timer.CategoryAction))
	r.GET("/api/v1/categories", authMiddleware(handlers.History.GetCategories))
	r.GET("/api/v1/history", authMiddleware(handlers.History.GetHistory))
	r.POST("/api/v1/history", authMiddleware(handlers.History.RecordCompletion))

	return r
}
