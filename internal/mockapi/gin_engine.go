package mockapi

import (
	"time"

	"PayFlow/pkg/logger"
	"PayFlow/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// EngineOptions are the development switches of the mock API.
type EngineOptions struct {
	Delay   time.Duration
	With400 bool
	// Roll replaces the random source of the 400 injection in tests.
	Roll func() float64
}

func NewGinEngine(l *logger.Logger, opts EngineOptions) *gin.Engine {
	engine := gin.New()
	engine.Use(metrics.GinMiddleware(), l.GinBodyLogger(), gin.Recovery(), CORS(), Delay(opts.Delay))
	if opts.With400 {
		engine.Use(InjectBadRequests(opts.Roll))
	}
	return engine
}
