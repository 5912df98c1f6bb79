package mockapi

import (
	"math/rand/v2"
	"net/http"
	"regexp"
	"time"

	"PayFlow/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var localOrigin = regexp.MustCompile(`^(https?://localhost:)`)

// CORS lets the demo apps call the mock API from any localhost port.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return localOrigin.MatchString(origin)
		},
		AllowMethods:              []string{"GET", "POST", "OPTIONS", "PUT", "PATCH", "DELETE"},
		AllowHeaders:              []string{"X-Requested-With", "Content-Type", "Authorization"},
		AllowCredentials:          true,
		OptionsResponseStatusCode: http.StatusOK,
	})
}

// exempt reports whether the development switches leave the request alone.
func exempt(c *gin.Context) bool {
	return c.Request.Method == http.MethodOptions || metrics.IsOperationalPath(c.Request.URL.Path)
}

// Delay holds every non-OPTIONS request for d before handling it.
// Health checks and scrapes are never held.
func Delay(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 || exempt(c) {
			c.Next()
			return
		}

		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-timer.C:
			c.Next()
		case <-c.Request.Context().Done():
			c.Abort()
		}
	}
}

// InjectBadRequests answers roughly one in five non-OPTIONS requests with an empty 400.
// Health checks and scrapes always pass.
func InjectBadRequests(roll func() float64) gin.HandlerFunc {
	if roll == nil {
		roll = rand.Float64
	}
	return func(c *gin.Context) {
		if !exempt(c) && roll() > 0.8 {
			metrics.MockAPIInjectedErrorsTotal.Inc()
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		c.Next()
	}
}
