package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(GinMiddleware())
	engine.GET("/payment/:step", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/health/live", func(c *gin.Context) { c.Status(http.StatusOK) })

	routed := HTTPRequestsTotal.WithLabelValues("/payment/:step", http.MethodGet, "200")
	unmatched := HTTPRequestsTotal.WithLabelValues("unmatched", http.MethodGet, "404")
	health := HTTPRequestsTotal.WithLabelValues("/health/live", http.MethodGet, "200")
	beforeRouted, beforeUnmatched, beforeHealth := testutil.ToFloat64(routed), testutil.ToFloat64(unmatched), testutil.ToFloat64(health)

	for _, path := range []string{"/payment/finalize", "/payment/credit-card", "/nowhere", "/health/live"} {
		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, beforeRouted+2, testutil.ToFloat64(routed))
	assert.Equal(t, beforeUnmatched+1, testutil.ToFloat64(unmatched))
	assert.Equal(t, beforeHealth, testutil.ToFloat64(health))
}
