package mockapi

import (
	"PayFlow/pkg/health"
	"PayFlow/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	merchant       *MerchantHandler
	clientAPI      *ClientAPIHandler
	healthRegistry *health.Registry
}

func (r *Router) SetUp(engine *gin.Engine) {
	engine.GET("/health/live", health.LivenessHandler())
	engine.GET("/health/ready", health.ReadinessHandler(r.healthRegistry, health.DefaultTimeout))

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	engine.GET("/session", r.merchant.CreateSession)
	engine.POST("/payment", r.merchant.CreatePayment)
	engine.GET("/tokens/:merchantId", r.merchant.ListTokens)

	// Sandbox client API, absent in platform mode
	if r.clientAPI != nil {
		client := engine.Group("/client/v1/:customerId", r.clientAPI.Authorize)
		client.GET("/products", r.clientAPI.Products)
		client.GET("/products/:productId", r.clientAPI.Product)
		client.POST("/services/getIINdetails", r.clientAPI.IinDetails)
		client.POST("/services/dccrate", r.clientAPI.CurrencyConversion)
		client.POST("/services/surchargecalculation", r.clientAPI.Surcharge)
		client.GET("/crypto/publickey", r.clientAPI.PublicKey)
	}

	engine.NoRoute(Fallback)
}

// NewRouter builds the mock API routes. clientAPI may be nil.
func NewRouter(merchant *MerchantHandler, clientAPI *ClientAPIHandler, healthRegistry *health.Registry) *Router {
	return &Router{
		merchant:       merchant,
		clientAPI:      clientAPI,
		healthRegistry: healthRegistry,
	}
}
