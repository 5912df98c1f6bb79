package flow

import (
	"PayFlow/internal/domain/guard"
	"PayFlow/internal/store"
	"PayFlow/pkg/health"
	"PayFlow/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	flow           *FlowHandler
	states         *store.Store
	cookieName     string
	healthRegistry *health.Registry
}

func (r *Router) SetUp(engine *gin.Engine) {
	// Health checks (Kubernetes-style)
	engine.GET("/health/live", health.LivenessHandler())
	engine.GET("/health/ready", health.ReadinessHandler(r.healthRegistry, health.DefaultTimeout))

	// Prometheus metrics
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	flow := engine.Group("", FlowMiddleware(r.states, r.cookieName))
	flow.GET("/status", r.flow.Status)

	// Session entry
	flow.GET("/", r.flow.SessionView)
	flow.GET("/session/fetch", r.flow.FetchSession)
	flow.POST("/session", r.flow.StartSession)
	flow.POST("/restart", r.flow.Restart)

	// Product and context selection
	pay := flow.Group("", GuardMiddleware(guard.StepPayment))
	pay.GET("/payment", r.flow.PaymentView)
	pay.PUT("/payment/context", r.flow.SetPaymentContext)
	pay.POST("/payment/product", r.flow.SelectProduct)
	pay.POST("/payment/account-on-file/select", r.flow.SelectAccountOnFile)
	pay.GET("/payment/tokens", r.flow.SavedTokens)

	card := flow.Group("/payment/credit-card", GuardMiddleware(guard.StepCreditCard))
	card.GET("", r.flow.CreditCardView)
	card.POST("", r.flow.SubmitCard)
	card.POST("/iin", r.flow.LookupIin)
	card.POST("/currency-conversion", r.flow.CurrencyConversion)
	card.POST("/surcharge", r.flow.Surcharge)

	aof := flow.Group("/payment/account-on-file", GuardMiddleware(guard.StepAccountOnFile))
	aof.GET("", r.flow.AccountOnFileView)
	aof.POST("", r.flow.SubmitAccountOnFile)

	googlePay := flow.Group("/payment/google-pay", GuardMiddleware(guard.StepGooglePay))
	googlePay.GET("", r.flow.GooglePayView)
	googlePay.POST("", r.flow.SubmitGooglePay)

	finalize := flow.Group("/payment/finalize", GuardMiddleware(guard.StepFinalize))
	finalize.GET("", r.flow.FinalizeView)
	finalize.POST("", r.flow.SubmitPayment)
}

func NewRouter(flow *FlowHandler, states *store.Store, cookieName string, healthRegistry *health.Registry) *Router {
	return &Router{
		flow:           flow,
		states:         states,
		cookieName:     cookieName,
		healthRegistry: healthRegistry,
	}
}
