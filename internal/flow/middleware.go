package flow

import (
	"net/http"
	"regexp"

	"PayFlow/internal/domain/checkout"
	"PayFlow/internal/domain/guard"
	"PayFlow/internal/store"
	"PayFlow/pkg/correlation"
	"PayFlow/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FlowIDHeader carries the flow id for clients that do not keep cookies.
const FlowIDHeader = "X-Flow-ID"

const flowContextKey = "payflow.flow"

var validFlowID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// FlowMiddleware resolves the shopper's flow from the X-Flow-ID header or the
// flow cookie and starts a new one when neither carries a usable id.
func FlowMiddleware(states *store.Store, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(FlowIDHeader)
		if id == "" {
			id, _ = c.Cookie(cookieName)
		}
		if !validFlowID.MatchString(id) {
			id = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, id, 0, "/", "", false, true)
		c.Header(FlowIDHeader, id)
		c.Set(flowContextKey, checkout.Flow{ID: id, State: states.Gateway(id)})
		c.Request = c.Request.WithContext(correlation.WithFlowID(c.Request.Context(), id))

		c.Next()
	}
}

func flowFrom(c *gin.Context) checkout.Flow {
	return c.MustGet(flowContextKey).(checkout.Flow)
}

// GuardMiddleware rejects a step whose guards fail with 303 and the step to go back to.
func GuardMiddleware(step guard.Step) gin.HandlerFunc {
	chain := guard.ForStep(step)
	return func(c *gin.Context) {
		flow := flowFrom(c)

		d := chain.Check(flow.State.State(c.Request.Context()))
		if d.Allowed {
			c.Next()
			return
		}

		metrics.GuardRedirectsTotal.WithLabelValues(d.Guard, string(step), string(d.Redirect)).Inc()
		c.Header("Location", string(d.Redirect))
		c.AbortWithStatusJSON(http.StatusSeeOther, gin.H{"redirect": d.Redirect})
	}
}
