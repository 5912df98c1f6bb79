// Package correlation carries the ids that tie log records and flow events
// back to one request and one shopper flow.
package correlation

import (
	"context"

	"github.com/google/uuid"
)

// HeaderName is used both as the HTTP header and as the Kafka message header.
const HeaderName = "X-Correlation-ID"

// FlowHeaderName is the Kafka message header that carries the flow id.
const FlowHeaderName = "X-Flow-ID"

type (
	requestKey struct{}
	flowKey    struct{}
)

func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestKey{}).(string)
	return id
}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestKey{}, id)
}

// FlowFromContext returns the flow id of the request, or "" outside a flow route.
func FlowFromContext(ctx context.Context) string {
	id, _ := ctx.Value(flowKey{}).(string)
	return id
}

func WithFlowID(ctx context.Context, flowID string) context.Context {
	return context.WithValue(ctx, flowKey{}, flowID)
}

func NewID() string {
	return uuid.NewString()
}
