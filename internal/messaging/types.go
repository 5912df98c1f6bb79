package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	TypeSessionStarted   = "flow.session_started"
	TypeSessionCleared   = "flow.session_cleared"
	TypePaymentSubmitted = "flow.payment_submitted"
)

// SchemaVersion is bumped whenever a payload changes incompatibly.
const SchemaVersion = 1

// Envelope is what goes on the wire for every flow event. Consumers key and
// order by FlowID.
type Envelope struct {
	EventID       string          `json:"event_id"`
	FlowID        string          `json:"flow_id"`
	Type          string          `json:"type"`
	SchemaVersion int             `json:"schema_version"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

func NewEnvelope(flowID, eventType string, payload any) (Envelope, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}

	return Envelope{
		EventID:       uuid.NewString(),
		FlowID:        flowID,
		Type:          eventType,
		SchemaVersion: SchemaVersion,
		Payload:       data,
		OccurredAt:    time.Now().UTC(),
	}, nil
}

// Publisher hands flow events to a broker. Publishing never blocks a flow step
// on failure; callers log and move on.
type Publisher interface {
	Publish(ctx context.Context, envelope Envelope) error
	Close() error
}

// NopPublisher drops every envelope. Used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Envelope) error { return nil }

func (NopPublisher) Close() error { return nil }

// SessionStarted is published when a shopper starts a new session.
type SessionStarted struct {
	FlowID          string `json:"flow_id"`
	ClientSessionID string `json:"client_session_id"`
	CustomerID      string `json:"customer_id"`
}

// SessionCleared is published when the state is reset by a restart or an expired session.
type SessionCleared struct {
	FlowID string `json:"flow_id"`
	Reason string `json:"reason"`
}

// PaymentSubmitted is published after the mock API accepted a payment.
type PaymentSubmitted struct {
	FlowID           string `json:"flow_id"`
	PaymentProductID int    `json:"payment_product_id"`
	Method           string `json:"method"`
	Amount           int64  `json:"amount"`
	CurrencyCode     string `json:"currency_code"`
	CountryCode      string `json:"country_code"`
}
