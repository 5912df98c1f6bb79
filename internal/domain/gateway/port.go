// Package gateway is the merchant server API the mock API forwards to.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
)

//go:generate mockgen -source port.go -destination mock_port.go -package gateway

type Provider interface {
	CreateSession(ctx context.Context, req SessionRequest) (SessionResult, error)
	CreatePayment(ctx context.Context, req PaymentRequest) (PaymentResult, error)
	GetToken(ctx context.Context, tokenID string) (TokenResult, error)
}

type SessionRequest struct {
	Tokens []string `json:"tokens"`
}

type SessionResult struct {
	AssetURL        string   `json:"assetUrl"`
	ClientAPIURL    string   `json:"clientApiUrl"`
	ClientSessionID string   `json:"clientSessionId"`
	CustomerID      string   `json:"customerId"`
	InvalidTokens   []string `json:"invalidTokens"`
}

// PaymentResult keeps the provider's status and body so they can be relayed as-is.
type PaymentResult struct {
	Status int
	Body   json.RawMessage
}

// CreationToken returns creationOutput.token of the body, if any.
func (r PaymentResult) CreationToken() string {
	var body struct {
		CreationOutput *struct {
			Token string `json:"token"`
		} `json:"creationOutput"`
	}
	if err := json.Unmarshal(r.Body, &body); err != nil || body.CreationOutput == nil {
		return ""
	}
	return body.CreationOutput.Token
}

type TokenAlias struct {
	Alias string `json:"alias"`
}

type TokenResult struct {
	ID               string      `json:"id"`
	PaymentProductID int         `json:"paymentProductId"`
	Card             *TokenAlias `json:"card,omitempty"`
	EWallet          *TokenAlias `json:"eWallet,omitempty"`
}

// Label returns the alias and the token kind; ok is false when the token has no alias.
func (t TokenResult) Label() (kind, alias string, ok bool) {
	switch {
	case t.Card != nil && t.Card.Alias != "":
		return "card", t.Card.Alias, true
	case t.EWallet != nil && t.EWallet.Alias != "":
		return "eWallet", t.EWallet.Alias, true
	default:
		return "", "", false
	}
}

// ResponseError is a non-2xx answer of the provider. Body is relayed to the caller.
type ResponseError struct {
	Status int
	Body   json.RawMessage
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("merchant gateway: status %d: %s", e.Status, string(e.Body))
}
