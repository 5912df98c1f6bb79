// Package mockapi is the HTTP client of the local merchant backend.
package mockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"PayFlow/internal/apperror"
	"PayFlow/internal/domain/checkout"
	"PayFlow/internal/domain/payment"
)

const serviceName = "mockapi"

var (
	// ErrUnavailable is returned when the mock API cannot be reached.
	ErrUnavailable = errors.New("mock api unavailable")

	// ErrRejected is returned for any non-2xx answer.
	ErrRejected = errors.New("mock api rejected the request")
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ checkout.MockAPI = (*Client)(nil)

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) GetSession(ctx context.Context) (payment.SessionDetails, error) {
	var out payment.SessionDetails
	if err := c.send(ctx, http.MethodGet, "/session", nil, &out); err != nil {
		return payment.SessionDetails{}, err
	}
	return out, nil
}

// CreatePayment posts the payment and returns the provider response untouched.
func (c *Client) CreatePayment(ctx context.Context, req payment.CreatePaymentRequest) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.send(ctx, http.MethodPost, "/payment", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Tokens(ctx context.Context, merchantID string) ([]payment.SavedToken, error) {
	var out []payment.SavedToken
	if err := c.send(ctx, http.MethodGet, "/tokens/"+url.PathEscape(merchantID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ping checks the mock API answers at all; any HTTP status counts as alive.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodOptions, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	_ = resp.Body.Close()
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &apperror.UpstreamError{Service: serviceName, Err: fmt.Errorf("%w: %v", ErrUnavailable, err)}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apperror.UpstreamError{Service: serviceName, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &apperror.UpstreamError{
			Service:  serviceName,
			Status:   resp.StatusCode,
			Messages: errorMessages(raw),
			Err:      ErrRejected,
		}
	}

	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &apperror.UpstreamError{Service: serviceName, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// errorMessages reads {errors:[{message}]} and the mock API's own {message}.
func errorMessages(raw []byte) []string {
	var body struct {
		Message string `json:"message"`
		Errors  []struct {
			Message string `json:"message"`
			ID      string `json:"id"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}

	var out []string
	for _, e := range body.Errors {
		switch {
		case e.Message != "":
			out = append(out, e.Message)
		case e.ID != "":
			out = append(out, e.ID)
		}
	}
	if len(out) == 0 && body.Message != "" {
		out = append(out, body.Message)
	}
	return out
}
