// Package merchant implements the merchant server API used by the mock API:
// the real platform behind HMAC authentication, or an in-process sandbox.
package merchant

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"PayFlow/internal/domain/gateway"
)

var ErrUnavailable = errors.New("merchant platform unavailable")

// Platform calls the v2 server API, signing every request with the API secret.
type Platform struct {
	baseURL    string
	merchantID string
	apiKeyID   string
	secret     []byte
	httpClient *http.Client
	now        func() time.Time
}

var _ gateway.Provider = (*Platform)(nil)

type PlatformConfig struct {
	Host       string
	MerchantID string
	APIKeyID   string
	APISecret  string
	Timeout    time.Duration
}

func NewPlatform(cfg PlatformConfig) *Platform {
	host := strings.TrimRight(cfg.Host, "/")
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Platform{
		baseURL:    host,
		merchantID: cfg.MerchantID,
		apiKeyID:   cfg.APIKeyID,
		secret:     []byte(cfg.APISecret),
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

func (p *Platform) CreateSession(ctx context.Context, req gateway.SessionRequest) (gateway.SessionResult, error) {
	if req.Tokens == nil {
		req.Tokens = []string{}
	}
	res, err := p.send(ctx, http.MethodPost, "/sessions", req)
	if err != nil {
		return gateway.SessionResult{}, err
	}

	var out gateway.SessionResult
	if err := json.Unmarshal(res.Body, &out); err != nil {
		return gateway.SessionResult{}, fmt.Errorf("decode session: %w", err)
	}
	return out, nil
}

func (p *Platform) CreatePayment(ctx context.Context, req gateway.PaymentRequest) (gateway.PaymentResult, error) {
	return p.send(ctx, http.MethodPost, "/payments", req)
}

func (p *Platform) GetToken(ctx context.Context, tokenID string) (gateway.TokenResult, error) {
	res, err := p.send(ctx, http.MethodGet, "/tokens/"+url.PathEscape(tokenID), nil)
	if err != nil {
		return gateway.TokenResult{}, err
	}

	var out gateway.TokenResult
	if err := json.Unmarshal(res.Body, &out); err != nil {
		return gateway.TokenResult{}, fmt.Errorf("decode token: %w", err)
	}
	return out, nil
}

func (p *Platform) send(ctx context.Context, method, path string, body any) (gateway.PaymentResult, error) {
	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return gateway.PaymentResult{}, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
		contentType = "application/json"
	}

	resource := "/v2/" + url.PathEscape(p.merchantID) + path
	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+resource, reader)
	if err != nil {
		return gateway.PaymentResult{}, fmt.Errorf("create request: %w", err)
	}

	date := p.now().UTC().Format(http.TimeFormat)
	req.Header.Set("Date", date)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Authorization", "GCS v1HMAC:"+p.apiKeyID+":"+Sign(p.secret, method, contentType, date, resource))

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return gateway.PaymentResult{}, ctxErr
		}
		return gateway.PaymentResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return gateway.PaymentResult{}, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return gateway.PaymentResult{}, &gateway.ResponseError{Status: resp.StatusCode, Body: raw}
	}
	return gateway.PaymentResult{Status: resp.StatusCode, Body: raw}, nil
}

// Sign computes the v1HMAC signature over the request line fields.
func Sign(secret []byte, method, contentType, date, resource string) string {
	var b strings.Builder
	b.WriteString(method)
	b.WriteByte('\n')
	b.WriteString(contentType)
	b.WriteByte('\n')
	b.WriteString(date)
	b.WriteByte('\n')
	b.WriteString(resource)
	b.WriteByte('\n')

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(b.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
