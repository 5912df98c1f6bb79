// Package clientapi talks to the platform's client API on behalf of one
// client session: product discovery, IIN lookup, conversion and surcharge
// quotes, and payload encryption.
package clientapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"PayFlow/internal/apperror"
	"PayFlow/internal/domain/checkout"
	"PayFlow/internal/domain/payment"

	"github.com/google/go-querystring/query"
)

const serviceName = "clientapi"

// Factory builds sessions sharing one HTTP client.
type Factory struct {
	httpClient *http.Client
}

var _ checkout.SessionFactory = (*Factory)(nil)

func NewFactory(timeout time.Duration) *Factory {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Factory{httpClient: &http.Client{Timeout: timeout}}
}

// NewSession validates the descriptor the same way the SDK constructor does.
func (f *Factory) NewSession(details payment.SessionDetails) (checkout.Session, error) {
	if fields := details.Validate(); fields != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, fields)
	}
	base := strings.TrimRight(details.ClientAPIURL, "/")
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	s := &Session{
		baseURL:         base + "/v1/" + url.PathEscape(details.CustomerID),
		clientSessionID: details.ClientSessionID,
		httpClient:      f.httpClient,
	}
	s.encryptor = &Encryptor{session: s}
	return s, nil
}

// Session is one client session against the client API.
type Session struct {
	baseURL         string
	clientSessionID string
	httpClient      *http.Client
	encryptor       *Encryptor
}

var _ checkout.Session = (*Session)(nil)

type contextQuery struct {
	CountryCode  string `url:"countryCode"`
	CurrencyCode string `url:"currencyCode"`
	Amount       int64  `url:"amount"`
	IsRecurring  bool   `url:"isRecurring"`
	Locale       string `url:"locale,omitempty"`
	Hide         string `url:"hide,omitempty"`
}

func newContextQuery(pctx payment.Context, hide string) contextQuery {
	return contextQuery{
		CountryCode:  pctx.CountryCode,
		CurrencyCode: pctx.AmountOfMoney.CurrencyCode,
		Amount:       pctx.AmountOfMoney.Amount,
		IsRecurring:  pctx.IsRecurring,
		Locale:       pctx.Locale,
		Hide:         hide,
	}
}

type productsResponse struct {
	PaymentProducts []payment.Product `json:"paymentProducts"`
}

func (s *Session) GetBasicPaymentItems(ctx context.Context, pctx payment.Context) (payment.BasicPaymentItems, error) {
	var out productsResponse
	if err := s.get(ctx, "/products", newContextQuery(pctx, "fields"), &out); err != nil {
		return payment.BasicPaymentItems{}, err
	}
	return payment.NewBasicPaymentItems(out.PaymentProducts), nil
}

func (s *Session) GetPaymentProduct(ctx context.Context, productID int, pctx payment.Context) (payment.Product, error) {
	var out payment.Product
	if err := s.get(ctx, "/products/"+strconv.Itoa(productID), newContextQuery(pctx, ""), &out); err != nil {
		return payment.Product{}, err
	}
	return out, nil
}

type iinRequest struct {
	Bin            string          `json:"bin"`
	PaymentContext iinPaymentScope `json:"paymentContext"`
}

type iinPaymentScope struct {
	AmountOfMoney payment.AmountOfMoney `json:"amountOfMoney"`
	CountryCode   string                `json:"countryCode"`
	IsRecurring   bool                  `json:"isRecurring"`
}

// GetIinDetails looks up the first digits of a card number. Lookups the
// platform cannot resolve come back as a status, not as an error.
func (s *Session) GetIinDetails(ctx context.Context, partialCardNumber string, pctx payment.Context) (payment.IinDetails, error) {
	bin := partialCardNumber
	if len(bin) < payment.MinIinDigits {
		return payment.IinDetails{Status: payment.IinNotEnoughDigits}, nil
	}
	if len(bin) >= 8 {
		bin = bin[:8]
	} else {
		bin = bin[:payment.MinIinDigits]
	}

	req := iinRequest{
		Bin: bin,
		PaymentContext: iinPaymentScope{
			AmountOfMoney: pctx.AmountOfMoney,
			CountryCode:   pctx.CountryCode,
			IsRecurring:   pctx.IsRecurring,
		},
	}

	var out payment.IinDetails
	if err := s.post(ctx, "/services/getIINdetails", req, &out); err != nil {
		var upstream *apperror.UpstreamError
		if errors.As(err, &upstream) && upstream.Status == http.StatusNotFound {
			return payment.IinDetails{Status: payment.IinUnknown}, nil
		}
		return payment.IinDetails{}, err
	}

	switch {
	case out.PaymentProductID == 0:
		out.Status = payment.IinUnknown
	case !out.IsAllowedInContext:
		out.Status = payment.IinExistingButNotAllowed
	default:
		out.Status = payment.IinSupported
	}
	return out, nil
}

type cardSourceBody struct {
	Card struct {
		CardNumber       string `json:"cardNumber"`
		PaymentProductID int    `json:"paymentProductId,omitempty"`
	} `json:"card"`
}

func newCardSourceBody(card payment.CardSource) cardSourceBody {
	var b cardSourceBody
	b.Card.CardNumber = card.PartialCreditCardNumber
	b.Card.PaymentProductID = card.PaymentProductID
	return b
}

type dccRequest struct {
	CardSource  cardSourceBody `json:"cardSource"`
	Transaction struct {
		Amount payment.AmountOfMoney `json:"amount"`
	} `json:"transaction"`
}

func (s *Session) GetCurrencyConversionQuote(ctx context.Context, amount payment.AmountOfMoney, card payment.CardSource) (payment.CurrencyConversion, error) {
	req := dccRequest{CardSource: newCardSourceBody(card)}
	req.Transaction.Amount = amount

	var out payment.CurrencyConversion
	if err := s.post(ctx, "/services/dccrate", req, &out); err != nil {
		return payment.CurrencyConversion{}, err
	}
	return out, nil
}

type surchargeRequest struct {
	CardSource    cardSourceBody        `json:"cardSource"`
	AmountOfMoney payment.AmountOfMoney `json:"amountOfMoney"`
}

func (s *Session) GetSurchargeCalculation(ctx context.Context, amount payment.AmountOfMoney, card payment.CardSource) (payment.SurchargeCalculation, error) {
	req := surchargeRequest{CardSource: newCardSourceBody(card), AmountOfMoney: amount}

	var out payment.SurchargeCalculation
	if err := s.post(ctx, "/services/surchargecalculation", req, &out); err != nil {
		return payment.SurchargeCalculation{}, err
	}
	return out, nil
}

func (s *Session) Encryptor() checkout.Encryptor {
	return s.encryptor
}

type publicKeyResponse struct {
	KeyID     string `json:"keyId"`
	PublicKey string `json:"publicKey"`
}

func (s *Session) getPublicKey(ctx context.Context) (publicKeyResponse, error) {
	var out publicKeyResponse
	if err := s.get(ctx, "/crypto/publickey", nil, &out); err != nil {
		return publicKeyResponse{}, err
	}
	return out, nil
}

func (s *Session) get(ctx context.Context, path string, q any, out any) error {
	target := s.baseURL + path
	if q != nil {
		values, err := query.Values(q)
		if err != nil {
			return fmt.Errorf("encode query: %w", err)
		}
		if encoded := values.Encode(); encoded != "" {
			target += "?" + encoded
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return s.do(req, out)
}

func (s *Session) post(ctx context.Context, path string, body any, out any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, out)
}

func (s *Session) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "GCS v1Client:"+s.clientSessionID)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		return &apperror.UpstreamError{Service: serviceName, Err: fmt.Errorf("%w: %v", ErrServiceUnavailable, err)}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apperror.UpstreamError{Service: serviceName, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return handleErrorResponse(resp.StatusCode, body)
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &apperror.UpstreamError{Service: serviceName, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

type errorBody struct {
	ErrorID string `json:"errorId"`
	Errors  []struct {
		Code    string `json:"code"`
		ID      string `json:"id"`
		Message string `json:"message"`
	} `json:"errors"`
}

func handleErrorResponse(status int, body []byte) error {
	var parsed errorBody
	_ = json.Unmarshal(body, &parsed)

	var messages []string
	for _, e := range parsed.Errors {
		switch {
		case e.Message != "":
			messages = append(messages, e.Message)
		case e.ID != "":
			messages = append(messages, e.ID)
		}
	}

	var sentinel error
	switch {
	case status == http.StatusForbidden:
		sentinel = ErrForbidden
	case status == http.StatusNotFound:
		sentinel = ErrNotFound
	case status >= 500:
		sentinel = ErrServiceUnavailable
	default:
		sentinel = ErrBadRequest
	}
	return &apperror.UpstreamError{Service: serviceName, Status: status, Messages: messages, Err: sentinel}
}
