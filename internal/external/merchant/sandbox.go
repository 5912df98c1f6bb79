package merchant

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"slices"
	"strings"
	"sync"

	"PayFlow/internal/domain/gateway"
	"PayFlow/internal/domain/payment"

	"github.com/go-jose/go-jose/v4"
	"github.com/google/uuid"
)

// Sandbox is an in-process merchant platform with its own client API data:
// product catalog, IIN ranges, quotes and an encryption key pair.
type Sandbox struct {
	clientAPIURL string
	assetURL     string

	keyID string
	key   *rsa.PrivateKey

	mu         sync.RWMutex
	sessions   map[string]string
	tokens     map[string]gateway.TokenResult
	tokenCards map[string]tokenCard
}

var _ gateway.Provider = (*Sandbox)(nil)

func NewSandbox(clientAPIURL, assetURL string) (*Sandbox, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("generate sandbox key: %w", err)
	}
	return &Sandbox{
		clientAPIURL: clientAPIURL,
		assetURL:     assetURL,
		keyID:        uuid.NewString(),
		key:          key,
		sessions:     map[string]string{},
		tokens:       map[string]gateway.TokenResult{},
		tokenCards:   map[string]tokenCard{},
	}, nil
}

func (s *Sandbox) CreateSession(_ context.Context, req gateway.SessionRequest) (gateway.SessionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := gateway.SessionResult{
		AssetURL:        s.assetURL,
		ClientAPIURL:    s.clientAPIURL,
		ClientSessionID: strings.ReplaceAll(uuid.NewString(), "-", ""),
		CustomerID:      "sandbox-" + uuid.NewString()[:8],
		InvalidTokens:   []string{},
	}
	for _, t := range req.Tokens {
		if _, ok := s.tokens[t]; !ok {
			res.InvalidTokens = append(res.InvalidTokens, t)
		}
	}
	s.sessions[res.ClientSessionID] = res.CustomerID
	return res, nil
}

// Authorized reports whether the client session was issued for customerID.
func (s *Sandbox) Authorized(clientSessionID, customerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owner, ok := s.sessions[clientSessionID]
	return ok && owner == customerID
}

// ExpireSession forgets a client session; later client API calls get 403.
func (s *Sandbox) ExpireSession(clientSessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, clientSessionID)
}

type decryptedPayload struct {
	ClientSessionID  string `json:"clientSessionId"`
	PaymentProductID int    `json:"paymentProductId"`
	AccountOnFileID  string `json:"accountOnFileId"`
	Tokenize         bool   `json:"tokenize"`
	PaymentValues    []struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"paymentValues"`
}

func (p decryptedPayload) value(key string) string {
	for _, v := range p.PaymentValues {
		if v.Key == key {
			return v.Value
		}
	}
	return ""
}

func (s *Sandbox) CreatePayment(_ context.Context, req gateway.PaymentRequest) (gateway.PaymentResult, error) {
	if req.Order.AmountOfMoney.Amount <= 0 {
		return gateway.PaymentResult{}, rejected(http.StatusBadRequest, "PARAMETER_NOT_FOUND_IN_REQUEST", "order.amountOfMoney.amount must be positive")
	}

	var (
		productID int
		newToken  string
	)
	switch {
	case req.EncryptedCustomerInput != "":
		payload, err := s.decrypt(req.EncryptedCustomerInput)
		if err != nil {
			return gateway.PaymentResult{}, rejected(http.StatusBadRequest, "INVALID_ENCRYPTED_CUSTOMER_INPUT", err.Error())
		}
		productID = payload.PaymentProductID
		if payload.AccountOnFileID != "" {
			if _, ok := s.token(payload.AccountOnFileID); !ok {
				return gateway.PaymentResult{}, rejected(http.StatusNotFound, "UNKNOWN_TOKEN", "Unknown token.")
			}
		} else if payload.Tokenize {
			newToken = s.storeToken(productID, payload.value("cardNumber"), payload.value("expiryDate"), payload.value("cardholderName"))
		}
	case req.CardPaymentMethodSpecificInput != nil:
		tok, ok := s.token(req.CardPaymentMethodSpecificInput.Token)
		if !ok {
			return gateway.PaymentResult{}, rejected(http.StatusNotFound, "UNKNOWN_TOKEN", "Unknown token.")
		}
		productID = tok.PaymentProductID
	default:
		return gateway.PaymentResult{}, rejected(http.StatusBadRequest, "PARAMETER_NOT_FOUND_IN_REQUEST", "no payment method specific input")
	}

	body := map[string]any{
		"payment": map[string]any{
			"id":     uuid.NewString(),
			"status": "CAPTURED",
			"paymentOutput": map[string]any{
				"amountOfMoney":    req.Order.AmountOfMoney,
				"paymentMethod":    "card",
				"paymentProductId": productID,
			},
			"statusOutput": map[string]any{"statusCategory": "COMPLETED", "isAuthorized": true},
		},
	}
	if newToken != "" {
		body["creationOutput"] = map[string]any{"token": newToken, "isNewToken": true}
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return gateway.PaymentResult{}, fmt.Errorf("marshal payment: %w", err)
	}
	return gateway.PaymentResult{Status: http.StatusCreated, Body: raw}, nil
}

func (s *Sandbox) GetToken(_ context.Context, tokenID string) (gateway.TokenResult, error) {
	tok, ok := s.token(tokenID)
	if !ok {
		return gateway.TokenResult{}, rejected(http.StatusNotFound, "UNKNOWN_TOKEN", "Unknown token.")
	}
	return tok, nil
}

// PublicKey returns the key id and the base64 DER public key for the client API.
func (s *Sandbox) PublicKey() (string, string, error) {
	der, err := x509.MarshalPKIXPublicKey(&s.key.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("marshal public key: %w", err)
	}
	return s.keyID, base64.StdEncoding.EncodeToString(der), nil
}

// Products lists the catalog; with accounts on file for every stored token.
func (s *Sandbox) Products() []payment.Product {
	products := catalog()

	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range products {
		for _, tok := range s.tokens {
			if tok.PaymentProductID == products[i].ID && tok.Card != nil {
				products[i].AccountsOnFile = append(products[i].AccountsOnFile, accountOnFile(tok, s.tokenCards[tok.ID]))
			}
		}
		slices.SortFunc(products[i].AccountsOnFile, func(a, b payment.AccountOnFile) int {
			return strings.Compare(a.ID, b.ID)
		})
	}
	return products
}

func (s *Sandbox) Product(id int) (payment.Product, bool) {
	for _, p := range s.Products() {
		if p.ID == id {
			return p, true
		}
	}
	return payment.Product{}, false
}

func (s *Sandbox) IinDetails(bin string, pctx payment.Context) (payment.IinDetails, bool) {
	productID, ok := productForBin(bin)
	if !ok {
		return payment.IinDetails{}, false
	}
	return payment.IinDetails{
		PaymentProductID:   productID,
		CountryCode:        countryForBin(bin),
		IsAllowedInContext: productID != productAmex || pctx.AmountOfMoney.CurrencyCode != "JPY",
	}, true
}

// CurrencyConversion offers a USD conversion for US cards at a fixed rate.
func (s *Sandbox) CurrencyConversion(bin string, amount payment.AmountOfMoney) payment.CurrencyConversion {
	if countryForBin(bin) != "US" || amount.CurrencyCode == "USD" {
		return payment.CurrencyConversion{
			Result: &payment.ConversionResult{Result: "NO_RATE", ResultReason: "card currency equals transaction currency"},
		}
	}

	const rate = 1.0825
	return payment.CurrencyConversion{
		DccSessionID: uuid.NewString(),
		Proposal: &payment.ConversionProposal{
			BaseAmount:   amount,
			TargetAmount: payment.AmountOfMoney{Amount: int64(math.Round(float64(amount.Amount) * rate)), CurrencyCode: "USD"},
			Rate:         payment.ConversionRate{ExchangeRate: rate, InvertedExchangeRate: math.Round(1/rate*1e6) / 1e6},
		},
		Result: &payment.ConversionResult{Result: "ALLOWED", ResultReason: "rate available"},
	}
}

// Surcharge charges 1.5% plus 10 minor units on card products.
func (s *Sandbox) Surcharge(bin string, productID int, amount payment.AmountOfMoney) payment.SurchargeCalculation {
	if productID == 0 {
		productID, _ = productForBin(bin)
	}
	if productID == 0 {
		return payment.SurchargeCalculation{Surcharges: []payment.Surcharge{{Result: "NO_SURCHARGE", NetAmount: amount}}}
	}

	fee := int64(math.Round(float64(amount.Amount)*0.015)) + 10
	return payment.SurchargeCalculation{Surcharges: []payment.Surcharge{{
		PaymentProductID: productID,
		Result:           payment.SurchargeOK,
		NetAmount:        amount,
		SurchargeAmount:  payment.AmountOfMoney{Amount: fee, CurrencyCode: amount.CurrencyCode},
		TotalAmount:      payment.AmountOfMoney{Amount: amount.Amount + fee, CurrencyCode: amount.CurrencyCode},
		SurchargeRate:    &payment.SurchargeRate{SurchargeProductTypeID: "sandbox", AdValoremRate: 1.5, SpecificRate: 10},
	}}}
}

func (s *Sandbox) decrypt(compact string) (decryptedPayload, error) {
	jwe, err := jose.ParseEncrypted(compact, []jose.KeyAlgorithm{jose.RSA_OAEP}, []jose.ContentEncryption{jose.A256CBC_HS512})
	if err != nil {
		return decryptedPayload{}, fmt.Errorf("parse jwe: %w", err)
	}
	plaintext, err := jwe.Decrypt(s.key)
	if err != nil {
		return decryptedPayload{}, fmt.Errorf("decrypt jwe: %w", err)
	}

	var out decryptedPayload
	if err := json.Unmarshal(plaintext, &out); err != nil {
		return decryptedPayload{}, fmt.Errorf("decode payload: %w", err)
	}
	return out, nil
}

func (s *Sandbox) token(id string) (gateway.TokenResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tok, ok := s.tokens[id]
	return tok, ok
}

func (s *Sandbox) storeToken(productID int, cardNumber, expiry, holder string) string {
	last4 := cardNumber
	if len(last4) > 4 {
		last4 = last4[len(last4)-4:]
	}
	tok := gateway.TokenResult{
		ID:               uuid.NewString(),
		PaymentProductID: productID,
		Card:             &gateway.TokenAlias{Alias: strings.Repeat("*", 12) + last4},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tok.ID] = tok
	s.tokenCards[tok.ID] = tokenCard{expiry: expiry, holder: holder}
	return tok.ID
}

type tokenCard struct {
	expiry string
	holder string
}

func accountOnFile(tok gateway.TokenResult, card tokenCard) payment.AccountOnFile {
	aof := payment.AccountOnFile{
		ID:               tok.ID,
		PaymentProductID: tok.PaymentProductID,
		Attributes: []payment.AccountOnFileAttribute{
			{Key: "alias", Value: tok.Card.Alias, Status: payment.AttributeReadOnly},
		},
		DisplayHints: payment.AccountOnFileDisplayHints{
			LabelTemplate: []payment.LabelTemplateElement{{AttributeKey: "alias"}},
		},
	}
	if card.expiry != "" {
		aof.Attributes = append(aof.Attributes, payment.AccountOnFileAttribute{Key: "expiryDate", Value: card.expiry, Status: payment.AttributeReadOnly})
	}
	if card.holder != "" {
		aof.Attributes = append(aof.Attributes, payment.AccountOnFileAttribute{Key: "cardholderName", Value: card.holder, Status: payment.AttributeReadOnly})
	}
	return aof
}

func rejected(status int, id, message string) *gateway.ResponseError {
	body, _ := json.Marshal(map[string]any{
		"errorId": uuid.NewString(),
		"errors":  []map[string]any{{"id": id, "httpStatusCode": status, "message": message}},
	})
	return &gateway.ResponseError{Status: status, Body: body}
}
