package merchant

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"PayFlow/internal/domain/gateway"
	"PayFlow/internal/domain/payment"

	"github.com/go-jose/go-jose/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSandbox(t *testing.T) *Sandbox {
	t.Helper()
	s, err := NewSandbox("http://localhost:5777/client", "http://localhost:5777/assets/")
	require.NoError(t, err)
	return s
}

func encryptFor(t *testing.T, s *Sandbox, payload map[string]any) string {
	t.Helper()
	plaintext, err := json.Marshal(payload)
	require.NoError(t, err)

	enc, err := jose.NewEncrypter(jose.A256CBC_HS512, jose.Recipient{Algorithm: jose.RSA_OAEP, Key: &s.key.PublicKey, KeyID: s.keyID}, nil)
	require.NoError(t, err)
	jwe, err := enc.Encrypt(plaintext)
	require.NoError(t, err)
	compact, err := jwe.CompactSerialize()
	require.NoError(t, err)
	return compact
}

func TestSandbox_SessionReportsUnknownTokens(t *testing.T) {
	s := newTestSandbox(t)

	res, err := s.CreateSession(context.Background(), gateway.SessionRequest{Tokens: []string{"gone"}})

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5777/client", res.ClientAPIURL)
	assert.Equal(t, []string{"gone"}, res.InvalidTokens)
	assert.True(t, s.Authorized(res.ClientSessionID, res.CustomerID))
	assert.False(t, s.Authorized(res.ClientSessionID, "someone-else"))

	s.ExpireSession(res.ClientSessionID)
	assert.False(t, s.Authorized(res.ClientSessionID, res.CustomerID))
}

func TestSandbox_TokenizeThenPayWithToken(t *testing.T) {
	ctx := context.Background()
	s := newTestSandbox(t)
	order := gateway.Order{AmountOfMoney: payment.AmountOfMoney{Amount: 1000, CurrencyCode: "EUR"}}

	// given a payment that asks for tokenization
	encrypted := encryptFor(t, s, map[string]any{
		"paymentProductId": 1,
		"tokenize":         true,
		"paymentValues": []map[string]string{
			{"key": "cardNumber", "value": "4111111111111111"},
			{"key": "expiryDate", "value": "1230"},
		},
	})

	// when
	first, err := s.CreatePayment(ctx, gateway.PaymentRequest{Order: order, EncryptedCustomerInput: encrypted})
	require.NoError(t, err)
	token := first.CreationToken()

	second, secondErr := s.CreatePayment(ctx, gateway.PaymentRequest{
		Order:                          order,
		CardPaymentMethodSpecificInput: &gateway.CardPaymentMethodSpecificInput{Token: token, Card: gateway.CardInput{CVV: "123"}},
	})

	// then
	assert.Equal(t, http.StatusCreated, first.Status)
	require.NotEmpty(t, token)
	require.NoError(t, secondErr)
	assert.Empty(t, second.CreationToken())

	tok, err := s.GetToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "************1111", tok.Card.Alias)

	visa, ok := s.Product(1)
	require.True(t, ok)
	require.Len(t, visa.AccountsOnFile, 1)
	aof := visa.AccountsOnFile[0]
	assert.Equal(t, token, aof.ID)
	expiry, ok := aof.Attribute("expiryDate")
	require.True(t, ok)
	assert.Equal(t, "1230", expiry.Value)
}

func TestSandbox_CreatePaymentRejections(t *testing.T) {
	order := gateway.Order{AmountOfMoney: payment.AmountOfMoney{Amount: 1000, CurrencyCode: "EUR"}}

	testCases := []struct {
		name       string
		req        gateway.PaymentRequest
		wantStatus int
	}{
		{
			name:       "zero amount",
			req:        gateway.PaymentRequest{EncryptedCustomerInput: "x"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "garbage payload",
			req:        gateway.PaymentRequest{Order: order, EncryptedCustomerInput: "not-a-jwe"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown token",
			req:        gateway.PaymentRequest{Order: order, CardPaymentMethodSpecificInput: &gateway.CardPaymentMethodSpecificInput{Token: "nope"}},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "no input",
			req:        gateway.PaymentRequest{Order: order},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newTestSandbox(t).CreatePayment(context.Background(), tc.req)

			var respErr *gateway.ResponseError
			require.ErrorAs(t, err, &respErr)
			assert.Equal(t, tc.wantStatus, respErr.Status)
		})
	}
}

func TestSandbox_ClientData(t *testing.T) {
	s := newTestSandbox(t)
	eur := payment.AmountOfMoney{Amount: 1000, CurrencyCode: "EUR"}

	details, ok := s.IinDetails("411111", payment.DefaultContext())
	require.True(t, ok)
	assert.Equal(t, 1, details.PaymentProductID)

	_, ok = s.IinDetails("999999", payment.DefaultContext())
	assert.False(t, ok)

	quote := s.CurrencyConversion("40000000", eur)
	require.NotNil(t, quote.Proposal)
	assert.Equal(t, []string{"ALLOWED (rate available)", "Rate: 1.0825"}, quote.Lines())

	calc := s.Surcharge("411111", 0, eur)
	require.Len(t, calc.Applicable(), 1)
	assert.Equal(t, int64(25), calc.Surcharges[0].SurchargeAmount.Amount)

	keyID, pub, err := s.PublicKey()
	require.NoError(t, err)
	assert.NotEmpty(t, keyID)
	assert.NotEmpty(t, pub)
}
