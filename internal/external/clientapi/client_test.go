package clientapi

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"PayFlow/internal/apperror"
	"PayFlow/internal/domain/payment"

	"github.com/go-jose/go-jose/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, handler http.HandlerFunc) *Session {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	sess, err := NewFactory(5 * time.Second).NewSession(payment.SessionDetails{
		AssetURL:        server.URL + "/assets/",
		ClientAPIURL:    server.URL + "/",
		ClientSessionID: "cs-1",
		CustomerID:      "cust-1",
	})
	require.NoError(t, err)
	return sess.(*Session)
}

func TestFactory_NewSession(t *testing.T) {
	testCases := []struct {
		name    string
		details payment.SessionDetails
		wantErr bool
	}{
		{
			name: "complete details",
			details: payment.SessionDetails{
				AssetURL: "https://assets.example.com", ClientAPIURL: "https://api.example.com",
				ClientSessionID: "cs", CustomerID: "c",
			},
		},
		{
			name: "relative client api url",
			details: payment.SessionDetails{
				AssetURL: "https://assets.example.com", ClientAPIURL: "api.example.com",
				ClientSessionID: "cs", CustomerID: "c",
			},
			wantErr: true,
		},
		{
			name:    "empty details",
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFactory(0).NewSession(tc.details)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSession)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSession_GetBasicPaymentItems(t *testing.T) {
	sess := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/cust-1/products", r.URL.Path)
		assert.Equal(t, "GCS v1Client:cs-1", r.Header.Get("Authorization"))
		assert.Equal(t, "BE", r.URL.Query().Get("countryCode"))
		assert.Equal(t, "EUR", r.URL.Query().Get("currencyCode"))
		assert.Equal(t, "1000", r.URL.Query().Get("amount"))
		assert.Equal(t, "false", r.URL.Query().Get("isRecurring"))
		assert.Equal(t, "fields", r.URL.Query().Get("hide"))

		_, _ = w.Write([]byte(`{"paymentProducts":[
			{"id":1,"paymentMethod":"card","accountsOnFile":[{"id":"t1","paymentProductId":1}]},
			{"id":3,"paymentMethod":"card","accountsOnFile":[{"id":"t1","paymentProductId":1}]}
		]}`))
	})

	items, err := sess.GetBasicPaymentItems(context.Background(), payment.DefaultContext())

	require.NoError(t, err)
	assert.Len(t, items.PaymentProducts, 2)
	assert.Len(t, items.AccountsOnFile, 1)
}

func TestSession_ErrorResponses(t *testing.T) {
	testCases := []struct {
		name         string
		status       int
		body         string
		wantSentinel error
		wantMessages []string
	}{
		{
			name:         "forbidden",
			status:       http.StatusForbidden,
			body:         `{"errorId":"e1","errors":[{"code":"9007","id":"ACCESS_TO_MERCHANT_NOT_ALLOWED","message":"session expired"}]}`,
			wantSentinel: ErrForbidden,
			wantMessages: []string{"session expired"},
		},
		{
			name:         "not found",
			status:       http.StatusNotFound,
			body:         `{"errors":[{"id":"UNKNOWN_PRODUCT_ID"}]}`,
			wantSentinel: ErrNotFound,
			wantMessages: []string{"UNKNOWN_PRODUCT_ID"},
		},
		{
			name:         "server error without body",
			status:       http.StatusBadGateway,
			wantSentinel: ErrServiceUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sess := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := sess.GetPaymentProduct(context.Background(), 1, payment.DefaultContext())

			var upstream *apperror.UpstreamError
			require.ErrorAs(t, err, &upstream)
			assert.Equal(t, tc.status, upstream.Status)
			assert.Equal(t, tc.wantMessages, upstream.Messages)
			assert.ErrorIs(t, err, tc.wantSentinel)
		})
	}
}

func TestSession_GetIinDetails(t *testing.T) {
	testCases := []struct {
		name       string
		cardNumber string
		status     int
		body       string
		wantStatus string
		wantCalled bool
	}{
		{
			name:       "too few digits",
			cardNumber: "4111",
			wantStatus: payment.IinNotEnoughDigits,
		},
		{
			name:       "supported",
			cardNumber: "4111111111111111",
			status:     http.StatusOK,
			body:       `{"paymentProductId":1,"isAllowedInContext":true,"countryCode":"BE"}`,
			wantStatus: payment.IinSupported,
			wantCalled: true,
		},
		{
			name:       "not allowed in context",
			cardNumber: "4111111111111111",
			status:     http.StatusOK,
			body:       `{"paymentProductId":1,"isAllowedInContext":false}`,
			wantStatus: payment.IinExistingButNotAllowed,
			wantCalled: true,
		},
		{
			name:       "unknown bin",
			cardNumber: "999999",
			status:     http.StatusNotFound,
			body:       `{"errors":[{"id":"UNKNOWN_IIN"}]}`,
			wantStatus: payment.IinUnknown,
			wantCalled: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			sess := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
				called = true
				assert.Equal(t, "/v1/cust-1/services/getIINdetails", r.URL.Path)

				var req iinRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.LessOrEqual(t, len(req.Bin), 8)

				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			details, err := sess.GetIinDetails(context.Background(), tc.cardNumber, payment.DefaultContext())

			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, details.Status)
			assert.Equal(t, tc.wantCalled, called)
		})
	}
}

func TestSession_Surcharge(t *testing.T) {
	sess := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/cust-1/services/surchargecalculation", r.URL.Path)

		var req surchargeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "411111", req.CardSource.Card.CardNumber)
		assert.Equal(t, int64(1000), req.AmountOfMoney.Amount)

		_, _ = w.Write([]byte(`{"surcharges":[{"paymentProductId":1,"result":"OK","surchargeAmount":{"amount":50,"currencyCode":"EUR"}}]}`))
	})

	calc, err := sess.GetSurchargeCalculation(context.Background(),
		payment.AmountOfMoney{Amount: 1000, CurrencyCode: "EUR"},
		payment.CardSource{PartialCreditCardNumber: "411111", PaymentProductID: 1})

	require.NoError(t, err)
	require.Len(t, calc.Applicable(), 1)
	assert.Equal(t, int64(50), calc.Surcharges[0].SurchargeAmount.Amount)
}

func TestEncryptor_Encrypt(t *testing.T) {
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)

	keyCalls := 0
	sess := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/cust-1/crypto/publickey", r.URL.Path)
		keyCalls++
		_ = json.NewEncoder(w).Encode(publicKeyResponse{KeyID: "key-1", PublicKey: base64.StdEncoding.EncodeToString(der)})
	})

	req := payment.NewRequest(payment.Product{
		ID: 1,
		Fields: []payment.Field{
			{ID: "cardNumber", DisplayHints: payment.FieldDisplayHints{Mask: "{{9999}} {{9999}} {{9999}} {{9999}}"}},
		},
	})
	req.SetValue("cardNumber", "4111 1111 1111 1111")
	req.SetValue("cvv", "123")
	req.SetTokenize(true)

	// when
	first, err := sess.Encryptor().Encrypt(context.Background(), req)
	require.NoError(t, err)
	_, err = sess.Encryptor().Encrypt(context.Background(), req)
	require.NoError(t, err)

	// then
	assert.Equal(t, 1, keyCalls)

	jwe, err := jose.ParseEncrypted(first, []jose.KeyAlgorithm{jose.RSA_OAEP}, []jose.ContentEncryption{jose.A256CBC_HS512})
	require.NoError(t, err)
	assert.Equal(t, "key-1", jwe.Header.KeyID)

	plaintext, err := jwe.Decrypt(priv)
	require.NoError(t, err)

	var payload encryptedPayload
	require.NoError(t, json.Unmarshal(plaintext, &payload))
	assert.Equal(t, "cs-1", payload.ClientSessionID)
	assert.Equal(t, 1, payload.PaymentProductID)
	assert.True(t, payload.Tokenize)
	assert.NotEmpty(t, payload.Nonce)
	assert.Equal(t, []paymentValue{
		{Key: "cardNumber", Value: "4111111111111111"},
		{Key: "cvv", Value: "123"},
	}, payload.PaymentValues)
}
