package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"PayFlow/internal/domain/gateway"
	"PayFlow/internal/store"
	"PayFlow/pkg/health"
	"PayFlow/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	engine   *gin.Engine
	provider *gateway.MockProvider
	tokens   *TokenStore
}

func newTestServer(t *testing.T, opts EngineOptions, seed ...string) testServer {
	t.Helper()
	ctrl := gomock.NewController(t)

	provider := gateway.NewMockProvider(ctrl)
	tokens := NewTokenStore(store.NewMemoryBackend())
	for _, tok := range seed {
		require.NoError(t, tokens.Add(context.Background(), tok))
	}

	engine := NewGinEngine(logger.Nop(), opts)
	NewRouter(NewMerchantHandler(provider, tokens, logger.Nop()), nil, health.NewRegistry()).SetUp(engine)

	return testServer{engine: engine, provider: provider, tokens: tokens}
}

func (s testServer) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func TestCreateSession_DropsInvalidTokens(t *testing.T) {
	// given
	srv := newTestServer(t, EngineOptions{}, "t1", "t2")
	srv.provider.EXPECT().
		CreateSession(gomock.Any(), gateway.SessionRequest{Tokens: []string{"t1", "t2"}}).
		Return(gateway.SessionResult{
			AssetURL:        "https://assets.test/",
			ClientAPIURL:    "https://client.test",
			ClientSessionID: "cs-1",
			CustomerID:      "cust-1",
			InvalidTokens:   []string{"t2"},
		}, nil)

	// when
	w := srv.do(http.MethodGet, "/session", "")

	// then
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"clientSessionId":"cs-1"`)

	left, err := srv.tokens.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, left)
}

func TestCreateSession_RelaysProviderError(t *testing.T) {
	// given
	srv := newTestServer(t, EngineOptions{})
	srv.provider.EXPECT().CreateSession(gomock.Any(), gomock.Any()).
		Return(gateway.SessionResult{}, &gateway.ResponseError{Status: http.StatusUnauthorized, Body: []byte(`{"errors":[{"id":"AUTH"}]}`)})

	// when
	w := srv.do(http.MethodGet, "/session", "")

	// then
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"errors":[{"id":"AUTH"}]}`, w.Body.String())
}

func TestCreatePayment(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		result       gateway.PaymentResult
		err          error
		check        func(t *testing.T, req gateway.PaymentRequest)
		expectedCode int
		expectTokens []string
	}{
		{
			name:   "encrypted payload is forwarded and the new token remembered",
			body:   `{"amountOfMoney":{"amount":1000,"currencyCode":"EUR"},"countryCode":"BE","isRecurring":false,"data":"jwe"}`,
			result: gateway.PaymentResult{Status: http.StatusCreated, Body: []byte(`{"payment":{"id":"p1"},"creationOutput":{"token":"new-token"}}`)},
			check: func(t *testing.T, req gateway.PaymentRequest) {
				assert.Equal(t, "jwe", req.EncryptedCustomerInput)
				assert.Nil(t, req.CardPaymentMethodSpecificInput)
				assert.Equal(t, int64(1000), req.Order.AmountOfMoney.Amount)
				assert.Equal(t, "BE", req.Order.Customer.BillingAddress.CountryCode)
			},
			expectedCode: http.StatusCreated,
			expectTokens: []string{"new-token"},
		},
		{
			name:   "token payment carries the cvv",
			body:   `{"amountOfMoney":{"amount":2599,"currencyCode":"USD"},"countryCode":"US","token":"t1","cvv":"123","paymentProductId":1}`,
			result: gateway.PaymentResult{Status: http.StatusCreated, Body: []byte(`{"payment":{"id":"p2"}}`)},
			check: func(t *testing.T, req gateway.PaymentRequest) {
				require.NotNil(t, req.CardPaymentMethodSpecificInput)
				assert.Equal(t, "t1", req.CardPaymentMethodSpecificInput.Token)
				assert.Equal(t, "123", req.CardPaymentMethodSpecificInput.Card.CVV)
				assert.Equal(t, 1, req.CardPaymentMethodSpecificInput.PaymentProductID)
			},
			expectedCode: http.StatusCreated,
			expectTokens: []string{},
		},
		{
			name:         "provider rejection is relayed",
			body:         `{"amountOfMoney":{"amount":1000,"currencyCode":"EUR"},"countryCode":"BE","data":"jwe"}`,
			err:          &gateway.ResponseError{Status: http.StatusPaymentRequired, Body: []byte(`{"errors":[{"message":"declined"}]}`)},
			expectedCode: http.StatusPaymentRequired,
			expectTokens: []string{},
		},
		{
			name:         "transport failure is a bad gateway",
			body:         `{"amountOfMoney":{"amount":1000,"currencyCode":"EUR"},"countryCode":"BE","data":"jwe"}`,
			err:          errors.New("dial tcp: refused"),
			expectedCode: http.StatusBadGateway,
			expectTokens: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			srv := newTestServer(t, EngineOptions{})
			srv.provider.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, req gateway.PaymentRequest) (gateway.PaymentResult, error) {
					if tc.check != nil {
						tc.check(t, req)
					}
					return tc.result, tc.err
				})

			// when
			w := srv.do(http.MethodPost, "/payment", tc.body)

			// then
			assert.Equal(t, tc.expectedCode, w.Code)
			tokens, err := srv.tokens.List(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.expectTokens, tokens)
		})
	}
}

func TestCreatePayment_InvalidJSON(t *testing.T) {
	srv := newTestServer(t, EngineOptions{})

	w := srv.do(http.MethodPost, "/payment", `{"amountOfMoney":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTokens(t *testing.T) {
	// given
	srv := newTestServer(t, EngineOptions{}, "card", "gone", "bare", "wallet")
	srv.provider.EXPECT().GetToken(gomock.Any(), "card").
		Return(gateway.TokenResult{ID: "card", PaymentProductID: 1, Card: &gateway.TokenAlias{Alias: "************1111"}}, nil)
	srv.provider.EXPECT().GetToken(gomock.Any(), "gone").
		Return(gateway.TokenResult{}, &gateway.ResponseError{Status: http.StatusNotFound})
	srv.provider.EXPECT().GetToken(gomock.Any(), "bare").
		Return(gateway.TokenResult{ID: "bare", PaymentProductID: 1}, nil)
	srv.provider.EXPECT().GetToken(gomock.Any(), "wallet").
		Return(gateway.TokenResult{ID: "wallet", PaymentProductID: 840, EWallet: &gateway.TokenAlias{Alias: "jane@paypal"}}, nil)

	// when
	w := srv.do(http.MethodGet, "/tokens/merchant-1", "")

	// then
	require.Equal(t, http.StatusOK, w.Code)
	var got []TokenListing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []TokenListing{
		{ID: "card", Type: "card", Label: "************1111", ProductID: 1},
		{ID: "wallet", Type: "eWallet", Label: "jane@paypal", ProductID: 840},
	}, got)
}

func TestListTokens_Empty(t *testing.T) {
	srv := newTestServer(t, EngineOptions{})

	w := srv.do(http.MethodGet, "/tokens/merchant-1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestFallback(t *testing.T) {
	testCases := []struct {
		name         string
		method       string
		path         string
		expectedCode int
		expectedBody string
	}{
		{name: "options anywhere", method: http.MethodOptions, path: "/anything", expectedCode: http.StatusOK, expectedBody: `{}`},
		{name: "unknown get", method: http.MethodGet, path: "/nope", expectedCode: http.StatusNotFound, expectedBody: `{"message":"Not found"}`},
		{name: "wrong method", method: http.MethodDelete, path: "/session", expectedCode: http.StatusNotFound, expectedBody: `{"message":"Not found"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, EngineOptions{})

			w := srv.do(tc.method, tc.path, "")

			assert.Equal(t, tc.expectedCode, w.Code)
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestInjectBadRequests(t *testing.T) {
	// given a roll that always fails
	srv := newTestServer(t, EngineOptions{With400: true, Roll: func() float64 { return 0.9 }})

	// when
	get := srv.do(http.MethodGet, "/session", "")
	options := srv.do(http.MethodOptions, "/session", "")

	// then
	assert.Equal(t, http.StatusBadRequest, get.Code)
	assert.Empty(t, get.Body.String())
	assert.Equal(t, http.StatusOK, options.Code)
}

func TestInjectBadRequests_PassesBelowThreshold(t *testing.T) {
	srv := newTestServer(t, EngineOptions{With400: true, Roll: func() float64 { return 0.5 }})

	w := srv.do(http.MethodGet, "/nope", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDevSwitches_SkipHealthAndMetrics(t *testing.T) {
	// given a roll that always fails and a delay far beyond the test deadline
	srv := newTestServer(t, EngineOptions{Delay: time.Hour, With400: true, Roll: func() float64 { return 0.9 }})

	for _, path := range []string{"/health/live", "/health/ready", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			// when
			w := srv.do(http.MethodGet, path, "")

			// then
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestCORS(t *testing.T) {
	testCases := []struct {
		name           string
		origin         string
		expectedOrigin string
	}{
		{name: "localhost http", origin: "http://localhost:3000", expectedOrigin: "http://localhost:3000"},
		{name: "localhost https", origin: "https://localhost:4200", expectedOrigin: "https://localhost:4200"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestServer(t, EngineOptions{})
			req := httptest.NewRequest(http.MethodGet, "/nope", nil)
			req.Header.Set("Origin", tc.origin)
			w := httptest.NewRecorder()

			srv.engine.ServeHTTP(w, req)

			assert.Equal(t, tc.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}

func TestCORS_RejectsForeignOrigin(t *testing.T) {
	srv := newTestServer(t, EngineOptions{})
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()

	srv.engine.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
