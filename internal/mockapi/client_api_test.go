package mockapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"PayFlow/internal/domain/payment"
	"PayFlow/internal/external/clientapi"
	"PayFlow/internal/external/merchant"
	mockapiclient "PayFlow/internal/external/mockapi"
	"PayFlow/internal/store"
	"PayFlow/pkg/health"
	"PayFlow/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSandboxServer runs the mock API in sandbox mode on a real listener so the
// client API URL handed out in sessions points back at it.
func newSandboxServer(t *testing.T) (*httptest.Server, *merchant.Sandbox) {
	t.Helper()

	var handler http.Handler
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	sandbox, err := merchant.NewSandbox(srv.URL+"/client", srv.URL+"/assets/")
	require.NoError(t, err)

	tokens := NewTokenStore(store.NewMemoryBackend())
	engine := NewGinEngine(logger.Nop(), EngineOptions{})
	NewRouter(
		NewMerchantHandler(sandbox, tokens, logger.Nop()),
		NewClientAPIHandler(sandbox, logger.Nop()),
		health.NewRegistry(health.NewStorageChecker("tokens", tokens)),
	).SetUp(engine)
	handler = engine

	return srv, sandbox
}

func TestClientAPI_RejectsForeignSession(t *testing.T) {
	testCases := []struct {
		name       string
		withHeader bool
		customer   func(details payment.SessionDetails) string
	}{
		{
			name:     "missing header",
			customer: func(d payment.SessionDetails) string { return d.CustomerID },
		},
		{
			name:       "session of another customer",
			withHeader: true,
			customer:   func(payment.SessionDetails) string { return "someone-else" },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			srv, _ := newSandboxServer(t)
			details, err := mockapiclient.New(srv.URL, time.Second).GetSession(context.Background())
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodGet, srv.URL+"/client/v1/"+tc.customer(details)+"/products", nil)
			require.NoError(t, err)
			if tc.withHeader {
				req.Header.Set("Authorization", "GCS v1Client:"+details.ClientSessionID)
			}

			// when
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			_ = resp.Body.Close()

			// then
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		})
	}
}

func TestSandbox_EndToEnd(t *testing.T) {
	ctx := context.Background()
	srv, sandbox := newSandboxServer(t)
	api := mockapiclient.New(srv.URL, 5*time.Second)
	pctx := payment.Context{
		AmountOfMoney: payment.AmountOfMoney{Amount: 1000, CurrencyCode: "EUR"},
		CountryCode:   "BE",
	}

	// a fresh session against the sandbox client API
	details, err := api.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/client", details.ClientAPIURL)

	session, err := clientapi.NewFactory(5 * time.Second).NewSession(details)
	require.NoError(t, err)

	items, err := session.GetBasicPaymentItems(ctx, pctx)
	require.NoError(t, err)
	require.NotEmpty(t, items.PaymentProducts)
	for _, p := range items.PaymentProducts {
		assert.Empty(t, p.Fields, "basic items hide fields")
	}

	visa, err := session.GetPaymentProduct(ctx, 1, pctx)
	require.NoError(t, err)
	assert.NotEmpty(t, visa.Fields)

	iin, err := session.GetIinDetails(ctx, "41111111", pctx)
	require.NoError(t, err)
	assert.Equal(t, payment.IinSupported, iin.Status)
	assert.Equal(t, 1, iin.PaymentProductID)

	unknown, err := session.GetIinDetails(ctx, "99999999", pctx)
	require.NoError(t, err)
	assert.Equal(t, payment.IinUnknown, unknown.Status)

	surcharge, err := session.GetSurchargeCalculation(ctx, pctx.AmountOfMoney, payment.CardSource{PartialCreditCardNumber: "41111111"})
	require.NoError(t, err)
	require.Len(t, surcharge.Surcharges, 1)
	assert.Equal(t, int64(25), surcharge.Surcharges[0].SurchargeAmount.Amount)

	// pay with an encrypted card and ask for a token
	req := payment.NewRequest(visa)
	req.SetValue("cardNumber", "4111111111111111")
	req.SetValue("expiryDate", "1230")
	req.SetValue("cvv", "123")
	req.SetValue("cardholderName", "Wile E. Coyote")
	req.SetTokenize(true)

	encrypted, err := session.Encryptor().Encrypt(ctx, req)
	require.NoError(t, err)

	body, err := api.CreatePayment(ctx, payment.CreatePaymentRequest{Context: &pctx, EncryptedData: encrypted})
	require.NoError(t, err)
	assert.Contains(t, string(body), "creationOutput")

	// the token is listed and offered as an account on file in the next session
	tokens, err := api.Tokens(ctx, "merchant-1")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "card", tokens[0].Type)
	assert.Equal(t, "************1111", tokens[0].Label)

	next, err := api.GetSession(ctx)
	require.NoError(t, err)
	nextSession, err := clientapi.NewFactory(5 * time.Second).NewSession(next)
	require.NoError(t, err)
	items, err = nextSession.GetBasicPaymentItems(ctx, pctx)
	require.NoError(t, err)
	require.Len(t, items.AccountsOnFile, 1)
	assert.Equal(t, tokens[0].ID, items.AccountsOnFile[0].ID)

	// an expired session is refused with 403
	sandbox.ExpireSession(next.ClientSessionID)
	_, err = nextSession.GetPaymentProduct(ctx, 1, pctx)
	assert.ErrorIs(t, err, clientapi.ErrForbidden)
}
