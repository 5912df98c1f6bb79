package payment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentRequest_MarshalJSON(t *testing.T) {
	ctx := DefaultContext()

	testCases := []struct {
		name     string
		req      CreatePaymentRequest
		expected string
	}{
		{
			name: "card data merged into context",
			req: CreatePaymentRequest{
				Context:  &ctx,
				CardData: &CardPaymentSpecificData{Token: "t1", CVV: "123", PaymentProductID: 1},
			},
			expected: `{"amountOfMoney":{"amount":1000,"currencyCode":"EUR"},"countryCode":"BE","isRecurring":false,"token":"t1","cvv":"123","paymentProductId":1}`,
		},
		{
			name: "encrypted data",
			req: CreatePaymentRequest{
				Context:       &ctx,
				EncryptedData: "eyJhbGciOi",
			},
			expected: `{"amountOfMoney":{"amount":1000,"currencyCode":"EUR"},"countryCode":"BE","isRecurring":false,"data":"eyJhbGciOi"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := json.Marshal(tc.req)

			require.NoError(t, err)
			assert.JSONEq(t, tc.expected, string(out))
		})
	}
}

func TestCreatePaymentRequest_NoData(t *testing.T) {
	_, err := json.Marshal(CreatePaymentRequest{})

	assert.ErrorIs(t, err, ErrNoPaymentData)
}

func TestCreatePaymentRequest_UnmarshalJSON(t *testing.T) {
	var req CreatePaymentRequest
	err := json.Unmarshal([]byte(`{"amountOfMoney":{"amount":1000,"currencyCode":"EUR"},"countryCode":"BE","token":"t1","cvv":"123","paymentProductId":1}`), &req)

	require.NoError(t, err)
	require.NotNil(t, req.CardData)
	assert.Equal(t, CardPaymentSpecificData{Token: "t1", CVV: "123", PaymentProductID: 1}, *req.CardData)
	assert.Equal(t, "BE", req.Context.CountryCode)
	assert.Empty(t, req.EncryptedData)
}
