package payment

import "PayFlow/pkg/money"

var defaultGooglePayNetworks = []string{"VISA", "MASTERCARD"}

const defaultGooglePayGateway = "example"

type GooglePayCardParameters struct {
	AllowedAuthMethods  []string `json:"allowedAuthMethods"`
	AllowedCardNetworks []string `json:"allowedCardNetworks"`
}

type GooglePayTokenizationSpecification struct {
	Type       string            `json:"type"`
	Parameters map[string]string `json:"parameters"`
}

type GooglePayPaymentMethod struct {
	Type                      string                             `json:"type"`
	Parameters                GooglePayCardParameters            `json:"parameters"`
	TokenizationSpecification GooglePayTokenizationSpecification `json:"tokenizationSpecification"`
}

type GooglePayMerchantInfo struct {
	MerchantName string `json:"merchantName"`
	MerchantID   string `json:"merchantId"`
}

type GooglePayTransactionInfo struct {
	TotalPriceStatus string `json:"totalPriceStatus"`
	TotalPrice       string `json:"totalPrice"`
	CurrencyCode     string `json:"currencyCode"`
	CountryCode      string `json:"countryCode"`
}

// GooglePayRequest is the PaymentDataRequest handed to the Google Pay button.
type GooglePayRequest struct {
	APIVersion            int                      `json:"apiVersion"`
	APIVersionMinor       int                      `json:"apiVersionMinor"`
	AllowedPaymentMethods []GooglePayPaymentMethod `json:"allowedPaymentMethods"`
	MerchantInfo          GooglePayMerchantInfo    `json:"merchantInfo"`
	TransactionInfo       GooglePayTransactionInfo `json:"transactionInfo"`
}

// NewGooglePayRequest builds the request from the product's gateway data and the context total.
func NewGooglePayRequest(product Product, ctx Context) GooglePayRequest {
	networks := defaultGooglePayNetworks
	gateway := defaultGooglePayGateway
	if sd := product.PaymentProduct320SpecificData; sd != nil {
		if len(sd.Networks) > 0 {
			networks = sd.Networks
		}
		if sd.Gateway != "" {
			gateway = sd.Gateway
		}
	}

	return GooglePayRequest{
		APIVersion:      2,
		APIVersionMinor: 0,
		AllowedPaymentMethods: []GooglePayPaymentMethod{
			{
				Type: "CARD",
				Parameters: GooglePayCardParameters{
					AllowedAuthMethods:  []string{"PAN_ONLY", "CRYPTOGRAM_3DS"},
					AllowedCardNetworks: networks,
				},
				TokenizationSpecification: GooglePayTokenizationSpecification{
					Type: "PAYMENT_GATEWAY",
					Parameters: map[string]string{
						"gateway":           gateway,
						"gatewayMerchantId": "DemoMerchant",
					},
				},
			},
		},
		MerchantInfo: GooglePayMerchantInfo{
			MerchantName: "Demo merchant",
			MerchantID:   "demoMerchant",
		},
		TransactionInfo: GooglePayTransactionInfo{
			TotalPriceStatus: "FINAL",
			TotalPrice:       money.FormatAmountForGooglePay(ctx.AmountOfMoney.CurrencyCode, ctx.AmountOfMoney.Amount),
			CurrencyCode:     ctx.AmountOfMoney.CurrencyCode,
			CountryCode:      ctx.CountryCode,
		},
	}
}
