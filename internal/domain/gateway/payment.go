package gateway

import "PayFlow/internal/domain/payment"

type BrowserData struct {
	ColorDepth        int    `json:"colorDepth"`
	JavaEnabled       bool   `json:"javaEnabled"`
	JavaScriptEnabled bool   `json:"javaScriptEnabled"`
	ScreenHeight      string `json:"screenHeight"`
	ScreenWidth       string `json:"screenWidth"`
}

type Device struct {
	AcceptHeader             string      `json:"acceptHeader"`
	BrowserData              BrowserData `json:"browserData"`
	IPAddress                string      `json:"ipAddress"`
	Locale                   string      `json:"locale"`
	UserAgent                string      `json:"userAgent"`
	TimezoneOffsetUtcMinutes string      `json:"timezoneOffsetUtcMinutes"`
}

type ContactDetails struct {
	EmailAddress string `json:"emailAddress"`
	PhoneNumber  string `json:"phoneNumber"`
}

type BillingAddress struct {
	CountryCode string `json:"countryCode"`
}

type Customer struct {
	BillingAddress BillingAddress `json:"billingAddress"`
	ContactDetails ContactDetails `json:"contactDetails"`
	Device         Device         `json:"device"`
}

type ShippingMethod struct {
	Details string `json:"details"`
	Name    string `json:"name"`
	Speed   int    `json:"speed"`
	Type    string `json:"type"`
}

type Shipping struct {
	AddressIndicator string         `json:"addressIndicator"`
	EmailAddress     string         `json:"emailAddress"`
	FirstUsageDate   string         `json:"firstUsageDate"`
	IsFirstUsage     bool           `json:"isFirstUsage"`
	Method           ShippingMethod `json:"method"`
	Type             string         `json:"type"`
	ShippingCost     int64          `json:"shippingCost"`
	ShippingCostTax  int64          `json:"shippingCostTax"`
}

type Order struct {
	AmountOfMoney payment.AmountOfMoney `json:"amountOfMoney"`
	Customer      Customer              `json:"customer"`
	Shipping      Shipping              `json:"shipping"`
}

type CardInput struct {
	CVV string `json:"cvv"`
}

type CardPaymentMethodSpecificInput struct {
	Token                                  string    `json:"token"`
	Card                                   CardInput `json:"card"`
	UnscheduledCardOnFileRequestor         string    `json:"unscheduledCardOnFileRequestor"`
	UnscheduledCardOnFileSequenceIndicator string    `json:"unscheduledCardOnFileSequenceIndicator"`
	PaymentProductID                       int       `json:"paymentProductId"`
	TransactionChannel                     string    `json:"transactionChannel"`
	AuthorizationMode                      string    `json:"authorizationMode"`
}

// PaymentRequest is the create-payment body of the merchant server API.
type PaymentRequest struct {
	Order                          Order                           `json:"order"`
	EncryptedCustomerInput         string                          `json:"encryptedCustomerInput,omitempty"`
	CardPaymentMethodSpecificInput *CardPaymentMethodSpecificInput `json:"cardPaymentMethodSpecificInput,omitempty"`
}

const demoEmail = "wile.e.coyote@acmelabs.com"

// NewPaymentRequest wraps what the shop submitted in the demo customer, device
// and shipping data. Encrypted input wins over a token.
func NewPaymentRequest(in payment.CreatePaymentRequest) PaymentRequest {
	req := PaymentRequest{
		Order: Order{
			Customer: Customer{
				ContactDetails: ContactDetails{
					EmailAddress: demoEmail,
					PhoneNumber:  "+321234567890",
				},
				Device: Device{
					AcceptHeader: "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
					BrowserData: BrowserData{
						ColorDepth:        99,
						JavaEnabled:       true,
						JavaScriptEnabled: true,
						ScreenHeight:      "768",
						ScreenWidth:       "1024",
					},
					IPAddress:                "123.123.123.123",
					Locale:                   "en_GB",
					UserAgent:                "Mozilla/5.0(WindowsNT10.0;Win64;x64)AppleWebKit/537.36(KHTML,likeGecko)Chrome/75.0.3770.142Safari/537.36",
					TimezoneOffsetUtcMinutes: "-180",
				},
			},
			Shipping: Shipping{
				AddressIndicator: "same-as-billing",
				EmailAddress:     demoEmail,
				FirstUsageDate:   "20100101",
				IsFirstUsage:     false,
				Method: ShippingMethod{
					Details: "quickshipment",
					Name:    "fast-delivery",
					Speed:   24,
					Type:    "carrier-low-cost",
				},
				Type: "overnight",
			},
		},
	}

	if in.Context != nil {
		req.Order.AmountOfMoney = in.Context.AmountOfMoney
		req.Order.Customer.BillingAddress.CountryCode = in.Context.CountryCode
	}

	switch {
	case in.EncryptedData != "":
		req.EncryptedCustomerInput = in.EncryptedData
	case in.CardData != nil && in.CardData.Token != "":
		req.CardPaymentMethodSpecificInput = &CardPaymentMethodSpecificInput{
			Token:                                  in.CardData.Token,
			Card:                                   CardInput{CVV: in.CardData.CVV},
			UnscheduledCardOnFileRequestor:         "cardholderInitiated",
			UnscheduledCardOnFileSequenceIndicator: "subsequent",
			PaymentProductID:                       in.CardData.PaymentProductID,
			TransactionChannel:                     "ECOMMERCE",
			AuthorizationMode:                      "SALE",
		}
	}
	return req
}
