package payment

import (
	"encoding/json"
	"errors"
)

// CardPaymentSpecificData pays with a stored token instead of an encrypted payload.
type CardPaymentSpecificData struct {
	Token            string `json:"token"`
	CVV              string `json:"cvv"`
	PaymentProductID int    `json:"paymentProductId"`
}

var ErrNoPaymentData = errors.New("neither encrypted data nor card data present")

// CreatePaymentRequest is the body posted to the mock API: the context
// fields merged with either the card data or {data: encrypted}.
type CreatePaymentRequest struct {
	Context       *Context
	CardData      *CardPaymentSpecificData
	EncryptedData string
}

func (r CreatePaymentRequest) MarshalJSON() ([]byte, error) {
	body := map[string]any{}

	if r.Context != nil {
		body["amountOfMoney"] = r.Context.AmountOfMoney
		body["countryCode"] = r.Context.CountryCode
		body["isRecurring"] = r.Context.IsRecurring
		if r.Context.Locale != "" {
			body["locale"] = r.Context.Locale
		}
	}

	switch {
	case r.CardData != nil:
		body["token"] = r.CardData.Token
		body["cvv"] = r.CardData.CVV
		body["paymentProductId"] = r.CardData.PaymentProductID
	case r.EncryptedData != "":
		body["data"] = r.EncryptedData
	default:
		return nil, ErrNoPaymentData
	}

	return json.Marshal(body)
}

// UnmarshalJSON is used by the mock API to read what MarshalJSON wrote.
func (r *CreatePaymentRequest) UnmarshalJSON(data []byte) error {
	var ctx Context
	if err := json.Unmarshal(data, &ctx); err != nil {
		return err
	}

	var payload struct {
		Token            *string `json:"token"`
		CVV              string  `json:"cvv"`
		PaymentProductID int     `json:"paymentProductId"`
		Data             string  `json:"data"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}

	r.Context = &ctx
	r.EncryptedData = payload.Data
	r.CardData = nil
	if payload.Token != nil && payload.Data == "" {
		r.CardData = &CardPaymentSpecificData{
			Token:            *payload.Token,
			CVV:              payload.CVV,
			PaymentProductID: payload.PaymentProductID,
		}
	}
	return nil
}
