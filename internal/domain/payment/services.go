package payment

import "strconv"

// IIN lookup statuses.
const (
	IinSupported             = "SUPPORTED"
	IinUnsupported           = "UNSUPPORTED"
	IinUnknown               = "UNKNOWN"
	IinNotEnoughDigits       = "NOT_ENOUGH_DIGITS"
	IinExistingButNotAllowed = "EXISTING_BUT_NOT_ALLOWED"
)

// MinIinDigits is the number of leading digits the IIN lookup needs.
const MinIinDigits = 6

type IinCoBrand struct {
	PaymentProductID   int  `json:"paymentProductId"`
	IsAllowedInContext bool `json:"isAllowedInContext"`
}

type IinDetails struct {
	Status             string       `json:"status"`
	PaymentProductID   int          `json:"paymentProductId,omitempty"`
	CountryCode        string       `json:"countryCode,omitempty"`
	IsAllowedInContext bool         `json:"isAllowedInContext"`
	CoBrands           []IinCoBrand `json:"coBrands,omitempty"`
}

// CardSource identifies a card by its leading digits for rate and surcharge calls.
type CardSource struct {
	PartialCreditCardNumber string `json:"partialCreditCardNumber"`
	PaymentProductID        int    `json:"paymentProductId,omitempty"`
}

type ConversionRate struct {
	ExchangeRate         float64 `json:"exchangeRate"`
	InvertedExchangeRate float64 `json:"invertedExchangeRate"`
	MarkUpRate           float64 `json:"markUpRate,omitempty"`
	QuotationDateTime    string  `json:"quotationDateTime,omitempty"`
	Source               string  `json:"source,omitempty"`
}

type ConversionProposal struct {
	BaseAmount        AmountOfMoney  `json:"baseAmount"`
	TargetAmount      AmountOfMoney  `json:"targetAmount"`
	Rate              ConversionRate `json:"rate"`
	DisclaimerReceipt string         `json:"disclaimerReceipt,omitempty"`
	DisclaimerDisplay string         `json:"disclaimerDisplay,omitempty"`
}

type ConversionResult struct {
	Result       string `json:"result"`
	ResultReason string `json:"resultReason"`
}

// CurrencyConversion is the dynamic currency conversion quote.
type CurrencyConversion struct {
	DccSessionID string              `json:"dccSessionId,omitempty"`
	Proposal     *ConversionProposal `json:"proposal,omitempty"`
	Result       *ConversionResult   `json:"result,omitempty"`
}

// Lines renders the quote the way the card step shows it.
func (c CurrencyConversion) Lines() []string {
	var lines []string
	if c.Result != nil {
		lines = append(lines, c.Result.Result+" ("+c.Result.ResultReason+")")
	}
	if c.Proposal != nil && c.Proposal.Rate.ExchangeRate != 0 {
		lines = append(lines, "Rate: "+formatFloat(c.Proposal.Rate.ExchangeRate))
	}
	return lines
}

const SurchargeOK = "OK"

type SurchargeRate struct {
	SurchargeProductTypeID      string  `json:"surchargeProductTypeId,omitempty"`
	SurchargeProductTypeVersion string  `json:"surchargeProductTypeVersion,omitempty"`
	AdValoremRate               float64 `json:"adValoremRate"`
	SpecificRate                int64   `json:"specificRate"`
}

type Surcharge struct {
	PaymentProductID int            `json:"paymentProductId"`
	Result           string         `json:"result"`
	NetAmount        AmountOfMoney  `json:"netAmount"`
	SurchargeAmount  AmountOfMoney  `json:"surchargeAmount"`
	TotalAmount      AmountOfMoney  `json:"totalAmount"`
	SurchargeRate    *SurchargeRate `json:"surchargeRate,omitempty"`
}

type SurchargeCalculation struct {
	Surcharges []Surcharge `json:"surcharges"`
}

// Applicable returns only the surcharges the platform calculated successfully.
func (s SurchargeCalculation) Applicable() []Surcharge {
	out := []Surcharge{}
	for _, sc := range s.Surcharges {
		if sc.Result == SurchargeOK {
			out = append(out, sc)
		}
	}
	return out
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
