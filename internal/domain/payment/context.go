package payment

import (
	"encoding/json"
	"regexp"
	"strings"
)

type AmountOfMoney struct {
	Amount       int64  `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Context is the shopper-chosen order context.
type Context struct {
	AmountOfMoney AmountOfMoney `json:"amountOfMoney"`
	CountryCode   string        `json:"countryCode"`
	IsRecurring   bool          `json:"isRecurring"`
	Locale        string        `json:"locale,omitempty"`
}

// DefaultContext is offered when the shopper has not chosen one yet.
func DefaultContext() Context {
	return Context{
		AmountOfMoney: AmountOfMoney{Amount: 1000, CurrencyCode: "EUR"},
		CountryCode:   "BE",
		IsRecurring:   false,
	}
}

// legacyContext is the older SDK shape: {totalAmount, currency, countryCode}.
type legacyContext struct {
	TotalAmount *int64  `json:"totalAmount"`
	Currency    *string `json:"currency"`
}

// UnmarshalJSON accepts both the amountOfMoney shape and the legacy
// totalAmount/currency shape. Values in amountOfMoney win when both are present.
func (c *Context) UnmarshalJSON(data []byte) error {
	type plain Context
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var legacy legacyContext
	if err := json.Unmarshal(data, &legacy); err != nil {
		return err
	}
	if legacy.TotalAmount != nil && p.AmountOfMoney.Amount == 0 {
		p.AmountOfMoney.Amount = *legacy.TotalAmount
	}
	if legacy.Currency != nil && p.AmountOfMoney.CurrencyCode == "" {
		p.AmountOfMoney.CurrencyCode = *legacy.Currency
	}

	*c = Context(p)
	c.normalize()
	return nil
}

func (c *Context) normalize() {
	c.AmountOfMoney.CurrencyCode = strings.ToUpper(strings.TrimSpace(c.AmountOfMoney.CurrencyCode))
	c.CountryCode = strings.ToUpper(strings.TrimSpace(c.CountryCode))
}

var (
	currencyRe = regexp.MustCompile(`^[A-Z]{3}$`)
	countryRe  = regexp.MustCompile(`^[A-Z]{2}$`)
)

// Validate returns field error ids keyed by JSON path, or nil.
func (c Context) Validate() map[string][]string {
	c.normalize()
	errs := map[string][]string{}

	if c.AmountOfMoney.Amount < 0 {
		errs["amountOfMoney.amount"] = append(errs["amountOfMoney.amount"], "range")
	}
	if !currencyRe.MatchString(c.AmountOfMoney.CurrencyCode) {
		errs["amountOfMoney.currencyCode"] = append(errs["amountOfMoney.currencyCode"], "currencyCode")
	}
	if !countryRe.MatchString(c.CountryCode) {
		errs["countryCode"] = append(errs["countryCode"], "countryCode")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
