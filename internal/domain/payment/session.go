package payment

import (
	"errors"
	"net/url"
	"strings"
)

// SessionDetails is the merchant-issued client session descriptor.
type SessionDetails struct {
	AssetURL        string `json:"assetUrl"`
	ClientAPIURL    string `json:"clientApiUrl"`
	ClientSessionID string `json:"clientSessionId"`
	CustomerID      string `json:"customerId"`
}

// SavedToken is a token the mock API remembered from an earlier tokenized payment.
type SavedToken struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Label     string `json:"label"`
	ProductID int    `json:"productId"`
}

var ErrIncompleteSession = errors.New("incomplete session details")

// Complete reports whether all four descriptor values are present.
func (s SessionDetails) Complete() bool {
	return strings.TrimSpace(s.AssetURL) != "" &&
		strings.TrimSpace(s.ClientAPIURL) != "" &&
		strings.TrimSpace(s.ClientSessionID) != "" &&
		strings.TrimSpace(s.CustomerID) != ""
}

// Validate checks completeness and that both URLs are absolute.
func (s SessionDetails) Validate() map[string][]string {
	errs := map[string][]string{}

	checkURL := func(key, raw string) {
		if strings.TrimSpace(raw) == "" {
			errs[key] = append(errs[key], "required")
			return
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs[key] = append(errs[key], "url")
		}
	}
	checkURL("assetUrl", s.AssetURL)
	checkURL("clientApiUrl", s.ClientAPIURL)

	if strings.TrimSpace(s.ClientSessionID) == "" {
		errs["clientSessionId"] = append(errs["clientSessionId"], "required")
	}
	if strings.TrimSpace(s.CustomerID) == "" {
		errs["customerId"] = append(errs["customerId"], "required")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
