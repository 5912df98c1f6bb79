package payment

import "strings"

const (
	MethodCard   = "card"
	MethodMobile = "mobile"

	// GooglePayLabel is the display label the client API gives the Google Pay product.
	GooglePayLabel = "GOOGLEPAY"
)

type DisplayHints struct {
	DisplayOrder int    `json:"displayOrder"`
	Label        string `json:"label,omitempty"`
	Logo         string `json:"logo,omitempty"`
}

type LengthValidator struct {
	MinLength int `json:"minLength"`
	MaxLength int `json:"maxLength"`
}

type RegularExpressionValidator struct {
	RegularExpression string `json:"regularExpression"`
}

type RangeValidator struct {
	MinValue int `json:"minValue"`
	MaxValue int `json:"maxValue"`
}

// Validators keeps the declared restrictions. Only Length and
// RegularExpression are evaluated locally; the rest are left to the platform.
type Validators struct {
	Length            *LengthValidator            `json:"length,omitempty"`
	RegularExpression *RegularExpressionValidator `json:"regularExpression,omitempty"`
	Range             *RangeValidator             `json:"range,omitempty"`
	Luhn              *struct{}                   `json:"luhn,omitempty"`
	ExpirationDate    *struct{}                   `json:"expirationDate,omitempty"`
}

type DataRestrictions struct {
	IsRequired bool       `json:"isRequired"`
	Validators Validators `json:"validators"`
}

type FieldDisplayHints struct {
	DisplayOrder       int    `json:"displayOrder"`
	Label              string `json:"label,omitempty"`
	Mask               string `json:"mask,omitempty"`
	Obfuscate          bool   `json:"obfuscate"`
	PlaceholderLabel   string `json:"placeholderLabel,omitempty"`
	PreferredInputType string `json:"preferredInputType,omitempty"`
}

type Field struct {
	ID               string            `json:"id"`
	Type             string            `json:"type"`
	DataRestrictions DataRestrictions  `json:"dataRestrictions"`
	DisplayHints     FieldDisplayHints `json:"displayHints"`
}

const (
	AttributeReadOnly  = "READ_ONLY"
	AttributeCanWrite  = "CAN_WRITE"
	AttributeMustWrite = "MUST_WRITE"
)

type AccountOnFileAttribute struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Status string `json:"status"`
}

type LabelTemplateElement struct {
	AttributeKey string `json:"attributeKey"`
	Mask         string `json:"mask,omitempty"`
}

type AccountOnFileDisplayHints struct {
	LabelTemplate []LabelTemplateElement `json:"labelTemplate,omitempty"`
	Logo          string                 `json:"logo,omitempty"`
}

// AccountOnFile is a stored, tokenized payment method of a returning customer.
type AccountOnFile struct {
	ID               string                    `json:"id"`
	PaymentProductID int                       `json:"paymentProductId"`
	Attributes       []AccountOnFileAttribute  `json:"attributes"`
	DisplayHints     AccountOnFileDisplayHints `json:"displayHints"`
}

// Attribute returns the stored attribute with the given key.
func (a AccountOnFile) Attribute(key string) (AccountOnFileAttribute, bool) {
	for _, attr := range a.Attributes {
		if attr.Key == key {
			return attr, true
		}
	}
	return AccountOnFileAttribute{}, false
}

// Label renders the account's label template, falling back to the alias attribute.
func (a AccountOnFile) Label() string {
	parts := make([]string, 0, len(a.DisplayHints.LabelTemplate))
	for _, el := range a.DisplayHints.LabelTemplate {
		attr, ok := a.Attribute(el.AttributeKey)
		if !ok || attr.Value == "" {
			continue
		}
		parts = append(parts, ApplyMask(el.Mask, attr.Value))
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if alias, ok := a.Attribute("alias"); ok {
		return alias.Value
	}
	return a.ID
}

// PaymentProduct320SpecificData carries the Google Pay gateway settings.
type PaymentProduct320SpecificData struct {
	Gateway  string   `json:"gateway,omitempty"`
	Networks []string `json:"networks,omitempty"`
}

// Product is the full descriptor of one payment product.
type Product struct {
	ID                            int                            `json:"id"`
	PaymentMethod                 string                         `json:"paymentMethod"`
	PaymentProductGroup           string                         `json:"paymentProductGroup,omitempty"`
	AllowsTokenization            bool                           `json:"allowsTokenization"`
	AllowsRecurring               bool                           `json:"allowsRecurring"`
	AutoTokenized                 bool                           `json:"autoTokenized"`
	UsesRedirectionTo3rdParty     bool                           `json:"usesRedirectionTo3rdParty"`
	AcquirerCountry               string                         `json:"acquirerCountry,omitempty"`
	DisplayHints                  *DisplayHints                  `json:"displayHints,omitempty"`
	DisplayHintsList              []DisplayHints                 `json:"displayHintsList,omitempty"`
	Fields                        []Field                        `json:"fields,omitempty"`
	AccountsOnFile                []AccountOnFile                `json:"accountsOnFile,omitempty"`
	PaymentProduct320SpecificData *PaymentProduct320SpecificData `json:"paymentProduct320SpecificData,omitempty"`
}

// Label is the display label of the product.
func (p Product) Label() string {
	if p.DisplayHints != nil && p.DisplayHints.Label != "" {
		return p.DisplayHints.Label
	}
	for _, h := range p.DisplayHintsList {
		if h.Label != "" {
			return h.Label
		}
	}
	return ""
}

func (p Product) Field(id string) (Field, bool) {
	for _, f := range p.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

func (p Product) HasField(id string) bool {
	_, ok := p.Field(id)
	return ok
}

func (p Product) AccountOnFile(id string) (AccountOnFile, bool) {
	for _, a := range p.AccountsOnFile {
		if a.ID == id {
			return a, true
		}
	}
	return AccountOnFile{}, false
}

func (p Product) IsCard() bool {
	return p.PaymentMethod == MethodCard
}

func (p Product) IsGooglePay() bool {
	return p.PaymentMethod == MethodMobile && p.Label() == GooglePayLabel
}

// BasicPaymentItems is the product listing for one payment context.
type BasicPaymentItems struct {
	PaymentProducts []Product       `json:"paymentProducts"`
	AccountsOnFile  []AccountOnFile `json:"accountsOnFile"`
}

// NewBasicPaymentItems collects the accounts on file of every product into one list.
func NewBasicPaymentItems(products []Product) BasicPaymentItems {
	items := BasicPaymentItems{
		PaymentProducts: products,
		AccountsOnFile:  []AccountOnFile{},
	}
	if items.PaymentProducts == nil {
		items.PaymentProducts = []Product{}
	}
	seen := map[string]struct{}{}
	for _, p := range products {
		for _, a := range p.AccountsOnFile {
			if _, ok := seen[a.ID]; ok {
				continue
			}
			seen[a.ID] = struct{}{}
			items.AccountsOnFile = append(items.AccountsOnFile, a)
		}
	}
	return items
}

func (b BasicPaymentItems) AccountOnFile(id string) (AccountOnFile, bool) {
	for _, a := range b.AccountsOnFile {
		if a.ID == id {
			return a, true
		}
	}
	return AccountOnFile{}, false
}
