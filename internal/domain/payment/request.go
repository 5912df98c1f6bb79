package payment

import (
	"maps"
	"regexp"
	"slices"
	"unicode/utf8"
)

// Error ids reported per field by Request.Errors.
const (
	ErrIDRequired          = "required"
	ErrIDLength            = "length"
	ErrIDRegularExpression = "regularExpression"
)

// Request collects the shopper's field values for one product.
type Request struct {
	product       Product
	values        map[string]string
	tokenize      bool
	accountOnFile *AccountOnFile
}

func NewRequest(product Product) *Request {
	return &Request{
		product: product,
		values:  map[string]string{},
	}
}

func (r *Request) Product() Product {
	return r.product
}

// SetValue stores a raw (possibly masked) value. Empty values remove the key.
func (r *Request) SetValue(key, value string) {
	if value == "" {
		delete(r.values, key)
		return
	}
	r.values[key] = value
}

func (r *Request) Value(key string) string {
	return r.values[key]
}

func (r *Request) SetTokenize(tokenize bool) {
	r.tokenize = tokenize
}

func (r *Request) Tokenize() bool {
	return r.tokenize
}

func (r *Request) SetAccountOnFile(aof AccountOnFile) {
	r.accountOnFile = &aof
}

func (r *Request) AccountOnFile() *AccountOnFile {
	return r.accountOnFile
}

// UnmaskedValues returns the values with each product field's mask literals removed.
func (r *Request) UnmaskedValues() map[string]string {
	out := make(map[string]string, len(r.values))
	for key, value := range r.values {
		if field, ok := r.product.Field(key); ok {
			out[key] = Unmask(field.DisplayHints.Mask, value)
			continue
		}
		out[key] = value
	}
	return out
}

// Errors evaluates the product's declared restrictions and returns error ids per field.
// Fields supplied read-only by the chosen account on file are skipped.
func (r *Request) Errors() map[string][]string {
	errs := map[string][]string{}
	unmasked := r.UnmaskedValues()

	for _, field := range r.product.Fields {
		if r.suppliedByAccountOnFile(field.ID) {
			continue
		}

		value, present := unmasked[field.ID]
		restrictions := field.DataRestrictions

		if !present || value == "" {
			if restrictions.IsRequired {
				errs[field.ID] = append(errs[field.ID], ErrIDRequired)
			}
			continue
		}

		if l := restrictions.Validators.Length; l != nil {
			n := utf8.RuneCountInString(value)
			if n < l.MinLength || (l.MaxLength > 0 && n > l.MaxLength) {
				errs[field.ID] = append(errs[field.ID], ErrIDLength)
			}
		}

		if re := restrictions.Validators.RegularExpression; re != nil && re.RegularExpression != "" {
			compiled, err := regexp.Compile(re.RegularExpression)
			if err != nil || !compiled.MatchString(value) {
				errs[field.ID] = append(errs[field.ID], ErrIDRegularExpression)
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ErrorMessageIDs flattens Errors in field declaration order.
func (r *Request) ErrorMessageIDs() []string {
	errs := r.Errors()
	var ids []string
	for _, field := range r.product.Fields {
		ids = append(ids, errs[field.ID]...)
	}
	return ids
}

func (r *Request) IsValid() bool {
	return len(r.Errors()) == 0
}

func (r *Request) suppliedByAccountOnFile(fieldID string) bool {
	if r.accountOnFile == nil {
		return false
	}
	attr, ok := r.accountOnFile.Attribute(fieldID)
	return ok && attr.Status != AttributeMustWrite
}

// RequestSnapshot is the debug copy of the last request kept in the flow state.
type RequestSnapshot struct {
	PaymentProductID int               `json:"paymentProductId"`
	AccountOnFileID  string            `json:"accountOnFileId,omitempty"`
	Values           map[string]string `json:"values"`
	Tokenize         bool              `json:"tokenize"`
}

func (r *Request) Snapshot() RequestSnapshot {
	snap := RequestSnapshot{
		PaymentProductID: r.product.ID,
		Values:           r.UnmaskedValues(),
		Tokenize:         r.tokenize,
	}
	if r.accountOnFile != nil {
		snap.AccountOnFileID = r.accountOnFile.ID
	}
	return snap
}

// Keys returns the set value keys in sorted order.
func (r *Request) Keys() []string {
	return slices.Sorted(maps.Keys(r.values))
}
