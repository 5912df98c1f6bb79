package checkout

import (
	"context"

	"PayFlow/internal/apperror"
	"PayFlow/internal/domain/guard"
	"PayFlow/internal/domain/payment"
	"PayFlow/internal/store"
)

const (
	expiryDateField     = "expiryDate"
	cardholderNameField = "cardholderName"
	cvvField            = "cvv"
)

type AccountOnFileView struct {
	stepView
	AccountOnFileID string `json:"accountOnFileId"`
	CardLabel       string `json:"cardLabel"`
	ExpiryDate      string `json:"expiryDate"`
	CardholderName  string `json:"cardholderName"`
	CVVRequired     bool   `json:"cvvRequired"`
}

// AccountOnFileView shows the stored card; only the cvv is asked again.
func (s *Service) AccountOnFileView(ctx context.Context, flow Flow) (AccountOnFileView, error) {
	state, err := s.require(ctx, flow, guard.StepAccountOnFile)
	if err != nil {
		return AccountOnFileView{}, err
	}
	product := *state.PaymentProduct
	aof, err := accountOnFile(product, *state.AccountOnFileID)
	if err != nil {
		return AccountOnFileView{}, err
	}
	if err := s.enterStep(ctx, flow, "AccountOnFileView"); err != nil {
		return AccountOnFileView{}, err
	}

	view := AccountOnFileView{
		stepView:        newStepView(contextOrDefault(state), product),
		AccountOnFileID: aof.ID,
		CardLabel:       aof.Label(),
	}
	if attr, ok := aof.Attribute(expiryDateField); ok {
		mask := ""
		if field, ok := product.Field(expiryDateField); ok {
			mask = field.DisplayHints.Mask
		}
		view.ExpiryDate = payment.ApplyMask(mask, attr.Value)
	}
	if attr, ok := aof.Attribute(cardholderNameField); ok {
		view.CardholderName = attr.Value
	}
	if field, ok := product.Field(cvvField); ok {
		view.CVVRequired = field.DataRestrictions.IsRequired
	}
	return view, nil
}

// SubmitAccountOnFile stores the token payment data; nothing is encrypted.
func (s *Service) SubmitAccountOnFile(ctx context.Context, flow Flow, cvv string) (SubmitResult, error) {
	state, err := s.require(ctx, flow, guard.StepAccountOnFile)
	if err != nil {
		return SubmitResult{}, err
	}
	product := *state.PaymentProduct
	aof, err := accountOnFile(product, *state.AccountOnFileID)
	if err != nil {
		return SubmitResult{}, err
	}

	req := payment.NewRequest(product)
	req.SetAccountOnFile(aof)
	req.SetValue(cvvField, cvv)
	if errs := req.Errors(); errs[cvvField] != nil {
		return SubmitResult{}, apperror.Validation("", map[string][]string{cvvField: errs[cvvField]})
	}

	snapshot := req.Snapshot()
	if err := s.persist(ctx, flow, "SubmitAccountOnFile", map[store.Field]any{
		store.FieldEncryptedData: nil,
		store.FieldCardPaymentSpecificData: payment.CardPaymentSpecificData{
			Token:            aof.ID,
			CVV:              cvv,
			PaymentProductID: product.ID,
		},
		store.FieldPaymentRequest: snapshot,
	}); err != nil {
		return SubmitResult{}, err
	}
	return SubmitResult{Next: guard.StepFinalize, Request: &snapshot}, nil
}

func accountOnFile(product payment.Product, id string) (payment.AccountOnFile, error) {
	aof, ok := product.AccountOnFile(id)
	if !ok {
		return payment.AccountOnFile{}, apperror.NotFound("Account on file not found.")
	}
	return aof, nil
}
