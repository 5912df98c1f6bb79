package checkout

import (
	"context"

	"PayFlow/internal/apperror"
	"PayFlow/internal/domain/guard"
	"PayFlow/internal/domain/payment"
	"PayFlow/pkg/money"
)

const encryptedPaymentDataField = "encryptedPaymentData"

type GooglePayView struct {
	stepView
	Request payment.GooglePayRequest `json:"paymentDataRequest"`
}

// GooglePayView builds the payment data request for the Google Pay button.
func (s *Service) GooglePayView(ctx context.Context, flow Flow) (GooglePayView, error) {
	state, err := s.require(ctx, flow, guard.StepGooglePay)
	if err != nil {
		return GooglePayView{}, err
	}
	if err := s.enterStep(ctx, flow, "GooglePayView"); err != nil {
		return GooglePayView{}, err
	}

	pctx := contextOrDefault(state)
	product := *state.PaymentProduct
	view := GooglePayView{
		stepView: newStepView(pctx, product),
		Request:  payment.NewGooglePayRequest(product, pctx),
	}
	view.FormattedAmount = money.FormatAmountForGooglePay(pctx.AmountOfMoney.CurrencyCode, pctx.AmountOfMoney.Amount)
	return view, nil
}

// SubmitGooglePay encrypts the token returned by Google Pay.
func (s *Service) SubmitGooglePay(ctx context.Context, flow Flow, token string) (SubmitResult, error) {
	state, err := s.require(ctx, flow, guard.StepGooglePay)
	if err != nil {
		return SubmitResult{}, err
	}
	if token == "" {
		return SubmitResult{}, apperror.Validation(apperror.MsgFillAllData,
			map[string][]string{encryptedPaymentDataField: {payment.ErrIDRequired}})
	}

	req := payment.NewRequest(*state.PaymentProduct)
	req.SetValue(encryptedPaymentDataField, token)
	return s.encryptAndStore(ctx, flow, state, req, "SubmitGooglePay")
}
