package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"PayFlow/internal/apperror"
	"PayFlow/internal/domain/guard"
	"PayFlow/internal/domain/payment"
	"PayFlow/internal/store"
	"PayFlow/pkg/money"
)

const cardNumberField = "cardNumber"

type CreditCardView struct {
	stepView
	Fields             []payment.Field `json:"fields"`
	AllowsTokenization bool            `json:"allowsTokenization"`
}

// CreditCardView describes the card form of the selected product.
func (s *Service) CreditCardView(ctx context.Context, flow Flow) (CreditCardView, error) {
	state, err := s.require(ctx, flow, guard.StepCreditCard)
	if err != nil {
		return CreditCardView{}, err
	}
	if err := s.enterStep(ctx, flow, "CreditCardView"); err != nil {
		return CreditCardView{}, err
	}

	product := *state.PaymentProduct
	return CreditCardView{
		stepView:           newStepView(contextOrDefault(state), product),
		Fields:             product.Fields,
		AllowsTokenization: product.AllowsTokenization,
	}, nil
}

// LookupIin resolves the card product of the leading digits of a card number.
func (s *Service) LookupIin(ctx context.Context, flow Flow, cardNumber string) (payment.IinDetails, error) {
	state, err := s.require(ctx, flow, guard.StepCreditCard)
	if err != nil {
		return payment.IinDetails{}, err
	}
	return s.lookupIin(ctx, flow, state, cardNumber)
}

func (s *Service) lookupIin(ctx context.Context, flow Flow, state store.State, cardNumber string) (payment.IinDetails, error) {
	digits := normalizeCardNumber(cardNumber)
	if len(digits) < payment.MinIinDigits {
		return payment.IinDetails{Status: payment.IinNotEnoughDigits}, nil
	}

	sess, err := s.session(state)
	if err != nil {
		return payment.IinDetails{}, err
	}

	pctx := contextOrDefault(state)
	details, err := call(s, ctx, flow, "clientapi.iin_details", func(ctx context.Context) (payment.IinDetails, error) {
		return sess.GetIinDetails(ctx, digits, pctx)
	})
	if err != nil {
		return payment.IinDetails{}, s.fail(ctx, flow, "lookupIin", apperror.MsgFetchPrefix, err)
	}
	return details, nil
}

type SubmitResult struct {
	Next    guard.Step               `json:"next"`
	Request *payment.RequestSnapshot `json:"paymentRequest,omitempty"`
}

// SubmitCard validates the card form, checks the card belongs to the selected
// product, encrypts the request and stores the payload for finalize.
func (s *Service) SubmitCard(ctx context.Context, flow Flow, values map[string]string, tokenize bool) (SubmitResult, error) {
	state, err := s.require(ctx, flow, guard.StepCreditCard)
	if err != nil {
		return SubmitResult{}, err
	}
	product := *state.PaymentProduct

	req := payment.NewRequest(product)
	for key, value := range values {
		req.SetValue(key, value)
	}
	req.SetTokenize(tokenize)

	if errs := req.Errors(); errs != nil {
		return SubmitResult{}, apperror.Validation("", errs)
	}

	details, err := s.lookupIin(ctx, flow, state, req.Value(cardNumberField))
	if err != nil {
		if apperror.IsKind(err, apperror.KindUnauthorized) || errors.Is(err, context.Canceled) {
			return SubmitResult{}, err
		}
		return SubmitResult{}, wrongCard(product)
	}
	if !matchesProduct(details, product.ID) {
		return SubmitResult{}, wrongCard(product)
	}

	return s.encryptAndStore(ctx, flow, state, req, "SubmitCard")
}

// encryptAndStore encrypts req with the session's encryptor and stores the
// payload and the request snapshot. Card data is cleared.
func (s *Service) encryptAndStore(ctx context.Context, flow Flow, state store.State, req *payment.Request, op string) (SubmitResult, error) {
	sess, err := s.session(state)
	if err != nil {
		return SubmitResult{}, err
	}

	encrypted, err := call(s, ctx, flow, "clientapi.encrypt", func(ctx context.Context) (string, error) {
		return sess.Encryptor().Encrypt(ctx, req)
	})
	if err != nil {
		return SubmitResult{}, s.fail(ctx, flow, op, apperror.MsgSubmitPrefix, err)
	}

	snapshot := req.Snapshot()
	if err := s.persist(ctx, flow, op, map[store.Field]any{
		store.FieldEncryptedData:           encrypted,
		store.FieldCardPaymentSpecificData: nil,
		store.FieldPaymentRequest:          snapshot,
	}); err != nil {
		return SubmitResult{}, err
	}
	return SubmitResult{Next: guard.StepFinalize, Request: &snapshot}, nil
}

type CurrencyConversionView struct {
	Lines      []string                   `json:"lines"`
	Conversion payment.CurrencyConversion `json:"conversion"`
}

// CurrencyConversion quotes a dynamic currency conversion for the entered card.
func (s *Service) CurrencyConversion(ctx context.Context, flow Flow, cardNumber string) (CurrencyConversionView, error) {
	state, err := s.require(ctx, flow, guard.StepCreditCard)
	if err != nil {
		return CurrencyConversionView{}, err
	}
	digits := normalizeCardNumber(cardNumber)
	if digits == "" {
		return CurrencyConversionView{}, apperror.Validation(apperror.MsgEnterCard, nil)
	}

	sess, err := s.session(state)
	if err != nil {
		return CurrencyConversionView{}, err
	}

	pctx := contextOrDefault(state)
	card := payment.CardSource{PartialCreditCardNumber: digits, PaymentProductID: state.PaymentProduct.ID}
	quote, err := call(s, ctx, flow, "clientapi.currency_conversion", func(ctx context.Context) (payment.CurrencyConversion, error) {
		return sess.GetCurrencyConversionQuote(ctx, pctx.AmountOfMoney, card)
	})
	if err != nil {
		return CurrencyConversionView{}, s.fail(ctx, flow, "CurrencyConversion", apperror.MsgFetchPrefix, err)
	}
	return CurrencyConversionView{Lines: quote.Lines(), Conversion: quote}, nil
}

type SurchargeView struct {
	Lines      []string            `json:"lines"`
	Surcharges []payment.Surcharge `json:"surcharges"`
}

// Surcharge calculates the surcharge the entered card would incur.
func (s *Service) Surcharge(ctx context.Context, flow Flow, cardNumber string) (SurchargeView, error) {
	state, err := s.require(ctx, flow, guard.StepCreditCard)
	if err != nil {
		return SurchargeView{}, err
	}
	digits := normalizeCardNumber(cardNumber)
	if digits == "" {
		return SurchargeView{}, apperror.Validation(apperror.MsgEnterCard, nil)
	}

	sess, err := s.session(state)
	if err != nil {
		return SurchargeView{}, err
	}

	pctx := contextOrDefault(state)
	card := payment.CardSource{PartialCreditCardNumber: digits, PaymentProductID: state.PaymentProduct.ID}
	calc, err := call(s, ctx, flow, "clientapi.surcharge_calculation", func(ctx context.Context) (payment.SurchargeCalculation, error) {
		return sess.GetSurchargeCalculation(ctx, pctx.AmountOfMoney, card)
	})
	if err != nil {
		return SurchargeView{}, s.fail(ctx, flow, "Surcharge", apperror.MsgFetchPrefix, err)
	}

	applicable := calc.Applicable()
	lines := make([]string, 0, len(applicable))
	for _, sc := range applicable {
		lines = append(lines, fmt.Sprintf("%d: %s %s",
			sc.PaymentProductID,
			money.FormatAmount(sc.SurchargeAmount.CurrencyCode, sc.SurchargeAmount.Amount),
			sc.SurchargeAmount.CurrencyCode,
		))
	}
	return SurchargeView{Lines: lines, Surcharges: applicable}, nil
}

func newStepView(pctx payment.Context, product payment.Product) stepView {
	return stepView{
		FormattedAmount: money.FormatAmount(pctx.AmountOfMoney.CurrencyCode, pctx.AmountOfMoney.Amount),
		CurrencyCode:    pctx.AmountOfMoney.CurrencyCode,
		ProductID:       product.ID,
		ProductLabel:    product.Label(),
	}
}

func normalizeCardNumber(cardNumber string) string {
	return strings.ReplaceAll(strings.TrimSpace(cardNumber), " ", "")
}

// matchesProduct reports whether the IIN lookup resolved to productID,
// either directly or through an allowed co-brand.
func matchesProduct(details payment.IinDetails, productID int) bool {
	if details.Status != payment.IinSupported {
		return false
	}
	if details.PaymentProductID == productID {
		return true
	}
	for _, cb := range details.CoBrands {
		if cb.PaymentProductID == productID && cb.IsAllowedInContext {
			return true
		}
	}
	return false
}

func wrongCard(product payment.Product) error {
	return apperror.Validation(fmt.Sprintf("Entered card number is not for %s.", product.Label()), nil)
}
