package checkout

import (
	"context"

	"PayFlow/internal/apperror"
	"PayFlow/internal/domain/guard"
	"PayFlow/internal/domain/payment"
	"PayFlow/internal/store"
)

type PaymentView struct {
	Context payment.Context `json:"paymentContext"`
	Stored  bool            `json:"stored"`
}

// PaymentView enters product selection: the chosen account on file and any
// prepared payment data are dropped.
func (s *Service) PaymentView(ctx context.Context, flow Flow) (PaymentView, error) {
	state, err := s.require(ctx, flow, guard.StepPayment)
	if err != nil {
		return PaymentView{}, err
	}

	reset := clearedPaymentData()
	reset[store.FieldAccountOnFileID] = nil
	if err := s.persist(ctx, flow, "PaymentView", reset); err != nil {
		return PaymentView{}, err
	}

	return PaymentView{
		Context: contextOrDefault(state),
		Stored:  state.PaymentContext != nil,
	}, nil
}

// SetPaymentContext stores the context and lists the products available for it.
// A changed context invalidates the selected product and any prepared data.
func (s *Service) SetPaymentContext(ctx context.Context, flow Flow, pctx payment.Context) (payment.BasicPaymentItems, error) {
	state, err := s.require(ctx, flow, guard.StepPayment)
	if err != nil {
		return payment.BasicPaymentItems{}, err
	}
	if fields := pctx.Validate(); fields != nil {
		return payment.BasicPaymentItems{}, apperror.Validation(apperror.MsgFillAllData, fields)
	}

	values := clearedPaymentData()
	values[store.FieldPaymentContext] = pctx
	values[store.FieldPaymentProduct] = nil
	values[store.FieldAccountOnFileID] = nil
	values[store.FieldPaymentRequest] = nil
	if err := s.persist(ctx, flow, "SetPaymentContext", values); err != nil {
		return payment.BasicPaymentItems{}, err
	}

	sess, err := s.session(state)
	if err != nil {
		return payment.BasicPaymentItems{}, err
	}

	items, err := call(s, ctx, flow, "clientapi.basic_payment_items", func(ctx context.Context) (payment.BasicPaymentItems, error) {
		return sess.GetBasicPaymentItems(ctx, pctx)
	})
	if err != nil {
		return payment.BasicPaymentItems{}, s.fail(ctx, flow, "SetPaymentContext", apperror.MsgFetchPrefix, err)
	}
	return items, nil
}

// SelectProduct stores the chosen product and routes to its entry step.
// Only cards and Google Pay are supported; other products are not stored.
func (s *Service) SelectProduct(ctx context.Context, flow Flow, productID int) (guard.Step, error) {
	state, err := s.require(ctx, flow, guard.StepPayment)
	if err != nil {
		return "", err
	}

	product, err := s.fetchProduct(ctx, flow, state, productID)
	if err != nil {
		return "", err
	}

	var next guard.Step
	switch {
	case product.IsCard():
		next = guard.StepCreditCard
	case product.IsGooglePay():
		next = guard.StepGooglePay
	default:
		return "", apperror.Unsupported(apperror.MsgUnsupported)
	}

	values := clearedPaymentData()
	values[store.FieldPaymentProduct] = product
	values[store.FieldAccountOnFileID] = nil
	if err := s.persist(ctx, flow, "SelectProduct", values); err != nil {
		return "", err
	}
	return next, nil
}

// SelectAccountOnFile stores the product of a stored card together with the account id.
func (s *Service) SelectAccountOnFile(ctx context.Context, flow Flow, accountOnFileID string, productID int) (guard.Step, error) {
	state, err := s.require(ctx, flow, guard.StepPayment)
	if err != nil {
		return "", err
	}
	if accountOnFileID == "" {
		return "", apperror.Validation(apperror.MsgFillAllData, map[string][]string{"accountOnFileId": {payment.ErrIDRequired}})
	}

	product, err := s.fetchProduct(ctx, flow, state, productID)
	if err != nil {
		return "", err
	}
	if _, ok := product.AccountOnFile(accountOnFileID); !ok {
		return "", apperror.NotFound("Account on file not found.")
	}
	if !product.IsCard() {
		return "", apperror.Unsupported(apperror.MsgUnsupported)
	}

	values := clearedPaymentData()
	values[store.FieldPaymentProduct] = product
	values[store.FieldAccountOnFileID] = accountOnFileID
	if err := s.persist(ctx, flow, "SelectAccountOnFile", values); err != nil {
		return "", err
	}
	return guard.StepAccountOnFile, nil
}

// SavedTokens lists the tokens the mock API remembered for the session's customer.
func (s *Service) SavedTokens(ctx context.Context, flow Flow) ([]payment.SavedToken, error) {
	state, err := s.require(ctx, flow, guard.StepPayment)
	if err != nil {
		return nil, err
	}
	if s.mockAPI == nil {
		return nil, apperror.Unsupported("The mock API is disabled.")
	}

	tokens, err := call(s, ctx, flow, "mockapi.tokens", func(ctx context.Context) ([]payment.SavedToken, error) {
		return s.mockAPI.Tokens(ctx, state.Session.CustomerID)
	})
	if err != nil {
		return nil, s.fail(ctx, flow, "SavedTokens", apperror.MsgFetchPrefix, err)
	}
	if tokens == nil {
		tokens = []payment.SavedToken{}
	}
	return tokens, nil
}

func (s *Service) fetchProduct(ctx context.Context, flow Flow, state store.State, productID int) (payment.Product, error) {
	sess, err := s.session(state)
	if err != nil {
		return payment.Product{}, err
	}

	pctx := contextOrDefault(state)
	product, err := call(s, ctx, flow, "clientapi.payment_product", func(ctx context.Context) (payment.Product, error) {
		return sess.GetPaymentProduct(ctx, productID, pctx)
	})
	if err != nil {
		if isNotFound(err) {
			return payment.Product{}, apperror.NotFound(apperror.MsgProductMissing)
		}
		return payment.Product{}, s.fail(ctx, flow, "fetchProduct", apperror.MsgFetchPrefix, err)
	}
	return product, nil
}

// stepView is the header every entry step shows.
type stepView struct {
	FormattedAmount string `json:"formattedAmount"`
	CurrencyCode    string `json:"currencyCode"`
	ProductID       int    `json:"paymentProductId"`
	ProductLabel    string `json:"productLabel"`
}

// enterStep clears prepared payment data when an entry step is (re)opened.
func (s *Service) enterStep(ctx context.Context, flow Flow, op string) error {
	return s.persist(ctx, flow, op, clearedPaymentData())
}
