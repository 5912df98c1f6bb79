package checkout

import (
	"context"
	"encoding/json"
	"fmt"

	"PayFlow/internal/apperror"
	"PayFlow/internal/domain/guard"
	"PayFlow/internal/domain/payment"
	"PayFlow/internal/messaging"
)

const (
	finalizeLabelObject    = "Object:"
	finalizeLabelEncrypted = "Encrypted string:"
)

type FinalizeView struct {
	Label          string                   `json:"label"`
	Payload        string                   `json:"payload"`
	PaymentRequest *payment.RequestSnapshot `json:"paymentRequest,omitempty"`
	CanSubmit      bool                     `json:"canSubmit"`
}

// FinalizeView shows what will be sent: the card data object or the encrypted payload.
func (s *Service) FinalizeView(ctx context.Context, flow Flow) (FinalizeView, error) {
	state, err := s.require(ctx, flow, guard.StepFinalize)
	if err != nil {
		return FinalizeView{}, err
	}

	view := FinalizeView{
		PaymentRequest: state.PaymentRequest,
		CanSubmit:      s.MockAPIEnabled(),
	}
	if state.CardPaymentSpecificData != nil {
		pretty, err := json.MarshalIndent(state.CardPaymentSpecificData, "", "  ")
		if err != nil {
			return FinalizeView{}, fmt.Errorf("checkout - FinalizeView - MarshalIndent: %w", err)
		}
		view.Label = finalizeLabelObject
		view.Payload = string(pretty)
		return view, nil
	}

	view.Label = finalizeLabelEncrypted
	view.Payload = *state.EncryptedData
	return view, nil
}

// SubmitPayment posts the prepared payment to the mock API and returns its raw response.
func (s *Service) SubmitPayment(ctx context.Context, flow Flow) (json.RawMessage, error) {
	state, err := s.require(ctx, flow, guard.StepFinalize)
	if err != nil {
		return nil, err
	}
	if s.mockAPI == nil {
		return nil, apperror.Unsupported("The mock API is disabled.")
	}

	pctx := contextOrDefault(state)
	req := payment.CreatePaymentRequest{
		Context:  &pctx,
		CardData: state.CardPaymentSpecificData,
	}
	if req.CardData == nil {
		req.EncryptedData = *state.EncryptedData
	}

	body, err := call(s, ctx, flow, "mockapi.create_payment", func(ctx context.Context) (json.RawMessage, error) {
		return s.mockAPI.CreatePayment(ctx, req)
	})
	if err != nil {
		return nil, s.fail(ctx, flow, "SubmitPayment", apperror.MsgSubmitPrefix, err)
	}

	s.publish(ctx, flow, messaging.TypePaymentSubmitted, messaging.PaymentSubmitted{
		FlowID:           flow.ID,
		PaymentProductID: state.PaymentProduct.ID,
		Method:           state.PaymentProduct.PaymentMethod,
		Amount:           pctx.AmountOfMoney.Amount,
		CurrencyCode:     pctx.AmountOfMoney.CurrencyCode,
		CountryCode:      pctx.CountryCode,
	})
	return body, nil
}
