package checkout

import (
	"context"
	"fmt"

	"PayFlow/internal/apperror"
	"PayFlow/internal/domain/guard"
	"PayFlow/internal/domain/payment"
	"PayFlow/internal/messaging"
	"PayFlow/internal/store"
)

type SessionView struct {
	Session    *payment.SessionDetails `json:"session"`
	UseMockAPI bool                    `json:"useMockApi"`
}

// SessionView returns the stored session, used to prefill the session form.
func (s *Service) SessionView(ctx context.Context, flow Flow) SessionView {
	return SessionView{
		Session:    flow.State.Session(ctx),
		UseMockAPI: s.MockAPIEnabled(),
	}
}

// FetchSessionFromAPI asks the mock API for fresh session details. Nothing is stored.
func (s *Service) FetchSessionFromAPI(ctx context.Context, flow Flow) (payment.SessionDetails, error) {
	if s.mockAPI == nil {
		return payment.SessionDetails{}, apperror.Unsupported("The mock API is disabled.")
	}

	details, err := call(s, ctx, flow, "mockapi.get_session", s.mockAPI.GetSession)
	if err != nil {
		return payment.SessionDetails{}, s.fail(ctx, flow, "FetchSessionFromAPI", apperror.MsgFetchPrefix, err)
	}
	return details, nil
}

// StartSession replaces the whole record with a fresh one holding only the session.
func (s *Service) StartSession(ctx context.Context, flow Flow, details payment.SessionDetails) (guard.Step, error) {
	if fields := details.Validate(); fields != nil {
		return "", apperror.Validation(apperror.MsgFillAllData, fields)
	}
	if _, err := s.sessions.NewSession(details); err != nil {
		return "", apperror.Validation(err.Error(), nil)
	}

	if err := flow.State.Reset(ctx, map[store.Field]any{store.FieldSession: details}); err != nil {
		return "", fmt.Errorf("checkout - StartSession - Reset: %w", err)
	}

	s.publish(ctx, flow, messaging.TypeSessionStarted, messaging.SessionStarted{
		FlowID:          flow.ID,
		ClientSessionID: details.ClientSessionID,
		CustomerID:      details.CustomerID,
	})
	return guard.StepPayment, nil
}

// Restart clears everything and sends the shopper back to session entry.
func (s *Service) Restart(ctx context.Context, flow Flow) (guard.Step, error) {
	if err := flow.State.ClearAll(ctx); err != nil {
		return "", err
	}
	s.publish(ctx, flow, messaging.TypeSessionCleared, messaging.SessionCleared{FlowID: flow.ID, Reason: "restart"})
	return guard.StepSession, nil
}
