// Package checkout implements the steps of the payment flow on top of the
// flow state gateway, the client SDK session and the mock merchant API.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"PayFlow/internal/apperror"
	"PayFlow/internal/domain/guard"
	"PayFlow/internal/domain/loader"
	"PayFlow/internal/domain/payment"
	"PayFlow/internal/messaging"
	"PayFlow/internal/store"
	"PayFlow/pkg/logger"
	"PayFlow/pkg/metrics"
)

type Service struct {
	sessions  SessionFactory
	mockAPI   MockAPI
	publisher messaging.Publisher
	loaders   *loader.Set
	l         *logger.Logger
}

// NewService wires the flow steps. mockAPI may be nil when the mock API is disabled.
func NewService(
	sessions SessionFactory,
	mockAPI MockAPI,
	publisher messaging.Publisher,
	loaders *loader.Set,
	l *logger.Logger,
) *Service {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	if loaders == nil {
		loaders = loader.NewSet()
	}
	return &Service{
		sessions:  sessions,
		mockAPI:   mockAPI,
		publisher: publisher,
		loaders:   loaders,
		l:         l,
	}
}

// Flow addresses the state of one shopper.
type Flow struct {
	ID    string
	State *store.Gateway
}

// MockAPIEnabled reports whether session fetching and payment submission are available.
func (s *Service) MockAPIEnabled() bool {
	return s.mockAPI != nil
}

// Busy reports whether the flow has an external call in flight.
func (s *Service) Busy(flowID string) bool {
	return s.loaders.Visible(flowID)
}

// require re-checks the guards of a step against the current state.
func (s *Service) require(ctx context.Context, flow Flow, step guard.Step) (store.State, error) {
	state := flow.State.State(ctx)
	if d := guard.ForStep(step).Check(state); !d.Allowed {
		return state, apperror.Precondition(string(d.Redirect))
	}
	return state, nil
}

func (s *Service) session(state store.State) (Session, error) {
	sess, err := s.sessions.NewSession(*state.Session)
	if err != nil {
		return nil, apperror.Validation(err.Error(), nil)
	}
	return sess, nil
}

// call brackets one external call with the flow's loader and records its latency.
func call[T any](s *Service, ctx context.Context, flow Flow, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	hide := s.loaders.Track(flow.ID)
	defer hide()

	start := time.Now()
	res, err := fn(ctx)
	metrics.ExternalCallDuration.WithLabelValues(op, metrics.CallStatus(err)).Observe(time.Since(start).Seconds())
	return res, err
}

// fail maps a collaborator error onto the flow's error taxonomy. A 403 means the
// session expired: the record is cleared before the error is returned.
func (s *Service) fail(ctx context.Context, flow Flow, op, prefix string, err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("checkout - %s: %w", op, err)
	}

	var upstream *apperror.UpstreamError
	if errors.As(err, &upstream) {
		if upstream.Forbidden() {
			s.l.WithContext(ctx).Warn("checkout - %s - session expired, clearing flow: flow=%s", op, flow.ID)
			s.clear(ctx, flow, "unauthorized")
			return apperror.Unauthorized(err)
		}
		if upstream.Status == 0 {
			return apperror.Network(err)
		}
		s.l.WithContext(ctx).Info("checkout - %s - upstream error: flow=%s err=%v", op, flow.ID, err)
		return apperror.API(prefix, upstream.Messages, err)
	}

	s.l.WithContext(ctx).Error(fmt.Errorf("checkout - %s: %w", op, err))
	return apperror.Network(err)
}

func isNotFound(err error) bool {
	var upstream *apperror.UpstreamError
	return errors.As(err, &upstream) && upstream.Status == http.StatusNotFound
}

func (s *Service) clear(ctx context.Context, flow Flow, reason string) {
	if err := flow.State.ClearAll(ctx); err != nil {
		s.l.WithContext(ctx).Error(fmt.Errorf("checkout - clear - ClearAll: %w", err))
		return
	}
	s.publish(ctx, flow, messaging.TypeSessionCleared, messaging.SessionCleared{FlowID: flow.ID, Reason: reason})
}

func (s *Service) publish(ctx context.Context, flow Flow, eventType string, payload any) {
	env, err := messaging.NewEnvelope(flow.ID, eventType, payload)
	if err != nil {
		s.l.WithContext(ctx).Error(fmt.Errorf("checkout - publish - NewEnvelope: %w", err))
		return
	}
	if err := s.publisher.Publish(ctx, env); err != nil {
		s.l.WithContext(ctx).Warn("checkout - publish - event dropped: type=%s flow=%s err=%v", eventType, flow.ID, err)
	}
}

func (s *Service) persist(ctx context.Context, flow Flow, op string, values map[store.Field]any) error {
	if err := flow.State.Update(ctx, values); err != nil {
		return fmt.Errorf("checkout - %s - Update: %w", op, err)
	}
	return nil
}

// contextOrDefault returns the stored payment context, or the default one.
func contextOrDefault(state store.State) payment.Context {
	if state.PaymentContext != nil {
		return *state.PaymentContext
	}
	return payment.DefaultContext()
}

// clearedPaymentData resets both finalize slots, so at most one is ever set.
func clearedPaymentData() map[store.Field]any {
	return map[store.Field]any{
		store.FieldEncryptedData:           nil,
		store.FieldCardPaymentSpecificData: nil,
	}
}
