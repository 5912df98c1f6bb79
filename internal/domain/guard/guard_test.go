package guard

import (
	"testing"

	"PayFlow/internal/domain/payment"
	"PayFlow/internal/store"

	"github.com/stretchr/testify/assert"
)

// allStates enumerates every combination of present/absent fields.
func allStates() []store.State {
	aof, enc := "aof", "enc"
	var states []store.State
	for mask := 0; mask < 1<<7; mask++ {
		var s store.State
		if mask&1 != 0 {
			s.Session = &payment.SessionDetails{ClientSessionID: "s"}
		}
		if mask&2 != 0 {
			ctx := payment.DefaultContext()
			s.PaymentContext = &ctx
		}
		if mask&4 != 0 {
			s.PaymentProduct = &payment.Product{ID: 1, PaymentMethod: payment.MethodCard}
		}
		if mask&8 != 0 {
			s.AccountOnFileID = &aof
		}
		if mask&16 != 0 {
			s.EncryptedData = &enc
		}
		if mask&32 != 0 {
			s.CardPaymentSpecificData = &payment.CardPaymentSpecificData{Token: "t1"}
		}
		if mask&64 != 0 {
			s.PaymentRequest = &payment.RequestSnapshot{}
		}
		states = append(states, s)
	}
	return states
}

func TestGuards_IffProperties(t *testing.T) {
	for _, s := range allStates() {
		d := RequiresSession.Check(s)
		assert.Equal(t, s.Session != nil, d.Allowed)
		if !d.Allowed {
			assert.Equal(t, StepSession, d.Redirect)
		}

		d = RequiresProduct.Check(s)
		assert.Equal(t, s.PaymentProduct != nil, d.Allowed)
		if !d.Allowed {
			assert.Equal(t, StepPayment, d.Redirect)
		}

		d = RequiresAccountOnFile.Check(s)
		assert.Equal(t, s.AccountOnFileID != nil, d.Allowed)
		if !d.Allowed {
			assert.Equal(t, StepPayment, d.Redirect)
		}

		d = RequiresFinalizeData.Check(s)
		assert.Equal(t, s.EncryptedData != nil || s.CardPaymentSpecificData != nil, d.Allowed)
		if !d.Allowed {
			assert.Equal(t, StepPayment, d.Redirect)
		}
	}
}

func TestForStep(t *testing.T) {
	session := &payment.SessionDetails{ClientSessionID: "s"}
	product := &payment.Product{ID: 1}

	testCases := []struct {
		name     string
		step     Step
		state    store.State
		expected Decision
	}{
		{
			name:     "session step is open",
			step:     StepSession,
			expected: Decision{Allowed: true},
		},
		{
			name:     "payment without session",
			step:     StepPayment,
			expected: Decision{Redirect: StepSession, Guard: "requiresSession"},
		},
		{
			name:     "credit card without product",
			step:     StepCreditCard,
			state:    store.State{Session: session},
			expected: Decision{Redirect: StepPayment, Guard: "requiresProduct"},
		},
		{
			name:     "session is checked before product",
			step:     StepGooglePay,
			expected: Decision{Redirect: StepSession, Guard: "requiresSession"},
		},
		{
			name:     "account on file without id",
			step:     StepAccountOnFile,
			state:    store.State{Session: session, PaymentProduct: product},
			expected: Decision{Redirect: StepPayment, Guard: "requiresAccountOnFile"},
		},
		{
			name: "finalize with card data",
			step: StepFinalize,
			state: store.State{
				Session:                 session,
				PaymentProduct:          product,
				CardPaymentSpecificData: &payment.CardPaymentSpecificData{Token: "t1", CVV: "123", PaymentProductID: 1},
			},
			expected: Decision{Allowed: true},
		},
		{
			name:     "finalize without data",
			step:     StepFinalize,
			state:    store.State{Session: session, PaymentProduct: product},
			expected: Decision{Redirect: StepPayment, Guard: "requiresFinalizeData"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ForStep(tc.step).Check(tc.state))
		})
	}
}
