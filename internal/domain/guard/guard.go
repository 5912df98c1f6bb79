// Package guard holds the navigation predicates that decide whether a flow
// step may be entered with the current state.
package guard

import "PayFlow/internal/store"

// Step is the path of one page of the flow.
type Step string

const (
	StepSession       Step = "/"
	StepPayment       Step = "/payment"
	StepCreditCard    Step = "/payment/credit-card"
	StepAccountOnFile Step = "/payment/account-on-file"
	StepGooglePay     Step = "/payment/google-pay"
	StepFinalize      Step = "/payment/finalize"
)

// Decision is the outcome of evaluating a guard.
type Decision struct {
	Allowed  bool
	Redirect Step
	Guard    string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func redirect(guard string, to Step) Decision {
	return Decision{Redirect: to, Guard: guard}
}

// Guard inspects the state and never mutates it.
type Guard interface {
	Name() string
	Check(state store.State) Decision
}

type Func struct {
	name  string
	check func(state store.State) bool
	to    Step
}

func (f Func) Name() string {
	return f.name
}

func (f Func) Check(state store.State) Decision {
	if f.check(state) {
		return allow()
	}
	return redirect(f.name, f.to)
}

var (
	RequiresSession = Func{
		name:  "requiresSession",
		check: func(s store.State) bool { return s.Session != nil },
		to:    StepSession,
	}

	RequiresProduct = Func{
		name:  "requiresProduct",
		check: func(s store.State) bool { return s.PaymentProduct != nil },
		to:    StepPayment,
	}

	RequiresAccountOnFile = Func{
		name:  "requiresAccountOnFile",
		check: func(s store.State) bool { return s.AccountOnFileID != nil },
		to:    StepPayment,
	}

	RequiresFinalizeData = Func{
		name:  "requiresFinalizeData",
		check: func(s store.State) bool { return s.EncryptedData != nil || s.CardPaymentSpecificData != nil },
		to:    StepPayment,
	}
)

// Chain evaluates guards in order and returns the first redirect.
type Chain []Guard

func (c Chain) Check(state store.State) Decision {
	for _, g := range c {
		if d := g.Check(state); !d.Allowed {
			return d
		}
	}
	return allow()
}

// ForStep returns the guard chain protecting a step.
func ForStep(step Step) Chain {
	switch step {
	case StepPayment:
		return Chain{RequiresSession}
	case StepCreditCard, StepGooglePay:
		return Chain{RequiresSession, RequiresProduct}
	case StepAccountOnFile:
		return Chain{RequiresSession, RequiresProduct, RequiresAccountOnFile}
	case StepFinalize:
		return Chain{RequiresSession, RequiresProduct, RequiresFinalizeData}
	default:
		return nil
	}
}
