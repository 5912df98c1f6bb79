package checkout

import (
	"context"
	"sync"
	"testing"

	"PayFlow/internal/domain/loader"
	"PayFlow/internal/domain/payment"
	"PayFlow/internal/messaging"
	"PayFlow/internal/store"
	"PayFlow/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []messaging.Envelope
}

func (p *recordingPublisher) Publish(_ context.Context, env messaging.Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, env)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type harness struct {
	svc       *Service
	flow      Flow
	session   *MockSession
	encryptor *MockEncryptor
	mockAPI   *MockMockAPI
	events    *recordingPublisher
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	factory := NewMockSessionFactory(ctrl)
	session := NewMockSession(ctrl)
	encryptor := NewMockEncryptor(ctrl)
	mockAPI := NewMockMockAPI(ctrl)
	events := &recordingPublisher{}

	factory.EXPECT().NewSession(gomock.Any()).Return(session, nil).AnyTimes()
	session.EXPECT().Encryptor().Return(encryptor).AnyTimes()

	st := store.New(store.NewMemoryBackend(), store.DefaultKey, logger.Nop())
	flowID := "flow-1"

	return &harness{
		svc:       NewService(factory, mockAPI, events, loader.NewSet(), logger.Nop()),
		flow:      Flow{ID: flowID, State: st.Gateway(flowID)},
		session:   session,
		encryptor: encryptor,
		mockAPI:   mockAPI,
		events:    events,
	}
}

// seed writes the given slots straight into the record.
func (h *harness) seed(t *testing.T, values map[store.Field]any) {
	t.Helper()
	require.NoError(t, h.flow.State.Update(context.Background(), values))
}

func validSession() payment.SessionDetails {
	return payment.SessionDetails{
		AssetURL:        "https://assets.example.com/",
		ClientAPIURL:    "https://clientapi.example.com/",
		ClientSessionID: "session-1",
		CustomerID:      "customer-1",
	}
}

func usdContext() payment.Context {
	return payment.Context{
		AmountOfMoney: payment.AmountOfMoney{Amount: 2599, CurrencyCode: "USD"},
		CountryCode:   "US",
	}
}

func visaProduct() payment.Product {
	return payment.Product{
		ID:                 1,
		PaymentMethod:      payment.MethodCard,
		AllowsTokenization: true,
		DisplayHints:       &payment.DisplayHints{Label: "VISA"},
		Fields: []payment.Field{
			{
				ID: "cardNumber",
				DataRestrictions: payment.DataRestrictions{
					IsRequired: true,
					Validators: payment.Validators{
						Length: &payment.LengthValidator{MinLength: 12, MaxLength: 19},
					},
				},
				DisplayHints: payment.FieldDisplayHints{Mask: "{{9999}} {{9999}} {{9999}} {{9999}} {{999}}"},
			},
			{
				ID: "expiryDate",
				DataRestrictions: payment.DataRestrictions{
					IsRequired: true,
				},
				DisplayHints: payment.FieldDisplayHints{Mask: "{{99}}/{{99}}"},
			},
			{
				ID: "cvv",
				DataRestrictions: payment.DataRestrictions{
					IsRequired: true,
					Validators: payment.Validators{
						Length: &payment.LengthValidator{MinLength: 3, MaxLength: 4},
					},
				},
			},
		},
		AccountsOnFile: []payment.AccountOnFile{
			{
				ID:               "t1",
				PaymentProductID: 1,
				Attributes: []payment.AccountOnFileAttribute{
					{Key: "alias", Value: "************1111", Status: payment.AttributeReadOnly},
					{Key: "cardNumber", Value: "************1111", Status: payment.AttributeReadOnly},
					{Key: "expiryDate", Value: "1230", Status: payment.AttributeReadOnly},
					{Key: "cardholderName", Value: "Wile E. Coyote", Status: payment.AttributeReadOnly},
				},
				DisplayHints: payment.AccountOnFileDisplayHints{
					LabelTemplate: []payment.LabelTemplateElement{{AttributeKey: "alias"}},
				},
			},
		},
	}
}

func googlePayProduct() payment.Product {
	return payment.Product{
		ID:            320,
		PaymentMethod: payment.MethodMobile,
		DisplayHints:  &payment.DisplayHints{Label: payment.GooglePayLabel},
		PaymentProduct320SpecificData: &payment.PaymentProduct320SpecificData{
			Gateway:  "acme",
			Networks: []string{"VISA"},
		},
	}
}

func sepaProduct() payment.Product {
	return payment.Product{
		ID:            770,
		PaymentMethod: "directDebit",
		DisplayHints:  &payment.DisplayHints{Label: "SEPA"},
	}
}

// atCardStep seeds a flow that has picked the visa product.
func (h *harness) atCardStep(t *testing.T) {
	h.seed(t, map[store.Field]any{
		store.FieldSession:        validSession(),
		store.FieldPaymentContext: usdContext(),
		store.FieldPaymentProduct: visaProduct(),
	})
}
