package checkout

import (
	"context"
	"encoding/json"

	"PayFlow/internal/domain/payment"
)

//go:generate mockgen -source ports.go -destination mock_ports.go -package checkout

// Session is the client SDK session built from the merchant's session details.
type Session interface {
	GetBasicPaymentItems(ctx context.Context, pctx payment.Context) (payment.BasicPaymentItems, error)
	GetPaymentProduct(ctx context.Context, productID int, pctx payment.Context) (payment.Product, error)
	GetIinDetails(ctx context.Context, partialCardNumber string, pctx payment.Context) (payment.IinDetails, error)
	GetCurrencyConversionQuote(ctx context.Context, amount payment.AmountOfMoney, card payment.CardSource) (payment.CurrencyConversion, error)
	GetSurchargeCalculation(ctx context.Context, amount payment.AmountOfMoney, card payment.CardSource) (payment.SurchargeCalculation, error)
	Encryptor() Encryptor
}

// Encryptor turns a completed request into the opaque payload the platform decrypts.
type Encryptor interface {
	Encrypt(ctx context.Context, req *payment.Request) (string, error)
}

// SessionFactory builds an SDK session. It fails on unusable session details.
type SessionFactory interface {
	NewSession(details payment.SessionDetails) (Session, error)
}

// MockAPI is the local merchant backend.
type MockAPI interface {
	GetSession(ctx context.Context) (payment.SessionDetails, error)
	CreatePayment(ctx context.Context, req payment.CreatePaymentRequest) (json.RawMessage, error)
	Tokens(ctx context.Context, merchantID string) ([]payment.SavedToken, error)
}
