package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"PayFlow/internal/domain/payment"
)

var ErrUnknownField = errors.New("unknown flow state field")

// Gateway is the typed view of one flow's record.
type Gateway struct {
	store *Store
	key   string
}

// Key returns the storage key backing this gateway.
func (g *Gateway) Key() string {
	return g.key
}

// Snapshot returns a copy of the whole record.
func (g *Gateway) Snapshot(ctx context.Context) Record {
	return g.store.read(ctx, g.key).clone()
}

// Get returns the raw value of a field, or nil when it is null. It never fails.
func (g *Gateway) Get(ctx context.Context, f Field) json.RawMessage {
	r := g.store.read(ctx, g.key)
	if r.IsNull(f) {
		return nil
	}
	return r[f]
}

// Set overwrites one field and persists before returning. A nil value clears the field.
func (g *Gateway) Set(ctx context.Context, f Field, value any) error {
	return g.Update(ctx, map[Field]any{f: value})
}

// Update applies several field changes in one read-modify-write.
func (g *Gateway) Update(ctx context.Context, values map[Field]any) error {
	encoded, err := encodeValues(values)
	if err != nil {
		return err
	}

	return g.store.update(ctx, g.key, func(r Record) error {
		for f, raw := range encoded {
			r[f] = raw
		}
		return nil
	})
}

func (g *Gateway) ClearField(ctx context.Context, f Field) error {
	return g.Set(ctx, f, nil)
}

// ClearAll drops the record. An absent record reads as all-null.
func (g *Gateway) ClearAll(ctx context.Context) error {
	return g.store.clear(ctx, g.key)
}

// Reset replaces the whole record in one write: every field is null except the given ones.
func (g *Gateway) Reset(ctx context.Context, values map[Field]any) error {
	encoded, err := encodeValues(values)
	if err != nil {
		return err
	}
	return g.store.replace(ctx, g.key, func(r Record) {
		for f, raw := range encoded {
			r[f] = raw
		}
	})
}

func encodeValues(values map[Field]any) (map[Field]json.RawMessage, error) {
	encoded := make(map[Field]json.RawMessage, len(values))
	for f, v := range values {
		if !f.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
		raw, err := encodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", f, err)
		}
		encoded[f] = raw
	}
	return encoded, nil
}

func encodeValue(v any) (json.RawMessage, error) {
	switch t := v.(type) {
	case nil:
		return null, nil
	case json.RawMessage:
		if len(t) == 0 {
			return null, nil
		}
		if !json.Valid(t) {
			return nil, fmt.Errorf("invalid raw json")
		}
		return append(json.RawMessage(nil), t...), nil
	}

	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// decode reads a field into T. Values that no longer decode are logged and treated as absent.
func decode[T any](ctx context.Context, g *Gateway, f Field) *T {
	return decodeField[T](ctx, g, g.store.read(ctx, g.key), f)
}

func decodeField[T any](ctx context.Context, g *Gateway, r Record, f Field) *T {
	if r.IsNull(f) {
		return nil
	}
	var v T
	if err := json.Unmarshal(r[f], &v); err != nil {
		g.store.l.WithContext(ctx).Warn("store - decode - field=%s key=%s err=%v", f, g.key, err)
		return nil
	}
	return &v
}

func (g *Gateway) Session(ctx context.Context) *payment.SessionDetails {
	return decode[payment.SessionDetails](ctx, g, FieldSession)
}

func (g *Gateway) PaymentContext(ctx context.Context) *payment.Context {
	return decode[payment.Context](ctx, g, FieldPaymentContext)
}

func (g *Gateway) PaymentProduct(ctx context.Context) *payment.Product {
	return decode[payment.Product](ctx, g, FieldPaymentProduct)
}

func (g *Gateway) AccountOnFileID(ctx context.Context) *string {
	return decode[string](ctx, g, FieldAccountOnFileID)
}

func (g *Gateway) EncryptedData(ctx context.Context) *string {
	return decode[string](ctx, g, FieldEncryptedData)
}

func (g *Gateway) CardPaymentSpecificData(ctx context.Context) *payment.CardPaymentSpecificData {
	return decode[payment.CardPaymentSpecificData](ctx, g, FieldCardPaymentSpecificData)
}

func (g *Gateway) PaymentRequest(ctx context.Context) *payment.RequestSnapshot {
	return decode[payment.RequestSnapshot](ctx, g, FieldPaymentRequest)
}

// State is the decoded record.
type State struct {
	Session                 *payment.SessionDetails          `json:"session"`
	PaymentContext          *payment.Context                 `json:"paymentContext"`
	PaymentProduct          *payment.Product                 `json:"paymentProduct"`
	AccountOnFileID         *string                          `json:"accountOnFileId"`
	EncryptedData           *string                          `json:"encryptedData"`
	CardPaymentSpecificData *payment.CardPaymentSpecificData `json:"cardPaymentSpecificData"`
	PaymentRequest          *payment.RequestSnapshot         `json:"paymentRequest"`
}

// State decodes the whole record from a single read.
func (g *Gateway) State(ctx context.Context) State {
	r := g.store.read(ctx, g.key)

	return State{
		Session:                 decodeField[payment.SessionDetails](ctx, g, r, FieldSession),
		PaymentContext:          decodeField[payment.Context](ctx, g, r, FieldPaymentContext),
		PaymentProduct:          decodeField[payment.Product](ctx, g, r, FieldPaymentProduct),
		AccountOnFileID:         decodeField[string](ctx, g, r, FieldAccountOnFileID),
		EncryptedData:           decodeField[string](ctx, g, r, FieldEncryptedData),
		CardPaymentSpecificData: decodeField[payment.CardPaymentSpecificData](ctx, g, r, FieldCardPaymentSpecificData),
		PaymentRequest:          decodeField[payment.RequestSnapshot](ctx, g, r, FieldPaymentRequest),
	}
}
