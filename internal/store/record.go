package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field names one slot of the flow state record.
type Field string

const (
	FieldSession                 Field = "session"
	FieldPaymentContext          Field = "paymentContext"
	FieldPaymentProduct          Field = "paymentProduct"
	FieldAccountOnFileID         Field = "accountOnFileId"
	FieldEncryptedData           Field = "encryptedData"
	FieldCardPaymentSpecificData Field = "cardPaymentSpecificData"
	FieldPaymentRequest          Field = "paymentRequest"
)

// Fields lists every slot in record order.
var Fields = []Field{
	FieldSession,
	FieldPaymentContext,
	FieldPaymentProduct,
	FieldAccountOnFileID,
	FieldEncryptedData,
	FieldCardPaymentSpecificData,
	FieldPaymentRequest,
}

func (f Field) Valid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

var null = json.RawMessage("null")

// Record is the persisted flow state. Every field is always present; absent values are JSON null.
type Record map[Field]json.RawMessage

// NewRecord returns the all-null record.
func NewRecord() Record {
	r := make(Record, len(Fields))
	for _, f := range Fields {
		r[f] = null
	}
	return r
}

// IsNull reports whether the field holds no value.
func (r Record) IsNull(f Field) bool {
	v, ok := r[f]
	return !ok || len(bytes.TrimSpace(v)) == 0 || bytes.Equal(bytes.TrimSpace(v), null)
}

func (r Record) clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// decodeRecord parses a stored blob. Unknown keys are dropped and missing keys become null.
// Anything that is not a JSON object is an error.
func decodeRecord(data []byte) (Record, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("decode record: not an object")
	}

	r := NewRecord()
	for _, f := range Fields {
		if v, ok := raw[string(f)]; ok && len(v) > 0 {
			r[f] = v
		}
	}
	return r, nil
}

func encodeRecord(r Record) ([]byte, error) {
	out := make(map[string]json.RawMessage, len(Fields))
	for _, f := range Fields {
		v, ok := r[f]
		if !ok || len(v) == 0 {
			v = null
		}
		out[string(f)] = v
	}
	return json.Marshal(out)
}
