package clientapi

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"PayFlow/internal/domain/payment"

	"github.com/go-jose/go-jose/v4"
	"github.com/google/uuid"
)

var ErrUnsupportedKey = errors.New("public key is not an RSA key")

// Encryptor encrypts payment requests with the session's public key as a
// compact JWE (RSA-OAEP, A256CBC-HS512). The key is fetched once per session.
type Encryptor struct {
	session *Session

	mu    sync.Mutex
	keyID string
	key   *rsa.PublicKey
}

type paymentValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type deviceInformation struct {
	TimezoneOffsetUtcMinutes int    `json:"timezoneOffsetUtcMinutes"`
	Locale                   string `json:"locale"`
	JavaScriptEnabled        bool   `json:"javaScriptEnabled"`
	ColorDepth               int    `json:"colorDepth"`
	ScreenHeight             int    `json:"screenHeight"`
	ScreenWidth              int    `json:"screenWidth"`
}

type encryptedPayload struct {
	ClientSessionID            string            `json:"clientSessionId"`
	Nonce                      string            `json:"nonce"`
	PaymentProductID           int               `json:"paymentProductId"`
	AccountOnFileID            string            `json:"accountOnFileId,omitempty"`
	Tokenize                   bool              `json:"tokenize"`
	PaymentValues              []paymentValue    `json:"paymentValues"`
	CollectedDeviceInformation deviceInformation `json:"collectedDeviceInformation"`
}

func (e *Encryptor) Encrypt(ctx context.Context, req *payment.Request) (string, error) {
	keyID, key, err := e.publicKey(ctx)
	if err != nil {
		return "", err
	}

	payload := encryptedPayload{
		ClientSessionID:  e.session.clientSessionID,
		Nonce:            strings.ReplaceAll(uuid.NewString(), "-", ""),
		PaymentProductID: req.Product().ID,
		Tokenize:         req.Tokenize(),
		PaymentValues:    []paymentValue{},
		CollectedDeviceInformation: deviceInformation{
			TimezoneOffsetUtcMinutes: timezoneOffsetMinutes(time.Now()),
			Locale:                   "en_GB",
			JavaScriptEnabled:        false,
			ColorDepth:               24,
			ScreenHeight:             768,
			ScreenWidth:              1024,
		},
	}
	if aof := req.AccountOnFile(); aof != nil {
		payload.AccountOnFileID = aof.ID
	}
	values := req.UnmaskedValues()
	for _, k := range req.Keys() {
		payload.PaymentValues = append(payload.PaymentValues, paymentValue{Key: k, Value: values[k]})
	}

	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	encrypter, err := jose.NewEncrypter(
		jose.A256CBC_HS512,
		jose.Recipient{Algorithm: jose.RSA_OAEP, Key: key, KeyID: keyID},
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("create encrypter: %w", err)
	}

	jwe, err := encrypter.Encrypt(plaintext)
	if err != nil {
		return "", fmt.Errorf("encrypt payload: %w", err)
	}
	return jwe.CompactSerialize()
}

func (e *Encryptor) publicKey(ctx context.Context) (string, *rsa.PublicKey, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.key != nil {
		return e.keyID, e.key, nil
	}

	resp, err := e.session.getPublicKey(ctx)
	if err != nil {
		return "", nil, err
	}
	key, err := ParsePublicKey(resp.PublicKey)
	if err != nil {
		return "", nil, err
	}

	e.keyID, e.key = resp.KeyID, key
	return e.keyID, e.key, nil
}

// ParsePublicKey decodes a base64 DER SubjectPublicKeyInfo holding an RSA key.
func ParsePublicKey(encoded string) (*rsa.PublicKey, error) {
	der, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	parsed, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, ErrUnsupportedKey
	}
	return key, nil
}

// timezoneOffsetMinutes follows the browser convention: minutes to add to local time to get UTC.
func timezoneOffsetMinutes(t time.Time) int {
	_, offset := t.Zone()
	return -offset / 60
}
