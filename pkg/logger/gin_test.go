package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedact(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected map[string]any
	}{
		{
			name:  "card values are masked",
			input: `{"cardNumber":"4111111111111111","cvv":"123","amount":1000}`,
			expected: map[string]any{
				"cardNumber": "***",
				"cvv":        "***",
				"amount":     float64(1000),
			},
		},
		{
			name:  "nested payloads are masked",
			input: `{"paymentRequest":{"expiryDate":"1230","tokenize":true},"data":"eyJ..."}`,
			expected: map[string]any{
				"paymentRequest": map[string]any{"expiryDate": "***", "tokenize": true},
				"data":           "***",
			},
		},
		{
			name:  "card data shown on the finalize step",
			input: `{"label":"Object:","payload":"{\n  \"cvv\": \"987\",\n  \"paymentProductId\": 1,\n  \"token\": \"t1\"\n}","paymentRequest":{"paymentProductId":1,"values":{"cvv":"987"},"tokenize":false},"canSubmit":true}`,
			expected: map[string]any{
				"label":   "Object:",
				"payload": "***",
				"paymentRequest": map[string]any{
					"paymentProductId": float64(1),
					"values":           map[string]any{"cvv": "***"},
					"tokenize":         false,
				},
				"canSubmit": true,
			},
		},
		{
			name:  "encrypted payload shown on the finalize step",
			input: `{"label":"Encrypted string:","payload":"eyJhbGciOiJSU0EtT0FFUCJ9.SECRET","canSubmit":false}`,
			expected: map[string]any{
				"label":     "Encrypted string:",
				"payload":   "***",
				"canSubmit": false,
			},
		},
		{
			name:  "json carried in a string is redacted too",
			input: `{"note":"{\"cvv\":\"123\",\"amount\":5}","text":"plain"}`,
			expected: map[string]any{
				"note": `{"amount":5,"cvv":"***"}`,
				"text": "plain",
			},
		},
		{
			name:  "remembered tokens are masked",
			input: `{"tokens":["t1","t2"],"invalidTokens":["t3"]}`,
			expected: map[string]any{
				"tokens":        "***",
				"invalidTokens": "***",
			},
		},
		{
			name:  "null values stay null",
			input: `{"token":null}`,
			expected: map[string]any{
				"token": nil,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := Redact([]byte(tc.input))

			var got map[string]any
			require.NoError(t, json.Unmarshal(out, &got))
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestRedact_NonJSON(t *testing.T) {
	assert.Equal(t, "plain text", string(Redact([]byte("plain text"))))
	assert.Equal(t, "", string(Redact(nil)))
}

func TestGinBodyLogger_FinalizeResponseIsRedacted(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		name    string
		payload string
		secrets []string
	}{
		{
			name:    "card data object",
			payload: "{\n  \"cvv\": \"987\",\n  \"paymentProductId\": 1,\n  \"token\": \"t1\"\n}",
			secrets: []string{"987", `\"t1\"`},
		},
		{
			name:    "encrypted payload",
			payload: "eyJhbGciOiJSU0EtT0FFUCJ9.SECRET",
			secrets: []string{"SECRET"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			var buf bytes.Buffer
			zl := zerolog.New(&buf)
			l := &Logger{logger: &zl}

			engine := gin.New()
			engine.Use(l.GinBodyLogger())
			engine.GET("/payment/finalize", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"label": "Object:", "payload": tc.payload, "canSubmit": true})
			})

			// when
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payment/finalize", nil))

			// then the shopper still gets the payload, the log does not
			assert.Equal(t, http.StatusOK, w.Code)
			for _, secret := range tc.secrets {
				assert.NotContains(t, buf.String(), secret)
			}
			assert.Contains(t, buf.String(), `"payload":"***"`)
		})
	}
}
