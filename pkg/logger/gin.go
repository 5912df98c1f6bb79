package logger

import (
	"bytes"
	"encoding/json"
	"io"

	"PayFlow/pkg/correlation"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const maxBody = 8 * 1024 // 8KB

const redacted = "***"

// sensitiveKeys are replaced before a body reaches the log.
var sensitiveKeys = map[string]struct{}{
	"cardNumber":             {},
	"cvv":                    {},
	"expiryDate":             {},
	"token":                  {},
	"encryptedPaymentData":   {},
	"encryptedCustomerInput": {},
	"data":                   {},
	"encryptedData":          {},
	"payload":                {},
	"tokens":                 {},
	"invalidTokens":          {},
}

func limit(b []byte) []byte {
	if len(b) > maxBody {
		return b[:maxBody]
	}
	return b
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// CorrelationMiddleware extracts X-Correlation-ID from request header or generates a new one.
// It stores the ID in the request context and adds it to the response header.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		corrID := c.GetHeader(correlation.HeaderName)
		if corrID == "" {
			corrID = correlation.NewID()
		}

		ctx := correlation.WithID(c.Request.Context(), corrID)
		c.Request = c.Request.WithContext(ctx)

		c.Header(correlation.HeaderName, corrID)

		c.Next()
	}
}

func (l *Logger) GinBodyLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		responseBuffer := &bytes.Buffer{}
		writer := &responseBodyWriter{
			body:           responseBuffer,
			ResponseWriter: c.Writer,
		}
		c.Writer = writer

		c.Next()

		logEvent := l.logger.Info()

		if corrID := correlation.FromContext(c.Request.Context()); corrID != "" {
			logEvent = logEvent.Str("correlation_id", corrID)
		}
		if flowID := correlation.FlowFromContext(c.Request.Context()); flowID != "" {
			logEvent = logEvent.Str("flow_id", flowID)
		}

		logEvent = logEvent.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("query", c.Request.URL.RawQuery).
			Int("status", c.Writer.Status())

		logEvent = addMaybeJSON(logEvent, "request_body", limit(Redact(requestBody)))
		logEvent = addMaybeJSON(logEvent, "response_body", limit(Redact(responseBuffer.Bytes())))

		logEvent.Msg("HTTP Request")
	}
}

// Redact masks card data and encrypted payloads in a JSON body.
// Non-JSON input is returned unchanged.
func Redact(b []byte) []byte {
	bb := bytes.TrimSpace(b)
	if len(bb) == 0 || (bb[0] != '{' && bb[0] != '[') {
		return b
	}

	var v any
	if err := json.Unmarshal(bb, &v); err != nil {
		return b
	}

	out, err := json.Marshal(redactValue(v))
	if err != nil {
		return b
	}
	return out
}

func redactValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, inner := range t {
			if _, ok := sensitiveKeys[k]; ok && inner != nil {
				t[k] = redacted
				continue
			}
			t[k] = redactValue(inner)
		}
		return t
	case []any:
		for i := range t {
			t[i] = redactValue(t[i])
		}
		return t
	case string:
		return redactEmbedded(t)
	default:
		return v
	}
}

// redactEmbedded redacts a JSON document carried as a string value, such as a
// pretty-printed object shown to the shopper.
func redactEmbedded(s string) any {
	trimmed := bytes.TrimSpace([]byte(s))
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return s
	}
	var inner any
	if err := json.Unmarshal(trimmed, &inner); err != nil {
		return s
	}
	out, err := json.Marshal(redactValue(inner))
	if err != nil {
		return redacted
	}
	return string(out)
}

func addMaybeJSON(e *zerolog.Event, key string, b []byte) *zerolog.Event {
	bb := bytes.TrimSpace(b)

	if len(bb) == 0 {
		return e.RawJSON(key, []byte("null"))
	}

	if json.Valid(bb) {
		return e.RawJSON(key, bb)
	}

	return e.Str(key, string(bb))
}
