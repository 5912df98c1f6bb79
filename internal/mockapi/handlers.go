package mockapi

import (
	"errors"
	"net/http"

	"PayFlow/internal/domain/gateway"
	"PayFlow/internal/domain/payment"
	"PayFlow/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TokenListing is one entry of GET /tokens/:merchantId.
type TokenListing struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Label     string `json:"label"`
	ProductID int    `json:"productId"`
}

type MerchantHandler struct {
	provider gateway.Provider
	tokens   *TokenStore
	l        *logger.Logger
}

func NewMerchantHandler(provider gateway.Provider, tokens *TokenStore, l *logger.Logger) *MerchantHandler {
	return &MerchantHandler{provider: provider, tokens: tokens, l: l}
}

// CreateSession opens a client session for the stored tokens and forgets the
// tokens the provider no longer knows.
func (h *MerchantHandler) CreateSession(c *gin.Context) {
	ctx := c.Request.Context()

	tokens, err := h.tokens.List(ctx)
	if err != nil {
		h.l.WithContext(ctx).Error("mockapi - CreateSession - tokens.List: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	res, err := h.provider.CreateSession(ctx, gateway.SessionRequest{Tokens: tokens})
	if err != nil {
		h.relayError(c, "CreateSession", err)
		return
	}

	if len(res.InvalidTokens) > 0 {
		if err := h.tokens.Remove(ctx, res.InvalidTokens...); err != nil {
			h.l.WithContext(ctx).Error("mockapi - CreateSession - tokens.Remove: %v", err)
		}
	}

	c.JSON(http.StatusOK, res)
}

// CreatePayment forwards the payment and relays the provider's status and body.
func (h *MerchantHandler) CreatePayment(c *gin.Context) {
	ctx := c.Request.Context()

	var in payment.CreatePaymentRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	res, err := h.provider.CreatePayment(ctx, gateway.NewPaymentRequest(in))
	if err != nil {
		h.relayError(c, "CreatePayment", err)
		return
	}

	if token := res.CreationToken(); token != "" {
		if err := h.tokens.Add(ctx, token); err != nil {
			h.l.WithContext(ctx).Error("mockapi - CreatePayment - tokens.Add: %v", err)
		}
	}

	c.Data(res.Status, "application/json; charset=utf-8", res.Body)
}

// ListTokens resolves every stored token; tokens without an alias or that
// the provider rejects are left out.
func (h *MerchantHandler) ListTokens(c *gin.Context) {
	ctx := c.Request.Context()

	tokens, err := h.tokens.List(ctx)
	if err != nil {
		h.l.WithContext(ctx).Error("mockapi - ListTokens - tokens.List: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	result := make([]TokenListing, 0, len(tokens))
	for _, id := range tokens {
		tok, err := h.provider.GetToken(ctx, id)
		if err != nil {
			h.l.WithContext(ctx).Debug("mockapi - ListTokens - skip token: id=%s err=%v", id, err)
			continue
		}
		kind, alias, ok := tok.Label()
		if !ok {
			continue
		}
		result = append(result, TokenListing{ID: id, Type: kind, Label: alias, ProductID: tok.PaymentProductID})
	}

	c.JSON(http.StatusOK, result)
}

// Fallback answers unknown routes: OPTIONS gets 200 {}, anything else 404.
func Fallback(c *gin.Context) {
	if c.Request.Method == http.MethodOptions {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
}

func (h *MerchantHandler) relayError(c *gin.Context, op string, err error) {
	var respErr *gateway.ResponseError
	if errors.As(err, &respErr) {
		c.Data(respErr.Status, "application/json; charset=utf-8", respErr.Body)
		return
	}

	h.l.WithContext(c.Request.Context()).Error("mockapi - %s - provider: %v", op, err)
	c.JSON(http.StatusBadGateway, gin.H{"message": err.Error()})
}
