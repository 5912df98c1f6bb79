package mockapi

import (
	"net/http"
	"strconv"
	"strings"

	"PayFlow/internal/domain/payment"
	"PayFlow/internal/external/merchant"
	"PayFlow/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const clientAuthPrefix = "GCS v1Client:"

// ClientAPIHandler serves the sandbox client API next to the merchant routes,
// so sessions created in sandbox mode point back at this server.
type ClientAPIHandler struct {
	sandbox *merchant.Sandbox
	l       *logger.Logger
}

func NewClientAPIHandler(sandbox *merchant.Sandbox, l *logger.Logger) *ClientAPIHandler {
	return &ClientAPIHandler{sandbox: sandbox, l: l}
}

// Authorize rejects requests whose client session was not issued for the customer in the path.
func (h *ClientAPIHandler) Authorize(c *gin.Context) {
	header := c.GetHeader("Authorization")
	sessionID, ok := strings.CutPrefix(header, clientAuthPrefix)
	if !ok || !h.sandbox.Authorized(sessionID, c.Param("customerId")) {
		clientAPIError(c, http.StatusForbidden, "ACCESS_TO_MERCHANT_NOT_ALLOWED", "Client session is not valid for this customer.")
		c.Abort()
		return
	}
	c.Next()
}

func (h *ClientAPIHandler) Products(c *gin.Context) {
	products := h.sandbox.Products()
	if strings.Contains(c.Query("hide"), "fields") {
		for i := range products {
			products[i].Fields = nil
		}
	}
	c.JSON(http.StatusOK, gin.H{"paymentProducts": products})
}

func (h *ClientAPIHandler) Product(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		clientAPIError(c, http.StatusBadRequest, "INVALID_VALUE", "paymentProductId must be a number.")
		return
	}

	product, ok := h.sandbox.Product(id)
	if !ok {
		clientAPIError(c, http.StatusNotFound, "UNKNOWN_PRODUCT_ID", "Payment product not found.")
		return
	}
	c.JSON(http.StatusOK, product)
}

type iinLookup struct {
	Bin            string `json:"bin"`
	PaymentContext struct {
		AmountOfMoney payment.AmountOfMoney `json:"amountOfMoney"`
		CountryCode   string                `json:"countryCode"`
		IsRecurring   bool                  `json:"isRecurring"`
	} `json:"paymentContext"`
}

func (h *ClientAPIHandler) IinDetails(c *gin.Context) {
	var in iinLookup
	if err := c.ShouldBindJSON(&in); err != nil || len(in.Bin) < payment.MinIinDigits {
		clientAPIError(c, http.StatusBadRequest, "INVALID_VALUE", "bin must have at least 6 digits.")
		return
	}

	pctx := payment.Context{
		AmountOfMoney: in.PaymentContext.AmountOfMoney,
		CountryCode:   in.PaymentContext.CountryCode,
		IsRecurring:   in.PaymentContext.IsRecurring,
	}
	details, ok := h.sandbox.IinDetails(in.Bin, pctx)
	if !ok {
		clientAPIError(c, http.StatusNotFound, "UNKNOWN_IIN", "IIN not found.")
		return
	}
	c.JSON(http.StatusOK, details)
}

type cardSource struct {
	Card struct {
		CardNumber       string `json:"cardNumber"`
		PaymentProductID int    `json:"paymentProductId"`
	} `json:"card"`
}

func (s cardSource) bin() string {
	number := s.Card.CardNumber
	if len(number) > 8 {
		return number[:8]
	}
	return number
}

type dccQuote struct {
	CardSource  cardSource `json:"cardSource"`
	Transaction struct {
		Amount payment.AmountOfMoney `json:"amount"`
	} `json:"transaction"`
}

func (h *ClientAPIHandler) CurrencyConversion(c *gin.Context) {
	var in dccQuote
	if err := c.ShouldBindJSON(&in); err != nil {
		clientAPIError(c, http.StatusBadRequest, "INVALID_VALUE", err.Error())
		return
	}
	c.JSON(http.StatusOK, h.sandbox.CurrencyConversion(in.CardSource.bin(), in.Transaction.Amount))
}

type surchargeQuote struct {
	CardSource    cardSource            `json:"cardSource"`
	AmountOfMoney payment.AmountOfMoney `json:"amountOfMoney"`
}

func (h *ClientAPIHandler) Surcharge(c *gin.Context) {
	var in surchargeQuote
	if err := c.ShouldBindJSON(&in); err != nil {
		clientAPIError(c, http.StatusBadRequest, "INVALID_VALUE", err.Error())
		return
	}
	c.JSON(http.StatusOK, h.sandbox.Surcharge(in.CardSource.bin(), in.CardSource.Card.PaymentProductID, in.AmountOfMoney))
}

func (h *ClientAPIHandler) PublicKey(c *gin.Context) {
	keyID, key, err := h.sandbox.PublicKey()
	if err != nil {
		h.l.WithContext(c.Request.Context()).Error("mockapi - PublicKey: %v", err)
		clientAPIError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Public key unavailable.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"keyId": keyID, "publicKey": key})
}

// clientAPIError writes the client API error body: {errorId, errors: [{id, httpStatusCode, message}]}.
func clientAPIError(c *gin.Context, status int, id, message string) {
	c.JSON(status, gin.H{
		"errorId": uuid.NewString(),
		"errors": []gin.H{
			{"id": id, "httpStatusCode": status, "message": message},
		},
	})
}
