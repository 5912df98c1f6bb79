package flow

import (
	"context"
	"errors"
	"net/http"

	"PayFlow/internal/apperror"
	"PayFlow/internal/domain/checkout"
	"PayFlow/internal/domain/payment"
	"PayFlow/pkg/logger"

	"github.com/gin-gonic/gin"
)

// statusClientClosedRequest is written when the shopper went away mid-call.
const statusClientClosedRequest = 499

type FlowHandler struct {
	service *checkout.Service
	l       *logger.Logger
}

func NewFlowHandler(s *checkout.Service, l *logger.Logger) *FlowHandler {
	return &FlowHandler{service: s, l: l}
}

type nextStep struct {
	Next string `json:"next"`
}

type selectProductRequest struct {
	PaymentProductID int `json:"paymentProductId" binding:"required"`
}

type selectAccountOnFileRequest struct {
	AccountOnFileID  string `json:"accountOnFileId"`
	PaymentProductID int    `json:"paymentProductId" binding:"required"`
}

type cardNumberRequest struct {
	CardNumber string `json:"cardNumber"`
}

type submitCardRequest struct {
	Values   map[string]string `json:"values"`
	Tokenize bool              `json:"tokenize"`
}

type submitAccountOnFileRequest struct {
	CVV string `json:"cvv"`
}

type submitGooglePayRequest struct {
	Token string `json:"token"`
}

func (h *FlowHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"busy": h.service.Busy(flowFrom(c).ID)})
}

func (h *FlowHandler) SessionView(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.SessionView(c.Request.Context(), flowFrom(c)))
}

func (h *FlowHandler) FetchSession(c *gin.Context) {
	details, err := h.service.FetchSessionFromAPI(c.Request.Context(), flowFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *FlowHandler) StartSession(c *gin.Context) {
	var details payment.SessionDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		h.badRequest(c, err)
		return
	}

	next, err := h.service.StartSession(c.Request.Context(), flowFrom(c), details)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nextStep{Next: string(next)})
}

func (h *FlowHandler) Restart(c *gin.Context) {
	next, err := h.service.Restart(c.Request.Context(), flowFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nextStep{Next: string(next)})
}

func (h *FlowHandler) PaymentView(c *gin.Context) {
	view, err := h.service.PaymentView(c.Request.Context(), flowFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *FlowHandler) SetPaymentContext(c *gin.Context) {
	var pctx payment.Context
	if err := c.ShouldBindJSON(&pctx); err != nil {
		h.badRequest(c, err)
		return
	}

	items, err := h.service.SetPaymentContext(c.Request.Context(), flowFrom(c), pctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *FlowHandler) SelectProduct(c *gin.Context) {
	var req selectProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	next, err := h.service.SelectProduct(c.Request.Context(), flowFrom(c), req.PaymentProductID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nextStep{Next: string(next)})
}

func (h *FlowHandler) SelectAccountOnFile(c *gin.Context) {
	var req selectAccountOnFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	next, err := h.service.SelectAccountOnFile(c.Request.Context(), flowFrom(c), req.AccountOnFileID, req.PaymentProductID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nextStep{Next: string(next)})
}

func (h *FlowHandler) SavedTokens(c *gin.Context) {
	tokens, err := h.service.SavedTokens(c.Request.Context(), flowFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

func (h *FlowHandler) CreditCardView(c *gin.Context) {
	view, err := h.service.CreditCardView(c.Request.Context(), flowFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *FlowHandler) LookupIin(c *gin.Context) {
	var req cardNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	details, err := h.service.LookupIin(c.Request.Context(), flowFrom(c), req.CardNumber)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *FlowHandler) CurrencyConversion(c *gin.Context) {
	var req cardNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	view, err := h.service.CurrencyConversion(c.Request.Context(), flowFrom(c), req.CardNumber)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *FlowHandler) Surcharge(c *gin.Context) {
	var req cardNumberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	view, err := h.service.Surcharge(c.Request.Context(), flowFrom(c), req.CardNumber)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *FlowHandler) SubmitCard(c *gin.Context) {
	var req submitCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	res, err := h.service.SubmitCard(c.Request.Context(), flowFrom(c), req.Values, req.Tokenize)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *FlowHandler) AccountOnFileView(c *gin.Context) {
	view, err := h.service.AccountOnFileView(c.Request.Context(), flowFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *FlowHandler) SubmitAccountOnFile(c *gin.Context) {
	var req submitAccountOnFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	res, err := h.service.SubmitAccountOnFile(c.Request.Context(), flowFrom(c), req.CVV)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *FlowHandler) GooglePayView(c *gin.Context) {
	view, err := h.service.GooglePayView(c.Request.Context(), flowFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *FlowHandler) SubmitGooglePay(c *gin.Context) {
	var req submitGooglePayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	res, err := h.service.SubmitGooglePay(c.Request.Context(), flowFrom(c), req.Token)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *FlowHandler) FinalizeView(c *gin.Context) {
	view, err := h.service.FinalizeView(c.Request.Context(), flowFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SubmitPayment relays the mock API's answer as-is.
func (h *FlowHandler) SubmitPayment(c *gin.Context) {
	body, err := h.service.SubmitPayment(c.Request.Context(), flowFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if len(body) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h *FlowHandler) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}

// respondError renders a flow error. Errors that end on another step carry
// its path in Location and in the body.
func (h *FlowHandler) respondError(c *gin.Context, err error) {
	if appErr, ok := apperror.As(err); ok {
		body := gin.H{"message": appErr.Message}
		if len(appErr.Fields) > 0 {
			body["fields"] = appErr.Fields
		}
		if appErr.Redirect != "" {
			c.Header("Location", appErr.Redirect)
			body["redirect"] = appErr.Redirect
		}
		c.JSON(appErr.Status, body)
		return
	}

	if errors.Is(err, context.Canceled) {
		h.l.WithContext(c.Request.Context()).Debug("flow - request canceled: path=%s", c.FullPath())
		c.Status(statusClientClosedRequest)
		return
	}

	h.l.WithContext(c.Request.Context()).Error("flow - %s: %v", c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
}
