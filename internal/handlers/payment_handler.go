package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"skillport_backend/internal/logger"
	"skillport_backend/internal/middleware"
	"skillport_backend/internal/payments"
	"skillport_backend/internal/services"
	"skillport_backend/internal/services/dto"
	"skillport_backend/pkg/apperrors"
)

type PaymentHandler struct {
	*BaseHandler
	payments *services.PaymentService
	gateway  *payments.Gateway
}

func NewPaymentHandler(base *BaseHandler, paymentService *services.PaymentService, gateway *payments.Gateway) *PaymentHandler {
	return &PaymentHandler{BaseHandler: base, payments: paymentService, gateway: gateway}
}

func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/payments")
	g.POST("/checkout", middleware.AuthMiddleware(), h.Checkout)
	g.GET("", middleware.AuthMiddleware(), h.List)
	// The webhook authenticates by signature, not by session.
	g.POST("/webhook", h.Webhook)

	rg.GET("/my/enrollments", middleware.AuthMiddleware(), h.ListEnrollments)
}

func (h *PaymentHandler) Checkout(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	var req dto.CheckoutRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	resp, err := h.payments.Checkout(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, resp)
}

// Webhook receives gateway events. The signature is checked against the
// raw body before anything is parsed; a bad signature is a hard 401.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Unable to read request body"))
		return
	}

	signature := c.GetHeader(payments.SignatureHeader)
	if !h.gateway.VerifyWebhookSignature(body, signature) {
		logger.CtxWarn(c.Request.Context(), "webhook signature rejected")
		h.HandleServiceError(c, apperrors.ErrInvalidWebhookSignature)
		return
	}

	var event payments.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Malformed webhook payload"))
		return
	}

	if err := h.payments.HandleWebhook(c.Request.Context(), &event); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *PaymentHandler) List(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	resp, err := h.payments.ListPayments(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *PaymentHandler) ListEnrollments(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	resp, err := h.payments.ListEnrollments(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, resp)
}
