package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/modaline/storefront/internal/orders"
	"github.com/modaline/storefront/internal/payments"
	"github.com/modaline/storefront/internal/validation"
)

// webhookSignatureHeader carries the provider-computed body signature.
const webhookSignatureHeader = "X-Webhook-Signature"

// RegisterPaymentRoutes registers the two payment trust paths: the
// client-invoked verification call and the provider-invoked webhook.
func RegisterPaymentRoutes(r *gin.Engine, cfg Config, v *validatorv10.Validate) {
	r.POST("/payments/verify", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.VerifyPaymentRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		if !payments.VerifyWidgetSignature(cfg.PaymentSecret, req.OrderNumber, req.PaymentID, req.Signature) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "signature_verification_failed"})
			return
		}

		o, err := cfg.Processor.ConfirmPayment(ctx, req.OrderNumber, req.PaymentID)
		if err != nil {
			if errors.Is(err, orders.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
				return
			}
			internalError(c, cfg, "confirm payment", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"verified": true, "order": o})
	})

	r.POST("/payments/webhook", func(c *gin.Context) {
		ctx := c.Request.Context()

		body, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_body"})
			return
		}

		sig := c.GetHeader(webhookSignatureHeader)
		if !payments.VerifyWebhookSignature(cfg.PaymentSecret, body, sig) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "signature_verification_failed"})
			return
		}

		if err := cfg.Processor.HandleWebhook(ctx, body); err != nil {
			if errors.Is(err, payments.ErrInvalidPayload) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_event_payload"})
				return
			}
			if errors.Is(err, orders.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
				return
			}
			internalError(c, cfg, "handle webhook", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
