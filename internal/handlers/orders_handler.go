package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/modaline/storefront/internal/orders"
	"github.com/modaline/storefront/internal/validation"
)

// RegisterOrderRoutes registers checkout and order-tracking routes.
func RegisterOrderRoutes(r *gin.Engine, cfg Config, v *validatorv10.Validate) {
	r.POST("/orders", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.CheckoutRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		order := orderFromCheckout(req)
		created, err := cfg.Orders.Create(ctx, order)
		if err != nil {
			if errors.Is(err, orders.ErrDuplicateOrderNumber) {
				c.JSON(http.StatusConflict, gin.H{"error": "duplicate_order_number"})
				return
			}
			internalError(c, cfg, "create order", err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	r.GET("/orders", func(c *gin.Context) {
		list, err := cfg.Orders.List(c.Request.Context(), orders.Filter{
			Email:  c.Query("email"),
			Status: c.Query("status"),
		})
		if err != nil {
			internalError(c, cfg, "list orders", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	})

	r.GET("/orders/:number", func(c *gin.Context) {
		o, err := cfg.Orders.GetByNumber(c.Request.Context(), c.Param("number"))
		if err != nil {
			internalError(c, cfg, "get order", err)
			return
		}
		if o == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
			return
		}
		c.JSON(http.StatusOK, o)
	})
}

// orderFromCheckout snapshots the validated payload into an order document.
// Totals passed validation against the line items, so they are stored as-is.
func orderFromCheckout(req validation.CheckoutRequest) orders.Order {
	items := make([]orders.Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, orders.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Size:      it.Size,
			Color:     it.Color,
			Image:     it.Image,
		})
	}
	return orders.Order{
		OrderNumber: req.OrderNumber,
		Customer: orders.Customer{
			Name:       req.Customer.Name,
			Email:      req.Customer.Email,
			Phone:      req.Customer.Phone,
			Address:    req.Customer.Address,
			City:       req.Customer.City,
			State:      req.Customer.State,
			PostalCode: req.Customer.PostalCode,
			Country:    req.Customer.Country,
		},
		Items:         items,
		Subtotal:      req.Subtotal,
		Shipping:      req.Shipping,
		Tax:           req.Tax,
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
		Status:        orders.StatusPending,
	}
}
