package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/modaline/storefront/internal/cart"
	"github.com/modaline/storefront/internal/validation"
)

// RegisterCartRoutes registers the server-persisted guest-cart routes.
// The cart id is client-generated; carts are not synchronized across ids.
func RegisterCartRoutes(r *gin.Engine, cfg Config, v *validatorv10.Validate) {
	open := func(c *gin.Context) *cart.Store {
		s, err := cart.Open(c.Request.Context(), c.Param("id"), cfg.CartPersister, nil)
		if err != nil {
			internalError(c, cfg, "open cart", err)
			return nil
		}
		return s
	}

	r.GET("/cart/:id", func(c *gin.Context) {
		s := open(c)
		if s == nil {
			return
		}
		respondCart(c, s)
	})

	r.POST("/cart/:id/items", func(c *gin.Context) {
		var req validation.CartItemRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		p, err := cfg.Catalog.Get(c.Request.Context(), req.ProductID)
		if err != nil {
			internalError(c, cfg, "get product", err)
			return
		}
		if p == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
			return
		}
		s := open(c)
		if s == nil {
			return
		}
		if err := s.AddItem(c.Request.Context(), *p, req.Quantity, req.Size, req.Color); err != nil {
			internalError(c, cfg, "add cart item", err)
			return
		}
		respondCart(c, s)
	})

	r.PUT("/cart/:id/items", func(c *gin.Context) {
		var req validation.CartItemRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		s := open(c)
		if s == nil {
			return
		}
		if err := s.UpdateQuantity(c.Request.Context(), req.ProductID, req.Size, req.Color, req.Quantity); err != nil {
			internalError(c, cfg, "update cart item", err)
			return
		}
		respondCart(c, s)
	})

	r.DELETE("/cart/:id/items", func(c *gin.Context) {
		s := open(c)
		if s == nil {
			return
		}
		err := s.RemoveItem(c.Request.Context(), c.Query("productId"), c.Query("size"), c.Query("color"))
		if err != nil {
			internalError(c, cfg, "remove cart item", err)
			return
		}
		respondCart(c, s)
	})

	r.DELETE("/cart/:id", func(c *gin.Context) {
		s := open(c)
		if s == nil {
			return
		}
		if err := s.Clear(c.Request.Context()); err != nil {
			internalError(c, cfg, "clear cart", err)
			return
		}
		respondCart(c, s)
	})
}

func respondCart(c *gin.Context, s *cart.Store) {
	totalPrice, _ := s.TotalPrice().Float64()
	c.JSON(http.StatusOK, gin.H{
		"items":      s.Items(),
		"totalItems": s.TotalItems(),
		"totalPrice": totalPrice,
	})
}
