package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// RegisterProductRoutes registers the public catalog read routes.
func RegisterProductRoutes(r *gin.Engine, cfg Config) {
	r.GET("/products", func(c *gin.Context) {
		list, err := cfg.Catalog.List(c.Request.Context(), c.Query("category"))
		if err != nil {
			internalError(c, cfg, "list products", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": list})
	})

	r.GET("/products/featured", func(c *gin.Context) {
		list, err := cfg.Catalog.Featured(c.Request.Context())
		if err != nil {
			internalError(c, cfg, "featured products", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": list})
	})

	r.GET("/products/latest", func(c *gin.Context) {
		n := 8
		if q := c.Query("limit"); q != "" {
			if parsed, err := strconv.Atoi(q); err == nil && parsed > 0 {
				n = parsed
			}
		}
		list, err := cfg.Catalog.Latest(c.Request.Context(), n)
		if err != nil {
			internalError(c, cfg, "latest products", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": list})
	})

	r.GET("/products/:id", func(c *gin.Context) {
		p, err := cfg.Catalog.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			internalError(c, cfg, "get product", err)
			return
		}
		if p == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
			return
		}
		c.JSON(http.StatusOK, p)
	})
}

// internalError logs the cause server-side and returns a generic body.
func internalError(c *gin.Context, cfg Config, op string, err error) {
	cfg.Logger.Error().Err(err).Str("op", op).Str("path", c.FullPath()).Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
}
