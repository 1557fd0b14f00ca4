package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/modaline/storefront/internal/admin"
	"github.com/modaline/storefront/internal/catalog"
	"github.com/modaline/storefront/internal/orders"
	"github.com/modaline/storefront/internal/settings"
	"github.com/modaline/storefront/internal/storage"
	"github.com/modaline/storefront/internal/validation"
)

// Admin session cookies. The gate checks the session cookie's value is
// exactly "true"; logout clears both names.
const (
	adminSessionCookie = "admin_session"
	adminUserCookie    = "admin_user"
	sessionMaxAge      = int(24 * time.Hour / time.Second)
	loginPath          = "/admin/login"
)

// RegisterAdminRoutes registers the session gate, the login/logout flow and
// every /admin/* route.
func RegisterAdminRoutes(r *gin.Engine, cfg Config, v *validatorv10.Validate) {
	r.GET(loginPath, func(c *gin.Context) {
		if hasAdminSession(c) {
			c.Redirect(http.StatusFound, "/admin/summary")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "login required"})
	})

	r.POST(loginPath, func(c *gin.Context) {
		var req struct {
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_body"})
			return
		}
		if cfg.AdminPassword == "" || req.Password != cfg.AdminPassword {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.SetCookie(adminSessionCookie, "true", sessionMaxAge, "/", "", false, true)
		c.SetCookie(adminUserCookie, "admin", sessionMaxAge, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/logout", func(c *gin.Context) {
		c.SetCookie(adminSessionCookie, "", -1, "/", "", false, true)
		c.SetCookie(adminUserCookie, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	gated := r.Group("/admin", requireAdminSession)

	gated.GET("/summary", func(c *gin.Context) {
		all, err := cfg.Orders.List(c.Request.Context(), orders.Filter{})
		if err != nil {
			internalError(c, cfg, "admin summary", err)
			return
		}
		c.JSON(http.StatusOK, admin.Summarize(all, time.Now()))
	})

	registerAdminProductRoutes(gated, cfg, v)
	registerAdminOrderRoutes(gated, cfg, v)
	registerAdminSettingsRoutes(gated, cfg, v)
	registerAdminUploadRoutes(gated, cfg)
}

// requireAdminSession gates /admin/* on the session cookie being exactly
// "true"; anything else redirects to the login route.
func requireAdminSession(c *gin.Context) {
	if !hasAdminSession(c) {
		c.Redirect(http.StatusFound, loginPath)
		c.Abort()
		return
	}
	c.Next()
}

func hasAdminSession(c *gin.Context) bool {
	val, err := c.Cookie(adminSessionCookie)
	return err == nil && val == "true"
}

func registerAdminProductRoutes(g *gin.RouterGroup, cfg Config, v *validatorv10.Validate) {
	g.POST("/products", func(c *gin.Context) {
		var req validation.ProductRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		p := productFromRequest(req)
		if p.ProductID == "" {
			p.ProductID = uuid.NewString()
		}
		created, err := cfg.Catalog.Create(c.Request.Context(), p)
		if err != nil {
			if errors.Is(err, catalog.ErrDuplicateProductID) {
				c.JSON(http.StatusConflict, gin.H{"error": "duplicate_product_id"})
				return
			}
			internalError(c, cfg, "create product", err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	g.PUT("/products/:id", func(c *gin.Context) {
		var req validation.ProductRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		existing, err := cfg.Catalog.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			internalError(c, cfg, "get product", err)
			return
		}
		if existing == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
			return
		}
		p := productFromRequest(req)
		p.ProductID = existing.ProductID // id is immutable
		p.CreatedAt = existing.CreatedAt
		updated, err := cfg.Catalog.Update(c.Request.Context(), p)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
				return
			}
			internalError(c, cfg, "update product", err)
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	g.DELETE("/products/:id", func(c *gin.Context) {
		err := cfg.Catalog.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
				return
			}
			internalError(c, cfg, "delete product", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	})
}

func registerAdminOrderRoutes(g *gin.RouterGroup, cfg Config, v *validatorv10.Validate) {
	g.PUT("/orders/:number", func(c *gin.Context) {
		var req validation.StatusUpdateRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		upd := orders.StatusUpdate{
			Status:           req.Status,
			PaymentStatus:    req.PaymentStatus,
			PaymentID:        req.PaymentID,
			ErrorCode:        req.ErrorCode,
			ErrorDescription: req.ErrorDescription,
			Location:         req.Location,
		}
		o, err := cfg.Orders.UpdateStatus(c.Request.Context(), c.Param("number"), upd)
		if err != nil {
			if errors.Is(err, orders.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
				return
			}
			internalError(c, cfg, "update order status", err)
			return
		}
		c.JSON(http.StatusOK, o)
	})

	g.DELETE("/orders/:number", func(c *gin.Context) {
		err := cfg.Orders.Delete(c.Request.Context(), c.Param("number"))
		if err != nil {
			if errors.Is(err, orders.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order_not_found"})
				return
			}
			internalError(c, cfg, "delete order", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	})
}

func registerAdminSettingsRoutes(g *gin.RouterGroup, cfg Config, v *validatorv10.Validate) {
	g.PUT("/settings", func(c *gin.Context) {
		var req validation.SettingsRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		st, err := cfg.Settings.Put(c.Request.Context(), settings.Settings{
			StoreName:    req.StoreName,
			Currency:     req.Currency,
			ShippingFlat: req.ShippingFlat,
			TaxRate:      req.TaxRate,
			SupportEmail: req.SupportEmail,
		})
		if err != nil {
			internalError(c, cfg, "put settings", err)
			return
		}
		c.JSON(http.StatusOK, st)
	})
}

func registerAdminUploadRoutes(g *gin.RouterGroup, cfg Config) {
	g.POST("/uploads", func(c *gin.Context) {
		if cfg.Uploader == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "uploads_not_configured"})
			return
		}
		fh, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing_file"})
			return
		}
		f, err := fh.Open()
		if err != nil {
			internalError(c, cfg, "open upload", err)
			return
		}
		defer f.Close()

		key, err := cfg.Uploader.UploadImage(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrNotImage):
				c.JSON(http.StatusBadRequest, gin.H{"error": "not_an_image"})
			case errors.Is(err, storage.ErrTooLarge):
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file_too_large"})
			default:
				internalError(c, cfg, "upload image", err)
			}
			return
		}
		c.JSON(http.StatusCreated, gin.H{"key": key})
	})
}

func productFromRequest(req validation.ProductRequest) catalog.Product {
	return catalog.Product{
		ProductID:   req.ProductID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Images:      req.Images,
		Category:    req.Category,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		Stock:       req.Stock,
		Featured:    req.Featured,
	}
}
