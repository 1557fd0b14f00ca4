package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSettingsRoutes registers the public store-settings read.
func RegisterSettingsRoutes(r *gin.Engine, cfg Config) {
	r.GET("/settings", func(c *gin.Context) {
		st, err := cfg.Settings.Get(c.Request.Context())
		if err != nil {
			internalError(c, cfg, "get settings", err)
			return
		}
		c.JSON(http.StatusOK, st)
	})
}
