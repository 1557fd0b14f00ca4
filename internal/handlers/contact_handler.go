package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/modaline/storefront/internal/contact"
	"github.com/modaline/storefront/internal/validation"
)

// RegisterContactRoutes registers the multipart contact-form endpoint.
func RegisterContactRoutes(r *gin.Engine, cfg Config, v *validatorv10.Validate) {
	r.POST("/contact", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.ContactRequest
		if err := validation.BindFormAndValidate(c, &req, v); err != nil {
			return
		}

		sub := contact.Submission{
			Name:    req.Name,
			Email:   req.Email,
			Subject: req.Subject,
			Message: req.Message,
		}

		// The image attachment is best effort: a failed upload is logged
		// and the submission still goes through without it.
		if fh, err := c.FormFile("image"); err == nil && fh != nil && cfg.Uploader != nil {
			f, err := fh.Open()
			if err != nil {
				cfg.Logger.Warn().Err(err).Str("filename", fh.Filename).Msg("contact attachment unreadable, submitting without it")
			} else {
				key, err := cfg.Uploader.UploadImage(ctx, fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
				f.Close()
				if err != nil {
					cfg.Logger.Warn().Err(err).Str("filename", fh.Filename).Msg("contact attachment upload failed, submitting without it")
				} else {
					sub.ImageKey = key
				}
			}
		}

		created, err := cfg.Contacts.Create(ctx, sub)
		if err != nil {
			internalError(c, cfg, "create contact submission", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"submissionId": created.SubmissionID})
	})
}
