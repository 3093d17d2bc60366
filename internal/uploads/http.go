package uploads

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/swoop-build/swoop-backend/internal/auth"
)

// Handler issues signed upload URLs.
type Handler struct {
	signer *Signer
	log    *logrus.Logger
}

func NewHandler(signer *Signer, log *logrus.Logger) *Handler {
	return &Handler{signer: signer, log: log}
}

// SignedURL returns a one-shot PUT URL for the named file.
func (h *Handler) SignedURL(c *gin.Context) {
	acct := auth.UserAccountID(c)
	if acct == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account not resolved"})
		return
	}

	var body struct {
		FileName    string `json:"fileName"`
		ContentType string `json:"fileType"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.FileName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fileName is required"})
		return
	}
	if body.ContentType == "" {
		body.ContentType = "application/octet-stream"
	}

	signed, err := h.signer.SignUpload(c.Request.Context(), acct, body.FileName, body.ContentType)
	if err != nil {
		h.log.WithError(err).Error("failed to sign upload URL")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign upload"})
		return
	}
	c.JSON(http.StatusOK, signed)
}

// Register registers the upload routes.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/upload/signedurl", h.SignedURL)
}
