package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/domain/certificate"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/logger"
)

type CertificateHandler struct {
	service certificate.Service
}

func NewCertificateHandler(service certificate.Service) *CertificateHandler {
	return &CertificateHandler{service: service}
}

// Generate issues a certificate. The default response is the PDF as an
// attachment; ?format=html returns the HTML rendition of the same layout.
func (h *CertificateHandler) Generate(c *gin.Context) {
	var req certificate.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to parse certificate request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	if c.Query("format") == "html" {
		html, err := h.service.Preview(c.Request.Context(), &req)
		if err != nil {
			respondGenerateError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", html)
		return
	}

	cert, err := h.service.Generate(c.Request.Context(), &req)
	if err != nil {
		respondGenerateError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", cert.Filename))
	c.Header("X-Certificate-ID", cert.CertID)
	c.Data(http.StatusOK, "application/pdf", cert.PDF)
}

// Preview renders the HTML preview from query parameters, for embedding
// in a browser without a JSON round trip.
func (h *CertificateHandler) Preview(c *gin.Context) {
	req := certificate.GenerateRequest{
		RecipientName: c.Query("recipient_name"),
		Institution:   c.Query("institution_name"),
		Activity:      c.Query("activity"),
		ActivityDate:  c.Query("activity_date"),
		Body:          c.Query("certificate_text"),
		Language:      c.Query("language"),
		Template:      c.Query("template"),
	}

	html, err := h.service.Preview(c.Request.Context(), &req)
	if err != nil {
		respondGenerateError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func respondGenerateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, certificate.ErrRecipientRequired),
		errors.Is(err, certificate.ErrActivityRequired),
		errors.Is(err, certificate.ErrInvalidActivityDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Certificate generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate certificate"})
	}
}
