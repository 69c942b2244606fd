package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/domain/certificate"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/bulk"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/logger"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/store"
)

type AdminHandler struct {
	service certificate.Service
	verify  *VerifyHandler
}

func NewAdminHandler(service certificate.Service, verify *VerifyHandler) *AdminHandler {
	return &AdminHandler{service: service, verify: verify}
}

// List returns all issuance records. ?sort= picks the column, ?order=desc
// flips the direction.
func (h *AdminHandler) List(c *gin.Context) {
	certs, err := h.service.List(c.Request.Context(), c.Query("sort"), c.Query("order") == "desc")
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":        len(certs),
		"certificates": certs,
	})
}

// Delete revokes an issuance record and drops its cached verification.
func (h *AdminHandler) Delete(c *gin.Context) {
	certID := c.Param("cert_id")
	if err := h.service.Delete(c.Request.Context(), certID); err != nil {
		respondAdminError(c, err)
		return
	}
	h.verify.Invalidate(c, certID)
	c.JSON(http.StatusOK, gin.H{"cert_id": certID, "deleted": true})
}

// BulkGenerate accepts a CSV roster as multipart field "roster" and issues
// a certificate per row. Batch-wide language and template come from form
// fields.
func (h *AdminHandler) BulkGenerate(c *gin.Context) {
	file, header, err := c.Request.FormFile("roster")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'roster' is required"})
		return
	}
	defer file.Close()

	rows, rowErrs, err := bulk.ParseCSV(file, time.Now)
	if err != nil {
		logger.Error("Failed to parse roster",
			zap.String("filename", header.Filename),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(rows) == 0 && len(rowErrs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "roster contains no rows"})
		return
	}

	result, err := h.service.BulkGenerate(c.Request.Context(), rows, rowErrs, certificate.BulkOptions{
		Language:    c.PostForm("language"),
		Template:    c.PostForm("template"),
		GeneratedBy: c.PostForm("generated_by"),
	})
	if err != nil {
		respondAdminError(c, err)
		return
	}

	status := http.StatusOK
	if len(result.Generated) == 0 {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, result)
}

// Stats reports issuance aggregates.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func respondAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "certificate not found"})
	case errors.Is(err, certificate.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		logger.Error("Admin operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
