package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/domain/certificate"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/cache"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/logger"
)

// verifyCacheTTL bounds how stale a cached verification answer may be.
// Deletions through the admin API take at most this long to propagate.
const verifyCacheTTL = 5 * time.Minute

type VerifyHandler struct {
	service certificate.Service
	cache   *cache.Cache
}

func NewVerifyHandler(service certificate.Service) *VerifyHandler {
	return &VerifyHandler{
		service: service,
		cache:   cache.NewCache(verifyCacheTTL),
	}
}

// Verify answers GET /verify?cert_id=..., the URL embedded in every
// certificate's QR code.
func (h *VerifyHandler) Verify(c *gin.Context) {
	certID := c.Query("cert_id")
	if certID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cert_id query parameter is required"})
		return
	}

	ctx := c.Request.Context()
	cacheKey := "verify:" + certID

	if body, err := h.cache.Get(ctx, cacheKey); err == nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	result, err := h.service.Verify(ctx, certID)
	if err != nil {
		logger.Error("Verification lookup failed", zap.String("cert_id", certID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification is temporarily unavailable"})
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "verification is temporarily unavailable"})
		return
	}
	h.cache.Set(cacheKey, body)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// Invalidate drops a cached answer, used after an admin deletion.
func (h *VerifyHandler) Invalidate(ctx *gin.Context, certID string) {
	h.cache.Delete(ctx.Request.Context(), "verify:"+certID)
}
