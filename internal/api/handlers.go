package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/api/handlers"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/domain/certificate"
)

// Pinger reports backing-store connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers aggregates the API handlers.
type Handlers struct {
	Certificate *handlers.CertificateHandler
	Verify      *handlers.VerifyHandler
	Admin       *handlers.AdminHandler

	db Pinger
}

// NewHandlers wires the handlers for a service. db may be nil on
// stateless deployments.
func NewHandlers(service certificate.Service, db Pinger) *Handlers {
	verify := handlers.NewVerifyHandler(service)
	return &Handlers{
		Certificate: handlers.NewCertificateHandler(service),
		Verify:      verify,
		Admin:       handlers.NewAdminHandler(service, verify),
		db:          db,
	}
}

// Health answers the readiness probe. A stateless deployment is healthy
// without a database; a configured database must answer a ping.
func (h *Handlers) Health(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK
	dbStatus := "not_configured"

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
			dbStatus = "unreachable"
		} else {
			dbStatus = "ok"
		}
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"details": gin.H{
			"database": dbStatus,
		},
	})
}
