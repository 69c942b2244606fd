package certificate

import (
	"context"

	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/bulk"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/store"
)

type Service interface {
	// Generate renders a certificate PDF, mints its id and records the
	// issuance when a store is configured.
	Generate(ctx context.Context, req *GenerateRequest) (*GeneratedCertificate, error)

	// Preview renders the HTML preview of a certificate without minting
	// an id or recording anything.
	Preview(ctx context.Context, req *GenerateRequest) ([]byte, error)

	// Verify answers a verification lookup for a certificate id.
	Verify(ctx context.Context, certID string) (*VerifyResult, error)

	// BulkGenerate issues certificates for a parsed roster.
	BulkGenerate(ctx context.Context, rows []bulk.Row, rowErrs []bulk.RowError, opts BulkOptions) (*BulkResult, error)

	// List returns recorded issuances for the admin surface.
	List(ctx context.Context, sortField string, descending bool) ([]store.IssuedCertificate, error)

	// Delete revokes an issuance record. Returns store.ErrNotFound when
	// the id was never issued.
	Delete(ctx context.Context, certID string) error

	// Stats aggregates issuance counts.
	Stats(ctx context.Context) (*store.IssuanceStats, error)
}

// BulkOptions applies batch-wide settings to every roster row.
type BulkOptions struct {
	Language    string
	Template    string
	GeneratedBy string
}
