package certificate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/bulk"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/certid"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/logger"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/metrics"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/render"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/store"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/tracing"
)

// Store is the persistence surface the service needs. A nil Store runs
// the service in stateless mode: rendering works, verification falls
// back to format checking, the admin surface is unavailable.
type Store interface {
	Insert(ctx context.Context, cert *store.IssuedCertificate) error
	GetByCertID(ctx context.Context, certID string) (*store.IssuedCertificate, error)
	List(ctx context.Context, sortField string, descending bool) ([]store.IssuedCertificate, error)
	Delete(ctx context.Context, certID string) (bool, error)
	Stats(ctx context.Context) (*store.IssuanceStats, error)
}

type ServiceImpl struct {
	engine *render.Engine
	store  Store
	now    func() time.Time
}

func NewService(engine *render.Engine, st Store) Service {
	return &ServiceImpl{
		engine: engine,
		store:  st,
		now:    time.Now,
	}
}

func (s *ServiceImpl) Generate(ctx context.Context, req *GenerateRequest) (*GeneratedCertificate, error) {
	ctx, span := tracing.StartSpan(ctx, "Certificate.Generate")
	defer span.End()

	renderReq, err := req.Normalize(s.now())
	if err != nil {
		metrics.CertificateRenderTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	id, err := certid.New()
	if err != nil {
		metrics.CertificateRenderTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to mint certificate id: %w", err)
	}
	renderReq.CertificateID = id

	log := logger.Log.With(
		zap.String("cert_id", id),
		zap.String("recipient", renderReq.RecipientName),
		zap.String("activity", renderReq.Activity),
	)
	log.Info("Generating certificate")

	template := string(render.ResolveStyle(renderReq.Template).Name)
	start := time.Now()
	pdf, err := s.engine.RenderPDF(ctx, renderReq)
	if err != nil {
		log.Error("Certificate render failed", zap.Error(err))
		metrics.CertificateRenderTotal.WithLabelValues("error").Inc()
		tracing.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to render certificate: %w", err)
	}
	duration := time.Since(start).Seconds()
	metrics.CertificateRenderTotal.WithLabelValues("success").Inc()
	metrics.CertificateRenderDuration.WithLabelValues(template).Observe(duration)
	metrics.CertificateFileSizeBytes.WithLabelValues(template).Observe(float64(len(pdf)))

	issueDate := s.now()
	if s.store != nil {
		record := recordFromRequest(id, &renderReq, issueDate, req.GeneratedBy)
		if err := s.store.Insert(ctx, record); err != nil {
			// The document is already rendered; losing the record would
			// leave an unverifiable certificate in circulation.
			log.Error("Failed to record issuance", zap.Error(err))
			return nil, fmt.Errorf("failed to record issuance: %w", err)
		}
	}

	log.Info("Certificate generated",
		zap.Float64("duration_seconds", duration),
		zap.Int("size_bytes", len(pdf)),
	)

	return &GeneratedCertificate{
		CertID:    id,
		Filename:  render.ExportFilename(renderReq.RecipientName),
		PDF:       pdf,
		IssueDate: issueDate,
	}, nil
}

func (s *ServiceImpl) Preview(ctx context.Context, req *GenerateRequest) ([]byte, error) {
	ctx, span := tracing.StartSpan(ctx, "Certificate.Preview")
	defer span.End()

	renderReq, err := req.Normalize(s.now())
	if err != nil {
		return nil, err
	}
	// Preview uses a stable placeholder id, nothing is recorded.
	renderReq.CertificateID = "CERT-PREVIEW0"

	return s.engine.RenderHTML(ctx, renderReq)
}

func (s *ServiceImpl) Verify(ctx context.Context, id string) (*VerifyResult, error) {
	ctx, span := tracing.StartSpan(ctx, "Certificate.Verify")
	defer span.End()

	if !certid.Valid(id) {
		metrics.VerifyLookupsTotal.WithLabelValues("malformed").Inc()
		return &VerifyResult{
			CertID:  id,
			Valid:   false,
			Message: "Certificate ID is not in the expected format.",
		}, nil
	}

	// Stateless mode: a well-formed id is the best answer available.
	if s.store == nil {
		metrics.VerifyLookupsTotal.WithLabelValues("format_only").Inc()
		return &VerifyResult{
			CertID:  id,
			Valid:   true,
			Message: "Certificate ID format is valid. Issuance records are not available on this deployment.",
		}, nil
	}

	cert, err := s.store.GetByCertID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		metrics.VerifyLookupsTotal.WithLabelValues("not_found").Inc()
		return &VerifyResult{
			CertID:  id,
			Valid:   false,
			Message: "No certificate with this ID has been issued.",
		}, nil
	}
	if err != nil {
		metrics.VerifyLookupsTotal.WithLabelValues("error").Inc()
		tracing.RecordError(ctx, err)
		return nil, err
	}

	metrics.VerifyLookupsTotal.WithLabelValues("found").Inc()
	issueDate := cert.IssueDate
	return &VerifyResult{
		CertID:      cert.CertID,
		Valid:       true,
		Recipient:   cert.Recipient,
		Institution: cert.Institution,
		Activity:    cert.Activity,
		IssueDate:   &issueDate,
		Message:     "Certificate is authentic.",
	}, nil
}

func (s *ServiceImpl) BulkGenerate(ctx context.Context, rows []bulk.Row, rowErrs []bulk.RowError, opts BulkOptions) (*BulkResult, error) {
	ctx, span := tracing.StartSpan(ctx, "Certificate.BulkGenerate")
	defer span.End()

	result := &BulkResult{}
	for _, re := range rowErrs {
		result.Failed = append(result.Failed, BulkItem{Line: re.Line, Error: re.Err})
	}

	for _, row := range rows {
		req := &GenerateRequest{
			RecipientName: row.FullName,
			Institution:   row.CollegeName,
			Activity:      row.Activity,
			ActivityDate:  row.ActivityDate.Format(activityDateLayout),
			Body:          row.CertificateText,
			Language:      opts.Language,
			Template:      opts.Template,
			GeneratedBy:   opts.GeneratedBy,
		}
		cert, err := s.Generate(ctx, req)
		if err != nil {
			result.Failed = append(result.Failed, BulkItem{
				Recipient: row.FullName,
				Error:     err.Error(),
			})
			continue
		}
		result.Generated = append(result.Generated, BulkItem{
			Recipient: row.FullName,
			CertID:    cert.CertID,
			Filename:  cert.Filename,
		})
	}

	logger.Info("Bulk generation finished",
		zap.Int("generated", len(result.Generated)),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

func (s *ServiceImpl) List(ctx context.Context, sortField string, descending bool) ([]store.IssuedCertificate, error) {
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}
	return s.store.List(ctx, sortField, descending)
}

func (s *ServiceImpl) Delete(ctx context.Context, certID string) error {
	if s.store == nil {
		return ErrStoreUnavailable
	}
	deleted, err := s.store.Delete(ctx, certID)
	if err != nil {
		return err
	}
	if !deleted {
		return store.ErrNotFound
	}
	logger.Info("Certificate record deleted", zap.String("cert_id", certID))
	return nil
}

func (s *ServiceImpl) Stats(ctx context.Context) (*store.IssuanceStats, error) {
	if s.store == nil {
		return nil, ErrStoreUnavailable
	}
	return s.store.Stats(ctx)
}

func recordFromRequest(id string, req *render.Request, issueDate time.Time, generatedBy string) *store.IssuedCertificate {
	lang := string(render.ResolveLanguage(req.Language))
	template := string(render.ResolveStyle(req.Template).Name)
	return &store.IssuedCertificate{
		CertID:       id,
		Recipient:    req.RecipientName,
		Institution:  req.Institution,
		Activity:     req.Activity,
		ActivityDate: req.ActivityDate,
		BodyText:     render.Sanitize(req.Body),
		Language:     lang,
		Template:     template,
		IssueDate:    issueDate,
		GeneratedBy:  generatedBy,
		CreatedAt:    issueDate,
	}
}
