// Package store persists issued certificates in PostgreSQL for the
// verification lookup and the administrative surface.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"

	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/tracing"
)

// ErrNotFound is returned when a certificate id has no issuance record.
var ErrNotFound = errors.New("certificate not found")

// IssuedCertificate is one persisted issuance.
type IssuedCertificate struct {
	CertID       string    `json:"cert_id"`
	Recipient    string    `json:"recipient_name"`
	Institution  string    `json:"institution_name,omitempty"`
	Activity     string    `json:"activity"`
	ActivityDate time.Time `json:"activity_date"`
	BodyText     string    `json:"body_text,omitempty"`
	Language     string    `json:"language"`
	Template     string    `json:"template"`
	IssueDate    time.Time `json:"issue_date"`
	GeneratedBy  string    `json:"generated_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// IssuanceStats is the aggregate view for the admin dashboard.
type IssuanceStats struct {
	Total      int64            `json:"total"`
	Last24h    int64            `json:"last_24h"`
	ByTemplate map[string]int64 `json:"by_template"`
	ByLanguage map[string]int64 `json:"by_language"`
}

// PostgresStore wraps the certificates table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to PostgreSQL and bootstraps the schema.
func NewPostgresStore(host, port, dbname, user, password string) (*PostgresStore, error) {
	connStr := fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=disable",
		host, port, dbname, user, password)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.InitSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// InitSchema creates the certificates table when absent.
func (s *PostgresStore) InitSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS certificates (
			cert_id TEXT PRIMARY KEY,
			recipient_name TEXT NOT NULL,
			institution_name TEXT NOT NULL DEFAULT '',
			activity TEXT NOT NULL,
			activity_date DATE NOT NULL,
			body_text TEXT NOT NULL DEFAULT '',
			language TEXT NOT NULL,
			template TEXT NOT NULL,
			issue_date DATE NOT NULL,
			generated_by TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_certificates_created_at ON certificates(created_at);
		CREATE INDEX IF NOT EXISTS idx_certificates_recipient ON certificates(recipient_name);
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Insert records one issuance.
func (s *PostgresStore) Insert(ctx context.Context, cert *IssuedCertificate) error {
	ctx, span := tracing.StartSpan(ctx, "Store.Insert")
	defer span.End()
	span.SetAttributes(attribute.String("cert_id", cert.CertID))

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO certificates
			(cert_id, recipient_name, institution_name, activity, activity_date,
			 body_text, language, template, issue_date, generated_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		cert.CertID, cert.Recipient, cert.Institution, cert.Activity,
		cert.ActivityDate, cert.BodyText, cert.Language, cert.Template,
		cert.IssueDate, cert.GeneratedBy, cert.CreatedAt.UTC(),
	)
	if err != nil {
		tracing.RecordError(ctx, err)
		return fmt.Errorf("failed to insert certificate: %w", err)
	}
	return nil
}

// GetByCertID loads one issuance, ErrNotFound when absent.
func (s *PostgresStore) GetByCertID(ctx context.Context, certID string) (*IssuedCertificate, error) {
	ctx, span := tracing.StartSpan(ctx, "Store.GetByCertID")
	defer span.End()
	span.SetAttributes(attribute.String("cert_id", certID))

	row := s.db.QueryRowContext(ctx, `
		SELECT cert_id, recipient_name, institution_name, activity, activity_date,
		       body_text, language, template, issue_date, generated_by, created_at
		FROM certificates WHERE cert_id = $1`, certID)

	cert, err := scanCertificate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to load certificate: %w", err)
	}
	return cert, nil
}

// sortColumns whitelists the sortable fields of the admin list.
var sortColumns = map[string]string{
	"recipient_name": "recipient_name",
	"activity":       "activity",
	"issue_date":     "issue_date",
	"created_at":     "created_at",
	"generated_by":   "generated_by",
}

// SortColumn resolves a requested sort field against the whitelist,
// defaulting to created_at.
func SortColumn(field string) string {
	if col, ok := sortColumns[field]; ok {
		return col
	}
	return "created_at"
}

// List returns all issuances ordered by the given field.
func (s *PostgresStore) List(ctx context.Context, sortField string, descending bool) ([]IssuedCertificate, error) {
	ctx, span := tracing.StartSpan(ctx, "Store.List")
	defer span.End()

	direction := "ASC"
	if descending {
		direction = "DESC"
	}
	query := fmt.Sprintf(`
		SELECT cert_id, recipient_name, institution_name, activity, activity_date,
		       body_text, language, template, issue_date, generated_by, created_at
		FROM certificates ORDER BY %s %s`, SortColumn(sortField), direction)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	defer rows.Close()

	var certs []IssuedCertificate
	for rows.Next() {
		cert, err := scanCertificate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan certificate: %w", err)
		}
		certs = append(certs, *cert)
	}
	return certs, rows.Err()
}

// Delete removes one issuance, reporting whether it existed.
func (s *PostgresStore) Delete(ctx context.Context, certID string) (bool, error) {
	ctx, span := tracing.StartSpan(ctx, "Store.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("cert_id", certID))

	res, err := s.db.ExecContext(ctx, "DELETE FROM certificates WHERE cert_id = $1", certID)
	if err != nil {
		tracing.RecordError(ctx, err)
		return false, fmt.Errorf("failed to delete certificate: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Stats aggregates issuance counts for the admin dashboard.
func (s *PostgresStore) Stats(ctx context.Context) (*IssuanceStats, error) {
	ctx, span := tracing.StartSpan(ctx, "Store.Stats")
	defer span.End()

	stats := &IssuanceStats{
		ByTemplate: make(map[string]int64),
		ByLanguage: make(map[string]int64),
	}

	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM certificates").Scan(&stats.Total)
	if err != nil {
		return nil, fmt.Errorf("failed to count certificates: %w", err)
	}

	since := time.Now().Add(-24 * time.Hour).UTC()
	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM certificates WHERE created_at >= $1", since,
	).Scan(&stats.Last24h)
	if err != nil {
		return nil, fmt.Errorf("failed to count recent certificates: %w", err)
	}

	if err := s.countBy(ctx, "template", stats.ByTemplate); err != nil {
		return nil, err
	}
	if err := s.countBy(ctx, "language", stats.ByLanguage); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *PostgresStore) countBy(ctx context.Context, column string, into map[string]int64) error {
	// column is one of two compile-time constants, never user input
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s, COUNT(*) FROM certificates GROUP BY %s", column, column))
	if err != nil {
		return fmt.Errorf("failed to aggregate by %s: %w", column, err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return err
		}
		into[key] = count
	}
	return rows.Err()
}

// Ping reports database connectivity for the health endpoint.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCertificate(row rowScanner) (*IssuedCertificate, error) {
	var cert IssuedCertificate
	err := row.Scan(
		&cert.CertID, &cert.Recipient, &cert.Institution, &cert.Activity,
		&cert.ActivityDate, &cert.BodyText, &cert.Language, &cert.Template,
		&cert.IssueDate, &cert.GeneratedBy, &cert.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cert, nil
}
