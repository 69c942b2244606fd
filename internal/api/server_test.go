package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/domain/certificate"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/logger"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/qrgen"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/render"
	"github.com/SUBHODEEP-bot/certi-gen-smart-certs/internal/pkg/store"
)

const testAdminToken = "test-admin-token"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := logger.Init("error"); err != nil {
		panic(err)
	}
	m.Run()
}

// memStore keeps issuances in memory for handler tests.
type memStore struct {
	records map[string]*store.IssuedCertificate
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]*store.IssuedCertificate)}
}

func (m *memStore) Insert(ctx context.Context, cert *store.IssuedCertificate) error {
	cp := *cert
	m.records[cert.CertID] = &cp
	return nil
}

func (m *memStore) GetByCertID(ctx context.Context, certID string) (*store.IssuedCertificate, error) {
	if cert, ok := m.records[certID]; ok {
		return cert, nil
	}
	return nil, store.ErrNotFound
}

func (m *memStore) List(ctx context.Context, sortField string, descending bool) ([]store.IssuedCertificate, error) {
	var out []store.IssuedCertificate
	for _, c := range m.records {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memStore) Delete(ctx context.Context, certID string) (bool, error) {
	if _, ok := m.records[certID]; !ok {
		return false, nil
	}
	delete(m.records, certID)
	return true, nil
}

func (m *memStore) Stats(ctx context.Context) (*store.IssuanceStats, error) {
	return &store.IssuanceStats{
		Total:      int64(len(m.records)),
		ByTemplate: map[string]int64{},
		ByLanguage: map[string]int64{},
	}, nil
}

func newTestServer(st certificate.Store) (*Server, *memStore) {
	mem, _ := st.(*memStore)
	engine := render.NewEngine(qrgen.NewPNGEncoder(), render.DefaultIssuer(), "https://certigen.example.com")
	service := certificate.NewService(engine, st)
	server := NewServer(NewHandlers(service, nil), testAdminToken)
	server.SetupRoutes()
	return server, mem
}

func do(server *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func generateBody() *bytes.Buffer {
	body, _ := json.Marshal(map[string]string{
		"recipient_name":   "Asha Rao",
		"institution_name": "XYZ College",
		"activity":         "Workshop",
		"activity_date":    "2024-03-10",
		"template":         "modern",
	})
	return bytes.NewBuffer(body)
}

func TestGenerateEndpoint(t *testing.T) {
	server, mem := newTestServer(newMemStore())

	t.Run("Returns a PDF attachment", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates", generateBody())
		req.Header.Set("Content-Type", "application/json")
		w := do(server, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "Asha_Rao_Certificate.pdf")
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

		certID := w.Header().Get("X-Certificate-ID")
		require.NotEmpty(t, certID)
		_, ok := mem.records[certID]
		assert.True(t, ok, "issuance must be recorded")
	})

	t.Run("HTML format renders a preview", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates?format=html", generateBody())
		req.Header.Set("Content-Type", "application/json")
		w := do(server, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "Asha Rao")
	})

	t.Run("Missing recipient is a client error", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"activity": "Workshop"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := do(server, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Malformed JSON is a client error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates", strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		w := do(server, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPreviewEndpoint(t *testing.T) {
	server, _ := newTestServer(newMemStore())

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/certificates/preview?recipient_name=Asha+Rao&activity=Workshop&activity_date=2024-03-10", nil)
	w := do(server, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Asha Rao")
	assert.Contains(t, w.Body.String(), "CERT-PREVIEW0")
}

func TestVerifyEndpoint(t *testing.T) {
	server, mem := newTestServer(newMemStore())

	issue := func(t *testing.T) string {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates", generateBody())
		req.Header.Set("Content-Type", "application/json")
		w := do(server, req)
		require.Equal(t, http.StatusOK, w.Code)
		return w.Header().Get("X-Certificate-ID")
	}

	t.Run("Issued certificate verifies", func(t *testing.T) {
		certID := issue(t)
		w := do(server, httptest.NewRequest(http.MethodGet, "/verify?cert_id="+certID, nil))
		require.Equal(t, http.StatusOK, w.Code)

		var res certificate.VerifyResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.True(t, res.Valid)
		assert.Equal(t, "Asha Rao", res.Recipient)
	})

	t.Run("Unknown id is invalid", func(t *testing.T) {
		w := do(server, httptest.NewRequest(http.MethodGet, "/verify?cert_id=CERT-ZZ99ZZ99", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var res certificate.VerifyResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.False(t, res.Valid)
	})

	t.Run("Missing cert_id is a client error", func(t *testing.T) {
		w := do(server, httptest.NewRequest(http.MethodGet, "/verify", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Second lookup is served from cache", func(t *testing.T) {
		certID := issue(t)
		first := do(server, httptest.NewRequest(http.MethodGet, "/verify?cert_id="+certID, nil))
		require.Equal(t, http.StatusOK, first.Code)

		// The record vanishes underneath; the cached answer survives.
		delete(mem.records, certID)
		second := do(server, httptest.NewRequest(http.MethodGet, "/verify?cert_id="+certID, nil))
		require.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())
	})
}

func TestAdminEndpoints(t *testing.T) {
	server, _ := newTestServer(newMemStore())

	issue := func(t *testing.T) string {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates", generateBody())
		req.Header.Set("Content-Type", "application/json")
		w := do(server, req)
		require.Equal(t, http.StatusOK, w.Code)
		return w.Header().Get("X-Certificate-ID")
	}

	adminReq := func(method, path string, body *bytes.Buffer) *http.Request {
		var req *http.Request
		if body != nil {
			req = httptest.NewRequest(method, path, body)
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		req.Header.Set("X-Admin-Token", testAdminToken)
		return req
	}

	t.Run("Requires the admin token", func(t *testing.T) {
		w := do(server, httptest.NewRequest(http.MethodGet, "/api/v1/admin/certificates", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Unconfigured token disables the group", func(t *testing.T) {
		noAuth := NewServer(NewHandlers(certificate.NewService(
			render.NewEngine(qrgen.NewPNGEncoder(), render.DefaultIssuer(), "https://certigen.example.com"), nil), nil), "")
		noAuth.SetupRoutes()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/certificates", nil)
		req.Header.Set("X-Admin-Token", "anything")
		w := do(noAuth, req)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("List returns issued certificates", func(t *testing.T) {
		issue(t)
		w := do(server, adminReq(http.MethodGet, "/api/v1/admin/certificates", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var res struct {
			Count        int                       `json:"count"`
			Certificates []store.IssuedCertificate `json:"certificates"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.GreaterOrEqual(t, res.Count, 1)
	})

	t.Run("Delete revokes and invalidates verification", func(t *testing.T) {
		certID := issue(t)
		w := do(server, adminReq(http.MethodDelete, "/api/v1/admin/certificates/"+certID, nil))
		require.Equal(t, http.StatusOK, w.Code)

		verify := do(server, httptest.NewRequest(http.MethodGet, "/verify?cert_id="+certID, nil))
		var res certificate.VerifyResult
		require.NoError(t, json.Unmarshal(verify.Body.Bytes(), &res))
		assert.False(t, res.Valid)

		again := do(server, adminReq(http.MethodDelete, "/api/v1/admin/certificates/"+certID, nil))
		assert.Equal(t, http.StatusNotFound, again.Code)
	})

	t.Run("Bulk generation from a roster", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("roster", "roster.csv")
		require.NoError(t, err)
		_, err = part.Write([]byte(strings.Join([]string{
			"Full Name,College Name,Activity,Activity Date (YYYY-MM-DD),Certificate Text (Optional)",
			"Asha Rao,XYZ College,Workshop,2024-03-10,",
			",XYZ College,Workshop,2024-03-10,",
		}, "\n")))
		require.NoError(t, err)
		require.NoError(t, mw.WriteField("template", "elegant"))
		require.NoError(t, mw.Close())

		req := adminReq(http.MethodPost, "/api/v1/admin/certificates/bulk", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		w := do(server, req)
		require.Equal(t, http.StatusOK, w.Code)

		var res certificate.BulkResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Len(t, res.Generated, 1)
		assert.Len(t, res.Failed, 1)
	})

	t.Run("Stats", func(t *testing.T) {
		w := do(server, adminReq(http.MethodGet, "/api/v1/admin/stats", nil))
		require.Equal(t, http.StatusOK, w.Code)
		var stats store.IssuanceStats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.GreaterOrEqual(t, stats.Total, int64(1))
	})
}

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer(newMemStore())
	w := do(server, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestStatelessDeployment(t *testing.T) {
	engine := render.NewEngine(qrgen.NewPNGEncoder(), render.DefaultIssuer(), "https://certigen.example.com")
	service := certificate.NewService(engine, nil)
	server := NewServer(NewHandlers(service, nil), testAdminToken)
	server.SetupRoutes()

	t.Run("Generation still works", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/certificates", generateBody())
		req.Header.Set("Content-Type", "application/json")
		w := do(server, req)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Verification answers on format", func(t *testing.T) {
		w := do(server, httptest.NewRequest(http.MethodGet, "/verify?cert_id=CERT-AB12CD34", nil))
		require.Equal(t, http.StatusOK, w.Code)
		var res certificate.VerifyResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.True(t, res.Valid)
		assert.Empty(t, res.Recipient)
	})

	t.Run("Admin surface is unavailable", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/certificates", nil)
		req.Header.Set("X-Admin-Token", testAdminToken)
		w := do(server, req)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
