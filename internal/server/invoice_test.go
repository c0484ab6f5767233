package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/config"
	invoicedomain "github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/domain"
)

type fakeInvoiceService struct {
	invoice invoicedomain.Invoice
	totals  invoicedomain.Totals

	exportErr      error
	exportWarnings []string
	removeCalls    []int
	attachKinds    []string
}

func (f *fakeInvoiceService) Current(ctx context.Context) (invoicedomain.Invoice, invoicedomain.Totals, error) {
	return f.invoice, f.totals, nil
}

func (f *fakeInvoiceService) Update(ctx context.Context, inv invoicedomain.Invoice) (invoicedomain.Invoice, invoicedomain.Totals, error) {
	f.invoice = inv
	return f.invoice, f.totals, nil
}

func (f *fakeInvoiceService) AddItem(ctx context.Context) (invoicedomain.Invoice, invoicedomain.Totals, error) {
	f.invoice.AddItem()
	return f.invoice, f.totals, nil
}

func (f *fakeInvoiceService) RemoveItem(ctx context.Context, index int) (invoicedomain.Invoice, invoicedomain.Totals, error) {
	f.removeCalls = append(f.removeCalls, index)
	if err := f.invoice.RemoveItem(index); err != nil {
		return invoicedomain.Invoice{}, invoicedomain.Totals{}, err
	}
	return f.invoice, f.totals, nil
}

func (f *fakeInvoiceService) AttachImage(ctx context.Context, kind, dataURL string) (invoicedomain.Invoice, error) {
	f.attachKinds = append(f.attachKinds, kind)
	img, err := invoicedomain.ParseDataURL(dataURL)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if err := f.invoice.AttachImage(kind, img); err != nil {
		return invoicedomain.Invoice{}, err
	}
	return f.invoice, nil
}

func (f *fakeInvoiceService) RemoveImage(ctx context.Context, kind string) (invoicedomain.Invoice, error) {
	if err := f.invoice.AttachImage(kind, nil); err != nil {
		return invoicedomain.Invoice{}, err
	}
	return f.invoice, nil
}

func (f *fakeInvoiceService) Reset(ctx context.Context) (invoicedomain.Invoice, invoicedomain.Totals, error) {
	return f.invoice, f.totals, nil
}

func (f *fakeInvoiceService) PreviewHTML(ctx context.Context, lang string) (string, error) {
	return "<!doctype html><title>preview</title>", nil
}

func (f *fakeInvoiceService) Export(ctx context.Context, req invoicedomain.ExportRequest) (invoicedomain.ExportArtifact, error) {
	if f.exportErr != nil {
		return invoicedomain.ExportArtifact{}, f.exportErr
	}
	return invoicedomain.ExportArtifact{
		FileName:    "Invoice-INV-001.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-fake"),
		Warnings:    f.exportWarnings,
	}, nil
}

func newTestServer(t *testing.T) (*Server, *fakeInvoiceService) {
	t.Helper()

	fake := &fakeInvoiceService{
		invoice: invoicedomain.Invoice{
			Number: "INV-001",
			Items:  []invoicedomain.LineItem{{Description: "Design", Quantity: 10, Rate: 150}},
		},
		totals: invoicedomain.Totals{Subtotal: 1500, Tax: 150, Total: 1650},
	}

	s := NewServer(ServerParam{
		Engine:     NewEngine(zap.NewNop()),
		Cfg:        config.Config{Addr: "127.0.0.1:0"},
		Log:        zap.NewNop(),
		InvoiceSvc: fake,
	})
	return s, fake
}

func do(s *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func TestGetInvoice(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(s, http.MethodGet, "/api/invoice", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Invoice invoicedomain.Invoice `json:"invoice"`
		Totals  invoicedomain.Totals  `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INV-001", resp.Invoice.Number)
	assert.InDelta(t, 1650.0, resp.Totals.Total, 1e-9)
}

func TestUpdateInvoiceRejectsMalformedBody(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(s, http.MethodPut, "/api/invoice", []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveItemPaths(t *testing.T) {
	s, fake := newTestServer(t)

	w := do(s, http.MethodDelete, "/api/invoice/items/zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, fake.removeCalls)

	// The only remaining row cannot be removed.
	w = do(s, http.MethodDelete, "/api/invoice/items/0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []int{0}, fake.removeCalls)
}

func TestAttachImage(t *testing.T) {
	s, fake := newTestServer(t)

	body, _ := json.Marshal(map[string]string{
		"dataUrl": "data:image/png;base64,cGl4ZWxz",
	})
	w := do(s, http.MethodPost, "/api/invoice/images/logo", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"logo"}, fake.attachKinds)

	w = do(s, http.MethodPost, "/api/invoice/images/logo", []byte(`{"dataUrl":"nope"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(s, http.MethodPost, "/api/invoice/images/banner", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportDispositions(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(s, http.MethodPost, "/api/export/download", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Invoice-INV-001.pdf"`, w.Header().Get("Content-Disposition"))

	w = do(s, http.MethodPost, "/api/export/print", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `inline; filename="Invoice-INV-001.pdf"`, w.Header().Get("Content-Disposition"))
}

func TestExportEmitsOneHeaderPerWarning(t *testing.T) {
	s, fake := newTestServer(t)
	fake.exportWarnings = []string{
		`logo skipped: unrecognized image format "svg+xml"`,
		`signature skipped: unrecognized image format "tiff"`,
	}

	w := do(s, http.MethodPost, "/api/export/download", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fake.exportWarnings, w.Header().Values("X-Export-Warning"))
}

func TestExportInFlightConflict(t *testing.T) {
	s, fake := newTestServer(t)
	fake.exportErr = invoicedomain.ErrExportInFlight

	w := do(s, http.MethodPost, "/api/export/download", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestExportValidationFailure(t *testing.T) {
	s, fake := newTestServer(t)
	fake.exportErr = &invoicedomain.ValidationError{
		Field: "clientName", MessageKey: "validationClientName", ItemIndex: -1,
	}

	w := do(s, http.MethodPost, "/api/export/download", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Error struct {
			Type       string `json:"type"`
			Field      string `json:"field"`
			MessageKey string `json:"messageKey"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "validation_error", resp.Error.Type)
	assert.Equal(t, "clientName", resp.Error.Field)
}

func TestPreviewServesHTML(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(s, http.MethodGet, "/preview?lang=es", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestListLanguages(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(s, http.MethodGet, "/api/languages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"en"`)
}

func TestRequestIDPropagation(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = do(s, http.MethodGet, "/health", nil)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
