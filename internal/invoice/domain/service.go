package domain

import (
	"context"
	"errors"
)

var (
	ErrExportInFlight = errors.New("export_in_flight")
	ErrExportFailed   = errors.New("export_failed")
)

// ExportRequest selects the language the document is rendered in.
// An empty language falls back to the invoice's own setting.
type ExportRequest struct {
	Language string
}

// ExportArtifact is the finished document plus any non-fatal
// conditions encountered while producing it (a skipped image, for
// example). Warnings never prevent the artifact from existing.
type ExportArtifact struct {
	FileName    string
	ContentType string
	Data        []byte
	Warnings    []string
}

// Service is the editing and export surface consumed by the HTTP
// handlers. Every mutation persists the aggregate and returns the
// fresh state with recomputed totals.
type Service interface {
	Current(ctx context.Context) (Invoice, Totals, error)
	Update(ctx context.Context, inv Invoice) (Invoice, Totals, error)
	AddItem(ctx context.Context) (Invoice, Totals, error)
	RemoveItem(ctx context.Context, index int) (Invoice, Totals, error)
	AttachImage(ctx context.Context, kind, dataURL string) (Invoice, error)
	RemoveImage(ctx context.Context, kind string) (Invoice, error)
	Reset(ctx context.Context) (Invoice, Totals, error)

	PreviewHTML(ctx context.Context, lang string) (string, error)
	Export(ctx context.Context, req ExportRequest) (ExportArtifact, error)
}
