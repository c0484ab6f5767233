// Package service orchestrates invoice editing and document export.
package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/clock"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/config"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/i18n"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/domain"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/format"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/layout"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/render"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/store"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/totals"
)

// BackendFactory builds a fresh rendering backend per export call.
type BackendFactory func() render.Backend

type ServiceParam struct {
	fx.In

	Cfg     config.Config
	Theme   *config.ThemeHolder
	Store   *store.Store
	Log     *zap.Logger
	Clock   clock.Clock
	Preview *render.HTMLRenderer
	Backend BackendFactory
}

type Service struct {
	cfg     config.Config
	theme   *config.ThemeHolder
	store   *store.Store
	log     *zap.Logger
	clock   clock.Clock
	preview *render.HTMLRenderer
	backend BackendFactory

	// Export is a single non-preemptible step per user action;
	// overlapping requests are rejected, not queued.
	exportMu sync.Mutex
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		cfg:     p.Cfg,
		theme:   p.Theme,
		store:   p.Store,
		log:     p.Log.Named("invoice.service"),
		clock:   p.Clock,
		preview: p.Preview,
		backend: p.Backend,
	}
}

func (s *Service) Current(ctx context.Context) (domain.Invoice, domain.Totals, error) {
	inv, err := s.store.Load(ctx)
	if err != nil {
		return domain.Invoice{}, domain.Totals{}, err
	}
	return inv, s.totalsOf(inv), nil
}

func (s *Service) Update(ctx context.Context, inv domain.Invoice) (domain.Invoice, domain.Totals, error) {
	if inv.Logo != nil && len(inv.Logo.Data) > domain.MaxImageBytes {
		return domain.Invoice{}, domain.Totals{}, domain.ErrImageTooLarge
	}
	if inv.Signature != nil && len(inv.Signature.Data) > domain.MaxImageBytes {
		return domain.Invoice{}, domain.Totals{}, domain.ErrImageTooLarge
	}
	inv.Normalize()
	if err := s.store.Save(ctx, inv); err != nil {
		return domain.Invoice{}, domain.Totals{}, err
	}
	return inv, s.totalsOf(inv), nil
}

func (s *Service) AddItem(ctx context.Context) (domain.Invoice, domain.Totals, error) {
	inv, err := s.store.Load(ctx)
	if err != nil {
		return domain.Invoice{}, domain.Totals{}, err
	}
	inv.AddItem()
	if err := s.store.Save(ctx, inv); err != nil {
		return domain.Invoice{}, domain.Totals{}, err
	}
	return inv, s.totalsOf(inv), nil
}

func (s *Service) RemoveItem(ctx context.Context, index int) (domain.Invoice, domain.Totals, error) {
	inv, err := s.store.Load(ctx)
	if err != nil {
		return domain.Invoice{}, domain.Totals{}, err
	}
	if err := inv.RemoveItem(index); err != nil {
		return domain.Invoice{}, domain.Totals{}, err
	}
	if err := s.store.Save(ctx, inv); err != nil {
		return domain.Invoice{}, domain.Totals{}, err
	}
	return inv, s.totalsOf(inv), nil
}

func (s *Service) AttachImage(ctx context.Context, kind, dataURL string) (domain.Invoice, error) {
	img, err := domain.ParseDataURL(dataURL)
	if err != nil {
		return domain.Invoice{}, err
	}
	inv, err := s.store.Load(ctx)
	if err != nil {
		return domain.Invoice{}, err
	}
	if err := inv.AttachImage(kind, img); err != nil {
		return domain.Invoice{}, err
	}
	if err := s.store.Save(ctx, inv); err != nil {
		return domain.Invoice{}, err
	}
	return inv, nil
}

func (s *Service) RemoveImage(ctx context.Context, kind string) (domain.Invoice, error) {
	inv, err := s.store.Load(ctx)
	if err != nil {
		return domain.Invoice{}, err
	}
	if err := inv.AttachImage(kind, nil); err != nil {
		return domain.Invoice{}, err
	}
	if err := s.store.Save(ctx, inv); err != nil {
		return domain.Invoice{}, err
	}
	return inv, nil
}

func (s *Service) Reset(ctx context.Context) (domain.Invoice, domain.Totals, error) {
	inv, err := s.store.Reset(ctx)
	if err != nil {
		return domain.Invoice{}, domain.Totals{}, err
	}
	if number, err := format.InvoiceNumber(format.DefaultInvoiceNumberTemplate, s.clock.Now(), 1); err == nil {
		inv.Number = number
	}
	if err := s.store.Save(ctx, inv); err != nil {
		return domain.Invoice{}, domain.Totals{}, err
	}
	return inv, s.totalsOf(inv), nil
}

// Export validates the invoice, lays out the printable document, and
// executes it against a fresh rendering backend. At most one export
// runs at a time; a second request while one is in flight is
// rejected. The in-flight lock is released on every path, including
// a panicking backend.
func (s *Service) Export(ctx context.Context, req domain.ExportRequest) (artifact domain.ExportArtifact, err error) {
	if !s.exportMu.TryLock() {
		return domain.ExportArtifact{}, domain.ErrExportInFlight
	}
	defer s.exportMu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("export panicked", zap.Any("panic", r))
			artifact = domain.ExportArtifact{}
			err = fmt.Errorf("%w: %v", domain.ErrExportFailed, r)
		}
	}()

	inv, err := s.store.Load(ctx)
	if err != nil {
		return domain.ExportArtifact{}, err
	}
	if err := inv.Validate(); err != nil {
		return domain.ExportArtifact{}, err
	}

	tr := i18n.New(s.language(req.Language, inv))
	tot := s.totalsOf(inv)

	engine := layout.NewEngine(s.layoutTheme())
	doc := engine.Layout(inv, tot, tr)
	for _, w := range doc.Warnings {
		s.log.Warn("layout warning", zap.String("warning", w))
	}

	backend := s.backend()
	if err := backend.Execute(doc); err != nil {
		s.log.Error("document rendering failed", zap.Error(err))
		return domain.ExportArtifact{}, fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}
	data, err := backend.Output()
	if err != nil {
		s.log.Error("document output failed", zap.Error(err))
		return domain.ExportArtifact{}, fmt.Errorf("%w: %v", domain.ErrExportFailed, err)
	}

	number := inv.Number
	if number == "" {
		number = "001"
	}
	return domain.ExportArtifact{
		FileName:    "Invoice-" + number + ".pdf",
		ContentType: backend.ContentType(),
		Data:        data,
		Warnings:    doc.Warnings,
	}, nil
}

// PreviewHTML renders the live on-screen preview for the current
// invoice in the requested language.
func (s *Service) PreviewHTML(ctx context.Context, lang string) (string, error) {
	inv, err := s.store.Load(ctx)
	if err != nil {
		return "", err
	}
	tot := s.totalsOf(inv)
	tr := i18n.New(s.language(lang, inv))
	return s.preview.Render(s.previewInput(inv, tot, tr))
}

func (s *Service) totalsOf(inv domain.Invoice) domain.Totals {
	return totals.Compute(inv.Items, inv.Discount, inv.TaxRate)
}

func (s *Service) language(requested string, inv domain.Invoice) string {
	switch {
	case requested != "" && i18n.Supported(requested):
		return requested
	case i18n.Supported(inv.Language):
		return inv.Language
	default:
		return s.cfg.Language
	}
}

func (s *Service) layoutTheme() layout.Theme {
	theme := layout.DefaultTheme()
	if fill, ok := parseHexColor(s.theme.Get().PrimaryColor); ok {
		theme.HeadFill = fill
	}
	return theme
}

func parseHexColor(hex string) (layout.RGB, bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return layout.RGB{}, false
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return layout.RGB{}, false
	}
	return layout.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}
