package service

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/clock"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/config"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/domain"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/layout"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/render"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/store"
)

func newTestService(t *testing.T, factory BackendFactory) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC))
	st, err := store.New(db, zap.NewNop(), node, clk)
	require.NoError(t, err)

	theme, err := config.NewThemeHolder()
	require.NoError(t, err)

	if factory == nil {
		factory = func() render.Backend { return render.NewRecorder() }
	}

	return NewService(ServiceParam{
		Cfg:     config.Config{Language: "en"},
		Theme:   theme,
		Store:   st,
		Log:     zap.NewNop(),
		Clock:   clk,
		Preview: render.NewHTMLRenderer(),
		Backend: factory,
	})
}

func TestCurrentSeedsDefaultInvoice(t *testing.T) {
	svc := newTestService(t, nil)

	inv, tot, err := svc.Current(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "INV-001", inv.Number)
	assert.InDelta(t, 1500.0, tot.Subtotal, 1e-9)
	assert.InDelta(t, 150.0, tot.Tax, 1e-9)
	assert.InDelta(t, 1650.0, tot.Total, 1e-9)
}

func TestUpdateRecomputesTotals(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	inv, _, err := svc.Current(ctx)
	require.NoError(t, err)
	inv.Discount = "10%"

	_, tot, err := svc.Update(ctx, inv)
	require.NoError(t, err)
	assert.InDelta(t, 150.0, tot.Discount, 1e-9)
	assert.InDelta(t, 1485.0, tot.Total, 1e-9)
}

func TestUpdateRejectsOversizedImages(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	inv, _, err := svc.Current(ctx)
	require.NoError(t, err)
	inv.Logo = &domain.ImageAttachment{Format: "png", Data: make([]byte, domain.MaxImageBytes+1)}

	_, _, err = svc.Update(ctx, inv)
	assert.ErrorIs(t, err, domain.ErrImageTooLarge)
}

func TestAddAndRemoveItems(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	inv, _, err := svc.AddItem(ctx)
	require.NoError(t, err)
	require.Len(t, inv.Items, 2)

	inv, _, err = svc.RemoveItem(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, inv.Items, 1)

	_, _, err = svc.RemoveItem(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrLastItem)

	_, _, err = svc.RemoveItem(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrItemIndex)
}

func TestAttachAndRemoveImage(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("pixels"))

	inv, err := svc.AttachImage(ctx, "logo", dataURL)
	require.NoError(t, err)
	require.NotNil(t, inv.Logo)
	assert.Equal(t, "png", inv.Logo.Format)

	// The attachment survives a reload.
	inv, _, err = svc.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, inv.Logo)

	inv, err = svc.RemoveImage(ctx, "logo")
	require.NoError(t, err)
	assert.Nil(t, inv.Logo)

	_, err = svc.AttachImage(ctx, "logo", "not-a-data-url")
	assert.ErrorIs(t, err, domain.ErrMalformedImage)

	_, err = svc.AttachImage(ctx, "banner", dataURL)
	assert.ErrorIs(t, err, domain.ErrUnknownImage)
}

func TestResetDiscardsEdits(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	inv, _, err := svc.Current(ctx)
	require.NoError(t, err)
	inv.Client.Name = "Scratch That"
	_, _, err = svc.Update(ctx, inv)
	require.NoError(t, err)

	fresh, _, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Client Inc.", fresh.Client.Name)
	assert.Equal(t, "INV-001", fresh.Number)
}

func TestExportProducesArtifact(t *testing.T) {
	rec := render.NewRecorder()
	svc := newTestService(t, func() render.Backend { return rec })

	artifact, err := svc.Export(context.Background(), domain.ExportRequest{})
	require.NoError(t, err)

	assert.Equal(t, "Invoice-INV-001.pdf", artifact.FileName)
	assert.Equal(t, "application/octet-stream", artifact.ContentType)
	assert.True(t, rec.Executed)
	assert.Contains(t, strings.Join(rec.Texts(), "\n"), "INVOICE")
}

func TestExportHonorsRequestedLanguage(t *testing.T) {
	rec := render.NewRecorder()
	svc := newTestService(t, func() render.Backend { return rec })

	_, err := svc.Export(context.Background(), domain.ExportRequest{Language: "es"})
	require.NoError(t, err)

	assert.Contains(t, strings.Join(rec.Texts(), "\n"), "FACTURA")
}

func TestExportBlocksOnValidationFailure(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	inv, _, err := svc.Current(ctx)
	require.NoError(t, err)
	inv.Client.Name = ""
	_, _, err = svc.Update(ctx, inv)
	require.NoError(t, err)

	_, err = svc.Export(ctx, domain.ExportRequest{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "clientName", verr.Field)
}

// parkedBackend blocks inside Execute until released.
type parkedBackend struct {
	started chan struct{}
	release chan struct{}
}

func (b *parkedBackend) Execute(_ layout.Document) error {
	close(b.started)
	<-b.release
	return nil
}

func (b *parkedBackend) Output() ([]byte, error) { return []byte("done"), nil }
func (b *parkedBackend) ContentType() string     { return "application/pdf" }

func TestExportRejectsOverlappingRequests(t *testing.T) {
	parked := &parkedBackend{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	first := true
	svc := newTestService(t, func() render.Backend {
		if first {
			first = false
			return parked
		}
		return render.NewRecorder()
	})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := svc.Export(ctx, domain.ExportRequest{})
		done <- err
	}()

	<-parked.started
	_, err := svc.Export(ctx, domain.ExportRequest{})
	assert.ErrorIs(t, err, domain.ErrExportInFlight)

	close(parked.release)
	require.NoError(t, <-done)

	// The lock is released once the first export finishes.
	_, err = svc.Export(ctx, domain.ExportRequest{})
	assert.NoError(t, err)
}

// panicBackend simulates a rendering crash.
type panicBackend struct{}

func (panicBackend) Execute(_ layout.Document) error { panic("boom") }
func (panicBackend) Output() ([]byte, error)         { return nil, nil }
func (panicBackend) ContentType() string             { return "application/pdf" }

func TestExportRecoversFromBackendPanicAndReleasesLock(t *testing.T) {
	calls := 0
	svc := newTestService(t, func() render.Backend {
		calls++
		if calls == 1 {
			return panicBackend{}
		}
		return render.NewRecorder()
	})
	ctx := context.Background()

	_, err := svc.Export(ctx, domain.ExportRequest{})
	assert.ErrorIs(t, err, domain.ErrExportFailed)

	// A failed export must not leave the in-flight lock held.
	_, err = svc.Export(ctx, domain.ExportRequest{})
	assert.NoError(t, err)
}
