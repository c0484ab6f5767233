package invoice

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/render"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/service"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/store"
)

var Module = fx.Module("invoice.service",
	fx.Provide(
		store.Open,
		render.NewHTMLRenderer,
		newPDFBackendFactory,
		service.NewService,
	),
)

func newPDFBackendFactory(log *zap.Logger) service.BackendFactory {
	return func() render.Backend {
		return render.NewPDF(log)
	}
}
