// Package server exposes the local editor over HTTP: invoice CRUD,
// the live preview page, and the export actions. It is the
// surrounding application around the totals and layout core; the
// browser on localhost is the UI.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/config"
	"github.com/DrEEjc7/Quick-Invoice-Pro/internal/i18n"
	invoicedomain "github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/domain"
)

type Server struct {
	engine     *gin.Engine
	cfg        config.Config
	log        *zap.Logger
	invoiceSvc invoicedomain.Service
}

type ServerParam struct {
	fx.In

	Engine     *gin.Engine
	Cfg        config.Config
	Log        *zap.Logger
	InvoiceSvc invoicedomain.Service
}

func NewEngine(log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func NewServer(p ServerParam) *Server {
	s := &Server{
		engine:     p.Engine,
		cfg:        p.Cfg,
		log:        p.Log.Named("server"),
		invoiceSvc: p.InvoiceSvc,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/invoice", s.getInvoice)
		api.PUT("/invoice", s.updateInvoice)
		api.POST("/invoice/items", s.addItem)
		api.DELETE("/invoice/items/:index", s.removeItem)
		api.POST("/invoice/images/:kind", s.attachImage)
		api.DELETE("/invoice/images/:kind", s.removeImage)
		api.POST("/invoice/reset", s.resetInvoice)

		api.GET("/languages", s.listLanguages)

		api.POST("/export/download", s.exportDownload)
		api.POST("/export/print", s.exportPrint)
	}

	s.engine.GET("/preview", s.preview)
}

func (s *Server) listLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": i18n.Languages()})
}

// RunHTTP starts the editor server under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.log.Info("editor listening", zap.String("addr", s.cfg.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Module("http.server",
	fx.Provide(
		NewEngine,
		NewServer,
	),
	fx.Invoke(RunHTTP),
)
