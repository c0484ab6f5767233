package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	invoicedomain "github.com/DrEEjc7/Quick-Invoice-Pro/internal/invoice/domain"
)

func abortBadJSON(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: errorPayload{
		Type:    "invalid_request",
		Message: "malformed request body",
	}})
}

type invoiceResponse struct {
	Invoice invoicedomain.Invoice `json:"invoice"`
	Totals  invoicedomain.Totals  `json:"totals"`
}

func (s *Server) getInvoice(c *gin.Context) {
	inv, tot, err := s.invoiceSvc.Current(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoiceResponse{Invoice: inv, Totals: tot})
}

func (s *Server) updateInvoice(c *gin.Context) {
	var inv invoicedomain.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		abortBadJSON(c)
		return
	}
	updated, tot, err := s.invoiceSvc.Update(c.Request.Context(), inv)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoiceResponse{Invoice: updated, Totals: tot})
}

func (s *Server) addItem(c *gin.Context) {
	inv, tot, err := s.invoiceSvc.AddItem(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoiceResponse{Invoice: inv, Totals: tot})
}

func (s *Server) removeItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		AbortWithError(c, invoicedomain.ErrItemIndex)
		return
	}
	inv, tot, err := s.invoiceSvc.RemoveItem(c.Request.Context(), index)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoiceResponse{Invoice: inv, Totals: tot})
}

type attachImageRequest struct {
	DataURL string `json:"dataUrl" binding:"required"`
}

func (s *Server) attachImage(c *gin.Context) {
	var req attachImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadJSON(c)
		return
	}
	inv, err := s.invoiceSvc.AttachImage(c.Request.Context(), c.Param("kind"), req.DataURL)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": inv})
}

func (s *Server) removeImage(c *gin.Context) {
	inv, err := s.invoiceSvc.RemoveImage(c.Request.Context(), c.Param("kind"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoice": inv})
}

func (s *Server) resetInvoice(c *gin.Context) {
	inv, tot, err := s.invoiceSvc.Reset(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoiceResponse{Invoice: inv, Totals: tot})
}

func (s *Server) preview(c *gin.Context) {
	html, err := s.invoiceSvc.PreviewHTML(c.Request.Context(), c.Query("lang"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// exportDownload produces the PDF as a file attachment, the
// original's "download" action.
func (s *Server) exportDownload(c *gin.Context) {
	s.export(c, "attachment")
}

// exportPrint serves the PDF inline so the browser opens its print
// view, the original's "print" action.
func (s *Server) exportPrint(c *gin.Context) {
	s.export(c, "inline")
}

func (s *Server) export(c *gin.Context, disposition string) {
	artifact, err := s.invoiceSvc.Export(c.Request.Context(), invoicedomain.ExportRequest{
		Language: c.Query("lang"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	for _, w := range artifact.Warnings {
		c.Writer.Header().Add("X-Export-Warning", w)
	}
	c.Header("Content-Disposition", disposition+`; filename="`+artifact.FileName+`"`)
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}
