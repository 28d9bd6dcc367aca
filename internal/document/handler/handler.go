package handler

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/document"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/document/service"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/export"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/validation"
	"github.com/pakdocs/pakdocs/backend/go-services/pkg/logger"
	"github.com/pakdocs/pakdocs/backend/go-services/pkg/metrics"
	"github.com/pakdocs/pakdocs/backend/go-services/pkg/middleware"
)

// ArchiveURLHeader carries a presigned link to the archived copy of a PDF export.
const ArchiveURLHeader = "X-Archive-URL"

// Handler exposes owner-scoped document CRUD and PDF export.
type Handler struct {
	svc      service.Service
	renderer *export.Renderer
	archiver export.Archiver
}

// New returns a Handler. archiver may be nil to disable export archiving.
func New(svc service.Service, renderer *export.Renderer, archiver export.Archiver) *Handler {
	if renderer == nil {
		renderer = export.NewRenderer("")
	}
	return &Handler{svc: svc, renderer: renderer, archiver: archiver}
}

// RegisterRoutes mounts the document routes on an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents", h.list)
	rg.POST("/documents", h.create)
	rg.GET("/documents/:id", h.get)
	rg.GET("/documents/:id/pdf", h.pdf)
	rg.DELETE("/documents/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	docs, err := h.svc.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, "list documents", err)
		return
	}
	if docs == nil {
		docs = []*document.Document{}
	}
	c.JSON(http.StatusOK, docs)
}

func (h *Handler) create(c *gin.Context) {
	var in document.CreateInput
	if fe := validation.Check(c.ShouldBindJSON(&in), &in); fe != nil {
		c.JSON(http.StatusBadRequest, fe)
		return
	}
	d, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		h.fail(c, "create document", err)
		return
	}
	metrics.DocumentsCreated.Inc()
	c.JSON(http.StatusCreated, d)
}

func (h *Handler) get(c *gin.Context) {
	d, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) pdf(c *gin.Context) {
	d, ok := h.lookup(c)
	if !ok {
		return
	}
	out, err := h.renderer.Render(d)
	if err != nil {
		h.fail(c, "render pdf", err)
		return
	}
	if export.Archive(c.Request.Context(), h.archiver, d.UserID, d.ID, out) {
		if u := export.ArchiveURL(c.Request.Context(), h.archiver, d.UserID, d.ID); u != "" {
			c.Header(ArchiveURLHeader, u)
		}
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": export.FileName(d.Title)}))
	c.Data(http.StatusOK, "application/pdf", out)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		h.fail(c, "delete document", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// lookup loads the :id document for the session user, writing the error response on failure.
func (h *Handler) lookup(c *gin.Context) (*document.Document, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}
	d, err := h.svc.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		h.fail(c, "get document", err)
		return nil, false
	}
	return d, true
}

// parseID treats an id that is not a positive integer as an unknown document.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		notFound(c)
		return 0, false
	}
	return uint(id), true
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		notFound(c)
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized"})
	default:
		logger.Errorf("%s: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Document not found"})
}
