package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/drafting"
	"github.com/pakdocs/pakdocs/backend/go-services/internal/validation"
	"github.com/pakdocs/pakdocs/backend/go-services/pkg/middleware"
)

// GenerateHandler relays drafting requests for authenticated users.
type GenerateHandler struct {
	drafts *drafting.Service
}

func NewGenerateHandler(s *drafting.Service) *GenerateHandler {
	return &GenerateHandler{drafts: s}
}

// Register mounts POST /generate on an authenticated group.
func (h *GenerateHandler) Register(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	rg.POST("/generate", chain(mw, h.Generate)...)
}

func (h *GenerateHandler) Generate(c *gin.Context) {
	var req drafting.Request
	if fe := validation.Check(c.ShouldBindJSON(&req), &req); fe != nil {
		c.JSON(http.StatusBadRequest, fe)
		return
	}
	content, err := h.drafts.Generate(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		// details are logged by the drafting service
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate document"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": content})
}
