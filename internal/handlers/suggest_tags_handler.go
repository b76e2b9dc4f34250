package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/inventory-api/internal/httperr"
	"github.com/BruksfildServices01/inventory-api/internal/httpresp"
)

// TagSuggester returns up to 3 tags for a product. Implementations absorb
// upstream failures and fall back internally, so there is no error return.
type TagSuggester interface {
	Suggest(ctx context.Context, name, description string) []string
}

type SuggestTagsHandler struct {
	suggester TagSuggester
}

func NewSuggestTagsHandler(suggester TagSuggester) *SuggestTagsHandler {
	return &SuggestTagsHandler{suggester: suggester}
}

// --------- Requests ---------

type SuggestTagsRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// --------- Handlers ---------

func (h *SuggestTagsHandler) Suggest(c *gin.Context) {
	var req SuggestTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Validation(c, err)
		return
	}

	suggested := h.suggester.Suggest(c.Request.Context(), req.Name, req.Description)
	if suggested == nil {
		suggested = []string{}
	}

	httpresp.OK(c, gin.H{"tags": suggested})
}
