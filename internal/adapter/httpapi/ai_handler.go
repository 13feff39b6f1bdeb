package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eslsoft/jyutcollab/internal/editor"
	"github.com/eslsoft/jyutcollab/internal/entity"
)

// AIHandler exposes the suggestion backend over REST so browser clients
// never see the upstream API key.
type AIHandler struct {
	suggestions editor.SuggestionService
}

func NewAIHandler(suggestions editor.SuggestionService) *AIHandler {
	return &AIHandler{suggestions: suggestions}
}

func (h *AIHandler) bindRequest(c *gin.Context) (editor.SuggestionRequest, bool) {
	var req editor.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	if strings.TrimSpace(req.Expression) == "" {
		respondError(c, entity.ErrEmptyHeadword)
		return req, false
	}
	return req, true
}

func (h *AIHandler) SuggestDefinition(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}
	suggestion, err := h.suggestions.SuggestDefinition(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestion)
}

func (h *AIHandler) Categorize(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}
	categorization, err := h.suggestions.Categorize(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categorization)
}

func (h *AIHandler) SuggestExamples(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}
	examples, err := h.suggestions.SuggestExamples(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"examples": examples})
}
