package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eslsoft/jyutcollab/internal/entity"
	"github.com/eslsoft/jyutcollab/internal/repository"
	"github.com/eslsoft/jyutcollab/internal/usecase"
)

type reviewDecision func(ctx context.Context, actor *entity.User, entryID, notes string) (*entity.Entry, error)

type ReviewHandler struct {
	reviews usecase.ReviewUsecase
}

func NewReviewHandler(reviews usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) ListPending(c *gin.Context) {
	query := &repository.ListEntryQuery{
		Pagination: repository.Pagination{
			PageNo:   int32(intQuery(c, "page", 1)),
			PageSize: int32(intQuery(c, "per_page", 20)),
		},
		Dialect: c.Query("dialect"),
	}
	items, total, err := h.reviews.ListPending(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "total": total})
}

type reviewDecisionRequest struct {
	Notes string `json:"notes"`
}

func (h *ReviewHandler) Approve(c *gin.Context) {
	h.decide(c, h.reviews.Approve)
}

func (h *ReviewHandler) Reject(c *gin.Context) {
	h.decide(c, h.reviews.Reject)
}

func (h *ReviewHandler) decide(c *gin.Context, decision reviewDecision) {
	var req reviewDecisionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	entry, err := decision(c.Request.Context(), currentUser(c), c.Param("id"), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
