package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eslsoft/jyutcollab/internal/entity"
	"github.com/eslsoft/jyutcollab/internal/repository"
	"github.com/eslsoft/jyutcollab/internal/usecase"
)

type HistoryHandler struct {
	histories usecase.HistoryUsecase
}

func NewHistoryHandler(histories usecase.HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{histories: histories}
}

func (h *HistoryHandler) List(c *gin.Context) {
	query := &repository.ListHistoryQuery{
		Pagination: repository.Pagination{
			PageNo:   int32(intQuery(c, "page", 1)),
			PageSize: int32(intQuery(c, "per_page", 20)),
		},
		EntryID:  c.Query("entry_id"),
		EditorID: c.Query("editor_id"),
		Action:   entity.HistoryAction(c.Query("action")),
	}
	items, total, err := h.histories.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "total": total})
}

func (h *HistoryHandler) ListByEntry(c *gin.Context) {
	page := repository.Pagination{
		PageNo:   int32(intQuery(c, "page", 1)),
		PageSize: int32(intQuery(c, "per_page", 20)),
	}
	items, total, err := h.histories.ListByEntry(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items, "total": total})
}

func (h *HistoryHandler) Revert(c *gin.Context) {
	entry, err := h.histories.Revert(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
