package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eslsoft/jyutcollab/internal/entity"
	"github.com/eslsoft/jyutcollab/internal/repository"
	"github.com/eslsoft/jyutcollab/internal/usecase"
	"github.com/eslsoft/jyutcollab/pkg/filterexpr"
)

type EntryHandler struct {
	entries usecase.EntryUsecase
}

func NewEntryHandler(entries usecase.EntryUsecase) *EntryHandler {
	return &EntryHandler{entries: entries}
}

func (h *EntryHandler) List(c *gin.Context) {
	query := &repository.ListEntryQuery{
		Pagination: repository.Pagination{
			PageNo:   int32(intQuery(c, "page", 1)),
			PageSize: int32(intQuery(c, "per_page", 20)),
		},
		FilterOrder: repository.FilterOrder{
			Filter:  c.Query("filter"),
			OrderBy: c.Query("order_by"),
		},
		Query:     c.Query("q"),
		Dialect:   c.Query("dialect"),
		ThemeL3ID: intQuery(c, "theme", 0),
		CreatedBy: c.Query("created_by"),
	}
	if raw := c.Query("status"); raw != "" {
		status, ok := entity.ParseStatus(raw)
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		query.Status = status
	}
	switch c.Query("group_by") {
	case "headword":
		query.GroupBy = entity.GroupByHeadword
	case "lexeme":
		query.GroupBy = entity.GroupByLexeme
	}

	if err := filterexpr.Bind(&query.FilterOrder, query, listEntriesSchema); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.entries.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *EntryHandler) Get(c *gin.Context) {
	entry, err := h.entries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler) Create(c *gin.Context) {
	var entry entity.Entry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.entries.Create(c.Request.Context(), currentUser(c), &entry)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *EntryHandler) Update(c *gin.Context) {
	var patch entity.EntryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.entries.Update(c.Request.Context(), currentUser(c), c.Param("id"), &patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *EntryHandler) Delete(c *gin.Context) {
	if err := h.entries.Delete(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EntryHandler) Submit(c *gin.Context) {
	entry, err := h.entries.Submit(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *EntryHandler) CheckDuplicate(c *gin.Context) {
	matches, err := h.entries.CheckDuplicate(c.Request.Context(), c.Query("headword"), c.Query("dialect"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"duplicate": len(matches) > 0, "matches": matches})
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
