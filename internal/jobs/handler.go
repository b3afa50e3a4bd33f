package jobs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-intel/internal/resumes"
	"resume-intel/internal/shared/server/middleware"
	"resume-intel/internal/shared/server/respond"
)

// Handler exposes job search and recommendation routes.
type Handler struct {
	Service *Service
}

// RegisterRoutes mounts the jobs endpoints on the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs/search", h.search)
	rg.GET("/jobs/recommendations", h.recommendations)
}

func (h *Handler) search(c *gin.Context) {
	what := c.Query("what")
	if what == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "query parameter 'what' is required", nil)
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("results_per_page", "20"))

	postings, err := h.Service.Client.Search(c.Request.Context(), []string{what}, c.Query("where"), page, perPage)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	respond.OK(c, gin.H{"results": postings, "count": len(postings)})
}

func (h *Handler) recommendations(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	minMatch := 40.0
	if raw := c.Query("min_match"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 100 {
			respond.Error(c, http.StatusBadRequest, "validation_error", "min_match must be a number between 0 and 100", nil)
			return
		}
		minMatch = v
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	recs, err := h.Service.Recommend(c.Request.Context(), userID, c.Query("where"), minMatch, limit)
	if err != nil {
		h.respondErr(c, err)
		return
	}
	respond.OK(c, gin.H{"recommendations": recs, "count": len(recs)})
}

func (h *Handler) respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotConfigured):
		respond.Error(c, http.StatusServiceUnavailable, "jobs_unavailable", "job search is not configured", nil)
	case errors.Is(err, resumes.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "no analyzed resume found; analyze a resume first", nil)
	default:
		respond.Error(c, http.StatusBadGateway, "jobs_upstream_error", "job search provider request failed", nil)
	}
}
