package resumes

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-intel/internal/pipeline"
	"resume-intel/internal/pipeline/extract"
	"resume-intel/internal/shared/server/middleware"
	"resume-intel/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.upload)
	rg.GET("/resumes", h.list)
	rg.POST("/resumes/:id/analyze", h.analyze)
	rg.POST("/resumes/:id/ats-score", h.atsScore)
	rg.GET("/resumes/:id/skills", h.skills)
	rg.POST("/resumes/:id/convert", h.convert)
	rg.POST("/analyze-text", h.analyzeText)
	rg.POST("/convert", h.convertUpload)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	res, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		respondPipelineError(c, err, "failed to upload resume")
		return
	}

	c.Set("resumeId", res.ID)
	respond.JSON(c, http.StatusCreated, toResponse(res))
}

type analyzeRequest struct {
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	// An empty or missing body is fine; analysis without a job description
	// is a supported degraded mode.
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.JobDescription = ""
	}

	id := c.Param("id")
	c.Set("resumeId", id)
	analysis, err := h.Svc.Analyze(c.Request.Context(), userID, id, req.JobDescription)
	if err != nil {
		respondPipelineError(c, err, "failed to analyze resume")
		return
	}
	respond.OK(c, analysis)
}

func (h *Handler) atsScore(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.JobDescription = ""
	}

	id := c.Param("id")
	c.Set("resumeId", id)
	breakdown, err := h.Svc.ATSScore(c.Request.Context(), userID, id, req.JobDescription)
	if err != nil {
		respondPipelineError(c, err, "failed to score resume")
		return
	}
	respond.OK(c, breakdown)
}

func (h *Handler) skills(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	id := c.Param("id")
	c.Set("resumeId", id)
	summary, err := h.Svc.Skills(c.Request.Context(), userID, id)
	if err != nil {
		respondPipelineError(c, err, "failed to extract skills")
		return
	}
	respond.OK(c, gin.H{"categories": summary})
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	list, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respondPipelineError(c, err, "failed to list resumes")
		return
	}

	resp := make([]ResumeResponse, 0, len(list))
	for _, res := range list {
		resp = append(resp, toResponse(res))
	}
	respond.OK(c, resp)
}

type analyzeTextRequest struct {
	Text           string `json:"text"`
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) analyzeText(c *gin.Context) {
	var req analyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	analysis, err := h.Svc.AnalyzeText(req.Text, req.JobDescription)
	if err != nil {
		respondPipelineError(c, err, "failed to analyze text")
		return
	}
	respond.OK(c, analysis)
}

type convertRequest struct {
	Keywords []string `json:"keywords"`
}

func (h *Handler) convert(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req convertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Keywords = nil
	}

	id := c.Param("id")
	c.Set("resumeId", id)
	if c.Query("format") == "docx" {
		data, err := h.Svc.ConvertDOCX(c.Request.Context(), userID, id, req.Keywords)
		if err != nil {
			respondPipelineError(c, err, "failed to convert resume")
			return
		}
		c.Header("Content-Disposition", `attachment; filename="resume-ats.docx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", data)
		return
	}

	rebuilt, err := h.Svc.Convert(c.Request.Context(), userID, id, req.Keywords)
	if err != nil {
		respondPipelineError(c, err, "failed to convert resume")
		return
	}
	respond.OK(c, rebuilt)
}

// convertUpload is the one-shot variant of convert: the file comes in the
// request itself and nothing is persisted.
func (h *Handler) convertUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	keywords := splitKeywords(c.PostForm("keywords"))

	if c.Query("format") == "docx" {
		data, err := h.Svc.ConvertUploadDOCX(c.Request.Context(), fileHeader.Filename, file, keywords)
		if err != nil {
			respondPipelineError(c, err, "failed to convert resume")
			return
		}
		c.Header("Content-Disposition", `attachment; filename="resume-ats.docx"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", data)
		return
	}

	rebuilt, err := h.Svc.ConvertUpload(c.Request.Context(), fileHeader.Filename, file, keywords)
	if err != nil {
		respondPipelineError(c, err, "failed to convert resume")
		return
	}
	respond.OK(c, rebuilt)
}

func splitKeywords(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// respondPipelineError maps domain errors onto HTTP statuses. Extraction
// problems are the caller's to fix, so they surface as 4xx with a stable
// machine-readable code.
func respondPipelineError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, extract.ErrUnsupportedFormat):
		respond.Error(c, http.StatusBadRequest, "unsupported_format", err.Error(), nil)
	case errors.Is(err, extract.ErrImageOnlyDocument):
		respond.Error(c, http.StatusUnprocessableEntity, "image_only_document",
			"this file looks like a scanned image; upload a text-based PDF or DOCX", nil)
	case errors.Is(err, extract.ErrExtractionFailed):
		respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", err.Error(), nil)
	case errors.Is(err, pipeline.ErrInsufficientText):
		respond.Error(c, http.StatusUnprocessableEntity, "insufficient_text", err.Error(), nil)
	case errors.Is(err, pipeline.ErrAnalysisFailure):
		respond.Error(c, http.StatusInternalServerError, "analysis_failure",
			"the analysis engine hit an unexpected failure", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
