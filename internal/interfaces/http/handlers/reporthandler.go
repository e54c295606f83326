package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"iops/internal/domain/report"
	"iops/internal/interfaces/http/middleware"
	"iops/internal/shared/logger"
	"iops/internal/shared/services/markdown"
	"iops/internal/shared/utils"
)

// ReportHandler creates shareable reports and serves them publicly by short
// code. The markdown summary is rendered and sanitized once at creation, so
// the public endpoint never touches raw user input.
type ReportHandler struct {
	reportRepo report.Repository
	markdown   markdown.Service
	logger     logger.Interface
}

func NewReportHandler(reportRepo report.Repository, markdownService markdown.Service, logger logger.Interface) *ReportHandler {
	return &ReportHandler{
		reportRepo: reportRepo,
		markdown:   markdownService,
		logger:     logger,
	}
}

type CreateReportRequest struct {
	DatasetID       uint   `json:"dataset_id"`
	Title           string `json:"title" binding:"required,max=255"`
	SummaryMarkdown string `json:"summary_markdown"`
}

type reportResponse struct {
	ID          uint      `json:"id"`
	DatasetID   uint      `json:"dataset_id,omitempty"`
	Title       string    `json:"title"`
	ShortCode   string    `json:"short_code"`
	SummaryHTML string    `json:"summary_html,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (h *ReportHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	summaryHTML := ""
	if req.SummaryMarkdown != "" {
		rendered, err := h.markdown.ToHTMLSanitized(req.SummaryMarkdown)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid summary markdown")
			return
		}
		summaryHTML = rendered
	}

	r, err := report.NewReport(userID, req.DatasetID, req.Title, req.SummaryMarkdown, summaryHTML)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.reportRepo.Create(c.Request.Context(), r); err != nil {
		h.logger.Errorw("failed to create report", "error", err, "user_id", userID)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to create report")
		return
	}

	utils.CreatedResponse(c, toReportResponse(r, true))
}

func (h *ReportHandler) List(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return
	}

	reports, err := h.reportRepo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorw("failed to list reports", "error", err, "user_id", userID)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to list reports")
		return
	}

	out := make([]reportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, toReportResponse(r, false))
	}

	utils.SuccessResponse(c, http.StatusOK, "", out)
}

// GetPublic serves a report by its short code without authentication.
func (h *ReportHandler) GetPublic(c *gin.Context) {
	code := c.Param("code")

	r, err := h.reportRepo.GetByShortCode(c.Request.Context(), code)
	if err != nil {
		h.logger.Errorw("failed to get report", "error", err, "short_code", code)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to get report")
		return
	}
	if r == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "report not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toReportResponse(r, true))
}

func toReportResponse(r *report.Report, includeSummary bool) reportResponse {
	resp := reportResponse{
		ID:        r.ID(),
		DatasetID: r.DatasetID(),
		Title:     r.Title(),
		ShortCode: r.ShortCode(),
		CreatedAt: r.CreatedAt(),
	}
	if includeSummary {
		resp.SummaryHTML = r.SummaryHTML()
	}
	return resp
}
