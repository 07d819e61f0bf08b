package controller

import (
	"bizcanvas_backend/internal/model"
	"bizcanvas_backend/internal/service"
	"bizcanvas_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService    *service.ReportService
	AnalyticsService *service.AnalyticsService
	InsightService   *service.InsightService
	AssessmentSvc    *service.AssessmentService
}

func NewReportController(
	reportService *service.ReportService,
	analyticsService *service.AnalyticsService,
	insightService *service.InsightService,
	assessmentSvc *service.AssessmentService,
) *ReportController {
	return &ReportController{
		ReportService:    reportService,
		AnalyticsService: analyticsService,
		InsightService:   insightService,
		AssessmentSvc:    assessmentSvc,
	}
}

// ListReports godoc
// @Summary List assessments with a viewable report
// @Description Returns the caller's completed assessments
// @Tags reports
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Assessment} "Success"
// @Router /api/reports [get]
func (c *ReportController) ListReports(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	assessments, err := c.AssessmentSvc.List(claims.UserID, model.StatusCompleted)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assessments)
}

// GetReport godoc
// @Summary Get the composed report for a completed assessment
// @Description Returns grouped answers, category averages and AI insights. First view triggers insight generation.
// @Tags reports
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Assessment ID"
// @Success 200 {object} util.Response{data=service.Report} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Failure 409 {object} util.Response "Assessment not completed"
// @Router /api/reports/{id} [get]
func (c *ReportController) GetReport(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id := ctx.Param("id")

	report, err := c.ReportService.Compose(ctx.Request.Context(), claims.UserID, id)
	if err != nil {
		respondReportError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// GetAnalytics godoc
// @Summary Get per-category rating averages
// @Tags reports
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Assessment ID"
// @Success 200 {object} util.Response{data=[]service.CategoryAverage} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/reports/{id}/analytics [get]
func (c *ReportController) GetAnalytics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id := ctx.Param("id")

	assessment, err := c.AssessmentSvc.Get(claims.UserID, id)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	analytics, err := c.AnalyticsService.ForAssessment(ctx.Request.Context(), assessment)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, analytics)
}

// GetInsights godoc
// @Summary Get AI insights for a completed assessment
// @Description Returns the insight set, lazily starting generation when none exists. Poll while status is generating.
// @Tags reports
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Assessment ID"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Failure 409 {object} util.Response "Assessment not completed"
// @Router /api/reports/{id}/insights [get]
func (c *ReportController) GetInsights(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id := ctx.Param("id")

	status, insights, err := c.InsightService.GetOrGenerate(ctx.Request.Context(), claims.UserID, id)
	if err != nil {
		respondReportError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"status":   status,
		"insights": insights,
	})
}

// RegenerateInsights godoc
// @Summary Regenerate AI insights
// @Description Discards the stored insight set and re-runs the analysis in the background
// @Tags reports
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Assessment ID"
// @Success 202 {object} util.Response "Accepted"
// @Failure 404 {object} util.Response "Not found"
// @Failure 409 {object} util.Response "Generation already in progress"
// @Router /api/reports/{id}/insights/regenerate [post]
func (c *ReportController) RegenerateInsights(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id := ctx.Param("id")

	if err := c.InsightService.Regenerate(ctx.Request.Context(), claims.UserID, id); err != nil {
		if errors.Is(err, util.ErrGenerationInFlight) {
			util.Conflict(ctx, "insight generation already in progress")
		} else {
			respondReportError(ctx, err)
		}
		return
	}
	util.Accepted(ctx)
}

// ExportReport godoc
// @Summary Export the report as a JSON document
// @Description Snapshots the composed report into object storage and records the export
// @Tags reports
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Assessment ID"
// @Success 201 {object} util.Response{data=model.ReportExport} "Created"
// @Failure 404 {object} util.Response "Not found"
// @Failure 409 {object} util.Response "Assessment not completed"
// @Router /api/reports/{id}/export [post]
func (c *ReportController) ExportReport(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id := ctx.Param("id")

	export, err := c.ReportService.Export(ctx.Request.Context(), claims.UserID, id)
	if err != nil {
		respondReportError(ctx, err)
		return
	}
	util.Created(ctx, export)
}

// ListExports godoc
// @Summary List past report exports
// @Tags reports
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Assessment ID"
// @Success 200 {object} util.Response{data=[]model.ReportExport} "Success"
// @Router /api/reports/{id}/exports [get]
func (c *ReportController) ListExports(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id := ctx.Param("id")

	exports, err := c.ReportService.ListExports(id, claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, exports)
}

func respondReportError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrAssessmentNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrAssessmentNotComplete):
		util.Conflict(ctx, "assessment not completed")
	default:
		util.LogInternalError(ctx, err)
	}
}
