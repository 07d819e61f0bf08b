package controller

import (
	"bizcanvas_backend/internal/model"
	"bizcanvas_backend/internal/service"
	"bizcanvas_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
	AnswerService     *service.AnswerService
}

func NewAssessmentController(
	assessmentService *service.AssessmentService,
	answerService *service.AnswerService,
) *AssessmentController {
	return &AssessmentController{
		AssessmentService: assessmentService,
		AnswerService:     answerService,
	}
}

// Create godoc
// @Summary Start a new assessment
// @Description Creates a draft assessment for the current user
// @Tags assessments
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateAssessmentRequest false "Assessment details"
// @Success 201 {object} util.Response{data=model.Assessment} "Created"
// @Router /api/assessments [post]
func (c *AssessmentController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.CreateAssessmentRequest
	// A body is optional; an empty one falls back to the default title.
	_ = ctx.ShouldBindJSON(&req)

	assessment, err := c.AssessmentService.Create(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, assessment)
}

// List godoc
// @Summary List the current user's assessments
// @Tags assessments
// @Produce  json
// @Security ApiKeyAuth
// @Param   status query string false "Filter by status (draft or completed)"
// @Success 200 {object} util.Response{data=[]model.Assessment} "Success"
// @Router /api/assessments [get]
func (c *AssessmentController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	status := model.AssessmentStatus(ctx.Query("status"))

	assessments, err := c.AssessmentService.List(claims.UserID, status)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assessments)
}

// Get godoc
// @Summary Get an assessment with its answers
// @Tags assessments
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Assessment ID"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id := ctx.Param("id")

	assessment, err := c.AssessmentService.Get(claims.UserID, id)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	answers, err := c.AnswerService.ListByAssessment(claims.UserID, id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"assessment": assessment,
		"answers":    answers,
	})
}

// SaveAnswer godoc
// @Summary Save an answer immediately
// @Description Upserts the answer for a question; repeated saves overwrite in place
// @Tags assessments
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Assessment ID"
// @Param   questionId path int true "Question ID"
// @Param   body body service.AnswerRequest true "Answer"
// @Success 200 {object} util.Response{data=model.Answer} "Success"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 404 {object} util.Response "Not found"
// @Failure 409 {object} util.Response "Assessment already completed"
// @Router /api/assessments/{id}/answers/{questionId} [put]
func (c *AssessmentController) SaveAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id := ctx.Param("id")

	questionID, err := strconv.ParseUint(ctx.Param("questionId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	var req service.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.AnswerService.Save(claims.UserID, id, uint(questionID), req)
	if err != nil {
		respondAnswerError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// StageAnswer godoc
// @Summary Stage an answer for debounced autosave
// @Description Buffers the answer; the write commits after the debounce window or on completion
// @Tags assessments
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Assessment ID"
// @Param   questionId path int true "Question ID"
// @Param   body body service.AnswerRequest true "Answer"
// @Success 202 {object} util.Response "Accepted"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 404 {object} util.Response "Not found"
// @Failure 409 {object} util.Response "Assessment already completed"
// @Router /api/assessments/{id}/answers/{questionId}/draft [post]
func (c *AssessmentController) StageAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id := ctx.Param("id")

	questionID, err := strconv.ParseUint(ctx.Param("questionId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	var req service.AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AnswerService.Stage(claims.UserID, id, uint(questionID), req); err != nil {
		respondAnswerError(ctx, err)
		return
	}
	util.Accepted(ctx)
}

// Complete godoc
// @Summary Complete an assessment
// @Description Flushes buffered answers and marks the assessment completed; idempotent
// @Tags assessments
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Assessment ID"
// @Success 200 {object} util.Response{data=model.Assessment} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/assessments/{id}/complete [post]
func (c *AssessmentController) Complete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id := ctx.Param("id")

	assessment, err := c.AssessmentService.Complete(claims.UserID, id)
	if err != nil {
		if errors.Is(err, util.ErrAssessmentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, assessment)
}

func respondAnswerError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrAssessmentNotFound), errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrAssessmentCompleted):
		util.Conflict(ctx, "assessment already completed")
	default:
		util.LogInternalError(ctx, err)
	}
}
