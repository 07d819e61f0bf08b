package controller

import (
	"bizcanvas_backend/internal/service"
	"bizcanvas_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ReferenceController serves the question bank. Listing endpoints are public
// so the assessment form can render before login; mutations sit behind the
// admin role.
type ReferenceController struct {
	ReferenceService *service.ReferenceService
}

func NewReferenceController(referenceService *service.ReferenceService) *ReferenceController {
	return &ReferenceController{ReferenceService: referenceService}
}

// ListCategories godoc
// @Summary List assessment categories
// @Tags reference
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Category} "Success"
// @Router /api/categories [get]
func (c *ReferenceController) ListCategories(ctx *gin.Context) {
	cats, err := c.ReferenceService.ListCategories()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, cats)
}

// ListQuestions godoc
// @Summary List active assessment questions
// @Tags reference
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Question} "Success"
// @Router /api/questions [get]
func (c *ReferenceController) ListQuestions(ctx *gin.Context) {
	questions, err := c.ReferenceService.ListQuestions()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// ListPreambles godoc
// @Summary List category preambles
// @Tags reference
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.Preamble} "Success"
// @Router /api/preambles [get]
func (c *ReferenceController) ListPreambles(ctx *gin.Context) {
	preambles, err := c.ReferenceService.ListPreambles()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, preambles)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CategoryRequest true "Category"
// @Success 201 {object} util.Response{data=model.Category} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/admin/categories [post]
func (c *ReferenceController) CreateCategory(ctx *gin.Context) {
	var req service.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cat, err := c.ReferenceService.CreateCategory(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, cat)
}

// UpdateCategory godoc
// @Summary Update a category
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Category ID"
// @Param   body body service.CategoryRequest true "Category"
// @Success 200 {object} util.Response{data=model.Category} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/categories/{id} [put]
func (c *ReferenceController) UpdateCategory(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid category id")
		return
	}

	var req service.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cat, err := c.ReferenceService.UpdateCategory(uint(id), req)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, cat)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Category ID"
// @Success 200 {object} util.Response "Success"
// @Router /api/admin/categories/{id} [delete]
func (c *ReferenceController) DeleteCategory(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid category id")
		return
	}

	if err := c.ReferenceService.DeleteCategory(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateQuestion godoc
// @Summary Create a question
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.QuestionRequest true "Question"
// @Success 201 {object} util.Response{data=model.Question} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/admin/questions [post]
func (c *ReferenceController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.ReferenceService.CreateQuestion(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Question ID"
// @Param   body body service.QuestionRequest true "Question"
// @Success 200 {object} util.Response{data=model.Question} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/questions/{id} [put]
func (c *ReferenceController) UpdateQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.ReferenceService.UpdateQuestion(uint(id), req)
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, q)
}

// DeleteQuestion godoc
// @Summary Delete a question
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Question ID"
// @Success 200 {object} util.Response "Success"
// @Router /api/admin/questions/{id} [delete]
func (c *ReferenceController) DeleteQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	if err := c.ReferenceService.DeleteQuestion(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreatePreamble godoc
// @Summary Create a category preamble
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.PreambleRequest true "Preamble"
// @Success 201 {object} util.Response{data=model.Preamble} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/admin/preambles [post]
func (c *ReferenceController) CreatePreamble(ctx *gin.Context) {
	var req service.PreambleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p, err := c.ReferenceService.CreatePreamble(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, p)
}
