package controller

import (
	"course_admin_gateway/internal/service"
	"course_admin_gateway/internal/util"

	"github.com/gin-gonic/gin"
)

type SelectionController struct {
	Selection *service.SelectionService
}

func NewSelectionController(selection *service.SelectionService) *SelectionController {
	return &SelectionController{Selection: selection}
}

type chooseRequest struct {
	ID string `json:"id" binding:"required"`
}

// @Summary Current drill-down selection
// @Tags Selection
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /selection [get]
func (c *SelectionController) Get(ctx *gin.Context) {
	util.Success(ctx, c.Selection.Get(sessionKey(ctx)))
}

// @Summary Reset the drill-down
// @Tags Selection
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /selection [delete]
func (c *SelectionController) Reset(ctx *gin.Context) {
	util.Success(ctx, c.Selection.ResetAll(sessionKey(ctx)))
}

// @Summary Choose a specialization
// @Tags Selection
// @Security ApiKeyAuth
// @Accept json
// @Success 200 {object} util.Response
// @Router /selection/specialization [post]
func (c *SelectionController) ChooseSpecialization(ctx *gin.Context) {
	var req chooseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	sel, err := c.Selection.ChooseSpecialization(ctx.Request.Context(), sessionKey(ctx), req.ID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, sel)
}

// @Summary Choose a course
// @Tags Selection
// @Security ApiKeyAuth
// @Accept json
// @Success 200 {object} util.Response
// @Router /selection/course [post]
func (c *SelectionController) ChooseCourse(ctx *gin.Context) {
	var req chooseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	sel, err := c.Selection.ChooseCourse(ctx.Request.Context(), sessionKey(ctx), req.ID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, sel)
}

// @Summary Choose an instructor
// @Tags Selection
// @Security ApiKeyAuth
// @Accept json
// @Success 200 {object} util.Response
// @Router /selection/instructor [post]
func (c *SelectionController) ChooseInstructor(ctx *gin.Context) {
	var req chooseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	sel, err := c.Selection.ChooseInstructor(ctx.Request.Context(), sessionKey(ctx), req.ID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, sel)
}

// @Summary Choose a course level
// @Tags Selection
// @Security ApiKeyAuth
// @Accept json
// @Success 200 {object} util.Response
// @Router /selection/level [post]
func (c *SelectionController) ChooseLevel(ctx *gin.Context) {
	var req chooseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	sel, err := c.Selection.ChooseLevel(sessionKey(ctx), req.ID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, sel)
}
