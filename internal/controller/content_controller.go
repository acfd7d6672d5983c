package controller

import (
	"net/http"

	"course_admin_gateway/internal/service"
	"course_admin_gateway/internal/util"
	"course_admin_gateway/internal/view"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	Content   *service.ContentService
	Selection *service.SelectionService
}

func NewContentController(content *service.ContentService, selection *service.SelectionService) *ContentController {
	return &ContentController{Content: content, Selection: selection}
}

// @Summary Content bundle for the session's selected level
// @Description Loads lessons, files and quiz questions concurrently. If the
// @Description selection changes while the load is in flight the result is
// @Description discarded and 409 returned.
// @Tags Content
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /selection/content [get]
func (c *ContentController) GetSelectedContent(ctx *gin.Context) {
	key := sessionKey(ctx)
	sel := c.Selection.Get(key)
	if sel.State < service.StateLevelChosen || sel.LevelID == "" {
		util.BadRequest(ctx, util.ErrNoLevelSelected.Error())
		return
	}

	bundle := c.Content.LoadBundle(ctx.Request.Context(), sel.LevelID)

	// The load was tagged with the selection it was issued for; a flip to
	// another level while it ran makes this result stale.
	if !c.Selection.Current(key, sel.Seq) {
		util.Error(ctx, http.StatusConflict, util.ErrSelectionSuperseded.Error())
		return
	}
	util.Success(ctx, bundle)
}

// @Summary Content bundle for an explicit level
// @Tags Content
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "level id"
// @Success 200 {object} util.Response
// @Router /course-levels/{id}/content [get]
func (c *ContentController) GetLevelContent(ctx *gin.Context) {
	bundle := c.Content.LoadBundle(ctx.Request.Context(), ctx.Param("id"))
	util.Success(ctx, bundle)
}

// @Summary Lessons of a level, filtered and paged
// @Tags Content
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "level id"
// @Success 200 {object} util.Response
// @Router /course-levels/{id}/lessons [get]
func (c *ContentController) ListLessons(ctx *gin.Context) {
	lessons, err := c.Content.Upstream.ListLessons(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	params := view.ParamsFromQuery(ctx.Request.URL.Query(), "isActive", "isFreePreview")
	util.Success(ctx, view.Apply(lessons, params))
}

// @Summary Create lesson
// @Tags Content
// @Security ApiKeyAuth
// @Accept json
// @Success 201 {object} util.Response
// @Router /lessons [post]
func (c *ContentController) CreateLesson(ctx *gin.Context) {
	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	created, err := c.Content.CreateLesson(ctx.Request.Context(), actorName(ctx), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, created)
}

// @Summary Update lesson
// @Tags Content
// @Security ApiKeyAuth
// @Param id path string true "lesson id"
// @Success 200 {object} util.Response
// @Router /lessons/{id} [put]
func (c *ContentController) UpdateLesson(ctx *gin.Context) {
	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Content.UpdateLesson(ctx.Request.Context(), actorName(ctx), ctx.Param("id"), req); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Delete lesson
// @Tags Content
// @Security ApiKeyAuth
// @Param id path string true "lesson id"
// @Success 200 {object} util.Response
// @Router /lessons/{id} [delete]
func (c *ContentController) DeleteLesson(ctx *gin.Context) {
	if err := c.Content.DeleteLesson(ctx.Request.Context(), actorName(ctx), ctx.Param("id")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Toggle lesson active flag
// @Tags Content
// @Security ApiKeyAuth
// @Param id path string true "lesson id"
// @Success 200 {object} util.Response
// @Router /lessons/{id}/active [patch]
func (c *ContentController) ToggleLesson(ctx *gin.Context) {
	var req toggleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Content.SetLessonActive(ctx.Request.Context(), actorName(ctx), ctx.Param("id"), req.IsActive); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Upload a file attachment to a level
// @Tags Content
// @Security ApiKeyAuth
// @Accept mpfd
// @Param id path string true "level id"
// @Success 201 {object} util.Response
// @Router /course-levels/{id}/files [post]
func (c *ContentController) UploadFile(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	file, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	uploaded, err := c.Content.UploadFile(
		ctx.Request.Context(),
		actorName(ctx),
		ctx.Param("id"),
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, uploaded)
}

// @Summary Delete file attachment
// @Tags Content
// @Security ApiKeyAuth
// @Param id path string true "file id"
// @Success 200 {object} util.Response
// @Router /files/{id} [delete]
func (c *ContentController) DeleteFile(ctx *gin.Context) {
	if err := c.Content.DeleteFile(ctx.Request.Context(), actorName(ctx), ctx.Param("id")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Create quiz question
// @Tags Content
// @Security ApiKeyAuth
// @Accept json
// @Success 201 {object} util.Response
// @Router /quiz/questions [post]
func (c *ContentController) CreateQuizQuestion(ctx *gin.Context) {
	var req service.QuizQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	created, err := c.Content.CreateQuizQuestion(ctx.Request.Context(), actorName(ctx), req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, created)
}

// @Summary Update quiz question
// @Tags Content
// @Security ApiKeyAuth
// @Param id path string true "question id"
// @Success 200 {object} util.Response
// @Router /quiz/questions/{id} [put]
func (c *ContentController) UpdateQuizQuestion(ctx *gin.Context) {
	var req service.QuizQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Content.UpdateQuizQuestion(ctx.Request.Context(), actorName(ctx), ctx.Param("id"), req); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Delete quiz question
// @Tags Content
// @Security ApiKeyAuth
// @Param id path string true "question id"
// @Success 200 {object} util.Response
// @Router /quiz/questions/{id} [delete]
func (c *ContentController) DeleteQuizQuestion(ctx *gin.Context) {
	if err := c.Content.DeleteQuizQuestion(ctx.Request.Context(), actorName(ctx), ctx.Param("id")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
