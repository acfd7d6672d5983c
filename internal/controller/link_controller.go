package controller

import (
	"course_admin_gateway/internal/service"
	"course_admin_gateway/internal/util"

	"github.com/gin-gonic/gin"
)

type LinkController struct {
	Link    *service.LinkService
	Tracker *service.LinkTracker
}

func NewLinkController(link *service.LinkService) *LinkController {
	return &LinkController{Link: link, Tracker: service.NewLinkTracker(link)}
}

type linkRequest struct {
	URL string `json:"url"`
}

// @Summary Validate a YouTube link synchronously
// @Tags Links
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Success 200 {object} util.Response
// @Router /links/validate [post]
func (c *LinkController) Validate(ctx *gin.Context) {
	var req linkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, c.Link.Validate(ctx.Request.Context(), req.URL))
}

// linkCheckKey scopes a validation cycle to one form field of one session.
func (c *LinkController) linkCheckKey(ctx *gin.Context) string {
	return sessionKey(ctx) + ":" + ctx.Param("key")
}

// @Summary Start or update a validation cycle for a form field
// @Description Returns immediately; while the existence probe runs the
// @Description verdict carries checking=true with the previous resolution
// @Description intact. An empty url resets the cycle.
// @Tags Links
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param key path string true "form field key"
// @Success 200 {object} util.Response
// @Router /link-checks/{key} [put]
func (c *LinkController) SetCheck(ctx *gin.Context) {
	var req linkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, c.Tracker.Set(c.linkCheckKey(ctx), req.URL))
}

// @Summary Current verdict of a validation cycle
// @Tags Links
// @Security ApiKeyAuth
// @Produce json
// @Param key path string true "form field key"
// @Success 200 {object} util.Response
// @Router /link-checks/{key} [get]
func (c *LinkController) GetCheck(ctx *gin.Context) {
	util.Success(ctx, c.Tracker.Get(c.linkCheckKey(ctx)))
}
