package controller

import (
	"course_admin_gateway/internal/service"
	"course_admin_gateway/internal/util"
	"course_admin_gateway/internal/view"

	"github.com/gin-gonic/gin"
)

type AuditController struct {
	Audit *service.AuditService
}

func NewAuditController(audit *service.AuditService) *AuditController {
	return &AuditController{Audit: audit}
}

// @Summary Recent admin actions, filtered and paged
// @Tags Audit
// @Security ApiKeyAuth
// @Produce json
// @Param search query string false "substring match on actor, entity and detail"
// @Param action query string false "filter by action"
// @Param entityType query string false "filter by entity kind"
// @Param actor query string false "filter by actor"
// @Success 200 {object} util.Response
// @Router /audit [get]
func (c *AuditController) List(ctx *gin.Context) {
	params := view.ParamsFromQuery(ctx.Request.URL.Query(), "action", "entityType", "actor")
	result, err := c.Audit.List(params)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
