package controller

import (
	"course_admin_gateway/internal/service"
	"course_admin_gateway/internal/util"
	"course_admin_gateway/internal/view"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	Settings *service.SettingsService
}

func NewSettingsController(settings *service.SettingsService) *SettingsController {
	return &SettingsController{Settings: settings}
}

// @Summary All settings, filtered and paged
// @Tags Settings
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /settings [get]
func (c *SettingsController) GetAll(ctx *gin.Context) {
	settings, err := c.Settings.All(ctx.Request.Context())
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	params := view.ParamsFromQuery(ctx.Request.URL.Query())
	util.Success(ctx, view.Apply(settings, params))
}

// @Summary Contact settings (whatsapp, telegram)
// @Tags Settings
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /settings/contact [get]
func (c *SettingsController) GetContact(ctx *gin.Context) {
	contact, err := c.Settings.Contact(ctx.Request.Context())
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, contact)
}

type settingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// @Summary Add a setting
// @Tags Settings
// @Security ApiKeyAuth
// @Accept json
// @Success 201 {object} util.Response
// @Router /settings [post]
func (c *SettingsController) Add(ctx *gin.Context) {
	var req settingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	created, err := c.Settings.Add(ctx.Request.Context(), actorName(ctx), req.Key, req.Value)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, created)
}

type settingValueRequest struct {
	Value string `json:"value"`
}

// @Summary Update one setting
// @Tags Settings
// @Security ApiKeyAuth
// @Accept json
// @Param key path string true "setting key"
// @Success 200 {object} util.Response
// @Router /settings/{key} [put]
func (c *SettingsController) Update(ctx *gin.Context) {
	var req settingValueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Settings.Update(ctx.Request.Context(), actorName(ctx), ctx.Param("key"), req.Value); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type settingsBulkRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}

// @Summary Update many settings at once
// @Tags Settings
// @Security ApiKeyAuth
// @Accept json
// @Success 200 {object} util.Response
// @Router /settings [put]
func (c *SettingsController) UpdateAll(ctx *gin.Context) {
	var req settingsBulkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Settings.UpdateAll(ctx.Request.Context(), actorName(ctx), req.Settings); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
