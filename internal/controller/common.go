package controller

import (
	"errors"
	"fmt"
	"net/http"

	"course_admin_gateway/internal/upstream"
	"course_admin_gateway/internal/util"

	"github.com/gin-gonic/gin"
)

// sessionKey scopes selection state. One staff user can run several dashboard
// tabs, each sending its own X-Session-Key; without the header the user id is
// the session.
func sessionKey(ctx *gin.Context) string {
	if key := ctx.GetHeader("X-Session-Key"); key != "" {
		return key
	}
	if user := util.GetUserFromContext(ctx); user != nil {
		return fmt.Sprintf("user:%d", user.UserID)
	}
	return ctx.ClientIP()
}

func actorName(ctx *gin.Context) string {
	if user := util.GetUserFromContext(ctx); user != nil {
		if user.Email != "" {
			return user.Email
		}
		return fmt.Sprintf("user:%d", user.UserID)
	}
	return "unknown"
}

var validationErrors = []error{
	util.ErrNameRequired,
	util.ErrTitleRequired,
	util.ErrKeyRequired,
	util.ErrTooFewOptions,
	util.ErrNoCorrectOption,
	util.ErrPreviewURLRequired,
	util.ErrSelectionOrder,
	util.ErrSelectionMismatch,
	util.ErrNoLevelSelected,
}

// respondServiceError maps service failures onto the envelope: validation
// errors are the caller's fault, superseded selections are a conflict, and an
// upstream failure surfaces the upstream's own message when it has one.
func respondServiceError(ctx *gin.Context, err error) {
	for _, verr := range validationErrors {
		if errors.Is(err, verr) {
			util.BadRequest(ctx, err.Error())
			return
		}
	}
	if errors.Is(err, util.ErrSelectionSuperseded) {
		util.Error(ctx, http.StatusConflict, err.Error())
		return
	}
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		util.Error(ctx, http.StatusBadGateway, apiErr.Error())
		return
	}
	util.LogInternalError(ctx, err)
}
