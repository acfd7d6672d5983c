package controller

import (
	"mime/multipart"
	"strconv"
	"strings"

	"course_admin_gateway/internal/service"
	"course_admin_gateway/internal/upstream"
	"course_admin_gateway/internal/util"
	"course_admin_gateway/internal/view"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	Catalog *service.CatalogService
}

func NewCatalogController(catalog *service.CatalogService) *CatalogController {
	return &CatalogController{Catalog: catalog}
}

// filePartFromForm pulls the optional image out of a multipart request.
func filePartFromForm(ctx *gin.Context, field string) (*upstream.FilePart, *multipart.FileHeader, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		return nil, nil, nil // no file attached
	}
	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return &upstream.FilePart{
		Field:       field,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      file,
	}, header, nil
}

func isMultipart(ctx *gin.Context) bool {
	return strings.HasPrefix(ctx.GetHeader("Content-Type"), "multipart/form-data")
}

// @Summary List specializations
// @Tags Catalog
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} util.Response
// @Router /specializations [get]
func (c *CatalogController) ListSpecializations(ctx *gin.Context) {
	items, err := c.Catalog.Specializations(ctx.Request.Context())
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	params := view.ParamsFromQuery(ctx.Request.URL.Query(), "isActive")
	util.Success(ctx, view.Apply(items, params))
}

func (c *CatalogController) specializationRequest(ctx *gin.Context) (service.SpecializationRequest, *upstream.FilePart, error) {
	var req service.SpecializationRequest
	if !isMultipart(ctx) {
		err := ctx.ShouldBindJSON(&req)
		return req, nil, err
	}
	req.Name = ctx.PostForm("name")
	req.IsActive = ctx.PostForm("isActive") == "true"
	part, _, err := filePartFromForm(ctx, "image")
	return req, part, err
}

// @Summary Create specialization
// @Tags Catalog
// @Security ApiKeyAuth
// @Accept json,mpfd
// @Produce json
// @Success 201 {object} util.Response
// @Router /specializations [post]
func (c *CatalogController) CreateSpecialization(ctx *gin.Context) {
	req, image, err := c.specializationRequest(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	created, err := c.Catalog.CreateSpecialization(ctx.Request.Context(), actorName(ctx), req, image)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, created)
}

// @Summary Update specialization
// @Tags Catalog
// @Security ApiKeyAuth
// @Produce json
// @Param id path string true "specialization id"
// @Success 200 {object} util.Response
// @Router /specializations/{id} [put]
func (c *CatalogController) UpdateSpecialization(ctx *gin.Context) {
	req, image, err := c.specializationRequest(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Catalog.UpdateSpecialization(ctx.Request.Context(), actorName(ctx), ctx.Param("id"), req, image); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Delete specialization
// @Tags Catalog
// @Security ApiKeyAuth
// @Param id path string true "specialization id"
// @Success 200 {object} util.Response
// @Router /specializations/{id} [delete]
func (c *CatalogController) DeleteSpecialization(ctx *gin.Context) {
	if err := c.Catalog.DeleteSpecialization(ctx.Request.Context(), actorName(ctx), ctx.Param("id")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type toggleRequest struct {
	IsActive bool `json:"isActive"`
}

// @Summary Toggle specialization active flag
// @Tags Catalog
// @Security ApiKeyAuth
// @Param id path string true "specialization id"
// @Success 200 {object} util.Response
// @Router /specializations/{id}/active [patch]
func (c *CatalogController) ToggleSpecialization(ctx *gin.Context) {
	var req toggleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Catalog.SetSpecializationActive(ctx.Request.Context(), actorName(ctx), ctx.Param("id"), req.IsActive); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary List courses of a specialization
// @Tags Catalog
// @Security ApiKeyAuth
// @Produce json
// @Param specializationId query string false "specialization id"
// @Success 200 {object} util.Response
// @Router /courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	items, err := c.Catalog.Courses(ctx.Request.Context(), ctx.Query("specializationId"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	params := view.ParamsFromQuery(ctx.Request.URL.Query(), "isActive", "specializationId")
	util.Success(ctx, view.Apply(items, params))
}

func (c *CatalogController) courseRequest(ctx *gin.Context) (service.CourseRequest, *upstream.FilePart, error) {
	var req service.CourseRequest
	if !isMultipart(ctx) {
		err := ctx.ShouldBindJSON(&req)
		return req, nil, err
	}
	req.Title = ctx.PostForm("title")
	req.Description = ctx.PostForm("description")
	req.SpecializationID = ctx.PostForm("specializationId")
	req.IsActive = ctx.PostForm("isActive") == "true"
	part, _, err := filePartFromForm(ctx, "image")
	return req, part, err
}

// @Summary Create course
// @Tags Catalog
// @Security ApiKeyAuth
// @Accept json,mpfd
// @Success 201 {object} util.Response
// @Router /courses [post]
func (c *CatalogController) CreateCourse(ctx *gin.Context) {
	req, image, err := c.courseRequest(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	created, err := c.Catalog.CreateCourse(ctx.Request.Context(), actorName(ctx), req, image)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, created)
}

// @Summary Update course
// @Tags Catalog
// @Security ApiKeyAuth
// @Param id path string true "course id"
// @Success 200 {object} util.Response
// @Router /courses/{id} [put]
func (c *CatalogController) UpdateCourse(ctx *gin.Context) {
	req, image, err := c.courseRequest(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Catalog.UpdateCourse(ctx.Request.Context(), actorName(ctx), ctx.Param("id"), req, image); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Delete course
// @Tags Catalog
// @Security ApiKeyAuth
// @Param id path string true "course id"
// @Success 200 {object} util.Response
// @Router /courses/{id} [delete]
func (c *CatalogController) DeleteCourse(ctx *gin.Context) {
	if err := c.Catalog.DeleteCourse(ctx.Request.Context(), actorName(ctx), ctx.Param("id"), ctx.Query("specializationId")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Toggle course active flag
// @Tags Catalog
// @Security ApiKeyAuth
// @Param id path string true "course id"
// @Success 200 {object} util.Response
// @Router /courses/{id}/active [patch]
func (c *CatalogController) ToggleCourse(ctx *gin.Context) {
	var req toggleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Catalog.SetCourseActive(ctx.Request.Context(), actorName(ctx), ctx.Param("id"), ctx.Query("specializationId"), req.IsActive); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary List instructors of a course
// @Tags Catalog
// @Security ApiKeyAuth
// @Param courseId query string false "course id"
// @Success 200 {object} util.Response
// @Router /instructors [get]
func (c *CatalogController) ListInstructors(ctx *gin.Context) {
	items, err := c.Catalog.Instructors(ctx.Request.Context(), ctx.Query("courseId"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	params := view.ParamsFromQuery(ctx.Request.URL.Query())
	util.Success(ctx, view.Apply(items, params))
}

// @Summary List levels of a course
// @Tags Catalog
// @Security ApiKeyAuth
// @Param courseId query string false "course id"
// @Success 200 {object} util.Response
// @Router /course-levels [get]
func (c *CatalogController) ListLevels(ctx *gin.Context) {
	items, err := c.Catalog.Levels(ctx.Request.Context(), ctx.Query("courseId"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	params := view.ParamsFromQuery(ctx.Request.URL.Query(), "isActive", "isFree", "instructorId")
	util.Success(ctx, view.Apply(items, params))
}

func (c *CatalogController) levelRequest(ctx *gin.Context) (service.LevelRequest, *upstream.FilePart, error) {
	var req service.LevelRequest
	if !isMultipart(ctx) {
		err := ctx.ShouldBindJSON(&req)
		return req, nil, err
	}
	req.Name = ctx.PostForm("name")
	req.Order, _ = strconv.Atoi(ctx.PostForm("order"))
	req.PriceUSD, _ = strconv.ParseFloat(ctx.PostForm("priceUSD"), 64)
	req.PriceSAR, _ = strconv.ParseFloat(ctx.PostForm("priceSAR"), 64)
	req.IsFree = ctx.PostForm("isFree") == "true"
	req.PreviewURL = ctx.PostForm("previewUrl")
	req.DownloadURL = ctx.PostForm("downloadUrl")
	req.InstructorID = ctx.PostForm("instructorId")
	req.CourseID = ctx.PostForm("courseId")
	req.IsActive = ctx.PostForm("isActive") == "true"
	part, _, err := filePartFromForm(ctx, "image")
	return req, part, err
}

// @Summary Create course level
// @Tags Catalog
// @Security ApiKeyAuth
// @Accept json,mpfd
// @Success 201 {object} util.Response
// @Router /course-levels [post]
func (c *CatalogController) CreateLevel(ctx *gin.Context) {
	req, image, err := c.levelRequest(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	created, err := c.Catalog.CreateLevel(ctx.Request.Context(), actorName(ctx), req, image)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Created(ctx, created)
}

// @Summary Update course level
// @Tags Catalog
// @Security ApiKeyAuth
// @Param id path string true "level id"
// @Success 200 {object} util.Response
// @Router /course-levels/{id} [put]
func (c *CatalogController) UpdateLevel(ctx *gin.Context) {
	req, image, err := c.levelRequest(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Catalog.UpdateLevel(ctx.Request.Context(), actorName(ctx), ctx.Param("id"), req, image); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Delete course level
// @Tags Catalog
// @Security ApiKeyAuth
// @Param id path string true "level id"
// @Success 200 {object} util.Response
// @Router /course-levels/{id} [delete]
func (c *CatalogController) DeleteLevel(ctx *gin.Context) {
	if err := c.Catalog.DeleteLevel(ctx.Request.Context(), actorName(ctx), ctx.Param("id"), ctx.Query("courseId")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Toggle course level active flag
// @Tags Catalog
// @Security ApiKeyAuth
// @Param id path string true "level id"
// @Success 200 {object} util.Response
// @Router /course-levels/{id}/active [patch]
func (c *CatalogController) ToggleLevel(ctx *gin.Context) {
	var req toggleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Catalog.SetLevelActive(ctx.Request.Context(), actorName(ctx), ctx.Param("id"), ctx.Query("courseId"), req.IsActive); err != nil {
		respondServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
