package app

import (
	"course_admin_gateway/docs"
	"course_admin_gateway/internal/config"
	"course_admin_gateway/internal/middleware"
	"course_admin_gateway/internal/model"
	"course_admin_gateway/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	// Everything else requires a staff token; the token is forwarded to the
	// upstream on every call made on the request's behalf.
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Staff, model.Admin))
	{
		a.registerCatalogRoutes(api, c)
		a.registerSelectionRoutes(api, c)
		a.registerContentRoutes(api, c)
		a.registerLinkRoutes(api, c)
		a.registerSettingsRoutes(api, c)
	}

	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/audit", c.audit.List)
	}
}

func (a *App) registerCatalogRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/specializations", c.catalog.ListSpecializations)
	rg.POST("/specializations", c.catalog.CreateSpecialization)
	rg.PUT("/specializations/:id", c.catalog.UpdateSpecialization)
	rg.DELETE("/specializations/:id", c.catalog.DeleteSpecialization)
	rg.PATCH("/specializations/:id/active", c.catalog.ToggleSpecialization)

	rg.GET("/courses", c.catalog.ListCourses)
	rg.POST("/courses", c.catalog.CreateCourse)
	rg.PUT("/courses/:id", c.catalog.UpdateCourse)
	rg.DELETE("/courses/:id", c.catalog.DeleteCourse)
	rg.PATCH("/courses/:id/active", c.catalog.ToggleCourse)

	rg.GET("/instructors", c.catalog.ListInstructors)

	rg.GET("/course-levels", c.catalog.ListLevels)
	rg.POST("/course-levels", c.catalog.CreateLevel)
	rg.PUT("/course-levels/:id", c.catalog.UpdateLevel)
	rg.DELETE("/course-levels/:id", c.catalog.DeleteLevel)
	rg.PATCH("/course-levels/:id/active", c.catalog.ToggleLevel)
}

func (a *App) registerSelectionRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/selection", c.selection.Get)
	rg.DELETE("/selection", c.selection.Reset)
	rg.POST("/selection/specialization", c.selection.ChooseSpecialization)
	rg.POST("/selection/course", c.selection.ChooseCourse)
	rg.POST("/selection/instructor", c.selection.ChooseInstructor)
	rg.POST("/selection/level", c.selection.ChooseLevel)
}

func (a *App) registerContentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/selection/content", c.content.GetSelectedContent)
	rg.GET("/course-levels/:id/content", c.content.GetLevelContent)
	rg.GET("/course-levels/:id/lessons", c.content.ListLessons)
	rg.POST("/course-levels/:id/files", c.content.UploadFile)

	rg.POST("/lessons", c.content.CreateLesson)
	rg.PUT("/lessons/:id", c.content.UpdateLesson)
	rg.DELETE("/lessons/:id", c.content.DeleteLesson)
	rg.PATCH("/lessons/:id/active", c.content.ToggleLesson)

	rg.DELETE("/files/:id", c.content.DeleteFile)

	rg.POST("/quiz/questions", c.content.CreateQuizQuestion)
	rg.PUT("/quiz/questions/:id", c.content.UpdateQuizQuestion)
	rg.DELETE("/quiz/questions/:id", c.content.DeleteQuizQuestion)
}

func (a *App) registerLinkRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/links/validate", c.link.Validate)
	rg.PUT("/link-checks/:key", c.link.SetCheck)
	rg.GET("/link-checks/:key", c.link.GetCheck)
}

func (a *App) registerSettingsRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/settings", c.settings.GetAll)
	rg.GET("/settings/contact", c.settings.GetContact)
	rg.POST("/settings", c.settings.Add)
	rg.PUT("/settings", c.settings.UpdateAll)
	rg.PUT("/settings/:key", c.settings.Update)
}
