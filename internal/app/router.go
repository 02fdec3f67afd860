package app

import (
	"notedu_backend/docs"
	"notedu_backend/internal/config"
	"notedu_backend/internal/middleware"
	"notedu_backend/internal/model"
	"notedu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

// registerStudentRoutes 学生与通用接口
func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.Profile)
	rg.PUT("/profile", c.auth.UpdateProfile)

	// 班级
	rg.GET("/classes", c.class.List)
	rg.GET("/classes/:id", c.class.Get)
	rg.POST("/classes/join", c.class.Join)

	// Quiz作答
	rg.GET("/classes/:id/quizzes", c.quiz.ListForClass)
	rg.GET("/quizzes/:id", c.quiz.Get)
	rg.POST("/quizzes/:id/submit", c.quiz.Submit)
	rg.GET("/attempts/:id", c.report.AttemptDetail)
	rg.GET("/my/attempts", c.report.MyAttempts)

	// 课程笔记与AI辅助
	rg.POST("/documents", c.document.Upload)
	rg.GET("/documents", c.document.List)
	rg.GET("/documents/sources", c.document.Sources)
	rg.POST("/documents/:id/ingest", c.document.IngestText)
	rg.DELETE("/documents/:id", c.document.Delete)
	rg.POST("/qa/ask", c.qa.Ask)
	rg.POST("/summaries", c.summary.Generate)
	rg.GET("/summaries", c.summary.List)
	rg.GET("/summaries/:id", c.summary.Get)
	rg.DELETE("/summaries/:id", c.summary.Delete)
}

// registerTeacherRoutes 教师接口，统一套角色校验
func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/classes", c.class.Create)
		teacher.GET("/classes/:id/members", c.class.Members)
		teacher.DELETE("/classes/:id", c.class.Delete)

		teacher.POST("/quizzes", c.quiz.Create)
		teacher.PUT("/quizzes/:id/publish", c.quiz.Publish)
		teacher.DELETE("/quizzes/:id", c.quiz.Delete)
		teacher.POST("/quizzes/generate", c.quiz.Generate)

		teacher.GET("/classes/:id/attempts", c.report.Attempts)
		teacher.GET("/classes/:id/attempts/export", c.report.ExportCSV)
		teacher.GET("/classes/:id/students", c.report.Students)
		teacher.GET("/classes/:id/mastery", c.report.Mastery)
		teacher.GET("/classes/:id/weak-topics", c.report.WeakTopics)
	}
}
