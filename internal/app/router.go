package app

import (
	"medquiz_backend/docs"
	"medquiz_backend/internal/config"
	"medquiz_backend/internal/middleware"
	"medquiz_backend/internal/model"
	"medquiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	router.Use(middleware.RequestID())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 2. 排行榜：游客可查，登录用户附带自己的名次
	router.POST("/api/quiz/rankings", middleware.TryAuthMiddleware(cfg), c.ranking.Rankings)

	// 3. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		// 刷题引擎
		authGroup.POST("/quiz/start", c.quiz.Start)
		authGroup.POST("/quiz/submit", c.quiz.Submit)
		authGroup.POST("/quiz/reset", c.quiz.Reset)
		authGroup.GET("/quiz/history", c.quiz.History)

		// 课程体系浏览
		authGroup.GET("/courses", c.content.ListCourses)
		authGroup.GET("/subjects", c.content.ListSubjects)
		authGroup.GET("/chapters", c.content.ListChapters)
		authGroup.GET("/topics", c.content.ListTopics)
	}

	// 4. 内容编审（管理员/学科专家）
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Doctor))
	{
		adminGroup.POST("/questions", c.content.CreateQuestion)
		adminGroup.GET("/questions", c.content.ListQuestions)
		adminGroup.POST("/questions/:id/review", c.content.ReviewQuestion)
		adminGroup.DELETE("/questions/:id", c.content.DeleteQuestion)

		adminGroup.POST("/courses", c.content.CreateCourse)
		adminGroup.POST("/subjects", c.content.CreateSubject)
		adminGroup.POST("/chapters", c.content.CreateChapter)
		adminGroup.POST("/topics", c.content.CreateTopic)
	}
}
