package app

import (
	"edulearn_backend/docs"
	"edulearn_backend/internal/config"
	"edulearn_backend/internal/middleware"
	"edulearn_backend/internal/model"
	"edulearn_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, activity middleware.UserActivityRepo, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(activity))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/profile", c.auth.Profile)
	group.GET("/dashboard", c.dashboard.StudentDashboard)
	group.GET("/progress", c.dashboard.ListProgress)
	group.PUT("/progress", c.dashboard.UpdateProgress)

	group.GET("/courses", c.content.ListCourses)
	group.GET("/courses/:id", c.content.GetCourse)
	group.GET("/books", c.content.ListBooks)
	group.GET("/videos", c.content.ListVideos)

	quizzes := group.Group("/quizzes")
	{
		quizzes.GET("", c.quiz.ListQuizzes)
		quizzes.GET("/:quizId", c.quiz.GetQuiz)
		quizzes.GET("/:quizId/result", c.quiz.GetResult)

		quizzes.POST("/:quizId/session", c.quiz.StartSession)
		quizzes.GET("/:quizId/session", c.quiz.GetSession)
		quizzes.DELETE("/:quizId/session", c.quiz.AbandonSession)
		quizzes.PUT("/:quizId/session/answers", c.quiz.SelectAnswer)
		quizzes.POST("/:quizId/session/next", c.quiz.NextQuestion)
		quizzes.POST("/:quizId/session/previous", c.quiz.PreviousQuestion)
		quizzes.POST("/:quizId/session/submit", c.quiz.SubmitQuiz)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/dashboard", c.dashboard.AdminDashboard)

		admin.POST("/courses", c.content.CreateCourse)
		admin.POST("/courses/:id/items", c.content.AddCourseItem)
		admin.POST("/books", c.content.UploadBook)
		admin.POST("/videos", c.content.UploadVideo)

		admin.POST("/quizzes", c.quiz.CreateQuiz)
		admin.GET("/quizzes/:quizId/attempts", c.quiz.ListAttempts)
	}
}
