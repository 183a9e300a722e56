package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"github.com/adaptive-testers/aztec-assess/config"
	"github.com/adaptive-testers/aztec-assess/database"
	adminctrl "github.com/adaptive-testers/aztec-assess/internal/controller/admin"
	studentctrl "github.com/adaptive-testers/aztec-assess/internal/controller/student"
	"github.com/adaptive-testers/aztec-assess/internal/logger"
	"github.com/adaptive-testers/aztec-assess/internal/repository"
	"github.com/adaptive-testers/aztec-assess/internal/service"
)

// @title Adaptive Quiz API
// @version 1.0
// @description Adaptive quiz attempt engine: question difficulty follows the student's running performance.
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories
		fx.Provide(
			repository.NewChapterRepository,
			repository.NewQuestionRepository,
			repository.NewQuizRepository,
			repository.NewAttemptRepository,
			repository.NewAnswerRepository,
		),

		// Services
		fx.Provide(
			service.NewQuestionSelector,
			service.NewAttemptService,
			service.NewStudentQuizService,
			service.NewAdminContentService,
		),

		// Controllers
		fx.Provide(
			adminctrl.NewAdminContentController,
			studentctrl.NewAttemptController,
		),

		fx.Invoke(database.Migrate),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer wires API routes and manages the server
// lifecycle through fx hooks.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminContentCtrl *adminctrl.AdminContentController,
	attemptCtrl *studentctrl.AttemptController,
) {
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.POST("/chapters", adminContentCtrl.CreateChapter)
		adminAPIGroup.GET("/courses/:course_id/chapters", adminContentCtrl.ListChapters)
		adminAPIGroup.POST("/chapters/:chapter_id/questions", adminContentCtrl.CreateQuestion)
		adminAPIGroup.GET("/chapters/:chapter_id/questions", adminContentCtrl.ListQuestions)
		adminAPIGroup.DELETE("/questions/:question_id", adminContentCtrl.DeactivateQuestion)
		adminAPIGroup.POST("/chapters/:chapter_id/quizzes", adminContentCtrl.CreateQuiz)
		adminAPIGroup.POST("/quizzes/:quiz_id/publish", adminContentCtrl.PublishQuiz)
	}

	studentAPIGroup := router.Group("/api/v1")
	{
		studentAPIGroup.GET("/chapters/:chapter_id/quizzes", attemptCtrl.ListQuizzes)
		studentAPIGroup.GET("/quizzes/:quiz_id", attemptCtrl.GetQuiz)
		studentAPIGroup.POST("/quizzes/:quiz_id/attempts", attemptCtrl.StartAttempt)
		studentAPIGroup.POST("/attempts/:attempt_id/answers", attemptCtrl.SubmitAnswer)
		studentAPIGroup.GET("/attempts/:attempt_id/current", attemptCtrl.CurrentQuestion)
		studentAPIGroup.GET("/attempts/:attempt_id", attemptCtrl.GetAttempt)
		studentAPIGroup.GET("/my-attempts", attemptCtrl.ListMyAttempts)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Adaptive quiz API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
