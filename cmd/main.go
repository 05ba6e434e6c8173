package main

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ptvinh/wordnest/config"
	"github.com/ptvinh/wordnest/database"
	"github.com/ptvinh/wordnest/internal/controller"
	"github.com/ptvinh/wordnest/internal/grader"
	"github.com/ptvinh/wordnest/internal/logger"
	"github.com/ptvinh/wordnest/internal/model"
	"github.com/ptvinh/wordnest/internal/question"
	"github.com/ptvinh/wordnest/internal/repository"
	"github.com/ptvinh/wordnest/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Wordnest Vocabulary Review API
// @version 1.0
// @description Spaced-repetition vocabulary trainer: scheduling, question generation, grading and review sessions.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			NewQuestionGenerator,
			NewGrader,
		),

		// Repositories
		fx.Provide(
			repository.NewVocabularyRepository,
			repository.NewReviewSessionRepository,
		),

		// Services
		fx.Provide(
			service.NewGeminiService,
			service.NewVocabularyService,
			service.NewReviewService,
			service.NewSessionSweeper,
		),

		// Controllers
		fx.Provide(
			controller.NewReviewController,
			controller.NewVocabularyController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(RunSessionSweeper),
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

// NewQuestionGenerator provides the production generator; tests construct
// their own with a fixed seed.
func NewQuestionGenerator() *question.Generator {
	return question.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
}

func NewGrader(cfg *config.Config) *grader.Grader {
	return grader.New(grader.Thresholds{
		FastAnswerMs:     cfg.Grader.FastAnswerMs,
		SlowAnswerMs:     cfg.Grader.SlowAnswerMs,
		MaxAnswerChanges: cfg.Grader.MaxAnswerChanges,
	})
}

func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	reviewCtrl *controller.ReviewController,
	vocabCtrl *controller.VocabularyController,
) {
	api := router.Group("/api/v1")
	{
		vocab := api.Group("/vocabularies")
		vocab.POST("", vocabCtrl.CreateVocabulary)
		vocab.GET("", vocabCtrl.ListVocabularies)
		vocab.GET("/due", vocabCtrl.ListDueVocabularies)
		vocab.GET("/:vocabulary_id", vocabCtrl.GetVocabulary)
		vocab.PUT("/:vocabulary_id", vocabCtrl.UpdateVocabulary)
		vocab.DELETE("/:vocabulary_id", vocabCtrl.DeleteVocabulary)
		vocab.POST("/:vocabulary_id/ai-meaning", vocabCtrl.EnrichWithAIMeaning)

		sessions := api.Group("/review-sessions")
		sessions.POST("", reviewCtrl.StartSession)
		sessions.GET("/:session_id", reviewCtrl.GetSession)
		sessions.POST("/:session_id/submissions", reviewCtrl.SubmitBatch)
		sessions.POST("/:session_id/abandon", reviewCtrl.AbandonSession)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Wordnest API server starting on port %s", cfg.Server.Port)
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

// RunSessionSweeper ties the inactivity sweep to the application lifecycle.
func RunSessionSweeper(lc fx.Lifecycle, sweeper *service.SessionSweeper) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sweeper.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Vocabulary{},
		&model.Meaning{},
		&model.ReviewSession{},
		&model.GeneratedQuestion{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
