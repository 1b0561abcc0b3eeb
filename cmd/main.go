package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/sabaqhub/sabaq/config"
	"github.com/sabaqhub/sabaq/database"
	_ "github.com/sabaqhub/sabaq/docs" // Swagger docs - auto-generated
	adminctrl "github.com/sabaqhub/sabaq/internal/controller/admin"
	teacherctrl "github.com/sabaqhub/sabaq/internal/controller/teacher"
	userctrl "github.com/sabaqhub/sabaq/internal/controller/user"
	"github.com/sabaqhub/sabaq/internal/logger"
	"github.com/sabaqhub/sabaq/internal/model"
	"github.com/sabaqhub/sabaq/internal/repository"
	"github.com/sabaqhub/sabaq/internal/scoring"
	"github.com/sabaqhub/sabaq/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Sabaq LMS API
// @version 1.0
// @description Task grading and progress rollup API for the Sabaq learning platform.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			scoring.NewRuleSet,
		),

		fx.Provide(
			repository.NewSubjectRepository,
			repository.NewLessonRepository,
			repository.NewTaskRepository,
			repository.NewUserSubjectRepository,
			repository.NewUserChapterRepository,
			repository.NewUserLessonRepository,
			repository.NewUserTaskRepository,
		),

		fx.Provide(
			service.NewGradingService,
			service.NewProgressService,
			service.NewSubjectService,
			service.NewReportService,
			service.NewAdminContentService,
		),

		fx.Provide(
			userctrl.NewSubjectController,
			userctrl.NewLessonController,
			userctrl.NewTaskController,
			teacherctrl.NewReportController,
			adminctrl.NewContentController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

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
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer wires API routes and manages the server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	subjectCtrl *userctrl.SubjectController,
	lessonCtrl *userctrl.LessonController,
	taskCtrl *userctrl.TaskController,
	reportCtrl *teacherctrl.ReportController,
	contentCtrl *adminctrl.ContentController,
) {
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.POST("/subjects", contentCtrl.CreateSubject)
		adminAPIGroup.POST("/subjects/:subject_id/chapters", contentCtrl.CreateChapter)
		adminAPIGroup.POST("/lessons", contentCtrl.CreateLesson)
		adminAPIGroup.POST("/lessons/:lesson_id/materialize", contentCtrl.MaterializeLesson)
		adminAPIGroup.POST("/tasks", contentCtrl.CreateTask)
	}

	userAPIGroup := router.Group("/api/v1")
	{
		userAPIGroup.GET("/subjects", subjectCtrl.GetDashboard)
		userAPIGroup.GET("/subjects/:subject_id", subjectCtrl.GetSubjectDetail)
		userAPIGroup.POST("/subjects/:subject_id/enroll", subjectCtrl.Enroll)

		lessons := userAPIGroup.Group("/me/subjects/:user_subject_id/lessons/:user_lesson_id")
		lessons.GET("", lessonCtrl.GetLessonView)
		lessons.POST("/start", lessonCtrl.StartLesson)
		lessons.POST("/finish", lessonCtrl.FinishLesson)
		lessons.POST("/feedback", lessonCtrl.SaveFeedback)

		lessons.GET("/tasks/:user_task_id", taskCtrl.GetTaskView)
		lessons.POST("/tasks/:user_task_id/submit", taskCtrl.SubmitTask)
	}

	teacherAPIGroup := router.Group("/api/v1/teacher")
	{
		teacherAPIGroup.GET("/report", reportCtrl.GetReport)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Sabaq LMS API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
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

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Subject{},
		&model.Chapter{},
		&model.Lesson{},
		&model.Task{},
		&model.Video{},
		&model.Written{},
		&model.TextGap{},
		&model.Question{},
		&model.Option{},
		&model.MatchingColumn{},
		&model.MatchingItem{},
		&model.TableRow{},
		&model.TableColumn{},
		&model.TableCell{},
		&model.UserSubject{},
		&model.UserChapter{},
		&model.UserLesson{},
		&model.UserTask{},
		&model.UserVideo{},
		&model.UserWritten{},
		&model.UserTextGap{},
		&model.UserAnswer{},
		&model.UserMatchingAnswer{},
		&model.UserTableAnswer{},
		&model.Feedback{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
