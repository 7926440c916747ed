package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/evalua-app/evalua-api/api/swagger"
	"github.com/evalua-app/evalua-api/internal/handler"
	"github.com/evalua-app/evalua-api/internal/middleware"
	"github.com/evalua-app/evalua-api/internal/repository"
	"github.com/evalua-app/evalua-api/internal/service"
	"github.com/evalua-app/evalua-api/pkg/cache"
	"github.com/evalua-app/evalua-api/pkg/config"
	"github.com/evalua-app/evalua-api/pkg/database"
	"github.com/evalua-app/evalua-api/pkg/logger"
	corsmiddleware "github.com/evalua-app/evalua-api/pkg/middleware/cors"
	reqidmiddleware "github.com/evalua-app/evalua-api/pkg/middleware/requestid"
	"github.com/evalua-app/evalua-api/pkg/storage"
)

// @title Evalua API
// @version 1.0.0
// @description Teacher evaluation surveys, statistics and report exports
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, statistics cache disabled", "error", err)
			redisClient = nil
		}
	}

	store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare exports storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	validate := validator.New()
	metricsService := service.NewMetricsService()

	teacherRepo := repository.NewTeacherRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	cacheService := service.NewCacheService(cacheRepo, metricsService, cfg.Statistics.CacheTTL, logr, redisClient != nil)
	authService := service.NewAuthService(cfg.Auth, validate, logr)
	settingService := service.NewSettingService(settingRepo, logr)
	teacherService := service.NewTeacherService(teacherRepo, gradeRepo, cacheService, validate, logr)
	subjectService := service.NewSubjectService(subjectRepo, cacheService, validate, logr)
	gradeService := service.NewGradeService(gradeRepo, logr)
	questionService := service.NewQuestionService(questionRepo, cacheService, validate, logr)
	surveyService := service.NewSurveyService(
		evaluationRepo, gradeRepo, teacherRepo, subjectRepo, questionRepo,
		settingService, cacheService, metricsService, validate, logr,
	)
	statisticsService := service.NewStatisticsService(
		evaluationRepo, gradeRepo, teacherRepo, subjectRepo, questionRepo,
		cacheService, logr,
	)
	exportService := service.NewExportService(statisticsService, store, signer, metricsService, validate, logr)
	importService := service.NewImportService(metricsService, logr)

	handlers := handler.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Teacher:    handler.NewTeacherHandler(teacherService),
		Subject:    handler.NewSubjectHandler(subjectService),
		Grade:      handler.NewGradeHandler(gradeService),
		Question:   handler.NewQuestionHandler(questionService),
		Setting:    handler.NewSettingHandler(settingService),
		Survey:     handler.NewSurveyHandler(surveyService),
		Statistics: handler.NewStatisticsHandler(statisticsService, exportService),
		Import:     handler.NewImportHandler(importService),
		Metrics:    handler.NewMetricsHandler(metricsService),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	handler.RegisterRoutes(r, cfg.APIPrefix, handlers, authService)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
