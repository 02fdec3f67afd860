package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notedu_backend/internal/config"
	"notedu_backend/internal/controller"
	"notedu_backend/internal/repository"
	"notedu_backend/internal/service"
	"notedu_backend/pkg/database"
	"notedu_backend/pkg/logger"
	"notedu_backend/pkg/monitoring"
	"notedu_backend/pkg/security"
	"notedu_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	class    *repository.ClassRepository
	quiz     *repository.QuizRepository
	attempt  *repository.AttemptRepository
	summary  *repository.SummaryRepository
	document *repository.DocumentRepository
}

type services struct {
	auth     *service.AuthService
	storage  *service.StorageService
	class    *service.ClassService
	quiz     *service.QuizService
	grading  *service.GradingService
	report   *service.ReportService
	mastery  *service.MasteryService
	ai       *service.AIService
	rag      *service.RAGService
	qa       *service.QAService
	quizGen  *service.QuizGenService
	summary  *service.SummaryService
	document *service.DocumentService
}

type controllers struct {
	auth     *controller.AuthController
	class    *controller.ClassController
	quiz     *controller.QuizController
	report   *controller.ReportController
	qa       *controller.QAController
	summary  *controller.SummaryController
	document *controller.DocumentController
	health   *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新入口，只下发给注册过回调的组件。
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		class:    repository.NewClassRepository(db),
		quiz:     repository.NewQuizRepository(db),
		attempt:  repository.NewAttemptRepository(db),
		summary:  repository.NewSummaryRepository(db),
		document: repository.NewDocumentRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.class = service.NewClassService(repos.class, repos.user)
	s.quiz = service.NewQuizService(repos.quiz, repos.class)
	s.grading = service.NewGradingService(repos.quiz, repos.attempt)
	s.report = service.NewReportService(repos.class, repos.quiz, repos.attempt, repos.user)
	s.mastery = service.NewMasteryService(repos.quiz, s.report)

	s.ai = service.NewAIService(cfg.AI)
	s.rag = service.NewRAGService(cfg.Retrieval)
	s.qa = service.NewQAService(s.rag, s.ai, rdb)
	s.quizGen = service.NewQuizGenService(s.rag, s.ai)
	s.summary = service.NewSummaryService(repos.summary, s.rag, s.ai)
	s.document = service.NewDocumentService(repos.document, s.storage, s.rag, rdb)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth),
		class:    controller.NewClassController(s.class),
		quiz:     controller.NewQuizController(s.quiz, s.grading, s.quizGen),
		report:   controller.NewReportController(s.report, s.mastery),
		qa:       controller.NewQAController(s.qa),
		summary:  controller.NewSummaryController(s.summary),
		document: controller.NewDocumentController(s.document),
		health:   controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("notedu-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Sync()
	log.Println("Server exiting")
}
