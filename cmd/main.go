package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	httpapi "github.com/immxrtalbeast/frameboard/internal/api/http"
	"github.com/immxrtalbeast/frameboard/internal/config"
	jwtlib "github.com/immxrtalbeast/frameboard/internal/lib/jwt"
	"github.com/immxrtalbeast/frameboard/internal/realtime"
	"github.com/immxrtalbeast/frameboard/internal/repository"
	"github.com/immxrtalbeast/frameboard/internal/repository/model"
	"github.com/immxrtalbeast/frameboard/internal/service"
	"github.com/immxrtalbeast/frameboard/internal/storage/images"
	"github.com/immxrtalbeast/frameboard/lib/logger/sl"
	"github.com/immxrtalbeast/frameboard/lib/logger/slogpretty"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	var (
		userRepo     repository.UserRepository
		studioRepo   repository.StudioRepository
		projectRepo  repository.ProjectRepository
		sceneRepo    repository.SceneRepository
		commentRepo  repository.CommentRepository
		activityRepo repository.ActivityRepository
	)

	if cfg.Database.DSN == "" {
		log.Warn("database dsn is empty, using in-memory repositories")
		userRepo = repository.NewInMemoryUserRepository()
		studioRepo = repository.NewInMemoryStudioRepository()
		projectRepo = repository.NewInMemoryProjectRepository()
		sceneRepo = repository.NewInMemorySceneRepository()
		commentRepo = repository.NewInMemoryCommentRepository()
		activityRepo = repository.NewInMemoryActivityRepository()
	} else {
		db, err := connectDatabase(cfg.Database)
		if err != nil {
			log.Error("failed to connect database", sl.Err(err))
			os.Exit(1)
		}
		userRepo = repository.NewPostgresUserRepository(db)
		studioRepo = repository.NewPostgresStudioRepository(db)
		projectRepo = repository.NewPostgresProjectRepository(db)
		sceneRepo = repository.NewPostgresSceneRepository(db)
		commentRepo = repository.NewPostgresCommentRepository(db)
		activityRepo = repository.NewPostgresActivityRepository(db)
	}

	store, err := images.NewStore(cfg.Storage.ImageDir)
	if err != nil {
		log.Error("failed to init image store", sl.Err(err))
		os.Exit(1)
	}

	if cfg.Auth.Secret == "" {
		log.Error("auth secret is empty")
		os.Exit(1)
	}
	tokens := jwtlib.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	hub := realtime.NewHub(log, realtime.Options{NotifyRejected: cfg.Realtime.NotifyRejected})

	authService := service.NewAuthService(userRepo, tokens, log)
	studioService := service.NewStudioService(studioRepo, log)
	projectService := service.NewProjectService(projectRepo, studioRepo, log)
	sceneService := service.NewSceneService(sceneRepo, projectRepo, activityRepo, store, log)
	commentService := service.NewCommentService(commentRepo, sceneRepo, activityRepo, log)
	activityService := service.NewActivityService(activityRepo, log)

	router := httpapi.SetupRouter(tokens, cfg.HTTP.AllowOrigins, httpapi.Controllers{
		Auth:     httpapi.NewAuthController(authService),
		Studio:   httpapi.NewStudioController(studioService),
		Project:  httpapi.NewProjectController(projectService, activityService),
		Scene:    httpapi.NewSceneController(sceneService, store),
		Comment:  httpapi.NewCommentController(commentService),
		Realtime: httpapi.NewRealtimeController(hub, tokens, cfg.Realtime.SendBuffer, log),
	})

	log.Info("starting application", slog.String("addr", cfg.HTTP.Address))
	if err := router.Run(cfg.HTTP.Address); err != nil {
		log.Error("http server stopped", sl.Err(err))
		os.Exit(1)
	}
}

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}

func connectDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, errors.New("database dsn is empty")
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Studio{},
		&model.StudioMember{},
		&model.Project{},
		&model.Scene{},
		&model.Comment{},
		&model.ActivityEntry{},
	); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
