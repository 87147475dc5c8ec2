package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/account"
	googleauth "resume-parser/internal/auth"
	"resume-parser/internal/match"
	"resume-parser/internal/parser"
	"resume-parser/internal/queue"
	"resume-parser/internal/resumes"
	"resume-parser/internal/services/health"
	"resume-parser/internal/shared/auth"
	"resume-parser/internal/shared/config"
	"resume-parser/internal/shared/server"
	"resume-parser/internal/shared/storage/db"
	"resume-parser/internal/shared/storage/object"
	localstore "resume-parser/internal/shared/storage/object/local"
	s3store "resume-parser/internal/shared/storage/object/s3"
	"resume-parser/internal/shared/telemetry"
	"resume-parser/internal/taxonomy"
	"resume-parser/internal/uploads"
	"resume-parser/internal/users"
)

// App holds shared dependencies and the assembled router.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Store          object.ObjectStore
	Queue          queue.Client
	Taxonomy       *taxonomy.Taxonomy
	Parser         *parser.Parser
	Matcher        *match.Matcher
	Signer         *auth.Signer
	ResumesRepo    resumes.Repo
	UsersRepo      users.Repo
	ResumesService *resumes.Service
	UsersService   *users.Service
	ResumesHandler *resumes.Handler
	UsersHandler   *users.Handler
	AccountHandler *account.Handler
	UploadHandler  *uploads.Handler
	Health         *health.Service
	GoogleAuth     *googleauth.GoogleService
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	telemetry.Init(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	tax, err := loadTaxonomy(cfg.TaxonomyFile)
	if err != nil {
		return nil, err
	}

	signer, err := auth.NewSigner(cfg.JWTSecret, cfg.IsProduction())
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	jobs, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Queue:    jobs,
		Taxonomy: tax,
		Parser:   parser.New(tax),
		Matcher:  match.New(tax),
		Signer:   signer,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         app.Config,
		Verifier:       app.Signer,
		ResumeHandler:  app.ResumesHandler,
		UserHandler:    app.UsersHandler,
		AccountHandler: app.AccountHandler,
		UploadHandler:  app.UploadHandler,
		Health:         app.Health,
		GoogleAuth:     app.GoogleAuth,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":        cfg.Env,
		"storage":    cfg.ObjectStoreType,
		"database":   sqlDB != nil,
		"skills":     len(tax.Skills()),
		"job_fields": len(tax.JobFields()),
	})
	return app, nil
}

func loadTaxonomy(path string) (*taxonomy.Taxonomy, error) {
	if strings.TrimSpace(path) == "" {
		return taxonomy.Default()
	}
	tax, err := taxonomy.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load taxonomy %s: %w", path, err)
	}
	return tax, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, errors.New("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			sqlDB.Close()
		}
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, errors.New("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	case "local":
		return localstore.New(cfg.LocalStoreDir), nil
	default:
		return nil, fmt.Errorf("unknown OBJECT_STORE %q", cfg.ObjectStoreType)
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if cfg.ReparseQueueURL == "" {
		return nil, nil
	}
	client, err := queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.ReparseQueueURL)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	var resumeRepo resumes.Repo
	var userRepo users.Repo
	if app.DB != nil {
		resumeRepo = &resumes.PGRepo{DB: app.DB}
		userRepo = &users.PGRepo{DB: app.DB}
	} else {
		resumeRepo = resumes.NewMemoryRepo()
		userRepo = users.NewMemoryRepo()
	}

	resumeSvc := &resumes.Service{
		Store:           app.Store,
		Repo:            resumeRepo,
		Parser:          app.Parser,
		Matcher:         app.Matcher,
		StorageProvider: app.Config.ObjectStoreType,
		MaxUploadBytes:  app.Config.MaxUploadBytes,
		Jobs:            app.Queue,
	}
	userSvc := users.NewService(userRepo, resumeRepo)
	googleAuthSvc := googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.Signer,
		userSvc,
	)
	accountSvc := account.NewService(resumeRepo)
	googleAuthSvc.Guests = accountSvc

	app.ResumesRepo = resumeRepo
	app.UsersRepo = userRepo
	app.ResumesService = resumeSvc
	app.UsersService = userSvc
	app.ResumesHandler = resumes.NewHandler(resumeSvc)
	app.UsersHandler = users.NewHandler(userSvc)
	app.AccountHandler = account.NewHandler(accountSvc)
	if presigner, ok := app.Store.(uploads.Presigner); ok {
		app.UploadHandler = uploads.NewHandler(presigner, resumeSvc)
	}
	app.GoogleAuth = googleAuthSvc
	app.Health = health.NewService(app.DB, app.Taxonomy, app.Config.ObjectStoreType, googleAuthSvc.Configured())
}
