package main

import (
	"context"
	"database/sql"
	"io/fs"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"go.uber.org/zap"

	auth "github.com/circleGiven/jwt-study"
	"github.com/circleGiven/jwt-study/middleware/bearerware"
)

// Config is the process configuration, loaded once at startup and
// immutable afterwards. It satisfies auth.Config.
type Config struct {
	SigningKey      string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	Issuer          string
	HTTPAddr        string
	DatabaseDSN     string
}

func (c Config) GetSigningKey() string                { return c.SigningKey }
func (c Config) GetSigningMethod() string             { return "HS512" }
func (c Config) GetAccessTokenTTL() time.Duration     { return c.AccessTokenTTL }
func (c Config) GetRefreshTokenTTL() time.Duration    { return c.RefreshTokenTTL }
func (c Config) GetContextKey() string                { return "principal" }
func (c Config) GetAuthScheme() string                { return "Bearer" }
func (c Config) GetIssuer() string                    { return c.Issuer }

func loadConfig() Config {
	cfg := Config{
		SigningKey:      os.Getenv("AUTH_SIGNING_KEY"),
		AccessTokenTTL:  envDuration("AUTH_ACCESS_TOKEN_TTL", time.Hour),
		RefreshTokenTTL: envDuration("AUTH_REFRESH_TOKEN_TTL", 14*24*time.Hour),
		Issuer:          envString("AUTH_ISSUER", "jwt-study"),
		HTTPAddr:        envString("HTTP_ADDR", ":8080"),
		DatabaseDSN:     envString("DATABASE_DSN", "file:jwt-study.db?cache=shared"),
	}
	return cfg
}

func envString(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	dur, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return dur
}

// zapAdapter bridges zap's sugared logger to the auth.Logger interface.
type zapAdapter struct {
	log *zap.SugaredLogger
}

func (l zapAdapter) Debug(format string, args ...any) { l.log.Debugw(format, args...) }
func (l zapAdapter) Info(format string, args ...any)  { l.log.Infow(format, args...) }
func (l zapAdapter) Warn(format string, args ...any)  { l.log.Warnw(format, args...) }
func (l zapAdapter) Error(format string, args ...any) { l.log.Errorw(format, args...) }

func main() {
	zlog, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer zlog.Sync()

	logger := zapAdapter{log: zlog.Sugar()}

	cfg := loadConfig()
	if cfg.SigningKey == "" {
		logger.Error("AUTH_SIGNING_KEY is required")
		os.Exit(1)
	}
	if len(cfg.SigningKey) < 32 {
		logger.Warn("signing key is shorter than the recommended 256 bits")
	}

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Error("database bootstrap failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := auth.NewRepositoryManager(db)
	repo.MustValidate()

	issuer, validator, err := auth.NewTokenPipeline(cfg, logger)
	if err != nil {
		logger.Error("token configuration invalid", "error", err)
		os.Exit(1)
	}
	resolver := auth.NewAuthenticationResolver(repo.Users(), logger)

	controller := auth.NewAuthController(
		auth.WithControllerLogger(logger),
		auth.WithControllerRepo(repo),
		auth.WithControllerTokens(issuer, validator, resolver),
	)

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			AppName: "jwt-study",
		}))
	})

	authn := bearerware.New(bearerware.Config{
		Validator:  validator,
		Resolver:   resolver,
		ContextKey: cfg.GetContextKey(),
		AuthScheme: cfg.GetAuthScheme(),
		Logger:     logger,
	})

	r := srv.Router()
	auth.RegisterAuthRoutes(r, controller)
	auth.RegisterProtectedRoutes(r, controller, authn,
		bearerware.RequireRole(auth.RoleUser),
		bearerware.RequireRole(auth.RoleAdmin),
	)

	logger.Info("server starting", "addr", cfg.HTTPAddr)
	srv.Serve(cfg.HTTPAddr)

	waitExitSignal()
	logger.Info("server shutting down")
}

func openDatabase(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// runMigrations applies the embedded migration files in lexical order.
func runMigrations(ctx context.Context, db *bun.DB) error {
	migrations, err := fs.Sub(auth.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(migrations, ".")
	if err != nil {
		return err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		raw, err := fs.ReadFile(migrations, name)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx, string(raw)); err != nil {
			return err
		}
	}

	return nil
}

func waitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
