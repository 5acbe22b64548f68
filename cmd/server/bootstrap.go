package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/amezghal/careergate/internal/api"
	"github.com/amezghal/careergate/internal/app"
	"github.com/amezghal/careergate/internal/app/maintenance"
	"github.com/amezghal/careergate/internal/audit"
	"github.com/amezghal/careergate/internal/cache"
	"github.com/amezghal/careergate/internal/database"
	"github.com/amezghal/careergate/internal/notifications"
	"github.com/amezghal/careergate/internal/session"
	"github.com/amezghal/careergate/internal/upstream"
	"github.com/amezghal/careergate/pkg/logger"
)

// runtimeStack bundles long-lived services used by the HTTP server.
type runtimeStack struct {
	DB      *gorm.DB
	Redis   cache.Store
	Store   cache.Store
	Cleaner *maintenance.Cleaner
	Router  *gin.Engine
}

// bootstrapRuntime initialises the database, cache, upstream client and the
// HTTP router.
func bootstrapRuntime(ctx context.Context, cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			stack.Shutdown(log)
		}
	}()

	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.DB, err = initialiseDatabase(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Cache.Redis.Enabled {
		if stack.Redis, err = cache.NewRedisClient(cache.RedisConfig{
			Address:  cfg.Cache.Redis.Address,
			Username: cfg.Cache.Redis.Username,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			TLS:      cfg.Cache.Redis.TLS,
			Timeout:  cfg.Cache.Redis.Timeout,
		}); err != nil {
			log.Warn("redis unavailable; falling back to database-backed cache", zap.Error(err))
		} else {
			log.Info("redis connected", zap.String("addr", cfg.Cache.Redis.Address))
		}
	}

	stack.Store = stack.Redis
	if stack.Store == nil {
		stack.Store = cache.NewDatabaseStore(stack.DB)
	}

	client, err := upstream.NewClient(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: cfg.Upstream.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("initialise upstream client: %w", err)
	}

	codec, err := session.NewCodec(session.CodecConfig{
		Secret:     cfg.Session.Secret,
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("initialise session codec: %w", err)
	}

	var hub *notifications.Hub
	if cfg.Features.Notifications.Enabled {
		hub = notifications.NewHub()
	}

	notifSvc, err := notifications.NewService(client, stack.Store, codec.TTL(), hub)
	if err != nil {
		return nil, fmt.Errorf("initialise notification service: %w", err)
	}

	var auditSvc *audit.Service
	if cfg.Features.AuditTrail.Enabled {
		if auditSvc, err = audit.NewService(stack.DB); err != nil {
			return nil, fmt.Errorf("initialise audit service: %w", err)
		}
	}

	manager, err := session.NewManager(client, notifSvc, auditSvc)
	if err != nil {
		return nil, fmt.Errorf("initialise session manager: %w", err)
	}

	stack.Cleaner, err = maintenance.NewCleaner(stack.Store, auditSvc, cfg.Features.AuditTrail.RetentionDays)
	if err != nil {
		return nil, fmt.Errorf("initialise maintenance: %w", err)
	}
	if err := stack.Cleaner.Start(); err != nil {
		return nil, fmt.Errorf("start maintenance jobs: %w", err)
	}
	if err := stack.Cleaner.RunOnce(ctx); err != nil {
		log.Warn("startup cleanup incomplete", zap.Error(err))
	}

	stack.Router = api.NewRouter(api.Dependencies{
		Config:        cfg,
		Codec:         codec,
		Manager:       manager,
		Notifications: notifSvc,
		Hub:           hub,
		Audit:         auditSvc,
		Upstream:      client,
		Store:         stack.Store,
		DB:            stack.DB,
	})

	success = true
	return stack, nil
}

// Shutdown gracefully stops background jobs and releases resources.
func (s *runtimeStack) Shutdown(log *zap.Logger) {
	if s == nil {
		return
	}

	if s.Cleaner != nil {
		s.Cleaner.Stop()
	}

	if rc, ok := s.Redis.(*cache.RedisClient); ok && rc != nil {
		if err := rc.Close(); err != nil {
			log.Warn("redis shutdown", zap.Error(err))
		}
	}

	closeDatabase(s.DB, log)
}

func initialiseDatabase(cfg *app.Config) (*gorm.DB, error) {
	dbCfg := convertDatabaseConfig(cfg)
	db, err := database.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	logger.WithModule("database").Info("database connected",
		zap.String("driver", strings.ToLower(strings.TrimSpace(dbCfg.Driver))))

	return db, nil
}

func convertDatabaseConfig(cfg *app.Config) database.Config {
	dbCfg := database.Config{
		Driver: strings.ToLower(strings.TrimSpace(cfg.Database.Driver)),
		Path:   strings.TrimSpace(cfg.Database.Path),
		DSN:    strings.TrimSpace(cfg.Database.DSN),
	}

	switch dbCfg.Driver {
	case "", "sqlite":
		dbCfg.Driver = "sqlite"
	case "postgres", "postgresql":
		dbCfg.Driver = "postgres"
		dbCfg.Host = strings.TrimSpace(cfg.Database.Postgres.Host)
		dbCfg.Port = cfg.Database.Postgres.Port
		dbCfg.Name = strings.TrimSpace(cfg.Database.Postgres.Database)
		dbCfg.User = strings.TrimSpace(cfg.Database.Postgres.Username)
		dbCfg.Password = strings.TrimSpace(cfg.Database.Postgres.Password)
	case "mysql":
		dbCfg.Host = strings.TrimSpace(cfg.Database.MySQL.Host)
		dbCfg.Port = cfg.Database.MySQL.Port
		dbCfg.Name = strings.TrimSpace(cfg.Database.MySQL.Database)
		dbCfg.User = strings.TrimSpace(cfg.Database.MySQL.Username)
		dbCfg.Password = strings.TrimSpace(cfg.Database.MySQL.Password)
	default:
		// Leave driver as-is so Open surfaces the unsupported driver error.
	}

	return dbCfg
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("failed to obtain underlying sql DB for closing", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Warn("failed to close database", zap.Error(err))
	}
}
