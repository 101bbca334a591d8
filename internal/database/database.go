package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/config"
	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/models"
)

// Service represents a service that interacts with a database.
type Service interface {
	// Health returns a map of health status information.
	// The keys and values in the map are service-specific.
	Health() map[string]string

	// Close terminates the database connection.
	// It returns an error if the connection cannot be closed.
	Close() error
	GetDB() *gorm.DB
}

type service struct {
	db   *gorm.DB
	name string
	log  *zap.Logger
}

// New connects using the application configuration.
func New(cfg config.Database, log *zap.Logger) (Service, error) {
	return open(cfg.DSN(), cfg.Name, log, logger.Warn)
}

// Open connects to dsn directly; tests use it with a throwaway container.
func Open(dsn string, log *zap.Logger) (Service, error) {
	return open(dsn, "", log, logger.Silent)
}

func open(dsn, name string, log *zap.Logger, level logger.LogLevel) (Service, error) {
	gormLogger := logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	log.Info("database connected", zap.String("database", name))

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database migrations completed")

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &service{db: db, name: name, log: log}, nil
}

// Migrate creates or updates the tables owned by the post and user stores.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
	); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	// Comments are removed together with their post.
	if !db.Migrator().HasConstraint(&models.Post{}, "Comments") {
		if err := db.Migrator().CreateConstraint(&models.Post{}, "Comments"); err != nil {
			return fmt.Errorf("create comment constraint: %w", err)
		}
	}
	return nil
}

func (s *service) GetDB() *gorm.DB {
	return s.db
}

// Health checks the health of the database connection by pinging the database.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats := make(map[string]string)

	sqlDB, err := s.db.DB()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = "database unavailable"
		s.log.Error("health: get database instance", zap.Error(err))
		return stats
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = "database unreachable"
		s.log.Error("health: ping", zap.Error(err))
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	dbStats := sqlDB.Stats()
	stats["open_connections"] = fmt.Sprintf("%d", dbStats.OpenConnections)
	stats["in_use"] = fmt.Sprintf("%d", dbStats.InUse)
	stats["idle"] = fmt.Sprintf("%d", dbStats.Idle)

	return stats
}

// Close closes the database connection.
func (s *service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	s.log.Info("disconnected from database", zap.String("database", s.name))
	return sqlDB.Close()
}
