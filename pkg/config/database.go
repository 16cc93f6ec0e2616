package config

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anonto42/dura-blog/backend/internal/migrations"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the store connection selected by STORE_DRIVER.
// Exactly one of Gorm and Mongo is set.
type DB struct {
	Gorm          *gorm.DB
	Mongo         *mongo.Client
	MongoDatabase string

	logger *slog.Logger
}

// InitDB opens the configured store and applies pending migrations
func InitDB(cfg *Config, logger *slog.Logger) (*DB, error) {
	db := &DB{MongoDatabase: cfg.MongoDatabase, logger: logger}

	var err error
	switch cfg.StoreDriver {
	case DriverPostgres:
		db.Gorm, err = OpenPostgres(cfg.PostgresConnStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		logger.Info("Successfully connected to PostgreSQL!")
	case DriverSQLite:
		db.Gorm, err = OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		logger.Info("Successfully opened SQLite database!", "path", cfg.SQLitePath)
	case DriverMongo:
		db.Mongo, err = initMongo(cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		logger.Info("Successfully connected to MongoDB!")
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	if err := migrations.Up(db.Gorm, logger); err != nil {
		db.CloseDB()
		return nil, err
	}
	logger.Info("Database migrations completed.")
	return db, nil
}

// gormConfig routes GORM's own logging through the default slog handler.
// Missing rows are an expected outcome and are not logged.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(
			slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  gormlogger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	}
}

// OpenPostgres initializes the PostgreSQL database connection using GORM
func OpenPostgres(connStr string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(connStr), gormConfig())
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenSQLite opens a SQLite database file through GORM.
// SQLite allows a single writer, so the pool is capped at one connection.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// initMongo initializes the MongoDB connection
func initMongo(uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.Gorm != nil {
		sqlDB, err := db.Gorm.DB()
		if err != nil {
			db.logger.Error("Error getting SQL DB from GORM", "error", err)
		} else if err := sqlDB.Close(); err != nil {
			db.logger.Error("Error closing SQL connection", "error", err)
		} else {
			db.logger.Info("SQL connection closed.")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			db.logger.Error("Error closing MongoDB connection", "error", err)
		} else {
			db.logger.Info("MongoDB connection closed.")
		}
	}
}
