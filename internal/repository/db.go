package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"scheduler/internal/db"
)

// ErrNotFound is returned when a row does not exist or does not match the
// requested state.
var ErrNotFound = errors.New("record not found")

const uniqueViolation = "23505"

// Open connects to postgres through lib/pq and wraps the pool with gorm.
func Open(dsn string, log *zap.Logger) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("init gorm: %w", err)
	}
	log.Info("DB connected successfully")
	return gdb, nil
}

// Migrate creates or updates the slots and bookings tables.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&db.Slot{}, &db.Booking{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
