package infra

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"huevopos/internal/store"
)

// NewDatabase establishes a GORM connection backed by pgx and migrates the
// single key/value table the postgres storage driver uses. The schema is one
// table holding opaque JSON records — nothing else lives in the database.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(2)

	if err := db.AutoMigrate(&store.Registro{}); err != nil {
		return nil, err
	}

	return db, nil
}
