package database

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/corptravel/travel-order-service/internal/models"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// surfaces unique index violations as gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.TravelOrder{}, &models.Notification{}); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// order_id is unique across all orders, not per owner
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_travel_orders_order_id
		ON travel_orders (order_id)
	`)

	return db
}
