package postgres

import (
	"log"

	"github.com/servana/servana-payment-service/internal/config"
	"github.com/servana/servana-payment-service/internal/infrastructure/logger"
	"github.com/servana/servana-payment-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.PaymentConfig) *gorm.DB {
	dsn := cfg.PaymentDB.Dsn
	// TranslateError maps the unique-index violation on the idempotency
	// key column to gorm.ErrDuplicatedKey, which the repositories rely on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.PaymentTransactionModel{},
		&models.PaymentSplitModel{},
		&models.EscrowTransactionModel{},
		&models.IdempotencyKeyModel{},
		&logger.PaymentCreatedEvent{},
		&logger.PaymentFailedEvent{},
	)

	return db
}
