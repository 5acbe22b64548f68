package database

import (
	"gorm.io/gorm"

	"github.com/amezghal/careergate/internal/models"
)

// AutoMigrate creates the operational tables used by the gateway. Business
// entities (jobs, applications, companies) live in the upstream backend and
// are never persisted here.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.AuditEvent{},
		&models.CacheEntry{},
	)
}
