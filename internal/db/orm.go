package db

import (
	"fmt"

	gormModels "infinite-experiment/shiplog/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
}

// Migrate creates the ports, vessels and shipments tables if they are missing.
// Referenced tables go first.
func Migrate(orm *gorm.DB) error {
	models := []interface{}{
		&gormModels.Port{},
		&gormModels.Vessel{},
		&gormModels.Shipment{},
	}
	for _, m := range models {
		if err := orm.AutoMigrate(m); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
	}
	return nil
}
