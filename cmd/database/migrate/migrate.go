package migration

import (
	"Larder-Backend/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.Container{}); err != nil {
		log.Fatalf("Error migrating container database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Product{}); err != nil {
		log.Fatalf("Error migrating product database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Lot{}); err != nil {
		log.Fatalf("Error migrating lot database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
