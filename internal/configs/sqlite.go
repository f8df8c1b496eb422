package config

import (
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	model "github.com/Anirban2958/clapgrow/pkg/models"
)

func NewDatabase(dsn string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	if err := db.AutoMigrate(&model.FollowUp{}, &model.NotificationLog{}); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	return db
}
