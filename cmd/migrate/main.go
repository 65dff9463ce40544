package main

import (
	"log"

	"SiDispo/config"
	"SiDispo/models"
)

func main() {
	db := config.ConnectDB()

	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.PasswordResetToken{},
		&models.SuratMasuk{},
		&models.SuratMasukFoto{},
		&models.Disposisi{},
		&models.FeedbackDisposisi{},
		&models.FeedbackFile{},
	)
	if err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	log.Println("✅ Migration completed")
}
