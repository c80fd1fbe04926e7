package db

import (
	"fmt"

	"foodshare-go/internal/domain/carousel"
	"foodshare-go/internal/domain/donation"
	"foodshare-go/internal/domain/user"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&user.User{}, &donation.Donation{}, &carousel.Image{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}
