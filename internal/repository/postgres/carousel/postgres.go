package carousel

import (
	"context"

	carouseldomain "foodshare-go/internal/domain/carousel"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]carouseldomain.Image, error) {
	var images []carouseldomain.Image
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *PostgresRepository) Create(ctx context.Context, image *carouseldomain.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&carouseldomain.Image{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return carouseldomain.ErrImageNotFound
	}
	return nil
}
