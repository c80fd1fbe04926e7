package donation

import (
	"context"
	"errors"
	"time"

	donationdomain "foodshare-go/internal/domain/donation"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, record *donationdomain.Donation) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*donationdomain.Donation, error) {
	var record donationdomain.Donation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, donationdomain.ErrDonationNotFound
		}
		return nil, err
	}
	return &record, nil
}

// UpdateDetails only touches rows still in Available; an applied=false
// result means the donation was claimed since the caller read it.
func (r *PostgresRepository) UpdateDetails(ctx context.Context, id string, fields donationdomain.UpdateFields) (bool, error) {
	result := r.db.WithContext(ctx).Model(&donationdomain.Donation{}).
		Where("id = ? AND status = ?", id, donationdomain.StatusAvailable).
		Updates(map[string]interface{}{
			"food_description": fields.FoodDescription,
			"quantity":         fields.Quantity,
			"serves":           fields.Serves,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) DeleteAvailable(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, donationdomain.StatusAvailable).
		Delete(&donationdomain.Donation{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Claim is the compare-and-swap Available→Claimed transition: the
// charity snapshot is only ever written to a row that was still
// Available at write time.
func (r *PostgresRepository) Claim(ctx context.Context, id string, snapshot donationdomain.CharitySnapshot, purpose string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&donationdomain.Donation{}).
		Where("id = ? AND status = ?", id, donationdomain.StatusAvailable).
		Updates(map[string]interface{}{
			"status":             donationdomain.StatusClaimed,
			"status_updated_at":  at,
			"claimed_by_charity": snapshot.CharityID,
			"charity_name":       snapshot.Name,
			"charity_address":    snapshot.Address,
			"purpose":            purpose,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AssignWorker stamps the worker snapshot only while no worker is
// assigned; the first advance wins and the assignment never changes.
func (r *PostgresRepository) AssignWorker(ctx context.Context, id string, snapshot donationdomain.WorkerSnapshot) (bool, error) {
	result := r.db.WithContext(ctx).Model(&donationdomain.Donation{}).
		Where("id = ? AND assigned_worker IS NULL", id).
		Updates(map[string]interface{}{
			"assigned_worker": snapshot.WorkerID,
			"worker_name":     snapshot.Name,
			"worker_contact":  snapshot.Contact,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, from, to string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&donationdomain.Donation{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":            to,
			"status_updated_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostgresRepository) ListByStatus(ctx context.Context, statuses ...string) ([]donationdomain.Donation, error) {
	var records []donationdomain.Donation
	if err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("created_at desc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) ListByDonor(ctx context.Context, donorID string) ([]donationdomain.Donation, error) {
	var records []donationdomain.Donation
	if err := r.db.WithContext(ctx).
		Where("donor_id = ?", donorID).
		Order("created_at desc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) ListByCharity(ctx context.Context, charityID string) ([]donationdomain.Donation, error) {
	var records []donationdomain.Donation
	if err := r.db.WithContext(ctx).
		Where("claimed_by_charity = ?", charityID).
		Order("created_at desc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
