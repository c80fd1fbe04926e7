package stats

import (
	"context"

	statsdomain "foodshare-go/internal/domain/stats"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CountApprovedUsers(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("role = ? AND status = ?", role, "Approved").
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) DeliveredTotals(ctx context.Context) (int64, int64, error) {
	var row struct {
		Meals    int64 `gorm:"column:meals"`
		Portions int64 `gorm:"column:portions"`
	}
	err := r.db.WithContext(ctx).Raw(
		"SELECT COALESCE(SUM(serves), 0) AS meals, COALESCE(SUM(quantity), 0) AS portions FROM donations WHERE status = ?",
		"Delivered",
	).Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Meals, row.Portions, nil
}

func (r *PostgresRepository) TopFoodTypes(ctx context.Context, limit int) ([]statsdomain.TypeCount, error) {
	var rows []statsdomain.TypeCount
	err := r.db.WithContext(ctx).Raw(
		"SELECT food_description AS type, COUNT(*) AS count FROM donations WHERE status = ? GROUP BY food_description ORDER BY count DESC LIMIT ?",
		"Delivered", limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MonthlyDelivered returns the most recent calendar-month buckets,
// oldest first.
func (r *PostgresRepository) MonthlyDelivered(ctx context.Context, buckets int) ([]statsdomain.MonthBucket, error) {
	query := "SELECT year, month, count FROM (" +
		"SELECT EXTRACT(YEAR FROM created_at)::int AS year, EXTRACT(MONTH FROM created_at)::int AS month, COUNT(*) AS count " +
		"FROM donations WHERE status = ? " +
		"GROUP BY 1, 2 ORDER BY 1 DESC, 2 DESC LIMIT ?" +
		") recent ORDER BY year ASC, month ASC"

	var rows []statsdomain.MonthBucket
	if err := r.db.WithContext(ctx).Raw(query, "Delivered", buckets).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Contributor rankings group by the principal's id and display the
// snapshot name, so two principals sharing a display name stay
// distinct.
func (r *PostgresRepository) TopDonors(ctx context.Context, limit int) ([]statsdomain.Contributor, error) {
	var rows []statsdomain.Contributor
	err := r.db.WithContext(ctx).Raw(
		"SELECT MAX(donor_name) AS name, COUNT(*) AS donations FROM donations WHERE status = ? GROUP BY donor_id ORDER BY donations DESC LIMIT ?",
		"Delivered", limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) TopCharities(ctx context.Context, limit int) ([]statsdomain.Contributor, error) {
	var rows []statsdomain.Contributor
	err := r.db.WithContext(ctx).Raw(
		"SELECT MAX(charity_name) AS name, COUNT(*) AS donations FROM donations WHERE status = ? AND claimed_by_charity IS NOT NULL GROUP BY claimed_by_charity ORDER BY donations DESC LIMIT ?",
		"Delivered", limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
