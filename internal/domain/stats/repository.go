package stats

import "context"

// Repository aggregates over the user and donation collections. All
// queries are read-only and scoped to Delivered donations where the
// impact numbers are concerned.
type Repository interface {
	CountApprovedUsers(ctx context.Context, role string) (int64, error)
	DeliveredTotals(ctx context.Context) (meals, portions int64, err error)
	TopFoodTypes(ctx context.Context, limit int) ([]TypeCount, error)
	MonthlyDelivered(ctx context.Context, buckets int) ([]MonthBucket, error)
	TopDonors(ctx context.Context, limit int) ([]Contributor, error)
	TopCharities(ctx context.Context, limit int) ([]Contributor, error)
}
