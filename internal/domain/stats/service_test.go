package stats

import (
	"context"
	"testing"
)

type fakeStatsRepo struct {
	approved map[string]int64
	meals    int64
	portions int64
	types    []TypeCount
	buckets  []MonthBucket
	donors   []Contributor
	chars    []Contributor
}

func (f *fakeStatsRepo) CountApprovedUsers(ctx context.Context, role string) (int64, error) {
	return f.approved[role], nil
}

func (f *fakeStatsRepo) DeliveredTotals(ctx context.Context) (int64, int64, error) {
	return f.meals, f.portions, nil
}

func (f *fakeStatsRepo) TopFoodTypes(ctx context.Context, limit int) ([]TypeCount, error) {
	if limit < len(f.types) {
		return f.types[:limit], nil
	}
	return f.types, nil
}

func (f *fakeStatsRepo) MonthlyDelivered(ctx context.Context, buckets int) ([]MonthBucket, error) {
	return f.buckets, nil
}

func (f *fakeStatsRepo) TopDonors(ctx context.Context, limit int) ([]Contributor, error) {
	return f.donors, nil
}

func (f *fakeStatsRepo) TopCharities(ctx context.Context, limit int) ([]Contributor, error) {
	return f.chars, nil
}

func TestOverviewComputesKilograms(t *testing.T) {
	svc := NewService(&fakeStatsRepo{
		approved: map[string]int64{"Donor": 4, "Charity": 2},
		meals:    50,
		portions: 20,
	})

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if overview.Donors != 4 || overview.Charities != 2 {
		t.Fatalf("unexpected counts: %+v", overview)
	}
	if overview.Meals != 50 {
		t.Fatalf("expected 50 meals, got %d", overview.Meals)
	}
	if overview.FoodKg != 10.0 {
		t.Fatalf("expected 10.0 kg, got %v", overview.FoodKg)
	}
}

func TestOverviewRoundsToOneDecimal(t *testing.T) {
	svc := NewService(&fakeStatsRepo{portions: 5})

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if overview.FoodKg != 2.5 {
		t.Fatalf("expected 2.5 kg, got %v", overview.FoodKg)
	}
}

func TestOverviewIdempotent(t *testing.T) {
	svc := NewService(&fakeStatsRepo{
		approved: map[string]int64{"Donor": 1},
		meals:    120,
		portions: 33,
	})

	first, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first != second {
		t.Fatalf("overview not idempotent: %+v vs %+v", first, second)
	}
}

func TestBreakdownLabelsMonths(t *testing.T) {
	svc := NewService(&fakeStatsRepo{
		types: []TypeCount{{Type: "Bread", Count: 7}, {Type: "Rice", Count: 3}},
		buckets: []MonthBucket{
			{Year: 2026, Month: 3, Count: 2},
			{Year: 2026, Month: 4, Count: 5},
		},
	})

	breakdown, err := svc.Breakdown(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(breakdown.Monthly) != 2 {
		t.Fatalf("expected 2 monthly buckets, got %d", len(breakdown.Monthly))
	}
	if breakdown.Monthly[0].Month != "Mar" || breakdown.Monthly[1].Month != "Apr" {
		t.Fatalf("unexpected month labels: %+v", breakdown.Monthly)
	}
	if breakdown.Types[0].Type != "Bread" {
		t.Fatalf("unexpected type ordering: %+v", breakdown.Types)
	}
}

func TestBreakdownSkipsMalformedBuckets(t *testing.T) {
	svc := NewService(&fakeStatsRepo{
		buckets: []MonthBucket{{Year: 2026, Month: 0, Count: 1}, {Year: 2026, Month: 13, Count: 1}},
	})

	breakdown, err := svc.Breakdown(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(breakdown.Monthly) != 0 {
		t.Fatalf("expected malformed buckets dropped, got %+v", breakdown.Monthly)
	}
}

func TestContributorsNeverNil(t *testing.T) {
	svc := NewService(&fakeStatsRepo{})

	contributors, err := svc.Contributors(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if contributors.Donors == nil || contributors.Charities == nil {
		t.Fatalf("expected empty slices, got %+v", contributors)
	}
}
