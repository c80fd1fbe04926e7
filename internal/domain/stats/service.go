package stats

import (
	"context"
	"math"
)

const (
	kgPerPortion      = 0.5
	topTypesCount     = 5
	monthlyBuckets    = 6
	contributorsCount = 6
)

const (
	roleDonor   = "Donor"
	roleCharity = "Charity"
)

var monthLabels = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Service computes dashboard figures on every request; there is no
// caching or incremental maintenance, so the numbers always reflect the
// stored data.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Overview(ctx context.Context) (Overview, error) {
	donors, err := s.repo.CountApprovedUsers(ctx, roleDonor)
	if err != nil {
		return Overview{}, err
	}
	charities, err := s.repo.CountApprovedUsers(ctx, roleCharity)
	if err != nil {
		return Overview{}, err
	}
	meals, portions, err := s.repo.DeliveredTotals(ctx)
	if err != nil {
		return Overview{}, err
	}

	return Overview{
		Donors:    donors,
		Charities: charities,
		Meals:     meals,
		FoodKg:    math.Round(float64(portions)*kgPerPortion*10) / 10,
	}, nil
}

func (s *Service) Breakdown(ctx context.Context) (Breakdown, error) {
	types, err := s.repo.TopFoodTypes(ctx, topTypesCount)
	if err != nil {
		return Breakdown{}, err
	}

	buckets, err := s.repo.MonthlyDelivered(ctx, monthlyBuckets)
	if err != nil {
		return Breakdown{}, err
	}

	monthly := make([]MonthlyCount, 0, len(buckets))
	for _, bucket := range buckets {
		if bucket.Month < 1 || bucket.Month > 12 {
			continue
		}
		monthly = append(monthly, MonthlyCount{
			Month: monthLabels[bucket.Month-1],
			Count: bucket.Count,
		})
	}

	if types == nil {
		types = []TypeCount{}
	}
	return Breakdown{Types: types, Monthly: monthly}, nil
}

func (s *Service) Contributors(ctx context.Context) (Contributors, error) {
	donors, err := s.repo.TopDonors(ctx, contributorsCount)
	if err != nil {
		return Contributors{}, err
	}
	charities, err := s.repo.TopCharities(ctx, contributorsCount)
	if err != nil {
		return Contributors{}, err
	}

	if donors == nil {
		donors = []Contributor{}
	}
	if charities == nil {
		charities = []Contributor{}
	}
	return Contributors{Donors: donors, Charities: charities}, nil
}
