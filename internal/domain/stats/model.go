package stats

// Overview is the public homepage impact summary.
type Overview struct {
	Donors    int64   `json:"donors"`
	Charities int64   `json:"charities"`
	Meals     int64   `json:"meals"`
	FoodKg    float64 `json:"foodKg"`
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type Breakdown struct {
	Types   []TypeCount    `json:"types"`
	Monthly []MonthlyCount `json:"monthly"`
}

// MonthBucket is a raw year/month aggregation row from the repository;
// the service turns it into a labelled MonthlyCount.
type MonthBucket struct {
	Year  int
	Month int
	Count int64
}

type Contributor struct {
	Name      string `json:"name"`
	Donations int64  `json:"donations"`
}

type Contributors struct {
	Donors    []Contributor `json:"donors"`
	Charities []Contributor `json:"charities"`
}
