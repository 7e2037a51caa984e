package types

// FractionCount is the number of current documents under one fraction.
type FractionCount struct {
	FractionNumber string `json:"fraction_number"`
	FractionName   string `json:"fraction_name"`
	Total          int64  `json:"total"`
}

// YearCount is the number of documents (all versions) uploaded for one year.
type YearCount struct {
	Year  int   `json:"year"`
	Total int64 `json:"total"`
}

// StatsResponse is the dashboard summary scoped to the requester's department.
type StatsResponse struct {
	Department  string          `json:"department"`
	TotalActive int64           `json:"total_active"`
	ByFraction  []FractionCount `json:"by_fraction"`
	ByYear      []YearCount     `json:"by_year"`
}
