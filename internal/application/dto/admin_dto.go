package dto

import "github.com/google/uuid"

// AdminStatsResponse is the headline dashboard numbers.
type AdminStatsResponse struct {
	TotalCustomers  int64   `json:"total_customers"`
	TotalAdmins     int64   `json:"total_admins"`
	TotalQuotes     int64   `json:"total_quotes"`
	QuotesLast7Days int64   `json:"quotes_last_7_days"`
	AveragePremium  float64 `json:"average_premium"`
}

// TopUserEntry is one row of the most-active-users board.
type TopUserEntry struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Quotes   int64     `json:"quotes"`
}

// AnalyticsResponse is the admin analytics breakdown.
type AnalyticsResponse struct {
	PremiumRanges map[string]int64 `json:"premium_ranges"`
	AgeGroups     map[string]int64 `json:"age_groups"`
	Regions       map[string]int64 `json:"regions"`
	SmokerSplit   map[string]int64 `json:"smoker_split"`
	TopUsers      []TopUserEntry   `json:"top_users"`
}
