package entity

import "github.com/google/uuid"

// SiteSettings is the single row of headline statistics shown on the
// public home page (years in business, AUM, claim settlement ratio...).
// The values are display strings, not numbers: "600+", "99.1%".
type SiteSettings struct {
	ID              string `json:"id"`
	YearsExperience string `json:"years_experience"`
	ClientsCount    string `json:"clients_count"`
	AUM             string `json:"aum"`
	ClaimSettlement string `json:"claim_settlement"`
	AwardsCount     string `json:"awards_count"`
	ShowStats       bool   `json:"show_stats"`
}

func DefaultSiteSettings() *SiteSettings {
	return &SiteSettings{
		ID:              uuid.New().String(),
		YearsExperience: "30+",
		ClientsCount:    "5000+",
		AUM:             "600+",
		ClaimSettlement: "99.1%",
		AwardsCount:     "200+",
		ShowStats:       true,
	}
}
