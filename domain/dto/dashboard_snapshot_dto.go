package dto

import "github.com/shopspring/decimal"

// PlatformDTO is a platform descriptor as delivered by a snapshot source
type PlatformDTO struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name" validate:"required_without=ID"`
	Color string `json:"color" yaml:"color" validate:"required"`
	Icon  string `json:"icon" yaml:"icon"`
}

// SummaryDTO is the per-platform summary as delivered by a snapshot source
type SummaryDTO struct {
	Followers      int64           `json:"followers" yaml:"followers"`
	Posts          int64           `json:"posts" yaml:"posts"`
	EngagementRate decimal.Decimal `json:"engagement_rate" yaml:"engagement_rate"`
	Views          int64           `json:"views" yaml:"views"`
}

// EngagementDTO is one period of the engagement series (platform -> value)
type EngagementDTO struct {
	Period string           `json:"period" yaml:"period" validate:"required"`
	Values map[string]int64 `json:"values" yaml:"values"`
}

// DashboardSnapshot is the raw input a source hands to the metrics store
type DashboardSnapshot struct {
	Name       string                `json:"name" yaml:"name"`
	Platforms  []PlatformDTO         `json:"platforms" yaml:"platforms" validate:"required,min=1,dive"`
	Summaries  map[string]SummaryDTO `json:"summaries" yaml:"summaries" validate:"required,dive"`
	Engagement []EngagementDTO       `json:"engagement" yaml:"engagement" validate:"required,min=1,dive"`
}
