package dto

import "github.com/shopspring/decimal"

// OverviewTab is the id of the default, cross-platform tab
const OverviewTab = "overview"

// PlatformIdentityView describes one platform tab
type PlatformIdentityView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon,omitempty"`
}

// SeriesPointView is one (period, value) pair
type SeriesPointView struct {
	Period string `json:"period"`
	Value  int64  `json:"value"`
}

// ChartLine is one platform's line, values aligned with ChartView.Periods
type ChartLine struct {
	Platform PlatformIdentityView `json:"platform"`
	Values   []int64              `json:"values"`
}

// ChartView feeds the engagement trends chart
type ChartView struct {
	Periods []string    `json:"periods"`
	Lines   []ChartLine `json:"lines"`
}

// OverviewView aggregates metrics across every platform.
// Growth fields are omitted when they cannot be derived.
type OverviewView struct {
	TotalFollowers        int64            `json:"total_followers"`
	TotalPosts            int64            `json:"total_posts"`
	TotalViews            int64            `json:"total_views"`
	BlendedEngagementRate decimal.Decimal  `json:"blended_engagement_rate"`
	EngagementGrowth      *decimal.Decimal `json:"engagement_growth,omitempty"`
	LatestPeriod          string           `json:"latest_period"`
	Chart                 ChartView        `json:"chart"`
}

// PlatformView is the breakdown of a single platform
type PlatformView struct {
	Platform         PlatformIdentityView `json:"platform"`
	Followers        int64                `json:"followers"`
	Posts            int64                `json:"posts"`
	EngagementRate   decimal.Decimal      `json:"engagement_rate"`
	Views            int64                `json:"views"`
	EngagementGrowth *decimal.Decimal     `json:"engagement_growth,omitempty"`
	Series           []SeriesPointView    `json:"series"`
}

// TabsView lists selectable views; Default is always OverviewTab
type TabsView struct {
	Default string   `json:"default"`
	Tabs    []string `json:"tabs"`
}
