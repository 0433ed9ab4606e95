package persistence

import (
	"github.com/shopspring/decimal"

	"github.com/Karthikk7293/social-media-handler/domain/dto"
)

// engagementRow is one (period, platform, value) cell of the engagement table
type engagementRow struct {
	Period     string
	PlatformID string
	Value      int64
}

// assembleSnapshot groups engagement rows into records. Rows must arrive ordered
// by period; the first occurrence of a period fixes its position.
func assembleSnapshot(name string, platforms []dto.PlatformDTO, summaries map[string]dto.SummaryDTO, rows []engagementRow) *dto.DashboardSnapshot {
	snapshot := &dto.DashboardSnapshot{
		Name:      name,
		Platforms: platforms,
		Summaries: summaries,
	}
	position := make(map[string]int)
	for _, row := range rows {
		i, ok := position[row.Period]
		if !ok {
			i = len(snapshot.Engagement)
			position[row.Period] = i
			snapshot.Engagement = append(snapshot.Engagement, dto.EngagementDTO{
				Period: row.Period,
				Values: make(map[string]int64),
			})
		}
		snapshot.Engagement[i].Values[row.PlatformID] = row.Value
	}
	return snapshot
}

func summaryDTO(followers, posts int64, rate decimal.Decimal, views int64) dto.SummaryDTO {
	return dto.SummaryDTO{Followers: followers, Posts: posts, EngagementRate: rate, Views: views}
}
