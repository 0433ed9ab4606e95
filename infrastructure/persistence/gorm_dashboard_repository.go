package persistence

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Karthikk7293/social-media-handler/domain/dto"
	"github.com/Karthikk7293/social-media-handler/domain/repository"
)

type PlatformIdentityRow struct {
	ID           string `gorm:"column:id;primaryKey;size:64"`
	Name         string `gorm:"column:name;size:255;not null"`
	Color        string `gorm:"column:color;size:7;not null"`
	Icon         string `gorm:"column:icon;size:255"`
	DisplayOrder int    `gorm:"column:display_order;not null;default:0"`
}

func (PlatformIdentityRow) TableName() string { return "platform_identities" }

type PlatformSummaryRow struct {
	PlatformID     string          `gorm:"column:platform_id;primaryKey;size:64"`
	Followers      int64           `gorm:"column:followers;not null"`
	Posts          int64           `gorm:"column:posts;not null"`
	EngagementRate decimal.Decimal `gorm:"column:engagement_rate;type:decimal(7,4);not null"`
	Views          int64           `gorm:"column:views;not null"`
}

func (PlatformSummaryRow) TableName() string { return "platform_summaries" }

type EngagementValueRow struct {
	Period     string `gorm:"column:period;primaryKey;size:32"`
	PlatformID string `gorm:"column:platform_id;primaryKey;size:64"`
	Value      int64  `gorm:"column:value;not null"`
}

func (EngagementValueRow) TableName() string { return "engagement_values" }

// EnsureDashboardSchemaGorm migrates the dashboard tables on MySQL
func EnsureDashboardSchemaGorm(db *gorm.DB) error {
	if err := db.AutoMigrate(&PlatformIdentityRow{}, &PlatformSummaryRow{}, &EngagementValueRow{}); err != nil {
		return fmt.Errorf("migrate dashboard schema: %w", err)
	}
	return nil
}

type GormDashboardRepository struct {
	db   *gorm.DB
	name string
}

func NewGormDashboardRepository(db *gorm.DB, name string) repository.IDashboardSource {
	return &GormDashboardRepository{db: db, name: name}
}

func (r *GormDashboardRepository) Fetch(ctx context.Context) (*dto.DashboardSnapshot, error) {
	if r.db == nil {
		return nil, fmt.Errorf("gorm dashboard repository has no database connection")
	}
	db := r.db.WithContext(ctx)

	var identities []PlatformIdentityRow
	if err := db.Order("display_order, id").Find(&identities).Error; err != nil {
		return nil, fmt.Errorf("failed to query platform identities: %w", err)
	}
	var summaries []PlatformSummaryRow
	if err := db.Find(&summaries).Error; err != nil {
		return nil, fmt.Errorf("failed to query platform summaries: %w", err)
	}
	var values []EngagementValueRow
	if err := db.Order("period, platform_id").Find(&values).Error; err != nil {
		return nil, fmt.Errorf("failed to query engagement values: %w", err)
	}

	platforms := make([]dto.PlatformDTO, 0, len(identities))
	for _, row := range identities {
		platforms = append(platforms, dto.PlatformDTO{ID: row.ID, Name: row.Name, Color: row.Color, Icon: row.Icon})
	}
	summaryByID := make(map[string]dto.SummaryDTO, len(summaries))
	for _, row := range summaries {
		summaryByID[row.PlatformID] = summaryDTO(row.Followers, row.Posts, row.EngagementRate, row.Views)
	}
	rows := make([]engagementRow, 0, len(values))
	for _, row := range values {
		rows = append(rows, engagementRow{Period: row.Period, PlatformID: row.PlatformID, Value: row.Value})
	}
	return assembleSnapshot(r.name, platforms, summaryByID, rows), nil
}
