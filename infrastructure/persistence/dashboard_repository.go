package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Karthikk7293/social-media-handler/domain/dto"
	"github.com/Karthikk7293/social-media-handler/domain/repository"
	"github.com/Karthikk7293/social-media-handler/infrastructure/logger"
)

const (
	selectPlatformIdentities = `SELECT id, name, color, icon FROM platform_identities ORDER BY display_order, id`
	selectPlatformSummaries  = `SELECT platform_id, followers, posts, engagement_rate, views FROM platform_summaries`
	selectEngagementValues   = `SELECT period, platform_id, value FROM engagement_values ORDER BY period, platform_id`
)

// EnsureDashboardSchema creates the dashboard tables (PostgreSQL) if not exists
func EnsureDashboardSchema(db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS platform_identities (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            color VARCHAR(7) NOT NULL,
            icon TEXT,
            display_order INT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS platform_summaries (
            platform_id TEXT PRIMARY KEY REFERENCES platform_identities(id),
            followers BIGINT NOT NULL CHECK (followers >= 0),
            posts BIGINT NOT NULL CHECK (posts >= 0),
            engagement_rate NUMERIC(7,4) NOT NULL CHECK (engagement_rate BETWEEN 0 AND 100),
            views BIGINT NOT NULL CHECK (views >= 0)
        )`,
		`CREATE TABLE IF NOT EXISTS engagement_values (
            period TEXT NOT NULL,
            platform_id TEXT NOT NULL REFERENCES platform_identities(id),
            value BIGINT NOT NULL CHECK (value >= 0),
            PRIMARY KEY (period, platform_id)
        )`,
	}
	for _, stmt := range ddl {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create dashboard schema: %w", err)
		}
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_engagement_values_platform ON engagement_values(platform_id)`); err != nil {
		logger.GetLogger().WithField("error", err).Warn("failed creating idx_engagement_values_platform")
	}
	return nil
}

// DashboardRepository reads a snapshot from the three dashboard tables.
// The queries are plain SQL, so the same repository serves PostgreSQL and MSSQL.
type DashboardRepository struct {
	db   *sql.DB
	name string
}

func NewDashboardRepository(db *sql.DB, name string) repository.IDashboardSource {
	return &DashboardRepository{db: db, name: name}
}

func (r *DashboardRepository) Fetch(ctx context.Context) (*dto.DashboardSnapshot, error) {
	if r.db == nil {
		return nil, fmt.Errorf("dashboard repository has no database connection")
	}
	platforms, err := r.platforms(ctx)
	if err != nil {
		return nil, err
	}
	summaries, err := r.summaries(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := r.engagement(ctx)
	if err != nil {
		return nil, err
	}
	return assembleSnapshot(r.name, platforms, summaries, rows), nil
}

func (r *DashboardRepository) platforms(ctx context.Context) ([]dto.PlatformDTO, error) {
	rows, err := r.db.QueryContext(ctx, selectPlatformIdentities)
	if err != nil {
		return nil, fmt.Errorf("failed to query platform identities: %w", err)
	}
	defer rows.Close()

	var out []dto.PlatformDTO
	for rows.Next() {
		var p dto.PlatformDTO
		var icon sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Color, &icon); err != nil {
			return nil, fmt.Errorf("failed to scan platform identity: %w", err)
		}
		p.Icon = icon.String
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read platform identities: %w", err)
	}
	return out, nil
}

func (r *DashboardRepository) summaries(ctx context.Context) (map[string]dto.SummaryDTO, error) {
	rows, err := r.db.QueryContext(ctx, selectPlatformSummaries)
	if err != nil {
		return nil, fmt.Errorf("failed to query platform summaries: %w", err)
	}
	defer rows.Close()

	out := make(map[string]dto.SummaryDTO)
	for rows.Next() {
		var (
			id                      string
			followers, posts, views int64
			rate                    decimal.Decimal
		)
		if err := rows.Scan(&id, &followers, &posts, &rate, &views); err != nil {
			return nil, fmt.Errorf("failed to scan platform summary: %w", err)
		}
		out[id] = summaryDTO(followers, posts, rate, views)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read platform summaries: %w", err)
	}
	return out, nil
}

func (r *DashboardRepository) engagement(ctx context.Context) ([]engagementRow, error) {
	rows, err := r.db.QueryContext(ctx, selectEngagementValues)
	if err != nil {
		return nil, fmt.Errorf("failed to query engagement values: %w", err)
	}
	defer rows.Close()

	var out []engagementRow
	for rows.Next() {
		var row engagementRow
		if err := rows.Scan(&row.Period, &row.PlatformID, &row.Value); err != nil {
			return nil, fmt.Errorf("failed to scan engagement value: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read engagement values: %w", err)
	}
	return out, nil
}
