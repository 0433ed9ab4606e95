package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// EnsureDashboardSchemaMSSQL creates the dashboard tables in MSSQL when missing
func EnsureDashboardSchemaMSSQL(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// MSSQL has no CREATE TABLE IF NOT EXISTS; guard with OBJECT_ID
	createIfMissing := func(table, ddl string) error {
		q := fmt.Sprintf(`IF OBJECT_ID(N'%s', N'U') IS NULL BEGIN %s END`, table, ddl)
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure table %s: %w", table, err)
		}
		return nil
	}
	if err := createIfMissing("dbo.platform_identities", `CREATE TABLE dbo.[platform_identities] (
        id NVARCHAR(64) NOT NULL PRIMARY KEY,
        name NVARCHAR(255) NOT NULL,
        color NVARCHAR(7) NOT NULL,
        icon NVARCHAR(255) NULL,
        display_order INT NOT NULL DEFAULT 0
    )`); err != nil {
		return err
	}
	if err := createIfMissing("dbo.platform_summaries", `CREATE TABLE dbo.[platform_summaries] (
        platform_id NVARCHAR(64) NOT NULL PRIMARY KEY REFERENCES dbo.[platform_identities](id),
        followers BIGINT NOT NULL CHECK (followers >= 0),
        posts BIGINT NOT NULL CHECK (posts >= 0),
        engagement_rate DECIMAL(7,4) NOT NULL CHECK (engagement_rate BETWEEN 0 AND 100),
        views BIGINT NOT NULL CHECK (views >= 0)
    )`); err != nil {
		return err
	}
	if err := createIfMissing("dbo.engagement_values", `CREATE TABLE dbo.[engagement_values] (
        period NVARCHAR(32) NOT NULL,
        platform_id NVARCHAR(64) NOT NULL REFERENCES dbo.[platform_identities](id),
        value BIGINT NOT NULL CHECK (value >= 0),
        CONSTRAINT pk_engagement_values PRIMARY KEY (period, platform_id)
    )`); err != nil {
		return err
	}
	return nil
}
