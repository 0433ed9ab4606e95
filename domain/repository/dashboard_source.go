package repository

import (
	"context"

	"github.com/Karthikk7293/social-media-handler/domain/dto"
)

// IDashboardSource supplies the raw dashboard snapshot (fixture, database or document store)
type IDashboardSource interface {
	Fetch(ctx context.Context) (*dto.DashboardSnapshot, error)
}
