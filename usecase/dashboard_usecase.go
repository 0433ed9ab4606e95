package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Karthikk7293/social-media-handler/domain/dto"
	"github.com/Karthikk7293/social-media-handler/domain/model"
	"github.com/Karthikk7293/social-media-handler/domain/repository"
	"github.com/Karthikk7293/social-media-handler/infrastructure/logger"
)

// OverviewCacheKeyPrefix namespaces cached overviews; the dashboard
// fingerprint completes the key so a changed or different dataset never
// reads another one's entry.
const OverviewCacheKeyPrefix = "dashboard:overview"

var validate = validator.New()

// IDashboardUsecase exposes display-ready views over one immutable dashboard
type IDashboardUsecase interface {
	Overview(ctx context.Context) (*dto.OverviewView, error)
	Chart(ctx context.Context) dto.ChartView
	Tabs(ctx context.Context) dto.TabsView
	Platforms(ctx context.Context) []dto.PlatformIdentityView
	PlatformView(ctx context.Context, platform string) (*dto.PlatformView, error)
	Series(ctx context.Context, platform string) ([]dto.SeriesPointView, error)
}

// DashboardUsecase implements IDashboardUsecase
type DashboardUsecase struct {
	dashboard *model.Dashboard
	cache     repository.IDashboardCache // optional
	cacheTTL  time.Duration
}

// NewDashboardUsecase creates a usecase over an already loaded dashboard
func NewDashboardUsecase(dashboard *model.Dashboard) *DashboardUsecase {
	return &DashboardUsecase{dashboard: dashboard}
}

// WithCache enables caching of the overview view (fluent)
func (u *DashboardUsecase) WithCache(cache repository.IDashboardCache, ttl time.Duration) *DashboardUsecase {
	u.cache = cache
	u.cacheTTL = ttl
	return u
}

// LoadDashboard fetches a snapshot from source and builds the dashboard.
// No partially loaded dashboard is ever returned.
func LoadDashboard(ctx context.Context, source repository.IDashboardSource) (*model.Dashboard, error) {
	if source == nil {
		return nil, fmt.Errorf("dashboard source is required")
	}
	snapshot, err := source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dashboard snapshot: %w", err)
	}
	return SnapshotToDashboard(snapshot)
}

// SnapshotToDashboard validates the snapshot shape and hands it to model.Load
func SnapshotToDashboard(snapshot *dto.DashboardSnapshot) (*model.Dashboard, error) {
	if snapshot == nil {
		return nil, &model.ValidationError{Index: -1, Reason: "snapshot is empty"}
	}
	if err := validate.Struct(snapshot); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return nil, &model.ValidationError{Index: -1, Reason: fmt.Sprintf("%s failed %q check", fe.Namespace(), fe.Tag())}
		}
		return nil, &model.ValidationError{Index: -1, Reason: err.Error()}
	}

	identities := make([]model.PlatformIdentity, 0, len(snapshot.Platforms))
	for _, p := range snapshot.Platforms {
		identities = append(identities, model.PlatformIdentity{
			ID:    model.PlatformID(p.ID),
			Name:  p.Name,
			Color: p.Color,
			Icon:  p.Icon,
		})
	}

	summaries := make(map[model.PlatformID]model.PlatformSummary, len(snapshot.Summaries))
	for id, s := range snapshot.Summaries {
		summaries[model.PlatformID(id)] = model.PlatformSummary{
			Followers:      s.Followers,
			Posts:          s.Posts,
			EngagementRate: s.EngagementRate,
			Views:          s.Views,
		}
	}

	records := make([]model.EngagementRecord, 0, len(snapshot.Engagement))
	for _, e := range snapshot.Engagement {
		values := make(map[model.PlatformID]int64, len(e.Values))
		for id, v := range e.Values {
			values[model.PlatformID(id)] = v
		}
		records = append(records, model.EngagementRecord{Period: e.Period, ValueByPlatform: values})
	}

	return model.Load(records, summaries, identities)
}

// Overview returns the cross-platform cards and the trends chart
func (u *DashboardUsecase) Overview(ctx context.Context) (*dto.OverviewView, error) {
	key := u.overviewCacheKey()
	if u.cache != nil {
		raw, err := u.cache.Get(ctx, key)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("dashboard cache read failed")
		} else if raw != nil {
			var cached dto.OverviewView
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
			logger.GetLogger().WithField("key", key).Warn("discarding undecodable cached overview")
		}
	}

	d := u.dashboard
	view := &dto.OverviewView{
		TotalFollowers:        d.TotalFollowers(),
		TotalPosts:            d.TotalPosts(),
		TotalViews:            d.TotalViews(),
		BlendedEngagementRate: d.BlendedEngagementRate(),
		EngagementGrowth:      d.CombinedGrowth(),
		LatestPeriod:          d.LatestPeriod(),
		Chart:                 u.Chart(ctx),
	}

	if u.cache != nil {
		raw, err := json.Marshal(view)
		if err == nil {
			err = u.cache.Set(ctx, key, raw, u.cacheTTL)
		}
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("dashboard cache write failed")
		}
	}
	return view, nil
}

func (u *DashboardUsecase) overviewCacheKey() string {
	return OverviewCacheKeyPrefix + ":" + u.dashboard.Fingerprint()
}

// Chart aligns every platform's series on the shared periods axis
func (u *DashboardUsecase) Chart(_ context.Context) dto.ChartView {
	records := u.dashboard.Records()
	identities := u.dashboard.Identities()

	chart := dto.ChartView{
		Periods: u.dashboard.Periods(),
		Lines:   make([]dto.ChartLine, 0, len(identities)),
	}
	for _, identity := range identities {
		values := make([]int64, len(records))
		for i, r := range records {
			values[i] = r.ValueByPlatform[identity.ID]
		}
		chart.Lines = append(chart.Lines, dto.ChartLine{Platform: identityView(identity), Values: values})
	}
	return chart
}

// Tabs lists the overview tab followed by one tab per platform
func (u *DashboardUsecase) Tabs(_ context.Context) dto.TabsView {
	identities := u.dashboard.Identities()
	tabs := make([]string, 0, len(identities)+1)
	tabs = append(tabs, dto.OverviewTab)
	for _, identity := range identities {
		tabs = append(tabs, identity.ID.String())
	}
	return dto.TabsView{Default: dto.OverviewTab, Tabs: tabs}
}

// Platforms returns the platform descriptors in display order
func (u *DashboardUsecase) Platforms(_ context.Context) []dto.PlatformIdentityView {
	identities := u.dashboard.Identities()
	out := make([]dto.PlatformIdentityView, len(identities))
	for i, identity := range identities {
		out[i] = identityView(identity)
	}
	return out
}

// PlatformView returns the breakdown of one platform (case-insensitive lookup)
func (u *DashboardUsecase) PlatformView(ctx context.Context, platform string) (*dto.PlatformView, error) {
	d := u.dashboard
	identity, err := d.Identity(platform)
	if err != nil {
		return nil, err
	}
	summary, err := d.SummaryFor(platform)
	if err != nil {
		return nil, err
	}
	growth, err := d.PeriodOverPeriodGrowth(platform)
	if err != nil {
		return nil, err
	}
	series, err := u.Series(ctx, platform)
	if err != nil {
		return nil, err
	}
	return &dto.PlatformView{
		Platform:         identityView(identity),
		Followers:        summary.Followers,
		Posts:            summary.Posts,
		EngagementRate:   summary.EngagementRate,
		Views:            summary.Views,
		EngagementGrowth: growth,
		Series:           series,
	}, nil
}

// Series returns one platform's engagement values in period order
func (u *DashboardUsecase) Series(_ context.Context, platform string) ([]dto.SeriesPointView, error) {
	points, err := u.dashboard.SeriesFor(platform)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SeriesPointView, len(points))
	for i, p := range points {
		out[i] = dto.SeriesPointView{Period: p.Period, Value: p.Value}
	}
	return out, nil
}

func identityView(identity model.PlatformIdentity) dto.PlatformIdentityView {
	return dto.PlatformIdentityView{
		ID:    identity.ID.String(),
		Name:  identity.Name,
		Color: identity.Color,
		Icon:  identity.Icon,
	}
}
