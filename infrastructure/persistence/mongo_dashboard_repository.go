package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/Karthikk7293/social-media-handler/domain/dto"
	"github.com/Karthikk7293/social-media-handler/domain/repository"
)

type dashboardDocument struct {
	Name       string                     `bson:"name"`
	Platforms  []platformDocument         `bson:"platforms"`
	Summaries  map[string]summaryDocument `bson:"summaries"`
	Engagement []engagementDocument       `bson:"engagement"`
}

type platformDocument struct {
	ID    string `bson:"id"`
	Name  string `bson:"name"`
	Color string `bson:"color"`
	Icon  string `bson:"icon,omitempty"`
}

// summaryDocument keeps the rate raw; it may be stored as Decimal128, double, int or string
type summaryDocument struct {
	Followers      int64         `bson:"followers"`
	Posts          int64         `bson:"posts"`
	EngagementRate bson.RawValue `bson:"engagement_rate"`
	Views          int64         `bson:"views"`
}

type engagementDocument struct {
	Period string           `bson:"period"`
	Values map[string]int64 `bson:"values"`
}

type MongoDashboardRepository struct {
	client     *mongo.Client
	database   string
	collection string
	name       string
}

func NewMongoDashboardRepository(client *mongo.Client, database, collection, name string) repository.IDashboardSource {
	return &MongoDashboardRepository{client: client, database: database, collection: collection, name: name}
}

func (r *MongoDashboardRepository) Fetch(ctx context.Context) (*dto.DashboardSnapshot, error) {
	if r.client == nil {
		return nil, fmt.Errorf("mongo dashboard repository has no client")
	}
	var doc dashboardDocument
	err := r.client.Database(r.database).Collection(r.collection).
		FindOne(ctx, bson.D{{Key: "name", Value: r.name}}).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("dashboard %q not found in %s.%s", r.name, r.database, r.collection)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dashboard %q: %w", r.name, err)
	}
	return documentToSnapshot(&doc)
}

func documentToSnapshot(doc *dashboardDocument) (*dto.DashboardSnapshot, error) {
	snapshot := &dto.DashboardSnapshot{
		Name:       doc.Name,
		Platforms:  make([]dto.PlatformDTO, 0, len(doc.Platforms)),
		Summaries:  make(map[string]dto.SummaryDTO, len(doc.Summaries)),
		Engagement: make([]dto.EngagementDTO, 0, len(doc.Engagement)),
	}
	for _, p := range doc.Platforms {
		snapshot.Platforms = append(snapshot.Platforms, dto.PlatformDTO{ID: p.ID, Name: p.Name, Color: p.Color, Icon: p.Icon})
	}
	for id, s := range doc.Summaries {
		rate, err := rawDecimal(s.EngagementRate)
		if err != nil {
			return nil, fmt.Errorf("summary %q engagement_rate: %w", id, err)
		}
		snapshot.Summaries[id] = summaryDTO(s.Followers, s.Posts, rate, s.Views)
	}
	for _, e := range doc.Engagement {
		snapshot.Engagement = append(snapshot.Engagement, dto.EngagementDTO{Period: e.Period, Values: e.Values})
	}
	return snapshot, nil
}

func rawDecimal(v bson.RawValue) (decimal.Decimal, error) {
	if d, ok := v.Decimal128OK(); ok {
		return decimal.NewFromString(d.String())
	}
	if f, ok := v.DoubleOK(); ok {
		return decimal.NewFromFloat(f), nil
	}
	if i, ok := v.Int32OK(); ok {
		return decimal.NewFromInt32(i), nil
	}
	if i, ok := v.Int64OK(); ok {
		return decimal.NewFromInt(i), nil
	}
	if s, ok := v.StringValueOK(); ok {
		return decimal.NewFromString(s)
	}
	if len(v.Value) == 0 {
		return decimal.Zero, nil
	}
	return decimal.Zero, fmt.Errorf("unsupported bson type %s", v.Type)
}
