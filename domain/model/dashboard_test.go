package model_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Karthikk7293/social-media-handler/domain/model"
)

func identities() []model.PlatformIdentity {
	return []model.PlatformIdentity{
		{Name: "Instagram", Color: "#E1306C", Icon: "instagram"},
		{Name: "Twitter", Color: "#1DA1F2", Icon: "twitter"},
		{Name: "Facebook", Color: "#4267B2", Icon: "facebook"},
		{Name: "YouTube", Color: "#FF0000", Icon: "youtube"},
	}
}

func records() []model.EngagementRecord {
	return []model.EngagementRecord{
		{Period: "2024-01", ValueByPlatform: map[model.PlatformID]int64{"instagram": 1200, "twitter": 800, "facebook": 1500, "youtube": 2000}},
		{Period: "2024-02", ValueByPlatform: map[model.PlatformID]int64{"instagram": 1400, "twitter": 900, "facebook": 1600, "youtube": 2200}},
		{Period: "2024-03", ValueByPlatform: map[model.PlatformID]int64{"instagram": 1300, "twitter": 1000, "facebook": 1700, "youtube": 2400}},
	}
}

func summaries() map[model.PlatformID]model.PlatformSummary {
	return map[model.PlatformID]model.PlatformSummary{
		"instagram": {Followers: 12500, Posts: 245, EngagementRate: decimal.RequireFromString("4.2"), Views: 45000},
		"twitter":   {Followers: 8800, Posts: 890, EngagementRate: decimal.RequireFromString("2.8"), Views: 32000},
		"facebook":  {Followers: 15200, Posts: 180, EngagementRate: decimal.RequireFromString("3.5"), Views: 52000},
		"youtube":   {Followers: 25000, Posts: 120, EngagementRate: decimal.RequireFromString("5.1"), Views: 150000},
	}
}

func sampleDashboard(t *testing.T) *model.Dashboard {
	t.Helper()
	d, err := model.Load(records(), summaries(), identities())
	require.NoError(t, err)
	return d
}

func requireValidationError(t *testing.T, err error) *model.ValidationError {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, model.ErrValidation), "expected validation error, got %v", err)
	var ve *model.ValidationError
	require.True(t, errors.As(err, &ve))
	return ve
}

func TestLoad_Sample(t *testing.T) {
	d := sampleDashboard(t)

	ids := d.Identities()
	require.Len(t, ids, 4)
	assert.Equal(t, model.PlatformID("instagram"), ids[0].ID)
	assert.Equal(t, model.PlatformID("youtube"), ids[3].ID)
	assert.Equal(t, "YouTube", ids[3].Name)
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, d.Periods())
	assert.Equal(t, "2024-03", d.LatestPeriod())
}

func TestLoad_Violations(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(r []model.EngagementRecord, s map[model.PlatformID]model.PlatformSummary, i []model.PlatformIdentity) ([]model.EngagementRecord, map[model.PlatformID]model.PlatformSummary, []model.PlatformIdentity)
		platform   model.PlatformID
		index      int
		reasonPart string
	}{
		{
			name: "empty records",
			mutate: func(_ []model.EngagementRecord, s map[model.PlatformID]model.PlatformSummary, i []model.PlatformIdentity) ([]model.EngagementRecord, map[model.PlatformID]model.PlatformSummary, []model.PlatformIdentity) {
				return nil, s, i
			},
			index:      -1,
			reasonPart: "at least one",
		},
		{
			name: "record missing youtube",
			mutate: func(r []model.EngagementRecord, s map[model.PlatformID]model.PlatformSummary, i []model.PlatformIdentity) ([]model.EngagementRecord, map[model.PlatformID]model.PlatformSummary, []model.PlatformIdentity) {
				delete(r[1].ValueByPlatform, "youtube")
				return r, s, i
			},
			platform:   "youtube",
			index:      1,
			reasonPart: "missing",
		},
		{
			name: "non-increasing period",
			mutate: func(r []model.EngagementRecord, s map[model.PlatformID]model.PlatformSummary, i []model.PlatformIdentity) ([]model.EngagementRecord, map[model.PlatformID]model.PlatformSummary, []model.PlatformIdentity) {
				r[2].Period = "2024-02"
				return r, s, i
			},
			index:      2,
			reasonPart: "does not follow",
		},
		{
			name: "unsorted periods",
			mutate: func(r []model.EngagementRecord, s map[model.PlatformID]model.PlatformSummary, i []model.PlatformIdentity) ([]model.EngagementRecord, map[model.PlatformID]model.PlatformSummary, []model.PlatformIdentity) {
				r[0], r[1] = r[1], r[0]
				return r, s, i
			},
			index:      1,
			reasonPart: "does not follow",
		},
		{
			name: "negative engagement value",
			mutate: func(r []model.EngagementRecord, s map[model.PlatformID]model.PlatformSummary, i []model.PlatformIdentity) ([]model.EngagementRecord, map[model.PlatformID]model.PlatformSummary, []model.PlatformIdentity) {
				r[0].ValueByPlatform["twitter"] = -1
				return r, s, i
			},
			platform:   "twitter",
			index:      0,
			reasonPart: "negative",
		},
		{
			name: "record references unknown platform",
			mutate: func(r []model.EngagementRecord, s map[model.PlatformID]model.PlatformSummary, i []model.PlatformIdentity) ([]model.EngagementRecord, map[model.PlatformID]model.PlatformSummary, []model.PlatformIdentity) {
				r[0].ValueByPlatform["tiktok"] = 10
				return r, s, i
			},
			platform:   "tiktok",
			index:      0,
			reasonPart: "unknown platform",
		},
		{
			name: "orphan identity without summary",
			mutate: func(r []model.EngagementRecord, s map[model.PlatformID]model.PlatformSummary, i []model.PlatformIdentity) ([]model.EngagementRecord, map[model.PlatformID]model.PlatformSummary, []model.PlatformIdentity) {
				delete(s, "facebook")
				return r, s, i
			},
			platform:   "facebook",
			index:      -1,
			reasonPart: "no summary",
		},
		{
			name: "summary for unknown platform",
			mutate: func(r []model.EngagementRecord, s map[model.PlatformID]model.PlatformSummary, i []model.PlatformIdentity) ([]model.EngagementRecord, map[model.PlatformID]model.PlatformSummary, []model.PlatformIdentity) {
				s["linkedin"] = model.PlatformSummary{}
				return r, s, i
			},
			platform:   "linkedin",
			index:      -1,
			reasonPart: "unknown platform",
		},
		{
			name: "engagement rate above 100",
			mutate: func(r []model.EngagementRecord, s map[model.PlatformID]model.PlatformSummary, i []model.PlatformIdentity) ([]model.EngagementRecord, map[model.PlatformID]model.PlatformSummary, []model.PlatformIdentity) {
				ig := s["instagram"]
				ig.EngagementRate = decimal.RequireFromString("100.01")
				s["instagram"] = ig
				return r, s, i
			},
			platform:   "instagram",
			index:      -1,
			reasonPart: "outside [0, 100]",
		},
		{
			name: "negative followers",
			mutate: func(r []model.EngagementRecord, s map[model.PlatformID]model.PlatformSummary, i []model.PlatformIdentity) ([]model.EngagementRecord, map[model.PlatformID]model.PlatformSummary, []model.PlatformIdentity) {
				tw := s["twitter"]
				tw.Followers = -5
				s["twitter"] = tw
				return r, s, i
			},
			platform:   "twitter",
			index:      -1,
			reasonPart: "negative followers",
		},
		{
			name: "negative engagement rate",
			mutate: func(r []model.EngagementRecord, s map[model.PlatformID]model.PlatformSummary, i []model.PlatformIdentity) ([]model.EngagementRecord, map[model.PlatformID]model.PlatformSummary, []model.PlatformIdentity) {
				fb := s["facebook"]
				fb.EngagementRate = decimal.RequireFromString("-0.01")
				s["facebook"] = fb
				return r, s, i
			},
			platform:   "facebook",
			index:      -1,
			reasonPart: "outside [0, 100]",
		},
		{
			name: "negative posts",
			mutate: func(r []model.EngagementRecord, s map[model.PlatformID]model.PlatformSummary, i []model.PlatformIdentity) ([]model.EngagementRecord, map[model.PlatformID]model.PlatformSummary, []model.PlatformIdentity) {
				yt := s["youtube"]
				yt.Posts = -1
				s["youtube"] = yt
				return r, s, i
			},
			platform:   "youtube",
			index:      -1,
			reasonPart: "negative posts",
		},
		{
			name: "negative views",
			mutate: func(r []model.EngagementRecord, s map[model.PlatformID]model.PlatformSummary, i []model.PlatformIdentity) ([]model.EngagementRecord, map[model.PlatformID]model.PlatformSummary, []model.PlatformIdentity) {
				ig := s["instagram"]
				ig.Views = -100
				s["instagram"] = ig
				return r, s, i
			},
			platform:   "instagram",
			index:      -1,
			reasonPart: "negative views",
		},
		{
			name: "empty period",
			mutate: func(r []model.EngagementRecord, s map[model.PlatformID]model.PlatformSummary, i []model.PlatformIdentity) ([]model.EngagementRecord, map[model.PlatformID]model.PlatformSummary, []model.PlatformIdentity) {
				r[1].Period = ""
				return r, s, i
			},
			index:      1,
			reasonPart: "period is empty",
		},
		{
			name: "duplicate identity after canonicalization",
			mutate: func(r []model.EngagementRecord, s map[model.PlatformID]model.PlatformSummary, i []model.PlatformIdentity) ([]model.EngagementRecord, map[model.PlatformID]model.PlatformSummary, []model.PlatformIdentity) {
				return r, s, append(i, model.PlatformIdentity{Name: " INSTAGRAM ", Color: "#000000"})
			},
			platform:   "instagram",
			index:      -1,
			reasonPart: "duplicate",
		},
		{
			name: "invalid color",
			mutate: func(r []model.EngagementRecord, s map[model.PlatformID]model.PlatformSummary, i []model.PlatformIdentity) ([]model.EngagementRecord, map[model.PlatformID]model.PlatformSummary, []model.PlatformIdentity) {
				i[1].Color = "#1DA1F"
				return r, s, i
			},
			platform:   "twitter",
			index:      -1,
			reasonPart: "hex triplet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, s, i := tt.mutate(records(), summaries(), identities())
			d, err := model.Load(r, s, i)
			require.Nil(t, d)

			ve := requireValidationError(t, err)
			assert.Equal(t, tt.platform, ve.Platform)
			assert.Equal(t, tt.index, ve.Index)
			assert.Contains(t, ve.Reason, tt.reasonPart)
		})
	}
}

func TestLoad_CanonicalizesKeys(t *testing.T) {
	r := []model.EngagementRecord{
		{Period: "2024-01", ValueByPlatform: map[model.PlatformID]int64{"Instagram": 10}},
	}
	s := map[model.PlatformID]model.PlatformSummary{
		" INSTAGRAM": {Followers: 1, EngagementRate: decimal.NewFromInt(1)},
	}
	i := []model.PlatformIdentity{{ID: "InstaGram", Name: "Instagram", Color: "#E1306C"}}

	d, err := model.Load(r, s, i)
	require.NoError(t, err)

	summary, err := d.SummaryFor("instagram")
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Followers)

	series, err := d.SeriesFor("INSTAGRAM")
	require.NoError(t, err)
	assert.Equal(t, []model.SeriesPoint{{Period: "2024-01", Value: 10}}, series)
}

func TestSummaryFor(t *testing.T) {
	d := sampleDashboard(t)

	summary, err := d.SummaryFor("YouTube")
	require.NoError(t, err)
	assert.Equal(t, int64(25000), summary.Followers)
	assert.True(t, summary.EngagementRate.Equal(decimal.RequireFromString("5.1")))

	_, err = d.SummaryFor("myspace")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNotFound))
	var nf *model.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, model.PlatformID("myspace"), nf.Platform)
}

func TestTotals_EqualSumOfSummaries(t *testing.T) {
	d := sampleDashboard(t)

	var followers, views int64
	for _, identity := range d.Identities() {
		s, err := d.SummaryFor(identity.ID.String())
		require.NoError(t, err)
		followers += s.Followers
		views += s.Views
	}
	assert.Equal(t, followers, d.TotalFollowers())
	assert.Equal(t, views, d.TotalViews())
	assert.Equal(t, int64(61500), d.TotalFollowers())
	assert.Equal(t, int64(279000), d.TotalViews())
	assert.Equal(t, int64(1435), d.TotalPosts())
}

func TestTotals_NoOverflowPast32Bits(t *testing.T) {
	r := []model.EngagementRecord{{Period: "2024-01", ValueByPlatform: map[model.PlatformID]int64{"a": 0, "b": 0}}}
	s := map[model.PlatformID]model.PlatformSummary{
		"a": {Followers: 1 << 31, Views: 1 << 31},
		"b": {Followers: 1 << 31, Views: 1 << 31},
	}
	i := []model.PlatformIdentity{{ID: "a", Color: "#000000"}, {ID: "b", Color: "#FFFFFF"}}

	d, err := model.Load(r, s, i)
	require.NoError(t, err)
	assert.Equal(t, int64(1<<32), d.TotalFollowers())
	assert.Equal(t, int64(1<<32), d.TotalViews())
}

func TestBlendedEngagementRate(t *testing.T) {
	r := []model.EngagementRecord{{Period: "2024-01", ValueByPlatform: map[model.PlatformID]int64{"ig": 1, "tw": 1}}}
	i := []model.PlatformIdentity{{ID: "ig", Color: "#E1306C"}, {ID: "tw", Color: "#1DA1F2"}}

	t.Run("equal rates ignore follower split", func(t *testing.T) {
		s := map[model.PlatformID]model.PlatformSummary{
			"ig": {Followers: 12500, EngagementRate: decimal.RequireFromString("5.0")},
			"tw": {Followers: 8800, EngagementRate: decimal.RequireFromString("5.0")},
		}
		d, err := model.Load(r, s, i)
		require.NoError(t, err)
		assert.True(t, d.BlendedEngagementRate().Equal(decimal.NewFromInt(5)), "got %s", d.BlendedEngagementRate())
	})

	t.Run("equal followers give simple average", func(t *testing.T) {
		s := map[model.PlatformID]model.PlatformSummary{
			"ig": {Followers: 1000, EngagementRate: decimal.RequireFromString("4.2")},
			"tw": {Followers: 1000, EngagementRate: decimal.RequireFromString("2.8")},
		}
		d, err := model.Load(r, s, i)
		require.NoError(t, err)
		assert.True(t, d.BlendedEngagementRate().Equal(decimal.RequireFromString("3.5")), "got %s", d.BlendedEngagementRate())
	})

	t.Run("weighted by followers", func(t *testing.T) {
		s := map[model.PlatformID]model.PlatformSummary{
			"ig": {Followers: 3000, EngagementRate: decimal.RequireFromString("10")},
			"tw": {Followers: 1000, EngagementRate: decimal.RequireFromString("2")},
		}
		d, err := model.Load(r, s, i)
		require.NoError(t, err)
		assert.True(t, d.BlendedEngagementRate().Equal(decimal.NewFromInt(8)), "got %s", d.BlendedEngagementRate())
	})

	t.Run("zero followers is zero", func(t *testing.T) {
		s := map[model.PlatformID]model.PlatformSummary{
			"ig": {EngagementRate: decimal.RequireFromString("4.2")},
			"tw": {EngagementRate: decimal.RequireFromString("2.8")},
		}
		d, err := model.Load(r, s, i)
		require.NoError(t, err)
		assert.True(t, d.BlendedEngagementRate().IsZero())
	})
}

func TestBlendedEngagementRate_SinglePlatform(t *testing.T) {
	r := []model.EngagementRecord{{Period: "2024-01", ValueByPlatform: map[model.PlatformID]int64{"youtube": 1}}}
	s := map[model.PlatformID]model.PlatformSummary{"youtube": {Followers: 25000, EngagementRate: decimal.RequireFromString("5.1")}}
	i := []model.PlatformIdentity{{Name: "YouTube", Color: "#FF0000"}}

	d, err := model.Load(r, s, i)
	require.NoError(t, err)
	assert.True(t, d.BlendedEngagementRate().Equal(decimal.RequireFromString("5.1")))
}

func TestPeriodOverPeriodGrowth(t *testing.T) {
	i := []model.PlatformIdentity{{ID: "ig", Color: "#E1306C"}}
	s := map[model.PlatformID]model.PlatformSummary{"ig": {Followers: 1}}

	t.Run("two records", func(t *testing.T) {
		r := []model.EngagementRecord{
			{Period: "2024-01", ValueByPlatform: map[model.PlatformID]int64{"ig": 1200}},
			{Period: "2024-02", ValueByPlatform: map[model.PlatformID]int64{"ig": 1400}},
		}
		d, err := model.Load(r, s, i)
		require.NoError(t, err)

		g, err := d.PeriodOverPeriodGrowth("ig")
		require.NoError(t, err)
		require.NotNil(t, g)
		assert.Equal(t, "16.6667", g.Round(4).String())
		f, _ := g.Float64()
		assert.InDelta(t, 200.0/1200.0*100, f, 1e-9)
	})

	t.Run("single record is undefined", func(t *testing.T) {
		r := []model.EngagementRecord{{Period: "2024-01", ValueByPlatform: map[model.PlatformID]int64{"ig": 1200}}}
		d, err := model.Load(r, s, i)
		require.NoError(t, err)

		g, err := d.PeriodOverPeriodGrowth("ig")
		require.NoError(t, err)
		assert.Nil(t, g)
		assert.Nil(t, d.CombinedGrowth())
	})

	t.Run("zero previous is undefined", func(t *testing.T) {
		r := []model.EngagementRecord{
			{Period: "2024-01", ValueByPlatform: map[model.PlatformID]int64{"ig": 0}},
			{Period: "2024-02", ValueByPlatform: map[model.PlatformID]int64{"ig": 50}},
		}
		d, err := model.Load(r, s, i)
		require.NoError(t, err)

		g, err := d.PeriodOverPeriodGrowth("ig")
		require.NoError(t, err)
		assert.Nil(t, g)
	})

	t.Run("decline is negative", func(t *testing.T) {
		d := sampleDashboard(t)
		g, err := d.PeriodOverPeriodGrowth("Instagram")
		require.NoError(t, err)
		require.NotNil(t, g)
		assert.True(t, g.IsNegative())
		assert.Equal(t, "-7.14", g.Round(2).String())
	})

	t.Run("unknown platform", func(t *testing.T) {
		d := sampleDashboard(t)
		_, err := d.PeriodOverPeriodGrowth("vine")
		assert.True(t, errors.Is(err, model.ErrNotFound))
	})
}

func TestCombinedGrowth(t *testing.T) {
	d := sampleDashboard(t)
	// 2024-02 total 6100, 2024-03 total 6400
	g := d.CombinedGrowth()
	require.NotNil(t, g)
	assert.Equal(t, "4.92", g.Round(2).String())
}

func TestSeriesFor(t *testing.T) {
	d := sampleDashboard(t)

	series, err := d.SeriesFor("twitter")
	require.NoError(t, err)
	assert.Len(t, series, len(records()))
	assert.Equal(t, []model.SeriesPoint{
		{Period: "2024-01", Value: 800},
		{Period: "2024-02", Value: 900},
		{Period: "2024-03", Value: 1000},
	}, series)

	again, err := d.SeriesFor("Twitter")
	require.NoError(t, err)
	assert.Equal(t, series, again)

	_, err = d.SeriesFor("")
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestDashboard_AccessorsReturnCopies(t *testing.T) {
	in := records()
	d, err := model.Load(in, summaries(), identities())
	require.NoError(t, err)

	in[0].ValueByPlatform["instagram"] = 99999
	out := d.Records()
	out[0].ValueByPlatform["instagram"] = 42
	ids := d.Identities()
	ids[0].Color = "#000000"

	series, err := d.SeriesFor("instagram")
	require.NoError(t, err)
	assert.Equal(t, int64(1200), series[0].Value)
	identity, err := d.Identity("instagram")
	require.NoError(t, err)
	assert.Equal(t, "#E1306C", identity.Color)
}

func TestValidationError_Message(t *testing.T) {
	err := &model.ValidationError{Platform: "youtube", Index: 2, Reason: "record is missing a value"}
	assert.Equal(t, `validation error: record 2, platform "youtube": record is missing a value`, err.Error())

	err = &model.ValidationError{Index: -1, Reason: "boom"}
	assert.Equal(t, "validation error: boom", err.Error())
}

func TestDashboard_Fingerprint(t *testing.T) {
	base := sampleDashboard(t)
	require.Len(t, base.Fingerprint(), 64)

	t.Run("equal canonical inputs share it", func(t *testing.T) {
		s := summaries()
		s["YouTube"] = s["youtube"]
		delete(s, "youtube")
		d, err := model.Load(records(), s, identities())
		require.NoError(t, err)
		assert.Equal(t, base.Fingerprint(), d.Fingerprint())
	})

	t.Run("summary change yields a new one", func(t *testing.T) {
		s := summaries()
		yt := s["youtube"]
		yt.Followers++
		s["youtube"] = yt
		d, err := model.Load(records(), s, identities())
		require.NoError(t, err)
		assert.NotEqual(t, base.Fingerprint(), d.Fingerprint())
	})

	t.Run("series change yields a new one", func(t *testing.T) {
		r := records()
		r[2].ValueByPlatform["twitter"] = 1001
		d, err := model.Load(r, summaries(), identities())
		require.NoError(t, err)
		assert.NotEqual(t, base.Fingerprint(), d.Fingerprint())
	})

	t.Run("identity change yields a new one", func(t *testing.T) {
		i := identities()
		i[0].Color = "#000000"
		d, err := model.Load(records(), summaries(), i)
		require.NoError(t, err)
		assert.NotEqual(t, base.Fingerprint(), d.Fingerprint())
	})
}
