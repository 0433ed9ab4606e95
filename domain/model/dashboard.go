package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// EngagementRecord is one observation of the engagement series.
type EngagementRecord struct {
	Period          string               `json:"period"`
	ValueByPlatform map[PlatformID]int64 `json:"values"`
}

// PlatformSummary is the point-in-time snapshot of one platform.
// EngagementRate is a percentage in [0, 100].
type PlatformSummary struct {
	Followers      int64           `json:"followers"`
	Posts          int64           `json:"posts"`
	EngagementRate decimal.Decimal `json:"engagement_rate"`
	Views          int64           `json:"views"`
}

// SeriesPoint is one (period, value) pair of a single platform's series.
type SeriesPoint struct {
	Period string `json:"period"`
	Value  int64  `json:"value"`
}

// Dashboard is the immutable aggregate built by Load. Accessors hand out
// copies, so a Dashboard can be shared between goroutines without locking.
type Dashboard struct {
	records    []EngagementRecord
	summaries  map[PlatformID]PlatformSummary
	identities []PlatformIdentity
	index      map[PlatformID]int
	digest     string
}

// Load validates the inputs and builds a Dashboard.
//
// Records must already be ordered by period (labels compare lexicographically,
// so "2024-01" style labels are expected); Load never re-sorts. Identity IDs
// default to the canonical form of their Name. Map keys are canonicalized, so
// "Instagram" and "instagram" address the same platform.
func Load(records []EngagementRecord, summaries map[PlatformID]PlatformSummary, identities []PlatformIdentity) (*Dashboard, error) {
	if len(records) == 0 {
		return nil, &ValidationError{Index: -1, Reason: "at least one engagement record is required"}
	}

	d := &Dashboard{
		identities: make([]PlatformIdentity, 0, len(identities)),
		index:      make(map[PlatformID]int, len(identities)),
		summaries:  make(map[PlatformID]PlatformSummary, len(summaries)),
		records:    make([]EngagementRecord, 0, len(records)),
	}

	for _, identity := range identities {
		id := identity.ID
		if id == "" {
			id = NewPlatformID(identity.Name)
		} else {
			id = NewPlatformID(string(id))
		}
		if id == "" {
			return nil, newPlatformViolation(id, "identity has neither id nor name")
		}
		if _, dup := d.index[id]; dup {
			return nil, newPlatformViolation(id, "duplicate platform identity")
		}
		if !IsHexColor(identity.Color) {
			return nil, newPlatformViolation(id, "color %q is not a #RRGGBB hex triplet", identity.Color)
		}
		identity.ID = id
		if identity.Name == "" {
			identity.Name = string(id)
		}
		d.index[id] = len(d.identities)
		d.identities = append(d.identities, identity)
	}

	for _, rawID := range slices.Sorted(maps.Keys(summaries)) {
		id := NewPlatformID(string(rawID))
		summary := summaries[rawID]
		if _, known := d.index[id]; !known {
			return nil, newPlatformViolation(id, "summary references unknown platform")
		}
		if _, dup := d.summaries[id]; dup {
			return nil, newPlatformViolation(id, "duplicate summary")
		}
		if err := validateSummary(id, summary); err != nil {
			return nil, err
		}
		d.summaries[id] = summary
	}
	for _, identity := range d.identities {
		if _, ok := d.summaries[identity.ID]; !ok {
			return nil, newPlatformViolation(identity.ID, "platform has no summary")
		}
	}

	for i, record := range records {
		if record.Period == "" {
			return nil, newRecordViolation(i, "", "period is empty")
		}
		if i > 0 && record.Period <= records[i-1].Period {
			return nil, newRecordViolation(i, "", "period %q does not follow %q", record.Period, records[i-1].Period)
		}
		values := make(map[PlatformID]int64, len(record.ValueByPlatform))
		for _, rawID := range slices.Sorted(maps.Keys(record.ValueByPlatform)) {
			id := NewPlatformID(string(rawID))
			value := record.ValueByPlatform[rawID]
			if _, known := d.index[id]; !known {
				return nil, newRecordViolation(i, id, "value references unknown platform")
			}
			if _, dup := values[id]; dup {
				return nil, newRecordViolation(i, id, "duplicate value")
			}
			if value < 0 {
				return nil, newRecordViolation(i, id, "negative engagement value %d", value)
			}
			values[id] = value
		}
		for _, identity := range d.identities {
			if _, ok := values[identity.ID]; !ok {
				return nil, newRecordViolation(i, identity.ID, "record is missing a value")
			}
		}
		d.records = append(d.records, EngagementRecord{Period: record.Period, ValueByPlatform: values})
	}

	d.digest = d.computeFingerprint()
	return d, nil
}

// Fingerprint identifies the loaded content: dashboards built from equal
// canonical inputs share it, any change to a value yields a new one.
func (d *Dashboard) Fingerprint() string {
	return d.digest
}

func (d *Dashboard) computeFingerprint() string {
	h := sha256.New()
	for _, identity := range d.identities {
		s := d.summaries[identity.ID]
		fmt.Fprintf(h, "p|%q|%q|%q|%q|%d|%d|%s|%d\n",
			identity.ID, identity.Name, identity.Color, identity.Icon,
			s.Followers, s.Posts, s.EngagementRate.String(), s.Views)
	}
	for _, r := range d.records {
		fmt.Fprintf(h, "r|%q", r.Period)
		for _, identity := range d.identities {
			fmt.Fprintf(h, "|%d", r.ValueByPlatform[identity.ID])
		}
		fmt.Fprint(h, "\n")
	}
	return hex.EncodeToString(h.Sum(nil))
}

func validateSummary(id PlatformID, s PlatformSummary) error {
	switch {
	case s.Followers < 0:
		return newPlatformViolation(id, "negative followers %d", s.Followers)
	case s.Posts < 0:
		return newPlatformViolation(id, "negative posts %d", s.Posts)
	case s.Views < 0:
		return newPlatformViolation(id, "negative views %d", s.Views)
	case s.EngagementRate.IsNegative() || s.EngagementRate.GreaterThan(hundred):
		return newPlatformViolation(id, "engagement rate %s outside [0, 100]", s.EngagementRate)
	}
	return nil
}

func (d *Dashboard) lookup(raw string) (PlatformID, error) {
	id := NewPlatformID(raw)
	if _, ok := d.index[id]; !ok {
		return id, &NotFoundError{Platform: id}
	}
	return id, nil
}

// Identities returns the platform descriptors in display order.
func (d *Dashboard) Identities() []PlatformIdentity {
	return slices.Clone(d.identities)
}

// Identity returns the descriptor of one platform.
func (d *Dashboard) Identity(platform string) (PlatformIdentity, error) {
	id, err := d.lookup(platform)
	if err != nil {
		return PlatformIdentity{}, err
	}
	return d.identities[d.index[id]], nil
}

// Records returns a deep copy of the engagement series.
func (d *Dashboard) Records() []EngagementRecord {
	out := make([]EngagementRecord, len(d.records))
	for i, r := range d.records {
		out[i] = EngagementRecord{Period: r.Period, ValueByPlatform: maps.Clone(r.ValueByPlatform)}
	}
	return out
}

// Periods returns the period labels in series order.
func (d *Dashboard) Periods() []string {
	out := make([]string, len(d.records))
	for i, r := range d.records {
		out[i] = r.Period
	}
	return out
}

// LatestPeriod returns the label of the last record.
func (d *Dashboard) LatestPeriod() string {
	return d.records[len(d.records)-1].Period
}

// SummaryFor returns the snapshot of one platform. Lookup is case-insensitive.
func (d *Dashboard) SummaryFor(platform string) (PlatformSummary, error) {
	id, err := d.lookup(platform)
	if err != nil {
		return PlatformSummary{}, err
	}
	return d.summaries[id], nil
}

// TotalFollowers sums followers across all platforms.
func (d *Dashboard) TotalFollowers() int64 {
	var total int64
	for _, s := range d.summaries {
		total += s.Followers
	}
	return total
}

// TotalViews sums views across all platforms.
func (d *Dashboard) TotalViews() int64 {
	var total int64
	for _, s := range d.summaries {
		total += s.Views
	}
	return total
}

// TotalPosts sums posts across all platforms.
func (d *Dashboard) TotalPosts() int64 {
	var total int64
	for _, s := range d.summaries {
		total += s.Posts
	}
	return total
}

// BlendedEngagementRate is the follower-weighted mean of the platforms'
// engagement rates. It is zero when no platform has followers.
func (d *Dashboard) BlendedEngagementRate() decimal.Decimal {
	followers := d.TotalFollowers()
	if followers == 0 {
		return decimal.Zero
	}
	weighted := decimal.Zero
	for _, s := range d.summaries {
		weighted = weighted.Add(s.EngagementRate.Mul(decimal.NewFromInt(s.Followers)))
	}
	return weighted.Div(decimal.NewFromInt(followers))
}

// PeriodOverPeriodGrowth returns the percentage change of a platform's
// engagement between the last two records. The result is nil when the series
// has a single record or the previous value is zero.
func (d *Dashboard) PeriodOverPeriodGrowth(platform string) (*decimal.Decimal, error) {
	id, err := d.lookup(platform)
	if err != nil {
		return nil, err
	}
	n := len(d.records)
	if n < 2 {
		return nil, nil
	}
	return growth(d.records[n-2].ValueByPlatform[id], d.records[n-1].ValueByPlatform[id]), nil
}

// CombinedGrowth is PeriodOverPeriodGrowth over the per-period sum of all platforms.
func (d *Dashboard) CombinedGrowth() *decimal.Decimal {
	n := len(d.records)
	if n < 2 {
		return nil
	}
	return growth(sumValues(d.records[n-2]), sumValues(d.records[n-1]))
}

// SeriesFor projects the engagement series onto one platform, preserving order.
func (d *Dashboard) SeriesFor(platform string) ([]SeriesPoint, error) {
	id, err := d.lookup(platform)
	if err != nil {
		return nil, err
	}
	out := make([]SeriesPoint, len(d.records))
	for i, r := range d.records {
		out[i] = SeriesPoint{Period: r.Period, Value: r.ValueByPlatform[id]}
	}
	return out, nil
}

func sumValues(r EngagementRecord) int64 {
	var total int64
	for _, v := range r.ValueByPlatform {
		total += v
	}
	return total
}

func growth(previous, latest int64) *decimal.Decimal {
	if previous == 0 {
		return nil
	}
	g := decimal.NewFromInt(latest - previous).Mul(hundred).Div(decimal.NewFromInt(previous))
	return &g
}
