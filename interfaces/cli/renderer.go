package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/shopspring/decimal"

	"github.com/Karthikk7293/social-media-handler/domain/dto"
	"github.com/Karthikk7293/social-media-handler/domain/model"
)

// Renderer writes dashboard views as tables or JSON
type Renderer struct {
	out       io.Writer
	useColors bool
}

func NewRenderer(out io.Writer, useColors bool) *Renderer {
	return &Renderer{out: out, useColors: useColors}
}

func (r *Renderer) newTable() *tablewriter.Table {
	return tablewriter.NewTable(r.out,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
}

func (r *Renderer) render(header []string, rows [][]string) error {
	table := r.newTable()
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func (r *Renderer) paint(s string, attrs ...color.Attribute) string {
	if !r.useColors {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

func (r *Renderer) heading(title string) {
	fmt.Fprintf(r.out, "\n%s\n", r.paint(title, color.Bold))
}

// growth colours positive values green and negative values red
func (r *Renderer) growth(d *decimal.Decimal) string {
	s := SignedPercent(d)
	switch {
	case d == nil:
		return r.paint(s, color.Faint)
	case d.Round(1).IsPositive():
		return r.paint(s, color.FgGreen)
	case d.Round(1).IsNegative():
		return r.paint(s, color.FgRed)
	}
	return s
}

// JSON writes v indented
func (r *Renderer) JSON(v interface{}) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Overview renders the summary cards followed by the chart rows
func (r *Renderer) Overview(view *dto.OverviewView) error {
	r.heading("Social Media Analytics")
	if err := r.render([]string{"METRIC", "VALUE"}, [][]string{
		{"Total Followers", CompactCount(view.TotalFollowers)},
		{"Engagement Rate", Percent(view.BlendedEngagementRate)},
		{"Total Posts", CompactCount(view.TotalPosts)},
		{"Total Views", CompactCount(view.TotalViews)},
		{"Engagement Growth", r.growth(view.EngagementGrowth)},
		{"Latest Period", view.LatestPeriod},
	}); err != nil {
		return err
	}
	return r.Chart(view.Chart)
}

// Chart renders one row per period and one column per platform
func (r *Renderer) Chart(chart dto.ChartView) error {
	r.heading("Engagement Trends")
	header := []string{"PERIOD"}
	for _, line := range chart.Lines {
		header = append(header, line.Platform.Name)
	}
	rows := make([][]string, 0, len(chart.Periods))
	for i, period := range chart.Periods {
		row := []string{period}
		for _, line := range chart.Lines {
			row = append(row, Thousands(line.Values[i]))
		}
		rows = append(rows, row)
	}
	return r.render(header, rows)
}

// Platform renders a single platform's cards and its series
func (r *Renderer) Platform(view *dto.PlatformView) error {
	r.heading(fmt.Sprintf("%s (%s)", view.Platform.Name, view.Platform.Color))
	if err := r.render([]string{"METRIC", "VALUE"}, [][]string{
		{"Followers", Thousands(view.Followers)},
		{"Posts", strconv.FormatInt(view.Posts, 10)},
		{"Engagement Rate", Percent(view.EngagementRate)},
		{"Views", Thousands(view.Views)},
		{"Engagement Growth", r.growth(view.EngagementGrowth)},
	}); err != nil {
		return err
	}

	r.heading("Series")
	rows := make([][]string, 0, len(view.Series))
	for _, p := range view.Series {
		rows = append(rows, []string{p.Period, Thousands(p.Value)})
	}
	return r.render([]string{"PERIOD", "VALUE"}, rows)
}

// ValidationFailure describes why a snapshot was rejected
func (r *Renderer) ValidationFailure(err error) {
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		fmt.Fprintf(r.out, "%s %v\n", r.paint("[ERROR]", color.FgRed), err)
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", r.paint("[INVALID]", color.FgRed, color.Bold), verr.Reason)
	if verr.Platform != "" {
		fmt.Fprintf(r.out, "  platform: %s\n", verr.Platform)
	}
	if verr.Index >= 0 {
		fmt.Fprintf(r.out, "  record:   %d\n", verr.Index)
	}
}

// Valid reports an accepted snapshot
func (r *Renderer) Valid(platforms, periods int, latest string) {
	fmt.Fprintf(r.out, "%s %d platforms, %d periods, latest %s\n", r.paint("[OK]", color.FgGreen), platforms, periods, latest)
}
