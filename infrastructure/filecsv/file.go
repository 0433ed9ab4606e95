package filecsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Karthikk7293/social-media-handler/domain/dto"
	"github.com/Karthikk7293/social-media-handler/infrastructure/logger"
)

// NewFile creates (or truncates) the export file at path
func NewFile(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while open file")
		return nil, err
	}

	return file, nil
}

// ExportEngagement writes the chart to a file at path. A failed close is
// returned, since it can mean the rows never reached the disk.
func ExportEngagement(path string, chart dto.ChartView) error {
	file, err := NewFile(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return writeAndClose(file, chart)
}

func writeAndClose(wc io.WriteCloser, chart dto.ChartView) (err error) {
	defer func() {
		if cerr := wc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close export: %w", cerr)
		}
	}()
	return WriteEngagement(wc, chart)
}

// WriteEngagement writes the chart as CSV: a period column followed by one column per platform id
func WriteEngagement(w io.Writer, chart dto.ChartView) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(chart.Lines)+1)
	header = append(header, "period")
	for _, line := range chart.Lines {
		header = append(header, line.Platform.ID)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for i, period := range chart.Periods {
		row := make([]string, 0, len(chart.Lines)+1)
		row = append(row, period)
		for _, line := range chart.Lines {
			row = append(row, strconv.FormatInt(line.Values[i], 10))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %s: %w", period, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
