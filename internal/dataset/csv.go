package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVHeader returns the column names written by WriteCSV. Category labels
// become score columns with line breaks replaced by spaces.
func (d *Dataset) CSVHeader() []string {
	header := []string{"name", "params_billions", "aggregate_score", "efficiency_ratio", "highlight"}
	for _, c := range d.Categories {
		header = append(header, strings.ReplaceAll(c, "\n", " "))
	}
	return header
}

// WriteCSV writes one row per model: the scatter metrics followed by one
// radar score per category. Missing scores are left empty.
func WriteCSV(w io.Writer, d *Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.CSVHeader()); err != nil {
		return fmt.Errorf("csv: writing header: %w", err)
	}

	for _, m := range d.Models {
		record := []string{
			m.Name,
			formatFloat(m.ParamsBillions),
			formatFloat(m.AggregateScore),
			formatFloat(m.EfficiencyRatio),
			strconv.FormatBool(m.Highlight),
		}
		for i := range d.Categories {
			if i < len(m.Scores) {
				record = append(record, formatFloat(m.Scores[i]))
			} else {
				record = append(record, "")
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("csv: writing %s: %w", m.Name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
