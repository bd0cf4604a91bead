// Package admin derives the organiser views (search, CSV export, stats)
// from the raw registrations sheet.
package admin

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"strings"

	"tournament-reg/internal/pricing"
	"tournament-reg/internal/sheets"
)

// Reader is implemented by *sheets.Client.
type Reader interface {
	ReadRegistrations(ctx context.Context) (headers []string, rows [][]string, err error)
}

type Stats struct {
	TotalRegistrations int            `json:"totalRegistrations"`
	TotalRevenue       float64        `json:"totalRevenue"`
	CategoryStats      map[string]int `json:"categoryStats"`
}

// Filter keeps rows where any cell contains search, ignoring case.
// An empty search keeps everything.
func Filter(rows [][]string, search string) [][]string {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return rows
	}
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), search) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// CSV renders headers and rows with standard quoting.
func CSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if len(headers) > 0 {
		if err := w.Write(headers); err != nil {
			return nil, err
		}
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ComputeStats totals registrations, revenue, and entries per category.
// Unparsable totals count as zero.
func ComputeStats(rows [][]string) Stats {
	st := Stats{CategoryStats: map[string]int{}}
	for _, row := range rows {
		st.TotalRegistrations++
		if len(row) > sheets.ColTotal {
			if v, err := strconv.ParseFloat(strings.TrimSpace(row[sheets.ColTotal]), 64); err == nil {
				st.TotalRevenue += v
			}
		}
		if len(row) <= sheets.ColEvents || strings.TrimSpace(row[sheets.ColEvents]) == "" {
			continue
		}
		for _, ev := range strings.Split(row[sheets.ColEvents], ", ") {
			st.CategoryStats[pricing.ParseKey(strings.TrimSpace(ev)).Category]++
		}
	}
	return st
}
