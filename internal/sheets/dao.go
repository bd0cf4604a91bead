package sheets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"tournament-reg/internal/models"
)

// Column order of the registrations sheet (A..J).
var Headers = []string{
	"Timestamp", "Name", "Email", "Phone", "Address",
	"Events", "Partners", "Total", "Payment Ref", "Status",
}

const (
	ColEvents = 5
	ColTotal  = 7
)

func (c *Client) readAll(ctx context.Context, a1 string) ([][]interface{}, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, a1).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func (c *Client) appendRow(ctx context.Context, a1 string, row []interface{}) error {
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{row}}
	_, err := c.srv.Spreadsheets.Values.Append(c.spreadsheetID, a1, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// ---------- Registrations ----------

// RecordRow renders rec in sheet column order.
func RecordRow(rec models.RegistrationRecord) []interface{} {
	partners := make([]string, 0, len(rec.Partners))
	for _, p := range rec.Partners {
		partners = append(partners, fmt.Sprintf("%s (%s, %s)", p.Name, p.Phone, p.Email))
	}
	return []interface{}{
		rec.CreatedAt,
		rec.Name,
		rec.Email,
		rec.Phone,
		rec.Address,
		strings.Join(rec.Events, ", "),
		strings.Join(partners, "; "),
		rec.Total,
		rec.PaymentRef,
		rec.Status,
	}
}

func (c *Client) AppendRegistration(ctx context.Context, rec models.RegistrationRecord) error {
	if err := c.appendRow(ctx, c.appendRange, RecordRow(rec)); err != nil {
		return fmt.Errorf("sheets append: %w", err)
	}
	c.cache.Delete(c.readRange)
	c.logger.Info("registration written to sheet", zap.String("payment_ref", rec.PaymentRef))
	return nil
}

// ReadRegistrations returns the header row and the data rows of the
// registrations range. Reads are cached briefly; appends invalidate the cache.
func (c *Client) ReadRegistrations(ctx context.Context) ([]string, [][]string, error) {
	if v, ok := c.cache.Get(c.readRange); ok {
		if t, ok := v.(table); ok {
			return t.headers, t.rows, nil
		}
	}

	values, err := c.readAll(ctx, c.readRange)
	if err != nil {
		return nil, nil, fmt.Errorf("sheets read: %w", err)
	}
	var t table
	for i, row := range values {
		cells := make([]string, len(row))
		for j := range row {
			cells[j] = get(row, j)
		}
		if i == 0 {
			t.headers = cells
			continue
		}
		t.rows = append(t.rows, cells)
	}
	c.cache.SetDefault(c.readRange, t)
	return t.headers, t.rows, nil
}

type table struct {
	headers []string
	rows    [][]string
}

// ---------- helpers ----------

func get(row []interface{}, idx int) string {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprint(row[idx])
}
