package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"tournament-reg/internal/config"
	"tournament-reg/internal/models"
)

// fakeSheetsAPI answers values.get and values.append like the Sheets v4 API.
type fakeSheetsAPI struct {
	mu       sync.Mutex
	values   [][]interface{}
	gets     int
	appended []map[string]interface{}
	query    []string
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":append"):
		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.appended = append(f.appended, body)
		f.query = append(f.query, r.URL.RawQuery)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"spreadsheetId": "sheet-1"})
	case r.Method == http.MethodGet:
		f.gets++
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"range": "Registrations!A1:J10", "values": f.values})
	default:
		http.Error(w, "unexpected", http.StatusNotFound)
	}
}

func newTestClient(t *testing.T, api *fakeSheetsAPI) *Client {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	c, err := NewWithOptions(context.Background(), config.SheetsConfig{
		SpreadsheetID: "sheet-1",
		AppendRange:   "Sheet1!A:J",
		ReadRange:     "Registrations!A:J",
	}, nil, option.WithEndpoint(srv.URL+"/"), option.WithoutAuthentication())
	require.NoError(t, err)
	return c
}

func testRecord() models.RegistrationRecord {
	return models.RegistrationRecord{
		CreatedAt:  "2024-11-01T10:00:00Z",
		Name:       "Asha Rao",
		Email:      "asha@example.com",
		Phone:      "9876543210",
		Address:    "Pune",
		Events:     []string{"u19_girls_Singles", "u19_girls_Doubles"},
		Partners:   []models.PartnerInfo{{Name: "Meera", Phone: "9876500000", Email: "meera@example.com"}},
		Total:      2350,
		PaymentRef: "pay_xyz",
		Status:     models.StatusCompleted,
	}
}

func TestRecordRow(t *testing.T) {
	row := RecordRow(testRecord())
	require.Len(t, row, len(Headers))
	require.Equal(t, "u19_girls_Singles, u19_girls_Doubles", row[ColEvents])
	require.Equal(t, "Meera (9876500000, meera@example.com)", row[6])
	require.Equal(t, 2350, row[ColTotal])
	require.Equal(t, "Completed", row[9])
}

func TestRecordRow_MultiplePartners(t *testing.T) {
	rec := testRecord()
	rec.Partners = append(rec.Partners, models.PartnerInfo{Name: "Ravi", Phone: "1", Email: "ravi@example.com"})
	require.Equal(t, "Meera (9876500000, meera@example.com); Ravi (1, ravi@example.com)", RecordRow(rec)[6])
}

func TestClient_AppendRegistration(t *testing.T) {
	api := &fakeSheetsAPI{}
	c := newTestClient(t, api)

	require.NoError(t, c.AppendRegistration(context.Background(), testRecord()))
	require.Len(t, api.appended, 1)
	rows := api.appended[0]["values"].([]interface{})
	row := rows[0].([]interface{})
	require.Equal(t, "Asha Rao", row[1])
	require.Equal(t, "pay_xyz", row[8])
	require.Contains(t, api.query[0], "valueInputOption=USER_ENTERED")
}

func TestClient_ReadRegistrationsCachesUntilAppend(t *testing.T) {
	api := &fakeSheetsAPI{values: [][]interface{}{
		{"Timestamp", "Name", "Email"},
		{"2024-11-01T10:00:00Z", "Asha", "asha@example.com"},
		{"2024-11-01T11:00:00Z", "Ravi"},
	}}
	c := newTestClient(t, api)
	ctx := context.Background()

	headers, rows, err := c.ReadRegistrations(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Timestamp", "Name", "Email"}, headers)
	require.Equal(t, [][]string{
		{"2024-11-01T10:00:00Z", "Asha", "asha@example.com"},
		{"2024-11-01T11:00:00Z", "Ravi"},
	}, rows)

	_, _, err = c.ReadRegistrations(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, api.gets)

	require.NoError(t, c.AppendRegistration(ctx, testRecord()))
	_, _, err = c.ReadRegistrations(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, api.gets)
}

func TestNewWithOptions_RequiresSpreadsheetID(t *testing.T) {
	_, err := NewWithOptions(context.Background(), config.SheetsConfig{}, nil, option.WithoutAuthentication())
	require.Error(t, err)
}
