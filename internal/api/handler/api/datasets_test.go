package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func getDataset(t *testing.T, category, query string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewDatasetsHandler(newTestApp(t))

	req := httptest.NewRequest("GET", "/api/v1/datasets/"+category+query, nil)
	req.SetPathValue("category", category)
	w := httptest.NewRecorder()

	handler.Get(w, req)
	return w
}

func TestDatasetsHandler_Get(t *testing.T) {
	w := getDataset(t, "sales", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	data := decodeData(t, w.Body.Bytes())
	if data["row_count"].(float64) != 365 {
		t.Errorf("expected 365 rows, got %v", data["row_count"])
	}
	if _, ok := data["rows"]; ok {
		t.Error("expected no rows without ?rows")
	}

	summary := data["summary"].([]any)
	if first := summary[0].(map[string]any); first["name"] != "total_revenue" {
		t.Errorf("expected total_revenue first, got %v", first["name"])
	}
	columns := data["columns"].([]any)
	if columns[0] != "date" {
		t.Errorf("expected date column first, got %v", columns[0])
	}
}

func TestDatasetsHandler_Get_WithRows(t *testing.T) {
	w := getDataset(t, "customer", "?rows=5")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	rows := decodeData(t, w.Body.Bytes())["rows"].([]any)
	if len(rows) != 5 {
		t.Errorf("expected 5 rows, got %d", len(rows))
	}
}

func TestDatasetsHandler_Get_Errors(t *testing.T) {
	tests := []struct {
		name     string
		category string
		query    string
		wantCode int
	}{
		{"unknown category", "finance", "", http.StatusNotFound},
		{"rows not a number", "sales", "?rows=abc", http.StatusBadRequest},
		{"negative rows", "sales", "?rows=-1", http.StatusBadRequest},
		{"too many rows", "sales", "?rows=1000", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := getDataset(t, tt.category, tt.query)
			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, w.Code)
			}
		})
	}
}
