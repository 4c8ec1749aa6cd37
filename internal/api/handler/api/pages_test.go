package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPagesHandler_Create(t *testing.T) {
	a := newTestApp(t)
	handler := NewPagesHandler(a)

	body := bytes.NewBufferString(`{"category": "marketing"}`)
	req := httptest.NewRequest("POST", "/api/v1/pages", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	data := decodeData(t, w.Body.Bytes())
	if data["file"] != "1_📊_marketing_analysis.yaml" {
		t.Errorf("unexpected file %v", data["file"])
	}

	pages, _ := a.ListPages(context.Background())
	if len(pages) != 1 {
		t.Errorf("expected 1 page, got %d", len(pages))
	}
}

func TestPagesHandler_Create_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"malformed json", `{`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"missing category", `{"category": "  "}`, http.StatusBadRequest, "INVALID_REQUEST"},
		{"unknown category", `{"category": "finance"}`, http.StatusNotFound, "CATEGORY_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewPagesHandler(newTestApp(t))

			req := httptest.NewRequest("POST", "/api/v1/pages", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.Create(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, w.Code)
			}
			if code := decodeError(t, w.Body.Bytes()).Code; code != tt.wantErr {
				t.Errorf("expected %s, got %s", tt.wantErr, code)
			}
		})
	}
}

func TestPagesHandler_ListGetDelete(t *testing.T) {
	a := newTestApp(t)
	handler := NewPagesHandler(a)

	page, err := a.Generate(context.Background(), "sales")
	if err != nil {
		t.Fatalf("generating page: %v", err)
	}

	// List
	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest("GET", "/api/v1/pages", nil))
	if data := decodeData(t, w.Body.Bytes()); data["count"].(float64) != 1 {
		t.Errorf("expected 1 page, got %v", data["count"])
	}

	// Get
	req := httptest.NewRequest("GET", "/api/v1/pages/"+page.ID, nil)
	req.SetPathValue("id", page.ID)
	w = httptest.NewRecorder()
	handler.Get(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	def := decodeData(t, w.Body.Bytes())["definition"].(map[string]any)
	if def["category"] != "sales" {
		t.Errorf("expected sales definition, got %v", def["category"])
	}

	// Delete
	req = httptest.NewRequest("DELETE", "/api/v1/pages/"+page.ID, nil)
	req.SetPathValue("id", page.ID)
	w = httptest.NewRecorder()
	handler.Delete(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	// Delete again
	w = httptest.NewRecorder()
	handler.Delete(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for second delete, got %d", w.Code)
	}
}

func TestPagesHandler_Get_InvalidID(t *testing.T) {
	handler := NewPagesHandler(newTestApp(t))

	req := httptest.NewRequest("GET", "/api/v1/pages/x", nil)
	req.SetPathValue("id", "..")
	w := httptest.NewRecorder()

	handler.Get(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
