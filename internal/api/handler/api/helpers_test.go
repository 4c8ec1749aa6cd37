package api

import (
	"encoding/json"
	"testing"

	"github.com/newthinker/metricboard/internal/api/response"
	"github.com/newthinker/metricboard/internal/app"
	"github.com/newthinker/metricboard/internal/config"
	"github.com/newthinker/metricboard/internal/storage/blob"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	store, err := blob.NewLocalFS(t.TempDir())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	return app.New(config.Defaults(), store, zap.NewNop())
}

func decodeData(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var resp response.SuccessResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %T", resp.Data)
	}
	return data
}

func decodeError(t *testing.T, body []byte) response.ErrorDetail {
	t.Helper()
	var resp response.ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	return resp.Error
}
