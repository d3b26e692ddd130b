package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	controller "github.com/kizmotek/linearflow/pkg/controller/http"
	"github.com/kizmotek/linearflow/pkg/domain/model"
	"github.com/kizmotek/linearflow/pkg/usecase"
)

func TestHealthEndpoint(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewWebhook(&mockChatClient{}, "T1", "chan-1")

	server, err := controller.NewServer(
		ctx,
		uc,
		controller.WithAddr("localhost:0"),
	)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	server.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var status model.HealthStatus
	if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if status.Status != "ok" {
		t.Errorf("status = %q, want ok", status.Status)
	}
	if status.Service != "linearflow" {
		t.Errorf("service = %q, want linearflow", status.Service)
	}
	if status.Version == "" {
		t.Error("version should not be empty")
	}
}
