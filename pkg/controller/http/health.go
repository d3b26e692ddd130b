package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/ctxlog"

	"github.com/kizmotek/linearflow/pkg/domain/model"
	"github.com/kizmotek/linearflow/pkg/domain/types"
)

// handleHealth handles liveness check requests
func handleHealth(w http.ResponseWriter, r *http.Request) {
	status := &model.HealthStatus{
		Status:  "ok",
		Service: "linearflow",
		Version: types.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		ctxlog.From(r.Context()).Error("failed to encode health response", "error", err)
	}
}
