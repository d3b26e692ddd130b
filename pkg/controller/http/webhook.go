package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/kizmotek/linearflow/pkg/domain/interfaces"
	"github.com/kizmotek/linearflow/pkg/domain/model"
)

// WebhookHandler handles tracker webhook deliveries
type WebhookHandler struct {
	secret    string
	webhookUC interfaces.WebhookUseCase
}

// NewWebhookHandler creates a new WebhookHandler. With an empty secret the
// signature check is skipped entirely.
func NewWebhookHandler(secret string, webhookUC interfaces.WebhookUseCase) *WebhookHandler {
	return &WebhookHandler{
		secret:    secret,
		webhookUC: webhookUC,
	}
}

// Handle processes one webhook delivery. Filtered and undecodable events are
// acknowledged with 200 so the sender never retries them; only a failure
// while notifying an accepted event surfaces as 500.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("failed to read request body", "error", err)
		writeError(w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if h.secret != "" {
		if !h.verifySignature(body, r.Header.Get("Linear-Signature")) {
			logger.Warn("invalid webhook signature")
			writeError(w, goerr.New("invalid signature"), http.StatusUnauthorized)
			return
		}
	}

	event, err := model.ParseWebhookEvent(body)
	if err != nil {
		// Undecodable deliveries are dropped, not failed back to the sender.
		logger.Warn("dropping undecodable webhook payload", "error", err)
		writeReceived(w, logger)
		return
	}

	if err := h.webhookUC.ProcessEvent(ctx, event); err != nil {
		logger.Error("failed to process webhook event", "error", err, "type", event.Type)
		writeError(w, err, http.StatusInternalServerError)
		return
	}

	writeReceived(w, logger)
}

func writeReceived(w http.ResponseWriter, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]bool{
		"received": true,
	}); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// verifySignature checks the HMAC-SHA256 hex digest of the raw body
func (h *WebhookHandler) verifySignature(payload []byte, signature string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expected))
}
