package http_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	controller "github.com/kizmotek/linearflow/pkg/controller/http"
	"github.com/kizmotek/linearflow/pkg/domain/model"
	"github.com/kizmotek/linearflow/pkg/usecase"
)

// mockChatClient records sent embeds
type mockChatClient struct {
	sendErr error

	channelIDs []string
	embeds     []*model.NotificationEmbed
}

func (m *mockChatClient) SendEmbed(ctx context.Context, channelID string, embed *model.NotificationEmbed) error {
	m.channelIDs = append(m.channelIDs, channelID)
	m.embeds = append(m.embeds, embed)
	return m.sendErr
}

func signBody(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func postWebhook(t *testing.T, handler *controller.WebhookHandler, payload string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/webhook/linear", bytes.NewReader([]byte(payload)))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	handler.Handle(w, req)
	return w
}

func TestWebhookHandler_IssueCreated(t *testing.T) {
	chat := &mockChatClient{}
	uc := usecase.NewWebhook(chat, "T1", "chan-1")
	handler := controller.NewWebhookHandler("", uc)

	payload := `{
		"type": "Issue",
		"data": {
			"team": {"id": "T1"},
			"identifier": "INK-5",
			"title": "Crash on login",
			"state": {"name": "Todo"},
			"priority": 1,
			"url": "https://x/INK-5"
		}
	}`

	w := postWebhook(t, handler, payload, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var response map[string]bool
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !response["received"] {
		t.Errorf("response = %+v, want received=true", response)
	}

	if len(chat.embeds) != 1 {
		t.Fatalf("sends = %d, want 1", len(chat.embeds))
	}
	embed := chat.embeds[0]
	if !strings.Contains(embed.Title, "INK-5") {
		t.Errorf("embed title = %q", embed.Title)
	}
	var priority string
	for _, f := range embed.Fields {
		if f.Name == "Priority" {
			priority = f.Value
		}
	}
	if priority != "🔥 Urgent" {
		t.Errorf("priority field = %q", priority)
	}
}

func TestWebhookHandler_Filtering(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "unsupported type",
			payload: `{"type": "Project", "data": {"id": "p1"}}`,
		},
		{
			name:    "issue from another team",
			payload: `{"type": "Issue", "data": {"identifier": "INK-1", "team": {"id": "T2"}}}`,
		},
		{
			name:    "update from another team",
			payload: `{"type": "IssueUpdate", "data": {"identifier": "INK-1", "team": {"id": "T2"}}, "updatedFrom": {"stateId": "s"}}`,
		},
		{
			name:    "comment from another team",
			payload: `{"type": "Comment", "data": {"id": "c1", "body": "x", "team": {"id": "T2"}}}`,
		},
		{
			name:    "undecodable body",
			payload: `not json at all`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &mockChatClient{}
			uc := usecase.NewWebhook(chat, "T1", "chan-1")
			handler := controller.NewWebhookHandler("", uc)

			w := postWebhook(t, handler, tt.payload, nil)

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", w.Code)
			}
			if len(chat.embeds) != 0 {
				t.Errorf("sends = %d, want 0", len(chat.embeds))
			}
		})
	}
}

func TestWebhookHandler_SendFailure(t *testing.T) {
	chat := &mockChatClient{sendErr: errors.New("channel not found")}
	uc := usecase.NewWebhook(chat, "T1", "chan-1")
	handler := controller.NewWebhookHandler("", uc)

	payload := `{"type": "Issue", "data": {"identifier": "INK-1", "team": {"id": "T1"}}}`
	w := postWebhook(t, handler, payload, nil)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["error"] == "" {
		t.Errorf("response = %+v, want error body", response)
	}
}

func TestWebhookHandler_SignatureVerification(t *testing.T) {
	secret := "test-secret"
	payload := `{"type": "Issue", "data": {"identifier": "INK-1", "team": {"id": "T1"}}}`

	tests := []struct {
		name           string
		secret         string
		signature      string
		wantStatusCode int
		wantSends      int
	}{
		{
			name:           "no secret configured skips verification",
			secret:         "",
			signature:      "",
			wantStatusCode: http.StatusOK,
			wantSends:      1,
		},
		{
			name:           "valid signature",
			secret:         secret,
			signature:      signBody(secret, []byte(payload)),
			wantStatusCode: http.StatusOK,
			wantSends:      1,
		},
		{
			name:           "invalid signature",
			secret:         secret,
			signature:      "deadbeef",
			wantStatusCode: http.StatusUnauthorized,
			wantSends:      0,
		},
		{
			name:           "missing signature",
			secret:         secret,
			signature:      "",
			wantStatusCode: http.StatusUnauthorized,
			wantSends:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &mockChatClient{}
			uc := usecase.NewWebhook(chat, "T1", "chan-1")
			handler := controller.NewWebhookHandler(tt.secret, uc)

			headers := map[string]string{}
			if tt.signature != "" {
				headers["Linear-Signature"] = tt.signature
			}

			w := postWebhook(t, handler, payload, headers)

			if w.Code != tt.wantStatusCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatusCode)
			}
			if len(chat.embeds) != tt.wantSends {
				t.Errorf("sends = %d, want %d", len(chat.embeds), tt.wantSends)
			}
		})
	}
}

func TestWebhookHandler_Integration(t *testing.T) {
	ctx := context.Background()
	chat := &mockChatClient{}
	uc := usecase.NewWebhook(chat, "T1", "chan-1")

	server, err := controller.NewServer(
		ctx,
		uc,
		controller.WithAddr("localhost:0"),
	)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	ts := httptest.NewServer(server.Handler)
	defer ts.Close()

	payload := `{"type": "Issue", "data": {"team": {"id": "T1"}, "identifier": "INK-5", "title": "Crash on login", "state": {"name": "Todo"}, "priority": 1, "url": "https://x/INK-5"}}`

	resp, err := http.Post(ts.URL+"/webhook/linear", "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("failed to send request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if len(chat.embeds) != 1 {
		t.Fatalf("sends = %d, want 1", len(chat.embeds))
	}
	if !strings.Contains(chat.embeds[0].Title, "INK-5") {
		t.Errorf("embed title = %q", chat.embeds[0].Title)
	}
}
