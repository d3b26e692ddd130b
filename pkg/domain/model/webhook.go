package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// WebhookEventType represents the type of webhook event received from the tracker
type WebhookEventType string

const (
	EventTypeIssue       WebhookEventType = "Issue"
	EventTypeIssueUpdate WebhookEventType = "IssueUpdate"
	EventTypeComment     WebhookEventType = "Comment"
)

// TeamRef identifies the tracker team an event belongs to
type TeamRef struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// StateRef is an issue workflow state
type StateRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserRef is a tracker user
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IssueRef is the minimal issue reference embedded in comment payloads
type IssueRef struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	URL        string `json:"url"`
}

// IssuePayload is the data of an Issue / IssueUpdate event. State and
// Assignee may be absent; formatters must supply explicit defaults.
type IssuePayload struct {
	ID         string    `json:"id"`
	Identifier string    `json:"identifier"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	Priority   int       `json:"priority"`
	Team       *TeamRef  `json:"team"`
	State      *StateRef `json:"state"`
	Assignee   *UserRef  `json:"assignee"`
}

// CommentPayload is the data of a Comment event
type CommentPayload struct {
	ID    string    `json:"id"`
	Body  string    `json:"body"`
	User  *UserRef  `json:"user"`
	Team  *TeamRef  `json:"team"`
	Issue *IssueRef `json:"issue"`
}

// UpdatedFrom carries the previous values of fields changed by an
// IssueUpdate event. Only the state change matters for routing.
type UpdatedFrom struct {
	StateID string `json:"stateId"`
}

// StateChanged reports whether the update includes a workflow state change
func (u *UpdatedFrom) StateChanged() bool {
	return u != nil && u.StateID != ""
}

// WebhookEvent is one tracker webhook delivery decoded into a tagged union:
// exactly one of Issue or Comment is populated depending on Type. Events are
// fully processed or dropped within the request that delivered them.
type WebhookEvent struct {
	Type        WebhookEventType
	Issue       *IssuePayload
	Comment     *CommentPayload
	UpdatedFrom *UpdatedFrom
}

// IsSupportedEvent checks if the event type is one this service routes
func (e *WebhookEvent) IsSupportedEvent() bool {
	switch e.Type {
	case EventTypeIssue, EventTypeIssueUpdate, EventTypeComment:
		return true
	default:
		return false
	}
}

// TeamID returns the originating team id, or "" when the payload carries none
func (e *WebhookEvent) TeamID() string {
	switch {
	case e.Issue != nil && e.Issue.Team != nil:
		return e.Issue.Team.ID
	case e.Comment != nil && e.Comment.Team != nil:
		return e.Comment.Team.ID
	}
	return ""
}

type webhookEnvelope struct {
	Type        string          `json:"type"`
	Data        json.RawMessage `json:"data"`
	UpdatedFrom *UpdatedFrom    `json:"updatedFrom"`
}

// ParseWebhookEvent decodes a raw webhook body into the tagged union. The
// payload variant is chosen by the type field; unrecognized types decode to
// an event with no payload so the caller can acknowledge and drop it.
func ParseWebhookEvent(body []byte) (*WebhookEvent, error) {
	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, goerr.Wrap(err, "failed to decode webhook envelope")
	}

	event := &WebhookEvent{
		Type:        WebhookEventType(envelope.Type),
		UpdatedFrom: envelope.UpdatedFrom,
	}

	switch event.Type {
	case EventTypeIssue, EventTypeIssueUpdate:
		var issue IssuePayload
		if err := json.Unmarshal(envelope.Data, &issue); err != nil {
			return nil, goerr.Wrap(err, "failed to decode issue payload", goerr.V("type", envelope.Type))
		}
		event.Issue = &issue
	case EventTypeComment:
		var comment CommentPayload
		if err := json.Unmarshal(envelope.Data, &comment); err != nil {
			return nil, goerr.Wrap(err, "failed to decode comment payload")
		}
		event.Comment = &comment
	}

	return event, nil
}
