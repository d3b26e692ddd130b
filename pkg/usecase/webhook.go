package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/kizmotek/linearflow/pkg/domain/interfaces"
	"github.com/kizmotek/linearflow/pkg/domain/model"
)

type webhookUseCase struct {
	chat      interfaces.ChatClient
	teamID    string
	channelID string
}

// NewWebhook creates a new instance of WebhookUseCase posting notifications
// for the given gateway team into the given chat channel
func NewWebhook(chat interfaces.ChatClient, teamID, channelID string) interfaces.WebhookUseCase {
	return &webhookUseCase{
		chat:      chat,
		teamID:    teamID,
		channelID: channelID,
	}
}

// ProcessEvent filters and routes one webhook event. Unsupported types and
// events from other teams are acknowledged silently; only a send failure for
// an accepted event is an error.
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.WebhookEvent) error {
	logger := ctxlog.From(ctx)

	if !event.IsSupportedEvent() {
		logger.Info("ignoring event type", "type", event.Type)
		return nil
	}

	if teamID := event.TeamID(); teamID != uc.teamID {
		logger.Info("ignoring event from team", "team_id", teamID, "type", event.Type)
		return nil
	}

	switch event.Type {
	case model.EventTypeIssue:
		return uc.notifyIssueCreated(ctx, event.Issue)
	case model.EventTypeIssueUpdate:
		return uc.notifyIssueUpdated(ctx, event.Issue, event.UpdatedFrom)
	case model.EventTypeComment:
		return uc.notifyCommentCreated(ctx, event.Comment)
	}

	return nil
}

func (uc *webhookUseCase) notifyIssueCreated(ctx context.Context, issue *model.IssuePayload) error {
	if issue == nil {
		return nil
	}

	if err := uc.chat.SendEmbed(ctx, uc.channelID, issueCreatedEmbed(issue)); err != nil {
		return goerr.Wrap(err, "failed to notify issue creation", goerr.V("identifier", issue.Identifier))
	}

	ctxlog.From(ctx).Info("notified issue creation", "identifier", issue.Identifier)
	return nil
}

func (uc *webhookUseCase) notifyIssueUpdated(ctx context.Context, issue *model.IssuePayload, updatedFrom *model.UpdatedFrom) error {
	if issue == nil {
		return nil
	}

	// Only status transitions are worth a notification; every other field
	// change is dropped.
	if !updatedFrom.StateChanged() {
		ctxlog.From(ctx).Info("ignoring non-status update", "identifier", issue.Identifier)
		return nil
	}

	if err := uc.chat.SendEmbed(ctx, uc.channelID, issueUpdatedEmbed(issue)); err != nil {
		return goerr.Wrap(err, "failed to notify issue update", goerr.V("identifier", issue.Identifier))
	}

	ctxlog.From(ctx).Info("notified status change", "identifier", issue.Identifier)
	return nil
}

func (uc *webhookUseCase) notifyCommentCreated(ctx context.Context, comment *model.CommentPayload) error {
	if comment == nil {
		return nil
	}

	if err := uc.chat.SendEmbed(ctx, uc.channelID, commentCreatedEmbed(comment)); err != nil {
		return goerr.Wrap(err, "failed to notify comment", goerr.V("comment_id", comment.ID))
	}

	ctxlog.From(ctx).Info("notified new comment", "comment_id", comment.ID)
	return nil
}
