package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"

	"github.com/kizmotek/linearflow/pkg/domain/interfaces"
	"github.com/kizmotek/linearflow/pkg/domain/model"
)

type reportUseCase struct {
	tracker interfaces.TrackerClient
	teamID  string
}

// NewReport creates a new instance of ReportUseCase routing issues to the
// given gateway team. An empty teamID is tolerated and degrades every
// invocation to a configuration-error reply.
func NewReport(tracker interfaces.TrackerClient, teamID string) interfaces.ReportUseCase {
	return &reportUseCase{
		tracker: tracker,
		teamID:  teamID,
	}
}

// ProcessReport creates a tracker issue from the report, attaches the
// originating message link plus every submitted file, and returns the embed
// to show the reporter. Partial failures are not rolled back; the reporter
// just sees the generic failure embed.
func (uc *reportUseCase) ProcessReport(ctx context.Context, report *model.IssueReport, rctx *model.ReportContext) *model.NotificationEmbed {
	logger := ctxlog.From(ctx)

	if uc.teamID == "" {
		logger.Warn("report command invoked without gateway team configured")
		return configErrorEmbed()
	}

	issue, err := uc.tracker.CreateIssue(ctx, &model.IssueCreate{
		TeamID:      uc.teamID,
		Title:       report.Title,
		Description: BuildIssueDescription(report),
		Priority:    model.PriorityMedium,
	})
	if err != nil {
		logger.Error("failed to create tracker issue",
			"error", err,
			"team_id", uc.teamID,
			"title", report.Title,
		)
		return reportFailureEmbed()
	}

	// The identifier can lag behind the creation response. Re-fetch once
	// instead of parsing it out of the URL.
	if issue.Identifier == "" {
		fetched, err := uc.tracker.Issue(ctx, issue.ID)
		if err != nil {
			logger.Warn("failed to re-fetch created issue",
				"error", err,
				"issue_id", issue.ID,
			)
		} else {
			issue = fetched
		}
	}

	channelName := rctx.ChannelName
	if channelName == "" {
		channelName = "unknown"
	}

	if err := uc.tracker.CreateAttachment(ctx, &model.AttachmentCreate{
		IssueID:  issue.ID,
		Title:    "Bug Report from Discord",
		URL:      rctx.MessageLink,
		Subtitle: fmt.Sprintf("#%s - %s :: Issue %s created", channelName, rctx.AuthorTag, issue.Identifier),
	}); err != nil {
		logger.Error("failed to attach message back-link",
			"error", err,
			"issue_id", issue.ID,
		)
		return reportFailureEmbed()
	}

	for _, att := range report.Attachments {
		if err := uc.tracker.CreateAttachment(ctx, &model.AttachmentCreate{
			IssueID:  issue.ID,
			Title:    att.Name,
			URL:      att.URL,
			Subtitle: "Uploaded by " + rctx.AuthorTag,
		}); err != nil {
			logger.Error("failed to attach report file",
				"error", err,
				"issue_id", issue.ID,
				"attachment", att.Name,
			)
			return reportFailureEmbed()
		}
	}

	logger.Info("bug report created",
		"issue_id", issue.ID,
		"identifier", issue.Identifier,
		"source", report.Source,
		"attachments", len(report.Attachments),
	)

	return reportSuccessEmbed(issue, report, rctx)
}
