package interfaces

import (
	"context"

	"github.com/kizmotek/linearflow/pkg/domain/model"
)

// ReportUseCase defines the bug report command flow
type ReportUseCase interface {
	// ProcessReport creates a tracker issue from the report and returns the
	// embed to show the reporter. Failures are folded into an error embed
	// rather than returned; the reporter always gets a reply.
	ProcessReport(ctx context.Context, report *model.IssueReport, rctx *model.ReportContext) *model.NotificationEmbed
}

// WebhookUseCase defines the interface for tracker webhook event processing
type WebhookUseCase interface {
	// ProcessEvent filters and routes one webhook event. Filtered events
	// return nil; an error means an accepted event failed to notify.
	ProcessEvent(ctx context.Context, event *model.WebhookEvent) error
}
