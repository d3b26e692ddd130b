package interfaces

import (
	"context"

	"github.com/kizmotek/linearflow/pkg/domain/model"
)

// TrackerClient defines operations for interacting with the issue tracker API
type TrackerClient interface {
	// CreateIssue creates a new issue and returns the tracker's view of it
	CreateIssue(ctx context.Context, input *model.IssueCreate) (*model.TrackerIssue, error)

	// CreateAttachment attaches a link record to an existing issue
	CreateAttachment(ctx context.Context, input *model.AttachmentCreate) error

	// Issue fetches an issue by its tracker id
	Issue(ctx context.Context, id string) (*model.TrackerIssue, error)
}
